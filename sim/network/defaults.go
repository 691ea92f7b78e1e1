package network

// Defaults applied when a lookup finds no row or an empty field.
// Every use of one of these emits a Warning from the Index.
const (
	DefaultHorizonDays  = 365
	DefaultReplications = 10

	DefaultDemand            = "Constant(100)"
	DefaultInterArrival      = "Constant(1)"
	DefaultServiceWindowDays = 3.0

	DefaultReorderPoint = 0.0
	DefaultOrderUpTo    = 100.0

	DefaultHoldingCost  = 0.1
	DefaultInboundCost  = 0.5
	DefaultOutboundCost = 0.5

	DefaultTransportUnitCost  = 1.0
	DefaultTransportFixedCost = 0.0
	DefaultTransportDistance  = 0.0
	DefaultLeadTime           = "Constant(1)"
	DefaultTimeUnit           = "DAY"
	DefaultVehicleCapacity    = 1000.0
	DefaultReplenishmentCost  = 0.0

	DefaultProductionRate     = 100.0
	DefaultProductionUnitCost = 0.0

	DefaultReviewPeriodDays = 1
	DefaultAllowPartial     = true
)
