package sim

import "github.com/inventory-sim/inventory-sim/sim/network"

// FacilityInventoryState is the mutable stock of one tracked facility-product
// within a single replication.
type FacilityInventoryState struct {
	Key          network.Key
	OnHand       float64
	ReorderPoint float64
	OrderUpTo    float64

	policy       network.StockPolicy
	initial      float64
	inventorySum float64 // end-of-day on-hand summed over the horizon
}

// PendingOrder is a customer order waiting at its demand-facing facility.
type PendingOrder struct {
	ID                int
	Quantity          float64
	Remaining         float64
	AgeDays           int
	OrderDay          int
	ServiceWindowDays float64

	logPos int
}

// PendingReplenishment is a shipment in transit between two facilities.
type PendingReplenishment struct {
	ID          int
	Quantity    float64
	ArrivalDay  int
	OrderDay    int
	Source      network.Key
	Destination network.Key

	dest int
}

// tripKey aggregates shipped quantity per lane and mode.
type tripKey struct {
	origin, destination, mode string
}
