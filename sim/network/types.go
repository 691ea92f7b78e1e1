// Package network holds the typed input records that describe a supply network
// (facilities, products, customers and their policy tables) and resolves them into
// an Index with documented defaults for every lookup that may be missing.
//
// Records are taken as already normalized. Loading is strict about structure
// (unknown YAML keys are rejected) but never validates values: sparse or odd
// configuration degrades to defaults and is reported as Warnings.
package network

// Facility is a node of the network (plant, DC, supplier, ...).
type Facility struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type" json:"type"`
}

// Product is a finished good or raw material.
type Product struct {
	Name string `yaml:"name" json:"name"`
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
}

// Customer is a source of demand.
type Customer struct {
	Name string `yaml:"name" json:"name"`
}

// CustomerFulfillment names the facility that serves a customer's demand for a product.
type CustomerFulfillment struct {
	Customer string `yaml:"customer" json:"customer"`
	Product  string `yaml:"product" json:"product"`
	Facility string `yaml:"facility" json:"facility"`
}

// CustomerOrderProfile describes how a customer orders a product.
// Demand and InterArrival are distribution specs, e.g. "Normal(100, 20)".
type CustomerOrderProfile struct {
	Customer          string   `yaml:"customer" json:"customer"`
	Product           string   `yaml:"product" json:"product"`
	Demand            string   `yaml:"demand" json:"demand"`
	InterArrival      string   `yaml:"inter_arrival" json:"inter_arrival"`
	ServiceWindowDays *float64 `yaml:"service_window_days,omitempty" json:"service_window_days,omitempty"`
}

// Replenishment names the upstream source for a facility-product.
// UnitCost is a per-unit surcharge on top of transportation cost.
type Replenishment struct {
	Facility string   `yaml:"facility" json:"facility"`
	Product  string   `yaml:"product" json:"product"`
	Source   string   `yaml:"source" json:"source"`
	UnitCost *float64 `yaml:"unit_cost,omitempty" json:"unit_cost,omitempty"`
}

// Production policy kinds.
const (
	PolicyContinuous   = "Continuous"
	PolicyMakeByDemand = "Make-By-Demand"
)

// Production is a production policy for a facility-product.
type Production struct {
	Facility string   `yaml:"facility" json:"facility"`
	Product  string   `yaml:"product" json:"product"`
	Policy   string   `yaml:"policy" json:"policy"`
	Rate     *float64 `yaml:"rate,omitempty" json:"rate,omitempty"`
	RateUnit string   `yaml:"rate_unit,omitempty" json:"rate_unit,omitempty"`
	UnitCost *float64 `yaml:"unit_cost,omitempty" json:"unit_cost,omitempty"`
	BOM      string   `yaml:"bom,omitempty" json:"bom,omitempty"`
}

// InventoryPolicy declares the (s,S) policy of a facility-product.
// Value1 is the reorder point s, Value2 the order-up-to level S.
type InventoryPolicy struct {
	Facility         string   `yaml:"facility" json:"facility"`
	Product          string   `yaml:"product" json:"product"`
	Policy           string   `yaml:"policy,omitempty" json:"policy,omitempty"`
	Value1           *float64 `yaml:"value1,omitempty" json:"value1,omitempty"`
	Value2           *float64 `yaml:"value2,omitempty" json:"value2,omitempty"`
	Unit             string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	InitialInventory *float64 `yaml:"initial_inventory,omitempty" json:"initial_inventory,omitempty"`
	HoldingCost      *float64 `yaml:"holding_cost,omitempty" json:"holding_cost,omitempty"`
}

// Warehousing holds per-facility handling and stocking costs (per unit).
type Warehousing struct {
	Facility     string   `yaml:"facility" json:"facility"`
	InboundCost  *float64 `yaml:"inbound_cost,omitempty" json:"inbound_cost,omitempty"`
	OutboundCost *float64 `yaml:"outbound_cost,omitempty" json:"outbound_cost,omitempty"`
	StockingCost *float64 `yaml:"stocking_cost,omitempty" json:"stocking_cost,omitempty"`
}

// OrderFulfillment controls how a facility releases customer orders.
type OrderFulfillment struct {
	Facility         string   `yaml:"facility" json:"facility"`
	ReviewPeriodDays *float64 `yaml:"review_period_days,omitempty" json:"review_period_days,omitempty"`
	AllowPartial     *bool    `yaml:"allow_partial,omitempty" json:"allow_partial,omitempty"`
}

// Transportation describes a lane between two facilities.
// TimeDistribution is a distribution spec expressed in TimeUnit.
type Transportation struct {
	Origin           string   `yaml:"origin" json:"origin"`
	Destination      string   `yaml:"destination" json:"destination"`
	Mode             string   `yaml:"mode,omitempty" json:"mode,omitempty"`
	UnitCost         *float64 `yaml:"unit_cost,omitempty" json:"unit_cost,omitempty"`
	FixedCost        *float64 `yaml:"fixed_cost,omitempty" json:"fixed_cost,omitempty"`
	Distance         *float64 `yaml:"distance,omitempty" json:"distance,omitempty"`
	TimeDistribution string   `yaml:"time_distribution,omitempty" json:"time_distribution,omitempty"`
	TimeUnit         string   `yaml:"time_unit,omitempty" json:"time_unit,omitempty"`
}

// TransportationMode describes a vehicle type.
type TransportationMode struct {
	Name            string   `yaml:"name" json:"name"`
	VehicleCapacity *float64 `yaml:"vehicle_capacity,omitempty" json:"vehicle_capacity,omitempty"`
}

// BOM is a bill of materials in its encoded form: "Material(qty), Material(qty)".
type BOM struct {
	ID        string `yaml:"id" json:"id"`
	Product   string `yaml:"product,omitempty" json:"product,omitempty"`
	Materials string `yaml:"materials" json:"materials"`
}

// InputFactor sweeps the (s,S) parameters of one facility-product.
// LowerS and UpperS are range specs such as "100,200,50".
type InputFactor struct {
	Facility string `yaml:"facility" json:"facility"`
	Product  string `yaml:"product" json:"product"`
	LowerS   string `yaml:"s" json:"s"`
	UpperS   string `yaml:"S" json:"S"`
}

// Input is the complete network description consumed by a sweep.
type Input struct {
	Facilities            []Facility             `yaml:"facilities" json:"facilities"`
	Products              []Product              `yaml:"products" json:"products"`
	Customers             []Customer             `yaml:"customers" json:"customers"`
	CustomerFulfillment   []CustomerFulfillment  `yaml:"customer_fulfillment" json:"customer_fulfillment"`
	CustomerOrderProfiles []CustomerOrderProfile `yaml:"customer_order_profiles" json:"customer_order_profiles"`
	Replenishment         []Replenishment        `yaml:"replenishment" json:"replenishment"`
	Production            []Production           `yaml:"production" json:"production"`
	InventoryPolicies     []InventoryPolicy      `yaml:"inventory_policies" json:"inventory_policies"`
	Warehousing           []Warehousing          `yaml:"warehousing" json:"warehousing"`
	OrderFulfillment      []OrderFulfillment     `yaml:"order_fulfillment" json:"order_fulfillment"`
	Transportation        []Transportation       `yaml:"transportation" json:"transportation"`
	TransportationModes   []TransportationMode   `yaml:"transportation_modes" json:"transportation_modes"`
	BOMs                  []BOM                  `yaml:"boms" json:"boms"`
	InputFactors          []InputFactor          `yaml:"input_factors" json:"input_factors"`
}

// Key identifies a facility-product pair.
type Key struct {
	Facility string `json:"facility"`
	Product  string `json:"product"`
}

func (k Key) String() string {
	return k.Facility + "(" + k.Product + ")"
}
