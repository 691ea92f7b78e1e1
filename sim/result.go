package sim

import (
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// CostBreakdown splits total cost into its accrual categories.
type CostBreakdown struct {
	Transportation float64 `json:"transportation"`
	Production     float64 `json:"production"`
	Handling       float64 `json:"handling"`
	Inventory      float64 `json:"inventory"`
}

// Total sums every category.
func (c CostBreakdown) Total() float64 {
	return c.Transportation + c.Production + c.Handling + c.Inventory
}

// TransportationDetail describes one replenishment lane as used in a replication.
type TransportationDetail struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Product         string  `json:"product"`
	Mode            string  `json:"mode,omitempty"`
	UnitCost        float64 `json:"unit_cost"`
	FixedCost       float64 `json:"fixed_cost"`
	Surcharge       float64 `json:"surcharge"`
	Distance        float64 `json:"distance"`
	LeadTime        string  `json:"lead_time"`
	TimeUnit        string  `json:"time_unit"`
	VehicleCapacity float64 `json:"vehicle_capacity"`
}

// ProductionDetail describes one production policy.
type ProductionDetail struct {
	Facility  string             `json:"facility"`
	Product   string             `json:"product"`
	Policy    string             `json:"policy"`
	DailyRate float64            `json:"daily_rate"`
	UnitCost  float64            `json:"unit_cost"`
	BOMID     string             `json:"bom_id,omitempty"`
	Materials []network.Material `json:"materials,omitempty"`
	Produced  float64            `json:"produced"`
}

// HandlingDetail describes handling cost rates and volumes of one facility.
type HandlingDetail struct {
	Facility      string  `json:"facility"`
	InboundCost   float64 `json:"inbound_cost"`
	OutboundCost  float64 `json:"outbound_cost"`
	InboundUnits  float64 `json:"inbound_units"`
	OutboundUnits float64 `json:"outbound_units"`
}

// InventoryDetail describes the policy and stock level of one tracked key.
type InventoryDetail struct {
	Facility         string  `json:"facility"`
	Product          string  `json:"product"`
	ReorderPoint     float64 `json:"s"`
	OrderUpTo        float64 `json:"S"`
	InitialInventory float64 `json:"initial_inventory"`
	HoldingCost      float64 `json:"holding_cost"`
	AverageInventory float64 `json:"average_inventory"`
	FinalInventory   float64 `json:"final_inventory"`
}

// Details groups the static and per-key detail objects of a replication.
type Details struct {
	Transportation []TransportationDetail `json:"transportation"`
	Production     []ProductionDetail     `json:"production"`
	Handling       []HandlingDetail       `json:"handling"`
	Inventory      []InventoryDetail      `json:"inventory"`
}

// ReplicationResult is the output of one replication of one scenario.
// FillRate and ServiceLevel are percentages in [0, 100].
type ReplicationResult struct {
	Replication    int                  `json:"replication"`
	TotalCost      float64              `json:"total_cost"`
	FillRate       float64              `json:"fill_rate"`
	ServiceLevel   float64              `json:"service_level"`
	Costs          CostBreakdown        `json:"costs"`
	DemandedUnits  float64              `json:"demanded_units"`
	FulfilledUnits float64              `json:"fulfilled_units"`
	Orders         int                  `json:"orders"`
	OnTimeOrders   int                  `json:"on_time_orders"`
	Trips          []trace.TripRecord   `json:"trips"`
	Details        Details              `json:"details"`
	Log            *trace.SimulationLog `json:"-"`
}
