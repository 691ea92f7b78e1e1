// Package trace provides per-replication log records for inventory simulations.
// This package has no dependencies on sim/ or sim/sweep/; it stores pure data types.
package trace

// OrderRecord captures one customer order from placement to delivery.
// DeliveryDay and WaitDays are meaningful only when Delivered is true.
type OrderRecord struct {
	Replication int     `json:"replication"`
	OrderID     int     `json:"order_id"`
	Customer    string  `json:"customer"`
	Product     string  `json:"product"`
	Facility    string  `json:"facility"`
	OrderDay    int     `json:"order_day"`
	Quantity    float64 `json:"quantity"`
	Delivered   bool    `json:"delivered"`
	DeliveryDay int     `json:"delivery_day"`
	WaitDays    int     `json:"wait_days"`
	OnTime      bool    `json:"on_time"`
}

// InventorySnapshot captures the on-hand stock of one facility-product at the end of a day.
type InventorySnapshot struct {
	Replication int     `json:"replication"`
	Day         int     `json:"day"`
	Facility    string  `json:"facility"`
	Product     string  `json:"product"`
	OnHand      float64 `json:"on_hand"`
	Position    float64 `json:"position"`
}

// MaterialUse captures one material consumed by a production run.
type MaterialUse struct {
	Material  string  `json:"material"`
	Consumed  float64 `json:"consumed"`
	Remaining float64 `json:"remaining"`
}

// Production statuses.
const (
	StatusActive = "active"
	StatusIdle   = "idle"
)

// ProductionRecord captures one day of production for one facility-product.
type ProductionRecord struct {
	Day       int           `json:"day"`
	Facility  string        `json:"facility"`
	Product   string        `json:"product"`
	Policy    string        `json:"policy"`
	Status    string        `json:"status"`
	Target    float64       `json:"target"`
	Produced  float64       `json:"produced"`
	Materials []MaterialUse `json:"materials,omitempty"`
	Inventory float64       `json:"inventory"`
	LimitedBy string        `json:"limited_by,omitempty"`
}

// FlowRecord captures one replenishment shipment between facilities.
type FlowRecord struct {
	ShipmentID  int     `json:"shipment_id"`
	Day         int     `json:"day"`
	ArrivalDay  int     `json:"arrival_day"`
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Product     string  `json:"product"`
	Mode        string  `json:"mode,omitempty"`
	Quantity    float64 `json:"quantity"`
	Requested   float64 `json:"requested"`
	Cost        float64 `json:"cost"`
}

// TripRecord aggregates the shipped quantity of one lane and mode over the horizon.
type TripRecord struct {
	Origin          string  `json:"origin"`
	Destination     string  `json:"destination"`
	Mode            string  `json:"mode,omitempty"`
	Quantity        float64 `json:"quantity"`
	VehicleCapacity float64 `json:"vehicle_capacity"`
	Trips           int     `json:"trips"`
}
