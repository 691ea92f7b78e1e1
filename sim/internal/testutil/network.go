// Package testutil provides shared test infrastructure for the inventory
// simulator: network fixtures and assertion helpers used across sim/ and
// sim/sweep/ test packages.
package testutil

import (
	"math"
	"testing"

	"github.com/inventory-sim/inventory-sim/sim/network"
)

// Float64Ptr returns a pointer to v, for optional input fields.
func Float64Ptr(v float64) *float64 { return &v }

// TwoEchelonInput is a plant feeding one DC that serves one customer.
// The plant regenerates stock continuously without materials; the DC
// replenishes over a stochastic truck lane.
func TwoEchelonInput() *network.Input {
	return &network.Input{
		Facilities: []network.Facility{{Name: "Plant", Type: "Plant"}, {Name: "DC1", Type: "DC"}},
		Products:   []network.Product{{Name: "Widget"}},
		Customers:  []network.Customer{{Name: "C1"}},
		CustomerFulfillment: []network.CustomerFulfillment{
			{Customer: "C1", Product: "Widget", Facility: "DC1"},
		},
		CustomerOrderProfiles: []network.CustomerOrderProfile{
			{Customer: "C1", Product: "Widget", Demand: "Normal(40, 10)", InterArrival: "Uniform(1, 3)", ServiceWindowDays: Float64Ptr(2)},
		},
		Replenishment: []network.Replenishment{{Facility: "DC1", Product: "Widget", Source: "Plant", UnitCost: Float64Ptr(0.1)}},
		Production: []network.Production{
			{Facility: "Plant", Product: "Widget", Policy: "Continuous", Rate: Float64Ptr(30), RateUnit: "DAY", UnitCost: Float64Ptr(2)},
		},
		InventoryPolicies: []network.InventoryPolicy{
			{Facility: "Plant", Product: "Widget", Value1: Float64Ptr(100), Value2: Float64Ptr(1000), InitialInventory: Float64Ptr(500)},
			{Facility: "DC1", Product: "Widget", Value1: Float64Ptr(80), Value2: Float64Ptr(300)},
		},
		Warehousing: []network.Warehousing{
			{Facility: "Plant", InboundCost: Float64Ptr(0.2), OutboundCost: Float64Ptr(0.2), StockingCost: Float64Ptr(0.01)},
			{Facility: "DC1", InboundCost: Float64Ptr(0.5), OutboundCost: Float64Ptr(0.5), StockingCost: Float64Ptr(0.05)},
		},
		Transportation: []network.Transportation{{
			Origin: "Plant", Destination: "DC1", Mode: "Truck",
			UnitCost: Float64Ptr(1.5), FixedCost: Float64Ptr(20), Distance: Float64Ptr(120),
			TimeDistribution: "Uniform(1, 4)", TimeUnit: "DAY",
		}},
		TransportationModes: []network.TransportationMode{{Name: "Truck", VehicleCapacity: Float64Ptr(250)}},
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
