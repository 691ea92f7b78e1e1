package network

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func float64Ptr(v float64) *float64 { return &v }

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseBOM_TwoMaterials(t *testing.T) {
	got, err := ParseBOM("Raw_Material_1(2), Raw_Material_2(1)")
	require.NoError(t, err)
	assert.Equal(t, []Material{
		{Name: "Raw_Material_1", QtyPerUnit: 2},
		{Name: "Raw_Material_2", QtyPerUnit: 1},
	}, got)
}

func TestParseBOM_SkipsBadEntries(t *testing.T) {
	got, err := ParseBOM("Steel(0.5), Glue, Paint(0)")
	assert.Error(t, err)
	assert.Equal(t, []Material{{Name: "Steel", QtyPerUnit: 0.5}}, got)
}

func TestUnitDays(t *testing.T) {
	tests := []struct {
		unit  string
		want  float64
		known bool
	}{
		{"DAY", 1, true},
		{"days", 1, true},
		{"Week", 7, true},
		{"MONTHS", 30, true},
		{"year", 365, true},
		{"hour", 1.0 / 24, true},
		{"", 1, true},
		{"fortnight", 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.unit, func(t *testing.T) {
			got, known := UnitDays(tt.unit)
			assert.InDelta(t, tt.want, got, 1e-12)
			assert.Equal(t, tt.known, known)
		})
	}
}

func TestLoadInput_StrictYAML(t *testing.T) {
	path := writeTempYAML(t, `
facilities:
  - {name: Plant, type: Plant}
  - {name: DC1, type: DC}
inventory_policies:
  - {facility: DC1, product: Widget, policy: sS, value1: 100, value2: 500, initial_inventory: 300}
input_factors:
  - {facility: DC1, product: Widget, s: "100,200,50", S: "500,800,100"}
`)
	in, err := LoadInput(path)
	require.NoError(t, err)
	require.Len(t, in.Facilities, 2)
	require.Len(t, in.InventoryPolicies, 1)
	assert.Equal(t, 300.0, *in.InventoryPolicies[0].InitialInventory)
	assert.Equal(t, "100,200,50", in.InputFactors[0].LowerS)
	assert.Equal(t, "500,800,100", in.InputFactors[0].UpperS)
}

func TestLoadInput_RejectsUnknownKeys(t *testing.T) {
	path := writeTempYAML(t, `
facilities:
  - {name: Plant, typo_field: Plant}
`)
	_, err := LoadInput(path)
	assert.Error(t, err)
}

func TestDecodeInput_NumericDistributionScalar(t *testing.T) {
	in, err := DecodeInput(strings.NewReader(`
customer_order_profiles:
  - {customer: C1, product: Widget, demand: 25, inter_arrival: "Constant(2)"}
`))
	require.NoError(t, err)
	assert.Equal(t, "25", in.CustomerOrderProfiles[0].Demand)
}

func TestNewIndex_DefaultsAndWarnings(t *testing.T) {
	// GIVEN a stream with no order profile and a policy with no warehousing row
	in := &Input{
		Facilities: []Facility{{Name: "DC1", Type: "DC"}},
		InventoryPolicies: []InventoryPolicy{
			{Facility: "DC1", Product: "Widget", Value1: float64Ptr(50), Value2: float64Ptr(200)},
		},
		CustomerFulfillment: []CustomerFulfillment{{Customer: "C1", Product: "Widget", Facility: "DC1"}},
	}

	// WHEN the index is built
	x := NewIndex(in)

	// THEN defaults apply and each fallback is reported
	p, ok := x.Policy(Key{Facility: "DC1", Product: "Widget"})
	require.True(t, ok)
	assert.Equal(t, DefaultHoldingCost, p.HoldingCost)
	assert.Equal(t, DefaultInboundCost, p.InboundCost)
	assert.Equal(t, DefaultOutboundCost, p.OutboundCost)

	require.Len(t, x.Streams, 1)
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 100.0, x.Streams[0].Demand.Sample(rng))
	assert.Equal(t, 1.0, x.Streams[0].InterArrival.Sample(rng))
	assert.Equal(t, DefaultServiceWindowDays, x.Streams[0].ServiceWindowDays)

	codes := map[string]bool{}
	for _, w := range x.Warnings() {
		codes[w.Code] = true
	}
	assert.True(t, codes[WarnMissingOrderProfile])
	assert.True(t, codes[WarnMissingWarehousing])
}

func TestNewIndex_MalformedDemandFallsBackTo100(t *testing.T) {
	in := &Input{
		InventoryPolicies:   []InventoryPolicy{{Facility: "DC1", Product: "Widget", Value1: float64Ptr(1), Value2: float64Ptr(2)}},
		CustomerFulfillment: []CustomerFulfillment{{Customer: "C1", Product: "Widget", Facility: "DC1"}},
		CustomerOrderProfiles: []CustomerOrderProfile{
			{Customer: "C1", Product: "Widget", Demand: "Triangular(1,2,3)", InterArrival: "Constant(3)"},
		},
	}
	x := NewIndex(in)
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, 100.0, x.Streams[0].Demand.Sample(rng))
	assert.Equal(t, 3.0, x.Streams[0].InterArrival.Sample(rng))
}

func TestNewIndex_ProductionBOMParsedOnce(t *testing.T) {
	in := &Input{
		InventoryPolicies: []InventoryPolicy{
			{Facility: "Plant", Product: "Widget", Value1: float64Ptr(10), Value2: float64Ptr(100)},
			{Facility: "Plant", Product: "Raw_Material_1", Value1: float64Ptr(10), Value2: float64Ptr(100)},
			{Facility: "Plant", Product: "Raw_Material_2", Value1: float64Ptr(10), Value2: float64Ptr(100)},
		},
		Production: []Production{
			{Facility: "Plant", Product: "Widget", Policy: "make-by-demand", Rate: float64Ptr(70), RateUnit: "WEEK", BOM: "B1"},
		},
		BOMs: []BOM{{ID: "B1", Product: "Widget", Materials: "Raw_Material_1(2), Raw_Material_2(1)"}},
	}
	x := NewIndex(in)
	pp := x.Production[Key{Facility: "Plant", Product: "Widget"}]
	require.NotNil(t, pp)
	assert.Equal(t, PolicyMakeByDemand, pp.Kind)
	assert.InDelta(t, 10.0, pp.DailyRate, 1e-9)
	assert.Len(t, pp.Materials, 2)
}

func TestNewIndex_SourceLaneResolution(t *testing.T) {
	in := &Input{
		InventoryPolicies: []InventoryPolicy{
			{Facility: "Plant", Product: "Widget", Value1: float64Ptr(10), Value2: float64Ptr(100)},
			{Facility: "DC1", Product: "Widget", Value1: float64Ptr(10), Value2: float64Ptr(100)},
		},
		Replenishment: []Replenishment{{Facility: "DC1", Product: "Widget", Source: "Plant", UnitCost: float64Ptr(0.25)}},
		Transportation: []Transportation{{
			Origin: "Plant", Destination: "DC1", Mode: "Truck",
			UnitCost: float64Ptr(2), FixedCost: float64Ptr(50), TimeDistribution: "Constant(1)", TimeUnit: "WEEK",
		}},
		TransportationModes: []TransportationMode{{Name: "Truck", VehicleCapacity: float64Ptr(400)}},
		Warehousing:         []Warehousing{{Facility: "Plant"}, {Facility: "DC1"}},
	}
	x := NewIndex(in)
	sp := x.Sources[Key{Facility: "DC1", Product: "Widget"}]
	require.NotNil(t, sp)
	assert.Equal(t, Key{Facility: "Plant", Product: "Widget"}, sp.Source)
	assert.Equal(t, 0.25, sp.Surcharge)
	assert.Equal(t, 2.0, sp.Lane.UnitCost)
	assert.Equal(t, 50.0, sp.Lane.FixedCost)
	assert.Equal(t, 7.0, sp.Lane.LeadTimeUnitDays)
	assert.Equal(t, 400.0, sp.Lane.VehicleCapacity)
	assert.Empty(t, x.Warnings())
}

func TestDiagnostics_DeduplicatesByCodeAndSubject(t *testing.T) {
	var d Diagnostics
	d.Add(WarnMissingWarehousing, "DC1", "first")
	d.Add(WarnMissingWarehousing, "DC1", "second")
	d.Add(WarnMissingWarehousing, "DC2", "third")
	ws := d.Warnings()
	require.Len(t, ws, 2)
	assert.Equal(t, "first", ws[0].Message)
}
