package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/internal/testutil"
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/scenario"
)

func int64Ptr(v int64) *int64 { return &v }

// sweepInput is the two-echelon fixture with a 2×2 factor grid on the DC.
func sweepInput() *network.Input {
	in := testutil.TwoEchelonInput()
	in.InputFactors = []network.InputFactor{
		{Facility: "DC1", Product: "Widget", LowerS: "50,100,50", UpperS: "200,300,100"},
	}
	return in
}

func TestStatistics_PopulationStdDev(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	st := NewStatistics(values)
	assert.Equal(t, 2.0, st.Min)
	assert.Equal(t, 9.0, st.Max)
	testutil.AssertFloat64Equal(t, "mean", 5.0, st.Mean, 1e-12)
	testutil.AssertFloat64Equal(t, "sd", 2.0, st.StdDev, 1e-12)
	assert.Equal(t, 8, st.Count)

	// pure: same input, same output, input untouched
	assert.Equal(t, st, NewStatistics(values))
	assert.Equal(t, []float64{2, 4, 4, 4, 5, 5, 7, 9}, values)
}

func TestStatistics_EmptyAndSingle(t *testing.T) {
	assert.Equal(t, Statistics{}, NewStatistics(nil))
	st := NewStatistics([]float64{3.5})
	assert.Equal(t, Statistics{Min: 3.5, Max: 3.5, Mean: 3.5, StdDev: 0, Count: 1}, st)
}

func TestReduce_AveragesCostsAndKeepsFirstDetails(t *testing.T) {
	first := &sim.ReplicationResult{
		Replication: 1, TotalCost: 10, FillRate: 100, ServiceLevel: 50,
		Costs:   sim.CostBreakdown{Transportation: 4, Production: 2, Handling: 2, Inventory: 2},
		Details: sim.Details{Inventory: []sim.InventoryDetail{{Facility: "DC1", Product: "Widget"}}},
	}
	second := &sim.ReplicationResult{
		Replication: 2, TotalCost: 20, FillRate: 80, ServiceLevel: 100,
		Costs:   sim.CostBreakdown{Transportation: 8, Production: 4, Handling: 4, Inventory: 4},
		Details: sim.Details{Inventory: []sim.InventoryDetail{{Facility: "other"}}},
	}

	res := reduce(scenario.Scenario{ID: 1}, []*sim.ReplicationResult{first, second})

	assert.Equal(t, 2, res.Replications)
	assert.Equal(t, 15.0, res.Cost.Mean)
	assert.Equal(t, 5.0, res.Cost.StdDev)
	assert.Equal(t, 90.0, res.FillRate.Mean)
	assert.Equal(t, 75.0, res.ServiceLevel.Mean)
	assert.Equal(t, sim.CostBreakdown{Transportation: 6, Production: 3, Handling: 3, Inventory: 3}, res.Costs)
	assert.Equal(t, "DC1", res.Details.Inventory[0].Facility)
}

func TestRun_ScenarioCountMatchesPreview(t *testing.T) {
	in := sweepInput()
	report, err := Run(context.Background(), in, Options{HorizonDays: 30, Replications: 2, Seed: int64Ptr(1)})
	require.NoError(t, err)
	assert.Equal(t, Count(in), len(report.Scenarios))
	assert.Equal(t, 4, len(report.Scenarios))
	for i, sr := range report.Scenarios {
		assert.Equal(t, i+1, sr.Scenario.ID)
		assert.Equal(t, 2, sr.Replications)
		assert.Nil(t, sr.Logs)
		assert.GreaterOrEqual(t, sr.FillRate.Min, 0.0)
		assert.LessOrEqual(t, sr.FillRate.Max, 100.0)
		assert.GreaterOrEqual(t, sr.ServiceLevel.Min, 0.0)
		assert.LessOrEqual(t, sr.ServiceLevel.Max, 100.0)
	}
	assert.NotEqual(t, uuid.Nil, report.RunID)
}

func TestRun_SeededIsIndependentOfWorkers(t *testing.T) {
	// GIVEN the same seed
	in := sweepInput()
	opts := Options{HorizonDays: 60, Replications: 3, Seed: int64Ptr(99)}

	// WHEN the sweep runs serially and in parallel
	opts.Workers = 1
	serial, err := Run(context.Background(), in, opts)
	require.NoError(t, err)
	opts.Workers = 8
	parallel, err := Run(context.Background(), in, opts)
	require.NoError(t, err)

	// THEN every scenario's statistics are identical
	require.Equal(t, len(serial.Scenarios), len(parallel.Scenarios))
	for i := range serial.Scenarios {
		assert.Equal(t, serial.Scenarios[i].Cost, parallel.Scenarios[i].Cost)
		assert.Equal(t, serial.Scenarios[i].FillRate, parallel.Scenarios[i].FillRate)
		assert.Equal(t, serial.Scenarios[i].ServiceLevel, parallel.Scenarios[i].ServiceLevel)
		assert.Equal(t, serial.Scenarios[i].Costs, parallel.Scenarios[i].Costs)
	}
	assert.Equal(t, int64(99), serial.Seed)
}

func TestRunWithLogs_ProgressOncePerScenario(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []Progress
	)
	report, err := RunWithLogs(context.Background(), sweepInput(),
		Options{HorizonDays: 20, Replications: 3, Workers: 4, Seed: int64Ptr(5)},
		func(p Progress) {
			mu.Lock()
			defer mu.Unlock()
			calls = append(calls, p)
		})
	require.NoError(t, err)

	require.Len(t, calls, len(report.Scenarios))
	seen := map[int]bool{}
	for i, p := range calls {
		assert.Equal(t, i+1, p.Completed)
		assert.Equal(t, 4, p.Total)
		require.NotNil(t, p.Scenario)
		assert.False(t, seen[p.Scenario.Scenario.ID])
		seen[p.Scenario.Scenario.ID] = true
	}
}

func TestRunWithLogs_RetentionBounds(t *testing.T) {
	// GIVEN 5 replications with full logging
	const horizon, reps = 15, 5
	report, err := RunWithLogs(context.Background(), sweepInput(),
		Options{HorizonDays: horizon, Replications: reps, Seed: int64Ptr(3)}, nil)
	require.NoError(t, err)

	for _, sr := range report.Scenarios {
		logs := sr.Logs
		require.NotNil(t, logs)

		// THEN orders come from every replication
		orderReps := map[int]bool{}
		for _, o := range logs.Orders {
			orderReps[o.Replication] = true
		}
		assert.Len(t, orderReps, reps)

		// AND snapshots from the first three only
		snapReps := map[int]bool{}
		for _, s := range logs.Snapshots {
			snapReps[s.Replication] = true
		}
		assert.Equal(t, map[int]bool{1: true, 2: true, 3: true}, snapReps)
		assert.Len(t, logs.Snapshots, 3*horizon*2)

		// AND production covers a single replication's horizon
		assert.Len(t, logs.Production, horizon)
		assert.Equal(t, len(logs.Orders), logs.Summary.Orders)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, sweepInput(), Options{HorizonDays: 30, Replications: 2})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRun_NoValidScenarios(t *testing.T) {
	in := sweepInput()
	in.InputFactors = []network.InputFactor{{Facility: "DC1", Product: "Widget", LowerS: "500", UpperS: "100"}}

	report, err := Run(context.Background(), in, Options{HorizonDays: 5, Replications: 1})

	require.NoError(t, err)
	assert.Empty(t, report.Scenarios)
	assert.Equal(t, 0, Count(in))
}

func TestRun_RecordsMetrics(t *testing.T) {
	m := NewMetrics("inventory_sim_test")
	_, err := Run(context.Background(), sweepInput(),
		Options{HorizonDays: 10, Replications: 2, Seed: int64Ptr(1), Metrics: m})
	require.NoError(t, err)

	assert.Equal(t, 4.0, promtestutil.ToFloat64(m.ScenariosCompleted))
	assert.Equal(t, 8.0, promtestutil.ToFloat64(m.ReplicationsCompleted))
	assert.Equal(t, 1.0, promtestutil.ToFloat64(m.SweepsTotal.WithLabelValues("success")))
}

func TestRank_CostThenFillRate(t *testing.T) {
	results := []ScenarioResult{
		{Scenario: scenario.Scenario{ID: 1, Description: "a"}, Cost: Statistics{Mean: 300.456}, FillRate: Statistics{Mean: 99}},
		{Scenario: scenario.Scenario{ID: 2, Description: "b"}, Cost: Statistics{Mean: 100}, FillRate: Statistics{Mean: 90}},
		{Scenario: scenario.Scenario{ID: 3, Description: "c"}, Cost: Statistics{Mean: 100}, FillRate: Statistics{Mean: 95}},
	}

	rows := Rank(results)

	require.Len(t, rows, 3)
	assert.Equal(t, []int{3, 2, 1}, []int{rows[0].ScenarioID, rows[1].ScenarioID, rows[2].ScenarioID})
	assert.Equal(t, 1, rows[0].Rank)
	assert.True(t, rows[2].MeanCost.Equal(decimal.RequireFromString("300.46")))
	assert.Equal(t, 1, results[0].Scenario.ID, "input order untouched")
}
