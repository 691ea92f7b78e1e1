package sweep

import (
	"github.com/google/uuid"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/scenario"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// ScenarioLogs holds the retained logs of one scenario.
type ScenarioLogs struct {
	Orders     []trace.OrderRecord       `json:"orders"`
	Snapshots  []trace.InventorySnapshot `json:"inventory_snapshots"`
	Production []trace.ProductionRecord  `json:"production"`
	Flows      []trace.FlowRecord        `json:"product_flow"`
	Trips      []trace.TripRecord        `json:"trips"`
	Summary    *trace.LogSummary         `json:"summary"`
}

// ScenarioResult is the durable output of one scenario.
type ScenarioResult struct {
	Scenario     scenario.Scenario  `json:"scenario"`
	Replications int                `json:"replications"`
	Cost         Statistics         `json:"cost"`
	FillRate     Statistics         `json:"fill_rate"`
	ServiceLevel Statistics         `json:"service_level"`
	Costs        sim.CostBreakdown  `json:"cost_breakdown"`
	Details      sim.Details        `json:"details"`
	Trips        []trace.TripRecord `json:"trips"`
	Logs         *ScenarioLogs      `json:"logs,omitempty"`
}

// Progress is reported once per completed scenario.
type Progress struct {
	Completed int
	Total     int
	Scenario  *ScenarioResult
}

// Report is the output of a sweep. Scenarios are in scenario ID order.
type Report struct {
	RunID     uuid.UUID         `json:"run_id"`
	Seed      int64             `json:"seed"`
	Scenarios []ScenarioResult  `json:"scenarios"`
	Warnings  []network.Warning `json:"warnings"`
}

// reduce folds the replication results of one scenario. Results must be in
// replication order; details and trips come from the first.
func reduce(sc scenario.Scenario, reps []*sim.ReplicationResult) ScenarioResult {
	res := ScenarioResult{Scenario: sc, Replications: len(reps)}
	if len(reps) == 0 {
		return res
	}
	costs := make([]float64, len(reps))
	fill := make([]float64, len(reps))
	service := make([]float64, len(reps))
	for i, r := range reps {
		costs[i] = r.TotalCost
		fill[i] = r.FillRate
		service[i] = r.ServiceLevel
		res.Costs.Transportation += r.Costs.Transportation
		res.Costs.Production += r.Costs.Production
		res.Costs.Handling += r.Costs.Handling
		res.Costs.Inventory += r.Costs.Inventory
	}
	n := float64(len(reps))
	res.Costs.Transportation /= n
	res.Costs.Production /= n
	res.Costs.Handling /= n
	res.Costs.Inventory /= n

	res.Cost = NewStatistics(costs)
	res.FillRate = NewStatistics(fill)
	res.ServiceLevel = NewStatistics(service)
	res.Details = reps[0].Details
	res.Trips = reps[0].Trips
	return res
}

// collectLogs concatenates the logs each replication retained, in replication order.
func collectLogs(reps []*sim.ReplicationResult) *ScenarioLogs {
	logs := &ScenarioLogs{
		Orders:     make([]trace.OrderRecord, 0),
		Snapshots:  make([]trace.InventorySnapshot, 0),
		Production: make([]trace.ProductionRecord, 0),
		Flows:      make([]trace.FlowRecord, 0),
		Trips:      make([]trace.TripRecord, 0),
	}
	for _, r := range reps {
		if r.Log == nil {
			continue
		}
		logs.Orders = append(logs.Orders, r.Log.Orders...)
		logs.Snapshots = append(logs.Snapshots, r.Log.Snapshots...)
		logs.Production = append(logs.Production, r.Log.Production...)
		logs.Flows = append(logs.Flows, r.Log.Flows...)
		logs.Trips = append(logs.Trips, r.Log.Trips...)
	}
	logs.Summary = trace.Summarize(&trace.SimulationLog{
		Orders:     logs.Orders,
		Production: logs.Production,
		Flows:      logs.Flows,
		Trips:      logs.Trips,
	})
	return logs
}
