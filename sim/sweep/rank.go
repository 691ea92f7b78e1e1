package sweep

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RankedScenario is one report row. Money and percentages are rounded to
// two decimals.
type RankedScenario struct {
	Rank             int             `json:"rank"`
	ScenarioID       int             `json:"scenario_id"`
	Description      string          `json:"description"`
	MeanCost         decimal.Decimal `json:"mean_cost"`
	CostStdDev       decimal.Decimal `json:"cost_sd"`
	MinCost          decimal.Decimal `json:"min_cost"`
	MaxCost          decimal.Decimal `json:"max_cost"`
	MeanFillRate     decimal.Decimal `json:"mean_fill_rate"`
	MeanServiceLevel decimal.Decimal `json:"mean_service_level"`
}

// Money rounds v to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Rank orders results by mean cost ascending, then by mean fill rate
// descending, then by scenario ID. results is not modified.
func Rank(results []ScenarioResult) []RankedScenario {
	order := make([]int, len(results))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ra, rb := &results[order[a]], &results[order[b]]
		if ra.Cost.Mean != rb.Cost.Mean {
			return ra.Cost.Mean < rb.Cost.Mean
		}
		if ra.FillRate.Mean != rb.FillRate.Mean {
			return ra.FillRate.Mean > rb.FillRate.Mean
		}
		return ra.Scenario.ID < rb.Scenario.ID
	})

	rows := make([]RankedScenario, len(order))
	for i, idx := range order {
		r := &results[idx]
		rows[i] = RankedScenario{
			Rank:             i + 1,
			ScenarioID:       r.Scenario.ID,
			Description:      r.Scenario.Description,
			MeanCost:         Money(r.Cost.Mean),
			CostStdDev:       Money(r.Cost.StdDev),
			MinCost:          Money(r.Cost.Min),
			MaxCost:          Money(r.Cost.Max),
			MeanFillRate:     Money(r.FillRate.Mean),
			MeanServiceLevel: Money(r.ServiceLevel.Mean),
		}
	}
	return rows
}
