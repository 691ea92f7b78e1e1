package trace

// LogSummary aggregates statistics from a SimulationLog.
type LogSummary struct {
	Orders         int
	Delivered      int
	OnTime         int
	Outstanding    int
	MeanWaitDays   float64
	MaxWaitDays    int
	ProductionDays int
	ActiveDays     int
	Shipments      int
	ShippedUnits   float64
	Trips          int
	UnitsByLane    map[string]float64 // "origin->destination" → shipped units
}

// Summarize computes aggregate statistics from a SimulationLog.
// Safe for nil or empty logs (returns zero-value fields).
func Summarize(sl *SimulationLog) *LogSummary {
	summary := &LogSummary{
		UnitsByLane: make(map[string]float64),
	}
	if sl == nil {
		return summary
	}

	summary.Orders = len(sl.Orders)
	totalWait := 0
	for _, o := range sl.Orders {
		if !o.Delivered {
			summary.Outstanding++
			continue
		}
		summary.Delivered++
		if o.OnTime {
			summary.OnTime++
		}
		totalWait += o.WaitDays
		if o.WaitDays > summary.MaxWaitDays {
			summary.MaxWaitDays = o.WaitDays
		}
	}
	if summary.Delivered > 0 {
		summary.MeanWaitDays = float64(totalWait) / float64(summary.Delivered)
	}

	summary.ProductionDays = len(sl.Production)
	for _, p := range sl.Production {
		if p.Status == StatusActive {
			summary.ActiveDays++
		}
	}

	summary.Shipments = len(sl.Flows)
	for _, f := range sl.Flows {
		summary.ShippedUnits += f.Quantity
		summary.UnitsByLane[f.Origin+"->"+f.Destination] += f.Quantity
	}
	for _, tr := range sl.Trips {
		summary.Trips += tr.Trips
	}
	return summary
}
