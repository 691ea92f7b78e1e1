package sweep

import "math"

// Statistics summarizes one metric across the replications of a scenario.
// StdDev is the population standard deviation (divides by Count).
type Statistics struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"sd"`
	Count  int     `json:"count"`
}

// NewStatistics computes Statistics from raw values.
// Returns zero-value Statistics for empty input. The input is not modified.
func NewStatistics(values []float64) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}
	st := Statistics{Min: values[0], Max: values[0], Count: len(values)}
	sum := 0.0
	for _, v := range values {
		sum += v
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
	}
	st.Mean = sum / float64(len(values))

	sq := 0.0
	for _, v := range values {
		d := v - st.Mean
		sq += d * d
	}
	st.StdDev = math.Sqrt(sq / float64(len(values)))
	return st
}
