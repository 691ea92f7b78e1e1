package network

import "strings"

// unitDays maps a normalized time-unit name to its length in days.
var unitDays = map[string]float64{
	"HOUR":  1.0 / 24,
	"DAY":   1,
	"WEEK":  7,
	"MONTH": 30,
	"YEAR":  365,
}

// UnitDays converts a time-unit name (HOUR, DAY, WEEK, MONTH, YEAR; any case,
// singular or plural) to days. The second result is false for unknown units,
// in which case one day is returned.
func UnitDays(unit string) (float64, bool) {
	u := strings.ToUpper(strings.TrimSpace(unit))
	if u == "" {
		return 1, true
	}
	if d, ok := unitDays[u]; ok {
		return d, true
	}
	if d, ok := unitDays[strings.TrimSuffix(u, "S")]; ok {
		return d, true
	}
	return 1, false
}
