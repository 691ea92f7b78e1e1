package network

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Material is one line of a parsed bill of materials.
type Material struct {
	Name       string  `json:"name"`
	QtyPerUnit float64 `json:"qty_per_unit"`
}

var bomLinePattern = regexp.MustCompile(`^(.+?)\s*\(\s*([0-9]*\.?[0-9]+)\s*\)$`)

// ParseBOM decodes "Material(qty), Material(qty)" into material lines.
// Lines that do not match are skipped and reported in the returned error;
// the valid lines are still returned.
func ParseBOM(encoded string) ([]Material, error) {
	var (
		out []Material
		bad []string
	)
	for _, part := range strings.Split(encoded, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m := bomLinePattern.FindStringSubmatch(part)
		if m == nil {
			bad = append(bad, part)
			continue
		}
		qty, err := strconv.ParseFloat(m[2], 64)
		if err != nil || qty <= 0 {
			bad = append(bad, part)
			continue
		}
		out = append(out, Material{Name: strings.TrimSpace(m[1]), QtyPerUnit: qty})
	}
	if len(bad) > 0 {
		return out, fmt.Errorf("unparsable BOM entries %q", bad)
	}
	return out, nil
}
