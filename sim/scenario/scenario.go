// Package scenario expands design-of-experiments input factors into concrete
// (s,S) scenarios. Every assignment it produces satisfies s < S.
package scenario

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/inventory-sim/inventory-sim/sim/network"
)

// Assignment fixes the (s,S) policy of one facility-product.
type Assignment struct {
	Key          network.Key `json:"key"`
	ReorderPoint float64     `json:"s"`
	OrderUpTo    float64     `json:"S"`
}

func (a Assignment) String() string {
	return fmt.Sprintf("%s: s=%g, S=%g", a.Key, a.ReorderPoint, a.OrderUpTo)
}

// Scenario is one point of the sweep. ID is 1-based in generation order.
type Scenario struct {
	ID          int          `json:"id"`
	Assignments []Assignment `json:"assignments"`
	Description string       `json:"description"`
}

// BaselineDescription names the scenario that keeps every declared policy.
const BaselineDescription = "Baseline"

// Range is an inclusive stepped grid.
type Range struct {
	Min  float64
	Max  float64
	Step float64
}

const (
	// MaxRangeValues bounds the grid length of one range.
	MaxRangeValues = 10000
	// MaxScenarios bounds the scenarios a single sweep materializes.
	MaxScenarios = 100000
)

// ParseRange reads "min,max,step" (":" or ";" also separate fields). A single
// value is a one-point range; two values use a step of 1.
func ParseRange(spec string) (Range, error) {
	fields := strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ':' || r == ';' || r == ' ' || r == '\t'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return Range{}, fmt.Errorf("range value %q is not a finite number", f)
		}
		vals = append(vals, v)
	}
	var r Range
	switch len(vals) {
	case 1:
		r = Range{Min: vals[0], Max: vals[0], Step: 1}
	case 2:
		r = Range{Min: vals[0], Max: vals[1], Step: 1}
	case 3:
		r = Range{Min: vals[0], Max: vals[1], Step: vals[2]}
	default:
		return Range{}, fmt.Errorf("range %q: want min,max,step", spec)
	}
	if r.Step <= 0 {
		return Range{}, fmt.Errorf("range %q: step must be positive", spec)
	}
	if r.Min > r.Max {
		return Range{}, fmt.Errorf("range %q: min exceeds max", spec)
	}
	if r.Len() > MaxRangeValues {
		return Range{}, fmt.Errorf("range %q: more than %d values", spec, MaxRangeValues)
	}
	return r, nil
}

const rangeEps = 1e-9

// Len is the number of values in the grid, saturating at math.MaxInt.
func (r Range) Len() int {
	n := math.Floor((r.Max-r.Min)/r.Step+rangeEps) + 1
	if n >= math.MaxInt || math.IsNaN(n) {
		return math.MaxInt
	}
	return int(n)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Values lists min, min+step, ... up to and including max, each rounded to
// two decimals. Values are computed from the index, not accumulated.
func (r Range) Values() []float64 {
	var out []float64
	for i := 0; ; i++ {
		v := r.Min + float64(i)*r.Step
		if v > r.Max+rangeEps {
			break
		}
		out = append(out, round2(v))
	}
	return out
}

// Factor is a parsed input factor: the s and S grids of one facility-product.
type Factor struct {
	Key   network.Key
	Lower []float64
	Upper []float64
}

// Size counts the valid (s,S) pairs without building them.
func (f Factor) Size() int {
	n := 0
	for _, s := range f.Lower {
		// first S strictly above s; Upper is ascending
		i := sort.Search(len(f.Upper), func(i int) bool { return f.Upper[i] > s })
		n += len(f.Upper) - i
	}
	return n
}

// Pairs lists the valid (s,S) pairs, s-major.
func (f Factor) Pairs() []Assignment {
	out := make([]Assignment, 0, f.Size())
	for _, s := range f.Lower {
		for _, bigS := range f.Upper {
			if s < bigS {
				out = append(out, Assignment{Key: f.Key, ReorderPoint: s, OrderUpTo: bigS})
			}
		}
	}
	return out
}

// ParseFactors parses every input factor. Malformed factors are dropped and
// reported; they never abort the sweep.
func ParseFactors(factors []network.InputFactor) ([]Factor, []network.Warning) {
	var (
		out  []Factor
		diag network.Diagnostics
	)
	for i, f := range factors {
		key := network.Key{Facility: f.Facility, Product: f.Product}
		subject := fmt.Sprintf("input_factors[%d] %s", i, key)
		lower, err := ParseRange(f.LowerS)
		if err != nil {
			diag.Add(network.WarnMalformedInputFactor, subject, "s: %v; factor dropped", err)
			continue
		}
		upper, err := ParseRange(f.UpperS)
		if err != nil {
			diag.Add(network.WarnMalformedInputFactor, subject, "S: %v; factor dropped", err)
			continue
		}
		out = append(out, Factor{Key: key, Lower: lower.Values(), Upper: upper.Values()})
	}
	return out, diag.Warnings()
}

// total multiplies the factor sizes, saturating at math.MaxInt.
func total(factors []Factor) int {
	sizes := make([]int, len(factors))
	for i, f := range factors {
		sizes[i] = f.Size()
		if sizes[i] == 0 {
			return 0
		}
	}
	n := 1
	for _, size := range sizes {
		if n > math.MaxInt/size {
			return math.MaxInt
		}
		n *= size
	}
	return n
}

// Count returns the number of scenarios the factors of in describe, without
// materializing them. It saturates at math.MaxInt.
func Count(in *network.Input) int {
	factors, _ := ParseFactors(in.InputFactors)
	if len(factors) == 0 {
		return 1
	}
	return total(factors)
}

// Generate builds the Cartesian product of every factor's valid pairs. With no
// usable factors it falls back to a single legacy scenario. A product larger
// than MaxScenarios is refused with a warning and yields no scenarios.
func Generate(x *network.Index) ([]Scenario, []network.Warning) {
	factors, warnings := ParseFactors(x.Input.InputFactors)
	if len(factors) == 0 {
		sc, w := legacy(x)
		return []Scenario{sc}, append(warnings, w...)
	}

	n := total(factors)
	if n > MaxScenarios {
		var diag network.Diagnostics
		diag.Add(network.WarnTooManyScenarios, "input_factors",
			"%d scenarios exceed the limit of %d; nothing generated", n, MaxScenarios)
		return []Scenario{}, append(warnings, diag.Warnings()...)
	}
	scenarios := make([]Scenario, 0, n)
	if n == 0 {
		return scenarios, warnings
	}

	pairs := make([][]Assignment, len(factors))
	for i, f := range factors {
		pairs[i] = f.Pairs()
	}

	// odometer over pair indexes, last factor fastest
	idx := make([]int, len(factors))
	for {
		assignments := make([]Assignment, len(factors))
		parts := make([]string, len(factors))
		for i := range factors {
			assignments[i] = pairs[i][idx[i]]
			parts[i] = assignments[i].String()
		}
		scenarios = append(scenarios, Scenario{
			ID:          len(scenarios) + 1,
			Assignments: assignments,
			Description: strings.Join(parts, "; "),
		})

		i := len(idx) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(pairs[i]) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			break
		}
	}
	return scenarios, warnings
}

// legacy derives a scenario from the first inventory policy of a DC facility,
// with the s and S the index resolved for it.
func legacy(x *network.Index) (Scenario, []network.Warning) {
	var diag network.Diagnostics
	for _, row := range x.Input.InventoryPolicies {
		if !strings.EqualFold(x.FacilityType(row.Facility), "DC") {
			continue
		}
		p, ok := x.Policy(network.Key{Facility: row.Facility, Product: row.Product})
		if !ok {
			continue
		}
		a := Assignment{Key: p.Key, ReorderPoint: p.ReorderPoint, OrderUpTo: p.OrderUpTo}
		if a.ReorderPoint >= a.OrderUpTo {
			diag.Add(network.WarnLegacyScenario, a.Key.String(),
				"legacy policy has s >= S (%g >= %g); running baseline", a.ReorderPoint, a.OrderUpTo)
			break
		}
		diag.Add(network.WarnLegacyScenario, a.Key.String(), "no input factors; using first DC inventory policy")
		return Scenario{ID: 1, Assignments: []Assignment{a}, Description: a.String()}, diag.Warnings()
	}
	diag.Add(network.WarnLegacyScenario, "input_factors", "no input factors and no DC policy; running baseline")
	return Scenario{ID: 1, Description: BaselineDescription}, diag.Warnings()
}
