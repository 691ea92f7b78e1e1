// Package distribution parses distribution specifications such as "Normal(100, 20)"
// and draws samples from them.
//
// Samplers are immutable. All randomness comes from the *rand.Rand passed to Sample,
// so one parsed Sampler can be shared by independently-seeded replications.
package distribution

import (
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
)

// DefaultValue is the constant returned for specifications that cannot be parsed.
const DefaultValue = 100.0

// Sampler draws a single value from a distribution.
type Sampler interface {
	Sample(rng *rand.Rand) float64
	String() string
}

// UniformSampler draws uniformly from [min, max).
type UniformSampler struct {
	min, max float64
}

func (s *UniformSampler) Sample(rng *rand.Rand) float64 {
	return s.min + rng.Float64()*(s.max-s.min)
}

func (s *UniformSampler) String() string {
	return fmt.Sprintf("Uniform(%g, %g)", s.min, s.max)
}

// NormalSampler draws from a Gaussian using the Box-Muller transform.
type NormalSampler struct {
	mean, stdDev float64
}

func (s *NormalSampler) Sample(rng *rand.Rand) float64 {
	// u1 in (0, 1] keeps the log finite
	u1 := 1 - rng.Float64()
	u2 := rng.Float64()
	z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
	return s.mean + z*s.stdDev
}

func (s *NormalSampler) String() string {
	return fmt.Sprintf("Normal(%g, %g)", s.mean, s.stdDev)
}

// ExponentialSampler draws by inverting the exponential CDF.
type ExponentialSampler struct {
	lambda float64
}

func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return -math.Log(1-rng.Float64()) / s.lambda
}

func (s *ExponentialSampler) String() string {
	return fmt.Sprintf("Exponential(%g)", s.lambda)
}

// PoissonSampler draws event counts with Knuth's product algorithm.
// Cost is linear in lambda, which is fine for daily demand sizes.
type PoissonSampler struct {
	lambda float64
}

func (s *PoissonSampler) Sample(rng *rand.Rand) float64 {
	limit := math.Exp(-s.lambda)
	k := 0
	p := 1.0
	for {
		p *= rng.Float64()
		if p <= limit {
			return float64(k)
		}
		k++
	}
}

func (s *PoissonSampler) String() string {
	return fmt.Sprintf("Poisson(%g)", s.lambda)
}

// ConstantSampler always returns the same value.
type ConstantSampler struct {
	value float64
}

func (s *ConstantSampler) Sample(_ *rand.Rand) float64 {
	return s.value
}

func (s *ConstantSampler) String() string {
	return fmt.Sprintf("Constant(%g)", s.value)
}

// Constant returns a sampler that always yields v.
func Constant(v float64) Sampler {
	return &ConstantSampler{value: v}
}

var specPattern = regexp.MustCompile(`^([A-Za-z]+)\s*\(([^()]*)\)$`)

// paramCounts lists the recognized distribution names (lower-cased) and their arity.
var paramCounts = map[string]int{
	"uniform":     2,
	"normal":      2,
	"exponential": 1,
	"poisson":     1,
	"constant":    1,
}

// Parse turns a specification string into a Sampler.
// A bare number is a constant. Otherwise the string must look like Name(p1, ...).
func Parse(spec string) (Sampler, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("empty distribution spec")
	}
	if v, err := strconv.ParseFloat(spec, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("distribution constant must be finite, got %q", spec)
		}
		return Constant(v), nil
	}

	m := specPattern.FindStringSubmatch(spec)
	if m == nil {
		return nil, fmt.Errorf("malformed distribution spec %q", spec)
	}
	name := strings.ToLower(m[1])
	want, ok := paramCounts[name]
	if !ok {
		return nil, fmt.Errorf("unknown distribution %q", m[1])
	}
	params, err := parseParams(m[2])
	if err != nil {
		return nil, fmt.Errorf("distribution %q: %w", spec, err)
	}
	if len(params) != want {
		return nil, fmt.Errorf("distribution %q: want %d parameters, got %d", spec, want, len(params))
	}

	switch name {
	case "uniform":
		return &UniformSampler{min: params[0], max: params[1]}, nil
	case "normal":
		return &NormalSampler{mean: params[0], stdDev: params[1]}, nil
	case "exponential":
		if params[0] <= 0 {
			return nil, fmt.Errorf("distribution %q: lambda must be positive", spec)
		}
		return &ExponentialSampler{lambda: params[0]}, nil
	case "poisson":
		if params[0] < 0 {
			return nil, fmt.Errorf("distribution %q: lambda must be non-negative", spec)
		}
		return &PoissonSampler{lambda: params[0]}, nil
	default:
		return Constant(params[0]), nil
	}
}

func parseParams(raw string) ([]float64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	fields := strings.Split(raw, ",")
	params := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, fmt.Errorf("parameter %q is not a number", strings.TrimSpace(f))
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("parameter %q must be finite", strings.TrimSpace(f))
		}
		params = append(params, v)
	}
	return params, nil
}

// ParseOrDefault behaves like Parse but never fails: an unparsable spec yields
// Constant(DefaultValue). The parse error is still returned so callers can surface it.
func ParseOrDefault(spec string) (Sampler, error) {
	s, err := Parse(spec)
	if err != nil {
		return Constant(DefaultValue), err
	}
	return s, nil
}
