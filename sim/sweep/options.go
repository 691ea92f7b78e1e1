package sweep

import (
	"runtime"
	"time"

	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// Options configures a sweep. Zero values select the defaults.
type Options struct {
	HorizonDays  int            `json:"horizon_days" yaml:"horizon" validate:"gte=0,lte=3650"`
	Replications int            `json:"replications" yaml:"replications" validate:"gte=0,lte=1000"`
	Workers      int            `json:"workers" yaml:"workers" validate:"gte=0,lte=256"`
	Seed         *int64         `json:"seed,omitempty" yaml:"seed,omitempty"`
	Logging      trace.LogLevel `json:"logging,omitempty" yaml:"logging,omitempty" validate:"omitempty,oneof=none full"`

	// Metrics receives sweep counters when non-nil.
	Metrics *Metrics `json:"-" yaml:"-" validate:"-"`
}

func (o Options) withDefaults() Options {
	if o.HorizonDays <= 0 {
		o.HorizonDays = network.DefaultHorizonDays
	}
	if o.Replications <= 0 {
		o.Replications = network.DefaultReplications
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Logging == "" {
		o.Logging = trace.LogLevelNone
	}
	return o
}

// masterSeed returns the configured seed, or a clock-derived one so that
// unseeded sweeps differ run to run.
func (o Options) masterSeed() int64 {
	if o.Seed != nil {
		return *o.Seed
	}
	return time.Now().UnixNano()
}

// logConfig returns the records collected by replication rep (1-based).
// Orders are kept for every replication, snapshots for the first three,
// production and flow details for the first only.
func logConfig(level trace.LogLevel, rep int) trace.LogConfig {
	if level != trace.LogLevelFull {
		return trace.LogConfig{}
	}
	return trace.LogConfig{
		Orders:    true,
		Snapshots: rep <= snapshotReplications,
		Details:   rep == 1,
	}
}

const snapshotReplications = 3
