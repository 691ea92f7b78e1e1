package sim

import (
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// ReplicationConfig groups the per-replication run parameters.
type ReplicationConfig struct {
	HorizonDays int             // simulated days (default 365)
	Replication int             // 1-based label; not a seed
	Log         trace.LogConfig // which records to collect
}

// horizon returns the configured horizon or the default.
func (c ReplicationConfig) horizon() int {
	if c.HorizonDays <= 0 {
		return network.DefaultHorizonDays
	}
	return c.HorizonDays
}
