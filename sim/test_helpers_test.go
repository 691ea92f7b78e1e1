package sim

import (
	"context"
	"testing"

	"github.com/inventory-sim/inventory-sim/sim/internal/testutil"
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/scenario"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

var (
	float64Ptr      = testutil.Float64Ptr
	twoEchelonInput = testutil.TwoEchelonInput
)

func boolPtr(v bool) *bool { return &v }

func fullLog() trace.LogConfig {
	return trace.LogConfig{Orders: true, Snapshots: true, Details: true}
}

func runReplication(t *testing.T, in *network.Input, sc scenario.Scenario, horizon int, seed int64) *ReplicationResult {
	t.Helper()
	x := network.NewIndex(in)
	rep := NewReplication(x, sc, ReplicationConfig{HorizonDays: horizon, Replication: 1, Log: fullLog()},
		NewPartitionedRNG(NewSimulationKey(seed)))
	res, err := rep.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res
}

func baseline() scenario.Scenario {
	return scenario.Scenario{ID: 1, Description: scenario.BaselineDescription}
}
