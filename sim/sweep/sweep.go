// Package sweep runs the scenario × replication matrix of an inventory
// network, reduces replication results into per-scenario statistics and ranks
// the scenarios.
package sweep

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/inventory-sim/inventory-sim/sim"
	"github.com/inventory-sim/inventory-sim/sim/network"
	"github.com/inventory-sim/inventory-sim/sim/scenario"
	"github.com/inventory-sim/inventory-sim/sim/trace"
)

// Count returns the number of scenarios a sweep over in would run.
func Count(in *network.Input) int {
	return scenario.Count(in)
}

// Run executes the sweep and returns statistics only; no logs are kept.
func Run(ctx context.Context, in *network.Input, opts Options) (*Report, error) {
	opts.Logging = trace.LogLevelNone
	return run(ctx, in, opts, nil)
}

// RunWithLogs executes the sweep with full logging. progress, if non-nil, is
// called once per completed scenario; calls never overlap.
func RunWithLogs(ctx context.Context, in *network.Input, opts Options, progress func(Progress)) (*Report, error) {
	opts.Logging = trace.LogLevelFull
	return run(ctx, in, opts, progress)
}

// scenarioRun tracks the replications of one scenario in flight.
type scenarioRun struct {
	scenario  scenario.Scenario
	reps      []*sim.ReplicationResult
	remaining int
}

func run(ctx context.Context, in *network.Input, opts Options, progress func(Progress)) (*Report, error) {
	opts = opts.withDefaults()
	if in == nil {
		in = &network.Input{}
	}
	index := network.NewIndex(in)
	scenarios, scenarioWarnings := scenario.Generate(index)

	report := &Report{
		RunID:     uuid.New(),
		Seed:      opts.masterSeed(),
		Scenarios: make([]ScenarioResult, len(scenarios)),
		Warnings:  append(index.Warnings(), scenarioWarnings...),
	}
	for _, w := range report.Warnings {
		logrus.Warnf("[run %s] %s", report.RunID, w)
	}
	logrus.Infof("[run %s] %d scenarios × %d replications, horizon %d days, %d workers",
		report.RunID, len(scenarios), opts.Replications, opts.HorizonDays, opts.Workers)

	runs := make([]*scenarioRun, len(scenarios))
	for i, sc := range scenarios {
		runs[i] = &scenarioRun{
			scenario:  sc,
			reps:      make([]*sim.ReplicationResult, opts.Replications),
			remaining: opts.Replications,
		}
	}

	var (
		mu        sync.Mutex
		completed int
		master    = sim.NewSimulationKey(report.Seed)
		start     = time.Now()
	)
	finish := func(si, rep int, res *sim.ReplicationResult) {
		mu.Lock()
		defer mu.Unlock()
		sr := runs[si]
		sr.reps[rep-1] = res
		sr.remaining--
		if sr.remaining > 0 {
			return
		}
		result := reduce(sr.scenario, sr.reps)
		if opts.Logging == trace.LogLevelFull {
			result.Logs = collectLogs(sr.reps)
		}
		report.Scenarios[si] = result
		sr.reps = nil
		completed++
		opts.Metrics.ObserveScenario()
		logrus.Debugf("[run %s] scenario %d/%d done: mean cost %.2f, fill rate %.2f%%",
			report.RunID, completed, len(runs), result.Cost.Mean, result.FillRate.Mean)
		if progress != nil {
			progress(Progress{Completed: completed, Total: len(runs), Scenario: &report.Scenarios[si]})
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
dispatch:
	for si := range runs {
		for rep := 1; rep <= opts.Replications; rep++ {
			if gctx.Err() != nil {
				break dispatch
			}
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				sc := runs[si].scenario
				cfg := sim.ReplicationConfig{
					HorizonDays: opts.HorizonDays,
					Replication: rep,
					Log:         logConfig(opts.Logging, rep),
				}
				rng := sim.NewPartitionedRNG(sim.ReplicationKey(master, sc.ID, rep))
				began := time.Now()
				res, err := sim.NewReplication(index, sc, cfg, rng).Run(gctx)
				if err != nil {
					return err
				}
				opts.Metrics.ObserveReplication(time.Since(began))
				finish(si, rep, res)
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		opts.Metrics.ObserveSweep(false)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		opts.Metrics.ObserveSweep(false)
		return nil, err
	}
	opts.Metrics.ObserveSweep(true)
	logrus.Infof("[run %s] completed %d scenarios in %s", report.RunID, completed, time.Since(start).Round(time.Millisecond))
	return report, nil
}
