package sim

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yevsky/NiDUC/sim/trace"
)

// SimulationResult bundles all outputs of a multi-trial run.
type SimulationResult struct {
	Results  *Results
	Trace    *trace.TrialTrace // first trial only; nil if tracing is disabled
	WallTime time.Duration
}

// RunSimulation runs cfg.Trials independent trials of the system and
// collects their metrics in trial order.
//
// Configuration errors are returned before any trial runs. Cancellation is
// observed at trial boundaries only. On any error no results are returned.
// Results depend only on the system, cfg.Duration, cfg.Trials and cfg.Seed,
// never on cfg.Workers.
func RunSimulation(ctx context.Context, system *System, cfg RunConfig) (*SimulationResult, error) {
	if system == nil {
		return nil, fmt.Errorf("%w: nil system", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i := 0; i < system.NumComponents(); i++ {
		c := system.Component(ComponentID(i))
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if c.NeverFails() {
			logrus.Warnf("component %q has failure rate %v and will never fail", c.Name, c.FailureRate)
		}
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > cfg.Trials {
		workers = cfg.Trials
	}
	logrus.Infof("Starting simulation of %q: %d trials of %.2f h, %d groups, %d components, %d workers",
		system.Name, cfg.Trials, cfg.Duration, len(system.Groups()), system.NumComponents(), workers)
	start := time.Now()

	key := NewSimulationKey(cfg.Seed)
	records := make([]TrialResult, cfg.Trials)
	var firstTrace *trace.TrialTrace

	runTrial := func(sim *Simulator, i int) error {
		sim.rng = key.TrialRNG(i)
		sim.Trace = nil
		if i == 0 && cfg.TraceLevel.Enabled() {
			firstTrace = trace.NewTrialTrace(cfg.TraceLevel, i)
			sim.Trace = firstTrace
		}
		r, err := sim.RunTrial()
		if err != nil {
			return fmt.Errorf("trial %d: %w", i, err)
		}
		records[i] = r
		logrus.Debugf("trial %d: availability=%.6f breaks=%d downtime=%.4f h revenue lost=%.2f",
			i, r.Availability, r.BreakCount, r.TotalBreakTime, r.RevenueLost)
		return nil
	}

	if workers == 1 {
		sim := NewSimulator(system.Clone(), cfg.Duration, nil)
		for i := 0; i < cfg.Trials; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := runTrial(sim, i); err != nil {
				return nil, err
			}
		}
	} else {
		var next atomic.Int64
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < workers; w++ {
			g.Go(func() error {
				sim := NewSimulator(system.Clone(), cfg.Duration, nil)
				for {
					if err := gctx.Err(); err != nil {
						return err
					}
					i := int(next.Add(1) - 1)
					if i >= cfg.Trials {
						return nil
					}
					if err := runTrial(sim, i); err != nil {
						return err
					}
				}
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	results := NewResults(cfg.Duration, cfg.Trials)
	for _, r := range records {
		results.Append(r)
	}
	wall := time.Since(start)
	logrus.Infof("Simulation of %q complete: %d trials in %v", system.Name, cfg.Trials, wall)

	return &SimulationResult{
		Results:  results,
		Trace:    firstTrace,
		WallTime: wall,
	}, nil
}
