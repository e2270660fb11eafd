// Package sweep runs batches of headless sand worlds across a grid of
// phase-change rates and scenes.
package sweep

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"sandca/internal/sims/sand"
	"sandca/internal/telemetry"
)

// Grid lists the values crossed into runs.
type Grid struct {
	Scenes       []string
	EvapRates    []float64
	CondensRates []float64
	Seeds        []int64
}

// Runs expands the grid into one Run per combination, numbered from 1.
func (g Grid) Runs() []telemetry.Run {
	var runs []telemetry.Run
	for _, scene := range g.Scenes {
		for _, evap := range g.EvapRates {
			for _, cond := range g.CondensRates {
				for _, seed := range g.Seeds {
					runs = append(runs, telemetry.Run{
						ID:          len(runs) + 1,
						Seed:        seed,
						Scene:       scene,
						EvapRate:    evap,
						CondensRate: cond,
					})
				}
			}
		}
	}
	return runs
}

// Options controls how each run is simulated.
type Options struct {
	Width, Height int
	Steps         int
	// SampleEvery records one tick out of every SampleEvery.
	SampleEvery int
	Workers     int
}

// Runner executes runs on a worker pool.
type Runner struct {
	opts Options
	out  *telemetry.Output
	log  *zap.Logger
}

// NewRunner builds a runner. out may be nil to skip CSV output.
func NewRunner(opts Options, out *telemetry.Output, log *zap.Logger) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.SampleEvery <= 0 {
		opts.SampleEvery = 1
	}
	if opts.Steps < 0 {
		opts.Steps = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{opts: opts, out: out, log: log}
}

// Run simulates every run and returns the summaries in run order. It stops
// early when ctx is cancelled and returns the context error.
func (r *Runner) Run(ctx context.Context, runs []telemetry.Run) ([]telemetry.Summary, error) {
	jobs := make(chan int)
	summaries := make([]telemetry.Summary, len(runs))
	errs := make(chan error, r.opts.Workers)

	var wg sync.WaitGroup
	for i := 0; i < r.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				s, err := r.simulate(ctx, runs[idx])
				if err != nil {
					errs <- err
					return
				}
				summaries[idx] = s
			}
		}()
	}

feed:
	for i := range runs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		case err := <-errs:
			close(jobs)
			wg.Wait()
			return nil, err
		}
	}
	close(jobs)
	wg.Wait()
	close(errs)
	if err := <-errs; err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *Runner) simulate(ctx context.Context, run telemetry.Run) (telemetry.Summary, error) {
	cfg := sand.DefaultConfig()
	if r.opts.Width > 0 {
		cfg.Width = r.opts.Width
	}
	if r.opts.Height > 0 {
		cfg.Height = r.opts.Height
	}
	cfg.Seed = run.Seed
	cfg.Scene = run.Scene
	cfg.Params.EvapRate = run.EvapRate
	cfg.Params.CondensRate = run.CondensRate

	w := sand.NewWithConfig(cfg, sand.WithLogger(r.log))
	w.Reset(run.Seed)

	records := make([]telemetry.Record, 0, r.opts.Steps/r.opts.SampleEvery+1)
	for step := 1; step <= r.opts.Steps; step++ {
		if err := ctx.Err(); err != nil {
			return telemetry.Summary{}, err
		}
		w.Step()
		if step%r.opts.SampleEvery == 0 {
			records = append(records, telemetry.Sample(run, w))
		}
	}
	if err := r.out.WriteRecords(records); err != nil {
		return telemetry.Summary{}, err
	}
	s := telemetry.Summarize(run, records)
	if err := r.out.WriteSummary(s); err != nil {
		return telemetry.Summary{}, err
	}
	r.log.Debug("run finished",
		zap.Int("run", run.ID),
		zap.String("scene", run.Scene),
		zap.Float64("moves_mean", s.MovesMean),
		zap.Int64("settle_tick", s.SettleTick),
	)
	return s, nil
}
