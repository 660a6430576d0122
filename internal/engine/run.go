package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Metric observes the population once per frame during a headless run.
// Observe receives the live population slice; implementations must not
// retain or mutate it.
type Metric interface {
	Name() string
	Observe(bodies []Particle, frame int)
	Value() float64
	Reset()
}

// RunConfig bounds a headless run.
type RunConfig struct {
	Frames      int
	SampleEvery int // record every k-th frame into the result; <=0 means every frame
}

// Sample is one recorded frame.
type Sample struct {
	Frame  int
	Bodies []Particle
}

// Result accumulates a finished run.
type Result struct {
	Samples    []Sample
	Frames     int
	Collisions int
	WallHits   int
	Metrics    map[string]float64
	Elapsed    time.Duration
}

// Runner drives a world for a fixed number of frames outside any
// rendering host, observing metrics and sampling snapshots.
type Runner struct {
	world   *World
	metrics []Metric
}

func NewRunner(w *World) *Runner {
	return &Runner{world: w, metrics: make([]Metric, 0)}
}

func (r *Runner) AddMetric(m Metric) { r.metrics = append(r.metrics, m) }

func (r *Runner) World() *World { return r.world }

// Run advances the world cfg.Frames times, checking ctx between frames.
// The initial state is recorded as frame 0 before the first advance.
func (r *Runner) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if cfg.Frames <= 0 {
		return nil, fmt.Errorf("engine: frames must be positive, got %d", cfg.Frames)
	}
	stride := cfg.SampleEvery
	if stride <= 0 {
		stride = 1
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	res := &Result{
		Samples: make([]Sample, 0, cfg.Frames/stride+1),
		Metrics: make(map[string]float64),
	}
	start := time.Now()

	res.Samples = append(res.Samples, Sample{Frame: 0, Bodies: r.world.Snapshot()})
	for _, m := range r.metrics {
		m.Observe(r.world.bodies, 0)
	}

	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}

		info := r.world.Advance()
		res.Frames++
		res.Collisions += info.Collisions
		res.WallHits += info.WallHits

		for _, m := range r.metrics {
			m.Observe(r.world.bodies, info.Frame)
		}
		if info.Frame%stride == 0 {
			res.Samples = append(res.Samples, Sample{Frame: info.Frame, Bodies: r.world.Snapshot()})
		}
	}

	res.Elapsed = time.Since(start)
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}

// RunWithCallback advances frame by frame, handing the live population
// to the callback after each advance. Returning false stops the run
// early without error. The callback must not retain the slice.
func (r *Runner) RunWithCallback(ctx context.Context, frames int, fn func(frame int, bodies []Particle) bool) error {
	if frames <= 0 {
		return fmt.Errorf("engine: frames must be positive, got %d", frames)
	}
	for i := 0; i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		info := r.world.Advance()
		if !fn(info.Frame, r.world.bodies) {
			return nil
		}
	}
	return nil
}

// Ensemble runs independent replicas of one configuration, varying only
// the seed. Each replica builds its own world and metric set, so runs
// share nothing.
type Ensemble struct {
	cfg       Config
	run       RunConfig
	replicas  int
	seedStart int64
	metrics   func() []Metric
}

func NewEnsemble(cfg Config, run RunConfig, replicas int, seedStart int64) *Ensemble {
	return &Ensemble{cfg: cfg, run: run, replicas: replicas, seedStart: seedStart}
}

// WithMetrics sets a builder invoked once per replica.
func (e *Ensemble) WithMetrics(build func() []Metric) *Ensemble {
	e.metrics = build
	return e
}

func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.replicas)
	errs := make([]error, e.replicas)

	var wg sync.WaitGroup
	for i := 0; i < e.replicas; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg
			cfg.Seed = e.seedStart + int64(idx)

			w, err := NewWorld(cfg)
			if err != nil {
				errs[idx] = err
				return
			}
			r := NewRunner(w)
			if e.metrics != nil {
				for _, m := range e.metrics() {
					r.AddMetric(m)
				}
			}
			results[idx], errs[idx] = r.Run(ctx, e.run)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
