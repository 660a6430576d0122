// Package batch runs scripted sequences of recorded arena runs.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nexustech101/particlebox/internal/config"
	"github.com/nexustech101/particlebox/internal/engine"
	"github.com/nexustech101/particlebox/internal/metrics"
	"github.com/nexustech101/particlebox/internal/storage"
)

// Scenario defines a scripted run sequence.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one run in a scenario: a preset (or the defaults) with
// overrides layered on top. Zero fields keep the base value.
type Step struct {
	Preset      string                `yaml:"preset"`
	Width       float64               `yaml:"width"`
	Height      float64               `yaml:"height"`
	Count       int                   `yaml:"count"`
	Radius      float64               `yaml:"radius"`
	Mass        float64               `yaml:"mass"`
	MaxSpeed    float64               `yaml:"max_speed"`
	Velocity    config.VelocityConfig `yaml:"velocity"`
	Seed        int64                 `yaml:"seed"`
	Frames      int                   `yaml:"frames"`
	SampleEvery int                   `yaml:"sample_every"`
	SaveAs      string                `yaml:"save_as"`
}

// StepResult names the stored run a step produced.
type StepResult struct {
	Name       string
	RunID      string
	Frames     int
	Collisions int
	Drift      float64
}

// LoadScenario loads a scenario from a YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("batch: parse %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("batch: scenario %s has no steps", path)
	}
	return &scenario, nil
}

// Config resolves the step into a full run config: preset (or
// defaults), then overrides, then the save_as name.
func (s Step) Config() *config.Config {
	cfg := config.GetPreset(s.Preset)
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if s.Width > 0 {
		cfg.Width = s.Width
	}
	if s.Height > 0 {
		cfg.Height = s.Height
	}
	if s.Count > 0 {
		cfg.Count = s.Count
	}
	if s.Radius > 0 {
		cfg.Radius = s.Radius
	}
	if s.Mass > 0 {
		cfg.Mass = s.Mass
	}
	if s.MaxSpeed > 0 {
		cfg.MaxSpeed = s.MaxSpeed
	}
	if s.Velocity.Mode != "" {
		cfg.Velocity = s.Velocity
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Frames > 0 {
		cfg.Frames = s.Frames
	}
	if s.SampleEvery > 0 {
		cfg.SampleEvery = s.SampleEvery
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg
}

// RunScenario executes all steps in order, saving each run to the
// store. Progress lines go to out.
func RunScenario(ctx context.Context, scenario *Scenario, store *storage.Store, out io.Writer) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg := step.Config()
		fmt.Fprintf(out, "step %d/%d: %s\n", i+1, len(scenario.Steps), cfg.Name)

		world, err := cfg.NewWorld()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		runner := engine.NewRunner(world)
		runner.AddMetric(metrics.NewKineticEnergy())
		runner.AddMetric(metrics.NewEnergyDrift())
		runner.AddMetric(metrics.NewMomentum())
		runner.AddMetric(metrics.NewOverlapPeak())

		result, err := runner.Run(ctx, engine.RunConfig{Frames: cfg.Frames, SampleEvery: cfg.SampleEvery})
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		runID, err := store.Save(cfg, result)
		if err != nil {
			return results, fmt.Errorf("step %d save: %w", i+1, err)
		}

		results = append(results, StepResult{
			Name:       cfg.Name,
			RunID:      runID,
			Frames:     result.Frames,
			Collisions: result.Collisions,
			Drift:      result.Metrics["energy_drift"],
		})
	}

	return results, nil
}
