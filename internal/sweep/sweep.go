// Package sweep measures how arena density shapes collision behavior.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/nexustech101/particlebox/internal/config"
	"github.com/nexustech101/particlebox/internal/engine"
	"github.com/nexustech101/particlebox/internal/metrics"
)

// Cell is one grid point of the density sweep.
type Cell struct {
	Count         int
	Radius        float64
	Density       float64 // fraction of the arena area occupied
	Failed        bool    // population could not be placed
	Reason        string
	Collisions    int
	CollisionRate float64 // collisions per frame
	WallHits      int
	Drift         float64
}

// Run sweeps the cartesian grid counts x radii, running each cell
// headless for the given frame budget on top of the base config. Cells
// whose populations cannot be placed are reported as failed instead of
// aborting the sweep; anything else stops it.
func Run(ctx context.Context, base *config.Config, counts []int, radii []float64, frames int) ([]Cell, error) {
	if len(counts) == 0 || len(radii) == 0 {
		return nil, fmt.Errorf("sweep: empty grid")
	}
	if frames <= 0 {
		frames = 120
	}
	tmpl := *base
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}

	cells := make([]Cell, 0, len(counts)*len(radii))
	for _, n := range counts {
		for _, r := range radii {
			select {
			case <-ctx.Done():
				return cells, ctx.Err()
			default:
			}

			cfg := tmpl
			cfg.Name = fmt.Sprintf("sweep_n%d_r%g", n, r)
			cfg.Count = n
			cfg.Radius = r
			cfg.Frames = frames

			cell := Cell{
				Count:   n,
				Radius:  r,
				Density: float64(n) * math.Pi * r * r / (cfg.Width * cfg.Height),
			}

			world, err := cfg.NewWorld()
			if err != nil {
				if errors.Is(err, engine.ErrPlacementExhausted) {
					cell.Failed = true
					cell.Reason = err.Error()
					cells = append(cells, cell)
					continue
				}
				return cells, fmt.Errorf("sweep n=%d r=%g: %w", n, r, err)
			}

			runner := engine.NewRunner(world)
			runner.AddMetric(metrics.NewEnergyDrift())

			res, err := runner.Run(ctx, engine.RunConfig{Frames: frames, SampleEvery: frames})
			if err != nil {
				return cells, fmt.Errorf("sweep n=%d r=%g: %w", n, r, err)
			}

			cell.Collisions = res.Collisions
			cell.CollisionRate = float64(res.Collisions) / float64(res.Frames)
			cell.WallHits = res.WallHits
			cell.Drift = res.Metrics["energy_drift"]
			cells = append(cells, cell)
		}
	}
	return cells, nil
}
