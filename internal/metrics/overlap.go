package metrics

import "github.com/nexustech101/particlebox/internal/engine"

// OverlapPeak tracks the largest number of simultaneously overlapping
// pairs seen during a run. Pairs linger through a collision for a frame
// or two since resolution never separates positions; sustained growth
// means bodies are sticking.
type OverlapPeak struct {
	name string
	peak int
}

func NewOverlapPeak() *OverlapPeak {
	return &OverlapPeak{name: "overlap_peak"}
}

func (o *OverlapPeak) Name() string { return o.name }

func (o *OverlapPeak) Observe(bodies []engine.Particle, frame int) {
	count := 0
	for i := range bodies {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Overlaps(bodies[j]) {
				count++
			}
		}
	}
	if count > o.peak {
		o.peak = count
	}
}

func (o *OverlapPeak) Value() float64 {
	return float64(o.peak)
}

func (o *OverlapPeak) Reset() {
	o.peak = 0
}
