package engine

import (
	"math"
	"math/rand"
)

// placementAttemptFactor scales the rejection-sampling budget per
// body-sized cell of the arena.
const placementAttemptFactor = 32

// placementBudget bounds rejection sampling for one particle. The budget
// grows with how many bodies of this size fit the arena at all, so loose
// packings get cheap placement and dense ones fail fast instead of
// looping forever.
func placementBudget(width, height, radius float64) int {
	slots := width * height / (math.Pi * radius * radius)
	if slots < 1 {
		slots = 1
	}
	return int(slots) * placementAttemptFactor
}

// place draws uniform candidates inset by the radius (so the body starts
// fully inside the walls) until one clears every already-placed body.
// Nothing is mutated; the caller commits the returned position.
func place(rng *rand.Rand, width, height, radius float64, placed []Particle) (Vec2, int, error) {
	spanX := width - 2*radius
	spanY := height - 2*radius
	if spanX < 0 || spanY < 0 {
		// The body cannot fit the arena at any position.
		return Vec2{}, 0, ErrPlacementExhausted
	}

	budget := placementBudget(width, height, radius)
	for attempt := 1; attempt <= budget; attempt++ {
		cand := Vec2{radius + rng.Float64()*spanX, radius + rng.Float64()*spanY}
		if clearOf(cand, radius, placed) {
			return cand, attempt, nil
		}
	}
	return Vec2{}, budget, ErrPlacementExhausted
}

// clearOf reports whether a body of the given radius centered at pos
// keeps strictly positive clearance to every placed body.
func clearOf(pos Vec2, radius float64, placed []Particle) bool {
	for i := range placed {
		rr := radius + placed[i].Radius
		if pos.Sub(placed[i].Pos).LenSq() <= rr*rr {
			return false
		}
	}
	return true
}

// populate places cfg.Count particles by rejection sampling and assigns
// their initial velocities. On exhaustion the returned error wraps
// ErrPlacementExhausted and reports how far placement got.
func populate(rng *rand.Rand, cfg Config) ([]Particle, error) {
	bodies := make([]Particle, 0, cfg.Count)
	for i := 0; i < cfg.Count; i++ {
		spec := cfg.spec(i)
		pos, attempts, err := place(rng, cfg.Width, cfg.Height, spec.Radius, bodies)
		if err != nil {
			return nil, &PlacementError{Placed: i, Requested: cfg.Count, Attempts: attempts}
		}
		p, err := NewParticle(pos, cfg.velocity(pos, rng), spec.Radius, spec.Mass)
		if err != nil {
			return nil, err
		}
		p.Color = spec.Color
		bodies = append(bodies, p)
	}
	return bodies, nil
}
