// Package field provides initial-velocity fields for world
// construction. A field maps an accepted placement position to a
// starting velocity; the engine applies it once per particle and never
// again.
package field

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/nexustech101/particlebox/internal/engine"
)

// Uniform draws each velocity component uniformly from
// [-maxSpeed, +maxSpeed]. This is the reference initialization.
func Uniform(maxSpeed float64) engine.VelocityFn {
	return func(pos engine.Vec2, rng *rand.Rand) engine.Vec2 {
		return engine.Vec2{
			X: (rng.Float64() - 0.5) * 2 * maxSpeed,
			Y: (rng.Float64() - 0.5) * 2 * maxSpeed,
		}
	}
}

// Swirl orients every body along a smooth Perlin flow field, giving the
// arena a coherent initial drift that collisions grind down into
// disorder. Speed is fixed; only the direction varies with position.
func Swirl(speed, scale float64, seed int64) engine.VelocityFn {
	noise := perlin.NewPerlin(2, 2, 3, seed)
	return func(pos engine.Vec2, rng *rand.Rand) engine.Vec2 {
		angle := noise.Noise2D(pos.X*scale, pos.Y*scale) * 2 * math.Pi
		return engine.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(speed)
	}
}
