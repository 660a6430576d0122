// Package engine implements the particle simulation core: non-overlapping
// placement, pairwise elastic collisions, wall reflection, and the
// per-frame update of a bounded 2D arena.
//
// The package defines the fundamental types:
//
//   - [Vec2]: plane vector with value-method arithmetic
//   - [Particle]: one circular body (position, velocity, radius, mass)
//   - [World]: population plus arena bounds; one Advance per display frame
//   - [Runner]: headless frame loop with metric observation
//
// # Example
//
//	w, _ := engine.NewWorld(engine.Config{Width: 800, Height: 600, Count: 40})
//	for i := 0; i < 600; i++ {
//		w.Advance()
//	}
//
// # Thread Safety
//
// World instances are NOT thread-safe: all mutation happens on the host's
// frame tick, and snapshots are only safe to read between Advance calls.
// For parallel replicas use [Ensemble], which runs fully independent
// worlds.
package engine
