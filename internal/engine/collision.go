package engine

import "math"

// Resolve computes the post-collision velocities of a perfectly elastic
// collision between two circular bodies. Rotating both velocities into
// the frame whose x axis is the line of centers reduces the problem to a
// 1-D exchange: no force acts perpendicular to that line, so the rotated
// y components pass through untouched.
//
// The collision angle is θ = -atan2(Δy, Δx) with Δ measured from a to b.
// In the rotated frame the x components exchange by the 1-D elastic
// formulas
//
//	v1' = v1*(m1-m2)/(m1+m2) + v2*2*m2/(m1+m2)
//	v2' = v2*(m2-m1)/(m1+m2) + v1*2*m1/(m1+m2)
//
// and the results are rotated back by -θ. Total momentum and kinetic
// energy are conserved to floating-point precision.
//
// Resolution is skipped (ok == false) in two cases: the bodies are
// already separating, or the two centers coincide and the collision
// angle is undefined. Re-resolving a separating pair would re-reverse
// the exchange on every frame the overlap lasts, so the pair jitters in
// place instead of parting.
func Resolve(a, b Particle) (va, vb Vec2, ok bool) {
	dp := b.Pos.Sub(a.Pos)
	dv := a.Vel.Sub(b.Vel)

	if dv.Dot(dp) < 0 {
		return a.Vel, b.Vel, false
	}
	if dp.X == 0 && dp.Y == 0 {
		return a.Vel, b.Vel, false
	}

	theta := -math.Atan2(dp.Y, dp.X)
	u1 := a.Vel.Rotate(theta)
	u2 := b.Vel.Rotate(theta)

	m1, m2 := a.Mass, b.Mass
	v1 := Vec2{u1.X*(m1-m2)/(m1+m2) + u2.X*2*m2/(m1+m2), u1.Y}
	v2 := Vec2{u2.X*(m2-m1)/(m1+m2) + u1.X*2*m1/(m1+m2), u2.Y}

	return v1.Rotate(-theta), v2.Rotate(-theta), true
}
