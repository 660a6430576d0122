package engine

import "math"

// DefaultPalette colors a population when the caller supplies none. Hex
// strings keep the engine free of any one renderer's color type.
var DefaultPalette = []string{"#2185c5", "#7ecefd", "#fff6e5", "#ff7f66"}

// Particle is one circular body. Radius and mass never change after
// construction. Color and Highlight are visual state only and have no
// effect on the physics.
type Particle struct {
	Pos       Vec2
	Vel       Vec2
	Radius    float64
	Mass      float64
	Color     string
	Highlight bool
}

// NewParticle validates the construction parameters: radius and mass
// must be positive. Position and velocity are unconstrained.
func NewParticle(pos, vel Vec2, radius, mass float64) (Particle, error) {
	if radius <= 0 {
		return Particle{}, ErrNonPositiveRadius
	}
	if mass <= 0 {
		return Particle{}, ErrNonPositiveMass
	}
	return Particle{Pos: pos, Vel: vel, Radius: radius, Mass: mass}, nil
}

func (p Particle) Speed() float64 {
	return p.Vel.Len()
}

// KineticEnergy is 0.5 * m * |v|^2.
func (p Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * p.Vel.LenSq()
}

// Momentum is m * v.
func (p Particle) Momentum() Vec2 {
	return p.Vel.Scale(p.Mass)
}

func (p Particle) Area() float64 {
	return math.Pi * p.Radius * p.Radius
}

// ContainsPoint reports whether q lies on or inside the body. Hosts use
// it to map a pointer position to the particle under it.
func (p Particle) ContainsPoint(q Vec2) bool {
	return p.Pos.Sub(q).LenSq() <= p.Radius*p.Radius
}

// Overlaps reports a true overlap: center distance strictly below the
// sum of the radii. Tangent bodies do not count.
func (p Particle) Overlaps(q Particle) bool {
	rr := p.Radius + q.Radius
	return p.Pos.Sub(q.Pos).LenSq() < rr*rr
}
