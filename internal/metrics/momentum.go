package metrics

import "github.com/nexustech101/particlebox/internal/engine"

// Momentum tracks the mean magnitude of total momentum. Particle
// collisions preserve the total exactly; wall reflections flip single
// components, so in a bounded arena this wanders instead of holding.
type Momentum struct {
	name    string
	total   float64
	samples int
}

func NewMomentum() *Momentum {
	return &Momentum{name: "momentum"}
}

func (m *Momentum) Name() string { return m.name }

func (m *Momentum) Observe(bodies []engine.Particle, frame int) {
	var sum engine.Vec2
	for i := range bodies {
		sum = sum.Add(bodies[i].Momentum())
	}
	m.total += sum.Len()
	m.samples++
}

func (m *Momentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *Momentum) Reset() {
	m.total = 0
	m.samples = 0
}
