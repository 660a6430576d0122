package metrics

import (
	"math"

	"github.com/nexustech101/particlebox/internal/engine"
)

func totalKineticEnergy(bodies []engine.Particle) float64 {
	sum := 0.0
	for i := range bodies {
		sum += bodies[i].KineticEnergy()
	}
	return sum
}

// KineticEnergy tracks the mean total kinetic energy over a run.
type KineticEnergy struct {
	name    string
	total   float64
	samples int
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (k *KineticEnergy) Name() string { return k.name }

func (k *KineticEnergy) Observe(bodies []engine.Particle, frame int) {
	k.total += totalKineticEnergy(bodies)
	k.samples++
}

func (k *KineticEnergy) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.total / float64(k.samples)
}

func (k *KineticEnergy) Reset() {
	k.total = 0
	k.samples = 0
}

// EnergyDrift tracks the maximum relative deviation of total kinetic
// energy from its first observation. Elastic collisions and wall
// reflections both preserve kinetic energy, so growth here points at
// the resolver.
type EnergyDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(bodies []engine.Particle, frame int) {
	energy := totalKineticEnergy(bodies)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
