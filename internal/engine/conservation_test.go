package engine_test

import (
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nexustech101/particlebox/internal/engine"
)

// approachingPair builds two overlapping bodies with random masses and
// velocities, flipped if needed so the pair is closing.
func approachingPair(rng *rand.Rand) (engine.Particle, engine.Particle) {
	a := engine.Particle{
		Pos:    engine.Vec2{X: rng.Float64() * 100, Y: rng.Float64() * 100},
		Vel:    engine.Vec2{X: (rng.Float64() - 0.5) * 10, Y: (rng.Float64() - 0.5) * 10},
		Radius: 1 + rng.Float64()*10,
		Mass:   0.1 + rng.Float64()*10,
	}
	// Offset b by less than the radius sum so the pair overlaps.
	angle := rng.Float64() * 2 * math.Pi
	radius := 1 + rng.Float64()*10
	dist := (a.Radius + radius) * (0.2 + 0.7*rng.Float64())
	b := engine.Particle{
		Pos:    a.Pos.Add(engine.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(dist)),
		Vel:    engine.Vec2{X: (rng.Float64() - 0.5) * 10, Y: (rng.Float64() - 0.5) * 10},
		Radius: radius,
		Mass:   0.1 + rng.Float64()*10,
	}

	if a.Vel.Sub(b.Vel).Dot(b.Pos.Sub(a.Pos)) < 0 {
		a.Vel = a.Vel.Scale(-1)
		b.Vel = b.Vel.Scale(-1)
	}
	return a, b
}

func relTol(v float64) float64 {
	return 1e-9 * math.Max(1, math.Abs(v))
}

var _ = Describe("Resolve", func() {
	var rng *rand.Rand

	BeforeEach(func() {
		rng = rand.New(rand.NewSource(1))
	})

	It("conserves momentum for random approaching pairs", func() {
		for i := 0; i < 500; i++ {
			a, b := approachingPair(rng)

			va, vb, ok := engine.Resolve(a, b)
			Expect(ok).To(BeTrue(), "pair %d was skipped", i)

			before := a.Momentum().Add(b.Momentum())
			after := va.Scale(a.Mass).Add(vb.Scale(b.Mass))
			Expect(after.X).To(BeNumerically("~", before.X, relTol(before.X)))
			Expect(after.Y).To(BeNumerically("~", before.Y, relTol(before.Y)))
		}
	})

	It("conserves kinetic energy for random approaching pairs", func() {
		for i := 0; i < 500; i++ {
			a, b := approachingPair(rng)

			va, vb, ok := engine.Resolve(a, b)
			Expect(ok).To(BeTrue(), "pair %d was skipped", i)

			before := 0.5*a.Mass*a.Vel.LenSq() + 0.5*b.Mass*b.Vel.LenSq()
			after := 0.5*a.Mass*va.LenSq() + 0.5*b.Mass*vb.LenSq()
			Expect(after).To(BeNumerically("~", before, relTol(before)))
		}
	})

	It("is symmetric in argument order", func() {
		for i := 0; i < 200; i++ {
			a, b := approachingPair(rng)

			va, vb, ok1 := engine.Resolve(a, b)
			wb, wa, ok2 := engine.Resolve(b, a)

			Expect(ok1).To(Equal(ok2))
			Expect(va.X).To(BeNumerically("~", wa.X, relTol(wa.X)))
			Expect(va.Y).To(BeNumerically("~", wa.Y, relTol(wa.Y)))
			Expect(vb.X).To(BeNumerically("~", wb.X, relTol(wb.X)))
			Expect(vb.Y).To(BeNumerically("~", wb.Y, relTol(wb.Y)))
		}
	})

	It("never resolves a pair into a faster closing speed", func() {
		for i := 0; i < 200; i++ {
			a, b := approachingPair(rng)

			va, vb, ok := engine.Resolve(a, b)
			Expect(ok).To(BeTrue())

			dp := b.Pos.Sub(a.Pos)
			closingAfter := va.Sub(vb).Dot(dp)
			Expect(closingAfter).To(BeNumerically("<=", 1e-9),
				"pair %d still closing after resolution", i)
		}
	})
})

var _ = Describe("Rotate", func() {
	It("round-trips across [-π, π]", func() {
		rng := rand.New(rand.NewSource(2))
		for i := 0; i < 500; i++ {
			v := engine.Vec2{X: (rng.Float64() - 0.5) * 20, Y: (rng.Float64() - 0.5) * 20}
			theta := (rng.Float64()*2 - 1) * math.Pi

			back := v.Rotate(theta).Rotate(-theta)
			Expect(back.X).To(BeNumerically("~", v.X, 1e-9))
			Expect(back.Y).To(BeNumerically("~", v.Y, 1e-9))
		}
	})

	It("preserves vector length", func() {
		rng := rand.New(rand.NewSource(3))
		for i := 0; i < 500; i++ {
			v := engine.Vec2{X: (rng.Float64() - 0.5) * 20, Y: (rng.Float64() - 0.5) * 20}
			theta := (rng.Float64()*2 - 1) * math.Pi

			Expect(v.Rotate(theta).Len()).To(BeNumerically("~", v.Len(), relTol(v.Len())))
		}
	})
})
