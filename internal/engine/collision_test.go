package engine

import (
	"math"
	"testing"
)

// relClose compares within a relative tolerance of 1e-9, with an
// absolute floor for values near zero.
func relClose(got, want float64) bool {
	scale := math.Max(1, math.Abs(want))
	return math.Abs(got-want) <= 1e-9*scale
}

func TestResolve_HeadOnEqualMass(t *testing.T) {
	a := Particle{Pos: Vec2{0, 0}, Vel: Vec2{2, 0}, Radius: 6, Mass: 1}
	b := Particle{Pos: Vec2{10, 0}, Vel: Vec2{-2, 0}, Radius: 6, Mass: 1}

	va, vb, ok := Resolve(a, b)
	if !ok {
		t.Fatal("Resolve skipped an approaching pair")
	}
	if va != (Vec2{-2, 0}) {
		t.Errorf("first velocity = %v, want {-2 0}", va)
	}
	if vb != (Vec2{2, 0}) {
		t.Errorf("second velocity = %v, want {2 0}", vb)
	}
}

func TestResolve_SeparatingPairSkipped(t *testing.T) {
	// Overlapping but already parting: the relative velocity opens the
	// gap, so resolution must not run.
	a := Particle{Pos: Vec2{0, 0}, Vel: Vec2{-1, 0}, Radius: 6, Mass: 1}
	b := Particle{Pos: Vec2{10, 0}, Vel: Vec2{1, 0}, Radius: 6, Mass: 1}

	va, vb, ok := Resolve(a, b)
	if ok {
		t.Fatal("Resolve ran on a separating pair")
	}
	if va != a.Vel || vb != b.Vel {
		t.Errorf("velocities changed on skip: %v %v", va, vb)
	}
}

func TestResolve_CoincidentCentersSkipped(t *testing.T) {
	a := Particle{Pos: Vec2{5, 5}, Vel: Vec2{1, 2}, Radius: 6, Mass: 1}
	b := Particle{Pos: Vec2{5, 5}, Vel: Vec2{-1, 0}, Radius: 6, Mass: 1}

	va, vb, ok := Resolve(a, b)
	if ok {
		t.Fatal("Resolve ran with an undefined collision angle")
	}
	if va != a.Vel || vb != b.Vel {
		t.Errorf("velocities changed on skip: %v %v", va, vb)
	}
}

func TestResolve_Conservation(t *testing.T) {
	tests := []struct {
		name string
		a, b Particle
	}{
		{
			"equal mass off axis",
			Particle{Pos: Vec2{0, 0}, Vel: Vec2{1.5, 0.5}, Radius: 5, Mass: 1},
			Particle{Pos: Vec2{6, 4}, Vel: Vec2{-1, 0.25}, Radius: 5, Mass: 1},
		},
		{
			"heavy light",
			Particle{Pos: Vec2{0, 0}, Vel: Vec2{2, 0}, Radius: 8, Mass: 10},
			Particle{Pos: Vec2{9, 3}, Vel: Vec2{-0.5, -0.5}, Radius: 4, Mass: 0.5},
		},
		{
			"vertical approach",
			Particle{Pos: Vec2{0, 0}, Vel: Vec2{0, 3}, Radius: 6, Mass: 2},
			Particle{Pos: Vec2{0, 7}, Vel: Vec2{0, -1}, Radius: 6, Mass: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			va, vb, ok := Resolve(tt.a, tt.b)
			if !ok {
				t.Fatal("Resolve skipped an approaching pair")
			}

			m1, m2 := tt.a.Mass, tt.b.Mass
			pBefore := tt.a.Vel.Scale(m1).Add(tt.b.Vel.Scale(m2))
			pAfter := va.Scale(m1).Add(vb.Scale(m2))
			if !relClose(pAfter.X, pBefore.X) || !relClose(pAfter.Y, pBefore.Y) {
				t.Errorf("momentum drift: before %v after %v", pBefore, pAfter)
			}

			keBefore := 0.5*m1*tt.a.Vel.LenSq() + 0.5*m2*tt.b.Vel.LenSq()
			keAfter := 0.5*m1*va.LenSq() + 0.5*m2*vb.LenSq()
			if !relClose(keAfter, keBefore) {
				t.Errorf("kinetic energy drift: before %v after %v", keBefore, keAfter)
			}
		})
	}
}

func TestResolve_HeavyBarelyDeflected(t *testing.T) {
	// A very heavy body plowing through a light one keeps nearly all of
	// its velocity; the light one is thrown forward.
	a := Particle{Pos: Vec2{0, 0}, Vel: Vec2{1, 0}, Radius: 10, Mass: 1000}
	b := Particle{Pos: Vec2{12, 0}, Vel: Vec2{0, 0}, Radius: 10, Mass: 1}

	va, vb, ok := Resolve(a, b)
	if !ok {
		t.Fatal("Resolve skipped an approaching pair")
	}
	if math.Abs(va.X-1) > 0.01 {
		t.Errorf("heavy body velocity = %v, want ~1", va.X)
	}
	if vb.X < 1.9 || vb.X > 2.0 {
		t.Errorf("light body velocity = %v, want ~2 (limit 2*v for m2 << m1)", vb.X)
	}
}
