package engine

import (
	"errors"
	"math"
	"testing"
)

func TestNewParticle_Validation(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		mass    float64
		wantErr error
	}{
		{"valid", 10, 1, nil},
		{"zero radius", 0, 1, ErrNonPositiveRadius},
		{"negative radius", -3, 1, ErrNonPositiveRadius},
		{"zero mass", 10, 0, ErrNonPositiveMass},
		{"negative mass", 10, -1, ErrNonPositiveMass},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParticle(Vec2{}, Vec2{}, tt.radius, tt.mass)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewParticle() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParticle_Kinematics(t *testing.T) {
	p, err := NewParticle(Vec2{0, 0}, Vec2{3, 4}, 5, 2)
	if err != nil {
		t.Fatalf("NewParticle: %v", err)
	}

	if got := p.Speed(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Speed = %v, want 5", got)
	}
	if got := p.KineticEnergy(); math.Abs(got-25) > 1e-12 {
		t.Errorf("KineticEnergy = %v, want 25", got)
	}
	if got := p.Momentum(); got != (Vec2{6, 8}) {
		t.Errorf("Momentum = %v, want {6 8}", got)
	}
	if got := p.Area(); math.Abs(got-math.Pi*25) > 1e-12 {
		t.Errorf("Area = %v, want %v", got, math.Pi*25)
	}
}

func TestParticle_ContainsPoint(t *testing.T) {
	p := Particle{Pos: Vec2{10, 10}, Radius: 5, Mass: 1}

	tests := []struct {
		name string
		q    Vec2
		want bool
	}{
		{"center", Vec2{10, 10}, true},
		{"inside", Vec2{12, 13}, true},
		{"on rim", Vec2{15, 10}, true},
		{"outside", Vec2{16, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.ContainsPoint(tt.q); got != tt.want {
				t.Errorf("ContainsPoint(%v) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestParticle_Overlaps(t *testing.T) {
	a := Particle{Pos: Vec2{0, 0}, Radius: 6, Mass: 1}

	tests := []struct {
		name string
		b    Particle
		want bool
	}{
		{"overlapping", Particle{Pos: Vec2{10, 0}, Radius: 6, Mass: 1}, true},
		{"tangent", Particle{Pos: Vec2{12, 0}, Radius: 6, Mass: 1}, false},
		{"apart", Particle{Pos: Vec2{20, 0}, Radius: 6, Mass: 1}, false},
		{"coincident", Particle{Pos: Vec2{0, 0}, Radius: 6, Mass: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps = %v, want %v", got, tt.want)
			}
			if got := tt.b.Overlaps(a); got != tt.want {
				t.Errorf("Overlaps (reversed) = %v, want %v", got, tt.want)
			}
		})
	}
}
