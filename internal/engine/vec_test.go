package engine

import (
	"math"
	"testing"
)

func TestVec2_Arithmetic(t *testing.T) {
	a := Vec2{1, 2}
	b := Vec2{4, 6}

	if sum := a.Add(b); sum != (Vec2{5, 8}) {
		t.Errorf("Add failed: got %v", sum)
	}
	if diff := b.Sub(a); diff != (Vec2{3, 4}) {
		t.Errorf("Sub failed: got %v", diff)
	}
	if scaled := a.Scale(2.5); scaled != (Vec2{2.5, 5}) {
		t.Errorf("Scale failed: got %v", scaled)
	}
	if dot := a.Dot(b); dot != 16 {
		t.Errorf("Dot failed: got %v", dot)
	}
}

func TestVec2_Len(t *testing.T) {
	tests := []struct {
		v        Vec2
		expected float64
	}{
		{Vec2{3, 4}, 5.0},
		{Vec2{1, 0}, 1.0},
		{Vec2{0, 0}, 0.0},
		{Vec2{-3, -4}, 5.0},
	}

	for _, tt := range tests {
		if got := tt.v.Len(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Len(%v) = %v, want %v", tt.v, got, tt.expected)
		}
		if got := tt.v.LenSq(); math.Abs(got-tt.expected*tt.expected) > 1e-12 {
			t.Errorf("LenSq(%v) = %v, want %v", tt.v, got, tt.expected*tt.expected)
		}
	}
}

func TestVec2_Dist(t *testing.T) {
	a := Vec2{1, 1}
	b := Vec2{4, 5}
	if got := a.Dist(b); math.Abs(got-5) > 1e-12 {
		t.Errorf("Dist = %v, want 5", got)
	}
}

func TestVec2_Rotate(t *testing.T) {
	tests := []struct {
		name     string
		v        Vec2
		theta    float64
		expected Vec2
	}{
		{"quarter turn", Vec2{1, 0}, math.Pi / 2, Vec2{0, 1}},
		{"half turn", Vec2{1, 0}, math.Pi, Vec2{-1, 0}},
		{"zero angle", Vec2{3, -2}, 0, Vec2{3, -2}},
		{"negative quarter", Vec2{0, 1}, -math.Pi / 2, Vec2{1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.v.Rotate(tt.theta)
			if math.Abs(got.X-tt.expected.X) > 1e-12 || math.Abs(got.Y-tt.expected.Y) > 1e-12 {
				t.Errorf("Rotate(%v, %v) = %v, want %v", tt.v, tt.theta, got, tt.expected)
			}
		})
	}
}

func TestVec2_RotateRoundTrip(t *testing.T) {
	v := Vec2{2.75, -1.125}

	for i := -16; i <= 16; i++ {
		theta := float64(i) * math.Pi / 16
		back := v.Rotate(theta).Rotate(-theta)
		if math.Abs(back.X-v.X) > 1e-12 || math.Abs(back.Y-v.Y) > 1e-12 {
			t.Errorf("round trip at theta=%v: got %v, want %v", theta, back, v)
		}
	}
}

func TestVec2_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec2
		valid bool
	}{
		{"zero", Vec2{}, true},
		{"normal", Vec2{1.5, -2.5}, true},
		{"NaN x", Vec2{math.NaN(), 0}, false},
		{"+Inf y", Vec2{0, math.Inf(1)}, false},
		{"-Inf x", Vec2{math.Inf(-1), 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}
