package analysis

import (
	"math"
	"testing"
)

// Two bodies per row: x, y, vx, vy each.
var (
	rowA = []float64{0, 0, 3, 4, 0, 0, 0, 1} // speeds 5 and 1
	rowB = []float64{0, 0, 1, 0, 0, 0, 0, 2} // speeds 1 and 2
)

func almost(a, b float64) bool {
	return math.Abs(a-b) < 1e-12
}

func TestEnergySeries(t *testing.T) {
	got := EnergySeries([][]float64{rowA, rowB}, []float64{2, 1})
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if !almost(got[0], 25.5) {
		t.Errorf("expected 25.5, got %g", got[0])
	}
	if !almost(got[1], 3) {
		t.Errorf("expected 3, got %g", got[1])
	}
}

func TestEnergySeries_DefaultMass(t *testing.T) {
	got := EnergySeries([][]float64{rowA}, nil)
	if !almost(got[0], 13) {
		t.Errorf("expected 13 with unit masses, got %g", got[0])
	}
}

func TestMomentumSeries(t *testing.T) {
	got := MomentumSeries([][]float64{rowA, rowB}, []float64{2, 1})
	if !almost(got[0], math.Sqrt(117)) {
		t.Errorf("expected sqrt(117), got %g", got[0])
	}
	if !almost(got[1], 2*math.Sqrt2) {
		t.Errorf("expected 2*sqrt(2), got %g", got[1])
	}
}

func TestMeanSpeedSeries(t *testing.T) {
	got := MeanSpeedSeries([][]float64{rowA, rowB})
	if !almost(got[0], 3) {
		t.Errorf("expected 3, got %g", got[0])
	}
	if !almost(got[1], 1.5) {
		t.Errorf("expected 1.5, got %g", got[1])
	}
}

func TestMeanSpeedSeries_EmptyRow(t *testing.T) {
	got := MeanSpeedSeries([][]float64{{}})
	if got[0] != 0 {
		t.Errorf("expected 0 for empty row, got %g", got[0])
	}
}

func TestRelativeDrift(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   float64
	}{
		{"constant", []float64{4, 4, 4}, 0},
		{"ten percent", []float64{10, 11, 9}, 0.1},
		{"collapse", []float64{25.5, 3}, 22.5 / 25.5},
		{"empty", nil, 0},
		{"zero start", []float64{0, 5}, 0},
		{"single", []float64{7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeDrift(tt.series); !almost(got, tt.want) {
				t.Errorf("expected %g, got %g", tt.want, got)
			}
		})
	}
}

func TestSpeedHistogram(t *testing.T) {
	h := SpeedHistogram([][]float64{rowA, rowB}, 4)

	if h.Min != 1 || h.Max != 5 {
		t.Errorf("expected range [1,5], got [%g,%g]", h.Min, h.Max)
	}
	want := []int{2, 1, 0, 1}
	for i, c := range want {
		if h.Counts[i] != c {
			t.Errorf("bin %d: expected %d, got %d", i, c, h.Counts[i])
		}
	}
}

func TestSpeedHistogram_Normalized(t *testing.T) {
	h := SpeedHistogram([][]float64{rowA, rowB}, 4)
	fractions := h.Normalized()

	total := 0.0
	for _, f := range fractions {
		total += f
	}
	if !almost(total, 1) {
		t.Errorf("fractions should sum to 1, got %g", total)
	}
	if !almost(fractions[0], 0.5) {
		t.Errorf("expected 0.5 in first bin, got %g", fractions[0])
	}
}

func TestSpeedHistogram_Degenerate(t *testing.T) {
	h := SpeedHistogram([][]float64{{0, 0, 3, 0}}, 5)
	if h.Counts[0] != 1 {
		t.Errorf("single constant speed should land in bin 0, got %v", h.Counts)
	}
}

func TestSpeedHistogram_Empty(t *testing.T) {
	h := SpeedHistogram(nil, 3)
	if len(h.Counts) != 3 {
		t.Fatalf("expected 3 empty bins, got %d", len(h.Counts))
	}
	for i, c := range h.Counts {
		if c != 0 {
			t.Errorf("bin %d: expected 0, got %d", i, c)
		}
	}
	if n := h.Normalized(); n[0] != 0 {
		t.Errorf("normalizing an empty histogram should stay 0, got %v", n)
	}
}

func TestSpeedHistogram_DefaultBins(t *testing.T) {
	h := SpeedHistogram([][]float64{rowA}, 0)
	if len(h.Counts) != 10 {
		t.Errorf("expected 10 default bins, got %d", len(h.Counts))
	}
}
