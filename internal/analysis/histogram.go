package analysis

import "math"

// Histogram is a fixed-width binning of body speeds.
type Histogram struct {
	Min    float64
	Max    float64
	Width  float64
	Counts []int
}

// Normalized returns the bin fractions, summing to 1 for a non-empty
// histogram. Handy for plotting.
func (h Histogram) Normalized() []float64 {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	out := make([]float64, len(h.Counts))
	if total == 0 {
		return out
	}
	for i, c := range h.Counts {
		out[i] = float64(c) / float64(total)
	}
	return out
}

// SpeedHistogram bins every body speed across every recorded frame.
// bins <= 0 falls back to 10.
func SpeedHistogram(rows [][]float64, bins int) Histogram {
	if bins <= 0 {
		bins = 10
	}

	speeds := make([]float64, 0, len(rows)*8)
	for _, row := range rows {
		for i := 0; i+3 < len(row); i += 4 {
			speeds = append(speeds, math.Hypot(row[i+2], row[i+3]))
		}
	}

	h := Histogram{Counts: make([]int, bins)}
	if len(speeds) == 0 {
		return h
	}

	h.Min, h.Max = speeds[0], speeds[0]
	for _, s := range speeds[1:] {
		if s < h.Min {
			h.Min = s
		}
		if s > h.Max {
			h.Max = s
		}
	}
	if h.Max == h.Min {
		h.Max = h.Min + 1
	}
	h.Width = (h.Max - h.Min) / float64(bins)

	for _, s := range speeds {
		idx := int((s - h.Min) / h.Width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}
	return h
}
