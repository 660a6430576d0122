package analysis

import "math"

// bodyMass reads masses[i] with mass 1 for any body the metadata does
// not cover. Old recordings predate the masses field.
func bodyMass(masses []float64, i int) float64 {
	if i < len(masses) && masses[i] > 0 {
		return masses[i]
	}
	return 1
}

// EnergySeries returns the total kinetic energy of each recorded frame.
func EnergySeries(rows [][]float64, masses []float64) []float64 {
	series := make([]float64, len(rows))
	for r, row := range rows {
		total := 0.0
		for i := 0; i+3 < len(row); i += 4 {
			vx, vy := row[i+2], row[i+3]
			total += 0.5 * bodyMass(masses, i/4) * (vx*vx + vy*vy)
		}
		series[r] = total
	}
	return series
}

// MomentumSeries returns |sum of m*v| for each recorded frame.
func MomentumSeries(rows [][]float64, masses []float64) []float64 {
	series := make([]float64, len(rows))
	for r, row := range rows {
		var px, py float64
		for i := 0; i+3 < len(row); i += 4 {
			m := bodyMass(masses, i/4)
			px += m * row[i+2]
			py += m * row[i+3]
		}
		series[r] = math.Hypot(px, py)
	}
	return series
}

// MeanSpeedSeries returns the mean body speed of each recorded frame.
func MeanSpeedSeries(rows [][]float64) []float64 {
	series := make([]float64, len(rows))
	for r, row := range rows {
		n := len(row) / 4
		if n == 0 {
			continue
		}
		total := 0.0
		for i := 0; i+3 < len(row); i += 4 {
			total += math.Hypot(row[i+2], row[i+3])
		}
		series[r] = total / float64(n)
	}
	return series
}

// RelativeDrift returns max |v - v0| / v0 over the series, the
// worst-case relative departure from the first value. A series whose
// first value is zero or empty reports zero.
func RelativeDrift(series []float64) float64 {
	if len(series) == 0 || series[0] == 0 {
		return 0
	}
	v0 := math.Abs(series[0])
	worst := 0.0
	for _, v := range series[1:] {
		if d := math.Abs(v-series[0]) / v0; d > worst {
			worst = d
		}
	}
	return worst
}
