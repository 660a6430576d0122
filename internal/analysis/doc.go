// Package analysis computes offline statistics from recorded runs.
//
// Inputs are the flat frame rows the store writes (x, y, vx, vy per
// body) plus the per-body masses from the run metadata:
//
//   - [SpeedHistogram]: binned speed distribution across sampled frames
//   - [EnergySeries]: total kinetic energy per sampled frame
//   - [MomentumSeries]: total momentum magnitude per sampled frame
//   - [MeanSpeedSeries]: mean body speed per sampled frame
//   - [RelativeDrift]: worst-case relative departure from a series' start
//
// # Relaxation
//
// A box of elastically colliding discs relaxes toward the 2D
// Maxwell-Boltzmann (Rayleigh) speed distribution regardless of how the
// initial velocities were drawn. The histogram makes that visible:
//
//	rows, _, _ := st.LoadFrames(runID)
//	hist := analysis.SpeedHistogram(rows, 20)
package analysis
