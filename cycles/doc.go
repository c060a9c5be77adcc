// Package cycles identifies and summarises individual oscillatory cycles in
// an instantaneous-phase time course: cycle detection with quality checks,
// per-cycle statistics, chains of consecutive cycles, control points, phase
// binning and phase alignment.
//
// Cycle labels are per-sample integers: label k > 0 marks the samples of
// the k-th detected cycle, 0 marks samples outside any accepted cycle.
package cycles
