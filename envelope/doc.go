// Package envelope provides amplitude-envelope estimation for oscillatory
// signals: local-extrema detection, spline envelope interpolation, and
// iterative envelope normalisation.
//
// These are the numerical building blocks consumed by the analytic-signal
// quadrature transform and the frequency-stats pipeline. All functions treat
// their inputs as read-only and return fresh slices.
package envelope
