// Package phase derives instantaneous phase and frequency from analytic
// signals: angle unwrapping, optional Savitzky-Golay smoothing, phase-origin
// conventions, differentiation to frequency in Hz, and the inverse
// frequency-to-phase integration.
//
// All 2D arrays are indexed [time][component]; operations run along the
// time axis independently per component.
package phase
