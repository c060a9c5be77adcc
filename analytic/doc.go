// Package analytic constructs complex analytic signals from real-valued
// intrinsic mode functions (IMFs).
//
// Two interchangeable builders are provided: [Hilbert], the classic
// FFT-based Hilbert transform, and [Quadrature], a direct geometric
// construction that avoids the Hilbert transform's spectral leakage on
// narrowband IMFs. The arctangent direct-quadrature path is known to be
// unreliable and is permanently disabled; [DirectQuadrature] always returns
// [ErrDirectQuadDisabled].
//
// All inputs are indexed [time][component] with time as the outer axis.
package analytic
