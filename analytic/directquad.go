package analytic

import (
	"errors"
	"math"
)

// ErrDirectQuadDisabled is returned for the arctangent direct-quadrature
// method. The construction produces unreliable phase estimates near
// amplitude extrema and is permanently disabled; callers must select
// [Hilbert] or [Quadrature] instead.
var ErrDirectQuadDisabled = errors.New("analytic: direct quadrature method is disabled")

// DirectQuadrature always fails with [ErrDirectQuadDisabled].
func DirectQuadrature(_ [][]float64) (*Signal, error) {
	return nil, ErrDirectQuadDisabled
}

// phaseAngle computes arctan(x / sqrt(1 - x^2)) per sample, the direct
// phase of a normalised frequency-modulated signal. Samples at or beyond
// unit magnitude have no real companion and yield NaN; see repairPhaseNaN.
func phaseAngle(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		s := 1 - v*v
		if s <= 0 {
			out[i] = math.NaN()
			continue
		}
		out[i] = math.Atan(v / math.Sqrt(s))
	}
	return out
}

// repairPhaseNaN replaces each NaN with the midpoint of the nearest valid
// neighbours on either side, in place. Leading or trailing NaN runs take
// the single nearest valid value.
func repairPhaseNaN(ph []float64) {
	for i, v := range ph {
		if !math.IsNaN(v) {
			continue
		}

		lo := i - 1
		for lo >= 0 && math.IsNaN(ph[lo]) {
			lo--
		}
		hi := i + 1
		for hi < len(ph) && math.IsNaN(ph[hi]) {
			hi++
		}

		switch {
		case lo >= 0 && hi < len(ph):
			ph[i] = (ph[lo] + ph[hi]) / 2
		case lo >= 0:
			ph[i] = ph[lo]
		case hi < len(ph):
			ph[i] = ph[hi]
		}
	}
}
