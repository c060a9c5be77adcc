package analytic

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-emd/envelope"
)

// Quadrature builds the analytic signal of each IMF column by direct
// geometric construction: the column is envelope-normalised into [-1, 1]
// (clipped), the imaginary companion is sqrt(1 - x^2), and its sign follows
// the local direction of change. For a sine input this reproduces
// sin(t) - i*cos(t), matching the Hilbert convention.
//
// The sign at a sample is negative where the normalised signal is ascending
// (x[t+1] > x[t]) and positive otherwise; the final sample reuses the
// previous sample's sign, a boundary policy rather than a derived result.
func Quadrature(imf [][]float64) (*Signal, error) {
	nSamples, nComps, err := checkMatrix(imf)
	if err != nil {
		return nil, err
	}
	if nSamples < 2 {
		return nil, fmt.Errorf("analytic: quadrature requires at least 2 samples, got %d", nSamples)
	}

	norm, err := envelope.AmplitudeNormalise(imf, envelope.NormaliseConfig{Clip: true})
	if err != nil {
		return nil, fmt.Errorf("analytic: normalise: %w", err)
	}

	sig := newSignal(nSamples, nComps)
	for c := 0; c < nComps; c++ {
		sign := 1.0
		for t := 0; t < nSamples; t++ {
			x := norm[t][c]
			if t < nSamples-1 {
				if norm[t+1][c] > x {
					sign = -1
				} else {
					sign = 1
				}
			}
			// Final sample keeps the previous sign.
			q := math.Sqrt(math.Max(0, 1-x*x))
			sig.data[t][c] = complex(x, sign*q)
		}
	}
	return sig, nil
}

// QuadratureCube applies [Quadrature] to each secondary-axis slice of a
// [time][component][subComponent] cube.
func QuadratureCube(imf [][][]float64) ([]*Signal, error) {
	return buildCube(imf, Quadrature)
}
