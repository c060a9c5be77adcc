package spectra

import (
	"fmt"
	"math"
)

// MeanVector computes the amplitude-weighted mean resultant vector of a
// phase distribution, per component column.
//
// Each included time sample contributes the unit vector
// sin(phase) + i*cos(phase) scaled by its amplitude; the mean of those
// vectors is returned per column. Its magnitude indicates phase-locking
// strength and its angle the mean phase.
//
// A nil mask includes every time sample; otherwise mask must have one
// entry per time sample and false entries are excluded from the mean. A
// column with no included samples yields zero.
func MeanVector(iphase, iamp [][]float64, mask []bool) ([]complex128, error) {
	nSamples, nComps, err := checkPair(iphase, iamp)
	if err != nil {
		return nil, err
	}
	if mask != nil && len(mask) != nSamples {
		return nil, fmt.Errorf("%w: mask has %d entries, want %d", ErrShapeMismatch, len(mask), nSamples)
	}

	out := make([]complex128, nComps)
	included := 0
	for t := 0; t < nSamples; t++ {
		if mask != nil && !mask[t] {
			continue
		}
		included++
		for c := 0; c < nComps; c++ {
			s, co := math.Sincos(iphase[t][c])
			out[c] += complex(s*iamp[t][c], co*iamp[t][c])
		}
	}
	if included == 0 {
		return out, nil
	}

	inv := complex(1/float64(included), 0)
	for c := range out {
		out[c] *= inv
	}
	return out, nil
}
