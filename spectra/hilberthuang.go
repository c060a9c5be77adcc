package spectra

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"
)

// Aggregation errors.
var (
	ErrUnknownMode   = errors.New("spectra: unknown accumulation mode")
	ErrEmptyInput    = errors.New("spectra: input must not be empty")
	ErrShapeMismatch = errors.New("spectra: paired arrays must share a shape")
	ErrBadEdges      = errors.New("spectra: need at least 2 bin edges")
)

// Mode selects the accumulated magnitude.
type Mode int

const (
	// ModePower accumulates amplitude.
	ModePower Mode = iota
	// ModeEnergy accumulates squared amplitude.
	ModeEnergy
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModePower:
		return "power"
	case ModeEnergy:
		return "energy"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// HilbertHuang1D accumulates a dense 1D frequency spectrum per component.
//
// ifreq and iamp are indexed [time][component]; the result is indexed
// [bin][component] with bin i covering [edges[i], edges[i+1]) and the final
// bin closed at the last edge. Samples whose frequency falls outside the
// edge range are dropped. For ModeEnergy the sum over all bins of one
// column equals the sum of squared amplitudes of that column's in-range
// samples.
func HilbertHuang1D(ifreq, iamp [][]float64, edges []float64, mode Mode) ([][]float64, error) {
	nSamples, nComps, err := checkPair(ifreq, iamp)
	if err != nil {
		return nil, err
	}
	if len(edges) < 2 {
		return nil, ErrBadEdges
	}
	if mode != ModePower && mode != ModeEnergy {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	nBins := len(edges) - 1
	specs := make([][]float64, nBins)
	for i := range specs {
		specs[i] = make([]float64, nComps)
	}

	weights := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		columnWeights(weights, iamp, c, mode)
		for t := 0; t < nSamples; t++ {
			bin := binIndex(ifreq[t][c], edges)
			if bin < 0 {
				continue
			}
			specs[bin][c] += weights[t]
		}
	}
	return specs, nil
}

// HilbertHuangSparse bins per-sample frequencies into a sparse
// [bin][time] coordinate matrix, summing the selected magnitude across
// components. This is phase one of the 2D aggregation pipeline; memory
// scales with the sample count rather than bins*time, which matters for
// fine-grained frequency grids.
func HilbertHuangSparse(ifreq, iamp [][]float64, edges []float64, mode Mode) (*COO, error) {
	nSamples, nComps, err := checkPair(ifreq, iamp)
	if err != nil {
		return nil, err
	}
	if len(edges) < 2 {
		return nil, ErrBadEdges
	}
	if mode != ModePower && mode != ModeEnergy {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	hht, err := NewCOO(len(edges)-1, nSamples)
	if err != nil {
		return nil, err
	}

	weights := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		columnWeights(weights, iamp, c, mode)
		for t := 0; t < nSamples; t++ {
			bin := binIndex(ifreq[t][c], edges)
			if bin < 0 {
				continue
			}
			if err := hht.Add(bin, t, weights[t]); err != nil {
				return nil, err
			}
		}
	}
	return hht, nil
}

// HilbertHuang returns the dense 2D time-frequency spectrum, indexed
// [bin][time] and summed over components. It is the densified form of
// [HilbertHuangSparse].
func HilbertHuang(ifreq, iamp [][]float64, edges []float64, mode Mode) ([][]float64, error) {
	hht, err := HilbertHuangSparse(ifreq, iamp, edges, mode)
	if err != nil {
		return nil, err
	}
	return hht.Dense(), nil
}

// columnWeights fills dst with the mode-selected magnitude of column c.
func columnWeights(dst []float64, iamp [][]float64, c int, mode Mode) {
	for t := range iamp {
		dst[t] = iamp[t][c]
	}
	if mode == ModeEnergy {
		vecmath.MulBlockInPlace(dst, dst)
	}
}

// checkPair validates two equally shaped [time][component] arrays.
func checkPair(a, b [][]float64) (nSamples, nComps int, err error) {
	if len(a) == 0 || len(a[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	if len(b) != len(a) {
		return 0, 0, fmt.Errorf("%w: %d vs %d time samples", ErrShapeMismatch, len(a), len(b))
	}
	nSamples = len(a)
	nComps = len(a[0])
	for t := range a {
		if len(a[t]) != nComps || len(b[t]) != nComps {
			return 0, 0, fmt.Errorf("%w: row %d has %d/%d columns, want %d", ErrShapeMismatch, t, len(a[t]), len(b[t]), nComps)
		}
	}
	return nSamples, nComps, nil
}
