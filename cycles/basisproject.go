package cycles

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// BasisProject expresses a set of cycle observations in a sine-cosine basis
// spanning one full rotation.
//
// x is indexed [sample][column], one column per cycle or signal, with the
// sample axis covering a single cycle (for example one column of a
// [PhaseAlign] result). The basis holds ncomps cosine/sine pairs at harmonic
// multiples 1..ncomps of the cycle frequency, sampled over [0, 2*pi]
// inclusive. The result is indexed [basisRow][column] with 2*ncomps rows:
// row 2*(h-1) is the cosine projection of harmonic h, row 2*(h-1)+1 the
// sine projection.
func BasisProject(x [][]float64, ncomps int) ([][]float64, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, ErrEmptyInput
	}
	if ncomps < 1 {
		return nil, fmt.Errorf("cycles: need at least 1 basis pair, got %d", ncomps)
	}
	nSamples := len(x)
	if nSamples < 2 {
		return nil, fmt.Errorf("cycles: basis projection requires at least 2 samples, got %d", nSamples)
	}
	nCols := len(x[0])
	for t := range x {
		if len(x[t]) != nCols {
			return nil, fmt.Errorf("cycles: ragged input: row %d has %d columns, want %d", t, len(x[t]), nCols)
		}
	}

	basis := mat.NewDense(2*ncomps, nSamples, nil)
	for h := 1; h <= ncomps; h++ {
		for k := 0; k < nSamples; k++ {
			th := 2 * math.Pi * float64(h) * float64(k) / float64(nSamples-1)
			s, c := math.Sincos(th)
			basis.Set(2*(h-1), k, c)
			basis.Set(2*(h-1)+1, k, s)
		}
	}

	data := mat.NewDense(nSamples, nCols, nil)
	for t := range x {
		data.SetRow(t, x[t])
	}

	var proj mat.Dense
	proj.Mul(basis, data)

	out := make([][]float64, 2*ncomps)
	for r := range out {
		out[r] = mat.Row(nil, r, &proj)
	}
	return out, nil
}
