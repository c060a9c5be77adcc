package analytic

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Hilbert builds the analytic signal of each IMF column via the FFT-based
// Hilbert transform: negative frequencies are zeroed, positive frequencies
// doubled, DC and Nyquist kept.
//
// The method is sensitive to mode mixing and end effects; that is a
// documented limitation of the transform, not corrected here. Power-of-two
// lengths run through a cached-free FFT plan, other lengths through a
// general mixed-radix transform; both paths agree to floating-point
// tolerance.
func Hilbert(imf [][]float64) (*Signal, error) {
	nSamples, nComps, err := checkMatrix(imf)
	if err != nil {
		return nil, err
	}

	sig := newSignal(nSamples, nComps)
	col := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := 0; t < nSamples; t++ {
			col[t] = imf[t][c]
		}
		ac, err := analyticColumn(col)
		if err != nil {
			return nil, fmt.Errorf("analytic: column %d: %w", c, err)
		}
		for t := 0; t < nSamples; t++ {
			sig.data[t][c] = ac[t]
		}
	}
	return sig, nil
}

// HilbertCube applies [Hilbert] to each secondary-axis slice of a
// [time][component][subComponent] cube and returns one Signal per
// sub-component index.
func HilbertCube(imf [][][]float64) ([]*Signal, error) {
	return buildCube(imf, Hilbert)
}

func analyticColumn(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 1 {
		return []complex128{complex(x[0], 0)}, nil
	}
	if isPowerOfTwo(n) {
		return analyticColumnPlan(x)
	}
	return analyticColumnGeneral(x)
}

// analyticColumnPlan is the power-of-two fast path using an FFT plan.
func analyticColumnPlan(x []float64) ([]complex128, error) {
	n := len(x)

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("fft plan: %w", err)
	}

	time := make([]complex128, n)
	for i, v := range x {
		time[i] = complex(v, 0)
	}

	freq := make([]complex128, n)
	if err := plan.Forward(freq, time); err != nil {
		return nil, err
	}

	applyAnalyticWeights(freq)

	out := make([]complex128, n)
	if err := plan.Inverse(out, freq); err != nil {
		return nil, err
	}
	return out, nil
}

// analyticColumnGeneral handles arbitrary lengths via a mixed-radix
// transform. The inverse is unnormalised, so the result is scaled by 1/n.
func analyticColumnGeneral(x []float64) ([]complex128, error) {
	n := len(x)

	cfft := fourier.NewCmplxFFT(n)

	seq := make([]complex128, n)
	for i, v := range x {
		seq[i] = complex(v, 0)
	}

	freq := cfft.Coefficients(nil, seq)
	applyAnalyticWeights(freq)

	out := cfft.Sequence(nil, freq)
	scale := complex(1/float64(n), 0)
	for i := range out {
		out[i] *= scale
	}
	return out, nil
}

// applyAnalyticWeights converts a full complex spectrum into the one-sided
// analytic spectrum in place: DC (and Nyquist for even lengths) unchanged,
// positive frequencies doubled, negative frequencies zeroed.
func applyAnalyticWeights(freq []complex128) {
	n := len(freq)
	if n < 2 {
		return
	}
	if n%2 == 0 {
		for k := 1; k < n/2; k++ {
			freq[k] *= 2
		}
		for k := n/2 + 1; k < n; k++ {
			freq[k] = 0
		}
		return
	}
	half := (n - 1) / 2
	for k := 1; k <= half; k++ {
		freq[k] *= 2
	}
	for k := half + 1; k < n; k++ {
		freq[k] = 0
	}
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// buildCube applies a 2D builder to each secondary-axis slice of a cube.
func buildCube(imf [][][]float64, build func([][]float64) (*Signal, error)) ([]*Signal, error) {
	if len(imf) == 0 || len(imf[0]) == 0 || len(imf[0][0]) == 0 {
		return nil, ErrEmptyInput
	}
	nComps := len(imf[0])
	nSub := len(imf[0][0])

	out := make([]*Signal, nSub)
	slice := make([][]float64, len(imf))
	for s := 0; s < nSub; s++ {
		for t := range imf {
			if len(imf[t]) != nComps || len(imf[t][0]) != nSub {
				return nil, fmt.Errorf("analytic: ragged cube at time %d", t)
			}
			row := make([]float64, nComps)
			for c := 0; c < nComps; c++ {
				row[c] = imf[t][c][s]
			}
			slice[t] = row
		}
		sig, err := build(slice)
		if err != nil {
			return nil, fmt.Errorf("analytic: sub-component %d: %w", s, err)
		}
		out[s] = sig
	}
	return out, nil
}
