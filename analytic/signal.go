package analytic

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-vecmath"
)

// Builder errors.
var (
	ErrEmptyInput = errors.New("analytic: input must not be empty")
)

// Signal is a complex analytic signal, indexed [time][component].
//
// Its magnitude is the instantaneous amplitude and its angle the wrapped
// instantaneous phase of the source IMF array.
type Signal struct {
	data [][]complex128
}

// Len returns the number of time samples.
func (s *Signal) Len() int {
	return len(s.data)
}

// Components returns the number of component columns.
func (s *Signal) Components() int {
	if len(s.data) == 0 {
		return 0
	}
	return len(s.data[0])
}

// At returns the analytic sample at time index t, component c.
func (s *Signal) At(t, c int) complex128 {
	return s.data[t][c]
}

// Amplitude returns |z| per sample, indexed [time][component].
func (s *Signal) Amplitude() [][]float64 {
	nSamples := s.Len()
	nComps := s.Components()

	out := make([][]float64, nSamples)
	for t := range out {
		out[t] = make([]float64, nComps)
	}

	re := make([]float64, nSamples)
	im := make([]float64, nSamples)
	mag := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := 0; t < nSamples; t++ {
			re[t] = real(s.data[t][c])
			im[t] = imag(s.data[t][c])
		}
		vecmath.Magnitude(mag, re, im)
		for t := 0; t < nSamples; t++ {
			out[t][c] = mag[t]
		}
	}
	return out
}

// Angle returns arg(z) per sample in (-pi, pi], indexed [time][component].
func (s *Signal) Angle() [][]float64 {
	out := make([][]float64, s.Len())
	for t := range out {
		out[t] = make([]float64, s.Components())
		for c := range out[t] {
			out[t][c] = cmplx.Phase(s.data[t][c])
		}
	}
	return out
}

// checkMatrix validates a [time][component] input and returns its shape.
func checkMatrix(imf [][]float64) (nSamples, nComps int, err error) {
	if len(imf) == 0 || len(imf[0]) == 0 {
		return 0, 0, ErrEmptyInput
	}
	nSamples = len(imf)
	nComps = len(imf[0])
	for t := range imf {
		if len(imf[t]) != nComps {
			return 0, 0, fmt.Errorf("analytic: ragged input: row %d has %d columns, want %d", t, len(imf[t]), nComps)
		}
	}
	return nSamples, nComps, nil
}

func newSignal(nSamples, nComps int) *Signal {
	data := make([][]complex128, nSamples)
	for t := range data {
		data[t] = make([]complex128, nComps)
	}
	return &Signal{data: data}
}
