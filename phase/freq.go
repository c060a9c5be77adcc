package phase

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/floats"
)

// FreqFromPhase differentiates unwrapped phase along the time axis and
// scales to instantaneous frequency in Hz.
//
// The discrete gradient uses central differences for interior samples and
// one-sided differences at the boundaries. For a pure sinusoid of frequency
// f sampled well above Nyquist the output converges to f everywhere except
// possibly at the boundary samples.
func FreqFromPhase(iphase [][]float64, sampleRate float64) ([][]float64, error) {
	if len(iphase) == 0 || len(iphase[0]) == 0 {
		return nil, ErrEmptyInput
	}
	if len(iphase) < 2 {
		return nil, fmt.Errorf("phase: gradient requires at least 2 samples, got %d", len(iphase))
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("phase: sample rate must be > 0, got %f", sampleRate)
	}

	nSamples := len(iphase)
	nComps := len(iphase[0])
	scale := sampleRate / (2 * math.Pi)

	out := make([][]float64, nSamples)
	for t := range out {
		out[t] = make([]float64, nComps)
	}

	grad := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		grad[0] = iphase[1][c] - iphase[0][c]
		grad[nSamples-1] = iphase[nSamples-1][c] - iphase[nSamples-2][c]
		for t := 1; t < nSamples-1; t++ {
			grad[t] = (iphase[t+1][c] - iphase[t-1][c]) / 2
		}
		vecmath.ScaleBlock(grad, grad, scale)
		for t := 0; t < nSamples; t++ {
			out[t][c] = grad[t]
		}
	}
	return out, nil
}

// PhaseFromFreq integrates instantaneous frequency back to unwrapped phase:
// phaseStart plus the cumulative sum of (freq/sampleRate)*2*pi.
//
// Composing FreqFromPhase then PhaseFromFreq with a matching start phase
// reproduces the original unwrapped phase up to the differentiation
// boundary error at the first sample.
func PhaseFromFreq(ifreq [][]float64, sampleRate float64, phaseStart float64) ([][]float64, error) {
	if len(ifreq) == 0 || len(ifreq[0]) == 0 {
		return nil, ErrEmptyInput
	}
	if sampleRate <= 0 {
		return nil, fmt.Errorf("phase: sample rate must be > 0, got %f", sampleRate)
	}

	nSamples := len(ifreq)
	nComps := len(ifreq[0])
	scale := 2 * math.Pi / sampleRate

	out := make([][]float64, nSamples)
	for t := range out {
		out[t] = make([]float64, nComps)
	}

	diff := make([]float64, nSamples)
	cum := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := 0; t < nSamples; t++ {
			diff[t] = ifreq[t][c] * scale
		}
		floats.CumSum(cum, diff)
		for t := 0; t < nSamples; t++ {
			out[t][c] = phaseStart + cum[t]
		}
	}
	return out, nil
}
