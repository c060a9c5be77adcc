package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// AMSine generates a sinusoidal carrier whose amplitude is modulated at
// amFreqHz with the given modulation depth in [0, 1].
func AMSine(carrierHz, amFreqHz, sampleRate, depth float64, length int) []float64 {
	out := make([]float64, length)
	cStep := 2 * math.Pi * carrierHz / sampleRate
	mStep := 2 * math.Pi * amFreqHz / sampleRate
	for i := range out {
		env := 1 + depth*math.Sin(mStep*float64(i))
		out[i] = env * math.Sin(cStep*float64(i))
	}
	return out
}

// SineMatrix generates one deterministic sine column per entry of freqsHz,
// indexed [time][component].
func SineMatrix(freqsHz []float64, sampleRate, amplitude float64, length int) [][]float64 {
	out := make([][]float64, length)
	for t := range out {
		out[t] = make([]float64, len(freqsHz))
	}
	for c, f := range freqsHz {
		col := DeterministicSine(f, sampleRate, amplitude, length)
		for t := range col {
			out[t][c] = col[t]
		}
	}
	return out
}

// MatrixFromColumns assembles a [time][component] array from equally long
// column slices.
func MatrixFromColumns(cols ...[]float64) [][]float64 {
	if len(cols) == 0 {
		return nil
	}
	out := make([][]float64, len(cols[0]))
	for t := range out {
		out[t] = make([]float64, len(cols))
		for c := range cols {
			out[t][c] = cols[c][t]
		}
	}
	return out
}

// LinearRamp generates a straight line from start with the given slope per
// sample.
func LinearRamp(start, slope float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = start + slope*float64(i)
	}
	return out
}
