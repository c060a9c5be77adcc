package envelope

import (
	"fmt"
	"math"
)

const (
	// DefaultNormaliseIters bounds the iterative envelope division.
	DefaultNormaliseIters = 3
	// DefaultNormaliseTol is the mean absolute deviation of the envelope
	// from unity at which iteration stops early.
	DefaultNormaliseTol = 1e-3
)

// NormaliseConfig configures AmplitudeNormalise.
type NormaliseConfig struct {
	// Clip hard-limits the result into [-1, 1] after the final iteration,
	// keeping sqrt(1-x^2) real-valued for downstream quadrature use.
	Clip bool
	// MaxIters caps the number of envelope divisions. Zero selects
	// DefaultNormaliseIters.
	MaxIters int
	// Tol is the convergence threshold on the envelope's mean absolute
	// deviation from 1. Zero selects DefaultNormaliseTol.
	Tol float64
}

// AmplitudeNormalise rescales each column of x into approximately [-1, 1] by
// iteratively dividing it by its interpolated magnitude envelope.
//
// x is indexed [time][component] and is not modified; the normalised copy is
// returned.
func AmplitudeNormalise(x [][]float64, cfg NormaliseConfig) ([][]float64, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, ErrEmptyInput
	}

	maxIters := cfg.MaxIters
	if maxIters <= 0 {
		maxIters = DefaultNormaliseIters
	}
	tol := cfg.Tol
	if tol <= 0 {
		tol = DefaultNormaliseTol
	}

	nSamples := len(x)
	nComps := len(x[0])

	out := make([][]float64, nSamples)
	for t := range x {
		if len(x[t]) != nComps {
			return nil, fmt.Errorf("envelope: ragged input: row %d has %d columns, want %d", t, len(x[t]), nComps)
		}
		out[t] = append([]float64(nil), x[t]...)
	}

	col := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := range out {
			col[t] = out[t][c]
		}
		if err := normaliseColumn(col, maxIters, tol); err != nil {
			return nil, fmt.Errorf("envelope: column %d: %w", c, err)
		}
		if cfg.Clip {
			clipUnit(col)
		}
		for t := range out {
			out[t][c] = col[t]
		}
	}
	return out, nil
}

// normaliseColumn divides col by its combined envelope in place until the
// envelope is close to unity or the iteration budget is spent.
func normaliseColumn(col []float64, maxIters int, tol float64) error {
	for iter := 0; iter < maxIters; iter++ {
		env, err := Interp(col, Combined)
		if err != nil {
			return err
		}

		dev := 0.0
		for i, e := range env {
			if e != 0 {
				col[i] /= e
			}
			dev += math.Abs(e - 1)
		}
		if dev/float64(len(env)) < tol {
			return nil
		}
	}
	return nil
}

func clipUnit(col []float64) {
	for i, v := range col {
		switch {
		case v > 1:
			col[i] = 1
		case v < -1:
			col[i] = -1
		}
	}
}
