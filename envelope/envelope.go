package envelope

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
)

// Envelope errors.
var (
	ErrEmptyInput  = errors.New("envelope: input must not be empty")
	ErrUnknownMode = errors.New("envelope: unknown interpolation mode")
)

// Mode selects which envelope of a signal is interpolated.
type Mode int

const (
	// Upper interpolates through the local maxima.
	Upper Mode = iota
	// Lower interpolates through the local minima.
	Lower
	// Combined interpolates through the absolute values of both maxima and
	// minima, giving a single magnitude envelope.
	Combined
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Upper:
		return "upper"
	case Lower:
		return "lower"
	case Combined:
		return "combined"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// FindPeaks returns the sample indices and values of the local maxima of x.
//
// A peak is a sample strictly greater than its neighbours. Plateaus report
// their first sample. Endpoints are never peaks.
func FindPeaks(x []float64) (locs []int, vals []float64) {
	for i := 1; i < len(x)-1; i++ {
		if x[i] <= x[i-1] {
			continue
		}
		// Walk across a possible plateau to the next differing sample.
		j := i
		for j < len(x)-1 && x[j+1] == x[i] {
			j++
		}
		if j < len(x)-1 && x[j+1] < x[i] {
			locs = append(locs, i)
			vals = append(vals, x[i])
		}
		i = j
	}
	return locs, vals
}

// Interp returns the interpolated envelope of x as a slice of the same
// length.
//
// The envelope is a natural cubic spline through the selected extrema,
// evaluated at every sample index. The nearest extremum is mirrored across
// each signal end so the spline is supported over the full range. Signals
// with fewer than two usable extrema fall back to a constant envelope at the
// maximum absolute value of x.
func Interp(x []float64, mode Mode) ([]float64, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}

	var locs []int
	var vals []float64

	switch mode {
	case Upper:
		locs, vals = FindPeaks(x)
	case Lower:
		neg := make([]float64, len(x))
		for i, v := range x {
			neg[i] = -v
		}
		locs, vals = FindPeaks(neg)
		for i := range vals {
			vals[i] = -vals[i]
		}
	case Combined:
		upLocs, upVals := FindPeaks(x)
		neg := make([]float64, len(x))
		for i, v := range x {
			neg[i] = -v
		}
		loLocs, loVals := FindPeaks(neg)
		locs, vals = mergeAbs(upLocs, upVals, loLocs, loVals)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	if len(locs) < 2 {
		return flatEnvelope(x), nil
	}

	xs, ys := padExtrema(locs, vals, len(x))

	env := make([]float64, len(x))
	var spline interp.NaturalCubic
	if err := spline.Fit(xs, ys); err != nil {
		// Degenerate spacing; a piecewise-linear envelope still satisfies
		// the contract.
		var lin interp.PiecewiseLinear
		if err := lin.Fit(xs, ys); err != nil {
			return nil, fmt.Errorf("envelope: interpolation failed: %w", err)
		}
		for i := range env {
			env[i] = lin.Predict(float64(i))
		}
		return env, nil
	}
	for i := range env {
		env[i] = spline.Predict(float64(i))
	}
	return env, nil
}

// mergeAbs merges two extrema sets into a single ordered set of absolute
// values. Coinciding indices keep the larger magnitude.
func mergeAbs(aLocs []int, aVals []float64, bLocs []int, bVals []float64) ([]int, []float64) {
	locs := make([]int, 0, len(aLocs)+len(bLocs))
	vals := make([]float64, 0, len(aVals)+len(bVals))

	i, j := 0, 0
	for i < len(aLocs) || j < len(bLocs) {
		switch {
		case j >= len(bLocs) || (i < len(aLocs) && aLocs[i] < bLocs[j]):
			locs = append(locs, aLocs[i])
			vals = append(vals, math.Abs(aVals[i]))
			i++
		case i >= len(aLocs) || bLocs[j] < aLocs[i]:
			locs = append(locs, bLocs[j])
			vals = append(vals, math.Abs(bVals[j]))
			j++
		default:
			locs = append(locs, aLocs[i])
			vals = append(vals, math.Max(math.Abs(aVals[i]), math.Abs(bVals[j])))
			i++
			j++
		}
	}
	return locs, vals
}

// padExtrema mirrors the first and last extremum across the signal ends and
// returns float sample positions ready for spline fitting.
func padExtrema(locs []int, vals []float64, n int) (xs, ys []float64) {
	xs = make([]float64, 0, len(locs)+2)
	ys = make([]float64, 0, len(vals)+2)

	if locs[0] > 0 {
		xs = append(xs, -float64(locs[0]))
		ys = append(ys, vals[0])
	}
	for i, l := range locs {
		xs = append(xs, float64(l))
		ys = append(ys, vals[i])
	}
	last := len(locs) - 1
	if locs[last] < n-1 {
		xs = append(xs, float64(2*(n-1)-locs[last]))
		ys = append(ys, vals[last])
	}
	return xs, ys
}

func flatEnvelope(x []float64) []float64 {
	peak := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	env := make([]float64, len(x))
	for i := range env {
		env[i] = peak
	}
	return env
}
