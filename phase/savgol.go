package phase

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// SavGol applies an order-1 Savitzky-Golay filter of the given odd window
// length to x and returns the smoothed copy.
//
// For a first-order polynomial the interior response reduces to a centered
// moving average; the window/2 samples at each end are taken from a linear
// least-squares fit over the first (respectively last) full window,
// evaluated in place. Smoothing a straight line is therefore the identity.
//
// The window must be odd and no longer than x; window 1 is a copy.
func SavGol(x []float64, window int) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if window < 1 || window%2 == 0 || window > n {
		return nil, fmt.Errorf("%w: window %d, %d samples", ErrBadSmoothing, window, n)
	}

	out := make([]float64, n)
	if window == 1 {
		copy(out, x)
		return out, nil
	}

	half := window / 2

	// Interior: centered moving average, maintained as a running sum.
	sum := 0.0
	for i := 0; i < window; i++ {
		sum += x[i]
	}
	inv := 1 / float64(window)
	for i := half; i < n-half; i++ {
		out[i] = sum * inv
		if i+half+1 < n {
			sum += x[i+half+1] - x[i-half]
		}
	}

	// Edges: linear fit over the boundary window, evaluated at the edge
	// sample positions.
	idx := make([]float64, window)
	for i := range idx {
		idx[i] = float64(i)
	}

	alpha, beta := stat.LinearRegression(idx, x[:window], nil, false)
	for i := 0; i < half; i++ {
		out[i] = alpha + beta*float64(i)
	}

	alpha, beta = stat.LinearRegression(idx, x[n-window:], nil, false)
	for i := n - half; i < n; i++ {
		out[i] = alpha + beta*float64(i-(n-window))
	}

	return out, nil
}

// smoothColumns applies SavGol along the time axis of each component
// column.
func smoothColumns(p [][]float64, window int) ([][]float64, error) {
	nSamples := len(p)
	nComps := len(p[0])

	out := make([][]float64, nSamples)
	for t := range out {
		out[t] = make([]float64, nComps)
	}

	col := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := 0; t < nSamples; t++ {
			col[t] = p[t][c]
		}
		smoothed, err := SavGol(col, window)
		if err != nil {
			return nil, err
		}
		for t := 0; t < nSamples; t++ {
			out[t][c] = smoothed[t]
		}
	}
	return out, nil
}
