package spectra

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Binning errors.
var (
	ErrBinCount     = errors.New("spectra: bin count must be >= 1")
	ErrBinRange     = errors.New("spectra: bin range must satisfy max > min")
	ErrLogScaleMin  = errors.New("spectra: log scale requires min > 0")
	ErrUnknownScale = errors.New("spectra: unknown bin scale")
)

// Scale selects the spacing of histogram bin edges.
type Scale int

const (
	// ScaleLinear spaces edges uniformly between min and max.
	ScaleLinear Scale = iota
	// ScaleLog spaces edges uniformly in log space and exponentiates;
	// requires min > 0.
	ScaleLog
)

// String returns the scale name.
func (s Scale) String() string {
	switch s {
	case ScaleLinear:
		return "linear"
	case ScaleLog:
		return "log"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// DefineHistBins computes nbins+1 bin edges between min and max and the
// corresponding bin centres.
//
// Centres are the arithmetic midpoints of adjacent edges for both scales;
// log-scale centres are deliberately not geometric midpoints.
func DefineHistBins(min, max float64, nbins int, scale Scale) (edges, centres []float64, err error) {
	if nbins < 1 {
		return nil, nil, fmt.Errorf("%w: got %d", ErrBinCount, nbins)
	}
	if !(max > min) {
		return nil, nil, fmt.Errorf("%w: min=%g max=%g", ErrBinRange, min, max)
	}

	edges = make([]float64, nbins+1)
	switch scale {
	case ScaleLinear:
		step := (max - min) / float64(nbins)
		for i := range edges {
			edges[i] = min + float64(i)*step
		}
		edges[nbins] = max
	case ScaleLog:
		if min <= 0 {
			return nil, nil, fmt.Errorf("%w: min=%g", ErrLogScaleMin, min)
		}
		lo, hi := math.Log(min), math.Log(max)
		step := (hi - lo) / float64(nbins)
		for i := range edges {
			edges[i] = math.Exp(lo + float64(i)*step)
		}
		edges[nbins] = max
	default:
		return nil, nil, fmt.Errorf("%w: %v", ErrUnknownScale, scale)
	}

	centres = make([]float64, nbins)
	for i := range centres {
		centres[i] = (edges[i] + edges[i+1]) / 2
	}
	return edges, centres, nil
}

// DefineHistBinsFromData derives bin edges from the extrema of x. A
// non-positive nbins selects floor(sqrt(len(x))) bins, a simple density
// heuristic for sample counts.
func DefineHistBinsFromData(x []float64, nbins int, scale Scale) (edges, centres []float64, err error) {
	if len(x) == 0 {
		return nil, nil, errors.New("spectra: cannot derive bins from empty data")
	}
	if nbins <= 0 {
		nbins = int(math.Sqrt(float64(len(x))))
		if nbins < 1 {
			nbins = 1
		}
	}
	return DefineHistBins(floats.Min(x), floats.Max(x), nbins, scale)
}

// digitize returns the number of edges less than or equal to v, so that a
// value in [edges[i-1], edges[i]) maps to i. Values below edges[0] map to
// 0, values above the final edge to len(edges). A value exactly on the
// final edge maps into the last bin (len(edges)-1), closing the final bin.
// NaN maps to len(edges).
func digitize(v float64, edges []float64) int {
	if math.IsNaN(v) {
		return len(edges)
	}
	if v == edges[len(edges)-1] {
		return len(edges) - 1
	}
	return sort.Search(len(edges), func(i int) bool { return edges[i] > v })
}

// binIndex maps v to a bin row in [0, len(edges)-2], where row i covers
// [edges[i], edges[i+1]) and the final bin is closed. Out-of-range or NaN
// values return -1.
func binIndex(v float64, edges []float64) int {
	d := digitize(v, edges)
	if d < 1 || d > len(edges)-1 {
		return -1
	}
	return d - 1
}
