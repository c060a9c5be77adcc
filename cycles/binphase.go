package cycles

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"

	"github.com/cwbudde/algo-emd/spectra"
)

// Phase binning/alignment defaults.
const (
	// DefaultPhaseBins is the phase-bin count for BinByPhase.
	DefaultPhaseBins = 24
	// DefaultAlignPoints is the phase-grid resolution for PhaseAlign.
	DefaultAlignPoints = 48
)

// Spread selects the across-cycle variability metric of BinByPhase.
type Spread int

const (
	// SpreadVariance reports the variance per bin.
	SpreadVariance Spread = iota
	// SpreadStd reports the standard deviation per bin.
	SpreadStd
	// SpreadSEM reports the standard error of the mean per bin.
	SpreadSEM
)

// BinConfig configures BinByPhase.
type BinConfig struct {
	// NBins is the phase-bin count over [0, 2*pi); zero selects
	// DefaultPhaseBins. Ignored when Edges is set.
	NBins int
	// Edges overrides automatic bin specification.
	Edges []float64
	// Weights optionally weight each sample's contribution.
	Weights []float64
	// Spread selects the variability metric.
	Spread Spread
}

// BinByPhase computes the distribution of x across phase bins: the
// (optionally weighted) mean of x per bin, the selected variability metric,
// and the bin centres. Empty bins hold NaN.
func BinByPhase(ip, x []float64, cfg BinConfig) (avg, spread, centres []float64, err error) {
	if len(ip) == 0 {
		return nil, nil, nil, ErrEmptyInput
	}
	if len(x) != len(ip) {
		return nil, nil, nil, fmt.Errorf("cycles: %d values for %d phase samples", len(x), len(ip))
	}
	if cfg.Weights != nil && len(cfg.Weights) != len(ip) {
		return nil, nil, nil, fmt.Errorf("cycles: %d weights for %d samples", len(cfg.Weights), len(ip))
	}
	if cfg.Spread < SpreadVariance || cfg.Spread > SpreadSEM {
		return nil, nil, nil, fmt.Errorf("%w: spread %d", ErrUnknownMetric, cfg.Spread)
	}

	edges := cfg.Edges
	if edges == nil {
		nbins := cfg.NBins
		if nbins <= 0 {
			nbins = DefaultPhaseBins
		}
		edges, centres, err = spectra.DefineHistBins(0, 2*math.Pi, nbins, spectra.ScaleLinear)
		if err != nil {
			return nil, nil, nil, err
		}
	} else {
		if len(edges) < 2 {
			return nil, nil, nil, fmt.Errorf("cycles: need at least 2 bin edges, got %d", len(edges))
		}
		centres = make([]float64, len(edges)-1)
		for i := range centres {
			centres[i] = (edges[i] + edges[i+1]) / 2
		}
	}

	p := wrapTwoPi(ip)
	nBins := len(edges) - 1

	wSum := make([]float64, nBins)
	mean := make([]float64, nBins)
	m2 := make([]float64, nBins)
	counts := make([]int, nBins)

	// Weighted running mean/variance per bin (Welford).
	for i, v := range p {
		bin := phaseBin(v, edges)
		if bin < 0 {
			continue
		}
		w := 1.0
		if cfg.Weights != nil {
			w = cfg.Weights[i]
		}
		if w <= 0 {
			continue
		}
		counts[bin]++
		wSum[bin] += w
		delta := x[i] - mean[bin]
		mean[bin] += delta * w / wSum[bin]
		m2[bin] += w * delta * (x[i] - mean[bin])
	}

	avg = make([]float64, nBins)
	spread = make([]float64, nBins)
	for b := 0; b < nBins; b++ {
		if counts[b] == 0 {
			avg[b] = math.NaN()
			spread[b] = math.NaN()
			continue
		}
		avg[b] = mean[b]
		v := m2[b] / wSum[b]
		switch cfg.Spread {
		case SpreadVariance:
			spread[b] = v
		case SpreadStd:
			spread[b] = math.Sqrt(v)
		case SpreadSEM:
			spread[b] = math.Sqrt(v) / math.Sqrt(float64(counts[b]))
		}
	}
	return avg, spread, centres, nil
}

func phaseBin(v float64, edges []float64) int {
	if v < edges[0] || v >= edges[len(edges)-1] {
		return -1
	}
	lo, hi := 0, len(edges)-1
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if edges[mid] <= v {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

// AlignConfig configures PhaseAlign.
type AlignConfig struct {
	// NPoints is the number of grid points per cycle; zero selects
	// DefaultAlignPoints.
	NPoints int
	// Labels optionally supplies precomputed cycle labels; nil runs
	// Detect with defaults.
	Labels []int
}

// PhaseAlign resamples x onto a common phase grid within each detected
// cycle, returning an array indexed [gridPoint][cycle]. Within each cycle
// the observations are linearly interpolated against its instantaneous
// phase, extrapolating at the cycle's open ends.
func PhaseAlign(ip, x []float64, cfg AlignConfig) ([][]float64, error) {
	if len(ip) == 0 {
		return nil, ErrEmptyInput
	}
	if len(x) != len(ip) {
		return nil, fmt.Errorf("cycles: %d values for %d phase samples", len(x), len(ip))
	}

	npoints := cfg.NPoints
	if npoints <= 0 {
		npoints = DefaultAlignPoints
	}

	labels := cfg.Labels
	if labels == nil {
		var err error
		labels, err = Detect(ip, DetectConfig{})
		if err != nil {
			return nil, err
		}
	} else if len(labels) != len(ip) {
		return nil, fmt.Errorf("cycles: %d labels for %d samples", len(labels), len(ip))
	}

	_, grid, err := spectra.DefineHistBins(0, 2*math.Pi, npoints, spectra.ScaleLinear)
	if err != nil {
		return nil, err
	}

	p := wrapTwoPi(ip)
	nCycles := maxLabel(labels)

	out := make([][]float64, npoints)
	for i := range out {
		out[i] = make([]float64, nCycles)
	}

	for id := 1; id <= nCycles; id++ {
		lo, hi := labelSpan(labels, id)
		if hi-lo < 2 {
			return nil, fmt.Errorf("cycles: cycle %d too short to align", id)
		}
		// Fit panics on non-increasing abscissae, so reject them here.
		// Caller-supplied labels can cover segments Detect would filter.
		for i := lo + 1; i < hi; i++ {
			if p[i] <= p[i-1] {
				return nil, fmt.Errorf("cycles: cycle %d: phase not strictly increasing at sample %d", id, i)
			}
		}

		var lin interp.PiecewiseLinear
		if err := lin.Fit(p[lo:hi], x[lo:hi]); err != nil {
			return nil, fmt.Errorf("cycles: cycle %d: %w", id, err)
		}

		first, last := p[lo], p[hi-1]
		for g, q := range grid {
			switch {
			case q < first:
				out[g][id-1] = extrapolate(p[lo], x[lo], p[lo+1], x[lo+1], q)
			case q > last:
				out[g][id-1] = extrapolate(p[hi-2], x[hi-2], p[hi-1], x[hi-1], q)
			default:
				out[g][id-1] = lin.Predict(q)
			}
		}
	}
	return out, nil
}

// extrapolate continues the line through (x0,y0) and (x1,y1) at q.
func extrapolate(x0, y0, x1, y1, q float64) float64 {
	if x1 == x0 {
		return y0
	}
	return y0 + (q-x0)*(y1-y0)/(x1-x0)
}
