package cycles

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-emd/envelope"
)

// Cycle analysis errors.
var (
	ErrEmptyInput     = errors.New("cycles: input must not be empty")
	ErrUnknownMetric  = errors.New("cycles: unknown statistic metric")
	ErrNoControlPoint = errors.New("cycles: cycle has no usable control point")
)

// Detection defaults.
const (
	// DefaultPhaseStep is the minimum wrapped-phase jump marking a cycle
	// transition.
	DefaultPhaseStep = 1.5 * math.Pi
	// DefaultPhaseEdge is the maximum distance from 0 (respectively 2*pi)
	// allowed for the first (last) sample of a good cycle.
	DefaultPhaseEdge = math.Pi / 12
)

// DetectConfig configures Detect.
type DetectConfig struct {
	// ReturnAll keeps every detected segment, skipping the good-cycle
	// quality checks.
	ReturnAll bool
	// Mask excludes samples; any cycle touching an excluded sample is
	// discarded. Nil includes everything.
	Mask []bool
	// IMF optionally provides the source oscillation, enabling the
	// control-point quality check (ascending zero, peak, descending zero,
	// trough in strict order).
	IMF []float64
	// PhaseStep overrides DefaultPhaseStep when positive.
	PhaseStep float64
	// PhaseEdge overrides DefaultPhaseEdge when positive.
	PhaseEdge float64
}

// Detect segments an instantaneous-phase time course into cycles and
// returns per-sample cycle labels (0 = no cycle).
//
// The phase may be wrapped with any convention; it is re-wrapped into
// [0, 2*pi) internally. Cycle boundaries are samples where the wrapped
// phase jumps by more than PhaseStep. Unless ReturnAll is set, a cycle is
// kept only if its unwrapped phase increases strictly, it starts within
// PhaseEdge above zero, it ends within PhaseEdge below 2*pi, and pass a
// control-point check when an IMF is supplied. Accepted cycles are numbered
// consecutively from 1 in time order.
func Detect(ip []float64, cfg DetectConfig) ([]int, error) {
	n := len(ip)
	if n == 0 {
		return nil, ErrEmptyInput
	}
	if cfg.Mask != nil && len(cfg.Mask) != n {
		return nil, fmt.Errorf("cycles: mask has %d entries, want %d", len(cfg.Mask), n)
	}
	if cfg.IMF != nil && len(cfg.IMF) != n {
		return nil, fmt.Errorf("cycles: imf has %d samples, want %d", len(cfg.IMF), n)
	}

	step := cfg.PhaseStep
	if step <= 0 {
		step = DefaultPhaseStep
	}
	edge := cfg.PhaseEdge
	if edge <= 0 {
		edge = DefaultPhaseEdge
	}

	p := wrapTwoPi(ip)

	// Segment boundaries at wrapped-phase jumps, closed by the signal ends.
	bounds := []int{0}
	for i := 1; i < n; i++ {
		if math.Abs(p[i]-p[i-1]) > step {
			bounds = append(bounds, i)
		}
	}
	bounds = append(bounds, n)

	labels := make([]int, n)
	count := 1
	for b := 0; b < len(bounds)-1; b++ {
		lo, hi := bounds[b], bounds[b+1]
		if hi-lo < 2 {
			continue
		}
		if masked(cfg.Mask, lo, hi) {
			continue
		}

		if !cfg.ReturnAll && !goodCycle(p[lo:hi], cfg.IMF, lo, edge) {
			continue
		}

		for i := lo; i < hi; i++ {
			labels[i] = count
		}
		count++
	}
	return labels, nil
}

func goodCycle(p []float64, imf []float64, offset int, edge float64) bool {
	// Strictly increasing phase across the whole cycle.
	prev := p[0]
	for _, v := range p[1:] {
		if v <= prev {
			return false
		}
		prev = v
	}

	if p[0] > edge {
		return false
	}
	if p[len(p)-1] < 2*math.Pi-edge {
		return false
	}

	if imf != nil {
		if _, err := controlPoints(imf[offset : offset+len(p)]); err != nil {
			return false
		}
	}
	return true
}

func masked(mask []bool, lo, hi int) bool {
	if mask == nil {
		return false
	}
	for i := lo; i < hi; i++ {
		if !mask[i] {
			return true
		}
	}
	return false
}

// ControlPoints returns, for each labelled cycle, the within-cycle indices
// of the ascending zero (always 0), first peak, descending zero-crossing,
// first trough and cycle length.
func ControlPoints(x []float64, labels []int) ([][5]int, error) {
	if len(x) == 0 {
		return nil, ErrEmptyInput
	}
	if len(labels) != len(x) {
		return nil, fmt.Errorf("cycles: %d labels for %d samples", len(labels), len(x))
	}

	max := maxLabel(labels)
	out := make([][5]int, 0, max)
	for id := 1; id <= max; id++ {
		lo, hi := labelSpan(labels, id)
		if lo < 0 {
			return nil, fmt.Errorf("cycles: label %d missing", id)
		}
		ctrl, err := controlPoints(x[lo:hi])
		if err != nil {
			return nil, fmt.Errorf("cycles: cycle %d: %w", id, err)
		}
		out = append(out, ctrl)
	}
	return out, nil
}

func controlPoints(cycle []float64) ([5]int, error) {
	var ctrl [5]int

	peaks, _ := envelope.FindPeaks(cycle)
	if len(peaks) == 0 {
		return ctrl, fmt.Errorf("%w: no peak", ErrNoControlPoint)
	}

	neg := make([]float64, len(cycle))
	for i, v := range cycle {
		neg[i] = -v
	}
	troughs, _ := envelope.FindPeaks(neg)
	if len(troughs) == 0 {
		return ctrl, fmt.Errorf("%w: no trough", ErrNoControlPoint)
	}

	desc := -1
	for i := peaks[0]; i < len(cycle)-1; i++ {
		if cycle[i] > 0 && cycle[i+1] <= 0 {
			desc = i + 1
			break
		}
	}
	if desc < 0 {
		return ctrl, fmt.Errorf("%w: no descending zero-crossing", ErrNoControlPoint)
	}

	ctrl = [5]int{0, peaks[0], desc, troughs[0], len(cycle)}
	for i := 1; i < len(ctrl); i++ {
		if ctrl[i] <= ctrl[i-1] {
			return ctrl, fmt.Errorf("%w: control points out of order", ErrNoControlPoint)
		}
	}
	return ctrl, nil
}

// Metric selects the per-cycle statistic.
type Metric int

const (
	// MetricMean averages the values within each cycle.
	MetricMean Metric = iota
	// MetricSum totals the values within each cycle.
	MetricSum
)

// Stat computes a per-cycle statistic of values.
//
// With full false the result has one entry per cycle label. With full true
// the statistic is broadcast back over each cycle's samples and samples
// outside any cycle hold NaN.
func Stat(labels []int, values []float64, metric Metric, full bool) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyInput
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("cycles: %d labels for %d values", len(labels), len(values))
	}
	if metric != MetricMean && metric != MetricSum {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMetric, metric)
	}

	max := maxLabel(labels)
	sums := make([]float64, max)
	counts := make([]int, max)
	for i, l := range labels {
		if l <= 0 {
			continue
		}
		sums[l-1] += values[i]
		counts[l-1]++
	}
	if metric == MetricMean {
		for i := range sums {
			if counts[i] > 0 {
				sums[i] /= float64(counts[i])
			} else {
				sums[i] = math.NaN()
			}
		}
	}

	if !full {
		return sums, nil
	}

	out := make([]float64, len(values))
	for i, l := range labels {
		if l <= 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sums[l-1]
		}
	}
	return out, nil
}

// Chains groups temporally adjacent cycles into chains and returns the
// cycle labels of each chain at least minChain long. dropFirst and dropLast
// remove that many cycles from the ends of every chain after the length
// filter.
func Chains(labels []int, minChain, dropFirst, dropLast int) [][]int {
	if minChain < 1 {
		minChain = 1
	}

	max := maxLabel(labels)
	var chains [][]int
	var chain []int
	for id := 1; id <= max; id++ {
		_, hi := labelSpan(labels, id)
		if hi < 0 {
			// Gap in the label sequence; close any open chain.
			if chain != nil {
				chains = append(chains, chain)
				chain = nil
			}
			continue
		}
		adjacent := hi < len(labels) && labels[hi] == id+1
		chain = append(chain, id)
		if !adjacent {
			chains = append(chains, chain)
			chain = nil
		}
	}

	out := make([][]int, 0, len(chains))
	for _, chn := range chains {
		if len(chn) < minChain {
			continue
		}
		if dropFirst > 0 {
			if dropFirst >= len(chn) {
				continue
			}
			chn = chn[dropFirst:]
		}
		if dropLast > 0 {
			if dropLast >= len(chn) {
				continue
			}
			chn = chn[:len(chn)-dropLast]
		}
		out = append(out, chn)
	}
	return out
}

// labelSpan returns the half-open sample range of cycle id, or (-1, -1)
// when absent. Cycles are contiguous by construction.
func labelSpan(labels []int, id int) (lo, hi int) {
	lo = -1
	for i, l := range labels {
		if l == id {
			if lo < 0 {
				lo = i
			}
			hi = i + 1
		}
	}
	if lo < 0 {
		return -1, -1
	}
	return lo, hi
}

func maxLabel(labels []int) int {
	max := 0
	for _, l := range labels {
		if l > max {
			max = l
		}
	}
	return max
}

// wrapTwoPi maps phase values into [0, 2*pi).
func wrapTwoPi(p []float64) []float64 {
	out := make([]float64, len(p))
	for i, v := range p {
		r := math.Mod(v, 2*math.Pi)
		if r < 0 {
			r += 2 * math.Pi
		}
		out[i] = r
	}
	return out
}
