package phase

import (
	"errors"
	"fmt"
	"math"
)

// Estimation errors.
var (
	ErrEmptyInput   = errors.New("phase: input must not be empty")
	ErrBadSmoothing = errors.New("phase: smoothing window must be odd and no longer than the signal")
)

// Origin selects which part of the oscillation cycle maps to phase zero.
// This is a labelling convention only and has no effect on frequency
// estimates.
type Origin int

const (
	// OriginAscending places phase zero on the ascending zero-crossing
	// (shift +pi/2).
	OriginAscending Origin = iota
	// OriginPeak places phase zero on the peak (no shift).
	OriginPeak
	// OriginDescending places phase zero on the descending zero-crossing
	// (shift -pi/2).
	OriginDescending
	// OriginTrough places phase zero on the trough (shift +pi).
	OriginTrough
)

// String returns the origin name.
func (o Origin) String() string {
	switch o {
	case OriginAscending:
		return "ascending"
	case OriginPeak:
		return "peak"
	case OriginDescending:
		return "descending"
	case OriginTrough:
		return "trough"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

func (o Origin) shift() (float64, error) {
	switch o {
	case OriginAscending:
		return math.Pi / 2, nil
	case OriginPeak:
		return 0, nil
	case OriginDescending:
		return -math.Pi / 2, nil
	case OriginTrough:
		return math.Pi, nil
	default:
		return 0, fmt.Errorf("phase: unknown origin %v", o)
	}
}

// AngleSource provides wrapped per-sample phase angles, indexed
// [time][component]. *analytic.Signal satisfies this interface.
type AngleSource interface {
	Len() int
	Components() int
	Angle() [][]float64
}

// Options configures FromAnalytic.
type Options struct {
	// Smoothing is the odd Savitzky-Golay window length applied to the
	// unwrapped phase before any origin shift; zero disables smoothing.
	Smoothing int
	// Origin positions phase zero within the cycle.
	Origin Origin
	// Wrapped selects whether the returned phase is wrapped into
	// (-pi, pi] or left unwrapped.
	Wrapped bool
}

// FromAnalytic derives instantaneous phase from an analytic signal.
//
// The wrapped angle is unwrapped along the time axis, optionally smoothed
// with an order-1 Savitzky-Golay filter to damp estimation noise before
// differentiation, shifted by the origin convention, and returned wrapped
// or unwrapped per Options.
func FromAnalytic(src AngleSource, opts Options) ([][]float64, error) {
	if src == nil || src.Len() == 0 || src.Components() == 0 {
		return nil, ErrEmptyInput
	}

	shift, err := opts.Origin.shift()
	if err != nil {
		return nil, err
	}

	iphase := Unwrap(src.Angle())

	if opts.Smoothing > 0 {
		iphase, err = smoothColumns(iphase, opts.Smoothing)
		if err != nil {
			return nil, err
		}
	}

	if shift != 0 {
		for t := range iphase {
			for c := range iphase[t] {
				iphase[t][c] += shift
			}
		}
	}

	if opts.Wrapped {
		return Wrap(iphase), nil
	}
	return iphase, nil
}

// Unwrap removes 2*pi discontinuities along the time axis of a wrapped
// phase array, so that no two adjacent samples differ by more than pi.
// A fresh array is returned.
func Unwrap(p [][]float64) [][]float64 {
	out := make([][]float64, len(p))
	for t := range p {
		out[t] = make([]float64, len(p[t]))
	}
	if len(p) == 0 {
		return out
	}

	copy(out[0], p[0])
	for c := range p[0] {
		offset := 0.0
		for t := 1; t < len(p); t++ {
			d := p[t][c] - p[t-1][c]
			switch {
			case d > math.Pi:
				offset -= 2 * math.Pi
			case d < -math.Pi:
				offset += 2 * math.Pi
			}
			out[t][c] = p[t][c] + offset
		}
	}
	return out
}

// Wrap maps phase values into (-pi, pi] elementwise, returning a fresh
// array.
func Wrap(p [][]float64) [][]float64 {
	out := make([][]float64, len(p))
	for t := range p {
		out[t] = make([]float64, len(p[t]))
		for c, v := range p[t] {
			out[t][c] = WrapValue(v)
		}
	}
	return out
}

// WrapValue maps a single phase value into (-pi, pi].
func WrapValue(v float64) float64 {
	r := math.Mod(v+math.Pi, 2*math.Pi)
	if r <= 0 {
		r += 2 * math.Pi
	}
	return r - math.Pi
}
