package spectra

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-emd/analytic"
	"github.com/cwbudde/algo-emd/envelope"
	"github.com/cwbudde/algo-emd/phase"
)

// ErrUnknownMethod reports a frequency estimation method outside the
// closed [Method] set.
var ErrUnknownMethod = errors.New("spectra: unknown frequency estimation method")

// DefaultSmoothWindow is the Savitzky-Golay window applied to unwrapped
// phase before differentiation when the config does not override it.
const DefaultSmoothWindow = 31

// Method selects the analytic-signal builder used by FrequencyStats.
type Method int

const (
	// MethodHilbert uses the FFT-based Hilbert transform; amplitude is
	// the analytic-signal magnitude.
	MethodHilbert Method = iota
	// MethodQuadrature uses the geometric quadrature transform; amplitude
	// is estimated from the upper envelope of each IMF, which is more
	// reliable than the normalised construction's own magnitude.
	MethodQuadrature
	// MethodDirectQuad names the disabled arctangent path; selecting it
	// is a configuration error, never an execution path.
	MethodDirectQuad
)

// String returns the method name.
func (m Method) String() string {
	switch m {
	case MethodHilbert:
		return "hilbert"
	case MethodQuadrature:
		return "quad"
	case MethodDirectQuad:
		return "direct_quad"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// Config holds FrequencyStats parameters.
type Config struct {
	// SmoothWindow is the odd Savitzky-Golay window length for phase
	// smoothing. Zero selects DefaultSmoothWindow; a negative value
	// disables smoothing.
	SmoothWindow int
}

func (c Config) smoothing() int {
	switch {
	case c.SmoothWindow == 0:
		return DefaultSmoothWindow
	case c.SmoothWindow < 0:
		return 0
	default:
		return c.SmoothWindow
	}
}

// Stats holds matched instantaneous estimates, each indexed
// [time][component] with the shape of the source IMF array.
type Stats struct {
	// IP is the instantaneous phase, wrapped into (-pi, pi].
	IP [][]float64
	// IF is the instantaneous frequency in Hz. It may be negative at
	// phase slips.
	IF [][]float64
	// IA is the non-negative instantaneous amplitude.
	IA [][]float64
}

// FrequencyStats computes instantaneous phase, frequency and amplitude for
// each IMF column.
//
// The analytic signal is built by the selected method, its unwrapped phase
// smoothed and differentiated to frequency, and the phase returned
// re-wrapped. See [Method] for the amplitude conventions.
func FrequencyStats(imf [][]float64, sampleRate float64, method Method, cfg Config) (*Stats, error) {
	var (
		sig *analytic.Signal
		ia  [][]float64
		err error
	)

	switch method {
	case MethodHilbert:
		sig, err = analytic.Hilbert(imf)
		if err != nil {
			return nil, err
		}
		ia = sig.Amplitude()

	case MethodQuadrature:
		sig, err = analytic.Quadrature(imf)
		if err != nil {
			return nil, err
		}
		ia, err = upperEnvelopes(imf)
		if err != nil {
			return nil, err
		}

	case MethodDirectQuad:
		_, err = analytic.DirectQuadrature(imf)
		return nil, err

	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownMethod, method)
	}

	unwrapped, err := phase.FromAnalytic(sig, phase.Options{
		Smoothing: cfg.smoothing(),
		Origin:    phase.OriginAscending,
	})
	if err != nil {
		return nil, err
	}

	ifreq, err := phase.FreqFromPhase(unwrapped, sampleRate)
	if err != nil {
		return nil, err
	}

	return &Stats{
		IP: phase.Wrap(unwrapped),
		IF: ifreq,
		IA: ia,
	}, nil
}

// CubeStats holds instantaneous estimates for a second-layer decomposition,
// each indexed [time][component][subComponent].
type CubeStats struct {
	IP [][][]float64
	IF [][][]float64
	IA [][][]float64
}

// FrequencyStatsCube applies [FrequencyStats] to each secondary-axis slice
// of a [time][component][subComponent] cube, as used for the second-layer
// amplitude-modulation decomposition feeding [Holospectrum].
func FrequencyStatsCube(imf [][][]float64, sampleRate float64, method Method, cfg Config) (*CubeStats, error) {
	if len(imf) == 0 || len(imf[0]) == 0 || len(imf[0][0]) == 0 {
		return nil, ErrEmptyInput
	}
	nSamples := len(imf)
	nComps := len(imf[0])
	nSub := len(imf[0][0])

	out := &CubeStats{
		IP: makeCube(nSamples, nComps, nSub),
		IF: makeCube(nSamples, nComps, nSub),
		IA: makeCube(nSamples, nComps, nSub),
	}

	slice := make([][]float64, nSamples)
	for s := 0; s < nSub; s++ {
		for t := 0; t < nSamples; t++ {
			if len(imf[t]) != nComps || len(imf[t][0]) != nSub {
				return nil, fmt.Errorf("%w: ragged cube at time %d", ErrShapeMismatch, t)
			}
			row := make([]float64, nComps)
			for c := 0; c < nComps; c++ {
				row[c] = imf[t][c][s]
			}
			slice[t] = row
		}

		stats, err := FrequencyStats(slice, sampleRate, method, cfg)
		if err != nil {
			return nil, fmt.Errorf("spectra: sub-component %d: %w", s, err)
		}
		for t := 0; t < nSamples; t++ {
			for c := 0; c < nComps; c++ {
				out.IP[t][c][s] = stats.IP[t][c]
				out.IF[t][c][s] = stats.IF[t][c]
				out.IA[t][c][s] = stats.IA[t][c]
			}
		}
	}
	return out, nil
}

// upperEnvelopes interpolates the upper envelope of each IMF column.
func upperEnvelopes(imf [][]float64) ([][]float64, error) {
	nSamples := len(imf)
	nComps := len(imf[0])

	out := make([][]float64, nSamples)
	for t := range out {
		out[t] = make([]float64, nComps)
	}

	col := make([]float64, nSamples)
	for c := 0; c < nComps; c++ {
		for t := 0; t < nSamples; t++ {
			col[t] = imf[t][c]
		}
		env, err := envelope.Interp(col, envelope.Upper)
		if err != nil {
			return nil, fmt.Errorf("spectra: envelope of column %d: %w", c, err)
		}
		for t := 0; t < nSamples; t++ {
			out[t][c] = env[t]
		}
	}
	return out, nil
}

func makeCube(nSamples, nComps, nSub int) [][][]float64 {
	cube := make([][][]float64, nSamples)
	for t := range cube {
		cube[t] = make([][]float64, nComps)
		for c := range cube[t] {
			cube[t][c] = make([]float64, nSub)
		}
	}
	return cube
}
