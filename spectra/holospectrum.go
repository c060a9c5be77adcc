package spectra

import (
	"fmt"
	"math"
)

// Holospectrum accumulates the second-layer amplitude-modulation spectrum,
// collapsed over time: how much AM energy each (carrier frequency, AM
// frequency) pair carries.
//
// ifreq is the carrier instantaneous frequency, indexed [time][component].
// ifreq2 and iamp2 are the second-layer (AM) frequency and amplitude,
// indexed [time][component][subComponent]. The result is indexed
// [carrierBin][amBin] with len(carrierEdges)-1 rows and len(amEdges)-1
// columns.
//
// Aggregation is a two-phase sparse pipeline: raw carrier and AM bin
// indices are folded into one linear index with stride len(carrierEdges)+1,
// accumulated in a (time, foldedIndex) coordinate matrix, and the
// out-of-range edge bins of each folded dimension are trimmed on unfolding.
// The time axis is collapsed while still sparse, which keeps memory
// proportional to the stored sample count; prefer this over
// [HolospectrumTime] whenever the time axis is not needed.
//
// NaN amplitudes contribute nothing; NaN or out-of-range frequencies land
// in the trimmed edge bins and are dropped.
func Holospectrum(ifreq [][]float64, ifreq2, iamp2 [][][]float64, carrierEdges, amEdges []float64, mode Mode) ([][]float64, error) {
	holo, err := holoSparse(ifreq, ifreq2, iamp2, carrierEdges, amEdges, mode)
	if err != nil {
		return nil, err
	}

	sums := holo.SumRows()

	fold1 := len(carrierEdges) + 1
	nCarrier := len(carrierEdges) - 1
	nAM := len(amEdges) - 1

	out := make([][]float64, nCarrier)
	for i := range out {
		out[i] = make([]float64, nAM)
		for j := range out[i] {
			out[i][j] = sums[(i+1)+(j+1)*fold1]
		}
	}
	return out, nil
}

// HolospectrumTime is [Holospectrum] with the time axis retained; the
// result is indexed [time][carrierBin][amBin]. Summing it over time equals
// the collapsed form, at the cost of densifying time*carrier*AM values.
func HolospectrumTime(ifreq [][]float64, ifreq2, iamp2 [][][]float64, carrierEdges, amEdges []float64, mode Mode) ([][][]float64, error) {
	holo, err := holoSparse(ifreq, ifreq2, iamp2, carrierEdges, amEdges, mode)
	if err != nil {
		return nil, err
	}

	dense := holo.Dense()

	fold1 := len(carrierEdges) + 1
	nCarrier := len(carrierEdges) - 1
	nAM := len(amEdges) - 1

	out := make([][][]float64, len(dense))
	for t := range dense {
		out[t] = make([][]float64, nCarrier)
		for i := range out[t] {
			out[t][i] = make([]float64, nAM)
			for j := range out[t][i] {
				out[t][i][j] = dense[t][(i+1)+(j+1)*fold1]
			}
		}
	}
	return out, nil
}

// holoSparse builds the (time, foldedIndex) coordinate accumulator shared
// by both holospectrum forms.
func holoSparse(ifreq [][]float64, ifreq2, iamp2 [][][]float64, carrierEdges, amEdges []float64, mode Mode) (*COO, error) {
	nSamples, nComps, nSub, err := checkCube(ifreq, ifreq2, iamp2)
	if err != nil {
		return nil, err
	}
	if len(carrierEdges) < 2 || len(amEdges) < 2 {
		return nil, ErrBadEdges
	}
	if mode != ModePower && mode != ModeEnergy {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	fold1 := len(carrierEdges) + 1
	fold2 := len(amEdges) + 1

	holo, err := NewCOO(nSamples, fold1*fold2)
	if err != nil {
		return nil, err
	}

	for t := 0; t < nSamples; t++ {
		for c := 0; c < nComps; c++ {
			dc := digitize(ifreq[t][c], carrierEdges)
			for s := 0; s < nSub; s++ {
				w := iamp2[t][c][s]
				if math.IsNaN(w) {
					continue
				}
				if mode == ModeEnergy {
					w *= w
				}
				da := digitize(ifreq2[t][c][s], amEdges)
				if err := holo.Add(t, dc+da*fold1, w); err != nil {
					return nil, err
				}
			}
		}
	}
	return holo, nil
}

// HolospectrumAM is a direct nested-loop reference accumulator for the
// holospectrum, returning the dense 4D array indexed
// [carrierBin][amBin][time][component]. It trades the sparse intermediate
// for simplicity: cost and memory grow with carrier*AM*time*component, so
// it suits validation and small inputs. Summing over its time and
// component axes matches [Holospectrum] exactly.
func HolospectrumAM(ifreq [][]float64, ifreq2, iamp2 [][][]float64, carrierEdges, amEdges []float64, mode Mode) ([][][][]float64, error) {
	nSamples, nComps, nSub, err := checkCube(ifreq, ifreq2, iamp2)
	if err != nil {
		return nil, err
	}
	if len(carrierEdges) < 2 || len(amEdges) < 2 {
		return nil, ErrBadEdges
	}
	if mode != ModePower && mode != ModeEnergy {
		return nil, fmt.Errorf("%w: %v", ErrUnknownMode, mode)
	}

	nCarrier := len(carrierEdges) - 1
	nAM := len(amEdges) - 1

	out := make([][][][]float64, nCarrier)
	for i := range out {
		out[i] = make([][][]float64, nAM)
		for j := range out[i] {
			out[i][j] = make([][]float64, nSamples)
			for t := range out[i][j] {
				out[i][j][t] = make([]float64, nComps)
			}
		}
	}

	for t := 0; t < nSamples; t++ {
		for c := 0; c < nComps; c++ {
			bc := binIndex(ifreq[t][c], carrierEdges)
			if bc < 0 {
				continue
			}
			for s := 0; s < nSub; s++ {
				w := iamp2[t][c][s]
				if math.IsNaN(w) {
					continue
				}
				if mode == ModeEnergy {
					w *= w
				}
				ba := binIndex(ifreq2[t][c][s], amEdges)
				if ba < 0 {
					continue
				}
				out[bc][ba][t][c] += w
			}
		}
	}
	return out, nil
}

// checkCube validates the holospectrum input shapes: ifreq is
// [time][component], ifreq2 and iamp2 are [time][component][subComponent]
// with matching extents.
func checkCube(ifreq [][]float64, ifreq2, iamp2 [][][]float64) (nSamples, nComps, nSub int, err error) {
	if len(ifreq) == 0 || len(ifreq[0]) == 0 {
		return 0, 0, 0, ErrEmptyInput
	}
	nSamples = len(ifreq)
	nComps = len(ifreq[0])

	if len(ifreq2) != nSamples || len(iamp2) != nSamples {
		return 0, 0, 0, fmt.Errorf("%w: %d carrier samples vs %d/%d second-layer samples",
			ErrShapeMismatch, nSamples, len(ifreq2), len(iamp2))
	}
	if len(ifreq2[0]) == 0 || len(ifreq2[0][0]) == 0 {
		return 0, 0, 0, ErrEmptyInput
	}
	nSub = len(ifreq2[0][0])

	for t := 0; t < nSamples; t++ {
		if len(ifreq[t]) != nComps || len(ifreq2[t]) != nComps || len(iamp2[t]) != nComps {
			return 0, 0, 0, fmt.Errorf("%w: component extent differs at time %d", ErrShapeMismatch, t)
		}
		for c := 0; c < nComps; c++ {
			if len(ifreq2[t][c]) != nSub || len(iamp2[t][c]) != nSub {
				return 0, 0, 0, fmt.Errorf("%w: sub-component extent differs at time %d, component %d", ErrShapeMismatch, t, c)
			}
		}
	}
	return nSamples, nComps, nSub, nil
}
