package spectra

import (
	"errors"
	"math"
	"math/cmplx"
	"testing"
)

func TestMeanVectorConstantPhase(t *testing.T) {
	const n = 8
	iphase := make([][]float64, n)
	iamp := make([][]float64, n)
	for t2 := range iphase {
		iphase[t2] = []float64{math.Pi / 2}
		iamp[t2] = []float64{2}
	}

	mv, err := MeanVector(iphase, iamp, nil)
	if err != nil {
		t.Fatalf("MeanVector error: %v", err)
	}
	// sin(pi/2)=1, cos(pi/2)=0, amplitude 2.
	if cmplx.Abs(mv[0]-complex(2, 0)) > 1e-12 {
		t.Fatalf("mean vector %v, want (2+0i)", mv[0])
	}
}

func TestMeanVectorUniformPhaseCancels(t *testing.T) {
	// Phases spread uniformly around the circle sum to zero.
	const n = 16
	iphase := make([][]float64, n)
	iamp := make([][]float64, n)
	for t2 := range iphase {
		iphase[t2] = []float64{2 * math.Pi * float64(t2) / n}
		iamp[t2] = []float64{1}
	}

	mv, err := MeanVector(iphase, iamp, nil)
	if err != nil {
		t.Fatalf("MeanVector error: %v", err)
	}
	if cmplx.Abs(mv[0]) > 1e-12 {
		t.Fatalf("uniform phases should cancel, got %v", mv[0])
	}
}

func TestMeanVectorMask(t *testing.T) {
	iphase := [][]float64{{0}, {math.Pi / 2}, {math.Pi / 2}}
	iamp := [][]float64{{10}, {1}, {3}}
	mask := []bool{false, true, true}

	mv, err := MeanVector(iphase, iamp, mask)
	if err != nil {
		t.Fatalf("MeanVector error: %v", err)
	}
	// Only the two pi/2 samples count; the mean divides by the included
	// sample count, not the full length.
	if cmplx.Abs(mv[0]-complex(2, 0)) > 1e-12 {
		t.Fatalf("masked mean vector %v, want (2+0i)", mv[0])
	}
}

func TestMeanVectorAllMasked(t *testing.T) {
	iphase := [][]float64{{1}, {2}}
	iamp := [][]float64{{1}, {1}}

	mv, err := MeanVector(iphase, iamp, []bool{false, false})
	if err != nil {
		t.Fatalf("MeanVector error: %v", err)
	}
	if mv[0] != 0 {
		t.Fatalf("fully masked column should be zero, got %v", mv[0])
	}
}

func TestMeanVectorErrors(t *testing.T) {
	iphase := [][]float64{{1}, {2}}
	iamp := [][]float64{{1}, {1}}

	if _, err := MeanVector(nil, nil, nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := MeanVector(iphase, iamp, []bool{true}); !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for short mask, got %v", err)
	}
}
