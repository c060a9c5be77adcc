package envelope

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-emd/internal/testutil"
)

func TestFindPeaksSimple(t *testing.T) {
	x := []float64{0, 1, 0, 2, 0, 3, 0}

	locs, vals := FindPeaks(x)
	if len(locs) != 3 {
		t.Fatalf("peak count: got %d, want 3", len(locs))
	}
	for i, want := range []int{1, 3, 5} {
		if locs[i] != want {
			t.Fatalf("peak %d at %d, want %d", i, locs[i], want)
		}
	}
	testutil.RequireSliceNearlyEqual(t, vals, []float64{1, 2, 3}, 0)
}

func TestFindPeaksPlateau(t *testing.T) {
	x := []float64{0, 1, 1, 1, 0, 2, 0}

	locs, _ := FindPeaks(x)
	if len(locs) != 2 || locs[0] != 1 || locs[1] != 5 {
		t.Fatalf("unexpected plateau peaks: %v", locs)
	}
}

func TestFindPeaksEndpointsExcluded(t *testing.T) {
	locs, _ := FindPeaks([]float64{3, 1, 2})
	if len(locs) != 0 {
		t.Fatalf("expected no interior peaks, got %v", locs)
	}
}

func TestInterpUpperSine(t *testing.T) {
	x := testutil.DeterministicSine(5, 1000, 2.0, 1000)

	env, err := Interp(x, Upper)
	if err != nil {
		t.Fatalf("Interp error: %v", err)
	}
	if len(env) != len(x) {
		t.Fatalf("envelope length %d, want %d", len(env), len(x))
	}

	// Away from the edges the upper envelope of a constant-amplitude sine
	// sits near the amplitude.
	for i := 100; i < len(env)-100; i++ {
		if math.Abs(env[i]-2.0) > 0.05 {
			t.Fatalf("envelope[%d]=%f, want ~2.0", i, env[i])
		}
	}
}

func TestInterpCombinedTracksModulation(t *testing.T) {
	x := testutil.AMSine(50, 3, 1000, 0.5, 2000)

	env, err := Interp(x, Combined)
	if err != nil {
		t.Fatalf("Interp error: %v", err)
	}

	// The combined envelope should follow the modulation: clearly above 1
	// somewhere and clearly below 1 somewhere in the interior.
	hi, lo := 0.0, math.Inf(1)
	for i := 200; i < len(env)-200; i++ {
		if env[i] > hi {
			hi = env[i]
		}
		if env[i] < lo {
			lo = env[i]
		}
	}
	if hi < 1.3 || lo > 0.7 {
		t.Fatalf("envelope does not track modulation: lo=%f hi=%f", lo, hi)
	}
}

func TestInterpFewExtremaFallsBack(t *testing.T) {
	x := []float64{0, 1, 0}

	env, err := Interp(x, Upper)
	if err != nil {
		t.Fatalf("Interp error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, env, []float64{1, 1, 1}, 1e-12)
}

func TestInterpErrors(t *testing.T) {
	if _, err := Interp(nil, Upper); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Interp([]float64{1, 2, 3}, Mode(42)); !errors.Is(err, ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
}

func TestAmplitudeNormalise(t *testing.T) {
	col := testutil.AMSine(40, 2, 1000, 0.4, 2000)
	x := testutil.MatrixFromColumns(col)

	norm, err := AmplitudeNormalise(x, NormaliseConfig{Clip: true})
	if err != nil {
		t.Fatalf("AmplitudeNormalise error: %v", err)
	}

	for t2 := range norm {
		v := norm[t2][0]
		if v < -1 || v > 1 {
			t.Fatalf("sample %d=%f outside [-1,1]", t2, v)
		}
	}

	// Interior peaks of the normalised signal should approach unit
	// amplitude despite the modulation.
	locs, vals := FindPeaks(testutil.Column(norm, 0))
	for i, l := range locs {
		if l < 200 || l > len(col)-200 {
			continue
		}
		if vals[i] < 0.85 {
			t.Fatalf("normalised peak at %d only reaches %f", l, vals[i])
		}
	}
}

func TestAmplitudeNormaliseDoesNotMutateInput(t *testing.T) {
	col := testutil.AMSine(40, 2, 1000, 0.4, 500)
	x := testutil.MatrixFromColumns(col)
	orig := testutil.MatrixFromColumns(col)

	if _, err := AmplitudeNormalise(x, NormaliseConfig{Clip: true}); err != nil {
		t.Fatalf("AmplitudeNormalise error: %v", err)
	}
	testutil.RequireMatrixNearlyEqual(t, x, orig, 0)
}

func TestAmplitudeNormaliseErrors(t *testing.T) {
	if _, err := AmplitudeNormalise(nil, NormaliseConfig{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	ragged := [][]float64{{1, 2}, {3}}
	if _, err := AmplitudeNormalise(ragged, NormaliseConfig{}); err == nil {
		t.Fatalf("expected error for ragged input")
	}
}
