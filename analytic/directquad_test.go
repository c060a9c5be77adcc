package analytic

import (
	"errors"
	"math"
	"testing"
)

func TestDirectQuadratureDisabled(t *testing.T) {
	imf := [][]float64{{0.1}, {0.2}, {0.3}}
	if _, err := DirectQuadrature(imf); !errors.Is(err, ErrDirectQuadDisabled) {
		t.Fatalf("expected ErrDirectQuadDisabled, got %v", err)
	}
}

func TestPhaseAngle(t *testing.T) {
	got := phaseAngle([]float64{0, 0.5, -0.5, 1, -1, 1.5})

	if got[0] != 0 {
		t.Fatalf("phaseAngle(0) = %f, want 0", got[0])
	}
	want := math.Atan(0.5 / math.Sqrt(0.75))
	if math.Abs(got[1]-want) > 1e-12 {
		t.Fatalf("phaseAngle(0.5) = %f, want %f", got[1], want)
	}
	if math.Abs(got[2]+want) > 1e-12 {
		t.Fatalf("phaseAngle(-0.5) = %f, want %f", got[2], -want)
	}
	for _, i := range []int{3, 4, 5} {
		if !math.IsNaN(got[i]) {
			t.Fatalf("phaseAngle at index %d = %f, want NaN", i, got[i])
		}
	}
}

func TestRepairPhaseNaN(t *testing.T) {
	nan := math.NaN()

	ph := []float64{1, nan, 3}
	repairPhaseNaN(ph)
	if ph[1] != 2 {
		t.Fatalf("interior repair: got %f, want 2", ph[1])
	}

	ph = []float64{nan, 4, 5}
	repairPhaseNaN(ph)
	if ph[0] != 4 {
		t.Fatalf("leading repair: got %f, want 4", ph[0])
	}

	ph = []float64{6, 7, nan}
	repairPhaseNaN(ph)
	if ph[2] != 7 {
		t.Fatalf("trailing repair: got %f, want 7", ph[2])
	}

	// Runs are filled left to right, so each repaired value becomes the
	// left neighbour of the next.
	ph = []float64{0, nan, nan, 4}
	repairPhaseNaN(ph)
	if ph[1] != 2 || ph[2] != 3 {
		t.Fatalf("run repair: got %v", ph)
	}
}
