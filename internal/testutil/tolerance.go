package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireMatrixNearlyEqual fails t if two [time][component] arrays differ
// in shape or any element pair exceeds eps.
func RequireMatrixNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("row count mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if len(got[i]) != len(want[i]) {
			t.Fatalf("row %d: column count mismatch: got %d, want %d", i, len(got[i]), len(want[i]))
		}
		for j := range got[i] {
			diff := math.Abs(got[i][j] - want[i][j])
			if diff > eps {
				t.Fatalf("element (%d,%d): got %v, want %v (diff %v > eps %v)", i, j, got[i][j], want[i][j], diff, eps)
			}
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MatrixSum returns the total of all elements of a 2D array.
func MatrixSum(m [][]float64) float64 {
	sum := 0.0
	for i := range m {
		for _, v := range m[i] {
			sum += v
		}
	}
	return sum
}

// Column extracts column c of a [time][component] array.
func Column(m [][]float64, c int) []float64 {
	out := make([]float64, len(m))
	for t := range m {
		out[t] = m[t][c]
	}
	return out
}
