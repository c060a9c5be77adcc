package cycles

import (
	"errors"
	"math"
	"testing"
)

// rampPhase builds an unwrapped linear phase covering n samples with
// samplesPerCycle samples per full rotation. Samples sit half a step off
// the 2*pi multiples so wrap boundaries never fall on a rounding edge.
func rampPhase(samplesPerCycle, n int) []float64 {
	step := 2 * math.Pi / float64(samplesPerCycle)
	out := make([]float64, n)
	for i := range out {
		out[i] = step * (float64(i) + 0.5)
	}
	return out
}

func TestDetectLabelsFullCycles(t *testing.T) {
	// Three full rotations plus a trailing half cycle.
	ip := rampPhase(100, 350)

	labels, err := Detect(ip, DetectConfig{})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}

	for i := 0; i < 300; i++ {
		want := i/100 + 1
		if labels[i] != want {
			t.Fatalf("sample %d labelled %d, want %d", i, labels[i], want)
		}
	}
	// The partial trailing segment never reaches the end of the rotation.
	for i := 300; i < 350; i++ {
		if labels[i] != 0 {
			t.Fatalf("partial cycle sample %d labelled %d, want 0", i, labels[i])
		}
	}
}

func TestDetectReturnAllKeepsPartials(t *testing.T) {
	ip := rampPhase(100, 350)

	labels, err := Detect(ip, DetectConfig{ReturnAll: true})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if labels[349] != 4 {
		t.Fatalf("trailing segment labelled %d, want 4", labels[349])
	}
}

func TestDetectMaskDiscardsTouchedCycles(t *testing.T) {
	ip := rampPhase(100, 300)
	mask := make([]bool, 300)
	for i := range mask {
		mask[i] = true
	}
	mask[150] = false // inside the second cycle

	labels, err := Detect(ip, DetectConfig{Mask: mask})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if labels[50] != 1 {
		t.Fatalf("first cycle labelled %d, want 1", labels[50])
	}
	if labels[150] != 0 {
		t.Fatalf("masked cycle labelled %d, want 0", labels[150])
	}
	// Accepted cycles renumber consecutively.
	if labels[250] != 2 {
		t.Fatalf("third cycle labelled %d, want 2", labels[250])
	}
}

func TestDetectRejectsPhaseReversal(t *testing.T) {
	ip := rampPhase(100, 100)
	ip[40], ip[41] = ip[41], ip[40] // non-monotonic blip

	labels, err := Detect(ip, DetectConfig{})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	for i, l := range labels {
		if l != 0 {
			t.Fatalf("reversed cycle labelled %d at %d, want 0", l, i)
		}
	}
}

func TestDetectWithIMFControlPoints(t *testing.T) {
	ip := rampPhase(100, 200)
	imf := make([]float64, len(ip))
	for i, v := range ip {
		imf[i] = math.Sin(v)
	}

	labels, err := Detect(ip, DetectConfig{IMF: imf})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	if labels[50] != 1 || labels[150] != 2 {
		t.Fatalf("sine cycles not accepted: %v %v", labels[50], labels[150])
	}

	// A constant IMF has no peaks, so every cycle fails the check.
	flat := make([]float64, len(ip))
	labels, err = Detect(ip, DetectConfig{IMF: flat})
	if err != nil {
		t.Fatalf("Detect error: %v", err)
	}
	for i, l := range labels {
		if l != 0 {
			t.Fatalf("flat IMF cycle labelled %d at %d", l, i)
		}
	}
}

func TestDetectErrors(t *testing.T) {
	if _, err := Detect(nil, DetectConfig{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Detect([]float64{1, 2}, DetectConfig{Mask: []bool{true}}); err == nil {
		t.Fatalf("expected error for short mask")
	}
	if _, err := Detect([]float64{1, 2}, DetectConfig{IMF: []float64{1}}); err == nil {
		t.Fatalf("expected error for short imf")
	}
}

func TestControlPointsSine(t *testing.T) {
	const n = 100
	x := make([]float64, n)
	step := 2 * math.Pi / n
	for i := range x {
		x[i] = math.Sin(step * float64(i))
	}
	labels := make([]int, n)
	for i := range labels {
		labels[i] = 1
	}

	ctrl, err := ControlPoints(x, labels)
	if err != nil {
		t.Fatalf("ControlPoints error: %v", err)
	}
	if len(ctrl) != 1 {
		t.Fatalf("got %d cycles, want 1", len(ctrl))
	}

	c := ctrl[0]
	if c[0] != 0 || c[4] != n {
		t.Fatalf("cycle bounds %d..%d, want 0..%d", c[0], c[4], n)
	}
	if c[1] != 25 {
		t.Fatalf("peak at %d, want 25", c[1])
	}
	if c[2] < 49 || c[2] > 52 {
		t.Fatalf("descending zero at %d, want near 50", c[2])
	}
	if c[3] != 75 {
		t.Fatalf("trough at %d, want 75", c[3])
	}
}

func TestControlPointsErrors(t *testing.T) {
	if _, err := ControlPoints(nil, nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}

	// Monotonic data has no oscillatory control points.
	x := []float64{0, 1, 2, 3}
	labels := []int{1, 1, 1, 1}
	if _, err := ControlPoints(x, labels); !errors.Is(err, ErrNoControlPoint) {
		t.Fatalf("expected ErrNoControlPoint, got %v", err)
	}
}

func TestStat(t *testing.T) {
	labels := []int{1, 1, 2, 2, 0}
	values := []float64{1, 3, 10, 20, 7}

	means, err := Stat(labels, values, MetricMean, false)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if means[0] != 2 || means[1] != 15 {
		t.Fatalf("means %v, want [2 15]", means)
	}

	sums, err := Stat(labels, values, MetricSum, false)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if sums[0] != 4 || sums[1] != 30 {
		t.Fatalf("sums %v, want [4 30]", sums)
	}

	full, err := Stat(labels, values, MetricMean, true)
	if err != nil {
		t.Fatalf("Stat error: %v", err)
	}
	if full[0] != 2 || full[3] != 15 {
		t.Fatalf("broadcast stat %v", full)
	}
	if !math.IsNaN(full[4]) {
		t.Fatalf("unlabelled sample holds %f, want NaN", full[4])
	}
}

func TestStatErrors(t *testing.T) {
	if _, err := Stat(nil, nil, MetricMean, false); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := Stat([]int{1}, []float64{1, 2}, MetricMean, false); err == nil {
		t.Fatalf("expected error for mismatched lengths")
	}
	if _, err := Stat([]int{1}, []float64{1}, Metric(5), false); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestChains(t *testing.T) {
	labels := []int{1, 1, 2, 2, 0, 3, 3}

	chains := Chains(labels, 1, 0, 0)
	if len(chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(chains))
	}
	if len(chains[0]) != 2 || chains[0][0] != 1 || chains[0][1] != 2 {
		t.Fatalf("first chain %v, want [1 2]", chains[0])
	}
	if len(chains[1]) != 1 || chains[1][0] != 3 {
		t.Fatalf("second chain %v, want [3]", chains[1])
	}

	long := Chains(labels, 2, 0, 0)
	if len(long) != 1 || long[0][0] != 1 {
		t.Fatalf("minChain filter kept %v", long)
	}

	trimmed := Chains(labels, 1, 1, 0)
	if len(trimmed) != 1 || trimmed[0][0] != 2 {
		t.Fatalf("dropFirst kept %v, want [[2]]", trimmed)
	}

	if got := Chains(labels, 1, 0, 2); len(got) != 0 {
		t.Fatalf("dropping more cycles than any chain holds kept %v", got)
	}
}

func TestChainsSkipsMissingLabels(t *testing.T) {
	// Label 2 was removed by the caller; the gap must split the chains,
	// not crash.
	labels := []int{1, 1, 0, 3, 3}

	chains := Chains(labels, 1, 0, 0)
	if len(chains) != 2 {
		t.Fatalf("got %d chains, want 2", len(chains))
	}
	if len(chains[0]) != 1 || chains[0][0] != 1 {
		t.Fatalf("first chain %v, want [1]", chains[0])
	}
	if len(chains[1]) != 1 || chains[1][0] != 3 {
		t.Fatalf("second chain %v, want [3]", chains[1])
	}
}
