// Package testutil provides assertion helpers shared by the sim and
// sim/dataset test packages.
package testutil

import (
	"math"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertUnitInterval fails the test when v is NaN or outside [0, 1].
func AssertUnitInterval(t *testing.T, name string, v float64) {
	t.Helper()
	if math.IsNaN(v) || v < 0 || v > 1 {
		t.Errorf("%s = %v, want within [0, 1]", name, v)
	}
}

// AssertMeanNear checks that the sample mean of xs lies within absTol of want.
func AssertMeanNear(t *testing.T, name string, xs []float64, want, absTol float64) {
	t.Helper()
	if len(xs) == 0 {
		t.Fatalf("%s: no samples", name)
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if math.Abs(mean-want) > absTol {
		t.Errorf("%s mean = %.4f, want %.4f ± %.4f", name, mean, want, absTol)
	}
}

// OutputPath returns a path for name inside a per-test temporary directory.
func OutputPath(t *testing.T, name string) string {
	t.Helper()
	return filepath.Join(t.TempDir(), name)
}
