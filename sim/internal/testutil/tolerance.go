// Package testutil provides shared test infrastructure for the simulator.
// It holds floating-point assertion helpers used across sim/ test packages
// and has no dependency on sim/ itself.
package testutil

import (
	"math"
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

// AssertWithin compares two float64 values with absolute tolerance.
// Used for statistical estimates where the expected value is theoretical.
func AssertWithin(t *testing.T, name string, want, got, absTol float64) {
	t.Helper()
	if math.IsNaN(got) || math.Abs(want-got) > absTol {
		t.Errorf("%s: got %v, want %v ± %v", name, got, want, absTol)
	}
}

// AssertBounded checks lo <= got <= hi, allowing eps of rounding slack.
func AssertBounded(t *testing.T, name string, lo, got, hi, eps float64) {
	t.Helper()
	if got < lo-eps || got > hi+eps || math.IsNaN(got) {
		t.Errorf("%s: got %v, want within [%v, %v]", name, got, lo, hi)
	}
}
