// Package testutil provides common utility functions for testing.
package testutil

import (
	"math"
	"testing"

	"github.com/iwvelando/equity-unlock/pkg/mathutil"
)

// AssertClose fails the test when actual differs from expected by more than
// tolerance. NaN never counts as close.
func AssertClose(t testing.TB, name string, expected, actual, tolerance float64) {
	t.Helper()
	if !mathutil.WithinTolerance(expected, actual, tolerance) {
		t.Errorf("%s: expected %.4f, got %.4f (diff: %.4f)", name, expected, actual, actual-expected)
	}
}

// AssertExact fails the test unless actual and expected are bit-identical.
func AssertExact(t testing.TB, name string, expected, actual float64) {
	t.Helper()
	if math.Float64bits(expected) != math.Float64bits(actual) {
		t.Errorf("%s: expected exactly %v, got %v", name, expected, actual)
	}
}
