package testutil

import (
	"math"
	"math/cmplx"
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

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequireInsideUnitCircle fails t if any root has magnitude >= 1.
func RequireInsideUnitCircle(t *testing.T, roots []complex128) {
	t.Helper()
	for i, r := range roots {
		if m := cmplx.Abs(r); !(m < 1) {
			t.Fatalf("root %d: %v has magnitude %v", i, r, m)
		}
	}
}

// RequireGainAtMost fails t if any gain in gainsDB exceeds limitDB.
func RequireGainAtMost(t *testing.T, gainsDB []float64, limitDB float64) {
	t.Helper()
	for i, g := range gainsDB {
		if g > limitDB {
			t.Fatalf("index %d: gain %.4f dB above limit %.4f dB", i, g, limitDB)
		}
	}
}
