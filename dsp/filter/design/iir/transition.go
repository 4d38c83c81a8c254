package iir

import (
	"math"

	"github.com/cwbudde/gen-iir/internal/ellipticmath"
)

// StopbandEdge estimates the stop-band edge, in rad/s, of an order-n analog
// lowpass prototype whose pass-band edge is 1 rad/s and which meets rippleDB
// in the pass band and suppressionDB in the stop band.
//
// The result is negative when no estimate is available.
func (e *Engine) StopbandEdge(n int, rippleDB, suppressionDB float64, flags Flags) float64 {
	if e.closed || n < 1 || rippleDB <= 0 || suppressionDB <= 0 {
		return -1
	}

	es2 := dbToMinusOne(suppressionDB)
	ep2 := dbToMinusOne(rippleDB)
	x := es2 / ep2

	switch flags.Approx() {
	case Butterworth:
		return math.Pow(x, 0.5/float64(n))
	case Chebyshev1, Chebyshev2:
		if x < 1 {
			return -1
		}
		return chebyshevEdge(n, x)
	case Elliptic:
		if x <= 1 {
			return -1
		}
		k, _ := ellipticmath.EllipDegC(n, math.Sqrt(1/x), e.cfg.Tolerance)
		if !(k > 0 && k <= 1) {
			return -1
		}
		return 1 / k
	default:
		return -1
	}
}

// TransitionHeuristic turns an analog stop-band edge into a normalized
// transition-width figure. It is a heuristic, not a verified formula.
type TransitionHeuristic func(ws float64) float64

// ArctanTransition is the default [TransitionHeuristic]:
//
//	2*atan(ws)/pi - 0.5
//
// It has not been validated against measured responses; treat its output as
// indicative only. dsp/filter/response measures the real response.
func ArctanTransition(ws float64) float64 {
	return 2*math.Atan(ws)/math.Pi - 0.5
}
