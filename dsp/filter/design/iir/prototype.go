package iir

import (
	"fmt"
	"math"
	"math/cmplx"
)

// prototype returns the order-n analog lowpass prototype for approx.
// Every prototype has its pass-band edge, where the gain is -rippleDB, at
// 1 rad/s.
func prototype(approx Flags, n int, rippleDB, suppressionDB, tol float64) (zpk, error) {
	switch approx {
	case Butterworth:
		return butterworthPrototype(n, rippleDB)
	case Chebyshev1:
		return chebyshev1Prototype(n, rippleDB)
	case Chebyshev2:
		return chebyshev2Prototype(n, rippleDB, suppressionDB)
	case Elliptic:
		return ellipticPrototype(n, rippleDB, suppressionDB, tol)
	default:
		return zpk{}, fmt.Errorf("%w: approximation %#x", ErrUnknownFlags, uint32(approx))
	}
}

// polePositions returns m = -n+1, -n+3, ..., n-1, the pole index sequence
// shared by the Butterworth and Chebyshev prototypes.
func polePositions(n int) []float64 {
	m := make([]float64, 0, n)
	for i := -n + 1; i < n; i += 2 {
		m = append(m, float64(i))
	}
	return m
}

// butterworthPrototype scales the maximally flat poles so the gain at
// 1 rad/s is -rippleDB.
func butterworthPrototype(n int, rippleDB float64) (zpk, error) {
	epsSq := dbToMinusOne(rippleDB)
	if !(epsSq > 0) {
		return zpk{}, fmt.Errorf("%w: ripple %g dB", ErrInvalidRipple, rippleDB)
	}
	r := complex(math.Pow(epsSq, -0.5/float64(n)), 0)

	p := make([]complex128, 0, n)
	for _, m := range polePositions(n) {
		p = append(p, -r*cmplx.Exp(complex(0, math.Pi*m/float64(2*n))))
	}
	return zpk{p: p, k: prodGain(p, neg)}, nil
}

func chebyshev1Prototype(n int, rippleDB float64) (zpk, error) {
	epsSq := dbToMinusOne(rippleDB)
	if !(epsSq > 0) {
		return zpk{}, fmt.Errorf("%w: ripple %g dB", ErrInvalidRipple, rippleDB)
	}
	eps := math.Sqrt(epsSq)
	mu := math.Asinh(1/eps) / float64(n)

	p := make([]complex128, 0, n)
	for _, m := range polePositions(n) {
		theta := math.Pi * m / float64(2*n)
		p = append(p, -cmplx.Sinh(complex(mu, theta)))
	}

	k := prodGain(p, neg)
	if n%2 == 0 {
		k = k.mul(gainOf(1 / math.Sqrt(1+epsSq)))
	}
	return zpk{p: p, k: k}, nil
}

// chebyshev2Prototype builds the inverse Chebyshev response around its
// stop-band edge, then rescales it so the pass-band edge (-rippleDB) sits
// at 1 rad/s.
func chebyshev2Prototype(n int, rippleDB, suppressionDB float64) (zpk, error) {
	epsSq := dbToMinusOne(rippleDB)
	stopSq := dbToMinusOne(suppressionDB)
	if !(epsSq > 0 && stopSq >= epsSq) {
		return zpk{}, fmt.Errorf("%w: ripple %g dB, suppression %g dB", ErrInvalidRipple, rippleDB, suppressionDB)
	}
	mu := math.Asinh(math.Sqrt(stopSq)) / float64(n)

	z := make([]complex128, 0, n)
	p := make([]complex128, 0, n)
	for _, m := range polePositions(n) {
		if m != 0 {
			z = append(z, complex(0, 1/math.Sin(m*math.Pi/float64(2*n))))
		}

		b := -cmplx.Exp(complex(0, math.Pi*m/float64(2*n)))
		b = complex(math.Sinh(mu)*real(b), math.Cosh(mu)*imag(b))
		p = append(p, 1/b)
	}

	proto := zpk{z: z, p: p, k: prodGain(p, neg).div(prodGain(z, neg))}
	return proto.lowpass(chebyshevEdge(n, stopSq/epsSq)), nil
}

// chebyshevEdge returns the ratio of stop-band to pass-band edge of an
// order-n Chebyshev response with discrimination x = stopSq/epsSq.
func chebyshevEdge(n int, x float64) float64 {
	return math.Cosh(math.Acosh(math.Sqrt(x)) / float64(n))
}

// dbToMinusOne returns 10^(db/10) - 1 without cancellation for small db.
func dbToMinusOne(db float64) float64 {
	return math.Expm1(math.Ln10 * db / 10.0)
}
