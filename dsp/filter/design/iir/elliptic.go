package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/gen-iir/internal/ellipticmath"
)

const (
	ellipticTol     = 2.2e-16
	ellipticEpsilon = 2.220446049250313e-16
	arcJacSNMaxIter = 10
	arcJacImagCheck = 1e-7
)

// ellipticPrototype places the poles and zeros of an order-n elliptic
// (Cauer) lowpass with pass-band edge 1 rad/s via Jacobi elliptic functions.
//
//nolint:funlen
func ellipticPrototype(n int, rippleDB, suppressionDB, tol float64) (zpk, error) {
	epsSq := dbToMinusOne(rippleDB)
	stopSq := dbToMinusOne(suppressionDB)
	if !(epsSq > 0 && stopSq > 0) {
		return zpk{}, fmt.Errorf("%w: ripple %g dB, suppression %g dB", ErrInvalidRipple, rippleDB, suppressionDB)
	}

	ck1Sq := epsSq / stopSq
	if !(ck1Sq > 0 && ck1Sq < 1) {
		return zpk{}, fmt.Errorf("%w: suppression must exceed ripple", ErrInvalidRipple)
	}

	if n == 1 {
		p := -math.Sqrt(1.0 / epsSq)
		return zpk{p: []complex128{complex(p, 0)}, k: gainOf(-p)}, nil
	}

	// At high orders k rounds to one; kc carries the selectivity from here on.
	kmod, kc := ellipticmath.EllipDegC(n, math.Sqrt(ck1Sq), tol)
	if !(kmod > 0 && kmod <= 1 && kc > 0 && kc < 1) {
		return zpk{}, fmt.Errorf("%w: degree equation gave k=%g k'=%g", ErrPrototype, kmod, kc)
	}

	capk := ellipticmath.EllipKC(kc, tol)
	val0, _ := ellipticmath.EllipK(math.Sqrt(ck1Sq), tol)
	if !usable(capk) || !usable(val0) {
		return zpk{}, fmt.Errorf("%w: complete elliptic integral out of range", ErrPrototype)
	}

	half := (n + 1) / 2
	sn := make([]float64, 0, half)
	cn := make([]float64, 0, half)
	dn := make([]float64, 0, half)
	zeros := make([]complex128, 0, n)

	for j := 1 - n%2; j < n; j += 2 {
		s, c, d, ok := jacobiSCD(float64(j)*capk/float64(n), kmod, kc, tol)
		if !ok {
			return zpk{}, fmt.Errorf("%w: jacobi functions at j=%d", ErrPrototype, j)
		}
		sn = append(sn, s)
		cn = append(cn, c)
		dn = append(dn, d)
		if math.Abs(s) > ellipticEpsilon {
			z := complex(0, 1) / complex(kmod*s, 0)
			zeros = append(zeros, z, cmplx.Conj(z))
		}
	}

	r := arcJacSC1(1/math.Sqrt(epsSq), ck1Sq)
	if !(r > 0) || math.IsInf(r, 0) {
		return zpk{}, fmt.Errorf("%w: inverse jacobi sc failed", ErrPrototype)
	}

	v0 := capk * r / (float64(n) * val0)
	sv, cv, dv, ok := jacobiSCD(v0, kc, kmod, tol)
	if !ok {
		return zpk{}, fmt.Errorf("%w: jacobi functions at v0=%g", ErrPrototype, v0)
	}

	base := make([]complex128, len(sn))
	for i := range sn {
		den := 1 - (dn[i]*sv)*(dn[i]*sv)
		if math.Abs(den) <= ellipticEpsilon {
			return zpk{}, fmt.Errorf("%w: degenerate pole %d", ErrPrototype, i)
		}
		base[i] = -complex(cn[i]*dn[i]*sv*cv, sn[i]*dv) / complex(den, 0)
	}

	poles := append(make([]complex128, 0, n), base...)
	if n%2 == 1 {
		norm2 := 0.0
		for _, p := range base {
			norm2 += real(p * cmplx.Conj(p))
		}
		thr := ellipticEpsilon * math.Sqrt(norm2)
		for _, p := range base {
			if math.Abs(imag(p)) > thr {
				poles = append(poles, cmplx.Conj(p))
			}
		}
	} else {
		for _, p := range base {
			poles = append(poles, cmplx.Conj(p))
		}
	}

	k := prodGain(poles, neg).div(prodGain(zeros, neg))
	if n%2 == 0 {
		k = k.mul(gainOf(1 / math.Sqrt(1+epsSq)))
	}
	if !k.valid() {
		return zpk{}, fmt.Errorf("%w: gain out of range", ErrPrototype)
	}
	return zpk{z: zeros, p: poles, k: k}, nil
}

func usable(x float64) bool {
	return x != 0 && !math.IsNaN(x) && !math.IsInf(x, 0)
}

// jacobiSCD returns sn, cn and dn of the real argument u in [0, K] for
// modulus k with complement kp. cn and dn stay accurate when k rounds to one.
func jacobiSCD(u, k, kp, tol float64) (sn, cn, dn float64, ok bool) {
	if !(k >= 0 && k <= 1 && kp > 0 && kp <= 1) {
		return 0, 0, 0, false
	}
	capk := ellipticmath.EllipKC(kp, tol)
	if !usable(capk) {
		return 0, 0, 0, false
	}

	sn, rem := ellipticmath.SNC(u/capk, k, kp, tol)
	if math.IsNaN(sn) || math.IsInf(sn, 0) || !(rem >= 0) {
		return 0, 0, 0, false
	}
	cn = math.Sqrt(rem * (2 - rem))
	dn = math.Sqrt(kp*kp + k*k*cn*cn)
	return sn, cn, dn, true
}

// arcJacSC1 solves w = sc(u, 1-m) for real u, returning NaN when the
// inverse is not purely imaginary.
func arcJacSC1(w, m float64) float64 {
	z := arcJacSN(complex(0, w), m)
	if math.Abs(real(z)) > arcJacImagCheck*math.Max(1, math.Abs(imag(z))) {
		return math.NaN()
	}
	return imag(z)
}

// arcJacSN is the inverse Jacobi sn for complex w and parameter m, computed
// with descending Landen transformations.
func arcJacSN(w complex128, m float64) complex128 {
	if m < 0 || m > 1 {
		return cmplx.NaN()
	}
	k := complex(math.Sqrt(m), 0)
	if real(k) == 1 {
		return cmplx.Atanh(w)
	}

	ks := []complex128{k}
	for range arcJacSNMaxIter - 1 {
		kn := ks[len(ks)-1]
		if cmplx.Abs(kn) == 0 {
			break
		}
		kp := complement(kn)
		ks = append(ks, (1-kp)/(1+kp))
	}

	capk := math.Pi * 0.5
	for _, kn := range ks[1:] {
		capk *= real(1 + kn)
	}

	for i := range len(ks) - 1 {
		den := (1 + ks[i+1]) * (1 + complement(ks[i]*w))
		if den == 0 {
			return cmplx.NaN()
		}
		w = 2 * w / den
	}
	return complex(capk, 0) * (2 / math.Pi) * cmplx.Asin(w)
}

func complement(k complex128) complex128 {
	return cmplx.Sqrt((1 - k) * (1 + k))
}
