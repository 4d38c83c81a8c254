// Package ellipticmath provides the Jacobi elliptic function and complete
// elliptic integral routines used by elliptic filter design.
//
// Moduli are passed as k (not the parameter m = k^2). A tolerance below one
// is a convergence threshold for the Landen iteration; a value of one or
// more is a fixed iteration count.
package ellipticmath

import "math"

// kmin is the modulus below which series approximations replace the Landen
// iteration.
const kmin = 1e-6

// Landen computes the Landen sequence of descending moduli for k.
func Landen(k, tol float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}

	var v []float64
	step := func() {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}
	if tol < 1 {
		for k > tol {
			step()
		}
	} else {
		for range int(tol) {
			step()
		}
	}
	return v
}

// LandenC computes the same sequence as [Landen] from the complementary
// modulus kp, which keeps its precision when k is within rounding of one.
func LandenC(kp, tol float64) []float64 {
	v, _ := landenC(kp, tol)
	return v
}

// landenC returns the Landen sequence v together with 1-v.
func landenC(kp, tol float64) (v, w []float64) {
	switch kp {
	case 0:
		return []float64{1}, []float64{0}
	case 1:
		return []float64{0}, []float64{1}
	}

	step := func() {
		v = append(v, (1-kp)/(1+kp))
		w = append(w, 2*kp/(1+kp))
		kp = 2 * math.Sqrt(kp) / (1 + kp)
	}
	if tol < 1 {
		step()
		for v[len(v)-1] > tol {
			step()
		}
	} else {
		for range int(tol) {
			step()
		}
	}
	return v, w
}

// LandenK computes K(k) = (pi/2) * prod(1 + v[i]) from a Landen sequence.
func LandenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1 + x
	}
	return prod * math.Pi * 0.5
}

// EllipK returns the complete elliptic integrals K(k) and K'(k) = K(k').
func EllipK(k, tol float64) (float64, float64) {
	kmax := math.Sqrt(1 - kmin*kmin)

	var capK, capKp float64
	switch {
	case k == 1:
		capK = math.Inf(1)
	case k > kmax:
		capK = seriesK(math.Sqrt((1 - k) * (1 + k)))
	default:
		capK = LandenK(Landen(k, tol))
	}

	switch {
	case k == 0:
		capKp = math.Inf(1)
	case k < kmin:
		capKp = seriesK(k)
	default:
		capKp = LandenK(Landen(math.Sqrt((1-k)*(1+k)), tol))
	}
	return capK, capKp
}

// EllipKC returns K(k) given the complementary modulus kp.
func EllipKC(kp, tol float64) float64 {
	switch {
	case kp == 0:
		return math.Inf(1)
	case kp < kmin:
		return seriesK(kp)
	default:
		return LandenK(LandenC(kp, tol))
	}
}

// seriesK is K(k) for k' = kp close to zero.
func seriesK(kp float64) float64 {
	l := -math.Log(kp / 4)
	return l + (l-1)*kp*kp/4
}

// SNE computes sn(u[i]*K, k) for real arguments.
func SNE(u []float64, k, tol float64) []float64 {
	v := Landen(k, tol)
	w := make([]float64, len(u))
	for i := range u {
		w[i] = math.Sin(u[i] * math.Pi * 0.5)
	}
	for i := len(v) - 1; i >= 0; i-- {
		for j := range w {
			w[j] = (1 + v[i]) * w[j] / (1 + v[i]*w[j]*w[j])
		}
	}
	return w
}

// SNC computes sn(u*K, k) and 1 - sn(u*K, k) for real u in [0, 1] from the
// modulus and its complement. The second result keeps full relative
// precision when sn is within rounding of one, so cn can be recovered from
// it.
func SNC(u, k, kp, tol float64) (sn, rem float64) {
	var v, w []float64
	if k <= kp {
		v = Landen(k, tol)
		w = make([]float64, len(v))
		for i, x := range v {
			w[i] = 1 - x
		}
	} else {
		v, w = landenC(kp, tol)
	}

	sn = math.Sin(u * math.Pi * 0.5)
	h := math.Sin((1 - u) * math.Pi * 0.25)
	rem = 2 * h * h
	for i := len(v) - 1; i >= 0; i-- {
		den := 1 + v[i]*sn*sn
		rem *= (w[i] + v[i]*rem) / den
		sn = (1 + v[i]) * sn / den
	}
	return sn, rem
}

// EllipDegC solves the degree equation K(k)/K'(k) = N*K(k1)/K'(k1) for the
// selectivity modulus k, given order N and discrimination modulus k1. It
// also returns the complementary modulus k' = sqrt(1-k^2), computed directly
// so it keeps full precision when k is within rounding of one, as it is for
// high orders.
func EllipDegC(n int, k1, tol float64) (float64, float64) {
	if n < 1 || !(k1 > 0 && k1 < 1) {
		return math.NaN(), math.NaN()
	}
	if k1 < kmin {
		return nomeDeg(1/float64(n), k1, tol)
	}

	l := n / 2
	ui := make([]float64, 0, l)
	for i := 1; i <= l; i++ {
		ui = append(ui, (2*float64(i)-1)/float64(n))
	}

	kc := math.Sqrt((1 - k1) * (1 + k1))
	prod := 1.0
	for _, x := range SNE(ui, kc, tol) {
		prod *= x
	}
	kp := math.Pow(kc, float64(n)) * math.Pow(prod, 4)
	return math.Sqrt((1 - kp) * (1 + kp)), kp
}

// nomeDeg evaluates the degree equation through the nome series, which
// stays accurate when k1 is tiny. Whichever of k and k' has the smaller nome
// is taken from the series and the other from it.
func nomeDeg(n, k1, tol float64) (float64, float64) {
	capK, capKp := EllipK(k1, tol)
	lq := -math.Pi * capKp / capK * n
	if lq < -math.Pi {
		k := thetaModulus(math.Exp(lq))
		return k, math.Sqrt((1 - k) * (1 + k))
	}
	kp := thetaModulus(math.Exp(math.Pi * math.Pi / lq))
	return math.Sqrt((1 - kp) * (1 + kp)), kp
}

// thetaModulus returns the modulus whose nome is q.
func thetaModulus(q float64) float64 {
	const terms = 7
	var s1, s2 float64
	sq, pow, gap := q, q, q
	q2 := q * q
	for range terms {
		s2 += sq
		s1 += sq * pow
		gap *= q2
		sq *= gap
		pow *= q
	}

	r := (1 + s1) / (1 + 2*s2)
	return 4 * math.Sqrt(q) * r * r
}
