package iir

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

// zpk is a transfer function in zero/pole/gain form:
//
//	H(s) = k * prod(s - z[i]) / prod(s - p[i])
type zpk struct {
	z, p []complex128
	k    gain
}

// degree is the number of poles in excess of zeros.
func (f zpk) degree() int { return len(f.p) - len(f.z) }

// lowpass moves the cutoff of a lowpass prototype from 1 rad/s to w0.
func (f zpk) lowpass(w0 float64) zpk {
	w := complex(w0, 0)
	out := zpk{
		z: make([]complex128, len(f.z)),
		p: make([]complex128, len(f.p)),
		k: f.k.mul(powGain(w0, f.degree())),
	}
	for i, z := range f.z {
		out.z[i] = z * w
	}
	for i, p := range f.p {
		out.p[i] = p * w
	}
	return out
}

// highpass applies s -> w0/s to a lowpass prototype.
func (f zpk) highpass(w0 float64) (zpk, error) {
	w := complex(w0, 0)
	out := zpk{
		z: make([]complex128, 0, len(f.p)),
		p: make([]complex128, 0, len(f.p)),
	}
	for _, z := range f.z {
		if z == 0 {
			return zpk{}, fmt.Errorf("%w: highpass transform of a zero at the origin", ErrPrototype)
		}
		out.z = append(out.z, w/z)
	}
	for range f.degree() {
		out.z = append(out.z, 0)
	}
	for _, p := range f.p {
		if p == 0 {
			return zpk{}, fmt.Errorf("%w: highpass transform of a pole at the origin", ErrPrototype)
		}
		out.p = append(out.p, w/p)
	}

	out.k = f.k.mul(prodGain(f.z, neg).div(prodGain(f.p, neg)))
	return out, nil
}

// bandpass applies s -> (s^2 + w0^2) / (s*bw) to a lowpass prototype.
func (f zpk) bandpass(w0, bw float64) zpk {
	half := complex(bw*0.5, 0)
	w2 := complex(w0*w0, 0)
	out := zpk{
		z: make([]complex128, 0, 2*len(f.z)+f.degree()),
		p: make([]complex128, 0, 2*len(f.p)),
		k: f.k.mul(powGain(bw, f.degree())),
	}
	for _, z := range f.z {
		zl := z * half
		d := cmplx.Sqrt(zl*zl - w2)
		out.z = append(out.z, zl+d, zl-d)
	}
	for range f.degree() {
		out.z = append(out.z, 0)
	}
	for _, p := range f.p {
		pl := p * half
		d := cmplx.Sqrt(pl*pl - w2)
		out.p = append(out.p, pl+d, pl-d)
	}
	return out
}

// bandstop applies s -> (s*bw) / (s^2 + w0^2) to a lowpass prototype.
func (f zpk) bandstop(w0, bw float64) (zpk, error) {
	half := complex(bw*0.5, 0)
	w2 := complex(w0*w0, 0)
	out := zpk{
		z: make([]complex128, 0, 2*len(f.p)),
		p: make([]complex128, 0, 2*len(f.p)),
	}
	for _, z := range f.z {
		if z == 0 {
			return zpk{}, fmt.Errorf("%w: bandstop transform of a zero at the origin", ErrPrototype)
		}
		zh := half / z
		d := cmplx.Sqrt(zh*zh - w2)
		out.z = append(out.z, zh+d, zh-d)
	}
	for range f.degree() {
		out.z = append(out.z, complex(0, w0), complex(0, -w0))
	}
	for _, p := range f.p {
		if p == 0 {
			return zpk{}, fmt.Errorf("%w: bandstop transform of a pole at the origin", ErrPrototype)
		}
		ph := half / p
		d := cmplx.Sqrt(ph*ph - w2)
		out.p = append(out.p, ph+d, ph-d)
	}

	out.k = f.k.mul(prodGain(f.z, neg).div(prodGain(f.p, neg)))
	return out, nil
}

// bilinear maps an analog zpk to the z-plane with s = (z-1)/(z+1).
// Zeros at infinity land on z = -1.
func (f zpk) bilinear() (zpk, error) {
	out := zpk{
		z: make([]complex128, 0, len(f.p)),
		p: make([]complex128, 0, len(f.p)),
	}
	for _, z := range f.z {
		if z == 1 {
			return zpk{}, fmt.Errorf("%w: zero at s=1", ErrNumerical)
		}
		out.z = append(out.z, (1+z)/(1-z))
	}
	for range f.degree() {
		out.z = append(out.z, -1)
	}
	for _, p := range f.p {
		if p == 1 {
			return zpk{}, fmt.Errorf("%w: pole at s=1", ErrNumerical)
		}
		out.p = append(out.p, (1+p)/(1-p))
	}

	out.k = f.k.mul(prodGain(f.z, oneMinus).div(prodGain(f.p, oneMinus)))
	if !out.k.valid() {
		return zpk{}, fmt.Errorf("%w: bilinear gain out of range", ErrNumerical)
	}
	return out, nil
}

// polynomials expands zeros and poles into real coefficient vectors. The
// gain is applied one root at a time so that high orders stay in range;
// A[0] is exactly 1.
func (f zpk) polynomials() Coefficients {
	var b []float64
	if len(f.z) == 0 {
		b = []float64{math.Exp(f.k.log)}
	} else {
		b = realParts(expand(f.z, math.Exp(f.k.log/float64(len(f.z)))))
	}
	floats.Scale(f.k.sign, b)
	return Coefficients{B: b, A: realParts(expand(f.p, 1))}
}

// expand returns the coefficients of prod(s*(x - r[i])) in descending powers
// of x, which are the ascending powers of x^-1 after dividing by x^n.
func expand(roots []complex128, s float64) []complex128 {
	c := make([]complex128, len(roots)+1)
	c[0] = 1
	sc := complex(s, 0)
	for i, r := range roots {
		for j := i + 1; j >= 1; j-- {
			c[j] = sc * (c[j] - r*c[j-1])
		}
		c[0] *= sc
	}
	return c
}

func realParts(c []complex128) []float64 {
	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}
