package iir

import (
	"math"
	"math/cmplx"
)

// gain is a real scale factor kept as sign and natural log of the
// magnitude, so products over a thousand roots neither overflow nor
// underflow before they are spread over the polynomial expansion.
type gain struct {
	sign float64
	log  float64
}

func gainOf(v float64) gain {
	switch {
	case v > 0:
		return gain{sign: 1, log: math.Log(v)}
	case v < 0:
		return gain{sign: -1, log: math.Log(-v)}
	default:
		return gain{}
	}
}

// powGain returns v^n.
func powGain(v float64, n int) gain {
	g := gainOf(v)
	if n%2 == 0 {
		g.sign = math.Abs(g.sign)
	}
	g.log *= float64(n)
	return g
}

func (g gain) mul(o gain) gain {
	return gain{sign: g.sign * o.sign, log: g.log + o.log}
}

func (g gain) div(o gain) gain {
	if o.sign == 0 {
		return gain{}
	}
	return gain{sign: g.sign * o.sign, log: g.log - o.log}
}

func (g gain) value() float64 { return g.sign * math.Exp(g.log) }

func (g gain) valid() bool {
	return (g.sign == 1 || g.sign == -1) && !math.IsNaN(g.log) && !math.IsInf(g.log, 0)
}

// prodGain returns prod(f(v[i])) for a set of roots closed under
// conjugation, whose product is real.
func prodGain(v []complex128, f func(complex128) complex128) gain {
	log := 0.0
	phase := complex(1, 0)
	for _, x := range v {
		y := f(x)
		a := cmplx.Abs(y)
		if a == 0 {
			return gain{}
		}
		log += math.Log(a)
		phase *= y / complex(a, 0)
	}
	sign := 1.0
	if real(phase) < 0 {
		sign = -1
	}
	return gain{sign: sign, log: log}
}

func neg(x complex128) complex128      { return -x }
func oneMinus(x complex128) complex128 { return 1 - x }
