// Package response measures the frequency response of a designed IIR filter.
//
// The numerator and denominator are zero-padded and transformed separately;
// the magnitude response is their bin-wise ratio. Frequencies are normalized
// so that 1.0 is the Nyquist frequency.
package response

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/gen-iir/internal/polyroot"
)

var (
	// ErrEmpty is returned when b or a has no taps.
	ErrEmpty = errors.New("response: empty coefficient vector")
	// ErrLeadingZero is returned when a[0] is zero.
	ErrLeadingZero = errors.New("response: denominator leading coefficient is zero")
)

// MaxRootOrder is the highest denominator order for which pole radii are
// computed. Root finding on longer polynomials is slow and ill-conditioned.
const MaxRootOrder = 64

// Config holds analysis settings.
type Config struct {
	// Points is the FFT length. Only the Points/2+1 non-negative bins are used.
	Points int
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default analysis settings.
func DefaultConfig() Config {
	return Config{Points: 4096}
}

// WithPoints sets the FFT length. Values that are not a power of two of at
// least 8 are ignored.
func WithPoints(n int) Option {
	return func(cfg *Config) {
		if n >= 8 && n&(n-1) == 0 {
			cfg.Points = n
		}
	}
}

// Summary is the measured response of one filter.
type Summary struct {
	// MagnitudeDB holds the gain in dB at normalized frequencies
	// i/(len(MagnitudeDB)-1), i.e. from DC to Nyquist inclusive.
	MagnitudeDB []float64

	DCGainDB       float64
	NyquistGainDB  float64
	PeakGainDB     float64
	PeakFrequency  float64
	MaxPoleRadius  float64 // NaN when not computed
	PoleRadiusDone bool

	num, den []complex128 // descending powers of z^-1 for PolyEval
}

// Stable reports whether all poles lie strictly inside the unit circle. It is
// false when pole radii were not computed.
func (s Summary) Stable() bool {
	return s.PoleRadiusDone && s.MaxPoleRadius < 1
}

// GainAt evaluates the exact gain in dB at normalized frequency f in [0,1].
func (s Summary) GainAt(f float64) float64 {
	if len(s.num) == 0 || len(s.den) == 0 {
		return math.NaN()
	}
	x := cmplx.Exp(complex(0, -math.Pi*f))
	h := polyroot.PolyEval(s.num, x) / polyroot.PolyEval(s.den, x)
	return toDB(cmplx.Abs(h))
}

// Analyze measures the response of H(z) = B(z^-1) / A(z^-1).
func Analyze(b, a []float64, opts ...Option) (Summary, error) {
	if len(b) == 0 || len(a) == 0 {
		return Summary{}, ErrEmpty
	}
	if a[0] == 0 {
		return Summary{}, ErrLeadingZero
	}

	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	n := cfg.Points
	for n < len(b) || n < len(a) {
		n *= 2
	}

	numMag, err := spectrumMagnitude(b, n)
	if err != nil {
		return Summary{}, err
	}
	denMag, err := spectrumMagnitude(a, n)
	if err != nil {
		return Summary{}, err
	}

	s := Summary{
		MagnitudeDB:   make([]float64, len(numMag)),
		PeakGainDB:    math.Inf(-1),
		MaxPoleRadius: math.NaN(),
		num:           reversed(b),
		den:           reversed(a),
	}
	for i := range numMag {
		g := toDB(numMag[i] / denMag[i])
		s.MagnitudeDB[i] = g
		if g > s.PeakGainDB {
			s.PeakGainDB = g
			s.PeakFrequency = float64(i) / float64(len(numMag)-1)
		}
	}
	s.DCGainDB = s.MagnitudeDB[0]
	s.NyquistGainDB = s.MagnitudeDB[len(s.MagnitudeDB)-1]

	if len(a)-1 <= MaxRootOrder {
		if len(a) == 1 {
			s.MaxPoleRadius, s.PoleRadiusDone = 0, true
		} else if r, err := polyroot.MaxRadius(a); err == nil {
			s.MaxPoleRadius, s.PoleRadiusDone = r, true
		}
	}
	return s, nil
}

// spectrumMagnitude returns |FFT(x)| for the n/2+1 non-negative bins of x
// zero-padded to n.
func spectrumMagnitude(x []float64, n int) ([]float64, error) {
	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("response: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}
	out := make([]complex128, n)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("response: forward FFT: %w", err)
	}

	bins := n/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	return mag, nil
}

func reversed(c []float64) []complex128 {
	out := make([]complex128, len(c))
	for i, v := range c {
		out[len(c)-1-i] = complex(v, 0)
	}
	return out
}

func toDB(g float64) float64 {
	return 20 * math.Log10(g)
}
