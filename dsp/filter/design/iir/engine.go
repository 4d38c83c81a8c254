package iir

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Errors returned by [Engine.Design].
var (
	ErrClosed           = errors.New("iir: engine is closed")
	ErrUnknownFlags     = errors.New("iir: unknown filter type or approximation")
	ErrInvalidOrder     = errors.New("iir: invalid filter order")
	ErrInvalidFrequency = errors.New("iir: invalid cutoff frequency")
	ErrInvalidRipple    = errors.New("iir: invalid ripple or suppression")
	ErrPrototype        = errors.New("iir: analog prototype failed")
	ErrNumerical        = errors.New("iir: non-finite coefficients")
)

// MaxOrder is the largest order the engine accepts.
const MaxOrder = 1000

var errorCodes = []struct {
	err  error
	code uint32
}{
	{ErrClosed, 0x00000101},
	{ErrUnknownFlags, 0x00000102},
	{ErrInvalidOrder, 0x00000103},
	{ErrInvalidFrequency, 0x00000104},
	{ErrInvalidRipple, 0x00000105},
	{ErrPrototype, 0x00000106},
	{ErrNumerical, 0x00000107},
}

// Code maps an engine error to a stable numeric code. nil maps to zero and
// errors not produced by this package map to 0xFFFFFFFF.
func Code(err error) uint32 {
	if err == nil {
		return 0
	}
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return 0xFFFFFFFF
}

// Spec holds the parameters of one design request.
type Spec struct {
	Ripple      float64 // pass-band ripple, dB
	Suppression float64 // stop-band suppression, dB
	Order       int     // digital filter order; even for band types
	Cutoff      float64 // (left) cutoff, normalized to (0,1)
	CutoffRight float64 // right cutoff for band types, normalized to (0,1)
	Flags       Flags
}

// Coefficients is a designed transfer function
//
//	H(z) = (B[0] + B[1] z^-1 + ... ) / (A[0] + A[1] z^-1 + ...)
//
// with len(B) == len(A) == order+1 and A[0] == 1.
type Coefficients struct {
	B []float64
	A []float64
}

// Order returns the filter order.
func (c Coefficients) Order() int { return len(c.A) - 1 }

// Config holds engine settings.
type Config struct {
	// Tolerance is the convergence threshold of the Jacobi elliptic function
	// iterations.
	Tolerance float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default engine settings.
func DefaultConfig() Config {
	return Config{Tolerance: ellipticTol}
}

// WithTolerance sets the elliptic-function convergence threshold.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		if tol > 0 && tol < 1 {
			cfg.Tolerance = tol
		}
	}
}

// Engine performs filter designs. Open it once, use it, then Close it.
type Engine struct {
	cfg    Config
	closed bool
}

// Open returns a ready engine.
func Open(opts ...Option) (*Engine, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Engine{cfg: cfg}, nil
}

// Close releases the engine. Further designs fail with [ErrClosed].
func (e *Engine) Close() error {
	e.closed = true
	return nil
}

// Info describes the engine and its capabilities.
func Info() string {
	return "iir engine: zpk prototypes + bilinear transform; " +
		"types lowpass/highpass/bandpass/bandstop; " +
		"approximations butterworth/chebyshev1/chebyshev2/elliptic"
}

// Design synthesizes the filter described by s.
func (e *Engine) Design(s Spec) (Coefficients, error) {
	digital, err := e.designZPK(s)
	if err != nil {
		return Coefficients{}, err
	}

	c := digital.polynomials()
	if len(c.B) != s.Order+1 || len(c.A) != s.Order+1 {
		return Coefficients{}, fmt.Errorf("%w: got %d/%d taps for order %d", ErrNumerical, len(c.B), len(c.A), s.Order)
	}
	if !finite(c.B) || !finite(c.A) {
		return Coefficients{}, fmt.Errorf("%w: order %d", ErrNumerical, s.Order)
	}
	return c, nil
}

// designZPK returns the digital zeros, poles and gain of the design.
func (e *Engine) designZPK(s Spec) (zpk, error) {
	if e.closed {
		return zpk{}, ErrClosed
	}
	if err := checkSpec(s); err != nil {
		return zpk{}, err
	}

	n := s.Order
	if s.Flags.IsBand() {
		n /= 2
	}

	proto, err := prototype(s.Flags.Approx(), n, s.Ripple, s.Suppression, e.cfg.Tolerance)
	if err != nil {
		return zpk{}, err
	}

	wl := prewarp(s.Cutoff)
	var analog zpk
	switch s.Flags.Type() {
	case LowPass:
		analog = proto.lowpass(wl)
	case HighPass:
		analog, err = proto.highpass(wl)
	case BandPass:
		wh := prewarp(s.CutoffRight)
		analog = proto.bandpass(math.Sqrt(wl*wh), wh-wl)
	case BandStop:
		wh := prewarp(s.CutoffRight)
		analog, err = proto.bandstop(math.Sqrt(wl*wh), wh-wl)
	}
	if err != nil {
		return zpk{}, err
	}
	return analog.bilinear()
}

func checkSpec(s Spec) error {
	if !s.Flags.Valid() {
		return fmt.Errorf("%w: %s", ErrUnknownFlags, s.Flags)
	}
	if s.Order < 1 || s.Order > MaxOrder {
		return fmt.Errorf("%w: %d", ErrInvalidOrder, s.Order)
	}
	if s.Flags.IsBand() && s.Order%2 != 0 {
		return fmt.Errorf("%w: band filters need an even order, got %d", ErrInvalidOrder, s.Order)
	}
	if !(s.Cutoff > 0 && s.Cutoff < 1) {
		return fmt.Errorf("%w: cutoff %g", ErrInvalidFrequency, s.Cutoff)
	}
	if s.Flags.IsBand() && !(s.CutoffRight > s.Cutoff && s.CutoffRight < 1) {
		return fmt.Errorf("%w: right cutoff %g", ErrInvalidFrequency, s.CutoffRight)
	}
	switch s.Flags.Approx() {
	case Butterworth, Chebyshev1:
		if !(s.Ripple > 0) {
			return fmt.Errorf("%w: ripple %g dB", ErrInvalidRipple, s.Ripple)
		}
	case Chebyshev2:
		if !(s.Ripple > 0 && s.Suppression >= s.Ripple) {
			return fmt.Errorf("%w: ripple %g dB, suppression %g dB", ErrInvalidRipple, s.Ripple, s.Suppression)
		}
	case Elliptic:
		if !(s.Ripple > 0 && s.Suppression > s.Ripple) {
			return fmt.Errorf("%w: ripple %g dB, suppression %g dB", ErrInvalidRipple, s.Ripple, s.Suppression)
		}
	}
	return nil
}

// prewarp maps a normalized digital frequency to the analog frequency that
// the bilinear transform s = (z-1)/(z+1) sends to it.
func prewarp(f float64) float64 {
	return math.Tan(math.Pi * f * 0.5)
}

func finite(v []float64) bool {
	if floats.HasNaN(v) {
		return false
	}
	for _, x := range v {
		if math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
