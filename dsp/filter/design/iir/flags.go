package iir

import "fmt"

// Flags packs a filter type and an approximation kind into one value.
// The layout matches the RP_IIR_* constants of the generated C header:
// the type lives in bits 0..7, the approximation in bits 8..15.
type Flags uint32

// Bit layout of [Flags].
const (
	TypeShift   = 0
	ApproxShift = 8

	TypeMask   Flags = 0xFF << TypeShift
	ApproxMask Flags = 0xFF << ApproxShift
)

// Filter types.
const (
	LowPass Flags = iota << TypeShift
	HighPass
	BandPass
	BandStop
)

// Approximation kinds.
const (
	Butterworth Flags = iota << ApproxShift
	Chebyshev1
	Chebyshev2
	Elliptic
)

// Type returns the filter-type part of f.
func (f Flags) Type() Flags { return f & TypeMask }

// Approx returns the approximation part of f.
func (f Flags) Approx() Flags { return f & ApproxMask }

// IsBand reports whether f describes a bandpass or bandstop filter.
func (f Flags) IsBand() bool {
	t := f.Type()
	return t == BandPass || t == BandStop
}

// Valid reports whether both parts of f name a known type and approximation
// and no other bits are set.
func (f Flags) Valid() bool {
	if f&^(TypeMask|ApproxMask) != 0 {
		return false
	}
	return f.Type() <= BandStop && f.Approx() <= Elliptic
}

func (f Flags) String() string {
	types := [...]string{"lowpass", "highpass", "bandpass", "bandstop"}
	approx := [...]string{"butterworth", "chebyshev1", "chebyshev2", "elliptic"}
	if !f.Valid() {
		return fmt.Sprintf("Flags(0x%X)", uint32(f))
	}
	return types[f.Type()>>TypeShift] + "|" + approx[f.Approx()>>ApproxShift]
}
