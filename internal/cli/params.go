// Package cli turns gen-iir command-line tokens into validated design
// parameters.
package cli

import (
	"strings"

	"github.com/cwbudde/gen-iir/dsp/filter/design/iir"
	"github.com/cwbudde/gen-iir/internal/listing"
)

// Param is a setting together with whether the user gave it explicitly.
type Param[T any] struct {
	Val T
	Set bool
}

// update stores v and reports whether the parameter had already been set.
func (p *Param[T]) update(v T) bool {
	dup := p.Set
	p.Val, p.Set = v, true
	return dup
}

// Entry maps a case-insensitive token to a value and an optional external
// (C source) name.
type Entry[T any] struct {
	Token    string
	Value    T
	External string
}

// FilterTypes lists the accepted -t values. Index 0 is the default.
var FilterTypes = []Entry[iir.Flags]{
	{"LPF", iir.LowPass, "RP_IIR_LPF"},
	{"HPF", iir.HighPass, "RP_IIR_HPF"},
	{"BPF", iir.BandPass, "RP_IIR_BPF"},
	{"BPASS", iir.BandPass, "RP_IIR_BPF"},
	{"BSF", iir.BandStop, "RP_IIR_BSF"},
	{"BSTOP", iir.BandStop, "RP_IIR_BSF"},
	{"NOTCH", iir.BandStop, "RP_IIR_BSF"},
}

// Approximations lists the accepted -a values. Index 0 is the default.
var Approximations = []Entry[iir.Flags]{
	{"BUTTER", iir.Butterworth, "RP_IIR_BUTTER"},
	{"Batterworth", iir.Butterworth, "RP_IIR_BUTTER"},
	{"CHEBY1", iir.Chebyshev1, "RP_IIR_CHEBY1"},
	{"CHEB1", iir.Chebyshev1, "RP_IIR_CHEBY1"},
	{"Chebyshev1", iir.Chebyshev1, "RP_IIR_CHEBY1"},
	{"CHEBY2", iir.Chebyshev2, "RP_IIR_CHEBY2"},
	{"CHEB2", iir.Chebyshev2, "RP_IIR_CHEBY2"},
	{"Chebyshev2", iir.Chebyshev2, "RP_IIR_CHEBY2"},
	{"ELLIP", iir.Elliptic, "RP_IIR_ELLIP"},
	{"Elliptic", iir.Elliptic, "RP_IIR_ELLIP"},
}

// OutputModes lists the accepted -o values. Index 0 is the default.
var OutputModes = []Entry[listing.Mode]{
	{"RAW", listing.Raw, ""},
	{"CDEC", listing.CDec, ""},
	{"CHEXF", listing.CHexFloat, ""},
	{"CHEXUI", listing.CHexUint, ""},
}

// lookup returns the index of token in table, or -1.
func lookup[T any](table []Entry[T], token string) int {
	for i, e := range table {
		if strings.EqualFold(e.Token, token) {
			return i
		}
	}
	return -1
}

// Defaults.
const (
	DefaultOrder       = 6
	DefaultSuppression = 60.0
	DefaultRipple      = 2.5
	DefaultCutoff      = 0.3
	DefaultCutoffRight = 0.6
)

// Params is the full parameter table.
type Params struct {
	ShowVersion Param[bool]    // -v
	ShowHelp    Param[bool]    // -h
	ShowHeader  Param[bool]    // -j
	HexCalc     Param[float64] // -c
	Type        Param[int]     // -t, index into FilterTypes
	Approx      Param[int]     // -a, index into Approximations
	Order       Param[int]     // -n
	Suppression Param[float64] // -s
	Ripple      Param[float64] // -p
	Cutoff      Param[float64] // -l
	CutoffRight Param[float64] // -r
	Output      Param[int]     // -o, index into OutputModes
	Wide        Param[bool]    // -w
	Measure     Param[bool]    // -m
	ImpulsePath Param[string]  // -i
}

// Defaults returns the parameter table before any token is applied.
func Defaults() *Params {
	return &Params{
		Order:       Param[int]{Val: DefaultOrder},
		Suppression: Param[float64]{Val: DefaultSuppression},
		Ripple:      Param[float64]{Val: DefaultRipple},
		Cutoff:      Param[float64]{Val: DefaultCutoff},
		CutoffRight: Param[float64]{Val: DefaultCutoffRight},
	}
}

// FilterType returns the selected filter-type entry.
func (p *Params) FilterType() Entry[iir.Flags] { return FilterTypes[p.Type.Val] }

// Approximation returns the selected approximation entry.
func (p *Params) Approximation() Entry[iir.Flags] { return Approximations[p.Approx.Val] }

// OutputMode returns the selected output mode.
func (p *Params) OutputMode() listing.Mode { return OutputModes[p.Output.Val].Value }

// Flags returns the combined type and approximation.
func (p *Params) Flags() iir.Flags {
	return p.FilterType().Value | p.Approximation().Value
}

// IsBand reports whether a bandpass or bandstop filter was selected.
func (p *Params) IsBand() bool { return p.Flags().IsBand() }

// Informational reports whether a mode that needs no filter design was
// requested: version, help, header or hex calculator.
func (p *Params) Informational() bool {
	return p.ShowVersion.Set || p.ShowHelp.Set || p.ShowHeader.Set || p.HexCalc.Set
}

// Spec returns the design request for the engine.
func (p *Params) Spec() iir.Spec {
	return iir.Spec{
		Ripple:      p.Ripple.Val,
		Suppression: p.Suppression.Val,
		Order:       p.Order.Val,
		Cutoff:      p.Cutoff.Val,
		CutoffRight: p.CutoffRight.Val,
		Flags:       p.Flags(),
	}
}

// AnalogOrder is the prototype order the engine uses: half the order for
// band filters.
func (p *Params) AnalogOrder() int {
	if p.IsBand() {
		return p.Order.Val / 2
	}
	return p.Order.Val
}

// HeaderNames returns the C constant names in flag order.
func HeaderNames() listing.Names {
	var n listing.Names
	for _, e := range FilterTypes {
		n.Types[e.Value>>iir.TypeShift] = e.External
	}
	for _, e := range Approximations {
		n.Approx[e.Value>>iir.ApproxShift] = e.External
	}
	return n
}
