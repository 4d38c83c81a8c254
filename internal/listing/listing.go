// Package listing renders designed IIR filters as text: a plain listing or
// C source with decimal, hexadecimal-float or bit-exact integer literals.
package listing

import (
	"fmt"
	"io"
	"strings"
)

// Mode selects the output representation.
type Mode int

// Output modes.
const (
	Raw       Mode = iota // plain listing
	CDec                  // C source, decimal literals
	CHexFloat             // C source, hexadecimal-float literals
	CHexUint              // C source, uint64_t bit patterns
)

func (m Mode) String() string {
	switch m {
	case Raw:
		return "RAW"
	case CDec:
		return "CDEC"
	case CHexFloat:
		return "CHEXF"
	case CHexUint:
		return "CHEXUI"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// IsC reports whether m produces C source.
func (m Mode) IsC() bool { return m == CDec || m == CHexFloat || m == CHexUint }

type config struct {
	wide     bool
	hexFloat bool
}

// Option configures a Printer.
type Option func(*config)

// WithWide adds every other representation of each coefficient as a
// comment or suffix.
func WithWide(wide bool) Option {
	return func(cfg *config) { cfg.wide = wide }
}

// WithHexFloat declares whether hexadecimal-float text may be emitted.
// Without it CHexFloat degrades to decimal literals and hex-float
// annotations are left out.
func WithHexFloat(ok bool) Option {
	return func(cfg *config) { cfg.hexFloat = ok }
}

// Descriptor is everything needed to print one filter.
type Descriptor struct {
	TypeToken   string // table token shown in the plain listing, e.g. "LPF"
	ApproxToken string // e.g. "BUTTER"
	TypeName    string // C constant, e.g. "RP_IIR_LPF"
	ApproxName  string // e.g. "RP_IIR_BUTTER"
	Band        bool

	Order           int
	Suppression     float64
	Ripple          float64
	Cutoff          float64
	CutoffRight     float64
	TransitionWidth float64

	B, A []float64
}

// Printer writes listings to w. The first write error is kept and returned
// by every later call.
type Printer struct {
	w    io.Writer
	mode Mode
	cfg  config
	err  error
}

// New returns a Printer for mode. Hex-float output is enabled by default.
func New(w io.Writer, mode Mode, opts ...Option) *Printer {
	cfg := config{hexFloat: true}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Printer{w: w, mode: mode, cfg: cfg}
}

// Mode returns the output mode.
func (p *Printer) Mode() Mode { return p.mode }

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// HexCalc prints v in decimal, hexadecimal-float and bit-pattern form.
func (p *Printer) HexCalc(v float64) error {
	if p.cfg.hexFloat {
		p.printf("dec: %s; hex: %s; bin: 0x%s\n", Dec(v), HexFloat(v), Bits(v))
	} else {
		p.printf("dec: %s; bin: 0x%s\n", Dec(v), Bits(v))
	}
	return p.err
}

// Comment prints a titled block of free text after a filter: "** title:"
// and "-- line" in the plain listing, C line comments otherwise.
func (p *Printer) Comment(title string, lines ...string) error {
	if p.mode == Raw {
		p.printf("\n** %s:\n", title)
		for _, l := range lines {
			p.printf("-- %s\n", l)
		}
		return p.err
	}
	p.printf("// %s:\n", title)
	for _, l := range lines {
		p.printf("//   %s\n", l)
	}
	return p.err
}

// Filter prints d in the printer's mode.
func (p *Printer) Filter(d Descriptor) error {
	if len(d.B) != len(d.A) {
		return fmt.Errorf("listing: numerator has %d coefficients, denominator %d", len(d.B), len(d.A))
	}
	size := len(d.B)

	cast := "(double [])"
	if p.mode == CHexUint {
		cast = "(uint64_t [])"
	}

	if p.mode == Raw {
		cutoffLabel := "Cutoff"
		if d.Band {
			cutoffLabel = "Left cutoff"
		}
		p.printf("** Filter design:\n"+
			"-- Type: %s; Approximation: %s;\n"+
			"-- Filter order: %d (%d coefficients in numerator / denominator);\n"+
			"-- Suppression in stop band %.4f dB;\n"+
			"-- Max. ripple in pass band %.4f dB;\n"+
			"-- %s frequency: %s ([0..1] norm.)\n",
			d.TypeToken, d.ApproxToken, d.Order, size, d.Suppression, d.Ripple, cutoffLabel, short(d.Cutoff))
		if d.Band {
			p.printf("-- Right cutoff frequency: %s ([0..1] norm.)\n", short(d.CutoffRight))
		}
		p.printf("-- Transition width %s (unverified) ([0..1] norm.)\n"+
			"\n** Numerator coefficients (B[%d]):\n", short(d.TransitionWidth), size)
	} else {
		p.printf("RP_IIR_FILTER_DESCR rp_iir_filter =\n"+
			"{\n"+
			"// -- the design parameters:\n"+
			"  %s | %s,\n"+
			"  %d,       // order\n"+
			"  %.4f,     // suppression\n"+
			"  %.4f,     // ripple\n"+
			"  %s,     // left cutoff\n"+
			"  %s,     // right cutoff\n"+
			"  %s,     // (unverified) transition width\n"+
			"// Numerator coefficients (B[%d]):\n"+
			"  %s\n"+
			"  {\n",
			d.TypeName, d.ApproxName, d.Order, d.Suppression, d.Ripple,
			short(d.Cutoff), short(d.CutoffRight), short(d.TransitionWidth), size, cast)
	}

	p.vector(d.B)

	if p.mode == Raw {
		p.printf("\n** Denominator coefficients (A[%d]):\n", size)
	} else {
		p.printf("  },\n"+
			"// Denominator coefficients (A[%d]):\n"+
			"  %s\n"+
			"  {\n", size, cast)
	}

	p.vector(d.A)

	if p.mode == Raw {
		p.printf("\n** It's your filter.\n")
	} else {
		p.printf("  }\n};\n\n")
	}
	return p.err
}

func (p *Printer) vector(vec []float64) {
	for i, v := range vec {
		if p.err != nil {
			return
		}
		sep := ','
		if i == len(vec)-1 {
			sep = ' '
		}
		p.printf("%s\n", p.line(i, v, sep))
	}
}

// line renders one coefficient.
func (p *Printer) line(i int, v float64, sep rune) string {
	wide, hex := p.cfg.wide, p.cfg.hexFloat
	switch p.mode {
	case Raw:
		switch {
		case wide && hex:
			return fmt.Sprintf("#%2d: %s; hex: %s; bin: 0x%s", i, Dec(v), HexFloat(v), Bits(v))
		case wide:
			return fmt.Sprintf("#%2d: %s; bin: 0x%s", i, Dec(v), Bits(v))
		default:
			return fmt.Sprintf("#%2d: %s", i, Dec(v))
		}

	case CHexFloat:
		if hex {
			if wide {
				return fmt.Sprintf("    %s%c  // [%2d] dec: %s; bin: 0x%s", HexFloat(v), sep, i, Dec(v), Bits(v))
			}
			return fmt.Sprintf("    %s%c   // [%2d] dec: %s", HexFloat(v), sep, i, Dec(v))
		}
		return p.decLine(i, v, sep)

	case CHexUint:
		// Without hex floats the literals drop the U suffix.
		suffix := ""
		if hex {
			suffix = "U"
		}
		switch {
		case wide && hex:
			return fmt.Sprintf("    0x%sU%c  // [%2d] dec: %s; hex: %s", Bits(v), sep, i, Dec(v), HexFloat(v))
		case wide:
			return fmt.Sprintf("    0x%s%c  // [%2d] dec: %s", Bits(v), sep, i, Dec(v))
		default:
			return fmt.Sprintf("    0x%s%s%c   // [%2d] dec: %s", Bits(v), suffix, sep, i, Dec(v))
		}

	default:
		return p.decLine(i, v, sep)
	}
}

func (p *Printer) decLine(i int, v float64, sep rune) string {
	switch {
	case p.cfg.wide && p.cfg.hexFloat:
		return fmt.Sprintf("    %s%c  // [%2d] hex: %s; bin: 0x%s", Dec(v), sep, i, HexFloat(v), Bits(v))
	case p.cfg.wide:
		return fmt.Sprintf("    %s%c  // [%2d] bin: 0x%s", Dec(v), sep, i, Bits(v))
	default:
		return fmt.Sprintf("    %s%c   // [%2d]", Dec(v), sep, i)
	}
}

// Names holds the C constant names emitted by Header, in flag order.
type Names struct {
	Types  [4]string // lowpass, highpass, bandpass, bandstop
	Approx [4]string // butterworth, chebyshev1, chebyshev2, elliptic
}

// Header prints the C definitions a consumer needs to compile the output
// of Filter in the printer's mode.
func (p *Printer) Header(n Names) error {
	if p.mode == CHexUint {
		p.printf("#include <stdint.h>\n\n")
	}

	var b strings.Builder
	b.WriteString("// -- gen-iir filter descriptor\n")
	b.WriteString("// filter types:\n")
	b.WriteString("#define RP_IIR_TYPE_SHIFT  (0)\n")
	b.WriteString("#define RP_IIR_TYPE_MASK   (0xFF << RP_IIR_TYPE_SHIFT)\n")
	for i, name := range n.Types {
		fmt.Fprintf(&b, "#define %s       (%d << RP_IIR_TYPE_SHIFT)\n", name, i)
	}
	b.WriteString("// approximation types:\n")
	b.WriteString("#define RP_IIR_APPROX_SHIFT  (8)\n")
	b.WriteString("#define RP_IIR_APPROX_MASK   (0xFF << RP_IIR_APPROX_SHIFT)\n")
	for i, name := range n.Approx {
		fmt.Fprintf(&b, "#define %s       (%d << RP_IIR_APPROX_SHIFT)\n", name, i)
	}
	p.printf("%s", b.String())

	vec := "double  "
	if p.mode == CHexUint {
		vec = "uint64_t"
	}
	p.printf("// the filter (design + coefficients):\n"+
		"typedef struct s_rp_iir_filter_descr\n"+
		"{\n"+
		"  unsigned flags;            // RP_IIR_LPF-or-so | RP_IIR_BUTTER-or-so\n"+
		"  int      order;\n"+
		"  double   suppression;\n"+
		"  double   ripple;\n"+
		"  double   left_cutoff;\n"+
		"  double   right_cutoff;\n"+
		"  double   transition_width;\n"+
		"  %s *vec_b;           // order + 1 values\n"+
		"  %s *vec_a;           // order + 1 values\n"+
		"} RP_IIR_FILTER_DESCR;\n\n", vec, vec)
	return p.err
}
