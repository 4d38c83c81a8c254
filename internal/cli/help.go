package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cwbudde/gen-iir/dsp/filter/design/iir"
)

// Version is the program version.
const Version = "X01.00.00"

// WriteVersion prints the version banner.
func WriteVersion(w io.Writer) error {
	_, err := fmt.Fprintf(w, "gen-iir %s -- IIR filter designer.\n"+
		"Engine info:\n"+
		"%s\n"+
		"Please use 'gen-iir -h' for help\n", Version, iir.Info())
	return err
}

func tokens[T any](table []Entry[T], from, to int) string {
	parts := make([]string, 0, to-from)
	for _, e := range table[from:to] {
		parts = append(parts, e.Token)
	}
	return strings.Join(parts, " or ")
}

// WriteHelp prints the usage text.
func WriteHelp(w io.Writer) error {
	var b strings.Builder
	b.WriteString("Usage:\n" +
		"gen-iir -v     -- print version info;\n" +
		"or\n" +
		"gen-iir -h     -- print this text;\n" +
		"or\n" +
		"gen-iir -j [-o:<listing-type>]\n" +
		"               -- print C-definitions for selected output mode\n" +
		"                  (see below);\n" +
		"or\n" +
		"gen-iir -c:<legal-floating-number>\n" +
		"               -- to show the number in different forms\n" +
		"or, to compute IIR-filter coefficients:\n" +
		"gen-iir [-t:<filter-type>] [-a:<approx-type>] [-n:<order>] \\\n" +
		"   [-s:<suppression-dB>] [-p:<ripple-dB>] \\\n" +
		"   [-l:<cutoff>] [-r:<right-cutoff>] \\\n" +
		"   [-o:<listing-type>] [-w] [-m] [-i:<wav-path>]\n" +
		"Note, that all filter design and listing parameters are optional.\n\n")

	fmt.Fprintf(&b, "<filter-type> can be:\n"+
		"%s (default)\t\t-- Low Pass Filter,\n"+
		"%s\t\t\t-- High Pass Filter,\n"+
		"%s\t\t-- Band Pass Filter,\n"+
		"%s\t-- Band Stop Filter.\n\n",
		FilterTypes[0].Token, FilterTypes[1].Token,
		tokens(FilterTypes, 2, 4), tokens(FilterTypes, 4, 7))

	fmt.Fprintf(&b, "<approx-type> can be:\n"+
		"%s (default),\n"+
		"%s,\n"+
		"%s,\n"+
		"%s,\n"+
		"for Butterworth, Chebyshev1/2 and Elliptic approximations.\n\n",
		tokens(Approximations, 0, 2), tokens(Approximations, 2, 5),
		tokens(Approximations, 5, 8), tokens(Approximations, 8, 10))

	fmt.Fprintf(&b, "<order> (default %d) -- filter order, integer [%d..%d];\n"+
		"   should be even for \"band\" types filters\n"+
		"   (the default is doubled for them)\n\n", DefaultOrder, MinOrder, MaxOrder)
	fmt.Fprintf(&b, "<suppression-dB> (default %.1f dB)\n"+
		" -- suppression in stop band -- dB, float (0.0 .. %.1f]\n\n", DefaultSuppression, MaxSuppression)
	fmt.Fprintf(&b, "<ripple-dB> (default %.1f dB)\n"+
		" -- maximum ripple level in pass band -- dB, float (0.0 .. <suppression-dB>]\n\n", DefaultRipple)
	fmt.Fprintf(&b, "<cutoff> (default %.2f)\n"+
		" -- cutoff normalized frequency, float (0.0 .. 1.0);\n"+
		"    (left cutoff for \"band\" types filters)\n\n", DefaultCutoff)
	fmt.Fprintf(&b, "<right-cutoff> (default %.2f)\n"+
		" -- right cutoff normalized frequency, float (<cutoff> .. 1.0);\n"+
		"    (specified only for \"band\" types filters)\n\n", DefaultCutoffRight)

	fmt.Fprintf(&b, "<listing-type> can be:\n"+
		"%s (default)\t-- simply coefficient list in conventional floats,\n"+
		"%s\t\t-- C-source in conventional floats,\n"+
		"%s\t\t-- C-source in hexadecimal floats (if supported),\n"+
		"%s\t\t-- C-source in hexadecimal floats as uint64_t dumps.\n\n",
		OutputModes[0].Token, OutputModes[1].Token, OutputModes[2].Token, OutputModes[3].Token)

	b.WriteString("-w (\"wide output\") turn on output of filter coefficients\n" +
		"   to all available forms\n\n" +
		"-m append the measured frequency response (DC, Nyquist and peak gain,\n" +
		"   gain at the cutoffs, largest pole radius)\n\n" +
		"-i:<wav-path> write the impulse response as a 48 kHz 24-bit WAV file\n\n" +
		"Please note, that all \"floats\" represented as double (64 bits) values.\n" +
		"You can use '=' against ':' in values specifications, but the\n" +
		"blanks in '-<key>:<value>' are inadmissible. Note also, that <value> is\n" +
		"always not case sensible, but <key> letters are sensible.\n" +
		"Set GEN_IIR_NO_HEXFLOAT=1 to disable hexadecimal float output.\n")

	_, err := io.WriteString(w, b.String())
	return err
}
