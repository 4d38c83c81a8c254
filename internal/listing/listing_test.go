package listing

import (
	"bytes"
	"errors"
	"math"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexFloat(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{3.14, "0X1.91EB851EB851F0P+1"},
		{1, "0X1.00000000000000P+0"},
		{-0.5, "-0X1.00000000000000P-1"},
		{0, "0X0.00000000000000P+0"},
		{1024, "0X1.00000000000000P+10"},
		{math.Inf(1), "INF"},
		{math.NaN(), "NAN"},
	}
	for _, tt := range tests {
		got := HexFloat(tt.v)
		assert.Len(t, got, hexWidth, "%v", tt.v)
		assert.Equal(t, tt.want, strings.TrimSpace(got))
	}
}

func TestDec(t *testing.T) {
	assert.Equal(t, "  3.14000000000000012E+00", Dec(3.14))
	assert.Equal(t, " -1.00000000000000008E-05", Dec(-1e-5))
	assert.Equal(t, "                     -INF", Dec(math.Inf(-1)))
}

func TestBits(t *testing.T) {
	assert.Equal(t, "40091EB851EB851F", Bits(3.14))
	assert.Equal(t, "0", Bits(0))
	assert.Equal(t, "8000000000000000", Bits(math.Copysign(0, -1)))
}

func TestParseBits_RoundTrip(t *testing.T) {
	values := []float64{
		0, math.Copysign(0, -1), 1, -1, 3.14, 1e-300, math.SmallestNonzeroFloat64,
		math.MaxFloat64, 0.1 + 0.2, -2.5e-310, math.Inf(1),
	}
	for _, v := range values {
		for _, text := range []string{Bits(v), "0x" + Bits(v), "0x" + Bits(v) + "U", " 0X" + Bits(v) + "u "} {
			got, err := ParseBits(text)
			require.NoError(t, err, text)
			assert.Equal(t, math.Float64bits(v), math.Float64bits(got), text)
		}
	}

	nan, err := ParseBits(Bits(math.NaN()))
	require.NoError(t, err)
	assert.True(t, math.IsNaN(nan))
}

func TestParseBits_Errors(t *testing.T) {
	for _, s := range []string{"", "0x", "U", "xyz", "0x10000000000000000"} {
		_, err := ParseBits(s)
		require.ErrorIs(t, err, ErrBadBits, s)
	}
}

func TestHexCalc(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, Raw).HexCalc(3.14))
	assert.Equal(t, "dec:   3.14000000000000012E+00; hex:   0X1.91EB851EB851F0P+1; bin: 0x40091EB851EB851F\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, Raw, WithHexFloat(false)).HexCalc(3.14))
	assert.Equal(t, "dec:   3.14000000000000012E+00; bin: 0x40091EB851EB851F\n", buf.String())
}

func testDescriptor(band bool) Descriptor {
	d := Descriptor{
		TypeToken: "LPF", ApproxToken: "BUTTER",
		TypeName: "RP_IIR_LPF", ApproxName: "RP_IIR_BUTTER",
		Order: 2, Suppression: 60, Ripple: 2.5, Cutoff: 0.3, TransitionWidth: 0.2,
		B: []float64{0.25, 0.5, 0.25},
		A: []float64{1, -0.5, 0.125},
	}
	if band {
		d.TypeToken, d.TypeName, d.Band, d.CutoffRight = "BPF", "RP_IIR_BPF", true, 0.6
	}
	return d
}

func render(t *testing.T, mode Mode, d Descriptor, opts ...Option) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, New(&buf, mode, opts...).Filter(d))
	return buf.String()
}

func TestFilter_Raw(t *testing.T) {
	want := "** Filter design:\n" +
		"-- Type: LPF; Approximation: BUTTER;\n" +
		"-- Filter order: 2 (3 coefficients in numerator / denominator);\n" +
		"-- Suppression in stop band 60.0000 dB;\n" +
		"-- Max. ripple in pass band 2.5000 dB;\n" +
		"-- Cutoff frequency: 0.3 ([0..1] norm.)\n" +
		"-- Transition width 0.2 (unverified) ([0..1] norm.)\n" +
		"\n** Numerator coefficients (B[3]):\n" +
		"# 0:   2.50000000000000000E-01\n" +
		"# 1:   5.00000000000000000E-01\n" +
		"# 2:   2.50000000000000000E-01\n" +
		"\n** Denominator coefficients (A[3]):\n" +
		"# 0:   1.00000000000000000E+00\n" +
		"# 1:  -5.00000000000000000E-01\n" +
		"# 2:   1.25000000000000000E-01\n" +
		"\n** It's your filter.\n"
	assert.Equal(t, want, render(t, Raw, testDescriptor(false)))
}

func TestFilter_RawBand(t *testing.T) {
	out := render(t, Raw, testDescriptor(true))
	assert.Contains(t, out, "-- Left cutoff frequency: 0.3 ([0..1] norm.)\n-- Right cutoff frequency: 0.6 ([0..1] norm.)\n")
}

func TestFilter_RawWide(t *testing.T) {
	out := render(t, Raw, testDescriptor(false), WithWide(true))
	assert.Contains(t, out, "# 0:   2.50000000000000000E-01; hex:   0X1.00000000000000P-2; bin: 0x3FD0000000000000\n")

	out = render(t, Raw, testDescriptor(false), WithWide(true), WithHexFloat(false))
	assert.Contains(t, out, "# 0:   2.50000000000000000E-01; bin: 0x3FD0000000000000\n")
	assert.NotContains(t, out, "hex:")
}

func TestFilter_CDec(t *testing.T) {
	want := "RP_IIR_FILTER_DESCR rp_iir_filter =\n" +
		"{\n" +
		"// -- the design parameters:\n" +
		"  RP_IIR_LPF | RP_IIR_BUTTER,\n" +
		"  2,       // order\n" +
		"  60.0000,     // suppression\n" +
		"  2.5000,     // ripple\n" +
		"  0.3,     // left cutoff\n" +
		"  0,     // right cutoff\n" +
		"  0.2,     // (unverified) transition width\n" +
		"// Numerator coefficients (B[3]):\n" +
		"  (double [])\n" +
		"  {\n" +
		"      2.50000000000000000E-01,   // [ 0]\n" +
		"      5.00000000000000000E-01,   // [ 1]\n" +
		"      2.50000000000000000E-01    // [ 2]\n" +
		"  },\n" +
		"// Denominator coefficients (A[3]):\n" +
		"  (double [])\n" +
		"  {\n" +
		"      1.00000000000000000E+00,   // [ 0]\n" +
		"     -5.00000000000000000E-01,   // [ 1]\n" +
		"      1.25000000000000000E-01    // [ 2]\n" +
		"  }\n" +
		"};\n\n"
	assert.Equal(t, want, render(t, CDec, testDescriptor(false)))
}

func TestFilter_CHexFloat(t *testing.T) {
	out := render(t, CHexFloat, testDescriptor(false))
	assert.Contains(t, out, "      0X1.00000000000000P-2,   // [ 0] dec:   2.50000000000000000E-01\n")
	assert.Contains(t, out, "      0X1.00000000000000P-3    // [ 2] dec:   1.25000000000000000E-01\n")

	wide := render(t, CHexFloat, testDescriptor(false), WithWide(true))
	assert.Contains(t, wide, "      0X1.00000000000000P-2,  // [ 0] dec:   2.50000000000000000E-01; bin: 0x3FD0000000000000\n")

	// Without hex-float support the literals fall back to decimal.
	degraded := render(t, CHexFloat, testDescriptor(false), WithHexFloat(false))
	assert.Equal(t, render(t, CDec, testDescriptor(false)), degraded)
}

func TestFilter_CHexUint(t *testing.T) {
	out := render(t, CHexUint, testDescriptor(false))
	assert.Contains(t, out, "  (uint64_t [])\n")
	assert.NotContains(t, out, "(double [])")
	assert.Contains(t, out, "    0x3FD0000000000000U,   // [ 0] dec:   2.50000000000000000E-01\n")
	assert.Contains(t, out, "    0x3FC0000000000000U    // [ 2] dec:   1.25000000000000000E-01\n")

	wide := render(t, CHexUint, testDescriptor(false), WithWide(true))
	assert.Contains(t, wide, "    0x3FF0000000000000U,  // [ 0] dec:   1.00000000000000000E+00; hex:   0X1.00000000000000P+0\n")

	narrow := render(t, CHexUint, testDescriptor(false), WithWide(true), WithHexFloat(false))
	assert.Contains(t, narrow, "    0x3FF0000000000000,  // [ 0] dec:   1.00000000000000000E+00\n")

	plain := render(t, CHexUint, testDescriptor(false), WithHexFloat(false))
	assert.Contains(t, plain, "    0x3FD0000000000000,   // [ 0] dec:   2.50000000000000000E-01\n")
	assert.NotRegexp(t, `0x[0-9A-F]+U`, plain)
}

var literal = regexp.MustCompile(`(?m)^    0x([0-9A-F]+)U[, ]`)

func TestFilter_CHexUintRoundTrip(t *testing.T) {
	d := testDescriptor(false)
	d.B = []float64{0.1, -1.0 / 3, math.Pi}
	d.A = []float64{1, math.SmallestNonzeroFloat64, math.Copysign(0, -1)}

	matches := literal.FindAllStringSubmatch(render(t, CHexUint, d), -1)
	want := append(append([]float64{}, d.B...), d.A...)
	require.Len(t, matches, len(want))
	for i, m := range matches {
		got, err := ParseBits(m[1])
		require.NoError(t, err)
		assert.Equal(t, math.Float64bits(want[i]), math.Float64bits(got))
	}
}

func TestFilter_VectorLengthsMatch(t *testing.T) {
	for _, mode := range []Mode{Raw, CDec, CHexFloat, CHexUint} {
		for _, wide := range []bool{false, true} {
			out := render(t, mode, testDescriptor(true), WithWide(wide))
			assert.Equal(t, 6, strings.Count(out, "[ ")+strings.Count(out, "# "), "%s wide=%v", mode, wide)
		}
	}
}

func TestFilter_MismatchedVectors(t *testing.T) {
	d := testDescriptor(false)
	d.A = d.A[:2]
	err := New(&bytes.Buffer{}, Raw).Filter(d)
	require.Error(t, err)
}

func TestHeader(t *testing.T) {
	names := Names{
		Types:  [4]string{"RP_IIR_LPF", "RP_IIR_HPF", "RP_IIR_BPF", "RP_IIR_BSF"},
		Approx: [4]string{"RP_IIR_BUTTER", "RP_IIR_CHEBY1", "RP_IIR_CHEBY2", "RP_IIR_ELLIP"},
	}

	var buf bytes.Buffer
	require.NoError(t, New(&buf, CDec).Header(names))
	out := buf.String()
	assert.NotContains(t, out, "#include")
	assert.Contains(t, out, "#define RP_IIR_BSF       (3 << RP_IIR_TYPE_SHIFT)\n")
	assert.Contains(t, out, "#define RP_IIR_CHEBY1       (1 << RP_IIR_APPROX_SHIFT)\n")
	assert.Contains(t, out, "  double   *vec_b;")
	assert.True(t, strings.HasSuffix(out, "} RP_IIR_FILTER_DESCR;\n\n"))

	buf.Reset()
	require.NoError(t, New(&buf, CHexUint).Header(names))
	out = buf.String()
	assert.True(t, strings.HasPrefix(out, "#include <stdint.h>\n\n"))
	assert.Contains(t, out, "  uint64_t *vec_a;")
}

func TestComment(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf, Raw).Comment("Measured response", "DC gain 0 dB"))
	assert.Equal(t, "\n** Measured response:\n-- DC gain 0 dB\n", buf.String())

	buf.Reset()
	require.NoError(t, New(&buf, CDec).Comment("Measured response", "DC gain 0 dB"))
	assert.Equal(t, "// Measured response:\n//   DC gain 0 dB\n", buf.String())
}

type failingWriter struct{ n int }

var errWrite = errors.New("disk full")

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestFilter_WriteError(t *testing.T) {
	p := New(&failingWriter{n: 3}, CDec)
	require.ErrorIs(t, p.Filter(testDescriptor(false)), errWrite)
	require.ErrorIs(t, p.HexCalc(1), errWrite)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "CHEXUI", CHexUint.String())
	assert.True(t, CHexFloat.IsC())
	assert.False(t, Raw.IsC())
	assert.Equal(t, "Mode(9)", Mode(9).String())
}
