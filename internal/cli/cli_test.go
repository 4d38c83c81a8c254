package cli

import (
	"bytes"
	"errors"
	"strconv"
	"testing"

	"github.com/cwbudde/gen-iir/dsp/filter/design/iir"
	"github.com/cwbudde/gen-iir/internal/listing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseAndNormalize(t *testing.T, args ...string) (*Params, []Warning, error) {
	t.Helper()
	p, warns, err := Parse(args)
	if err != nil {
		return nil, warns, err
	}
	more, err := p.Normalize()
	return p, append(warns, more...), err
}

func requireKind(t *testing.T, err error, kind Kind) *Error {
	t.Helper()
	var e *Error
	require.True(t, errors.As(err, &e), "want *cli.Error, got %v", err)
	require.Equal(t, kind, e.Kind, e.Msg)
	return e
}

func TestParse_Defaults(t *testing.T) {
	p, warns, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, "LPF", p.FilterType().Token)
	assert.Equal(t, "BUTTER", p.Approximation().Token)
	assert.Equal(t, listing.Raw, p.OutputMode())
	assert.Equal(t, DefaultOrder, p.Order.Val)
	assert.False(t, p.Order.Set)
	assert.InDelta(t, 60.0, p.Suppression.Val, 0)
	assert.InDelta(t, 2.5, p.Ripple.Val, 0)
	assert.InDelta(t, 0.3, p.Cutoff.Val, 0)
	assert.InDelta(t, 0.6, p.CutoffRight.Val, 0)
	assert.False(t, p.Informational())
}

func TestParse_AllKeys(t *testing.T) {
	p, warns, err := Parse([]string{
		"-t:bstop", "-a=chebyshev2", "-n:8", "-s:40", "-p=0.5",
		"-l:0.1", "-r:0.2", "-o:chexui", "-w", "-m", "-i:Out/IR.wav",
	})
	require.NoError(t, err)
	assert.Empty(t, warns)

	assert.Equal(t, "BSTOP", p.FilterType().Token)
	assert.Equal(t, iir.BandStop|iir.Chebyshev2, p.Flags())
	assert.True(t, p.IsBand())
	assert.Equal(t, 8, p.Order.Val)
	assert.True(t, p.Order.Set)
	assert.InDelta(t, 40.0, p.Suppression.Val, 0)
	assert.InDelta(t, 0.5, p.Ripple.Val, 0)
	assert.InDelta(t, 0.1, p.Cutoff.Val, 0)
	assert.InDelta(t, 0.2, p.CutoffRight.Val, 0)
	assert.Equal(t, listing.CHexUint, p.OutputMode())
	assert.True(t, p.Wide.Val)
	assert.True(t, p.Measure.Val)
	assert.Equal(t, "Out/IR.wav", p.ImpulsePath.Val)
	assert.Equal(t, 4, p.AnalogOrder())

	s := p.Spec()
	assert.Equal(t, iir.Spec{Ripple: 0.5, Suppression: 40, Order: 8, Cutoff: 0.1, CutoffRight: 0.2, Flags: iir.BandStop | iir.Chebyshev2}, s)
}

func TestParse_EnumsCaseInsensitive(t *testing.T) {
	for i, e := range Approximations {
		p, _, err := Parse([]string{"-a:" + swapCase(e.Token)})
		require.NoError(t, err, e.Token)
		assert.Equal(t, i, p.Approx.Val)
	}
	p, _, err := Parse([]string{"-t:notch"})
	require.NoError(t, err)
	assert.Equal(t, iir.BandStop, p.FilterType().Value)
	assert.Equal(t, "RP_IIR_BSF", p.FilterType().External)
}

func swapCase(s string) string {
	b := []byte(s)
	for i, c := range b {
		switch {
		case c >= 'a' && c <= 'z':
			b[i] = c - 'a' + 'A'
		case c >= 'A' && c <= 'Z':
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}

func TestParse_DuplicateWarns(t *testing.T) {
	p, warns, err := Parse([]string{"-n:4", "-n:5", "-w", "-w"})
	require.NoError(t, err)
	assert.Equal(t, 5, p.Order.Val)
	assert.Equal(t, []Warning{"multiple definition of '-n:5'", "multiple definition of '-w'"}, warns)
}

func TestParse_OrderTruncates(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"4.9", 4},
		{"-1.5", -1},
		{"1e3", 1000},
		{"1e30", 2147483647},
		{"nan", 0},
	}
	for _, tt := range tests {
		p, _, err := Parse([]string{"-n:" + tt.in})
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, p.Order.Val, tt.in)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind Kind
	}{
		{"not a key", []string{"LPF"}, KindSyntax},
		{"lone dash", []string{"-"}, KindSyntax},
		{"unknown key", []string{"-x:1"}, KindSyntax},
		{"upper-case key", []string{"-T:LPF"}, KindSyntax},
		{"missing delimiter", []string{"-n4"}, KindSyntax},
		{"bad delimiter", []string{"-n;4"}, KindSyntax},
		{"flag with value", []string{"-w:1"}, KindSyntax},
		{"empty path", []string{"-i:"}, KindSyntax},
		{"bad number", []string{"-s:lots"}, KindNumber},
		{"empty number", []string{"-l:"}, KindNumber},
		{"comma decimal", []string{"-l:0,3"}, KindNumber},
		{"bad type", []string{"-t:allpass"}, KindEnum},
		{"bad output", []string{"-o:json"}, KindEnum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Parse(tt.args)
			requireKind(t, err, tt.kind)
		})
	}
}

func TestParse_EnumErrorListsLegalValues(t *testing.T) {
	_, _, err := Parse([]string{"-t:comb"})
	e := requireKind(t, err, KindEnum)
	assert.Equal(t, "-t:comb", e.Token)
	assert.Equal(t, []string{"-t:LPF", "-t:HPF", "-t:BPF", "-t:BPASS", "-t:BSF", "-t:BSTOP", "-t:NOTCH"}, e.Legal)
}

func TestParse_NumberErrorWrapsCause(t *testing.T) {
	_, _, err := Parse([]string{"-c:pi"})
	requireKind(t, err, KindNumber)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
}

func TestNormalize_BandDefaultOrderDoubles(t *testing.T) {
	for _, typ := range []string{"BPF", "BPASS", "BSF", "BSTOP", "NOTCH"} {
		p, warns, err := parseAndNormalize(t, "-t:"+typ)
		require.NoError(t, err)
		assert.Empty(t, warns)
		assert.Equal(t, 2*DefaultOrder, p.Order.Val, typ)
	}
}

func TestNormalize_BandOddOrderRoundsUp(t *testing.T) {
	p, warns, err := parseAndNormalize(t, "-t:BPF", "-n:3")
	require.NoError(t, err)
	assert.Equal(t, 4, p.Order.Val)
	assert.Equal(t, []Warning{"the order of band pass/stop filter should be even: 3 -> 4"}, warns)

	p, warns, err = parseAndNormalize(t, "-t:BSF", "-n:6")
	require.NoError(t, err)
	assert.Equal(t, 6, p.Order.Val)
	assert.Empty(t, warns)
}

func TestNormalize_NonBandClearsRightCutoff(t *testing.T) {
	for _, typ := range []string{"LPF", "HPF"} {
		p, _, err := parseAndNormalize(t, "-t:"+typ, "-r:0.9")
		require.NoError(t, err)
		assert.Zero(t, p.CutoffRight.Val)
		assert.Equal(t, DefaultOrder, p.Order.Val)
	}
}

func TestNormalize_Boundaries(t *testing.T) {
	tests := []struct {
		args []string
		ok   bool
	}{
		{[]string{"-n:0"}, false},
		{[]string{"-n:1"}, true},
		{[]string{"-n:1000"}, true},
		{[]string{"-n:1001"}, false},
		{[]string{"-t:BPF", "-n:999"}, true}, // rounded up to 1000
		{[]string{"-t:BPF", "-n:1001"}, false},
		{[]string{"-s:0"}, false},
		{[]string{"-s:500", "-p:1"}, true},
		{[]string{"-s:500.001"}, false},
		{[]string{"-p:0"}, false},
		{[]string{"-p:60", "-s:60"}, true},
		{[]string{"-p:60.0001", "-s:60"}, false},
		{[]string{"-l:0"}, false},
		{[]string{"-l:1"}, false},
		{[]string{"-l:1e-9"}, true},
		{[]string{"-l:0.999999"}, true},
		{[]string{"-l:nan"}, false},
		{[]string{"-t:BPF", "-l:0.4", "-r:0.4"}, false},
		{[]string{"-t:BPF", "-l:0.4", "-r:1"}, false},
		{[]string{"-t:BPF", "-l:0.4", "-r:0.41"}, true},
		{[]string{"-t:HPF", "-l:0.4", "-r:0.1"}, true},
	}
	for _, tt := range tests {
		_, _, err := parseAndNormalize(t, tt.args...)
		if tt.ok {
			assert.NoError(t, err, "%v", tt.args)
		} else {
			requireKind(t, err, KindRange)
		}
	}
}

func TestNormalize_InformationalSkipsChecks(t *testing.T) {
	for _, flag := range []string{"-v", "-h", "-j", "-c:1"} {
		p, warns, err := parseAndNormalize(t, flag, "-n:0", "-t:BPF", "-n:3")
		require.NoError(t, err, flag)
		assert.Len(t, warns, 1) // duplicate -n only
		assert.Equal(t, 3, p.Order.Val)
	}
}

func TestHeaderNames(t *testing.T) {
	n := HeaderNames()
	assert.Equal(t, [4]string{"RP_IIR_LPF", "RP_IIR_HPF", "RP_IIR_BPF", "RP_IIR_BSF"}, n.Types)
	assert.Equal(t, [4]string{"RP_IIR_BUTTER", "RP_IIR_CHEBY1", "RP_IIR_CHEBY2", "RP_IIR_ELLIP"}, n.Approx)
}

func TestWriteHelpAndVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHelp(&buf))
	out := buf.String()
	assert.Contains(t, out, "LPF (default)")
	assert.Contains(t, out, "BSF or BSTOP or NOTCH\t-- Band Stop Filter.")
	assert.Contains(t, out, "BUTTER or Batterworth (default),")
	assert.Contains(t, out, "CHEBY1 or CHEB1 or Chebyshev1,")
	assert.Contains(t, out, "<order> (default 6)")

	buf.Reset()
	require.NoError(t, WriteVersion(&buf))
	assert.Contains(t, buf.String(), "gen-iir X01.00.00")
	assert.Contains(t, buf.String(), iir.Info())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "enum", KindEnum.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
}
