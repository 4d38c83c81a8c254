// Command gen-iir designs IIR filters and prints their coefficients as a
// plain listing or as C source.
//
// Usage:
//
//	gen-iir -v | -h | -j [-o:<mode>] | -c:<number>
//	gen-iir [-t:<type>] [-a:<approx>] [-n:<order>] [-s:<dB>] [-p:<dB>]
//	        [-l:<cutoff>] [-r:<right-cutoff>] [-o:<mode>] [-w] [-m] [-i:<wav>]
//
// Examples:
//
//	gen-iir -t:LPF -a:ELLIP -n:4 -l:0.25
//	gen-iir -t:BPF -l:0.2 -r:0.4 -o:CHEXUI -w
//	gen-iir -c:3.14
//	gen-iir -j -o:CDEC
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cwbudde/gen-iir/dsp/filter/design/iir"
	"github.com/cwbudde/gen-iir/dsp/filter/response"
	"github.com/cwbudde/gen-iir/internal/cli"
	"github.com/cwbudde/gen-iir/internal/listing"
	"github.com/cwbudde/gen-iir/measure/ir"
)

// Impulse-response export settings.
const (
	irLength     = 8192
	irSampleRate = 48000
	irBitDepth   = 24
)

// noHexFloatEnv disables hexadecimal-float output when set to any value.
const noHexFloatEnv = "GEN_IIR_NO_HEXFLOAT"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// reporter writes diagnostics.
type reporter struct {
	w io.Writer
}

func (r reporter) Warnf(format string, args ...any) {
	fmt.Fprintf(r.w, "!!Warning: "+format+"\n", args...)
}

func (r reporter) Errorf(format string, args ...any) {
	fmt.Fprintf(r.w, "??"+format+"\n", args...)
}

// usageError prints a command-line error and its legal alternatives.
func (r reporter) usageError(err error) {
	var ce *cli.Error
	if !errors.As(err, &ce) {
		r.Errorf("%v", err)
		return
	}
	r.Errorf("%s", ce.Msg)
	if len(ce.Legal) > 0 {
		fmt.Fprintln(r.w, "  legal values are:")
		for _, l := range ce.Legal {
			fmt.Fprintf(r.w, "    %s\n", l)
		}
	}
}

// run executes one invocation and returns the exit status: 1 for command-line
// errors, 0 otherwise.
func run(args []string, stdout, stderr io.Writer) int {
	rep := reporter{w: stderr}

	params, warns, err := cli.Parse(args)
	for _, w := range warns {
		rep.Warnf("%s", w)
	}
	if err != nil {
		rep.usageError(err)
		return 1
	}

	warns, err = params.Normalize()
	for _, w := range warns {
		rep.Warnf("%s", w)
	}
	if err != nil {
		rep.usageError(err)
		return 1
	}

	_, noHex := os.LookupEnv(noHexFloatEnv)
	out := listing.New(stdout, params.OutputMode(),
		listing.WithWide(params.Wide.Val),
		listing.WithHexFloat(!noHex))

	switch {
	case params.ShowVersion.Set:
		return report(rep, cli.WriteVersion(stdout))
	case params.ShowHelp.Set:
		return report(rep, cli.WriteHelp(stdout))
	case params.ShowHeader.Set:
		return report(rep, out.Header(cli.HeaderNames()))
	case params.HexCalc.Set:
		return report(rep, out.HexCalc(params.HexCalc.Val))
	}

	design(rep, out, params, iir.ArctanTransition)
	return 0
}

// report prints a non-fatal output error. The exit status stays 0.
func report(rep reporter, err error) int {
	if err != nil {
		rep.Errorf("output failed: %v", err)
	}
	return 0
}

// design synthesizes the requested filter and prints it with the optional
// response summary and impulse-response export. The transition width in the
// header comes from heuristic. Failures are reported only.
func design(rep reporter, out *listing.Printer, params *cli.Params, heuristic iir.TransitionHeuristic) {
	engine, err := iir.Open()
	if err != nil {
		rep.Errorf("can't open the design engine: %v", err)
		return
	}
	defer engine.Close()

	spec := params.Spec()
	coeffs, err := engine.Design(spec)
	if err != nil {
		rep.Errorf("design failed: %v (code 0x%08X)", err, iir.Code(err))
		return
	}

	tw := -1.0
	ws := engine.StopbandEdge(params.AnalogOrder(), spec.Ripple, spec.Suppression, spec.Flags)
	if ws < 0 {
		rep.Warnf("can't compute transition width")
	} else {
		tw = heuristic(ws)
	}

	typ, approx := params.FilterType(), params.Approximation()
	d := listing.Descriptor{
		TypeToken:       typ.Token,
		ApproxToken:     approx.Token,
		TypeName:        typ.External,
		ApproxName:      approx.External,
		Band:            params.IsBand(),
		Order:           spec.Order,
		Suppression:     spec.Suppression,
		Ripple:          spec.Ripple,
		Cutoff:          spec.Cutoff,
		CutoffRight:     spec.CutoffRight,
		TransitionWidth: tw,
		B:               coeffs.B,
		A:               coeffs.A,
	}
	if err := out.Filter(d); err != nil {
		rep.Errorf("output failed: %v", err)
		return
	}

	if params.Measure.Val {
		measure(rep, out, d)
	}
	if params.ImpulsePath.Set {
		exportImpulse(rep, params.ImpulsePath.Val, coeffs)
	}
}

func measure(rep reporter, out *listing.Printer, d listing.Descriptor) {
	s, err := response.Analyze(d.B, d.A)
	if err != nil {
		rep.Errorf("response measurement failed: %v", err)
		return
	}

	lines := []string{
		fmt.Sprintf("DC gain %.4f dB; Nyquist gain %.4f dB;", s.DCGainDB, s.NyquistGainDB),
		fmt.Sprintf("Peak gain %.4f dB at %.6f ([0..1] norm.);", s.PeakGainDB, s.PeakFrequency),
		fmt.Sprintf("Gain at cutoff %.6f: %.4f dB;", d.Cutoff, s.GainAt(d.Cutoff)),
	}
	if d.Band {
		lines = append(lines, fmt.Sprintf("Gain at right cutoff %.6f: %.4f dB;", d.CutoffRight, s.GainAt(d.CutoffRight)))
	}
	if s.PoleRadiusDone {
		stability := "stable"
		if !s.Stable() {
			stability = "UNSTABLE"
		}
		lines = append(lines, fmt.Sprintf("Max. pole radius %.10f (%s)", s.MaxPoleRadius, stability))
	} else {
		lines = append(lines, fmt.Sprintf("Max. pole radius not computed (order above %d)", response.MaxRootOrder))
	}

	if err := out.Comment("Measured response", lines...); err != nil {
		rep.Errorf("output failed: %v", err)
	}
}

func exportImpulse(rep reporter, path string, c iir.Coefficients) {
	h, err := ir.Compute(c.B, c.A, irLength)
	if err != nil {
		rep.Errorf("impulse response failed: %v", err)
		return
	}
	m, err := ir.NewAnalyzer(irSampleRate).Analyze(h)
	if err != nil {
		rep.Errorf("impulse response failed: %v", err)
		return
	}

	f, err := os.Create(path)
	if err != nil {
		rep.Errorf("can't create '%s': %v", path, err)
		return
	}
	err = ir.WriteWAV(f, h, irSampleRate, irBitDepth)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		rep.Errorf("can't write '%s': %v", path, err)
		return
	}

	rt60 := "n/a"
	if m.RT60 > 0 {
		rt60 = fmt.Sprintf("%.3f ms", 1000*m.RT60)
	}
	fmt.Fprintf(rep.w, "impulse response written to %s (peak at %d, -60 dB after %d samples; "+
		"energy %.6g, center time %.3f ms, RT60 %s)\n",
		path, m.PeakIndex, m.DecaySamples, m.Energy, 1000*m.CenterTime, rt60)
}
