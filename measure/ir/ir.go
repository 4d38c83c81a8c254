package ir

import (
	"errors"
	"math"

	"github.com/tphakala/simd/f64"
)

// Errors returned by IR functions.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidLength     = errors.New("ir: length must be positive")
	ErrInvalidFilter     = errors.New("ir: invalid filter coefficients")
)

// decayFloorDB is the Schroeder level that counts as fully decayed.
const decayFloorDB = -60.0

// Compute returns the first n samples of the impulse response of
// H(z) = B(z^-1) / A(z^-1), evaluated in direct form.
func Compute(b, a []float64, n int) ([]float64, error) {
	if n <= 0 {
		return nil, ErrInvalidLength
	}
	if len(b) == 0 || len(a) == 0 || a[0] == 0 {
		return nil, ErrInvalidFilter
	}

	// Feedback taps reversed so that a window of past outputs lines up with
	// them: sum_k a[k] y[i-k] == dot(fb[order-m:], y[i-m:i]).
	order := len(a) - 1
	fb := make([]float64, order)
	for k := 1; k <= order; k++ {
		fb[order-k] = a[k]
	}
	inv := 1 / a[0]

	y := make([]float64, n)
	for i := range y {
		var x float64
		if i < len(b) {
			x = b[i]
		}
		m := min(i, order)
		if m > 0 {
			x -= f64.DotProduct(fb[order-m:], y[i-m:i])
		}
		y[i] = x * inv
		if math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return nil, ErrInvalidFilter
		}
	}
	return y, nil
}

// Metrics holds impulse response analysis results.
type Metrics struct {
	PeakIndex    int     // sample index of the absolute maximum
	Peak         float64 // signed value at PeakIndex
	Energy       float64 // sum of squared samples
	CenterTime   float64 // energy centroid in seconds
	DecaySamples int     // samples after the peak to reach -60 dB remaining energy; -1 if never
	RT60         float64 // -60 dB decay time in seconds (extrapolated from T30 or T20); 0 if unknown
}

// Analyzer computes IR metrics from impulse response data.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

// Analyze computes all IR metrics.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}

	if a.SampleRate <= 0 {
		return Metrics{}, ErrInvalidSampleRate
	}

	peakIdx := findPeak(ir)
	fromPeak := ir[peakIdx:]
	schroeder := schroederIntegral(fromPeak)

	m := Metrics{
		PeakIndex:    peakIdx,
		Peak:         ir[peakIdx],
		Energy:       f64.DotProduct(ir, ir),
		CenterTime:   a.centerTime(ir),
		DecaySamples: -1,
	}

	for i, v := range schroeder {
		if v <= decayFloorDB {
			m.DecaySamples = i
			break
		}
	}

	// Prefer T30, fall back to T20.
	m.RT60 = a.reverbTime(schroeder, -5, -35)
	if m.RT60 == 0 {
		m.RT60 = a.reverbTime(schroeder, -5, -25)
	}

	return m, nil
}

// schroederIntegral is the Schroeder backward integral of the squared
// response, in dB relative to the total energy:
//
//	S(t) = 10*log10( sum_{i>=t} h[i]^2 / sum_i h[i]^2 )
func schroederIntegral(ir []float64) []float64 {
	n := len(ir)
	result := make([]float64, n)

	var cumSum float64
	for i := n - 1; i >= 0; i-- {
		cumSum += ir[i] * ir[i]
		result[i] = cumSum
	}

	totalEnergy := result[0]
	if totalEnergy <= 0 {
		return result
	}

	for i := range result {
		ratio := result[i] / totalEnergy
		if ratio <= 0 {
			result[i] = -400 // floor
		} else {
			result[i] = 10 * math.Log10(ratio)
		}
	}

	return result
}

// reverbTime fits a line to the Schroeder curve between startDB and endDB
// and extrapolates it to -60 dB.
func (a *Analyzer) reverbTime(schroeder []float64, startDB, endDB float64) float64 {
	if len(schroeder) == 0 || a.SampleRate <= 0 {
		return 0
	}

	startIdx := -1
	endIdx := -1

	for i, v := range schroeder {
		if startIdx < 0 && v <= startDB {
			startIdx = i
		}

		if startIdx >= 0 && v <= endDB {
			endIdx = i
			break
		}
	}

	if startIdx < 0 || endIdx <= startIdx {
		return 0
	}

	n := endIdx - startIdx + 1

	var sumX, sumY, sumXX, sumXY float64

	for i := startIdx; i <= endIdx; i++ {
		x := float64(i - startIdx)
		y := schroeder[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	nf := float64(n)

	denom := nf*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	// dB per sample
	slope := (nf*sumXY - sumX*sumY) / denom
	if slope >= 0 {
		return 0
	}

	return -60.0 / (slope * a.SampleRate)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var numerator, denominator float64

	for i, v := range ir {
		e := v * v
		numerator += float64(i) * e
		denominator += e
	}

	if denominator <= 0 {
		return 0
	}

	return numerator / denominator / a.SampleRate
}

// findPeak returns the index of the absolute maximum in the IR.
func findPeak(ir []float64) int {
	peakIdx := 0
	peakVal := 0.0

	for i, v := range ir {
		av := math.Abs(v)
		if av > peakVal {
			peakVal = av
			peakIdx = i
		}
	}

	return peakIdx
}
