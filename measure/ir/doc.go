// Package ir computes and analyzes the impulse response of an IIR filter.
//
// [Compute] runs the difference equation of a designed filter on a unit
// impulse. [Analyzer] derives decay metrics from the Schroeder backward
// integral of the squared response:
//
//   - PeakIndex: sample of the absolute maximum
//   - CenterTime: temporal energy centroid
//   - DecaySamples: samples after the peak until the remaining energy is
//     60 dB below the total
//   - RT60: -60 dB decay time extrapolated from the -5..-35 dB slope
//
// [WriteWAV] stores a response as mono PCM so it can be auditioned or loaded
// into a convolution engine.
//
// # Usage
//
//	h, err := ir.Compute(c.B, c.A, 8192)
//	metrics, err := ir.NewAnalyzer(48000).Analyze(h)
//	fmt.Printf("peak at %d, -60 dB after %d samples\n", metrics.PeakIndex, metrics.DecaySamples)
package ir
