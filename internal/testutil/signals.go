package testutil

import "math"

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	return Geometric(1, n)
}

// Geometric returns r^0, r^1, ..., r^(n-1): the impulse response of the
// one-pole filter 1 / (1 - r z^-1).
func Geometric(r float64, n int) []float64 {
	out := make([]float64, n)
	v := 1.0
	for i := range out {
		out[i] = v
		v *= r
	}
	return out
}
