// Package iir designs classical digital IIR filters in transfer-function form.
//
// A design starts from an analog prototype (Butterworth, Chebyshev type I/II
// or elliptic) in zero/pole/gain form, applies the analog frequency
// transformation for the requested filter type (lowpass, highpass, bandpass,
// bandstop), maps it to the z-plane with the bilinear transform and finally
// expands zeros and poles into numerator/denominator polynomials.
//
// Frequencies are normalized so that 1.0 is the Nyquist frequency. Every
// cutoff is a pass-band edge: the response there is -Ripple dB for all four
// approximations. Suppression shapes only Chebyshev II and elliptic designs.
// The
// returned vectors have order+1 taps in ascending powers of z^-1 with A[0]
// equal to one.
//
// The package is used through an [Engine], which is opened once per request
// and closed when the caller is done with it.
package iir
