package listing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadBits is returned by ParseBits for malformed input.
var ErrBadBits = errors.New("listing: malformed bit pattern")

const (
	decWidth = 25
	hexWidth = 23
	hexPrec  = 14
)

// Dec renders v like C's "%25.17E".
func Dec(v float64) string {
	if s, ok := nonFinite(v); ok {
		return fmt.Sprintf("%*s", decWidth, s)
	}
	return fmt.Sprintf("%*.17E", decWidth, v)
}

// HexFloat renders v like C's "%23.14A": upper-case hexadecimal mantissa
// with 14 fraction digits and a decimal exponent without leading zeros, for
// example 0X1.91EB851EB851F0P+1 for 3.14.
func HexFloat(v float64) string {
	if s, ok := nonFinite(v); ok {
		return fmt.Sprintf("%*s", hexWidth, s)
	}

	s := strconv.FormatFloat(v, 'X', hexPrec, 64)
	// Go pads the exponent to two digits; C does not.
	if i := strings.LastIndexByte(s, 'P'); i >= 0 && i+2 < len(s) {
		exp := strings.TrimLeft(s[i+2:], "0")
		if exp == "" {
			exp = "0"
		}
		s = s[:i+2] + exp
	}
	return fmt.Sprintf("%*s", hexWidth, s)
}

// Bits renders the IEEE 754 bit pattern of v as upper-case hex digits
// without prefix or padding.
func Bits(v float64) string {
	return fmt.Sprintf("%X", math.Float64bits(v))
}

// short renders v like C's "%.8G".
func short(v float64) string {
	if s, ok := nonFinite(v); ok {
		return s
	}
	return fmt.Sprintf("%.8G", v)
}

// ParseBits decodes a bit pattern produced by Bits, optionally with a 0x
// prefix and a U suffix, back to the exact double.
func ParseBits(s string) (float64, error) {
	t := strings.TrimSpace(s)
	t = strings.TrimSuffix(strings.TrimSuffix(t, "U"), "u")
	if len(t) > 1 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') {
		t = t[2:]
	}
	if t == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadBits, s)
	}
	u, err := strconv.ParseUint(t, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadBits, s)
	}
	return math.Float64frombits(u), nil
}

// nonFinite returns the C spelling of infinities and NaN.
func nonFinite(v float64) (string, bool) {
	switch {
	case math.IsNaN(v):
		return "NAN", true
	case math.IsInf(v, 1):
		return "INF", true
	case math.IsInf(v, -1):
		return "-INF", true
	}
	return "", false
}
