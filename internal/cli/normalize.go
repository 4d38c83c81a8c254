package cli

import "github.com/cwbudde/gen-iir/dsp/filter/design/iir"

// Limits for range validation.
const (
	MinOrder       = 1
	MaxOrder       = iir.MaxOrder
	MaxSuppression = 500.0
)

// Normalize applies the band-filter order rules and validates every design
// parameter. It does nothing when an informational mode was requested.
func (p *Params) Normalize() ([]Warning, error) {
	if p.Informational() {
		return nil, nil
	}

	var warns []Warning
	if p.IsBand() {
		switch {
		case !p.Order.Set:
			p.Order.Val *= 2
		case p.Order.Val%2 != 0:
			warns = append(warns, warnf("the order of band pass/stop filter should be even: %d -> %d",
				p.Order.Val, p.Order.Val+1))
			p.Order.Val++
		}
	} else {
		p.CutoffRight.Val = 0
	}

	if p.Order.Val < MinOrder || p.Order.Val > MaxOrder {
		return warns, errorf(KindRange, "", "nonsense filter order specified: %d; should be in [%d..%d]",
			p.Order.Val, MinOrder, MaxOrder)
	}
	if !(p.Suppression.Val > 0 && p.Suppression.Val <= MaxSuppression) {
		return warns, errorf(KindRange, "", "filter suppression %G should be in (0..%G] dB",
			p.Suppression.Val, MaxSuppression)
	}
	if !(p.Ripple.Val > 0 && p.Ripple.Val <= p.Suppression.Val) {
		return warns, errorf(KindRange, "", "ripple %G should be in (0..<suppression> == %G] dB",
			p.Ripple.Val, p.Suppression.Val)
	}
	if !(p.Cutoff.Val > 0 && p.Cutoff.Val < 1) {
		return warns, errorf(KindRange, "", "[left] cutoff frequency %G should be in (0..1)", p.Cutoff.Val)
	}
	if p.IsBand() && !(p.CutoffRight.Val > p.Cutoff.Val && p.CutoffRight.Val < 1) {
		return warns, errorf(KindRange, "", "right cutoff frequency %G should be in (<cutoff> == %G..1)",
			p.CutoffRight.Val, p.Cutoff.Val)
	}
	return warns, nil
}
