package design

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
	"github.com/cwbudde/algo-iirinterp/dsp/filter/design/prototype"
	"github.com/cwbudde/algo-iirinterp/internal/polyroot"
)

// Design returns the floating-point section cascade for p, ordered from
// least to most resonant.
func Design(p Params) ([]biquad.Coefficients, error) {
	zeros, poles, h0, err := digitalRoots(p)
	if err != nil {
		return nil, err
	}

	sections, err := factorSections(zeros, poles, referencePoint(p), p.Band == Bandpass, h0)
	if err != nil {
		return nil, err
	}
	if r := biquad.MaxPoleRadius(sections); r >= 1 {
		return nil, fmt.Errorf("%w: pole radius %g", ErrDegenerate, r)
	}
	return sections, nil
}

// DesignFixed designs p and quantizes the cascade to Q15.16.
func DesignFixed(p Params) ([]biquad.FixedCoefficients, error) {
	sections, err := Design(p)
	if err != nil {
		return nil, err
	}
	return Quantize(sections)
}

// Quantize converts sections to Q15.16. It fails when a coefficient does
// not fit or when rounding makes a section unstable.
func Quantize(sections []biquad.Coefficients) ([]biquad.FixedCoefficients, error) {
	q, err := biquad.QuantizeAll(sections)
	if err != nil {
		if errors.Is(err, biquad.ErrCoefficientOverflow) {
			return nil, fmt.Errorf("%w: %w", ErrCoefficientOverflow, err)
		}
		return nil, err
	}

	for i := range q {
		f := q[i].Float()
		if r := f.PoleRadius(); r >= 1 {
			return nil, fmt.Errorf("%w: section %d pole radius %g", ErrQuantizedUnstable, i, r)
		}
	}
	return q, nil
}

// DesignZPK returns the digital zeros, poles and gain of the design. The
// gain matches the cascade returned by [Design].
func DesignZPK(p Params) (prototype.ZPK, error) {
	zeros, poles, h0, err := digitalRoots(p)
	if err != nil {
		return prototype.ZPK{}, err
	}

	z := prototype.ZPK{Zeros: zeros, Poles: poles, Gain: 1}
	h := z.Eval(referencePoint(p))
	g := real(h)
	if p.Band == Bandpass {
		g = cmplx.Abs(h)
	}
	if g == 0 {
		return prototype.ZPK{}, fmt.Errorf("%w: zero gain at reference point", ErrDegenerate)
	}
	z.Gain = h0 / g
	return z, nil
}

// TransferFunction returns the expanded numerator b and denominator a in
// ascending powers of z^-1, with a[0] = 1. High orders lose precision in
// this form; run filters from [Design] instead.
func TransferFunction(p Params) (b, a []float64, err error) {
	z, err := DesignZPK(p)
	if err != nil {
		return nil, nil, err
	}

	b = polyroot.Expand(z.Zeros)
	for i := range b {
		b[i] *= z.Gain
	}
	a = polyroot.Expand(z.Poles)
	return b, a, nil
}
