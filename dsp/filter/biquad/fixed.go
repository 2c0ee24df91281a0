package biquad

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
)

// ErrCoefficientOverflow is returned when a coefficient does not fit the
// Q15.16 range.
var ErrCoefficientOverflow = errors.New("biquad: coefficient out of Q16 range")

// FixedCoefficients is a biquad quantized to Q15.16. It uses the same
// sign convention as [Coefficients].
type FixedCoefficients struct {
	B0, B1, B2 fixed.Q16
	A1, A2     fixed.Q16
}

// FixedState holds the two complex delay registers w[n-1], w[n-2] of one
// section.
type FixedState [2]fixed.Complex

// Quantize rounds c to Q15.16. It fails instead of saturating so a
// clipped coefficient never silently changes the filter.
func (c Coefficients) Quantize() (FixedCoefficients, error) {
	vals := [5]float64{c.B0, c.B1, c.B2, c.A1, c.A2}
	for i, v := range vals {
		if !fixed.InRange(v) {
			return FixedCoefficients{}, fmt.Errorf("%w: %s = %g", ErrCoefficientOverflow, coeffNames[i], v)
		}
	}

	return FixedCoefficients{
		B0: fixed.FromFloat(c.B0),
		B1: fixed.FromFloat(c.B1),
		B2: fixed.FromFloat(c.B2),
		A1: fixed.FromFloat(c.A1),
		A2: fixed.FromFloat(c.A2),
	}, nil
}

var coeffNames = [5]string{"b0", "b1", "b2", "a1", "a2"}

// QuantizeAll quantizes every section, reporting the first failing index.
func QuantizeAll(coeffs []Coefficients) ([]FixedCoefficients, error) {
	out := make([]FixedCoefficients, len(coeffs))
	for i := range coeffs {
		q, err := coeffs[i].Quantize()
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		out[i] = q
	}
	return out, nil
}

// Float returns the exact float64 value of the quantized coefficients.
func (c FixedCoefficients) Float() Coefficients {
	return Coefficients{
		B0: c.B0.Float(),
		B1: c.B1.Float(),
		B2: c.B2.Float(),
		A1: c.A1.Float(),
		A2: c.A2.Float(),
	}
}

// Step filters one complex sample through the section, updating st.
//
// The section runs in Direct Form II: st holds w[n-1] and w[n-2] of the
// recursion w[n] = x[n] - a1 w[n-1] - a2 w[n-2], and the output is
// y[n] = b0 w[n] + b1 w[n-1] + b2 w[n-2]. Both sums are exact until a
// single final quantization. The recursion is truncated toward zero, so
// with zero input the registers decay to exactly zero instead of holding
// a rounding limit cycle. The output is rounded to nearest.
func (c *FixedCoefficients) Step(st *FixedState, x fixed.Complex) fixed.Complex {
	w := fixed.Complex{
		Re: c.recurse(x.Re, st[0].Re, st[1].Re),
		Im: c.recurse(x.Im, st[0].Im, st[1].Im),
	}
	y := fixed.Complex{
		Re: c.output(w.Re, st[0].Re, st[1].Re),
		Im: c.output(w.Im, st[0].Im, st[1].Im),
	}
	st[1] = st[0]
	st[0] = w
	return y
}

func (c *FixedCoefficients) recurse(x, w1, w2 fixed.Q16) fixed.Q16 {
	var acc fixed.Acc
	acc.Add(x)
	acc.MulSub(c.A1, w1)
	acc.MulSub(c.A2, w2)
	return acc.Truncate()
}

func (c *FixedCoefficients) output(w, w1, w2 fixed.Q16) fixed.Q16 {
	var acc fixed.Acc
	acc.MulAdd(c.B0, w)
	acc.MulAdd(c.B1, w1)
	acc.MulAdd(c.B2, w2)
	return acc.Round()
}

// Reset zeroes the registers.
func (st *FixedState) Reset() {
	*st = FixedState{}
}
