package design

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/design/prototype"
)

// analogPrototype dispatches to the prototype family.
func analogPrototype(p Params) (prototype.ZPK, error) {
	var (
		z   prototype.ZPK
		err error
	)
	switch p.Family {
	case Butterworth:
		z, err = prototype.Butterworth(p.Order)
	case Chebyshev1:
		z, err = prototype.Chebyshev1(p.Order, p.RippleDB)
	case Chebyshev2:
		z, err = prototype.Chebyshev2(p.Order, p.StopbandDB)
	case Elliptic:
		z, err = prototype.Elliptic(p.Order, p.RippleDB, p.StopbandDB)
	case Bessel:
		z, err = prototype.Bessel(p.Order)
	default:
		return prototype.ZPK{}, fmt.Errorf("%w: %v", ErrInvalidFamily, p.Family)
	}
	if err != nil {
		return prototype.ZPK{}, fmt.Errorf("%w: %v prototype: %w", ErrDegenerate, p.Family, err)
	}
	return z, nil
}

// prewarp returns the bilinear scale m that puts the analog edge at 1 rad/s
// on the requested digital band edge.
func prewarp(p Params) float64 {
	wc := 2 * math.Pi * p.Cutoff
	w0 := 2 * math.Pi * p.Center
	switch p.Band {
	case Highpass:
		return 1 / math.Tan(wc/2)
	case Bandpass:
		return math.Abs((math.Cos(wc) - math.Cos(w0)) / math.Sin(wc))
	case Bandstop:
		return math.Abs(math.Sin(wc) / (math.Cos(wc) - math.Cos(w0)))
	default:
		return math.Tan(wc / 2)
	}
}

// bilinear maps analog roots through z = (1 + m s) / (1 - m s). Zeros at
// infinity land at z = -1.
func bilinear(a prototype.ZPK, m float64) (zeros, poles []complex128, err error) {
	mc := complex(m, 0)
	mapRoot := func(s complex128) (complex128, error) {
		den := 1 - mc*s
		if den == 0 {
			return 0, fmt.Errorf("%w: analog root %v maps to infinity", ErrDegenerate, s)
		}
		return (1 + mc*s) / den, nil
	}

	zeros = make([]complex128, 0, len(a.Poles))
	for _, s := range a.Zeros {
		z, err := mapRoot(s)
		if err != nil {
			return nil, nil, err
		}
		zeros = append(zeros, z)
	}
	for len(zeros) < len(a.Poles) {
		zeros = append(zeros, -1)
	}

	poles = make([]complex128, 0, len(a.Poles))
	for _, s := range a.Poles {
		z, err := mapRoot(s)
		if err != nil {
			return nil, nil, err
		}
		poles = append(poles, z)
	}
	return zeros, poles, nil
}

// negate maps z -> -z, turning a lowpass into a highpass.
func negate(roots []complex128) {
	for i := range roots {
		roots[i] = -roots[i]
	}
}

// lowpassToBandpass maps every lowpass root z to the two roots of
// zeta^2 - c0 (1 + z) zeta + z = 0, where c0 = cos(2 pi f0). DC moves to
// the band center and the order doubles.
func lowpassToBandpass(roots []complex128, center float64) []complex128 {
	c0 := complex(math.Cos(2*math.Pi*center), 0)
	out := make([]complex128, 0, 2*len(roots))
	for _, z := range roots {
		t := c0 * (1 + z)
		d := cmplx.Sqrt(t*t - 4*z)
		out = append(out, (t+d)/2, (t-d)/2)
	}
	return out
}

// referencePoint is where the passband gain is pinned: DC for lowpass and
// bandstop, Nyquist for highpass and the center for bandpass.
func referencePoint(p Params) complex128 {
	switch p.Band {
	case Highpass:
		return -1
	case Bandpass:
		return cmplx.Rect(1, 2*math.Pi*p.Center)
	default:
		return 1
	}
}

// digitalRoots runs the analog prototype through pre-warp, bilinear and
// band transforms. h0 is the prototype's DC magnitude, which the design
// keeps at the reference point.
func digitalRoots(p Params) (zeros, poles []complex128, h0 float64, err error) {
	if err := p.Validate(); err != nil {
		return nil, nil, 0, err
	}

	a, err := analogPrototype(p)
	if err != nil {
		return nil, nil, 0, err
	}
	h0 = cmplx.Abs(a.Eval(0))

	zeros, poles, err = bilinear(a, prewarp(p))
	if err != nil {
		return nil, nil, 0, err
	}

	switch p.Band {
	case Highpass:
		negate(zeros)
		negate(poles)
	case Bandpass:
		zeros = lowpassToBandpass(zeros, p.Center)
		poles = lowpassToBandpass(poles, p.Center)
	case Bandstop:
		negate(zeros)
		negate(poles)
		zeros = lowpassToBandpass(zeros, p.Center)
		poles = lowpassToBandpass(poles, p.Center)
	}

	return zeros, poles, h0, nil
}
