// Package prototype designs normalized analog lowpass prototypes.
//
// Every prototype is returned in zero-pole-gain form with its passband
// edge at 1 rad/s, except Chebyshev type II whose stopband edge is at
// 1 rad/s. Bessel prototypes are normalized to -3 dB at 1 rad/s.
package prototype

import (
	"errors"
	"math"
	"math/cmplx"
)

var (
	// ErrInvalidOrder is returned for orders below 1.
	ErrInvalidOrder = errors.New("prototype: order must be positive")

	// ErrUnsupportedOrder is returned for Bessel orders above MaxBesselOrder.
	ErrUnsupportedOrder = errors.New("prototype: order not supported")

	// ErrInvalidRipple is returned for non-positive or non-finite passband ripple.
	ErrInvalidRipple = errors.New("prototype: passband ripple must be positive")

	// ErrInvalidAttenuation is returned for stopband attenuation that is
	// non-positive, non-finite, or not above the passband ripple.
	ErrInvalidAttenuation = errors.New("prototype: stopband attenuation must be positive and exceed the ripple")

	// ErrNoConvergence is returned when a root search fails.
	ErrNoConvergence = errors.New("prototype: root search did not converge")
)

// ZPK is a transfer function in zero-pole-gain form:
//
//	H(s) = Gain * prod(s - Zeros[i]) / prod(s - Poles[i])
//
// Complex roots appear together with their conjugates.
type ZPK struct {
	Zeros []complex128
	Poles []complex128
	Gain  float64
}

// Order returns the number of poles.
func (z ZPK) Order() int { return len(z.Poles) }

// Eval returns H(s).
func (z ZPK) Eval(s complex128) complex128 {
	h := complex(z.Gain, 0)
	for _, r := range z.Zeros {
		h *= s - r
	}
	for _, p := range z.Poles {
		h /= s - p
	}
	return h
}

// MagnitudeDB returns 20*log10|H(jw)| for an analog prototype.
func (z ZPK) MagnitudeDB(w float64) float64 {
	return 20 * math.Log10(cmplx.Abs(z.Eval(complex(0, w))))
}

// Clone returns a deep copy.
func (z ZPK) Clone() ZPK {
	return ZPK{
		Zeros: append([]complex128(nil), z.Zeros...),
		Poles: append([]complex128(nil), z.Poles...),
		Gain:  z.Gain,
	}
}

// dcGain returns the gain that makes |H(0)| equal h0.
func dcGain(zeros, poles []complex128, h0 float64) float64 {
	g := complex(h0, 0)
	for _, p := range poles {
		g *= -p
	}
	for _, r := range zeros {
		g /= -r
	}
	return math.Abs(real(g))
}

func validOrder(n int) error {
	if n < 1 {
		return ErrInvalidOrder
	}
	return nil
}

func validDB(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// rippleEps returns the ripple factor sqrt(10^(dB/10) - 1).
func rippleEps(db float64) float64 {
	return math.Sqrt(math.Pow(10, db/10) - 1)
}
