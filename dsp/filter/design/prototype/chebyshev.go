package prototype

import "math"

// chebyshevPoles returns the type I poles for ripple factor eps. The
// middle pole of an odd order is exactly real.
func chebyshevPoles(n int, eps float64) []complex128 {
	mu := math.Asinh(1/eps) / float64(n)
	sh, ch := math.Sinh(mu), math.Cosh(mu)

	poles := make([]complex128, n)
	for k := range n {
		theta := math.Pi * float64(2*k+1) / float64(2*n)
		if 2*k+1 == n {
			poles[k] = complex(-sh, 0)
			continue
		}
		poles[k] = complex(-sh*math.Sin(theta), ch*math.Cos(theta))
	}
	return poles
}

// Chebyshev1 returns the order-n Chebyshev type I prototype with rippleDB
// of equiripple passband. Even orders sit at -rippleDB at DC.
func Chebyshev1(n int, rippleDB float64) (ZPK, error) {
	if err := validOrder(n); err != nil {
		return ZPK{}, err
	}
	if !validDB(rippleDB) {
		return ZPK{}, ErrInvalidRipple
	}

	eps := rippleEps(rippleDB)
	poles := chebyshevPoles(n, eps)

	h0 := 1.0
	if n%2 == 0 {
		h0 = 1 / math.Sqrt(1+eps*eps)
	}

	return ZPK{Poles: poles, Gain: dcGain(nil, poles, h0)}, nil
}

// Chebyshev2 returns the order-n Chebyshev type II (inverse Chebyshev)
// prototype. The stopband starts at 1 rad/s and is at least stopbandDB
// down; the passband is monotonic.
func Chebyshev2(n int, stopbandDB float64) (ZPK, error) {
	if err := validOrder(n); err != nil {
		return ZPK{}, err
	}
	if !validDB(stopbandDB) {
		return ZPK{}, ErrInvalidAttenuation
	}

	eps := 1 / rippleEps(stopbandDB)
	poles := chebyshevPoles(n, eps)
	for i, p := range poles {
		poles[i] = 1 / p
	}

	zeros := make([]complex128, 0, n)
	for k := range n {
		if 2*k+1 == n {
			continue
		}
		theta := math.Pi * float64(2*k+1) / float64(2*n)
		zeros = append(zeros, complex(0, 1/math.Cos(theta)))
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: dcGain(zeros, poles, 1)}, nil
}
