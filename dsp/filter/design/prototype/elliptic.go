package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iirinterp/internal/ellipticmath"
)

// Elliptic returns the order-n elliptic (Cauer) prototype with rippleDB
// equiripple passband and at least stopbandDB attenuation in the stopband.
// The stopband edge follows from the degree equation and is available from
// EllipticStopbandEdge.
func Elliptic(n int, rippleDB, stopbandDB float64) (ZPK, error) {
	if err := validOrder(n); err != nil {
		return ZPK{}, err
	}
	if !validDB(rippleDB) {
		return ZPK{}, ErrInvalidRipple
	}
	if !validDB(stopbandDB) || stopbandDB <= rippleDB {
		return ZPK{}, ErrInvalidAttenuation
	}

	ep := rippleEps(rippleDB)
	k1 := ep / rippleEps(stopbandDB)
	k := ellipticmath.Degree(n, k1)

	half := n / 2
	zeros := make([]complex128, 0, 2*half)
	poles := make([]complex128, 0, n)

	// v0 is real: asn of an imaginary argument is imaginary.
	v0 := -1i * ellipticmath.ASN(complex(0, 1/ep), k1) / complex(float64(n), 0)

	for i := 1; i <= half; i++ {
		u := float64(2*i-1) / float64(n)

		zeta := real(ellipticmath.CD(complex(u, 0), k))
		z := complex(0, 1/(k*zeta))
		zeros = append(zeros, z, cmplx.Conj(z))

		p := 1i * ellipticmath.CD(complex(u, 0)-1i*v0, k)
		poles = append(poles, p, cmplx.Conj(p))
	}
	if n%2 == 1 {
		p0 := 1i * ellipticmath.SN(1i*v0, k)
		poles = append(poles, complex(real(p0), 0))
	}

	for _, p := range poles {
		if real(p) >= 0 {
			return ZPK{}, ErrNoConvergence
		}
	}

	h0 := 1.0
	if n%2 == 0 {
		h0 = 1 / math.Sqrt(1+ep*ep)
	}

	return ZPK{Zeros: zeros, Poles: poles, Gain: dcGain(zeros, poles, h0)}, nil
}

// EllipticStopbandEdge returns the normalized stopband edge 1/k of the
// elliptic prototype with the same parameters.
func EllipticStopbandEdge(n int, rippleDB, stopbandDB float64) float64 {
	k1 := rippleEps(rippleDB) / rippleEps(stopbandDB)
	return 1 / ellipticmath.Degree(n, k1)
}
