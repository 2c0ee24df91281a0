package prototype

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-iirinterp/internal/polyroot"
)

// MaxBesselOrder is the highest supported Bessel order. Root finding on
// the reverse Bessel polynomial loses accuracy beyond it.
const MaxBesselOrder = 10

// Bessel returns the order-n Bessel (maximally flat group delay) prototype,
// scaled so its magnitude is -3 dB at 1 rad/s.
func Bessel(n int) (ZPK, error) {
	if err := validOrder(n); err != nil {
		return ZPK{}, err
	}
	if n > MaxBesselOrder {
		return ZPK{}, ErrUnsupportedOrder
	}

	poles, err := polyroot.RealRoots(reverseBessel(n))
	if err != nil {
		return ZPK{}, ErrNoConvergence
	}

	proto := ZPK{Poles: poles, Gain: dcGain(nil, poles, 1)}
	wc, err := halfPowerFrequency(proto)
	if err != nil {
		return ZPK{}, err
	}

	for i := range poles {
		poles[i] /= complex(wc, 0)
	}
	proto.Gain = dcGain(nil, poles, 1)

	return proto, nil
}

// reverseBessel returns the coefficients of the order-n reverse Bessel
// polynomial, highest power first:
//
//	a_k = (2n-k)! / (2^(n-k) k! (n-k)!)
func reverseBessel(n int) []float64 {
	c := make([]float64, n+1)
	// a_n = 1 and a_{k-1} = a_k * (2n-k+1)(k) / (2(n-k+1)) walking down.
	a := 1.0
	c[0] = a
	for k := n; k > 0; k-- {
		a *= float64(2*n-k+1) * float64(k) / (2 * float64(n-k+1))
		c[n-k+1] = a
	}
	return c
}

// halfPowerFrequency finds w with |H(jw)|^2 = 1/2 by bisection. The
// magnitude of an all-pole lowpass decreases monotonically.
func halfPowerFrequency(z ZPK) (float64, error) {
	target := 1 / math.Sqrt2
	mag := func(w float64) float64 { return cmplx.Abs(z.Eval(complex(0, w))) }

	lo, hi := 0.0, 1.0
	for mag(hi) > target {
		hi *= 2
		if hi > 1e6 {
			return 0, ErrNoConvergence
		}
	}

	for range 200 {
		mid := (lo + hi) / 2
		if mag(mid) > target {
			lo = mid
		} else {
			hi = mid
		}
		if hi-lo <= 1e-15*hi {
			break
		}
	}
	return (lo + hi) / 2, nil
}
