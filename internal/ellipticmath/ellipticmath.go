// Package ellipticmath implements the Jacobi elliptic functions needed for
// elliptic (Cauer) filter design.
//
// Arguments are normalized to the quarter period K, so cd(0) = 1 and
// cd(1) = 0 for every modulus. The implementation uses descending Landen
// transformations.
package ellipticmath

import (
	"math"
	"math/cmplx"
)

// Tol is the Landen sequence convergence threshold.
const Tol = 1e-15

// kMin is the modulus below which closed-form asymptotics replace Landen.
const kMin = 1e-6

// Landen returns the descending Landen moduli of k, stopping once a
// modulus falls below Tol. Moduli 0 and 1 are fixed points.
func Landen(k float64) []float64 {
	if k == 0 || k == 1 {
		return []float64{k}
	}
	var v []float64
	for k > Tol {
		t := k / (1 + math.Sqrt((1-k)*(1+k)))
		k = t * t
		v = append(v, k)
	}
	return v
}

func landenK(v []float64) float64 {
	prod := 1.0
	for _, x := range v {
		prod *= 1 + x
	}
	return prod * math.Pi / 2
}

// K returns the complete elliptic integral K(k) and its complement
// K'(k) = K(sqrt(1-k^2)).
func K(k float64) (float64, float64) {
	kmax := math.Sqrt(1 - kMin*kMin)

	var kk, kp float64
	switch {
	case k == 1:
		kk = math.Inf(1)
	case k > kmax:
		c := math.Sqrt((1 - k) * (1 + k))
		l := -math.Log(c / 4)
		kk = l + (l-1)*c*c/4
	default:
		kk = landenK(Landen(k))
	}

	switch {
	case k == 0:
		kp = math.Inf(1)
	case k < kMin:
		l := -math.Log(k / 4)
		kp = l + (l-1)*k*k/4
	default:
		kp = landenK(Landen(math.Sqrt((1 - k) * (1 + k))))
	}

	return kk, kp
}

// CD evaluates cd(uK, k) for a complex normalized argument u.
func CD(u complex128, k float64) complex128 {
	v := Landen(k)
	w := cmplx.Cos(u * math.Pi / 2)
	for i := len(v) - 1; i >= 0; i-- {
		vi := complex(v[i], 0)
		w = (1 + vi) * w / (1 + vi*w*w)
	}
	return w
}

// SN evaluates sn(uK, k) for a complex normalized argument u.
func SN(u complex128, k float64) complex128 {
	return CD(1-u, k)
}

// ACD inverts CD: it returns u with cd(uK, k) = w, with the real part
// reduced modulo 4 and the imaginary part modulo 2K'/K.
func ACD(w complex128, k float64) complex128 {
	v := Landen(k)
	prev := k
	for _, vi := range v {
		w = w / (1 + cmplx.Sqrt(1-w*w*complex(prev*prev, 0))) * 2 / complex(1+vi, 0)
		prev = vi
	}

	u := 2 / math.Pi * cmplx.Acos(w)
	kk, kp := K(k)

	return complex(symmetricRemainder(real(u), 4), symmetricRemainder(imag(u), 2*kp/kk))
}

// ASN inverts SN.
func ASN(w complex128, k float64) complex128 {
	return 1 - ACD(w, k)
}

// Degree solves the degree equation N K'/K = K1'/K1 for the modulus k
// given the filter order n and the discrimination modulus k1.
func Degree(n int, k1 float64) float64 {
	if k1 < kMin {
		return degreeSeries(n, k1)
	}

	kc := math.Sqrt((1 - k1) * (1 + k1))
	prod := 1.0
	for i := 1; i <= n/2; i++ {
		u := float64(2*i-1) / float64(n)
		prod *= real(SN(complex(u, 0), kc))
	}
	kp := math.Pow(kc, float64(n)) * math.Pow(prod, 4)

	return math.Sqrt(1 - kp*kp)
}

// degreeSeries solves the degree equation through the nome for very
// small k1, where the product form loses precision.
func degreeSeries(n int, k1 float64) float64 {
	const terms = 7

	kk, kp := K(k1)
	q := math.Exp(-math.Pi * kp / kk)
	q1 := math.Pow(q, 1/float64(n))

	// Theta-series ratio with exponents m(m+1) and m^2.
	var num, den float64
	for m := 1; m <= terms; m++ {
		fm := float64(m)
		num += math.Pow(q1, fm*(fm+1))
		den += math.Pow(q1, fm*fm)
	}

	r := (1 + num) / (1 + 2*den)
	return 4 * math.Sqrt(q1) * r * r
}

// symmetricRemainder maps x modulo y into [-y/2, y/2].
func symmetricRemainder(x, y float64) float64 {
	z := math.Remainder(x, y)
	if math.Abs(z) > y/2 {
		z -= math.Copysign(y, z)
	}
	return z
}
