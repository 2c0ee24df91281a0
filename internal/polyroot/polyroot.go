// Package polyroot finds and expands polynomial roots for filter design.
//
// Coefficients are in descending power order throughout:
// c[0]*x^n + c[1]*x^(n-1) + ... + c[n].
package polyroot

import (
	"errors"
	"math"
	"math/cmplx"
	"slices"
)

// ErrDegeneratePolynomial is returned when a polynomial has degenerate
// coefficients (leading coefficient zero, convergence failure, etc.).
var ErrDegeneratePolynomial = errors.New("polyroot: degenerate polynomial")

// ConjugateTol is the relative tolerance for conjugate pair matching.
const ConjugateTol = 1e-7

// RealRoots returns the roots of a polynomial with real coefficients.
// Conjugate pairs are made exactly symmetric and near-real roots are
// snapped to the real axis, so callers can group them without tolerance
// games. The result is sorted by real part, then imaginary part.
func RealRoots(coeff []float64) ([]complex128, error) {
	c := make([]complex128, len(coeff))
	for i, v := range coeff {
		c[i] = complex(v, 0)
	}

	roots, err := DurandKerner(c)
	if err != nil {
		return nil, err
	}

	for i, r := range roots {
		if math.Abs(imag(r)) <= ConjugateTol*math.Max(1, cmplx.Abs(r)) {
			roots[i] = complex(real(r), 0)
		}
	}

	used := make([]bool, len(roots))
	for i, r := range roots {
		if used[i] || imag(r) == 0 {
			continue
		}
		j := closestConjugate(roots, used, i)
		if j < 0 || !IsConjugate(r, roots[j], 1e-5) {
			return nil, ErrDegeneratePolynomial
		}
		re := (real(r) + real(roots[j])) / 2
		im := (math.Abs(imag(r)) + math.Abs(imag(roots[j]))) / 2
		roots[i] = complex(re, im)
		roots[j] = complex(re, -im)
		used[i], used[j] = true, true
	}

	slices.SortFunc(roots, func(a, b complex128) int {
		if real(a) != real(b) {
			if real(a) < real(b) {
				return -1
			}
			return 1
		}
		switch {
		case imag(a) < imag(b):
			return -1
		case imag(a) > imag(b):
			return 1
		}
		return 0
	})

	return roots, nil
}

func closestConjugate(roots []complex128, used []bool, i int) int {
	conj := cmplx.Conj(roots[i])
	best := -1
	bestDist := math.MaxFloat64
	for j := range roots {
		if i == j || used[j] {
			continue
		}
		if d := cmplx.Abs(roots[j] - conj); d < bestDist {
			bestDist = d
			best = j
		}
	}
	return best
}

// DurandKerner finds all roots of a polynomial using the Durand-Kerner
// (Weierstrass) simultaneous iteration. Initial guesses are spread on a
// circle whose radius is the geometric mean of the root magnitudes.
func DurandKerner(coeff []complex128) ([]complex128, error) {
	if len(coeff) < 2 || coeff[0] == 0 {
		return nil, ErrDegeneratePolynomial
	}

	n := len(coeff) - 1
	norm := make([]complex128, len(coeff))
	for i := range coeff {
		norm[i] = coeff[i] / coeff[0]
	}

	radius := math.Pow(cmplx.Abs(norm[n]), 1/float64(n))
	if radius == 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		radius = 1
	}

	roots := make([]complex128, n)
	for i := range n {
		angle := 2*math.Pi*float64(i)/float64(n) + 0.4
		r := radius * (1 + 0.1*float64(i)/float64(n))
		roots[i] = cmplx.Rect(r, angle)
	}

	const (
		maxIter = 1000
		tol     = 1e-12
	)

	for range maxIter {
		converged := true

		for i := range n {
			den := complex(1, 0)
			for j := range n {
				if i != j {
					den *= roots[i] - roots[j]
				}
			}
			if den == 0 {
				roots[i] += complex(1e-10*radius, 1e-10*radius)
				converged = false
				continue
			}

			delta := Eval(norm, roots[i]) / den
			roots[i] -= delta
			if cmplx.Abs(delta) > tol*math.Max(1, cmplx.Abs(roots[i])) {
				converged = false
			}
		}

		if converged {
			return roots, nil
		}
	}

	// Multiple roots converge linearly; accept them on residual.
	for _, r := range roots {
		if relativeResidual(norm, r) > 1e-9 {
			return nil, ErrDegeneratePolynomial
		}
	}

	return roots, nil
}

func relativeResidual(coeff []complex128, x complex128) float64 {
	scale := 0.0
	ax := cmplx.Abs(x)
	for _, c := range coeff {
		scale = scale*ax + cmplx.Abs(c)
	}
	if scale == 0 {
		return 0
	}
	return cmplx.Abs(Eval(coeff, x)) / scale
}

// Eval evaluates a polynomial at x using Horner's method.
func Eval(coeff []complex128, x complex128) complex128 {
	v := coeff[0]
	for i := 1; i < len(coeff); i++ {
		v = v*x + coeff[i]
	}
	return v
}

// Expand multiplies out prod(x - r) and returns the monic coefficients.
// Conjugate-symmetric roots give real coefficients; imaginary residue
// from rounding is discarded.
func Expand(roots []complex128) []float64 {
	c := make([]complex128, 1, len(roots)+1)
	c[0] = 1
	for _, r := range roots {
		c = append(c, 0)
		for i := len(c) - 1; i > 0; i-- {
			c[i] -= r * c[i-1]
		}
	}

	out := make([]float64, len(c))
	for i, v := range c {
		out[i] = real(v)
	}
	return out
}

// IsConjugate checks whether a and b are complex conjugates within tolerance.
func IsConjugate(a, b complex128, tol float64) bool {
	if math.Abs(real(a)-real(b)) > tol*math.Max(1, math.Abs(real(a))) {
		return false
	}
	return math.Abs(imag(a)+imag(b)) <= tol*math.Max(1, math.Abs(imag(a)))
}
