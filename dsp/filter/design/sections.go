package design

import (
	"cmp"
	"fmt"
	"math"
	"math/cmplx"
	"slices"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
)

const (
	realTol = 1e-9
	conjTol = 1e-6
)

// groupRoots splits roots into conjugate pairs, pairs of real roots and at
// most one single real root. Real poles are paired with their neighbours;
// real zeros are paired outermost first so a mix of +1 and -1 zeros
// spreads across sections.
func groupRoots(roots []complex128, outer bool) ([][]complex128, error) {
	var (
		reals   []float64
		upper   []complex128
		lower   []complex128
		lowUsed []bool
	)
	for _, r := range roots {
		switch {
		case math.Abs(imag(r)) <= realTol*math.Max(1, cmplx.Abs(r)):
			reals = append(reals, real(r))
		case imag(r) > 0:
			upper = append(upper, r)
		default:
			lower = append(lower, r)
		}
	}
	if len(upper) != len(lower) {
		return nil, fmt.Errorf("%w: unmatched complex roots", ErrDegenerate)
	}

	groups := make([][]complex128, 0, (len(roots)+1)/2)
	lowUsed = make([]bool, len(lower))
	for _, u := range upper {
		best, bestDist := -1, math.Inf(1)
		for j, l := range lower {
			if lowUsed[j] {
				continue
			}
			if d := cmplx.Abs(l - cmplx.Conj(u)); d < bestDist {
				best, bestDist = j, d
			}
		}
		if best < 0 || bestDist > conjTol*math.Max(1, cmplx.Abs(u)) {
			return nil, fmt.Errorf("%w: root %v has no conjugate", ErrDegenerate, u)
		}
		lowUsed[best] = true
		// Store an exact conjugate pair so the section is real.
		groups = append(groups, []complex128{u, cmplx.Conj(u)})
	}

	slices.Sort(reals)
	if outer {
		for len(reals) >= 2 {
			groups = append(groups, []complex128{complex(reals[0], 0), complex(reals[len(reals)-1], 0)})
			reals = reals[1 : len(reals)-1]
		}
	} else {
		for len(reals) >= 2 {
			groups = append(groups, []complex128{complex(reals[0], 0), complex(reals[1], 0)})
			reals = reals[2:]
		}
	}
	if len(reals) == 1 {
		groups = append(groups, []complex128{complex(reals[0], 0)})
	}
	return groups, nil
}

func groupRadius(g []complex128) float64 {
	r := 0.0
	for _, x := range g {
		r = max(r, cmplx.Abs(x))
	}
	return r
}

func groupDistance(a, b []complex128) float64 {
	d := math.Inf(1)
	for _, x := range a {
		for _, y := range b {
			d = min(d, cmplx.Abs(x-y))
		}
	}
	return d
}

// quadFromGroup expands a root group into (1, c1, c2).
func quadFromGroup(g []complex128) (float64, float64) {
	switch len(g) {
	case 0:
		return 0, 0
	case 1:
		return -real(g[0]), 0
	default:
		return -real(g[0] + g[1]), real(g[0] * g[1])
	}
}

type pendingSection struct {
	coeffs biquad.Coefficients
	radius float64
}

// factorSections builds unity-gain sections from digital roots. The most
// resonant pole groups pick their nearest zeros first; the result is
// ordered by ascending pole radius. h0 scales the first section so the
// cascade keeps the prototype's reference gain.
func factorSections(zeros, poles []complex128, ref complex128, magnitudeOnly bool, h0 float64) ([]biquad.Coefficients, error) {
	pg, err := groupRoots(poles, false)
	if err != nil {
		return nil, err
	}
	zg, err := groupRoots(zeros, true)
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(pg, func(a, b []complex128) int {
		return cmp.Compare(groupRadius(b), groupRadius(a))
	})

	zUsed := make([]bool, len(zg))
	pending := make([]pendingSection, 0, len(pg))
	for _, p := range pg {
		best := nearestGroup(p, zg, zUsed, true)
		if best < 0 {
			best = nearestGroup(p, zg, zUsed, false)
		}

		var z []complex128
		if best >= 0 {
			zUsed[best] = true
			z = zg[best]
		}

		b1, b2 := quadFromGroup(z)
		a1, a2 := quadFromGroup(p)
		c := biquad.Coefficients{B0: 1, B1: b1, B2: b2, A1: a1, A2: a2}
		if len(z) == 0 {
			c.B1, c.B2 = 0, 0
		}

		if err := normalizeAt(&c, ref, magnitudeOnly); err != nil {
			return nil, err
		}
		pending = append(pending, pendingSection{coeffs: c, radius: groupRadius(p)})
	}

	slices.SortStableFunc(pending, func(a, b pendingSection) int {
		return cmp.Compare(a.radius, b.radius)
	})

	out := make([]biquad.Coefficients, len(pending))
	for i := range pending {
		out[i] = pending[i].coeffs
	}
	if len(out) > 0 {
		out[0].B0 *= h0
		out[0].B1 *= h0
		out[0].B2 *= h0
	}
	return out, nil
}

func nearestGroup(p []complex128, zg [][]complex128, used []bool, sameSize bool) int {
	best, bestDist := -1, math.Inf(1)
	for j, z := range zg {
		if used[j] || (sameSize && len(z) != len(p)) {
			continue
		}
		if d := groupDistance(p, z); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

// normalizeAt scales the numerator so the section gain at ref is 1.
// Real reference points keep the sign; the bandpass center only has a
// meaningful magnitude.
func normalizeAt(c *biquad.Coefficients, ref complex128, magnitudeOnly bool) error {
	h := c.ResponseAt(ref)
	var g float64
	if magnitudeOnly {
		g = cmplx.Abs(h)
	} else {
		g = real(h)
	}
	if math.Abs(g) < 1e-12 || math.IsNaN(g) || math.IsInf(g, 0) {
		return fmt.Errorf("%w: section gain %v at reference point", ErrDegenerate, h)
	}
	c.B0 /= g
	c.B1 /= g
	c.B2 /= g
	return nil
}
