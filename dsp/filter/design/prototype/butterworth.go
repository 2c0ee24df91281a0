package prototype

import (
	"math"
	"math/cmplx"
)

// Butterworth returns the order-n Butterworth prototype. Poles are equally
// spaced on the left half of the unit circle.
func Butterworth(n int) (ZPK, error) {
	if err := validOrder(n); err != nil {
		return ZPK{}, err
	}

	poles := make([]complex128, n)
	for k := range n {
		theta := math.Pi * float64(2*k+n+1) / float64(2*n)
		poles[k] = cmplx.Rect(1, theta)
		if 2*k+1 == n {
			poles[k] = -1
		}
	}

	return ZPK{Poles: poles, Gain: 1}, nil
}
