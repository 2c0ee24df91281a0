package fixed

import (
	"math"
	"strconv"
)

// Q16 is a signed Q15.16 fixed-point value.
type Q16 int32

const (
	// FracBits is the number of fractional bits in a Q16.
	FracBits = 16

	// One is the Q16 representation of 1.0.
	One Q16 = 1 << FracBits

	// Max and Min are the representable extremes.
	Max Q16 = math.MaxInt32
	Min Q16 = math.MinInt32

	half = int64(1) << (FracBits - 1)
)

// FromFloat converts v to Q16, rounding to nearest (ties away from zero)
// and saturating at the range limits. NaN maps to zero.
func FromFloat(v float64) Q16 {
	if math.IsNaN(v) {
		return 0
	}
	s := math.Round(v * float64(One))
	if s >= math.MaxInt32 {
		return Max
	}
	if s <= math.MinInt32 {
		return Min
	}
	return Q16(s)
}

// FromInt converts an integer to Q16 with saturation.
func FromInt(n int) Q16 {
	return Saturate(int64(n) << FracBits)
}

// InRange reports whether v survives FromFloat without saturating.
func InRange(v float64) bool {
	s := math.Round(v * float64(One))
	return s <= math.MaxInt32 && s >= math.MinInt32
}

// Float returns q as float64. The conversion is exact.
func (q Q16) Float() float64 {
	return float64(q) / float64(One)
}

func (q Q16) String() string {
	return strconv.FormatFloat(q.Float(), 'f', -1, 64)
}

// Saturate clamps a wide Q16-scaled value into range.
func Saturate(v int64) Q16 {
	if v > math.MaxInt32 {
		return Max
	}
	if v < math.MinInt32 {
		return Min
	}
	return Q16(v)
}

// Add returns q+r, saturated.
func (q Q16) Add(r Q16) Q16 {
	return Saturate(int64(q) + int64(r))
}

// Sub returns q-r, saturated.
func (q Q16) Sub(r Q16) Q16 {
	return Saturate(int64(q) - int64(r))
}

// Neg returns -q. Negating Min saturates to Max.
func (q Q16) Neg() Q16 {
	return Saturate(-int64(q))
}

// Mul returns q*r rounded to nearest (ties toward +inf), saturated.
func (q Q16) Mul(r Q16) Q16 {
	return Saturate(MulWide(q, r))
}

// MulInt returns q*n, saturated.
func (q Q16) MulInt(n int) Q16 {
	p := int64(q) * int64(n)
	if n != 0 && p/int64(n) != int64(q) {
		// 64-bit overflow only happens for huge n; the sign decides the rail.
		if (q < 0) != (n < 0) {
			return Min
		}
		return Max
	}
	return Saturate(p)
}

// MulWide returns the rounded Q16-scaled product of a and b without
// saturating, so multiply-accumulate chains can saturate once at the end.
func MulWide(a, b Q16) int64 {
	return (int64(a)*int64(b) + half) >> FracBits
}
