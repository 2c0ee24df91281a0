// Package fixed provides saturating Q15.16 fixed-point arithmetic.
//
// A [Q16] stores a signed value in an int32 with 16 fractional bits, giving
// a range of [-32768, 32768) and a resolution of 2^-16. A [Complex] pairs
// two Q16 values as real and imaginary parts.
//
// All operations saturate at the representable range instead of wrapping,
// and all rounding is deterministic, so identical inputs always produce
// bit-identical results on every platform.
package fixed
