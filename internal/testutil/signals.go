// Package testutil holds deterministic signals and tolerance helpers
// shared by the package tests.
package testutil

import (
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
)

// Tone returns n samples of amp*exp(j*2*pi*freq*i), freq in cycles/sample.
func Tone(freq, amp float64, n int) []complex128 {
	out := make([]complex128, n)
	for i := range out {
		out[i] = cmplx.Rect(amp, 2*math.Pi*freq*float64(i))
	}
	return out
}

// DeterministicNoise returns complex white noise with both parts uniform
// in [-amplitude, amplitude], seeded for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []complex128 {
	out := make([]complex128, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value complex128, length int) []complex128 {
	out := make([]complex128, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// ToFixed quantizes every sample to Q15.16.
func ToFixed(x []complex128) []fixed.Complex {
	out := make([]fixed.Complex, len(x))
	for i, v := range x {
		out[i] = fixed.FromComplex128(v)
	}
	return out
}

// ToComplex converts Q15.16 samples back to complex128.
func ToComplex(x []fixed.Complex) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = v.Complex128()
	}
	return out
}

// BinAmplitude correlates x with exp(-j*2*pi*freq*i) and returns the
// magnitude normalized to the amplitude of a matching tone.
func BinAmplitude(x []complex128, freq float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var acc complex128
	for i, v := range x {
		acc += v * cmplx.Rect(1, -2*math.Pi*freq*float64(i))
	}
	return cmplx.Abs(acc) / float64(len(x))
}
