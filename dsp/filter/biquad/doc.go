// Package biquad provides second-order IIR section (biquad) primitives for
// complex-valued signals.
//
// [Coefficients] hold one real-valued section with a0 normalized to 1. A
// [Section] runs them in floating point using Direct Form II Transposed,
// and [Chain] cascades several sections. These are the reference
// implementations used to check designs.
//
// [FixedCoefficients] are the same sections quantized to Q15.16. The
// fixed-point runtime uses Direct Form II with a magnitude-truncated
// recursion, keeps its delay registers in a caller-owned [FixedState] and
// advances one sample with [FixedCoefficients.Step].
//
// Frequencies are normalized to the sample rate (cycles/sample, 0..0.5).
// Coefficient design lives in dsp/filter/design.
package biquad
