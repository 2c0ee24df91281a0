// Package resample provides integer-factor interpolation in Q15.16 fixed
// point using a cascade of recursive second-order sections.
//
// Each input sample x produces k output samples: the virtual sequence
// x, 0, ..., 0 runs through the section cascade at the output rate and
// every output is multiplied by k to restore the energy lost to zero
// stuffing. Filter state persists across calls, so a stream is processed
// one sample (or block) at a time.
//
// Common workflows:
//   - NewPrototype(k, opts...) designs the image-rejection filter and
//     builds an interpolator in one step
//   - NewInterpolator(sections, k) builds from a precomputed cascade,
//     which lets many streams share one design
//   - Interpolate(src, k, opts...) one-shot convenience wrapper
//
// Default design (matching NewPrototype without options):
//
//	family       Butterworth lowpass
//	order        8 (4 sections)
//	cutoff       0.5/k cycles/sample at the output rate
//	ripple       0.1 dB
//	attenuation  60 dB
//
// An Interpolator is not safe for concurrent use; use one per stream.
package resample
