// Package spectrum measures complex baseband signals in the frequency
// domain: FFT power spectra, single-bin tone correlation, streaming
// Goertzel bins, and phase and group-delay helpers.
//
// Frequencies are normalized to cycles/sample in [-0.5, 0.5).
package spectrum
