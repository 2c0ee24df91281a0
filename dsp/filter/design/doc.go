// Package design turns a classical analog prototype into a cascade of
// second-order sections for a digital lowpass, highpass, bandpass or
// bandstop filter.
//
// The pipeline is: analog prototype (see design/prototype), frequency
// pre-warp, bilinear transform, band transform in the z-domain, factoring
// into sections ordered by pole radius, per-section gain normalization
// and, for [DesignFixed], quantization to Q15.16.
//
// Frequencies are normalized to the sample rate. Cutoff is a band edge;
// Center is the band center used by bandpass and bandstop designs.
//
// Every design failure wraps [ErrDesign].
package design
