package main

import (
	"math/cmplx"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
	"github.com/cwbudde/algo-iirinterp/dsp/filter/design"
	"github.com/cwbudde/algo-iirinterp/dsp/spectrum"
)

const delayStep = 1e-4

// passbandDelay returns the group delay of the quantized cascade, in output
// samples, at the frequency the design normalizes to unity gain.
func passbandDelay(sections []biquad.FixedCoefficients, p design.Params) (float64, error) {
	coeffs := make([]biquad.Coefficients, len(sections))
	for i := range sections {
		coeffs[i] = sections[i].Float()
	}

	f := referenceFrequency(p)
	phase := make([]float64, 3)
	for i := range phase {
		phase[i] = cmplx.Phase(biquad.CascadeResponse(coeffs, f+float64(i-1)*delayStep))
	}
	gd, err := spectrum.GroupDelay(spectrum.UnwrapPhase(phase), delayStep)
	if err != nil {
		return 0, err
	}
	return gd[1], nil
}

func referenceFrequency(p design.Params) float64 {
	switch p.Band {
	case design.Highpass:
		return 0.5
	case design.Bandpass:
		return p.Center
	default:
		return 0
	}
}
