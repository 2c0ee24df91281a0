package biquad

import (
	"math"
	"math/cmplx"
)

// Response computes H(e^jw) at the normalized frequency f (cycles/sample).
// Negative frequencies are allowed.
func (c *Coefficients) Response(f float64) complex128 {
	return c.ResponseAt(cmplx.Exp(complex(0, 2*math.Pi*f)))
}

// ResponseAt evaluates the section transfer function at an arbitrary
// point z of the complex plane.
func (c *Coefficients) ResponseAt(z complex128) complex128 {
	zi := 1 / z
	zi2 := zi * zi

	num := complex(c.B0, 0) + complex(c.B1, 0)*zi + complex(c.B2, 0)*zi2
	den := 1 + complex(c.A1, 0)*zi + complex(c.A2, 0)*zi2
	return num / den
}

// MagnitudeSquared returns |H(f)|^2 using a closed-form expression.
func (c *Coefficients) MagnitudeSquared(f float64) float64 {
	cw := 2 * math.Cos(2*math.Pi*f)
	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2

	num := (b0-b2)*(b0-b2) + b1*b1 + (b1*(b0+b2)+b0*b2*cw)*cw
	den := (1-a2)*(1-a2) + a1*a1 + (a1*(a2+1)+cw*a2)*cw
	return num / den
}

// MagnitudeDB returns 10*log10(|H(f)|^2).
func (c *Coefficients) MagnitudeDB(f float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(f))
}

// Phase returns the phase response in radians at f.
func (c *Coefficients) Phase(f float64) float64 {
	return cmplx.Phase(c.Response(f))
}

// CascadeResponse is the product of the section responses at f.
func CascadeResponse(coeffs []Coefficients, f float64) complex128 {
	h := complex(1, 0)
	for i := range coeffs {
		h *= coeffs[i].Response(f)
	}
	return h
}

// Response computes the complex frequency response of the full cascade
// including the input gain.
func (c *Chain) Response(f float64) complex128 {
	h := complex(c.gain, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(f)
	}
	return h
}

// MagnitudeDB returns the cascaded magnitude response in dB.
func (c *Chain) MagnitudeDB(f float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(f)))
}

// ImpulseResponse computes n samples of the impulse response h[n]. The
// section state is saved and restored. Real coefficients give a real
// response, so only the real part is returned.
func (s *Section) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := s.State()
	s.Reset()
	ir := make([]float64, n)
	ir[0] = real(s.ProcessSample(1))
	for i := 1; i < n; i++ {
		ir[i] = real(s.ProcessSample(0))
	}
	s.SetState(saved)
	return ir
}

// ImpulseResponse computes n samples of the cascade impulse response.
// The chain state is saved and restored.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}
	saved := c.State()
	c.Reset()
	ir := make([]float64, n)
	ir[0] = real(c.ProcessSample(1))
	for i := 1; i < n; i++ {
		ir[i] = real(c.ProcessSample(0))
	}
	c.SetState(saved)
	return ir
}
