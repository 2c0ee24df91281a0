package spectrum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Goertzel evaluates a single DFT bin of a complex stream.
//
// The analyzer is stateful: Bin, Power and Amplitude evaluate the
// frequency component of all samples processed since the last Reset.
// Frequencies falling between DFT bins leak into each other unless the
// block holds an integer number of cycles.
type Goertzel struct {
	frequency float64
	coeff     float64
	rot       complex128
	s0, s1    complex128
	count     int
}

// NewGoertzel creates an analyzer for freq in cycles/sample, which must
// lie in [-0.5, 0.5].
func NewGoertzel(freq float64) (*Goertzel, error) {
	g := &Goertzel{}
	if err := g.SetFrequency(freq); err != nil {
		return nil, err
	}
	return g, nil
}

// SetFrequency changes the analyzed frequency and resets the state.
func (g *Goertzel) SetFrequency(freq float64) error {
	if !(freq >= -0.5 && freq <= 0.5) {
		return fmt.Errorf("goertzel: frequency must be in [-0.5, 0.5]: %v", freq)
	}
	w := 2 * math.Pi * freq
	g.frequency = freq
	g.coeff = 2 * math.Cos(w)
	g.rot = cmplx.Rect(1, -w)
	g.Reset()
	return nil
}

// Reset clears the internal state.
func (g *Goertzel) Reset() {
	g.s0, g.s1 = 0, 0
	g.count = 0
}

// ProcessSample updates the state with one sample.
func (g *Goertzel) ProcessSample(x complex128) {
	s := x + complex(g.coeff, 0)*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.count++
}

// ProcessBlock updates the state with a block of samples.
func (g *Goertzel) ProcessBlock(input []complex128) {
	s0, s1 := g.s0, g.s1
	coeff := complex(g.coeff, 0)
	for _, x := range input {
		s := x + coeff*s0 - s1
		s1 = s0
		s0 = s
	}
	g.s0, g.s1 = s0, s1
	g.count += len(input)
}

// Bin returns sum(x[n] * exp(-j*2*pi*f*n)) over the processed samples.
func (g *Goertzel) Bin() complex128 {
	if g.count == 0 {
		return 0
	}
	y := g.s0 - g.rot*g.s1
	return y * cmplx.Rect(1, -2*math.Pi*g.frequency*float64(g.count-1))
}

// Power returns |Bin|^2.
func (g *Goertzel) Power() float64 {
	b := g.Bin()
	return real(b)*real(b) + imag(b)*imag(b)
}

// Amplitude returns |Bin| divided by the sample count, the amplitude of a
// matching tone.
func (g *Goertzel) Amplitude() float64 {
	if g.count == 0 {
		return 0
	}
	return cmplx.Abs(g.Bin()) / float64(g.count)
}

// Frequency returns the analyzed frequency.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Count returns the number of samples processed since the last Reset.
func (g *Goertzel) Count() int { return g.count }

// MultiGoertzel runs one Goertzel per frequency over the same stream.
type MultiGoertzel struct {
	analyzers []*Goertzel
}

// NewMultiGoertzel creates analyzers for every frequency.
func NewMultiGoertzel(frequencies []float64) (*MultiGoertzel, error) {
	analyzers := make([]*Goertzel, len(frequencies))
	for i, f := range frequencies {
		g, err := NewGoertzel(f)
		if err != nil {
			return nil, err
		}
		analyzers[i] = g
	}
	return &MultiGoertzel{analyzers: analyzers}, nil
}

// ProcessBlock updates all analyzers with the same input block.
func (m *MultiGoertzel) ProcessBlock(input []complex128) {
	for _, g := range m.analyzers {
		g.ProcessBlock(input)
	}
}

// Amplitudes returns the tone amplitude seen by every analyzer.
func (m *MultiGoertzel) Amplitudes() []float64 {
	out := make([]float64, len(m.analyzers))
	for i, g := range m.analyzers {
		out[i] = g.Amplitude()
	}
	return out
}

// Reset resets all analyzers.
func (m *MultiGoertzel) Reset() {
	for _, g := range m.analyzers {
		g.Reset()
	}
}
