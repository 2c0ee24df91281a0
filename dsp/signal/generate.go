// Package signal generates the complex test signals fed to the
// interpolator and converts them to and from Q15.16.
package signal

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
	"github.com/cwbudde/algo-iirinterp/dsp/window"
)

// Chirp parameters: phase(i) = ChirpOffset*i + ChirpSweep*i*i/n.
const (
	ChirpOffset = -0.17
	ChirpSweep  = 0.9
	// ChirpTail is the number of trailing samples forced to zero so the
	// filter tail is visible after the burst.
	ChirpTail = 5
)

// Generator creates deterministic signals.
type Generator struct {
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets deterministic random seed for noise generation.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a signal generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{seed: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// Seed returns the noise seed.
func (g *Generator) Seed() int64 { return g.seed }

// SetSeed changes the noise seed.
func (g *Generator) SetSeed(seed int64) { g.seed = seed }

// Chirp generates a Hamming-windowed complex chirp with a linearly
// increasing instantaneous frequency. The last ChirpTail samples are zero.
func (g *Generator) Chirp(samples int) ([]complex128, error) {
	w, err := window.Hamming(samples)
	if err != nil {
		return nil, fmt.Errorf("chirp samples must be > 0: %d", samples)
	}

	out := make([]complex128, samples)
	n := float64(samples)
	for i := range out {
		fi := float64(i)
		phase := ChirpOffset*fi + ChirpSweep*fi*fi/n
		out[i] = cmplx.Rect(w[i], phase)
	}
	for i := max(0, samples-ChirpTail); i < samples; i++ {
		out[i] = 0
	}
	return out, nil
}

// Tone generates amplitude*exp(j*2*pi*freq*i), freq in cycles/sample.
func (g *Generator) Tone(freq, amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("tone samples must be > 0: %d", samples)
	}
	if !(freq >= -0.5 && freq <= 0.5) {
		return nil, fmt.Errorf("tone frequency must be in [-0.5, 0.5]: %f", freq)
	}
	out := make([]complex128, samples)
	step := 2 * math.Pi * freq
	for i := range out {
		out[i] = cmplx.Rect(amplitude, step*float64(i))
	}
	return out, nil
}

// Impulse generates a unit impulse at index 0.
func (g *Generator) Impulse(samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("impulse samples must be > 0: %d", samples)
	}
	out := make([]complex128, samples)
	out[0] = 1
	return out, nil
}

// WhiteNoise generates deterministic complex noise with both parts in
// [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]complex128, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]complex128, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out, nil
}

// Normalize scales data to target peak magnitude and returns a new slice.
func Normalize(data []complex128, targetPeak float64) ([]complex128, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	maxAbs := 0.0
	for _, v := range data {
		maxAbs = math.Max(maxAbs, cmplx.Abs(v))
	}

	out := make([]complex128, len(data))
	if maxAbs == 0 || targetPeak == 0 {
		return out, nil
	}

	scale := complex(targetPeak/maxAbs, 0)
	for i, v := range data {
		out[i] = v * scale
	}
	return out, nil
}

// ToFixed quantizes data to Q15.16 with rounding and saturation.
func ToFixed(data []complex128) []fixed.Complex {
	out := make([]fixed.Complex, len(data))
	for i, v := range data {
		out[i] = fixed.FromComplex128(v)
	}
	return out
}

// FromFixed converts Q15.16 samples to complex128 exactly.
func FromFixed(data []fixed.Complex) []complex128 {
	out := make([]complex128, len(data))
	for i, v := range data {
		out[i] = v.Complex128()
	}
	return out
}
