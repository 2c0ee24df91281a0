package spectrum

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"github.com/tphakala/simd/f64"

	"github.com/cwbudde/algo-iirinterp/dsp/window"
)

// FloorDB is the level reported for bins with zero power.
const FloorDB = -300.0

// ErrInvalidSize is returned for FFT sizes that are not a power of two.
var ErrInvalidSize = errors.New("spectrum: fft size must be a power of two >= 2")

// Option configures PSD.
type Option func(*config)

type config struct {
	window    window.Type
	normalize bool
}

// WithWindow tapers the frame before the FFT. The default is rectangular.
func WithWindow(t window.Type) Option {
	return func(c *config) { c.window = t }
}

// WithNormalize scales the spectrum so a bin-centred tone of amplitude A
// reads 20*log10(A) dB regardless of frame length and window.
func WithNormalize() Option {
	return func(c *config) { c.normalize = true }
}

// PSD returns 20*log10|FFT(x, nfft)| with bins fft-shifted so index 0 is
// frequency -0.5 and index nfft/2 is DC. x is zero-padded or truncated to
// nfft samples.
func PSD(x []complex128, nfft int, opts ...Option) ([]float64, error) {
	if nfft < 2 || bits.OnesCount(uint(nfft)) != 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, nfft)
	}

	cfg := config{window: window.TypeRectangular}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	n := min(len(x), nfft)
	re, im, buf := getScratch(nfft)
	defer putScratch(buf)
	clear(re)
	clear(im)
	split(re[:n], im[:n], x[:n])

	scale := 1.0
	if n > 0 {
		coeffs := window.Generate(cfg.window, n)
		if err := window.ApplyCoefficientsInPlace(re[:n], coeffs); err != nil {
			return nil, err
		}
		if err := window.ApplyCoefficientsInPlace(im[:n], coeffs); err != nil {
			return nil, err
		}
		if cfg.normalize {
			gain, err := window.CoherentGain(coeffs)
			if err != nil {
				return nil, err
			}
			scale = 1 / (gain * float64(n))
		}
	}

	in := make([]complex128, nfft)
	for i := range in {
		in[i] = complex(re[i], im[i])
	}

	plan, err := algofft.NewPlan64(nfft)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, nfft)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("spectrum: fft: %w", err)
	}

	split(re, im, out)
	pow := make([]float64, nfft)
	vecmath.Power(pow, re, im)

	db := make([]float64, nfft)
	for i, p := range FFTShift(pow) {
		p *= scale * scale
		if p <= 1e-30 {
			db[i] = FloorDB
			continue
		}
		db[i] = 10 * math.Log10(p)
	}
	return db, nil
}

// FFTShift returns a copy of x rotated so the zero-frequency bin moves to
// index len(x)/2.
func FFTShift[T any](x []T) []T {
	n := len(x)
	out := make([]T, n)
	h := (n + 1) / 2
	copy(out, x[h:])
	copy(out[n-h:], x[:h])
	return out
}

// Frequencies returns the normalized frequency of every bin of an
// fft-shifted spectrum of size nfft.
func Frequencies(nfft int) []float64 {
	out := make([]float64, nfft)
	for i := range out {
		out[i] = float64(i)/float64(nfft) - 0.5
	}
	return out
}

// ToneAmplitude correlates x with exp(-j*2*pi*freq*i) and returns the
// magnitude normalized so a matching tone of amplitude A reads A.
func ToneAmplitude(x []complex128, freq float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	re, im, buf := getScratch(n)
	defer putScratch(buf)
	split(re, im, x)

	c := make([]float64, n)
	s := make([]float64, n)
	w := 2 * math.Pi * freq
	for i := range c {
		s[i], c[i] = math.Sincos(w * float64(i))
	}

	// x * (c - js) = (re*c + im*s) + j(im*c - re*s)
	sumRe := f64.DotProduct(re, c) + f64.DotProduct(im, s)
	sumIm := f64.DotProduct(im, c) - f64.DotProduct(re, s)
	return math.Hypot(sumRe, sumIm) / float64(n)
}
