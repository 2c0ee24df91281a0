// Package imagerej measures how well an integer-factor interpolator
// suppresses the spectral images created by zero stuffing.
//
// A tone at input frequency f appears at f/k in the interpolated output,
// together with images at (f+m)/k for m = 1..k-1. The rejection of an
// image is the level of the wanted tone over the level of the image.
package imagerej

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-iirinterp/dsp/spectrum"
)

// MaxRejectionDB is reported when an image is below measurement floor.
const MaxRejectionDB = 300.0

var (
	// ErrInvalidFactor indicates an interpolation factor below 2.
	ErrInvalidFactor = errors.New("imagerej: factor must be at least 2")
	// ErrInvalidFrequency indicates a tone frequency outside [-0.5, 0.5].
	ErrInvalidFrequency = errors.New("imagerej: tone frequency must be in [-0.5, 0.5]")
	// ErrEmpty indicates an empty output signal.
	ErrEmpty = errors.New("imagerej: no samples to analyze")
)

// Result holds image-rejection measurement results. Frequencies are in
// cycles/sample at the output rate, wrapped to [-0.5, 0.5).
type Result struct {
	WantedFreq  float64
	WantedLevel float64

	ImageFreqs  []float64
	ImageLevels []float64
	// RejectionDB[m-1] is the rejection of the image at ImageFreqs[m-1].
	RejectionDB []float64

	// WorstImage indexes the least attenuated image.
	WorstImage       int
	WorstRejectionDB float64
}

// Frequencies returns the wanted output frequency and the k-1 image
// frequencies for a tone at toneFreq (input rate).
func Frequencies(k int, toneFreq float64) (wanted float64, images []float64, err error) {
	if k < 2 {
		return 0, nil, fmt.Errorf("%w: got %d", ErrInvalidFactor, k)
	}
	if !(toneFreq >= -0.5 && toneFreq <= 0.5) {
		return 0, nil, fmt.Errorf("%w: got %v", ErrInvalidFrequency, toneFreq)
	}

	images = make([]float64, k-1)
	for m := range images {
		images[m] = wrap((toneFreq + float64(m+1)) / float64(k))
	}
	return wrap(toneFreq / float64(k)), images, nil
}

// Analyze measures the wanted tone and every image in out, the output of a
// factor-k interpolator driven by a tone at toneFreq. For leakage-free
// results out should hold whole periods of every measured frequency.
func Analyze(out []complex128, k int, toneFreq float64) (Result, error) {
	if len(out) == 0 {
		return Result{}, ErrEmpty
	}
	wanted, images, err := Frequencies(k, toneFreq)
	if err != nil {
		return Result{}, err
	}

	levels := make([]float64, len(images))
	for i, f := range images {
		levels[i] = spectrum.ToneAmplitude(out, f)
	}
	return newResult(wanted, spectrum.ToneAmplitude(out, wanted), images, levels), nil
}

// Meter accumulates an image-rejection measurement over a stream.
type Meter struct {
	wanted float64
	images []float64
	bins   *spectrum.MultiGoertzel
}

// NewMeter creates a streaming meter for a factor-k interpolator driven by
// a tone at toneFreq.
func NewMeter(k int, toneFreq float64) (*Meter, error) {
	wanted, images, err := Frequencies(k, toneFreq)
	if err != nil {
		return nil, err
	}
	bins, err := spectrum.NewMultiGoertzel(append([]float64{wanted}, images...))
	if err != nil {
		return nil, err
	}
	return &Meter{wanted: wanted, images: images, bins: bins}, nil
}

// Process adds a block of interpolator output.
func (m *Meter) Process(block []complex128) {
	m.bins.ProcessBlock(block)
}

// Reset discards everything processed so far.
func (m *Meter) Reset() {
	m.bins.Reset()
}

// Result returns the measurement over all processed samples.
func (m *Meter) Result() Result {
	amps := m.bins.Amplitudes()
	return newResult(m.wanted, amps[0], m.images, amps[1:])
}

func newResult(wanted, wantedLevel float64, images, levels []float64) Result {
	res := Result{
		WantedFreq:  wanted,
		WantedLevel: wantedLevel,
		ImageFreqs:  append([]float64(nil), images...),
		ImageLevels: append([]float64(nil), levels...),
		RejectionDB: make([]float64, len(levels)),
	}
	for i, l := range levels {
		res.RejectionDB[i] = rejectionDB(wantedLevel, l)
	}
	res.WorstImage = floats.MinIdx(res.RejectionDB)
	res.WorstRejectionDB = res.RejectionDB[res.WorstImage]
	return res
}

func rejectionDB(wanted, image float64) float64 {
	if image <= 0 {
		return MaxRejectionDB
	}
	if wanted <= 0 {
		return -MaxRejectionDB
	}
	return math.Min(MaxRejectionDB, 20*math.Log10(wanted/image))
}

func wrap(f float64) float64 {
	return f - math.Floor(f+0.5)
}
