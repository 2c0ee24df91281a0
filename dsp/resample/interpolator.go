package resample

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
	"github.com/cwbudde/algo-iirinterp/dsp/filter/design"
	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
)

var (
	// ErrBuild is wrapped by every construction error.
	ErrBuild = errors.New("resample: cannot build interpolator")
	// ErrUsage is wrapped by every error from calling a built interpolator.
	ErrUsage = errors.New("resample: invalid interpolator use")

	// ErrInvalidFactor indicates an interpolation factor below 2.
	ErrInvalidFactor = fmt.Errorf("%w: factor must be at least 2", ErrBuild)
	// ErrNoSections indicates an empty section cascade.
	ErrNoSections = fmt.Errorf("%w: no sections", ErrBuild)

	// ErrClosed indicates use after Close.
	ErrClosed = fmt.Errorf("%w: interpolator closed", ErrUsage)
	// ErrShortBuffer indicates a destination slice that cannot hold the output.
	ErrShortBuffer = fmt.Errorf("%w: destination too short", ErrUsage)
	// ErrNotBuilt indicates a nil or zero-value interpolator that was not
	// obtained from NewInterpolator or NewPrototype.
	ErrNotBuilt = fmt.Errorf("%w: interpolator not built", ErrUsage)
)

// Interpolator upsamples a complex Q15.16 stream by an integer factor.
type Interpolator struct {
	k        int
	sections []biquad.FixedCoefficients
	state    []biquad.FixedState
	closed   bool
}

// NewInterpolator builds an interpolator for factor k from a quantized
// cascade. The sections are copied, so one design can back any number of
// interpolators.
func NewInterpolator(sections []biquad.FixedCoefficients, k int) (*Interpolator, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFactor, k)
	}
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	return &Interpolator{
		k:        k,
		sections: append([]biquad.FixedCoefficients(nil), sections...),
		state:    make([]biquad.FixedState, len(sections)),
	}, nil
}

// NewPrototype designs the image-rejection filter for factor k and builds
// an interpolator from it. Design failures wrap design.ErrDesign.
func NewPrototype(k int, opts ...Option) (*Interpolator, error) {
	if k < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFactor, k)
	}

	sections, err := design.DesignFixed(DesignParams(k, opts...))
	if err != nil {
		return nil, fmt.Errorf("resample: %w", err)
	}

	return NewInterpolator(sections, k)
}

// Interpolate runs src through a freshly designed interpolator and returns
// k*len(src) samples.
func Interpolate(src []fixed.Complex, k int, opts ...Option) ([]fixed.Complex, error) {
	it, err := NewPrototype(k, opts...)
	if err != nil {
		return nil, err
	}
	dst := make([]fixed.Complex, k*len(src))
	if err := it.ExecuteBlock(dst, src); err != nil {
		return nil, err
	}
	return dst, it.Close()
}

// Execute consumes one input sample and returns k output samples.
func (it *Interpolator) Execute(x fixed.Complex) ([]fixed.Complex, error) {
	if err := it.check(); err != nil {
		return nil, err
	}
	out := make([]fixed.Complex, it.k)
	it.step(out, x)
	return out, nil
}

// ExecuteInto writes the k outputs for x into dst[:k] without allocating.
// On error nothing is written and the state is unchanged.
func (it *Interpolator) ExecuteInto(dst []fixed.Complex, x fixed.Complex) error {
	if err := it.check(); err != nil {
		return err
	}
	if len(dst) < it.k {
		return fmt.Errorf("%w: need %d, got %d", ErrShortBuffer, it.k, len(dst))
	}
	it.step(dst, x)
	return nil
}

// ExecuteBlock interpolates every sample of src into dst, which must hold
// k*len(src) samples. On error nothing is written and the state is
// unchanged.
func (it *Interpolator) ExecuteBlock(dst, src []fixed.Complex) error {
	if err := it.check(); err != nil {
		return err
	}
	if need := it.k * len(src); len(dst) < need {
		return fmt.Errorf("%w: need %d, got %d", ErrShortBuffer, need, len(dst))
	}
	for i, x := range src {
		it.step(dst[i*it.k:(i+1)*it.k], x)
	}
	return nil
}

// check reports whether it can run. A closed interpolator returns
// ErrClosed; one never built, or with no sections, returns ErrNotBuilt.
func (it *Interpolator) check() error {
	switch {
	case it == nil:
		return ErrNotBuilt
	case it.closed:
		return ErrClosed
	case it.k < 2 || len(it.sections) == 0 || len(it.state) != len(it.sections):
		return ErrNotBuilt
	}
	return nil
}

// step runs x followed by k-1 zeros through the cascade.
func (it *Interpolator) step(dst []fixed.Complex, x fixed.Complex) {
	v := x
	for i := range it.k {
		if i > 0 {
			v = fixed.Complex{}
		}
		for s := range it.sections {
			v = it.sections[s].Step(&it.state[s], v)
		}
		dst[i] = v.MulInt(it.k)
	}
}

// Reset zeroes the filter state and keeps the coefficients.
func (it *Interpolator) Reset() error {
	if err := it.check(); err != nil {
		return err
	}
	for i := range it.state {
		it.state[i].Reset()
	}
	return nil
}

// Close releases the cascade. Every later call returns ErrClosed.
func (it *Interpolator) Close() error {
	if err := it.check(); err != nil {
		return err
	}
	it.closed = true
	it.sections = nil
	it.state = nil
	return nil
}

// Factor returns the interpolation factor k.
func (it *Interpolator) Factor() int { return it.k }

// Gain returns the output gain applied after filtering; it equals k.
func (it *Interpolator) Gain() int { return it.k }

// NumSections returns the number of sections in the cascade.
func (it *Interpolator) NumSections() int { return len(it.sections) }

// Sections returns a copy of the quantized cascade.
func (it *Interpolator) Sections() []biquad.FixedCoefficients {
	return append([]biquad.FixedCoefficients(nil), it.sections...)
}

// State returns a copy of the delay registers, one entry per section.
func (it *Interpolator) State() []biquad.FixedState {
	return append([]biquad.FixedState(nil), it.state...)
}
