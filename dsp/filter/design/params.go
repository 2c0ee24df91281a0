package design

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/design/prototype"
)

// ErrDesign is wrapped by every error returned from this package.
var ErrDesign = errors.New("design: invalid filter design")

var (
	// ErrInvalidOrder is returned for orders below 1.
	ErrInvalidOrder = fmt.Errorf("%w: order must be positive", ErrDesign)

	// ErrUnsupportedOrder is returned when a family cannot reach the
	// requested order.
	ErrUnsupportedOrder = fmt.Errorf("%w: order not supported by family", ErrDesign)

	// ErrInvalidFamily is returned for an unknown prototype family.
	ErrInvalidFamily = fmt.Errorf("%w: unknown family", ErrDesign)

	// ErrInvalidBand is returned for an unknown band type.
	ErrInvalidBand = fmt.Errorf("%w: unknown band", ErrDesign)

	// ErrInvalidCutoff is returned unless 0 < cutoff < 0.5.
	ErrInvalidCutoff = fmt.Errorf("%w: cutoff must be in (0, 0.5)", ErrDesign)

	// ErrInvalidCenter is returned for a center frequency that does not
	// fit the band type.
	ErrInvalidCenter = fmt.Errorf("%w: invalid center frequency", ErrDesign)

	// ErrInvalidRipple is returned for non-positive passband ripple.
	ErrInvalidRipple = fmt.Errorf("%w: passband ripple must be positive", ErrDesign)

	// ErrInvalidAttenuation is returned for non-positive stopband
	// attenuation, or attenuation not above the ripple for elliptic designs.
	ErrInvalidAttenuation = fmt.Errorf("%w: invalid stopband attenuation", ErrDesign)

	// ErrDegenerate is returned when the transformed filter cannot be
	// factored or normalized.
	ErrDegenerate = fmt.Errorf("%w: degenerate filter", ErrDesign)

	// ErrCoefficientOverflow is returned when a section coefficient does
	// not fit Q15.16.
	ErrCoefficientOverflow = fmt.Errorf("%w: coefficient exceeds fixed-point range", ErrDesign)

	// ErrQuantizedUnstable is returned when rounding to Q15.16 moves a
	// pole onto or outside the unit circle.
	ErrQuantizedUnstable = fmt.Errorf("%w: quantized section is unstable", ErrDesign)
)

// Family selects the analog prototype.
type Family int

const (
	Butterworth Family = iota
	Chebyshev1
	Chebyshev2
	Elliptic
	Bessel
)

var familyNames = [...]string{"butterworth", "chebyshev1", "chebyshev2", "elliptic", "bessel"}

func (f Family) String() string {
	if f < 0 || int(f) >= len(familyNames) {
		return fmt.Sprintf("Family(%d)", int(f))
	}
	return familyNames[f]
}

// ParseFamily maps a family name (case-insensitive) to a Family.
// "cheby1" and "cheby2" are accepted as short forms.
func ParseFamily(s string) (Family, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "cheby1":
		return Chebyshev1, nil
	case "cheby2":
		return Chebyshev2, nil
	case "ellip":
		return Elliptic, nil
	}
	for i, name := range familyNames {
		if s == name {
			return Family(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidFamily, s)
}

// Band selects the frequency response type.
type Band int

const (
	Lowpass Band = iota
	Highpass
	Bandpass
	Bandstop
)

var bandNames = [...]string{"lowpass", "highpass", "bandpass", "bandstop"}

func (b Band) String() string {
	if b < 0 || int(b) >= len(bandNames) {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandNames[b]
}

// ParseBand maps a band name (case-insensitive) to a Band. Two-letter
// forms "lp", "hp", "bp" and "bs" are accepted.
func ParseBand(s string) (Band, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if b, ok := bandAliases[s]; ok {
		return b, nil
	}
	for i, name := range bandNames {
		if s == name {
			return Band(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBand, s)
}

var bandAliases = map[string]Band{"lp": Lowpass, "hp": Highpass, "bp": Bandpass, "bs": Bandstop}

// Params fully describes a filter design.
type Params struct {
	Family Family
	Band   Band

	// Order is the analog prototype order. Bandpass and bandstop designs
	// double it in the digital domain.
	Order int

	// Cutoff is the band edge in cycles/sample. For Chebyshev type II it
	// is the stopband edge; for the other families the passband edge.
	Cutoff float64

	// Center is the band center in cycles/sample for bandpass and
	// bandstop designs. It must be 0 for lowpass and highpass.
	Center float64

	// RippleDB is the passband ripple in dB (Chebyshev I, elliptic).
	RippleDB float64

	// StopbandDB is the stopband attenuation in dB (Chebyshev II, elliptic).
	StopbandDB float64
}

// Validate checks p without designing anything.
func (p Params) Validate() error {
	if p.Family < Butterworth || p.Family > Bessel {
		return fmt.Errorf("%w: %v", ErrInvalidFamily, p.Family)
	}
	if p.Band < Lowpass || p.Band > Bandstop {
		return fmt.Errorf("%w: %v", ErrInvalidBand, p.Band)
	}
	if p.Order < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidOrder, p.Order)
	}
	if p.Family == Bessel && p.Order > prototype.MaxBesselOrder {
		return fmt.Errorf("%w: bessel order %d > %d", ErrUnsupportedOrder, p.Order, prototype.MaxBesselOrder)
	}
	if !(p.Cutoff > 0 && p.Cutoff < 0.5) {
		return fmt.Errorf("%w: got %g", ErrInvalidCutoff, p.Cutoff)
	}

	switch p.Band {
	case Lowpass, Highpass:
		if p.Center != 0 {
			return fmt.Errorf("%w: %v requires center 0, got %g", ErrInvalidCenter, p.Band, p.Center)
		}
	case Bandpass, Bandstop:
		if !(p.Center > 0 && p.Center < 0.5) || p.Center == p.Cutoff {
			return fmt.Errorf("%w: %v center %g with cutoff %g", ErrInvalidCenter, p.Band, p.Center, p.Cutoff)
		}
	}

	if !positiveFinite(p.RippleDB) {
		return fmt.Errorf("%w: got %g", ErrInvalidRipple, p.RippleDB)
	}
	if !positiveFinite(p.StopbandDB) {
		return fmt.Errorf("%w: got %g", ErrInvalidAttenuation, p.StopbandDB)
	}
	if p.Family == Elliptic && p.StopbandDB <= p.RippleDB {
		return fmt.Errorf("%w: elliptic needs stopband %g dB > ripple %g dB", ErrInvalidAttenuation, p.StopbandDB, p.RippleDB)
	}
	return nil
}

// NumSections returns the number of second-order sections a valid design
// produces.
func (p Params) NumSections() int {
	if p.Band == Bandpass || p.Band == Bandstop {
		return p.Order
	}
	return (p.Order + 1) / 2
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
