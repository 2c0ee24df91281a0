package resample

import "github.com/cwbudde/algo-iirinterp/dsp/filter/design"

// Default design parameters used by NewPrototype.
const (
	DefaultFamily     = design.Butterworth
	DefaultBand       = design.Lowpass
	DefaultOrder      = 8
	DefaultRippleDB   = 0.1
	DefaultStopbandDB = 60.0
)

type config struct {
	family     design.Family
	band       design.Band
	order      int
	cutoff     float64
	cutoffSet  bool
	center     float64
	rippleDB   float64
	stopbandDB float64
}

// Option configures the filter designed by NewPrototype and Interpolate.
type Option func(*config)

// WithFamily selects the analog prototype family.
func WithFamily(f design.Family) Option {
	return func(cfg *config) { cfg.family = f }
}

// WithBand selects lowpass, highpass, bandpass or bandstop. Anything but
// lowpass passes images; it exists for band-shifted interpolation.
func WithBand(b design.Band) Option {
	return func(cfg *config) { cfg.band = b }
}

// WithOrder sets the prototype order.
func WithOrder(n int) Option {
	return func(cfg *config) { cfg.order = n }
}

// WithCutoff sets the band edge in cycles/sample at the output rate.
// The default is 0.5/k, the input Nyquist frequency.
func WithCutoff(fc float64) Option {
	return func(cfg *config) {
		cfg.cutoff = fc
		cfg.cutoffSet = true
	}
}

// WithCenter sets the band center for bandpass and bandstop designs.
func WithCenter(f0 float64) Option {
	return func(cfg *config) { cfg.center = f0 }
}

// WithRipple sets the passband ripple in dB.
func WithRipple(db float64) Option {
	return func(cfg *config) { cfg.rippleDB = db }
}

// WithAttenuation sets the stopband attenuation in dB.
func WithAttenuation(db float64) Option {
	return func(cfg *config) { cfg.stopbandDB = db }
}

func defaultConfig() config {
	return config{
		family:     DefaultFamily,
		band:       DefaultBand,
		order:      DefaultOrder,
		rippleDB:   DefaultRippleDB,
		stopbandDB: DefaultStopbandDB,
	}
}

func (c config) finalized(k int) config {
	if !c.cutoffSet {
		c.cutoff = 0.5 / float64(k)
	}
	return c
}

func (c config) params() design.Params {
	return design.Params{
		Family:     c.family,
		Band:       c.band,
		Order:      c.order,
		Cutoff:     c.cutoff,
		Center:     c.center,
		RippleDB:   c.rippleDB,
		StopbandDB: c.stopbandDB,
	}
}

// DesignParams returns the design parameters NewPrototype(k, opts...)
// would use.
func DesignParams(k int, opts ...Option) design.Params {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg.finalized(k).params()
}
