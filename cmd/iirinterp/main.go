// Command iirinterp runs a test signal through the fixed-point IIR
// interpolator and exports the result for inspection.
//
// Usage:
//
//	iirinterp [flags]
//
// The command writes an Octave/MATLAB script plotting input and output in
// time and frequency, and optionally a stereo WAV file holding the I and Q
// parts of the output.
//
// Examples:
//
//	iirinterp -k 4 -n 64
//	iirinterp -k 8 -family ellip -order 6 -o out.m
//	iirinterp -signal tone -tone 0.25 -n 2048
//	iirinterp -wav out.wav -rate 48000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/design"
	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
	"github.com/cwbudde/algo-iirinterp/dsp/resample"
	"github.com/cwbudde/algo-iirinterp/dsp/signal"
	"github.com/cwbudde/algo-iirinterp/measure/imagerej"
)

const defaultScript = "iirinterp_example.m"

type options struct {
	k       int
	n       int
	script  string
	wavPath string
	rate    int
	family  string
	band    string
	order   int
	cutoff  float64
	center  float64
	ripple  float64
	atten   float64
	sig     string
	tone    float64
	nfft    int
	verbose bool

	// cutoffSet records an explicit -fc, including -fc 0.
	cutoffSet bool
}

var errUsage = errors.New("usage")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: iirinterp: %v\n", err)
		}
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("iirinterp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&o.k, "k", 4, "interpolation factor, k > 1")
	fs.IntVar(&o.n, "n", 64, "number of input samples")
	fs.StringVar(&o.script, "o", defaultScript, "output Octave script path (empty to skip)")
	fs.StringVar(&o.wavPath, "wav", "", "optional stereo I/Q WAV output path")
	fs.IntVar(&o.rate, "rate", 48000, "WAV sample rate of the interpolated output")
	fs.StringVar(&o.family, "family", "butterworth", "prototype: butterworth, cheby1, cheby2, ellip, bessel")
	fs.StringVar(&o.band, "band", "lowpass", "band: lowpass, highpass, bandpass, bandstop")
	fs.IntVar(&o.order, "order", resample.DefaultOrder, "prototype order")
	fs.Float64Var(&o.cutoff, "fc", 0, "cutoff in cycles/sample at the output rate (default 0.5/k)")
	fs.Float64Var(&o.center, "f0", 0, "center frequency for bandpass/bandstop")
	fs.Float64Var(&o.ripple, "ripple", resample.DefaultRippleDB, "passband ripple in dB")
	fs.Float64Var(&o.atten, "atten", resample.DefaultStopbandDB, "stopband attenuation in dB")
	fs.StringVar(&o.sig, "signal", "chirp", "input signal: chirp, tone, impulse")
	fs.Float64Var(&o.tone, "tone", 0.25, "tone frequency in cycles/sample at the input rate")
	fs.IntVar(&o.nfft, "nfft", 1024, "FFT size of the spectrum plots")
	fs.BoolVar(&o.verbose, "v", false, "log progress to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: iirinterp [flags]\n\n")
		fmt.Fprintf(stderr, "Interpolates a test signal by k with a fixed-point IIR cascade.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fc" {
			o.cutoffSet = true
		}
	})

	switch {
	case o.k < 2:
		fmt.Fprintf(stderr, "error: iirinterp: interp factor must be greater than 1\n")
		return o, errUsage
	case o.n < 1:
		fmt.Fprintf(stderr, "error: iirinterp: must have at least one input sample\n")
		fs.Usage()
		return o, errUsage
	}
	return o, nil
}

func (o options) designOptions() ([]resample.Option, error) {
	family, err := design.ParseFamily(o.family)
	if err != nil {
		return nil, err
	}
	band, err := design.ParseBand(o.band)
	if err != nil {
		return nil, err
	}
	opts := []resample.Option{
		resample.WithFamily(family),
		resample.WithBand(band),
		resample.WithOrder(o.order),
		resample.WithCenter(o.center),
		resample.WithRipple(o.ripple),
		resample.WithAttenuation(o.atten),
	}
	if o.cutoffSet {
		opts = append(opts, resample.WithCutoff(o.cutoff))
	}
	return opts, nil
}

func (o options) input() ([]complex128, error) {
	g := signal.NewGenerator()
	switch o.sig {
	case "chirp":
		return g.Chirp(o.n)
	case "tone":
		return g.Tone(o.tone, 0.5, o.n)
	case "impulse":
		return g.Impulse(o.n)
	default:
		return nil, fmt.Errorf("unknown signal %q", o.sig)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	logger := log.New(io.Discard, "", 0)
	if o.verbose {
		logger = log.New(stderr, "iirinterp: ", log.Ltime)
	}

	dopts, err := o.designOptions()
	if err != nil {
		return err
	}
	params := resample.DesignParams(o.k, dopts...)
	it, err := resample.NewPrototype(o.k, dopts...)
	if err != nil {
		return err
	}
	defer it.Close()
	logger.Printf("designed %v %v order %d, %d sections", params.Family, params.Band, params.Order, it.NumSections())

	xf, err := o.input()
	if err != nil {
		return err
	}
	x := signal.ToFixed(xf)
	y := make([]fixed.Complex, o.k*len(x))
	for i := range x {
		if err := it.ExecuteInto(y[o.k*i:], x[i]); err != nil {
			return err
		}
	}
	logger.Printf("interpolated %d samples into %d", len(x), len(y))

	delay, err := passbandDelay(it.Sections(), params)
	if err != nil {
		return err
	}
	printSummary(stdout, params, it, delay/float64(o.k))

	if o.sig == "tone" {
		res, err := imagerej.Analyze(signal.FromFixed(y), o.k, o.tone)
		if err != nil {
			return err
		}
		printRejection(stdout, res)
	}

	if o.script != "" {
		if err := writeScriptFile(o.script, scriptData{
			K:     o.k,
			Delay: delay / float64(o.k),
			NFFT:  o.nfft,
			X:     signal.FromFixed(x),
			Y:     signal.FromFixed(y),
		}); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "results written to %s.\n", o.script)
	}

	if o.wavPath != "" {
		if err := writeWAV(o.wavPath, signal.FromFixed(y), o.rate); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "audio written to %s.\n", o.wavPath)
	}

	fmt.Fprintln(stdout, "done.")
	return nil
}

func printSummary(w io.Writer, p design.Params, it *resample.Interpolator, delay float64) {
	fmt.Fprintf(w, "iirinterp: k=%d %v %v order=%d fc=%.4f\n", it.Factor(), p.Family, p.Band, p.Order, p.Cutoff)
	fmt.Fprintf(w, "passband delay: %.3f input samples\n\n", delay)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "section\tb0\tb1\tb2\ta1\ta2\t")
	for i, s := range it.Sections() {
		fmt.Fprintf(tw, "%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t\n",
			i, s.B0.Float(), s.B1.Float(), s.B2.Float(), s.A1.Float(), s.A2.Float())
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func printRejection(w io.Writer, res imagerej.Result) {
	fmt.Fprintf(w, "wanted tone at %.4f: level %.4f\n", res.WantedFreq, res.WantedLevel)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "image\tfrequency\trejection [dB]\t")
	for i, f := range res.ImageFreqs {
		fmt.Fprintf(tw, "%d\t%.4f\t%.1f\t\n", i+1, f, res.RejectionDB[i])
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "worst image rejection: %.1f dB\n\n", res.WorstRejectionDB)
}
