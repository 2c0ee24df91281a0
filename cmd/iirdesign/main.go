// Command iirdesign prints properties of the interpolator filter designs.
//
// Usage:
//
//	iirdesign [flags] [family ...]
//
// Without arguments it prints info for every prototype family.
//
// Examples:
//
//	iirdesign butterworth
//	iirdesign -k 8 -order 6 cheby2 ellip
//	iirdesign -sections ellip
//	iirdesign -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
	"github.com/cwbudde/algo-iirinterp/dsp/filter/design"
	"github.com/cwbudde/algo-iirinterp/dsp/resample"
)

var registry = []design.Family{
	design.Butterworth,
	design.Chebyshev1,
	design.Chebyshev2,
	design.Elliptic,
	design.Bessel,
}

type config struct {
	k        int
	order    int
	cutoff   float64
	ripple   float64
	atten    float64
	sections bool

	// cutoffSet records an explicit -fc, including -fc 0.
	cutoffSet bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	list := false
	fs := flag.NewFlagSet("iirdesign", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.k, "k", 4, "interpolation factor the design is for")
	fs.IntVar(&cfg.order, "order", resample.DefaultOrder, "prototype order")
	fs.Float64Var(&cfg.cutoff, "fc", 0, "cutoff in cycles/sample (default 0.5/k)")
	fs.Float64Var(&cfg.ripple, "ripple", resample.DefaultRippleDB, "passband ripple in dB")
	fs.Float64Var(&cfg.atten, "atten", resample.DefaultStopbandDB, "stopband attenuation in dB")
	fs.BoolVar(&cfg.sections, "sections", false, "also print the quantized sections")
	fs.BoolVar(&list, "list", false, "list available families")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: iirdesign [flags] [family ...]\n\n")
		fmt.Fprintf(stderr, "Prints properties of fixed-point interpolator filter designs.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "fc" {
			cfg.cutoffSet = true
		}
	})

	if list {
		for _, f := range registry {
			fmt.Fprintln(stdout, f)
		}
		return nil
	}

	families, err := resolveFamilies(fs.Args())
	if err != nil {
		return err
	}
	return printAnalysis(stdout, families, cfg)
}

func resolveFamilies(names []string) ([]design.Family, error) {
	if len(names) == 0 {
		return registry, nil
	}
	out := make([]design.Family, 0, len(names))
	for _, name := range names {
		f, err := design.ParseFamily(name)
		if err != nil {
			return nil, fmt.Errorf("%w (use -list to see available)", err)
		}
		out = append(out, f)
	}
	return out, nil
}

// analysis summarizes one quantized design.
type analysis struct {
	sections   []biquad.FixedCoefficients
	poleRadius float64
	passbandDB float64
	edgeDB     float64
	imageDB    float64
}

func analyze(p design.Params, k int) (analysis, error) {
	fixedSecs, err := design.DesignFixed(p)
	if err != nil {
		return analysis{}, err
	}
	coeffs := make([]biquad.Coefficients, len(fixedSecs))
	for i := range fixedSecs {
		coeffs[i] = fixedSecs[i].Float()
	}

	magDB := func(f float64) float64 {
		h := biquad.CascadeResponse(coeffs, f)
		return 20 * math.Log10(math.Hypot(real(h), imag(h)))
	}

	// Worst passband deviation over [0, fc/2] and worst leakage from the
	// first image of that band, [1/k - fc/2, 0.5].
	a := analysis{sections: fixedSecs, poleRadius: biquad.MaxPoleRadius(coeffs), edgeDB: magDB(p.Cutoff)}
	const points = 256
	lo := 1/float64(k) - p.Cutoff/2
	for i := range points + 1 {
		pass := magDB(p.Cutoff / 2 * float64(i) / points)
		if math.Abs(pass) > math.Abs(a.passbandDB) {
			a.passbandDB = pass
		}
		img := magDB(lo + (0.5-lo)*float64(i)/points)
		if i == 0 || img > a.imageDB {
			a.imageDB = img
		}
	}
	return a, nil
}

func printAnalysis(w io.Writer, families []design.Family, cfg config) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Family\tOrder\tSections\tMax |p|\tPassband [dB]\tEdge [dB]\tImage band [dB]\n")
	fmt.Fprintf(tw, "------\t-----\t--------\t-------\t-------------\t---------\t---------------\n")

	var details strings.Builder
	for _, f := range families {
		opts := []resample.Option{
			resample.WithFamily(f),
			resample.WithOrder(cfg.order),
			resample.WithRipple(cfg.ripple),
			resample.WithAttenuation(cfg.atten),
		}
		if cfg.cutoffSet {
			opts = append(opts, resample.WithCutoff(cfg.cutoff))
		}
		p := resample.DesignParams(cfg.k, opts...)

		a, err := analyze(p, cfg.k)
		if err != nil {
			fmt.Fprintf(tw, "%v\t%d\t-\t-\t-\t-\t%v\n", f, p.Order, err)
			continue
		}
		fmt.Fprintf(tw, "%v\t%d\t%d\t%.6f\t%.3f\t%.2f\t%.1f\n",
			f, p.Order, len(a.sections), a.poleRadius, a.passbandDB, a.edgeDB, a.imageDB)

		if cfg.sections {
			fmt.Fprintf(&details, "\n%v sections (Q15.16):\n", f)
			for i, s := range a.sections {
				fmt.Fprintf(&details, "  %d: b=[%v %v %v] a=[1 %v %v]\n", i, s.B0, s.B1, s.B2, s.A1, s.A2)
			}
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	_, err := io.WriteString(w, details.String())
	return err
}
