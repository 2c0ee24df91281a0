package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-iirinterp/dsp/filter/biquad"
	"github.com/cwbudde/algo-iirinterp/dsp/filter/design"
	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
	"github.com/cwbudde/algo-iirinterp/internal/testutil"
)

func mustPrototype(t *testing.T, k int, opts ...Option) *Interpolator {
	t.Helper()
	it, err := NewPrototype(k, opts...)
	if err != nil {
		t.Fatalf("NewPrototype(%d) error: %v", k, err)
	}
	return it
}

func run(t *testing.T, it *Interpolator, src []fixed.Complex) []fixed.Complex {
	t.Helper()
	dst := make([]fixed.Complex, it.Factor()*len(src))
	if err := it.ExecuteBlock(dst, src); err != nil {
		t.Fatalf("ExecuteBlock error: %v", err)
	}
	return dst
}

func TestNewInterpolatorValidation(t *testing.T) {
	sections, err := design.DesignFixed(DesignParams(4))
	if err != nil {
		t.Fatalf("DesignFixed error: %v", err)
	}

	tests := []struct {
		name     string
		sections []biquad.FixedCoefficients
		k        int
		want     error
	}{
		{"factor one", sections, 1, ErrInvalidFactor},
		{"factor zero", sections, 0, ErrInvalidFactor},
		{"negative factor", sections, -3, ErrInvalidFactor},
		{"no sections", nil, 4, ErrNoSections},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewInterpolator(tc.sections, tc.k)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrBuild) {
				t.Fatalf("error = %v, want ErrBuild category", err)
			}
		})
	}
}

func TestNewPrototypeDesignErrors(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"zero order", []Option{WithOrder(0)}, design.ErrInvalidOrder},
		{"cutoff at nyquist", []Option{WithCutoff(0.5)}, design.ErrInvalidCutoff},
		{"zero cutoff", []Option{WithCutoff(0)}, design.ErrInvalidCutoff},
		{"negative cutoff", []Option{WithCutoff(-0.1)}, design.ErrInvalidCutoff},
		{"bessel too long", []Option{WithFamily(design.Bessel), WithOrder(11)}, design.ErrUnsupportedOrder},
		{"bandpass no center", []Option{WithBand(design.Bandpass)}, design.ErrInvalidCenter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPrototype(4, tc.opts...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, design.ErrDesign) {
				t.Fatalf("error = %v, want design.ErrDesign category", err)
			}
		})
	}

	if _, err := NewPrototype(1); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("NewPrototype(1) error = %v, want ErrInvalidFactor", err)
	}
}

func TestDesignParamsDefaults(t *testing.T) {
	p := DesignParams(4)
	want := design.Params{
		Family:     design.Butterworth,
		Band:       design.Lowpass,
		Order:      8,
		Cutoff:     0.125,
		RippleDB:   0.1,
		StopbandDB: 60,
	}
	if p != want {
		t.Fatalf("DesignParams(4) = %+v, want %+v", p, want)
	}

	p = DesignParams(2, WithCutoff(0.2), nil, WithOrder(4))
	if p.Cutoff != 0.2 || p.Order != 4 {
		t.Fatalf("options not applied: %+v", p)
	}
}

func TestAccessors(t *testing.T) {
	it := mustPrototype(t, 3, WithOrder(5))
	if it.Factor() != 3 || it.Gain() != 3 {
		t.Fatalf("Factor/Gain = %d/%d, want 3/3", it.Factor(), it.Gain())
	}
	if it.NumSections() != 3 {
		t.Fatalf("NumSections = %d, want 3", it.NumSections())
	}
	secs := it.Sections()
	secs[0].B0 = 12345
	if it.Sections()[0].B0 == 12345 {
		t.Fatal("Sections must return a copy")
	}
	if got := len(it.State()); got != 3 {
		t.Fatalf("len(State) = %d, want 3", got)
	}
}

func TestNewInterpolatorCopiesSections(t *testing.T) {
	sections, err := design.DesignFixed(DesignParams(2, WithOrder(4)))
	if err != nil {
		t.Fatalf("DesignFixed error: %v", err)
	}
	it, err := NewInterpolator(sections, 2)
	if err != nil {
		t.Fatalf("NewInterpolator error: %v", err)
	}
	want := sections[0]
	sections[0] = biquad.FixedCoefficients{}
	if it.Sections()[0] != want {
		t.Fatal("interpolator must not alias the caller's sections")
	}
}

func TestOutputLength(t *testing.T) {
	for _, k := range []int{2, 3, 4, 7} {
		it := mustPrototype(t, k)
		for i := range 10 {
			out, err := it.Execute(fixed.Complex{Re: fixed.FromFloat(0.1 * float64(i))})
			if err != nil {
				t.Fatalf("Execute error: %v", err)
			}
			if len(out) != k {
				t.Fatalf("k=%d: len(out) = %d, want %d", k, len(out), k)
			}
		}
		src := testutil.ToFixed(testutil.DeterministicNoise(1, 0.5, 13))
		if got := len(run(t, it, src)); got != 13*k {
			t.Fatalf("k=%d: block output length = %d, want %d", k, got, 13*k)
		}
	}
}

func TestResetGivesRest(t *testing.T) {
	it := mustPrototype(t, 4, WithFamily(design.Elliptic))
	run(t, it, testutil.ToFixed(testutil.DeterministicNoise(7, 0.8, 64)))

	nonZero := false
	for _, st := range it.State() {
		if !st[0].IsZero() || !st[1].IsZero() {
			nonZero = true
		}
	}
	if !nonZero {
		t.Fatal("state should be non-zero after noise input")
	}

	if err := it.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	for i, v := range run(t, it, make([]fixed.Complex, 32)) {
		if !v.IsZero() {
			t.Fatalf("output[%d] = %v after reset with zero input, want 0", i, v)
		}
	}
}

func TestDeterministic(t *testing.T) {
	src := testutil.ToFixed(testutil.DeterministicNoise(3, 0.9, 100))
	opts := []Option{WithFamily(design.Chebyshev1), WithRipple(0.5)}

	a := run(t, mustPrototype(t, 5, opts...), src)
	b := run(t, mustPrototype(t, 5, opts...), src)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("output[%d] differs: %v vs %v", i, a[i], b[i])
		}
	}

	// A reset interpolator replays the stream bit for bit.
	it := mustPrototype(t, 5, opts...)
	run(t, it, src)
	if err := it.Reset(); err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	c := run(t, it, src)
	for i := range a {
		if a[i] != c[i] {
			t.Fatalf("output[%d] after reset differs: %v vs %v", i, a[i], c[i])
		}
	}
}

func TestExecuteVariantsAgree(t *testing.T) {
	src := testutil.ToFixed(testutil.DeterministicNoise(11, 0.5, 40))
	k := 3

	viaBlock := run(t, mustPrototype(t, k), src)

	single := mustPrototype(t, k)
	into := mustPrototype(t, k)
	buf := make([]fixed.Complex, k)
	for i, x := range src {
		out, err := single.Execute(x)
		if err != nil {
			t.Fatalf("Execute error: %v", err)
		}
		if err := into.ExecuteInto(buf, x); err != nil {
			t.Fatalf("ExecuteInto error: %v", err)
		}
		for j := range k {
			want := viaBlock[i*k+j]
			if out[j] != want || buf[j] != want {
				t.Fatalf("sample %d/%d: Execute=%v ExecuteInto=%v ExecuteBlock=%v", i, j, out[j], buf[j], want)
			}
		}
	}
}

func TestImpulseMatchesFloatCascade(t *testing.T) {
	const k = 2
	p := DesignParams(k, WithOrder(4), WithCutoff(0.25))
	sections, err := design.DesignFixed(p)
	if err != nil {
		t.Fatalf("DesignFixed error: %v", err)
	}
	it, err := NewInterpolator(sections, k)
	if err != nil {
		t.Fatalf("NewInterpolator error: %v", err)
	}

	out := run(t, it, testutil.ToFixed(testutil.Impulse(8, 0)))
	if len(out) != 16 {
		t.Fatalf("len(out) = %d, want 16", len(out))
	}

	ref := make([]biquad.Coefficients, len(sections))
	for i := range sections {
		ref[i] = sections[i].Float()
	}
	h := biquad.NewChain(ref).ImpulseResponse(16)

	want := make([]complex128, len(h))
	for i := range h {
		want[i] = complex(k*h[i], 0)
	}
	testutil.RequireComplexNearlyEqual(t, testutil.ToComplex(out), want, 2e-3)
	for i, v := range out {
		if v.Im != 0 {
			t.Fatalf("out[%d] has imaginary part %v for a real impulse", i, v.Im)
		}
	}

	// The response decays at the rate of the slowest pole.
	r := biquad.MaxPoleRadius(ref)
	if r >= 1 {
		t.Fatalf("max pole radius %v, want < 1", r)
	}
	more := run(t, it, make([]fixed.Complex, 64))
	tail := more[len(more)-1].Complex128()
	if math.Hypot(real(tail), imag(tail)) > 1e-3 {
		t.Fatalf("impulse response did not decay: tail = %v", tail)
	}
}

func TestConstantInputSettlesToInput(t *testing.T) {
	const c = 0.5
	for _, k := range []int{2, 4} {
		it := mustPrototype(t, k)
		out := run(t, it, testutil.ToFixed(testutil.DC(c, 200)))
		for _, v := range out[len(out)-4*k:] {
			if got := v.Re.Float(); math.Abs(got-c) > 0.01*c {
				t.Fatalf("k=%d: settled output %v, want %v within 1%%", k, got, c)
			}
		}
	}
}

func TestImageRejection(t *testing.T) {
	const (
		k      = 4
		toneIn = 0.25 // cycles/sample at the input rate
		n      = 4096 // analysis length at the output rate
	)
	tests := []struct {
		family design.Family
		minDB  float64
	}{
		{design.Chebyshev2, DefaultStopbandDB - 6},
		{design.Elliptic, DefaultStopbandDB - 10},
	}
	for _, tc := range tests {
		t.Run(tc.family.String(), func(t *testing.T) {
			it := mustPrototype(t, k, WithFamily(tc.family), WithOrder(8), WithCutoff(0.125))
			src := testutil.ToFixed(testutil.Tone(toneIn, 0.5, 2048+n/k))
			out := testutil.ToComplex(run(t, it, src))
			out = out[len(out)-n:]

			wanted := testutil.BinAmplitude(out, toneIn/k)
			if math.Abs(wanted-0.5) > 0.05 {
				t.Fatalf("wanted tone amplitude %v, want about 0.5", wanted)
			}
			for m := 1; m < k; m++ {
				image := (toneIn + float64(m)) / k
				amp := testutil.BinAmplitude(out, image)
				rej := 20 * math.Log10(wanted/amp)
				if rej < tc.minDB {
					t.Fatalf("image at %v rejected by %.1f dB, want >= %.1f", image, rej, tc.minDB)
				}
			}
		})
	}
}

func TestUsageErrorsLeaveStateUntouched(t *testing.T) {
	it := mustPrototype(t, 4)
	run(t, it, testutil.ToFixed(testutil.DeterministicNoise(5, 0.5, 8)))
	before := it.State()

	err := it.ExecuteInto(make([]fixed.Complex, 3), fixed.Complex{Re: fixed.One})
	if !errors.Is(err, ErrShortBuffer) || !errors.Is(err, ErrUsage) {
		t.Fatalf("ExecuteInto error = %v, want ErrShortBuffer", err)
	}
	err = it.ExecuteBlock(make([]fixed.Complex, 7), make([]fixed.Complex, 2))
	if !errors.Is(err, ErrShortBuffer) {
		t.Fatalf("ExecuteBlock error = %v, want ErrShortBuffer", err)
	}

	after := it.State()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("state of section %d changed on a failed call", i)
		}
	}
}

func TestClose(t *testing.T) {
	it := mustPrototype(t, 2)
	if err := it.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if it.NumSections() != 0 {
		t.Fatalf("NumSections after Close = %d, want 0", it.NumSections())
	}

	checks := map[string]error{}
	_, checks["Execute"] = it.Execute(fixed.Complex{})
	checks["ExecuteInto"] = it.ExecuteInto(make([]fixed.Complex, 2), fixed.Complex{})
	checks["ExecuteBlock"] = it.ExecuteBlock(nil, nil)
	checks["Reset"] = it.Reset()
	checks["Close"] = it.Close()
	for name, err := range checks {
		if !errors.Is(err, ErrClosed) || !errors.Is(err, ErrUsage) {
			t.Fatalf("%s after Close error = %v, want ErrClosed", name, err)
		}
	}
}

func TestInterpolate(t *testing.T) {
	src := testutil.ToFixed(testutil.DeterministicNoise(9, 0.5, 20))
	got, err := Interpolate(src, 3)
	if err != nil {
		t.Fatalf("Interpolate error: %v", err)
	}
	want := run(t, mustPrototype(t, 3), src)
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("sample %d: %v vs %v", i, got[i], want[i])
		}
	}

	if _, err := Interpolate(src, 1); !errors.Is(err, ErrInvalidFactor) {
		t.Fatalf("Interpolate k=1 error = %v, want ErrInvalidFactor", err)
	}
}

func BenchmarkExecuteInto(b *testing.B) {
	it, err := NewPrototype(4)
	if err != nil {
		b.Fatal(err)
	}
	dst := make([]fixed.Complex, 4)
	x := fixed.Complex{Re: fixed.FromFloat(0.25), Im: fixed.FromFloat(-0.5)}
	b.ReportAllocs()
	for b.Loop() {
		_ = it.ExecuteInto(dst, x)
	}
}

func TestNoiseTracksFloatCascade(t *testing.T) {
	const k = 4
	it := mustPrototype(t, k)
	src := testutil.ToFixed(testutil.DeterministicNoise(5, 0.25, 128))
	got := testutil.ToComplex(run(t, it, src))

	ref := make([]biquad.Coefficients, it.NumSections())
	for i, s := range it.Sections() {
		ref[i] = s.Float()
	}
	chain := biquad.NewChain(ref)
	want := make([]complex128, 0, len(got))
	for _, x := range testutil.ToComplex(src) {
		for j := range k {
			var v complex128
			if j == 0 {
				v = x
			}
			want = append(want, k*chain.ProcessSample(v))
		}
	}

	d, err := testutil.MaxAbsDiff(got, want)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}
	if d > 0.02 {
		t.Fatalf("fixed-point output deviates from float cascade by %v", d)
	}
}

func TestUnbuiltInterpolator(t *testing.T) {
	var zero Interpolator
	handles := map[string]*Interpolator{"nil": nil, "zero value": &zero}
	for name, it := range handles {
		t.Run(name, func(t *testing.T) {
			out, err := it.Execute(fixed.Complex{Re: fixed.One})
			if out != nil {
				t.Fatalf("Execute returned %d samples, want none", len(out))
			}
			checks := map[string]error{
				"Execute":      err,
				"ExecuteInto":  it.ExecuteInto(make([]fixed.Complex, 4), fixed.Complex{}),
				"ExecuteBlock": it.ExecuteBlock(make([]fixed.Complex, 4), make([]fixed.Complex, 1)),
				"Reset":        it.Reset(),
				"Close":        it.Close(),
			}
			for op, err := range checks {
				if !errors.Is(err, ErrNotBuilt) || !errors.Is(err, ErrUsage) {
					t.Fatalf("%s error = %v, want ErrNotBuilt", op, err)
				}
			}
		})
	}
}

func TestImpulseSettlesToExactZero(t *testing.T) {
	const maxCalls = 500
	tests := []struct {
		name string
		k    int
		opts []Option
	}{
		{"default k=4", 4, nil},
		{"default k=8", 8, nil},
		{"elliptic k=4", 4, []Option{WithFamily(design.Elliptic)}},
		{"chebyshev2 k=4", 4, []Option{WithFamily(design.Chebyshev2)}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			it := mustPrototype(t, tc.k, tc.opts...)
			if _, err := it.Execute(fixed.Complex{Re: fixed.One}); err != nil {
				t.Fatalf("Execute error: %v", err)
			}

			settled := -1
			for n := range maxCalls {
				if _, err := it.Execute(fixed.Complex{}); err != nil {
					t.Fatalf("Execute error: %v", err)
				}
				if isRest(it) {
					settled = n
					break
				}
			}
			if settled < 0 {
				t.Fatalf("state not zero after %d silent calls: %v", maxCalls, it.State())
			}

			for range 8 {
				out, err := it.Execute(fixed.Complex{})
				if err != nil {
					t.Fatalf("Execute error: %v", err)
				}
				for i, v := range out {
					if !v.IsZero() {
						t.Fatalf("output %d = %v after settling at call %d", i, v, settled)
					}
				}
			}
		})
	}
}

func isRest(it *Interpolator) bool {
	for _, st := range it.State() {
		if st != (biquad.FixedState{}) {
			return false
		}
	}
	return true
}

func TestRailInputSaturatesWithoutError(t *testing.T) {
	const k = 4
	it := mustPrototype(t, k)
	x := fixed.Complex{Re: fixed.Max, Im: fixed.Min}

	var peakRe, troughIm fixed.Q16
	for n := range 64 {
		out, err := it.Execute(x)
		if err != nil {
			t.Fatalf("call %d: Execute error: %v", n, err)
		}
		if len(out) != k {
			t.Fatalf("call %d: %d samples, want %d", n, len(out), k)
		}
		for i, v := range out {
			peakRe = max(peakRe, v.Re)
			troughIm = min(troughIm, v.Im)
			// Past the onset a wrapped accumulator would flip the sign.
			if n >= 2 && (v.Re <= 0 || v.Im >= 0) {
				t.Fatalf("call %d sample %d = %v, want positive real and negative imaginary", n, i, v)
			}
		}
	}
	if peakRe < fixed.Max/2 || troughIm > fixed.Min/2 {
		t.Fatalf("peak %v / trough %v, want output near the rails", peakRe, troughIm)
	}
}
