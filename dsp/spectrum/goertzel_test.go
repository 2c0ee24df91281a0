package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-iirinterp/internal/testutil"
)

func TestGoertzelMatchesDFT(t *testing.T) {
	x := testutil.DeterministicNoise(3, 1, 50)

	for _, f := range []float64{-0.4, -0.125, 0, 0.1, 0.5} {
		g, err := NewGoertzel(f)
		if err != nil {
			t.Fatalf("NewGoertzel(%v) error: %v", f, err)
		}
		g.ProcessBlock(x[:20])
		for _, v := range x[20:] {
			g.ProcessSample(v)
		}

		var want complex128
		for n, v := range x {
			want += v * cmplx.Rect(1, -2*math.Pi*f*float64(n))
		}
		if d := cmplx.Abs(g.Bin() - want); d > 1e-9 {
			t.Fatalf("f=%v: Bin = %v, want %v", f, g.Bin(), want)
		}
		if math.Abs(g.Power()-cmplx.Abs(want)*cmplx.Abs(want)) > 1e-7 {
			t.Fatalf("f=%v: Power mismatch", f)
		}
		if g.Count() != 50 {
			t.Fatalf("Count = %d, want 50", g.Count())
		}
	}
}

func TestGoertzelToneAmplitude(t *testing.T) {
	g, err := NewGoertzel(0.0625)
	if err != nil {
		t.Fatalf("NewGoertzel error: %v", err)
	}
	g.ProcessBlock(testutil.Tone(0.0625, 0.3, 256))
	if a := g.Amplitude(); math.Abs(a-0.3) > 1e-9 {
		t.Fatalf("Amplitude = %v, want 0.3", a)
	}

	g.Reset()
	if g.Amplitude() != 0 || g.Bin() != 0 || g.Count() != 0 {
		t.Fatal("Reset should clear the state")
	}
}

func TestGoertzelFrequencyRange(t *testing.T) {
	for _, f := range []float64{-0.51, 0.6, math.NaN(), math.Inf(1)} {
		if _, err := NewGoertzel(f); err == nil {
			t.Fatalf("NewGoertzel(%v) should fail", f)
		}
	}

	g, _ := NewGoertzel(0.1)
	if err := g.SetFrequency(0.7); err == nil {
		t.Fatal("SetFrequency(0.7) should fail")
	}
	if err := g.SetFrequency(-0.25); err != nil || g.Frequency() != -0.25 {
		t.Fatalf("SetFrequency(-0.25) = %v, frequency %v", err, g.Frequency())
	}
}

func TestMultiGoertzel(t *testing.T) {
	x := testutil.Tone(0.125, 1, 64)
	tone2 := testutil.Tone(-0.25, 0.5, 64)
	for i := range x {
		x[i] += tone2[i]
	}

	m, err := NewMultiGoertzel([]float64{0.125, -0.25, 0.375})
	if err != nil {
		t.Fatalf("NewMultiGoertzel error: %v", err)
	}
	m.ProcessBlock(x)
	amps := m.Amplitudes()
	want := []float64{1, 0.5, 0}
	for i := range want {
		if math.Abs(amps[i]-want[i]) > 1e-9 {
			t.Fatalf("amplitude[%d] = %v, want %v", i, amps[i], want[i])
		}
	}

	m.Reset()
	for i, a := range m.Amplitudes() {
		if a != 0 {
			t.Fatalf("amplitude[%d] after reset = %v", i, a)
		}
	}

	if _, err := NewMultiGoertzel([]float64{0.1, 0.9}); err == nil {
		t.Fatal("expected error for out-of-range frequency")
	}
}
