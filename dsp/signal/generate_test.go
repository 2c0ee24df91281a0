package signal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-iirinterp/dsp/fixed"
)

func TestChirpShape(t *testing.T) {
	g := NewGenerator()
	x, err := g.Chirp(64)
	if err != nil {
		t.Fatalf("Chirp() error = %v", err)
	}
	if len(x) != 64 {
		t.Fatalf("len = %d, want 64", len(x))
	}

	// Hamming envelope: 0.08 at the start, near 1 in the middle.
	if math.Abs(cmplx.Abs(x[0])-0.08) > 1e-12 {
		t.Fatalf("|x[0]| = %v, want 0.08", cmplx.Abs(x[0]))
	}
	if cmplx.Abs(x[32]) < 0.99 {
		t.Fatalf("|x[32]| = %v, want near 1", cmplx.Abs(x[32]))
	}
	for i := 64 - ChirpTail; i < 64; i++ {
		if x[i] != 0 {
			t.Fatalf("x[%d] = %v, want 0 in the tail", i, x[i])
		}
	}

	// Phase follows -0.17*i + 0.9*i^2/n.
	i := 10.0
	want := cmplx.Rect(cmplx.Abs(x[10]), -0.17*i+0.9*i*i/64)
	if cmplx.Abs(x[10]-want) > 1e-12 {
		t.Fatalf("x[10] = %v, want %v", x[10], want)
	}
}

func TestChirpShort(t *testing.T) {
	g := NewGenerator()
	x, err := g.Chirp(3)
	if err != nil {
		t.Fatalf("Chirp() error = %v", err)
	}
	for i, v := range x {
		if v != 0 {
			t.Fatalf("x[%d] = %v, want all zero when n <= tail", i, v)
		}
	}
	if _, err := g.Chirp(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestTone(t *testing.T) {
	g := NewGenerator()
	x, err := g.Tone(0.25, 0.5, 4)
	if err != nil {
		t.Fatalf("Tone() error = %v", err)
	}
	want := []complex128{0.5, 0.5i, -0.5, -0.5i}
	for i := range x {
		if cmplx.Abs(x[i]-want[i]) > 1e-15 {
			t.Fatalf("x[%d] = %v, want %v", i, x[i], want[i])
		}
	}
	if _, err := g.Tone(0.6, 1, 4); err == nil {
		t.Fatal("expected error for frequency above Nyquist")
	}
	if _, err := g.Tone(0.1, 1, 0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestImpulse(t *testing.T) {
	x, err := NewGenerator().Impulse(4)
	if err != nil {
		t.Fatalf("Impulse() error = %v", err)
	}
	if x[0] != 1 || x[1] != 0 || x[3] != 0 {
		t.Fatalf("Impulse = %v", x)
	}
	if _, err := NewGenerator().Impulse(0); err == nil {
		t.Fatal("expected error for zero length")
	}
}

func TestWhiteNoiseDeterministic(t *testing.T) {
	n1, err := NewGenerator(WithSeed(42)).WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	n2, err := NewGenerator(WithSeed(42)).WhiteNoise(1, 16)
	if err != nil {
		t.Fatalf("WhiteNoise() error = %v", err)
	}
	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}
		if math.Abs(real(n1[i])) > 1 || math.Abs(imag(n1[i])) > 1 {
			t.Fatalf("noise[%d] = %v out of range", i, n1[i])
		}
	}
	if _, err := NewGenerator().WhiteNoise(-1, 4); err == nil {
		t.Fatal("expected error for negative amplitude")
	}
}

func TestSetSeed(t *testing.T) {
	g := NewGenerator()
	g.SetSeed(99)
	if g.Seed() != 99 {
		t.Fatalf("Seed()=%d, want 99", g.Seed())
	}

	a, _ := g.WhiteNoise(1, 8)
	g.SetSeed(100)
	b, _ := g.WhiteNoise(1, 8)

	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestNormalize(t *testing.T) {
	out, err := Normalize([]complex128{3 + 4i, -1, 0.5i}, 1)
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if cmplx.Abs(out[0]-(0.6+0.8i)) > 1e-15 || cmplx.Abs(out[1]+0.2) > 1e-15 {
		t.Fatalf("Normalize = %v", out)
	}

	zero, err := Normalize([]complex128{0, 0}, 1)
	if err != nil || zero[0] != 0 {
		t.Fatalf("Normalize(zeros) = %v, %v", zero, err)
	}
	if _, err := Normalize(nil, 1); err == nil {
		t.Fatal("expected error for empty input")
	}
	if _, err := Normalize([]complex128{1}, -1); err == nil {
		t.Fatal("expected error for negative peak")
	}
}

func TestFixedConversion(t *testing.T) {
	x := []complex128{0.5 - 0.25i, 1e6, -3}
	q := ToFixed(x)
	if q[0].Re != fixed.One/2 || q[0].Im != -fixed.One/4 {
		t.Fatalf("ToFixed(%v) = %v", x[0], q[0])
	}
	if q[1].Re != fixed.Max {
		t.Fatalf("ToFixed should saturate, got %v", q[1])
	}
	back := FromFixed(q)
	if back[0] != x[0] || back[2] != x[2] {
		t.Fatalf("FromFixed = %v", back)
	}
}
