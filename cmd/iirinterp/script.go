package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// scriptData is everything the Octave script plots. Y already carries the
// interpolator gain, so the script does not rescale it.
type scriptData struct {
	K     int
	Delay float64
	NFFT  int
	X     []complex128
	Y     []complex128
}

func writeScriptFile(path string, d scriptData) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create script: %w", err)
	}
	bw := bufio.NewWriter(f)
	if err := writeScript(bw, filepath.Base(path), d); err != nil {
		_ = f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("write script: %w", err)
	}
	return f.Close()
}

func writeScript(w io.Writer, name string, d scriptData) error {
	ew := &errWriter{w: w}

	ew.printf("%% %s: auto-generated file\n\n", name)
	ew.printf("clear all;\nclose all;\n")
	ew.printf("k = %d;\n", d.K)
	ew.printf("delay = %f;\n", d.Delay)
	ew.printf("num_samples = %d;\n", len(d.X))
	ew.printf("x = zeros(1,  num_samples);\n")
	ew.printf("y = zeros(1,k*num_samples);\n")

	for i, v := range d.X {
		ew.printf("x(%4d) = %12.4e + j*%12.4e;\n", i+1, real(v), imag(v))
	}
	for i, v := range d.Y {
		ew.printf("y(%4d) = %12.4e + j*%12.4e;\n", i+1, real(v), imag(v))
	}

	ew.printf("\n\n")
	ew.printf("tx = [0:(  num_samples-1)];\n")
	ew.printf("ty = [0:(k*num_samples-1)]/k - delay;\n")
	ew.printf("figure;\n")
	for i, part := range []string{"real", "imag"} {
		ew.printf("subplot(2,1,%d);\n", i+1)
		ew.printf("    plot(tx,%s(x),'-s','MarkerSize',3,ty,%s(y),'-s','MarkerSize',1);\n", part, part)
		ew.printf("    legend('input','interp','location','northeast');\n")
		ew.printf("    axis([0 num_samples -1.2 1.2]);\n")
		ew.printf("    xlabel('time');\n")
		ew.printf("    ylabel('%s');\n", part)
		ew.printf("    grid on;\n")
	}

	ew.printf("nfft = %d;\n", d.NFFT)
	ew.printf("fx   = [0:(nfft-1)]/nfft - 0.5;\n")
	ew.printf("fy   = k*fx;\n")
	ew.printf("X    = 20*log10(abs(fftshift(fft(x  ,nfft))));\n")
	ew.printf("Y    = 20*log10(abs(fftshift(fft(y/k,nfft))));\n")
	ew.printf("figure;\n")
	ew.printf("plot(fx,X,'LineWidth',2, fy,Y,'LineWidth',1);\n")
	ew.printf("legend('input','interp','location','northeast');\n")
	ew.printf("xlabel('Normalized Frequency [f/F_s]');\n")
	ew.printf("ylabel('Power Spectral Density [dB]');\n")
	ew.printf("grid on;\n")

	if ew.err != nil {
		return fmt.Errorf("write script: %w", ew.err)
	}
	return nil
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
