package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	wavBitDepth  = 16
	wavChannels  = 2
	wavPCMFormat = 1
	maxInt16     = 32767.0
)

// writeWAV stores y as 16-bit stereo PCM, I on the left channel and Q on
// the right. Samples beyond full scale are clipped.
func writeWAV(path string, y []complex128, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create wav: %w", err)
	}

	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavChannels, wavPCMFormat)
	buf := &audio.IntBuffer{
		Data:           interleavePCM(y),
		Format:         &audio.Format{NumChannels: wavChannels, SampleRate: sampleRate},
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("finalize wav: %w", err)
	}
	return f.Close()
}

func interleavePCM(y []complex128) []int {
	out := make([]int, 0, 2*len(y))
	for _, v := range y {
		out = append(out, toPCM16(real(v)), toPCM16(imag(v)))
	}
	return out
}

func toPCM16(v float64) int {
	return int(math.Round(math.Max(-1, math.Min(1, v)) * maxInt16))
}
