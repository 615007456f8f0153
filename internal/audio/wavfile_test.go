package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// writeTestWAV writes a mono 16-bit PCM file holding the given samples.
func writeTestWAV(t *testing.T, rate int, samples []float32) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s * 32767)
	}
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("close encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close file: %v", err)
	}
	return path
}

func TestFileSourceDeliversAllBlocks(t *testing.T) {
	const rate = 1000
	samples := make([]float32, 250)
	for i := range samples {
		samples[i] = 0.5
	}
	path := writeTestWAV(t, rate, samples)

	// 10ms blocks at 1kHz = 10 samples per block.
	src, err := NewFileSource(path, 10*time.Millisecond, 8)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	defer src.Close()

	if src.SampleRate() != rate {
		t.Fatalf("SampleRate=%f want=%d", src.SampleRate(), rate)
	}

	total := 0
	for block := range src.Blocks() {
		total += len(block)
		for _, v := range block {
			if math.Abs(float64(v)-0.5) > 0.01 {
				t.Fatalf("sample=%f want ~0.5", v)
			}
		}
	}
	if total != len(samples) {
		t.Fatalf("delivered %d samples want %d", total, len(samples))
	}
}

func TestFileSourceRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.wav")
	if err := os.WriteFile(path, []byte("definitely not riff"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileSource(path, time.Millisecond, 8); err == nil {
		t.Fatalf("expected error for invalid WAV")
	}
}

func TestFileSourceCloseStopsReplay(t *testing.T) {
	samples := make([]float32, 10_000)
	path := writeTestWAV(t, 1000, samples)

	src, err := NewFileSource(path, 50*time.Millisecond, 1)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The replay goroutine must wind down and close the channel.
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-src.Blocks():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatalf("blocks channel not closed after Close")
		}
	}
}
