package audio

import (
	"fmt"
	"os"
	"sync"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// FileSource replays a PCM WAV file as fixed-duration mono blocks at
// real-time pace. It stands in for the microphone when monitoring recorded
// audio; the block channel is closed once the file is drained.
type FileSource struct {
	file *os.File
	dec  *wav.Decoder

	sampleRate    float64
	channels      int
	blockSize     int
	blockDuration time.Duration

	blocks    chan []float32
	done      chan struct{}
	closeOnce sync.Once
}

// NewFileSource opens path and starts delivering blocks.
func NewFileSource(path string, blockDuration time.Duration, queueSize int) (*FileSource, error) {
	if blockDuration <= 0 {
		blockDuration = DefaultBlockDuration
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open wav: %w", err)
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("not a valid WAV file: %s", path)
	}
	dec.ReadInfo()

	channels := int(dec.NumChans)
	if channels <= 0 {
		channels = 1
	}

	s := &FileSource{
		file:          f,
		dec:           dec,
		sampleRate:    float64(dec.SampleRate),
		channels:      channels,
		blockSize:     BlockSize(float64(dec.SampleRate), blockDuration),
		blockDuration: blockDuration,
		blocks:        make(chan []float32, queueSize),
		done:          make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Blocks returns the replay queue.
func (s *FileSource) Blocks() <-chan []float32 {
	return s.blocks
}

// SampleRate returns the file's sample rate.
func (s *FileSource) SampleRate() float64 {
	return s.sampleRate
}

// BlockSamples returns the number of mono samples per block.
func (s *FileSource) BlockSamples() int {
	return s.blockSize
}

// Close stops replay and releases the file.
func (s *FileSource) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.file.Close()
}

func (s *FileSource) run() {
	defer close(s.blocks)

	bitDepth := int(s.dec.BitDepth)
	if bitDepth <= 0 {
		bitDepth = 16
	}
	scale := float32(int64(1) << (bitDepth - 1))

	buf := &goaudio.IntBuffer{Data: make([]int, s.blockSize*s.channels)}

	ticker := time.NewTicker(s.blockDuration)
	defer ticker.Stop()

	for {
		n, err := s.dec.PCMBuffer(buf)
		if n == 0 {
			return
		}

		// Downmix interleaved frames to mono, normalized to [-1, 1].
		frames := n / s.channels
		block := make([]float32, frames)
		for i := 0; i < frames; i++ {
			sum := float32(0)
			for ch := 0; ch < s.channels; ch++ {
				sum += float32(buf.Data[i*s.channels+ch]) / scale
			}
			block[i] = sum / float32(s.channels)
		}

		select {
		case s.blocks <- block:
		case <-s.done:
			return
		}
		if err != nil {
			return
		}

		select {
		case <-ticker.C:
		case <-s.done:
			return
		}
	}
}
