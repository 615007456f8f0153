// Package audio owns microphone capture and block delivery: a PortAudio
// input stream chopped into fixed-duration mono blocks fed over a channel.
package audio

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	// DefaultSampleRate is the capture rate in Hz.
	DefaultSampleRate = 22050
	// DefaultBlockDuration is the length of one block of samples.
	DefaultBlockDuration = 300 * time.Millisecond
	// DefaultQueueSize bounds the block queue. At the default block
	// duration this holds roughly 19 seconds of backlog.
	DefaultQueueSize = 64
)

// BlockSource delivers fixed-size blocks of mono samples. The channel is
// closed when the source is exhausted; live capture never closes it.
type BlockSource interface {
	Blocks() <-chan []float32
	Close() error
}

// Config controls how a Capture instance is created.
type Config struct {
	DeviceName    string // optional substring match; empty picks the default input
	SampleRate    float64
	BlockDuration time.Duration
	QueueSize     int
}

// Capture wraps a PortAudio input stream. The stream callback assembles
// incoming frames into fixed-size blocks and enqueues them without ever
// blocking the audio thread; when the queue is full the oldest block is
// dropped and counted.
type Capture struct {
	stream    *portaudio.Stream
	device    *portaudio.DeviceInfo
	assembler *blockAssembler

	sampleRate float64
	blockSize  int
	blocks     chan []float32
	dropped    atomic.Uint64
}

// BlockSize returns the number of samples for a duration at a rate.
func BlockSize(rate float64, d time.Duration) int {
	return int(math.Round(rate * d.Seconds()))
}

// NewCapture opens and starts a mono PortAudio input stream.
func NewCapture(cfg Config) (*Capture, error) {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = DefaultSampleRate
	}
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = DefaultBlockDuration
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}

	device, err := findDevice(cfg.DeviceName)
	if err != nil {
		return nil, err
	}

	c := &Capture{
		device:     device,
		sampleRate: cfg.SampleRate,
		blockSize:  BlockSize(cfg.SampleRate, cfg.BlockDuration),
		blocks:     make(chan []float32, cfg.QueueSize),
	}
	c.assembler = newBlockAssembler(c.blockSize, c.enqueue)

	stream, err := portaudio.OpenStream(portaudio.StreamParameters{
		Input: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultLowInputLatency,
		},
		SampleRate:      cfg.SampleRate,
		FramesPerBuffer: c.blockSize,
	}, c.process)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	c.stream = stream

	if err := c.stream.Start(); err != nil {
		_ = c.stream.Close()
		return nil, fmt.Errorf("start stream: %w", err)
	}
	return c, nil
}

// Blocks returns the queue of captured blocks.
func (c *Capture) Blocks() <-chan []float32 {
	return c.blocks
}

// SampleRate returns the stream sample rate.
func (c *Capture) SampleRate() float64 {
	return c.sampleRate
}

// BlockSamples returns the number of samples per block.
func (c *Capture) BlockSamples() int {
	return c.blockSize
}

// Device returns the PortAudio device the stream was opened on.
func (c *Capture) Device() *portaudio.DeviceInfo {
	return c.device
}

// Dropped reports how many blocks were discarded because the queue was full.
func (c *Capture) Dropped() uint64 {
	return c.dropped.Load()
}

// Close stops and closes the underlying PortAudio stream.
func (c *Capture) Close() error {
	if c.stream == nil {
		return nil
	}
	if err := c.stream.Stop(); err != nil && !isInvalidStreamState(err) {
		return err
	}
	return c.stream.Close()
}

// process runs on the PortAudio callback thread.
func (c *Capture) process(in []float32) {
	c.assembler.push(in)
}

// enqueue must not stall the audio thread: on a full queue it evicts the
// oldest block so the newest one fits.
func (c *Capture) enqueue(block []float32) {
	select {
	case c.blocks <- block:
		return
	default:
	}
	select {
	case <-c.blocks:
		c.dropped.Add(1)
	default:
	}
	select {
	case c.blocks <- block:
	default:
		c.dropped.Add(1)
	}
}

// isInvalidStreamState reports whether the error stems from stopping an
// already stopped stream.
func isInvalidStreamState(err error) bool {
	if err == nil {
		return false
	}
	const invalidStateMsg = "PaErrorCode -9986"
	return strings.Contains(err.Error(), invalidStateMsg)
}
