package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/noisepaper/noisepaper/internal/audio"
	"github.com/noisepaper/noisepaper/internal/band"
	"github.com/noisepaper/noisepaper/internal/monitor"
	"github.com/noisepaper/noisepaper/internal/wallpaper"
	"golang.org/x/term"
)

func main() {
	var (
		baseDir    = flag.String("wallpapers", "wallpapers", "Base directory holding quiet/moderate/loud/very_loud folders")
		deviceName = flag.String("audio-device", "", "Optional PortAudio input device name (substring match)")
		sampleRate = flag.Float64("sample-rate", audio.DefaultSampleRate, "Capture sample rate in Hz")
		blockDur   = flag.Duration("block-duration", audio.DefaultBlockDuration, "Length of one audio block")
		queueSize  = flag.Int("queue-size", audio.DefaultQueueSize, "Block queue capacity (oldest block dropped when full)")
		inputFile  = flag.String("input", "", "Monitor a WAV file instead of the microphone")
		quietDB    = flag.Float64("quiet-db", -40, "Upper dBFS bound of the Quiet band")
		moderateDB = flag.Float64("moderate-db", -20, "Upper dBFS bound of the Moderate band")
		loudDB     = flag.Float64("loud-db", -8, "Upper dBFS bound of the Loud band")
		listDevs   = flag.Bool("list-audio-devices", false, "List available audio input devices and exit")
		noColor    = flag.Bool("no-color", false, "Disable ANSI color output")
	)

	flag.Parse()

	logger := log.New(os.Stdout, "[noisepaper] ", log.LstdFlags)

	thresholds := band.Thresholds{
		Quiet:    *quietDB,
		Moderate: *moderateDB,
		Loud:     *loudDB,
	}
	if !thresholds.Valid() {
		logger.Fatalf("thresholds must be strictly ascending: quiet=%.1f moderate=%.1f loud=%.1f",
			thresholds.Quiet, thresholds.Moderate, thresholds.Loud)
	}
	if *sampleRate <= 0 {
		logger.Fatalf("sample-rate must be positive (got %.1f)", *sampleRate)
	}
	if *blockDur <= 0 {
		logger.Fatalf("block-duration must be positive (got %v)", *blockDur)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	needPortAudio := *inputFile == "" || *listDevs
	if needPortAudio {
		if err := audio.Initialize(); err != nil {
			logger.Fatalf("failed to initialize PortAudio: %v", err)
		}
		defer audio.Terminate()
	}

	if *listDevs {
		devices, err := audio.ListInputDevices()
		if err != nil {
			logger.Fatalf("list devices: %v", err)
		}
		fmt.Printf("\n=== Audio Input Devices ===\n\n")
		for _, dev := range devices {
			markers := ""
			if dev.IsDefaultInput {
				markers = " (default)"
			}
			fmt.Printf("- %s [%s]%s\n    inputs:%d sample:%.0f Hz\n",
				dev.Name, dev.HostAPI, markers, dev.MaxInput, dev.DefaultSampleHz)
		}
		return
	}

	var source audio.BlockSource
	if *inputFile != "" {
		fileSource, err := audio.NewFileSource(*inputFile, *blockDur, *queueSize)
		if err != nil {
			logger.Fatalf("open input: %v", err)
		}
		source = fileSource
		logger.Printf("monitoring %s @ %.0f Hz, %d samples per block",
			*inputFile, fileSource.SampleRate(), fileSource.BlockSamples())
	} else {
		capture, err := audio.NewCapture(audio.Config{
			DeviceName:    *deviceName,
			SampleRate:    *sampleRate,
			BlockDuration: *blockDur,
			QueueSize:     *queueSize,
		})
		if err != nil {
			logger.Fatalf("audio capture: %v", err)
		}
		source = capture
		if info := capture.Device(); info != nil {
			logger.Printf("listening on \"%s\" @ %.0f Hz, %d samples per block",
				info.Name, capture.SampleRate(), capture.BlockSamples())
		}
		defer func() {
			if n := capture.Dropped(); n > 0 {
				logger.Printf("dropped %d blocks under backlog", n)
			}
		}()
	}
	defer func() {
		if err := source.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "cleanup error: %v\n", err)
		}
	}()

	applier := wallpaper.NewApplier()
	logger.Printf("wallpaper mechanism: %s", applier.Desktop())
	logger.Printf("thresholds: quiet<=%.0f moderate<=%.0f loud<=%.0f dBFS (else very loud)",
		thresholds.Quiet, thresholds.Moderate, thresholds.Loud)
	logger.Printf("press q to quit, n for a fresh wallpaper")

	mon := monitor.New(monitor.Config{
		Source:        source,
		Selector:      wallpaper.NewSelector(*baseDir),
		Applier:       applier,
		Thresholds:    thresholds,
		BlockDuration: *blockDur,
		Colors:        !*noColor && term.IsTerminal(int(os.Stdout.Fd())),
		Keys:          term.IsTerminal(int(os.Stdin.Fd())),
		Log:           logger,
	})

	if err := mon.Run(ctx); err != nil {
		if ctx.Err() != nil {
			fmt.Println("\nExiting...")
			return
		}
		logger.Fatalf("runtime error: %v", err)
	}
}
