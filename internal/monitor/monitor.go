// Package monitor runs the capture-classify-change loop: it drains audio
// blocks, tracks the current loudness band, and swaps the wallpaper on band
// transitions.
package monitor

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/eiannone/keyboard"
	"github.com/noisepaper/noisepaper/internal/audio"
	"github.com/noisepaper/noisepaper/internal/band"
	"github.com/noisepaper/noisepaper/internal/level"
)

const ansiReset = "\x1b[0m"

// WallpaperSelector picks a random image for a band.
type WallpaperSelector interface {
	Pick(b band.Band) (string, error)
}

// WallpaperApplier sets the desktop wallpaper.
type WallpaperApplier interface {
	Apply(path string) error
	Desktop() string
}

// Config configures the monitor loop.
type Config struct {
	Source        audio.BlockSource
	Selector      WallpaperSelector
	Applier       WallpaperApplier
	Thresholds    band.Thresholds
	BlockDuration time.Duration
	Colors        bool
	// Keys enables the interactive keyboard listener. Off for headless
	// runs and under tests.
	Keys bool
	Log  *log.Logger
}

type inputEvent int

const (
	inputEventNext inputEvent = iota
	inputEventQuit
)

// Monitor owns the block consumer loop. The current band lives here as
// plain loop state; there is no process-wide singleton.
type Monitor struct {
	cfg         Config
	log         *log.Logger
	current     band.Band
	hasBand     bool
	inputEvents chan inputEvent
}

// New constructs a Monitor from the configuration.
func New(cfg Config) *Monitor {
	if cfg.BlockDuration <= 0 {
		cfg.BlockDuration = audio.DefaultBlockDuration
	}
	if cfg.Log == nil {
		cfg.Log = log.New(os.Stdout, "", log.LstdFlags)
	}
	return &Monitor{
		cfg: cfg,
		log: cfg.Log,
	}
}

// Run consumes blocks until the context is cancelled, the source drains, or
// a quit key is pressed. Each consumed block is followed by roughly one
// block duration of idle time; the queue absorbs any backlog meanwhile.
func (m *Monitor) Run(ctx context.Context) error {
	inputCtx, cancelInput := context.WithCancel(ctx)
	defer cancelInput()
	m.startInputListener(inputCtx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-m.inputEvents:
			if !ok {
				m.inputEvents = nil
				continue
			}
			switch evt {
			case inputEventQuit:
				m.log.Printf("stopped by user")
				return nil
			case inputEventNext:
				m.refreshWallpaper()
			}
		case block, ok := <-m.cfg.Source.Blocks():
			if !ok {
				m.log.Printf("audio input drained, stopping")
				return nil
			}
			m.step(block)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(m.cfg.BlockDuration):
			}
		}
	}
}

// step classifies one block and reacts to band transitions. A block whose
// band matches the current one is a no-op, which suppresses redundant
// wallpaper churn.
func (m *Monitor) step(block []float32) {
	db := level.BlockDBFS(block)
	b := m.cfg.Thresholds.Classify(db)

	if m.hasBand && b == m.current {
		return
	}
	first := !m.hasBand
	m.current = b
	m.hasBand = true

	m.logTransition(b, db)
	if first {
		// The first block only establishes the baseline; swapping the
		// wallpaper for whatever the ambient level happens to be at
		// startup is not a transition.
		return
	}
	m.changeWallpaper(b)
}

// refreshWallpaper forces a new pick within the current band.
func (m *Monitor) refreshWallpaper() {
	if !m.hasBand {
		return
	}
	m.log.Printf("refreshing %s wallpaper", m.current)
	m.changeWallpaper(m.current)
}

func (m *Monitor) changeWallpaper(b band.Band) {
	path, err := m.cfg.Selector.Pick(b)
	if err != nil {
		m.log.Printf("skipping wallpaper change: %v", err)
		return
	}
	if err := m.cfg.Applier.Apply(path); err != nil {
		m.log.Printf("wallpaper change failed: %v", err)
		return
	}
	m.log.Printf("wallpaper set: %s", path)
}

func (m *Monitor) logTransition(b band.Band, db float64) {
	if m.cfg.Colors {
		m.log.Printf("%s%s | %.2f dBFS%s", b.Color(), b, db, ansiReset)
		return
	}
	m.log.Printf("%s | %.2f dBFS", b, db)
}

// startInputListener wires interactive keys: q/Esc/Ctrl-C quit, n forces a
// fresh wallpaper pick. Headless runs simply go without keyboard control.
func (m *Monitor) startInputListener(ctx context.Context) {
	if !m.cfg.Keys {
		return
	}
	if err := keyboard.Open(); err != nil {
		m.log.Printf("keyboard input disabled: %v", err)
		m.inputEvents = nil
		return
	}

	events := make(chan inputEvent, 16)
	m.inputEvents = events

	closeOnce := &sync.Once{}
	go func() {
		<-ctx.Done()
		closeOnce.Do(func() {
			_ = keyboard.Close()
		})
	}()

	go func() {
		defer close(events)
		defer closeOnce.Do(func() {
			_ = keyboard.Close()
		})
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			switch {
			case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC:
				events <- inputEventQuit
				return
			case char == 'q' || char == 'Q':
				events <- inputEventQuit
				return
			case char == 'n' || char == 'N':
				select {
				case events <- inputEventNext:
				default:
				}
			}
		}
	}()
}
