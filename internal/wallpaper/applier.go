package wallpaper

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnsupportedPlatform means the host desktop has no known
// wallpaper-setting mechanism. Recoverable: the monitor keeps running.
var ErrUnsupportedPlatform = errors.New("unsupported OS for wallpaper change")

// setter is the platform capability: one implementation per supported
// desktop, chosen at build time.
type setter interface {
	// set applies the wallpaper; path is absolute and known to exist.
	set(path string) error
	// desktop names the mechanism for status output.
	desktop() string
}

// Applier applies wallpaper images through the host desktop environment.
// The platform mechanism is selected once at construction.
type Applier struct {
	setter setter
}

// NewApplier returns an Applier bound to the current platform's mechanism.
func NewApplier() *Applier {
	return &Applier{setter: newPlatformSetter()}
}

// Desktop names the platform mechanism in use.
func (a *Applier) Desktop() string {
	return a.setter.desktop()
}

// Apply sets the desktop wallpaper to the image at path. The file's
// existence is re-validated first; the platform call is attempted exactly
// once, with no retry.
func (a *Applier) Apply(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve wallpaper path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("wallpaper not found: %s: %w", abs, err)
	}
	if err := a.setter.set(abs); err != nil {
		return fmt.Errorf("set wallpaper: %w", err)
	}
	return nil
}
