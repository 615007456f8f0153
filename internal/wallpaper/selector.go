// Package wallpaper picks random images per loudness band and applies them
// through the host desktop environment.
package wallpaper

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/noisepaper/noisepaper/internal/band"
)

var (
	ErrNoFolder = errors.New("wallpaper folder not found")
	ErrNoImages = errors.New("no images in wallpaper folder")
)

// imageExtensions is the case-insensitive allow-list of selectable files.
var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".bmp":  true,
}

// Selector resolves loudness bands to folders under a base directory and
// picks a random image from the matching one.
type Selector struct {
	dirs map[band.Band]string
	rng  *rand.Rand
}

// NewSelector builds a Selector rooted at baseDir, one subfolder per band.
func NewSelector(baseDir string) *Selector {
	dirs := make(map[band.Band]string, len(band.All))
	for _, b := range band.All {
		dirs[b] = filepath.Join(baseDir, b.Slug())
	}
	return &Selector{
		dirs: dirs,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Dir returns the folder associated with a band.
func (s *Selector) Dir(b band.Band) string {
	return s.dirs[b]
}

// Pick returns the path of a uniformly random image in the band's folder.
// A missing folder or a folder without matching images is recoverable:
// the caller skips this wallpaper change and keeps monitoring.
func (s *Selector) Pick(b band.Band) (string, error) {
	dir := s.dirs[b]
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoFolder, dir)
		}
		return "", fmt.Errorf("read wallpaper folder %s: %w", dir, err)
	}

	var images []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if imageExtensions[ext] {
			images = append(images, entry.Name())
		}
	}
	if len(images) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNoImages, dir)
	}

	choice := images[s.rng.Intn(len(images))]
	return filepath.Join(dir, choice), nil
}
