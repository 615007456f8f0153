//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
)

type darwinSetter struct{}

func newPlatformSetter() setter {
	return darwinSetter{}
}

func (darwinSetter) desktop() string {
	return "macOS (Finder)"
}

func (darwinSetter) set(path string) error {
	script := fmt.Sprintf("tell application %q to set desktop picture to POSIX file %q", "Finder", path)
	cmd := exec.Command("osascript", "-e", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("osascript: %w: %s", err, out)
	}
	return nil
}
