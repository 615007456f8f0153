//go:build linux

package wallpaper

import (
	"fmt"
	"os/exec"
)

type gnomeSetter struct{}

func newPlatformSetter() setter {
	return gnomeSetter{}
}

func (gnomeSetter) desktop() string {
	return "GNOME (gsettings)"
}

func (gnomeSetter) set(path string) error {
	uri := "file://" + path
	keys := []string{"picture-uri", "picture-uri-dark"}
	for _, key := range keys {
		cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", key, uri)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("gsettings set %s: %w: %s", key, err, out)
		}
	}
	return nil
}
