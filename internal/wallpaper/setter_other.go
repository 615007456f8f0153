//go:build !darwin && !linux && !windows

package wallpaper

import "runtime"

type unsupportedSetter struct{}

func newPlatformSetter() setter {
	return unsupportedSetter{}
}

func (unsupportedSetter) desktop() string {
	return "unsupported (" + runtime.GOOS + ")"
}

func (unsupportedSetter) set(path string) error {
	return ErrUnsupportedPlatform
}
