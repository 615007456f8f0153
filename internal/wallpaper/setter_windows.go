//go:build windows

package wallpaper

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateINIFile   = 0x0001
	spifSendChange      = 0x0002
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procSystemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

type windowsSetter struct{}

func newPlatformSetter() setter {
	return windowsSetter{}
}

func (windowsSetter) desktop() string {
	return "Windows (SystemParametersInfo)"
}

func (windowsSetter) set(path string) error {
	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encode wallpaper path: %w", err)
	}
	ret, _, callErr := procSystemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		0,
		uintptr(unsafe.Pointer(ptr)),
		uintptr(spifUpdateINIFile|spifSendChange),
	)
	if ret == 0 {
		return fmt.Errorf("SystemParametersInfoW: %w", callErr)
	}
	return nil
}
