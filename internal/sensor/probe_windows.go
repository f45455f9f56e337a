//go:build windows

package sensor

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	kernel32             = windows.NewLazySystemDLL("kernel32.dll")
	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount     = kernel32.NewProc("GetTickCount")
)

// lastInputInfo mirrors the Win32 LASTINPUTINFO struct.
type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// winProbe queries idle time via GetLastInputInfo, which tracks all
// keyboard, mouse, touch, and pen input.
type winProbe struct{}

func newPlatformProbe(_ *zap.Logger) probe {
	return &winProbe{}
}

func (p *winProbe) idleSeconds() (float64, error) {
	var lii lastInputInfo
	lii.cbSize = uint32(unsafe.Sizeof(lii))

	ret, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&lii)))
	if ret == 0 {
		return 0, fmt.Errorf("GetLastInputInfo failed: %w", err)
	}

	now, _, _ := procGetTickCount.Call()

	// Tick counts are 32-bit and wrap every ~49 days; the unsigned
	// subtraction still yields the correct delta across one wrap.
	elapsed := uint32(now) - lii.dwTime
	return float64(elapsed) / 1000, nil
}
