package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"

	"timetracker/internal/core/refresh"
)

var (
	procGetLastInputInfo = syscall.NewLazyDLL("user32.dll").NewProc("GetLastInputInfo")
	procGetTickCount64   = syscall.NewLazyDLL("kernel32.dll").NewProc("GetTickCount64")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

type lastInputProbe struct{}

func newIdleChecker() refresh.IdleChecker {
	if procGetLastInputInfo.Find() != nil || procGetTickCount64.Find() != nil {
		return unsupportedIdle{}
	}
	return lastInputProbe{}
}

func (lastInputProbe) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}
	if ok, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info))); ok == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}
	now, _, _ := procGetTickCount64.Call()

	// dwTime is the 32-bit tick count of the last input and wraps every 49.7 days.
	idleMillis := uint32(uint64(now)) - info.dwTime
	return time.Duration(idleMillis) * time.Millisecond, nil
}
