//go:build windows

package platform

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	procSetWindowPos = user32.NewProc("SetWindowPos")
	procFlashWindow  = user32.NewProc("FlashWindowEx")
	procIsIconic     = user32.NewProc("IsIconic")
	procShowWindow   = user32.NewProc("ShowWindow")
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpNoActivate = 0x0010

	swRestore = 9

	flashwAll       = 0x00000003
	flashwTimerNoFG = 0x0000000C
)

var (
	hwndTopmost   = ^uintptr(0)     // HWND_TOPMOST (-1)
	hwndNoTopmost = ^uintptr(0) - 1 // HWND_NOTOPMOST (-2)
)

type flashWInfo struct {
	cbSize    uint32
	hwnd      uintptr
	dwFlags   uint32
	uCount    uint32
	dwTimeout uint32
}

// NativeWindowOps reports whether SetTopmost, FlashWindow and Restore are implemented
func NativeWindowOps() bool { return true }

// SetTopmost pins or unpins hwnd above all non-topmost windows
func SetTopmost(hwnd uintptr, on bool) error {
	if hwnd == 0 {
		return ErrNoWindow
	}
	after := hwndNoTopmost
	if on {
		after = hwndTopmost
	}
	r, _, err := procSetWindowPos.Call(hwnd, after, 0, 0, 0, 0, swpNoMove|swpNoSize|swpNoActivate)
	if r == 0 {
		return fmt.Errorf("SetWindowPos: %w", err)
	}
	return nil
}

// FlashWindow flashes hwnd's taskbar button until the window comes to the foreground
func FlashWindow(hwnd uintptr) error {
	if hwnd == 0 {
		return ErrNoWindow
	}
	info := flashWInfo{
		hwnd:    hwnd,
		dwFlags: flashwAll | flashwTimerNoFG,
	}
	info.cbSize = uint32(unsafe.Sizeof(info))
	// FlashWindowEx returns the previous state, not success
	_, _, _ = procFlashWindow.Call(uintptr(unsafe.Pointer(&info)))
	return nil
}

// Restore un-minimizes hwnd if it is iconic
func Restore(hwnd uintptr) error {
	if hwnd == 0 {
		return ErrNoWindow
	}
	if r, _, _ := procIsIconic.Call(hwnd); r == 0 {
		return nil
	}
	_, _, _ = procShowWindow.Call(hwnd, swRestore)
	return nil
}
