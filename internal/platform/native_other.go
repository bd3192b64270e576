//go:build !windows && !linux && !darwin

package platform

// NativeWindowOps reports whether SetTopmost, FlashWindow and Restore are implemented
func NativeWindowOps() bool { return false }

// SetTopmost is not available on this platform
func SetTopmost(handle uintptr, on bool) error { return ErrUnsupported }

// FlashWindow is not available on this platform
func FlashWindow(handle uintptr) error { return ErrUnsupported }

// Restore is not available on this platform
func Restore(handle uintptr) error { return ErrUnsupported }
