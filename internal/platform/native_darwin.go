//go:build darwin

package platform

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework Foundation
#import <AppKit/AppKit.h>
#include <stdint.h>

static void setWindowLevel(uintptr_t handle, int floating) {
	NSWindow *win = (NSWindow *)(void *)handle;
	[win setLevel:(floating ? NSFloatingWindowLevel : NSNormalWindowLevel)];
}

static void requestAttention(void) {
	[NSApp requestUserAttention:NSInformationalRequest];
}

static void deminiaturize(uintptr_t handle) {
	NSWindow *win = (NSWindow *)(void *)handle;
	if ([win isMiniaturized]) {
		[win deminiaturize:nil];
	}
}
*/
import "C"

// NativeWindowOps reports whether SetTopmost, FlashWindow and Restore are implemented
func NativeWindowOps() bool { return true }

// SetTopmost moves the NSWindow between the floating and normal window levels.
// Must run on the main thread.
func SetTopmost(nsWindow uintptr, on bool) error {
	if nsWindow == 0 {
		return ErrNoWindow
	}
	floating := C.int(0)
	if on {
		floating = 1
	}
	C.setWindowLevel(C.uintptr_t(nsWindow), floating)
	return nil
}

// FlashWindow bounces the dock icon once
func FlashWindow(nsWindow uintptr) error {
	if nsWindow == 0 {
		return ErrNoWindow
	}
	C.requestAttention()
	return nil
}

// Restore takes the window out of the dock if it is minimized
func Restore(nsWindow uintptr) error {
	if nsWindow == 0 {
		return ErrNoWindow
	}
	C.deminiaturize(C.uintptr_t(nsWindow))
	return nil
}
