package desktop

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver"
	"github.com/username/reminder/internal/platform"
	"github.com/username/reminder/internal/shell"
	"go.uber.org/zap"
)

// Window adapts a fyne window to shell.Window
type Window struct {
	label  shell.Label
	win    fyne.Window
	logger *zap.Logger

	mu       sync.Mutex
	visible  bool
	topmost  bool
	closed   bool
	onClosed []func()
}

var _ shell.Window = (*Window)(nil)

func newWindow(label shell.Label, win fyne.Window, logger *zap.Logger) *Window {
	w := &Window{
		label:  label,
		win:    win,
		logger: logger.With(zap.String("window", string(label))),
	}
	win.SetOnClosed(w.handleClosed)
	return w
}

// Label returns the logical window name
func (w *Window) Label() shell.Label { return w.label }

// Fyne returns the underlying fyne window
func (w *Window) Fyne() fyne.Window { return w.win }

// Visible reports whether the window was last shown rather than hidden
func (w *Window) Visible() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.visible
}

// Show shows the window and re-applies always-on-top, which the OS only
// honors once the native window exists
func (w *Window) Show() error {
	w.win.Show()

	w.mu.Lock()
	w.visible = true
	topmost := w.topmost
	w.mu.Unlock()

	if topmost {
		if err := w.native(func(h uintptr) error { return platform.SetTopmost(h, true) }); err != nil && !deferred(err) {
			w.logger.Debug("Failed to pin window", zap.Error(err))
		}
	}
	return nil
}

// Hide hides the window without destroying it
func (w *Window) Hide() error {
	w.win.Hide()

	w.mu.Lock()
	w.visible = false
	w.mu.Unlock()
	return nil
}

// Unminimize restores a minimized window
func (w *Window) Unminimize() error {
	err := w.native(platform.Restore)
	if deferred(err) {
		w.win.Show()
		return nil
	}
	return err
}

// SetFocus asks the window manager to focus the window
func (w *Window) SetFocus() error {
	w.win.RequestFocus()
	return nil
}

// SetAlwaysOnTop pins the window above others. The attribute is recorded
// first; a window that is hidden, not yet realized or on a platform without
// native support gets it applied by the next Show where possible.
func (w *Window) SetAlwaysOnTop(on bool) error {
	w.mu.Lock()
	prev := w.topmost
	w.topmost = on
	visible := w.visible
	w.mu.Unlock()

	if !visible {
		return nil
	}

	err := w.native(func(h uintptr) error { return platform.SetTopmost(h, on) })
	switch {
	case err == nil:
		return nil
	case deferred(err):
		w.logger.Debug("Always on top deferred", zap.Bool("on", on), zap.Error(err))
		return nil
	default:
		w.mu.Lock()
		w.topmost = prev
		w.mu.Unlock()
		return fmt.Errorf("always on top: %w", err)
	}
}

// AlwaysOnTop reports the always-on-top attribute
func (w *Window) AlwaysOnTop() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.topmost
}

// RequestAttention flashes the window where supported and otherwise asks
// for focus
func (w *Window) RequestAttention() error {
	err := w.native(platform.FlashWindow)
	if deferred(err) {
		w.win.RequestFocus()
		return nil
	}
	return err
}

// Close destroys the window
func (w *Window) Close() error {
	w.win.Close()
	return nil
}

// OnCloseRequested intercepts the title bar close button
func (w *Window) OnCloseRequested(fn func(*shell.CloseRequest)) {
	w.win.SetCloseIntercept(func() {
		req := &shell.CloseRequest{}
		fn(req)
		if !req.Prevented() {
			w.win.Close()
		}
	})
}

// OnClosed registers fn to run once the window is destroyed
func (w *Window) OnClosed(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClosed = append(w.onClosed, fn)
}

func (w *Window) handleClosed() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.visible = false
	callbacks := append([]func(){}, w.onClosed...)
	w.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
	w.logger.Debug("Window closed")
}

// native runs fn with the window's native handle. It reports
// platform.ErrUnsupported when the toolkit exposes no handle the platform
// package understands and platform.ErrNoWindow before the window exists.
func (w *Window) native(fn func(handle uintptr) error) error {
	if !platform.NativeWindowOps() {
		return platform.ErrUnsupported
	}
	nw, ok := w.win.(driver.NativeWindow)
	if !ok {
		return platform.ErrUnsupported
	}

	err := platform.ErrUnsupported
	nw.RunNative(func(ctx any) {
		if h, ok := nativeHandle(ctx); ok {
			err = fn(h)
		}
	})
	return err
}

// nativeHandle extracts the OS window handle from a RunNative context
func nativeHandle(ctx any) (uintptr, bool) {
	switch c := ctx.(type) {
	case driver.WindowsWindowContext:
		return c.HWND, true
	case driver.X11WindowContext:
		return c.WindowHandle, true
	case driver.MacWindowContext:
		return c.NSWindow, true
	}
	return 0, false
}

// deferred reports whether err means the operation could not reach a native
// window rather than that it failed
func deferred(err error) bool {
	return errors.Is(err, platform.ErrUnsupported) || errors.Is(err, platform.ErrNoWindow)
}
