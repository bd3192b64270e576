package shell

import (
	"errors"
	"sync"
)

type fakeWindow struct {
	mu          sync.Mutex
	label       Label
	spec        WindowSpec
	visible     bool
	minimized   bool
	focused     bool
	alwaysOnTop bool
	attention   int
	closed      bool
	failWith    error

	onCloseRequested func(*CloseRequest)
	onClosed         func()
}

func newFakeWindow(label Label) *fakeWindow {
	return &fakeWindow{label: label}
}

func (w *fakeWindow) Label() Label { return w.label }

func (w *fakeWindow) Show() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = true
	return nil
}

func (w *fakeWindow) Hide() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.visible = false
	w.focused = false
	return nil
}

func (w *fakeWindow) Unminimize() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.minimized = false
	return nil
}

func (w *fakeWindow) SetFocus() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = true
	return nil
}

func (w *fakeWindow) SetAlwaysOnTop(on bool) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failWith != nil {
		return w.failWith
	}
	w.alwaysOnTop = on
	return nil
}

func (w *fakeWindow) RequestAttention() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.failWith != nil {
		return w.failWith
	}
	w.attention++
	return nil
}

func (w *fakeWindow) Close() error {
	w.mu.Lock()
	if w.failWith != nil {
		w.mu.Unlock()
		return w.failWith
	}
	w.closed = true
	w.visible = false
	onClosed := w.onClosed
	w.mu.Unlock()

	if onClosed != nil {
		onClosed()
	}
	return nil
}

func (w *fakeWindow) OnCloseRequested(fn func(*CloseRequest)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onCloseRequested = fn
}

func (w *fakeWindow) OnClosed(fn func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onClosed = fn
}

// userClose simulates the title bar close button
func (w *fakeWindow) userClose() {
	req := &CloseRequest{}
	if w.onCloseRequested != nil {
		w.onCloseRequested(req)
	}
	if !req.Prevented() {
		_ = w.Close()
	}
}

type fakeHost struct {
	mu       sync.Mutex
	main     *fakeWindow
	created  []*fakeWindow
	createFn func(spec WindowSpec) (Window, error)
	exitCode *int
	ran      bool
	// visibleAtRun records main window visibility when the loop starts
	visibleAtRun bool
}

func newFakeHost() *fakeHost {
	main := newFakeWindow(MainLabel)
	main.visible = true
	return &fakeHost{main: main}
}

func (h *fakeHost) MainWindow() (Window, bool) {
	if h.main == nil {
		return nil, false
	}
	return h.main, true
}

func (h *fakeHost) CreateWindow(spec WindowSpec) (Window, error) {
	if h.createFn != nil {
		return h.createFn(spec)
	}
	w := newFakeWindow(spec.Label)
	w.spec = spec
	w.alwaysOnTop = spec.AlwaysOnTop
	h.mu.Lock()
	h.created = append(h.created, w)
	h.mu.Unlock()
	return w, nil
}

func (h *fakeHost) Do(fn func()) { fn() }

func (h *fakeHost) Run() int {
	h.ran = true
	if h.main != nil {
		h.visibleAtRun = h.main.visible
	}
	if h.exitCode != nil {
		return *h.exitCode
	}
	return 0
}

func (h *fakeHost) Exit(code int) {
	h.exitCode = &code
}

func (h *fakeHost) liveWindows(label Label) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, w := range h.created {
		if w.label == label && !w.closed {
			n++
		}
	}
	return n
}

type fakeTray struct {
	spec     TraySpec
	handlers TrayHandlers
	err      error
}

func (t *fakeTray) Build(spec TraySpec, handlers TrayHandlers) error {
	if t.err != nil {
		return t.err
	}
	t.spec = spec
	t.handlers = handlers
	return nil
}

type fakeAutostart struct {
	enabled bool
	err     error
}

func (a *fakeAutostart) Enable() error {
	if a.err != nil {
		return a.err
	}
	a.enabled = true
	return nil
}

func (a *fakeAutostart) Disable() error {
	if a.err != nil {
		return a.err
	}
	a.enabled = false
	return nil
}

func (a *fakeAutostart) IsEnabled() (bool, error) {
	if a.err != nil {
		return false, a.err
	}
	return a.enabled, nil
}

type fakeSound struct {
	supported bool
	played    int
}

func (s *fakeSound) Supported() bool { return s.supported }
func (s *fakeSound) Play()           { s.played++ }

var errBoom = errors.New("boom")
