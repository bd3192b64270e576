// Package desktop implements the shell host on fyne: the main window, the
// window factory and the views rendered into them.
package desktop

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	fynedesktop "fyne.io/fyne/v2/driver/desktop"
	"github.com/username/reminder/internal/shell"
	"go.uber.org/zap"
)

const (
	MainWidth  = 440
	MainHeight = 640
)

// ViewBuilder renders the content of a window created for a route
type ViewBuilder func(w *Window) fyne.CanvasObject

// Host runs the fyne application and creates its windows
type Host struct {
	app    fyne.App
	main   *Window
	logger *zap.Logger

	mu       sync.Mutex
	routes   map[string]ViewBuilder
	started  []func()
	running  bool
	exitCode int
}

var _ shell.Host = (*Host)(nil)

// NewHost creates the main window of a and returns a host around it
func NewHost(a fyne.App, title string, logger *zap.Logger) *Host {
	win := a.NewWindow(title)
	win.Resize(fyne.NewSize(MainWidth, MainHeight))
	win.CenterOnScreen()

	h := &Host{
		app:    a,
		logger: logger,
		routes: make(map[string]ViewBuilder),
	}
	h.main = newWindow(shell.MainLabel, win, logger)
	h.main.visible = true

	a.Lifecycle().SetOnStarted(h.handleStarted)
	return h
}

// App returns the fyne application
func (h *Host) App() fyne.App { return h.app }

// Main returns the main window
func (h *Host) Main() *Window { return h.main }

// SetMainContent sets what the main window renders
func (h *Host) SetMainContent(obj fyne.CanvasObject) {
	h.main.win.SetContent(obj)
}

// Route registers the builder used for windows created with spec.Route == route
func (h *Host) Route(route string, b ViewBuilder) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes[route] = b
}

// OnStarted runs fn on the UI thread once the event loop is up.
// Called after the loop started, fn is scheduled immediately.
func (h *Host) OnStarted(fn func()) {
	h.mu.Lock()
	if h.running {
		h.mu.Unlock()
		fyne.Do(fn)
		return
	}
	h.started = append(h.started, fn)
	h.mu.Unlock()
}

func (h *Host) handleStarted() {
	h.mu.Lock()
	h.running = true
	started := h.started
	h.started = nil
	h.mu.Unlock()

	for _, fn := range started {
		fn()
	}
	h.logger.Debug("Event loop started", zap.Int("deferred", len(started)))
}

// MainWindow returns the window created at startup
func (h *Host) MainWindow() (shell.Window, bool) {
	if h.main == nil {
		return nil, false
	}
	return h.main, true
}

// CreateWindow creates a window for spec. Undecorated windows are created
// as splash windows, which have no title bar.
func (h *Host) CreateWindow(spec shell.WindowSpec) (shell.Window, error) {
	h.mu.Lock()
	build, ok := h.routes[spec.Route]
	h.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no view registered for route %q", spec.Route)
	}

	var win fyne.Window
	if drv, ok := h.app.Driver().(fynedesktop.Driver); ok && !spec.Decorations {
		win = drv.CreateSplashWindow()
		win.SetTitle(spec.Title)
	} else {
		win = h.app.NewWindow(spec.Title)
	}

	win.Resize(fyne.NewSize(spec.Width, spec.Height))
	win.SetFixedSize(!spec.Resizable)

	w := newWindow(spec.Label, win, h.logger)
	w.topmost = spec.AlwaysOnTop
	win.SetContent(build(w))

	if spec.Center {
		win.CenterOnScreen()
	}
	if spec.Focused {
		win.RequestFocus()
	}
	// fyne has no control over taskbar visibility, so SkipTaskbar is not applied

	h.logger.Debug("Window created",
		zap.String("label", string(spec.Label)),
		zap.String("route", spec.Route),
		zap.Bool("decorations", spec.Decorations))
	return w, nil
}

// Do runs fn on the UI thread
func (h *Host) Do(fn func()) {
	fyne.Do(fn)
}

// Run shows the main window unless it was hidden during setup, then blocks
// in the fyne event loop
func (h *Host) Run() int {
	if h.main.Visible() {
		h.main.win.Show()
	}
	h.app.Run()

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.exitCode
}

// Exit stops the event loop; Run returns code
func (h *Host) Exit(code int) {
	h.mu.Lock()
	h.exitCode = code
	h.mu.Unlock()

	h.app.Quit()
}
