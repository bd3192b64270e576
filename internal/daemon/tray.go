package daemon

import (
	"errors"
	"fmt"
	"sync"

	"fyne.io/systray"
	"github.com/username/reminder/internal/shell"
	"github.com/username/reminder/internal/timer"
	"github.com/username/reminder/pkg/timefmt"
	"go.uber.org/zap"
)

var errNoIcon = errors.New("tray icon is empty")

// TrayApp is the system tray icon and menu
type TrayApp struct {
	logger *zap.Logger
	// schedule runs fn once the windowing event loop is up
	schedule func(fn func())

	mu      sync.Mutex
	quit    chan struct{}
	end     func()
	title   string
	tooltip string
	ready   bool
}

var _ shell.Tray = (*TrayApp)(nil)

// NewTrayApp creates a tray. schedule defers the native tray start until
// the host event loop runs; nil starts it immediately.
func NewTrayApp(schedule func(fn func()), logger *zap.Logger) *TrayApp {
	if schedule == nil {
		schedule = func(fn func()) { fn() }
	}
	return &TrayApp{
		logger:   logger,
		schedule: schedule,
		quit:     make(chan struct{}),
	}
}

// Build validates spec and registers the tray with the platform
func (t *TrayApp) Build(spec shell.TraySpec, handlers shell.TrayHandlers) error {
	if len(spec.Icon) == 0 {
		return errNoIcon
	}
	if handlers.OnMenu == nil || handlers.OnIcon == nil {
		return fmt.Errorf("tray %q: handlers are required", spec.ID)
	}

	icon, err := trayIcon(spec.Icon)
	if err != nil {
		return err
	}
	spec.Icon = icon

	t.mu.Lock()
	t.title = spec.Title
	t.tooltip = spec.Tooltip
	t.mu.Unlock()

	start, end := systray.RunWithExternalLoop(func() { t.onReady(spec, handlers) }, t.onExit)
	t.mu.Lock()
	t.end = end
	t.mu.Unlock()

	t.schedule(start)
	t.logger.Info("Tray registered", zap.String("id", spec.ID))
	return nil
}

func (t *TrayApp) onReady(spec shell.TraySpec, handlers shell.TrayHandlers) {
	systray.SetIcon(spec.Icon)
	systray.SetTitle(spec.Title)
	systray.SetTooltip(spec.Tooltip)

	if !spec.ShowMenuOnLeftClick {
		systray.SetOnTapped(func() {
			handlers.OnIcon(shell.TrayIconEvent{Button: shell.ButtonLeft, State: shell.ButtonUp})
		})
	}

	for _, item := range spec.Menu {
		mi := systray.AddMenuItem(item.Label, item.Label)
		go t.forward(item.ID, mi, handlers.OnMenu)
	}

	t.mu.Lock()
	t.ready = true
	t.mu.Unlock()
	t.logger.Info("Tray ready", zap.Int("menu_items", len(spec.Menu)))
}

// forward delivers clicks on mi to onMenu until the tray stops
func (t *TrayApp) forward(id string, mi *systray.MenuItem, onMenu func(string)) {
	for {
		select {
		case <-mi.ClickedCh:
			t.logger.Debug("Tray menu item clicked", zap.String("id", id))
			onMenu(id)
		case <-t.quit:
			return
		}
	}
}

func (t *TrayApp) onExit() {
	t.logger.Info("System tray exited")
}

// ShowStatus updates the tooltip with the countdown state
func (t *TrayApp) ShowStatus(snap timer.Snapshot) {
	t.mu.Lock()
	if !t.ready {
		t.mu.Unlock()
		return
	}
	text := StatusText(t.tooltip, snap)
	t.mu.Unlock()

	systray.SetTooltip(text)
}

// Stop removes the tray icon
func (t *TrayApp) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	select {
	case <-t.quit:
		return
	default:
		close(t.quit)
	}
	if t.end != nil {
		t.end()
	}
}

// StatusText formats a tray tooltip for snap
func StatusText(name string, snap timer.Snapshot) string {
	switch snap.Status {
	case timer.StatusRunning:
		return fmt.Sprintf("%s · %s kaldı", name, timefmt.Countdown(snap.Remaining))
	case timer.StatusPaused:
		return fmt.Sprintf("%s · Duraklatıldı (%s)", name, timefmt.Countdown(snap.Remaining))
	case timer.StatusExpired:
		return fmt.Sprintf("%s · Mola zamanı", name)
	default:
		return name
	}
}
