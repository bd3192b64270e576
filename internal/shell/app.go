// Package shell is the application shell: it owns the window registry, the
// named operations the UI invokes, the tray policy and the startup sequence.
package shell

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// MinimizedFlag is passed by the autostart entry to start hidden in the tray
const MinimizedFlag = "--minimized"

// State is a startup phase
type State int

const (
	StateInit State = iota
	StateTrayBuilt
	StateWindowWired
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateTrayBuilt:
		return "tray_built"
	case StateWindowWired:
		return "window_wired"
	case StateRunning:
		return "running"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var ErrAlreadyStarted = errors.New("shell already started")

// ParseLaunchArgs reports whether args contain MinimizedFlag
func ParseLaunchArgs(args []string) bool {
	for _, a := range args {
		if a == MinimizedFlag {
			return true
		}
	}
	return false
}

// Options configures the shell
type Options struct {
	// Minimized hides the main window at startup
	Minimized bool
	TrayID    string
	Title     string
	Tooltip   string
	Icon      []byte
}

// App is the application context. It is created once and handed to every
// callback and command; it lives as long as the process.
type App struct {
	host       Host
	tray       Tray
	windows    *Registry
	commands   *Commands
	dispatcher *Dispatcher
	opts       Options
	logger     *zap.Logger

	mu    sync.Mutex
	state State
}

// New creates the application context
func New(host Host, tray Tray, autostart Autostarter, sound Sounder, opts Options, logger *zap.Logger) *App {
	windows := NewRegistry()
	commands := NewCommands(host, windows, autostart, sound, logger)

	return &App{
		host:       host,
		tray:       tray,
		windows:    windows,
		commands:   commands,
		dispatcher: NewDispatcher(commands, logger),
		opts:       opts,
		logger:     logger,
		state:      StateInit,
	}
}

// Commands returns the typed command surface
func (a *App) Commands() *Commands { return a.commands }

// Dispatcher returns the named operation router
func (a *App) Dispatcher() *Dispatcher { return a.dispatcher }

// Windows returns the window registry
func (a *App) Windows() *Registry { return a.windows }

// State returns the current startup phase
func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Setup builds the tray and wires the main window. A tray failure aborts
// startup. Setup runs once; later calls return ErrAlreadyStarted.
func (a *App) Setup() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.state != StateInit {
		return ErrAlreadyStarted
	}

	if err := a.buildTray(); err != nil {
		return fmt.Errorf("failed to build tray: %w", err)
	}
	a.state = StateTrayBuilt

	a.wireMainWindow()
	a.state = StateWindowWired

	return nil
}

// Run completes setup if needed and blocks in the host event loop.
// It returns the exit code the loop ended with.
func (a *App) Run() (int, error) {
	if a.State() == StateInit {
		if err := a.Setup(); err != nil {
			return 1, err
		}
	}

	a.mu.Lock()
	if a.state != StateWindowWired {
		a.mu.Unlock()
		return 1, ErrAlreadyStarted
	}
	a.state = StateRunning
	a.mu.Unlock()

	a.logger.Info("Entering event loop")
	code := a.host.Run()
	a.logger.Info("Event loop exited", zap.Int("exit_code", code))
	return code, nil
}

// ShowMain shows, restores and focuses the main window if it exists
func (a *App) ShowMain() {
	main, ok := a.windows.Get(MainLabel)
	if !ok {
		return
	}
	if err := main.Show(); err != nil {
		a.logger.Debug("Failed to show main window", zap.Error(err))
	}
	if err := main.Unminimize(); err != nil {
		a.logger.Debug("Failed to unminimize main window", zap.Error(err))
	}
	if err := main.SetFocus(); err != nil {
		a.logger.Debug("Failed to focus main window", zap.Error(err))
	}
}

// Quit ends the process with exit code 0
func (a *App) Quit() {
	a.logger.Info("Quit requested")
	a.host.Exit(0)
}

func (a *App) buildTray() error {
	spec := TraySpec{
		ID:                  a.opts.TrayID,
		Title:               a.opts.Title,
		Tooltip:             a.opts.Tooltip,
		Icon:                a.opts.Icon,
		Menu:                DefaultMenu(),
		ShowMenuOnLeftClick: false,
	}
	if spec.ID == "" {
		spec.ID = "main-tray"
	}

	return a.tray.Build(spec, TrayHandlers{
		OnMenu: func(id string) {
			a.host.Do(func() { a.handleMenu(id) })
		},
		OnIcon: func(ev TrayIconEvent) {
			a.host.Do(func() { a.handleTrayIcon(ev) })
		},
	})
}

func (a *App) handleMenu(id string) {
	switch id {
	case MenuShow:
		a.ShowMain()
	case MenuQuit:
		a.Quit()
	default:
		a.logger.Debug("Ignoring unknown tray menu item", zap.String("id", id))
	}
}

func (a *App) handleTrayIcon(ev TrayIconEvent) {
	if ev.Button == ButtonLeft && ev.State == ButtonUp {
		a.ShowMain()
	}
}

func (a *App) wireMainWindow() {
	main, ok := a.host.MainWindow()
	if !ok {
		a.logger.Warn("Main window not found")
		return
	}
	a.windows.Put(main)

	if a.opts.Minimized {
		if err := main.Hide(); err != nil {
			a.logger.Warn("Failed to hide main window", zap.Error(err))
		}
		a.logger.Info("Started minimized to tray (autostart)")
	} else {
		a.logger.Info("Main window initialized")
	}

	main.OnCloseRequested(func(req *CloseRequest) {
		req.PreventClose()
		if err := main.Hide(); err != nil {
			a.logger.Warn("Failed to hide main window", zap.Error(err))
			return
		}
		a.logger.Info("Window hidden to tray")
	})
}
