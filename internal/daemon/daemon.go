package daemon

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/internal/shell"
	"github.com/username/reminder/internal/timer"
	"go.uber.org/zap"
)

// UIThread runs functions on the windowing toolkit's event loop
type UIThread interface {
	Do(fn func())
}

// Commands is the subset of the shell's named operations the reminder uses
type Commands interface {
	SetAlwaysOnTop(alwaysOnTop bool) error
	ShowPopupWindow() error
	RequestAttention() error
	PlayNotificationSound() error
	SetAutostart(enabled bool) error
}

var _ Commands = (*shell.Client)(nil)

// Daemon drives the break timer in the background and raises the break
// alert when an interval runs out
type Daemon struct {
	timer        *timer.Timer
	settings     *settings.Store
	commands     Commands
	ui           UIThread
	tickInterval time.Duration
	logger       *zap.Logger
	ctx          context.Context
	cancel       context.CancelFunc
	onShutdown   func()

	mu        sync.Mutex
	listeners []func(timer.Snapshot)
	alerts    int
	lastAlert time.Time
	reverting bool
}

// NewDaemon creates the reminder loop
func NewDaemon(t *timer.Timer, store *settings.Store, commands Commands, ui UIThread, tickInterval time.Duration, logger *zap.Logger) *Daemon {
	ctx, cancel := context.WithCancel(context.Background())

	if tickInterval <= 0 {
		tickInterval = time.Second
	}

	d := &Daemon{
		timer:        t,
		settings:     store,
		commands:     commands,
		ui:           ui,
		tickInterval: tickInterval,
		logger:       logger,
		ctx:          ctx,
		cancel:       cancel,
	}
	store.OnChange(d.applySettings)
	return d
}

// OnShutdown registers fn to run when the process receives SIGINT or SIGTERM
func (d *Daemon) OnShutdown(fn func()) {
	d.onShutdown = fn
}

// Subscribe registers fn to receive a snapshot on every tick, on the UI thread
func (d *Daemon) Subscribe(fn func(timer.Snapshot)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, fn)
}

// Timer returns the break timer the daemon drives
func (d *Daemon) Timer() *timer.Timer {
	return d.timer
}

// Start runs the loop in the background
func (d *Daemon) Start() {
	go d.run()
}

// Stop stops the loop
func (d *Daemon) Stop() {
	d.cancel()
}

// ApplyInitialSettings pushes persisted window settings to the shell once at startup
func (d *Daemon) ApplyInitialSettings() {
	s := d.settings.Get()
	d.timer.SetInterval(timer.Minutes(s.IntervalMinutes))
	if err := d.commands.SetAlwaysOnTop(s.AlwaysOnTop); err != nil {
		d.logger.Warn("Failed to apply always-on-top setting", zap.Error(err))
	}
}

func (d *Daemon) run() {
	d.logger.Info("Reminder loop started", zap.Duration("tick_interval", d.tickInterval))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(d.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-d.ctx.Done():
			d.logger.Info("Reminder loop stopped")
			return

		case sig := <-sigChan:
			d.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			d.Stop()
			if d.onShutdown != nil {
				d.ui.Do(d.onShutdown)
			}
			return

		case <-ticker.C:
			d.Step()
		}
	}
}

// Step advances the timer once and, if the interval just ran out, raises the alert
func (d *Daemon) Step() {
	expired := d.timer.Tick()
	snap := d.timer.Snapshot()

	d.ui.Do(func() {
		d.mu.Lock()
		listeners := append([]func(timer.Snapshot){}, d.listeners...)
		d.mu.Unlock()

		for _, fn := range listeners {
			fn(snap)
		}
		if expired {
			d.alert()
		}
	})
}

// Alerts returns how many break alerts have been raised
func (d *Daemon) Alerts() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alerts
}

// alert plays the sound, flashes the main window and opens the popup.
// Do-not-disturb suppresses all three.
func (d *Daemon) alert() {
	s := d.settings.Get()
	if s.DND {
		d.logger.Info("Break due, suppressed by do-not-disturb")
		return
	}

	d.mu.Lock()
	d.alerts++
	d.lastAlert = time.Now()
	d.mu.Unlock()

	d.logger.Info("Break due", zap.Int("interval_minutes", s.IntervalMinutes))

	if s.SoundEnabled {
		if err := d.commands.PlayNotificationSound(); err != nil {
			d.logger.Warn("Failed to play notification sound", zap.Error(err))
		}
	}
	if err := d.commands.RequestAttention(); err != nil {
		d.logger.Warn("Failed to request attention", zap.Error(err))
	}
	if err := d.commands.ShowPopupWindow(); err != nil {
		d.logger.Error("Failed to show popup window", zap.Error(err))
	}
}

// applySettings reacts to settings changes made in the UI. A window or
// login-item change the OS rejects is rolled back in the store, so the
// saved settings keep matching what is actually applied.
func (d *Daemon) applySettings(prev, next settings.Settings) {
	if prev.IntervalMinutes != next.IntervalMinutes {
		d.timer.SetInterval(timer.Minutes(next.IntervalMinutes))
		d.logger.Info("Reminder interval changed",
			zap.Int("from_minutes", prev.IntervalMinutes),
			zap.Int("to_minutes", next.IntervalMinutes))
	}
	if prev.AlwaysOnTop != next.AlwaysOnTop {
		if err := d.commands.SetAlwaysOnTop(next.AlwaysOnTop); err != nil {
			d.logger.Warn("Failed to apply always-on-top setting, reverting", zap.Error(err))
			d.revert(settings.Patch{AlwaysOnTop: &prev.AlwaysOnTop})
		}
	}
	if prev.Autostart != next.Autostart {
		if err := d.commands.SetAutostart(next.Autostart); err != nil {
			d.logger.Warn("Failed to apply autostart setting, reverting", zap.Error(err))
			d.revert(settings.Patch{Autostart: &prev.Autostart})
		}
	}
}

// revert restores settings after a failed apply. A revert that itself fails
// to apply is not reverted again.
func (d *Daemon) revert(p settings.Patch) {
	d.mu.Lock()
	if d.reverting {
		d.mu.Unlock()
		return
	}
	d.reverting = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.reverting = false
		d.mu.Unlock()
	}()

	if _, err := d.settings.Update(p); err != nil {
		d.logger.Warn("Failed to save reverted settings", zap.Error(err))
	}
}

// GetStatus returns daemon status
func (d *Daemon) GetStatus() map[string]interface{} {
	snap := d.timer.Snapshot()
	s := d.settings.Get()

	d.mu.Lock()
	alerts, lastAlert := d.alerts, d.lastAlert
	d.mu.Unlock()

	status := map[string]interface{}{
		"status":            string(snap.Status),
		"interval_minutes":  int(snap.Interval / time.Minute),
		"remaining_seconds": int(snap.Remaining / time.Second),
		"mode":              string(s.Mode),
		"dnd":               s.DND,
		"alerts":            alerts,
	}
	if !lastAlert.IsZero() {
		status["last_alert"] = lastAlert.Format(time.RFC3339)
	}
	return status
}
