package shell

import (
	"fmt"

	"go.uber.org/zap"
)

// Commands implements the operations the UI layer can invoke. Operations
// on an absent window succeed without doing anything.
type Commands struct {
	host      Host
	windows   *Registry
	autostart Autostarter
	sound     Sounder
	logger    *zap.Logger
}

// NewCommands creates the command surface
func NewCommands(host Host, windows *Registry, autostart Autostarter, sound Sounder, logger *zap.Logger) *Commands {
	return &Commands{
		host:      host,
		windows:   windows,
		autostart: autostart,
		sound:     sound,
		logger:    logger,
	}
}

// Greet formats a greeting
func (c *Commands) Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// SetAlwaysOnTop sets the main window's always-on-top flag
func (c *Commands) SetAlwaysOnTop(alwaysOnTop bool) error {
	main, ok := c.windows.Get(MainLabel)
	if !ok {
		return nil
	}
	if err := main.SetAlwaysOnTop(alwaysOnTop); err != nil {
		return err
	}
	c.logger.Info("Always on top set", zap.Bool("always_on_top", alwaysOnTop))
	return nil
}

// ShowPopupWindow shows the break popup, creating it on first use.
// An existing popup is raised and focused instead of duplicated.
func (c *Commands) ShowPopupWindow() error {
	if popup, ok := c.windows.Get(PopupLabel); ok {
		c.raise(popup)
		c.logger.Debug("Popup window refocused")
		return nil
	}

	if !c.windows.Reserve(PopupLabel) {
		c.logger.Debug("Popup window creation already in progress")
		return nil
	}

	committed := false
	defer func() {
		if !committed {
			c.windows.Cancel(PopupLabel)
		}
	}()

	popup, err := c.host.CreateWindow(PopupSpec())
	if err != nil {
		return fmt.Errorf("failed to create popup window: %w", err)
	}
	c.windows.Put(popup)
	committed = true

	if err := popup.Show(); err != nil {
		c.logger.Warn("Failed to show popup window", zap.Error(err))
	}
	if err := popup.SetFocus(); err != nil {
		c.logger.Debug("Failed to focus popup window", zap.Error(err))
	}

	c.logger.Info("Popup window created")
	return nil
}

// ClosePopupWindow closes the popup if it exists
func (c *Commands) ClosePopupWindow() error {
	popup, ok := c.windows.Get(PopupLabel)
	if !ok {
		return nil
	}
	if err := popup.Close(); err != nil {
		return err
	}
	c.windows.Remove(PopupLabel, popup)
	c.logger.Info("Popup window closed")
	return nil
}

// RequestAttention flashes the main window in the taskbar
func (c *Commands) RequestAttention() error {
	main, ok := c.windows.Get(MainLabel)
	if !ok {
		return nil
	}
	return main.RequestAttention()
}

// PlayNotificationSound starts the system notification sound where the
// platform supports it. It does not wait and cannot fail.
func (c *Commands) PlayNotificationSound() {
	if c.sound == nil || !c.sound.Supported() {
		c.logger.Debug("Notification sound not supported on this platform")
		return
	}
	c.sound.Play()
	c.logger.Info("Notification sound requested")
}

// SetAutostart registers or unregisters the login item
func (c *Commands) SetAutostart(enabled bool) error {
	if c.autostart == nil {
		return fmt.Errorf("autostart is not available")
	}
	if enabled {
		if err := c.autostart.Enable(); err != nil {
			return err
		}
		c.logger.Info("Autostart enabled")
		return nil
	}
	if err := c.autostart.Disable(); err != nil {
		return err
	}
	c.logger.Info("Autostart disabled")
	return nil
}

// IsAutostartEnabled reports whether the login item is registered
func (c *Commands) IsAutostartEnabled() (bool, error) {
	if c.autostart == nil {
		return false, fmt.Errorf("autostart is not available")
	}
	return c.autostart.IsEnabled()
}

// raise brings w to the front. Failures are logged, not returned.
func (c *Commands) raise(w Window) {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"always_on_top", func() error { return w.SetAlwaysOnTop(true) }},
		{"unminimize", w.Unminimize},
		{"show", w.Show},
		{"focus", w.SetFocus},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			c.logger.Debug("Window raise step failed",
				zap.String("window", string(w.Label())),
				zap.String("step", s.name),
				zap.Error(err))
		}
	}
}
