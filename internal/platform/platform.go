// Package platform holds the OS integrations the shell calls into: login-item
// registration, the notification sound and native window operations.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupported is returned for operations the current OS does not provide
var ErrUnsupported = errors.New("not supported on " + runtime.GOOS)

// ErrNoWindow is returned by native window operations given a zero handle,
// which is what the toolkit reports before the native window exists
var ErrNoWindow = errors.New("native window not created yet")

// Autostart registers the running executable as a login item
type Autostart struct {
	name   string
	id     string
	exec   string
	args   []string
	dir    string // where the per-user entry lives; empty means the OS default
	logger *zap.Logger
}

// AutostartOption customizes an Autostart
type AutostartOption func(*Autostart)

// WithExecutable overrides the executable path (default: os.Executable)
func WithExecutable(path string) AutostartOption {
	return func(a *Autostart) { a.exec = path }
}

// WithEntryDir overrides where the login-item entry is written
func WithEntryDir(dir string) AutostartOption {
	return func(a *Autostart) { a.dir = dir }
}

// NewAutostart creates a login item called name that launches the current
// executable with args. id is a reverse-DNS identifier used where the OS wants one.
func NewAutostart(name, id string, args []string, logger *zap.Logger, opts ...AutostartOption) (*Autostart, error) {
	a := &Autostart{
		name:   name,
		id:     id,
		args:   append([]string(nil), args...),
		logger: logger,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.exec == "" {
		exe, err := os.Executable()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve executable: %w", err)
		}
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		a.exec = exe
	}
	return a, nil
}

// Enable registers the login item
func (a *Autostart) Enable() error {
	if err := a.enable(); err != nil {
		return fmt.Errorf("failed to enable autostart: %w", err)
	}
	a.logger.Info("Autostart entry written",
		zap.String("name", a.name),
		zap.String("exec", a.exec),
		zap.Strings("args", a.args))
	return nil
}

// Disable removes the login item. Removing an absent entry succeeds.
func (a *Autostart) Disable() error {
	if err := a.disable(); err != nil {
		return fmt.Errorf("failed to disable autostart: %w", err)
	}
	a.logger.Info("Autostart entry removed", zap.String("name", a.name))
	return nil
}

// IsEnabled reports whether the login item is registered
func (a *Autostart) IsEnabled() (bool, error) {
	ok, err := a.isEnabled()
	if err != nil {
		return false, fmt.Errorf("failed to query autostart: %w", err)
	}
	return ok, nil
}

// commandLine renders exec and args, quoting parts that contain spaces
func (a *Autostart) commandLine() string {
	parts := make([]string, 0, len(a.args)+1)
	parts = append(parts, quote(a.exec))
	for _, arg := range a.args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\"") {
		return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
	}
	return s
}
