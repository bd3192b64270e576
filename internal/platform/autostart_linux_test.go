//go:build linux

package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestAutostart_LinuxRoundTrip(t *testing.T) {
	dir := t.TempDir()
	a, err := NewAutostart("Reminder", "com.reminder.app", []string{"--minimized"}, zap.NewNop(),
		WithExecutable("/opt/reminder/reminder"),
		WithEntryDir(dir))
	if err != nil {
		t.Fatal(err)
	}

	enabled, err := a.IsEnabled()
	if err != nil || enabled {
		t.Fatalf("IsEnabled() before Enable = %v, %v; want false, nil", enabled, err)
	}

	if err := a.Enable(); err != nil {
		t.Fatalf("Enable() error = %v", err)
	}
	enabled, err = a.IsEnabled()
	if err != nil || !enabled {
		t.Fatalf("IsEnabled() after Enable = %v, %v; want true, nil", enabled, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "com.reminder.app.desktop"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Exec=/opt/reminder/reminder --minimized\n") {
		t.Errorf("desktop entry missing launch command:\n%s", data)
	}

	if err := a.Disable(); err != nil {
		t.Fatalf("Disable() error = %v", err)
	}
	enabled, err = a.IsEnabled()
	if err != nil || enabled {
		t.Fatalf("IsEnabled() after Disable = %v, %v; want false, nil", enabled, err)
	}

	if err := a.Disable(); err != nil {
		t.Errorf("Disable() of absent entry = %v, want nil", err)
	}
}

func TestAutostart_LinuxHiddenEntryIsDisabled(t *testing.T) {
	dir := t.TempDir()
	a, err := NewAutostart("Reminder", "com.reminder.app", nil, zap.NewNop(),
		WithExecutable("/opt/reminder/reminder"),
		WithEntryDir(dir))
	if err != nil {
		t.Fatal(err)
	}

	entry := "[Desktop Entry]\nType=Application\nExec=/opt/reminder/reminder\nHidden=true\n"
	if err := os.WriteFile(filepath.Join(dir, "com.reminder.app.desktop"), []byte(entry), 0o644); err != nil {
		t.Fatal(err)
	}

	enabled, err := a.IsEnabled()
	if err != nil || enabled {
		t.Errorf("IsEnabled() = %v, %v; want false for Hidden=true", enabled, err)
	}
}
