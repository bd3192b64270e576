//go:build linux

package platform

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (a *Autostart) entryPath() (string, error) {
	dir := a.dir
	if dir == "" {
		cfg, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(cfg, "autostart")
	}
	return filepath.Join(dir, a.id+".desktop"), nil
}

func (a *Autostart) desktopEntry() []byte {
	var b bytes.Buffer
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", a.name)
	fmt.Fprintf(&b, "Exec=%s\n", a.commandLine())
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	b.WriteString("Hidden=false\n")
	b.WriteString("NoDisplay=false\n")
	return b.Bytes()
}

func (a *Autostart) enable() error {
	path, err := a.entryPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, a.desktopEntry(), 0o644)
}

func (a *Autostart) disable() error {
	path, err := a.entryPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// isEnabled treats an entry marked Hidden=true as disabled, as desktop sessions do
func (a *Autostart) isEnabled() (bool, error) {
	path, err := a.entryPath()
	if err != nil {
		return false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(line, "Hidden=true") {
			return false, nil
		}
	}
	return true, scanner.Err()
}
