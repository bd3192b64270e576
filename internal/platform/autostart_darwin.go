//go:build darwin

package platform

import (
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"
)

// launchAgent is the LaunchAgent property list
type launchAgent struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	RunAtLoad        bool     `plist:"RunAtLoad"`
	ProcessType      string   `plist:"ProcessType,omitempty"`
}

func (a *Autostart) plistPath() (string, error) {
	dir := a.dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, "Library", "LaunchAgents")
	}
	return filepath.Join(dir, a.id+".plist"), nil
}

func (a *Autostart) enable() error {
	path, err := a.plistPath()
	if err != nil {
		return err
	}

	agent := launchAgent{
		Label:            a.id,
		ProgramArguments: append([]string{a.exec}, a.args...),
		RunAtLoad:        true,
		ProcessType:      "Interactive",
	}
	data, err := plist.MarshalIndent(agent, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to encode launch agent: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (a *Autostart) disable() error {
	path, err := a.plistPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (a *Autostart) isEnabled() (bool, error) {
	path, err := a.plistPath()
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

	var agent launchAgent
	if _, err := plist.Unmarshal(data, &agent); err != nil {
		return false, fmt.Errorf("failed to parse launch agent: %w", err)
	}
	return agent.RunAtLoad && agent.Label == a.id, nil
}
