//go:build windows

package platform

import (
	"os/exec"
	"syscall"
)

const soundSupported = true

// startDetached starts name without a console window and reaps it in the background
func startDetached(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
