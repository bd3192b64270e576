//go:build !windows && !darwin && !linux

package platform

func (a *Autostart) enable() error            { return ErrUnsupported }
func (a *Autostart) disable() error           { return ErrUnsupported }
func (a *Autostart) isEnabled() (bool, error) { return false, ErrUnsupported }
