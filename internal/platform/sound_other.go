//go:build !windows

package platform

const soundSupported = false

func startDetached(name string, args ...string) error {
	return ErrUnsupported
}
