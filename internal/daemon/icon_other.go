//go:build !windows

package daemon

// trayIcon returns data unchanged; PNG is accepted as is
func trayIcon(data []byte) ([]byte, error) {
	return data, nil
}
