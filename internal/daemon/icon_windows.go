//go:build windows

package daemon

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/fyne-io/image/ico"
)

// trayIcon converts a PNG icon to the ICO container the Windows tray requires
func trayIcon(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode tray icon: %w", err)
	}

	var buf bytes.Buffer
	if err := ico.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode tray icon: %w", err)
	}
	return buf.Bytes(), nil
}
