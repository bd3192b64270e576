package platform

import (
	"encoding/base64"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// exclamationScript plays the built-in Windows exclamation sound
const exclamationScript = "[System.Media.SystemSounds]::Exclamation.Play()"

// Sound plays the system notification sound as a detached process
type Sound struct {
	logger *zap.Logger
	spawn  func(name string, args ...string) error
}

// NewSound creates the notification sound player
func NewSound(logger *zap.Logger) *Sound {
	return &Sound{logger: logger, spawn: startDetached}
}

// Supported reports whether this platform has a notification sound
func (s *Sound) Supported() bool {
	return soundSupported
}

// Play starts the sound and returns immediately. The spawned process is not
// awaited and its outcome is never reported.
func (s *Sound) Play() {
	if !soundSupported {
		return
	}
	encoded, err := EncodePowerShell(exclamationScript)
	if err != nil {
		s.logger.Debug("Failed to encode sound command", zap.Error(err))
		return
	}
	if err := s.spawn("powershell", "-NoProfile", "-NonInteractive", "-EncodedCommand", encoded); err != nil {
		s.logger.Debug("Failed to spawn sound process", zap.Error(err))
	}
}

// EncodePowerShell encodes script for powershell -EncodedCommand:
// base64 over UTF-16LE without BOM
func EncodePowerShell(script string) (string, error) {
	encoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	utf16, _, err := transform.Bytes(encoder, []byte(script))
	if err != nil {
		return "", fmt.Errorf("failed to encode script as UTF-16LE: %w", err)
	}
	return base64.StdEncoding.EncodeToString(utf16), nil
}
