package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Mode controls what happens when a break is due
type Mode string

const (
	ModeConfirm Mode = "confirm" // popup waits for the user
	ModeAuto    Mode = "auto"    // popup restarts the timer after a countdown
)

// Theme is the UI color scheme
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Intervals lists the reminder intervals offered in the settings view, in minutes
var Intervals = []int{40, 60, 90, 120}

// Settings represents user preferences
type Settings struct {
	IntervalMinutes int   `json:"intervalMinutes"`
	Mode            Mode  `json:"mode"`
	DND             bool  `json:"dnd"`
	AlwaysOnTop     bool  `json:"alwaysOnTop"`
	Theme           Theme `json:"theme"`
	Autostart       bool  `json:"autostart"`
	SoundEnabled    bool  `json:"soundEnabled"`
}

// Defaults returns the settings used on first run
func Defaults() Settings {
	return Settings{
		IntervalMinutes: 60,
		Mode:            ModeConfirm,
		DND:             false,
		AlwaysOnTop:     false,
		Theme:           ThemeSystem,
		Autostart:       true,
		SoundEnabled:    true,
	}
}

// Patch is a partial update; nil fields are left unchanged
type Patch struct {
	IntervalMinutes *int
	Mode            *Mode
	DND             *bool
	AlwaysOnTop     *bool
	Theme           *Theme
	Autostart       *bool
	SoundEnabled    *bool
}

// Apply returns s with every non-nil field of p applied
func (p Patch) Apply(s Settings) Settings {
	if p.IntervalMinutes != nil && *p.IntervalMinutes > 0 {
		s.IntervalMinutes = *p.IntervalMinutes
	}
	if p.Mode != nil && p.Mode.Valid() {
		s.Mode = *p.Mode
	}
	if p.DND != nil {
		s.DND = *p.DND
	}
	if p.AlwaysOnTop != nil {
		s.AlwaysOnTop = *p.AlwaysOnTop
	}
	if p.Theme != nil && p.Theme.Valid() {
		s.Theme = *p.Theme
	}
	if p.Autostart != nil {
		s.Autostart = *p.Autostart
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	return s
}

// Valid reports whether m is a known mode
func (m Mode) Valid() bool {
	return m == ModeConfirm || m == ModeAuto
}

// Valid reports whether t is a known theme
func (t Theme) Valid() bool {
	return t == ThemeLight || t == ThemeDark || t == ThemeSystem
}

// document is the on-disk layout of settings.json
type document struct {
	Settings          *json.RawMessage `json:"settings,omitempty"`
	HasSeenOnboarding bool             `json:"hasSeenOnboarding,omitempty"`
}

// Store keeps settings in memory and persists them to a JSON file
type Store struct {
	path      string
	logger    *zap.Logger
	mu        sync.RWMutex
	current   Settings
	onboarded bool
	loaded    bool
	listeners []func(prev, next Settings)
}

// NewStore creates a settings store backed by path
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:    path,
		logger:  logger,
		current: Defaults(),
	}
}

// Load reads settings from disk. Stored values are merged over defaults.
// A missing file is a first run: defaults are written back. A corrupt file
// falls back to defaults without failing.
func (s *Store) Load() (Settings, error) {
	doc, err := s.read()
	if err != nil {
		if os.IsNotExist(err) {
			s.mu.Lock()
			s.current = Defaults()
			s.loaded = true
			s.mu.Unlock()
			s.logger.Info("Settings file not found, writing defaults", zap.String("path", s.path))
			return s.Get(), s.save()
		}
		s.logger.Warn("Failed to load settings, using defaults",
			zap.String("path", s.path),
			zap.Error(err))
		s.mu.Lock()
		s.current = Defaults()
		s.loaded = true
		s.mu.Unlock()
		return s.Get(), nil
	}

	merged := Defaults()
	if doc.Settings != nil {
		if err := json.Unmarshal(*doc.Settings, &merged); err != nil {
			s.logger.Warn("Failed to parse settings, using defaults", zap.Error(err))
			merged = Defaults()
		}
	}
	merged = sanitize(merged)

	s.mu.Lock()
	s.current = merged
	s.onboarded = doc.HasSeenOnboarding
	s.loaded = true
	s.mu.Unlock()

	s.logger.Info("Settings loaded",
		zap.String("path", s.path),
		zap.Int("interval_minutes", merged.IntervalMinutes),
		zap.String("mode", string(merged.Mode)))

	if doc.Settings == nil {
		return merged, s.save()
	}
	return merged, nil
}

// Get returns a copy of the current settings
func (s *Store) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Loaded reports whether Load has completed
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Path returns the settings file location
func (s *Store) Path() string {
	return s.path
}

// Update applies p in memory, notifies listeners, then persists. It returns
// the settings as they stand after the listeners ran. The in-memory update
// stands even when saving fails.
func (s *Store) Update(p Patch) (Settings, error) {
	s.mu.Lock()
	old := s.current
	s.current = p.Apply(s.current)
	updated := s.current
	listeners := append([]func(prev, next Settings){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(old, updated)
	}

	// listeners may have updated the settings again
	s.mu.RLock()
	updated = s.current
	s.mu.RUnlock()

	if err := s.save(); err != nil {
		s.logger.Error("Failed to save settings", zap.Error(err))
		return updated, err
	}
	return updated, nil
}

// Reset restores defaults and persists them
func (s *Store) Reset() (Settings, error) {
	d := Defaults()
	return s.Update(Patch{
		IntervalMinutes: &d.IntervalMinutes,
		Mode:            &d.Mode,
		DND:             &d.DND,
		AlwaysOnTop:     &d.AlwaysOnTop,
		Theme:           &d.Theme,
		Autostart:       &d.Autostart,
		SoundEnabled:    &d.SoundEnabled,
	})
}

// Onboarded reports whether the first-run screen has been dismissed
func (s *Store) Onboarded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.onboarded
}

// MarkOnboarded records that the first-run screen has been dismissed
func (s *Store) MarkOnboarded() error {
	s.mu.Lock()
	s.onboarded = true
	s.mu.Unlock()
	return s.save()
}

// OnChange registers fn to run after every update
func (s *Store) OnChange(fn func(prev, next Settings)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) read() (*document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse settings file: %w", err)
	}
	return &doc, nil
}

func (s *Store) save() error {
	s.mu.RLock()
	raw, err := json.Marshal(s.current)
	onboarded := s.onboarded
	s.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	msg := json.RawMessage(raw)
	data, err := json.MarshalIndent(document{Settings: &msg, HasSeenOnboarding: onboarded}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings dir: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}
	return nil
}

// sanitize replaces out-of-range stored values with defaults
func sanitize(s Settings) Settings {
	d := Defaults()
	if s.IntervalMinutes <= 0 {
		s.IntervalMinutes = d.IntervalMinutes
	}
	if !s.Mode.Valid() {
		s.Mode = d.Mode
	}
	if !s.Theme.Valid() {
		s.Theme = d.Theme
	}
	return s
}
