package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Config represents application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" yaml:"app"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Settings  SettingsConfig  `mapstructure:"settings" yaml:"settings"`
	Reminder  ReminderConfig  `mapstructure:"reminder" yaml:"reminder"`
	Popup     PopupConfig     `mapstructure:"popup" yaml:"popup"`
	Autostart AutostartConfig `mapstructure:"autostart" yaml:"autostart"`
}

// AppConfig identifies the application to the desktop environment
type AppConfig struct {
	ID   string `mapstructure:"id" yaml:"id"`
	Name string `mapstructure:"name" yaml:"name"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// SettingsConfig points at the user settings store
type SettingsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

// ReminderConfig represents the reminder loop configuration
type ReminderConfig struct {
	TickInterval string `mapstructure:"tick_interval" yaml:"tick_interval"`
}

// PopupConfig represents the break popup configuration
type PopupConfig struct {
	AutoCloseSeconds int `mapstructure:"auto_close_seconds" yaml:"auto_close_seconds"`
}

// AutostartConfig represents login-item registration
type AutostartConfig struct {
	Name string `mapstructure:"name" yaml:"name"`
}

const (
	DefaultAppID            = "com.reminder.app"
	DefaultAppName          = "Reminder"
	DefaultLogLevel         = "info"
	DefaultTickInterval     = "1s"
	DefaultAutoCloseSeconds = 10
	settingsFileName        = "settings.json"
)

// Default returns the configuration used when no config file is present
func Default() *Config {
	return &Config{
		App: AppConfig{
			ID:   DefaultAppID,
			Name: DefaultAppName,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
		Reminder: ReminderConfig{
			TickInterval: DefaultTickInterval,
		},
		Popup: PopupConfig{
			AutoCloseSeconds: DefaultAutoCloseSeconds,
		},
		Autostart: AutostartConfig{
			Name: DefaultAppName,
		},
	}
}

// Load loads configuration from file. A missing config file is not an error:
// defaults and REMINDER_* environment variables still apply.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	def := Default()
	v.SetDefault("app.id", def.App.ID)
	v.SetDefault("app.name", def.App.Name)
	v.SetDefault("log.file", def.Log.File)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("settings.file", def.Settings.File)
	v.SetDefault("reminder.tick_interval", def.Reminder.TickInterval)
	v.SetDefault("popup.auto_close_seconds", def.Popup.AutoCloseSeconds)
	v.SetDefault("autostart.name", def.Autostart.Name)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.reminder")
		v.AddConfigPath("/etc/reminder")
	}

	v.SetEnvPrefix("reminder")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound):
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.App.ID == "" {
		return fmt.Errorf("app.id is required")
	}

	if c.Log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
		}
	}

	if c.Reminder.TickInterval != "" {
		d, err := time.ParseDuration(c.Reminder.TickInterval)
		if err != nil {
			return fmt.Errorf("reminder.tick_interval: %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("reminder.tick_interval must be positive")
		}
	}

	if c.Popup.AutoCloseSeconds < 0 {
		return fmt.Errorf("popup.auto_close_seconds must not be negative")
	}

	return nil
}

// GetTickInterval returns the reminder loop tick interval
func (c *ReminderConfig) GetTickInterval() time.Duration {
	if c.TickInterval == "" {
		return time.Second
	}
	duration, err := time.ParseDuration(c.TickInterval)
	if err != nil || duration <= 0 {
		return time.Second
	}
	return duration
}

// GetAutoCloseDelay returns how long an auto-mode popup waits before restarting the timer
func (c *PopupConfig) GetAutoCloseDelay() time.Duration {
	if c.AutoCloseSeconds <= 0 {
		return DefaultAutoCloseSeconds * time.Second
	}
	return time.Duration(c.AutoCloseSeconds) * time.Second
}

// GetSettingsFile returns the settings store path. Default: <user config dir>/<app id>/settings.json
func (c *Config) GetSettingsFile() string {
	if c.Settings.File != "" {
		return os.ExpandEnv(c.Settings.File)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return settingsFileName
	}
	return filepath.Join(dir, c.App.ID, settingsFileName)
}

// GetAutostartName returns the login-item name
func (c *Config) GetAutostartName() string {
	if c.Autostart.Name != "" {
		return c.Autostart.Name
	}
	if c.App.Name != "" {
		return c.App.Name
	}
	return DefaultAppName
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Log.File = os.ExpandEnv(c.Log.File)
	c.Settings.File = os.ExpandEnv(c.Settings.File)
}
