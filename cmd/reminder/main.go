package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"github.com/username/reminder/internal/config"
	"github.com/username/reminder/internal/daemon"
	"github.com/username/reminder/internal/desktop"
	"github.com/username/reminder/internal/platform"
	"github.com/username/reminder/internal/settings"
	"github.com/username/reminder/internal/shell"
	"github.com/username/reminder/internal/timer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	minimized  bool
	logger     *zap.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reminder",
		Short: "Break reminder",
		Long:  "Tray application that reminds you to take a break at a fixed interval",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				cfg.ExpandEnvVars()
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger() // Default console logger
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := runApp(minimized || shell.ParseLaunchArgs(os.Args[1:]))
			if err != nil {
				return err
			}
			_ = logger.Sync()
			if code != 0 {
				os.Exit(code)
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path")
	rootCmd.Flags().BoolVar(&minimized, "minimized", false, "Start hidden in the system tray")

	rootCmd.AddCommand(autostartCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(greetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runApp wires the application and blocks in the UI event loop.
// It returns the exit code the loop ended with.
func runApp(startMinimized bool) (int, error) {
	cfg, err := loadConfig()
	if err != nil {
		return 1, err
	}

	store := settings.NewStore(cfg.GetSettingsFile(), logger)
	if _, err := store.Load(); err != nil {
		logger.Warn("Failed to persist default settings", zap.Error(err))
	}
	tm := timer.New(timer.Minutes(store.Get().IntervalMinutes))

	fyneApp := app.NewWithID(cfg.App.ID)
	fyneApp.SetIcon(desktop.Icon())

	host := desktop.NewHost(fyneApp, cfg.App.Name, logger)
	tray := daemon.NewTrayApp(host.OnStarted, logger)

	var starter shell.Autostarter
	autostart, err := newAutostart(cfg)
	if err != nil {
		logger.Warn("Autostart unavailable", zap.Error(err))
	} else {
		starter = autostart
	}

	shellApp := shell.New(host, tray, starter, platform.NewSound(logger), shell.Options{
		Minimized: startMinimized,
		TrayID:    "main-tray",
		Title:     cfg.App.Name,
		Tooltip:   cfg.App.Name,
		Icon:      desktop.IconBytes(),
	}, logger)
	client := shell.NewClient(shellApp.Dispatcher(), logger)

	views := desktop.NewViews(fyneApp, tm, store, client, desktop.ViewOptions{
		AppName:   cfg.App.Name,
		AutoClose: cfg.Popup.GetAutoCloseDelay(),
	}, logger)
	mainView := views.NewMainView()
	host.SetMainContent(mainView.Content())
	host.Route(desktop.PopupRoute, views.Popup)

	d := daemon.NewDaemon(tm, store, client, host, cfg.Reminder.GetTickInterval(), logger)
	d.Subscribe(mainView.Refresh)
	d.Subscribe(tray.ShowStatus)
	d.OnShutdown(shellApp.Quit)

	if err := shellApp.Setup(); err != nil {
		return 1, err
	}
	host.OnStarted(d.ApplyInitialSettings)

	logger.Info("Starting reminder",
		zap.String("app_id", cfg.App.ID),
		zap.Bool("minimized", startMinimized),
		zap.String("settings_file", cfg.GetSettingsFile()),
		zap.Strings("commands", shellApp.Dispatcher().Names()))

	d.Start()
	defer d.Stop()
	defer tray.Stop()

	return shellApp.Run()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newAutostart(cfg *config.Config) (*platform.Autostart, error) {
	return platform.NewAutostart(cfg.GetAutostartName(), cfg.App.ID, []string{shell.MinimizedFlag}, logger)
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10,   // MB
		MaxBackups: 3,    // Keep max 3 old log files
		MaxAge:     28,   // days
		Compress:   true, // Compress old logs with gzip
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
