package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/username/reminder/internal/config"
	"github.com/username/reminder/internal/shell"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func autostartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autostart",
		Short: "Manage the login item that starts the reminder minimized",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "enable",
		Short: "Start the reminder at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAutostart(true)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "disable",
		Short: "Do not start the reminder at login",
		RunE: func(cmd *cobra.Command, args []string) error {
			return setAutostart(false)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show whether the login item is registered",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			autostart, err := newAutostart(cfg)
			if err != nil {
				return err
			}

			enabled, err := autostart.IsEnabled()
			if err != nil {
				return fmt.Errorf("failed to read autostart state: %w", err)
			}
			state := "disabled"
			if enabled {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Autostart: %s\n", state)
			return nil
		},
	})

	return cmd
}

func setAutostart(enabled bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	autostart, err := newAutostart(cfg)
	if err != nil {
		return err
	}

	cmds := shell.NewCommands(nil, shell.NewRegistry(), autostart, nil, logger)
	if err := cmds.SetAutostart(enabled); err != nil {
		return fmt.Errorf("failed to update autostart: %w", err)
	}
	logger.Info("Autostart updated", zap.Bool("enabled", enabled))
	return nil
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return writeDefaultConfig(path, force)
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.AddCommand(initCmd)

	return cmd
}

func writeDefaultConfig(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	logger.Info("Config written", zap.String("path", path))
	return nil
}

func greetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "greet <name>",
		Short: "Invoke the greet command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmds := shell.NewCommands(nil, shell.NewRegistry(), nil, nil, logger)
			client := shell.NewClient(shell.NewDispatcher(cmds, logger), logger)

			greeting, err := client.Greet(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), greeting)
			return nil
		},
	}
}
