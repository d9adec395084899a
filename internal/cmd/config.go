package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tandem-run/tandem/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View tandem configuration",
	Long: `View the effective configuration.

Without arguments, displays the current configuration as TOML.
Use 'config init' to write a commented starter config file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	source := viper.ConfigFileUsed()
	if source == "" {
		source = "(defaults; no config file found)"
	}
	fmt.Fprintf(out, "# Configuration: %s\n\n", source)

	fmt.Fprintln(out, "[emulator]")
	fmt.Fprintf(out, "console_command = %q\n", cfg.Emulator.ConsoleCommand)
	fmt.Fprintf(out, "command_timeout_seconds = %d\n\n", cfg.Emulator.CommandTimeoutSeconds)

	fmt.Fprintln(out, "[monitor]")
	fmt.Fprintf(out, "check_every_seconds = %d\n", cfg.Monitor.CheckEverySeconds)
	fmt.Fprintf(out, "max_failures = %d\n\n", cfg.Monitor.MaxFailures)

	fmt.Fprintln(out, "[hooks]")
	fmt.Fprintf(out, "call_timeout_seconds = %d\n\n", cfg.Hooks.CallTimeoutSeconds)

	fmt.Fprintln(out, "[run]")
	fmt.Fprintf(out, "default_waittime_seconds = %d\n", cfg.Run.DefaultWaittimeSeconds)
	fmt.Fprintf(out, "kill_grace_period_seconds = %d\n\n", cfg.Run.KillGracePeriodSeconds)

	fmt.Fprintln(out, "[logging]")
	fmt.Fprintf(out, "enabled = %t\n", cfg.Logging.Enabled)
	fmt.Fprintf(out, "level = %q\n", cfg.Logging.Level)
	fmt.Fprintf(out, "max_size_mb = %d\n", cfg.Logging.MaxSizeMB)
	fmt.Fprintf(out, "max_backups = %d\n\n", cfg.Logging.MaxBackups)

	fmt.Fprintln(out, "[paths]")
	fmt.Fprintf(out, "profiles_dir = %q\n", cfg.Paths.ResolveProfilesDir())
	fmt.Fprintf(out, "extensions_dir = %q\n", cfg.Paths.ResolveExtensionsDir())
	fmt.Fprintf(out, "state_dir = %q\n", cfg.Paths.ResolveStateDir())
	fmt.Fprintf(out, "log_dir = %q\n", cfg.Paths.ResolveLogDir())
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := config.ConfigFile()
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "Created %s\n", path)
	return nil
}

const configTemplate = `# Tandem configuration. Every value shown is the default; uncomment to
# change it. Keys can also be set via environment variables with the
# TANDEM_ prefix, e.g. TANDEM_EMULATOR_CONSOLE_COMMAND.

[emulator]
# console_command = "ldconsole"
# command_timeout_seconds = 5

[monitor]
# check_every_seconds = 10
# max_failures = 10

[hooks]
# call_timeout_seconds = 30

[run]
# default_waittime_seconds = 15
# kill_grace_period_seconds = 5

[logging]
# enabled = true
# level = "info"
# max_size_mb = 10
# max_backups = 3

[paths]
# profiles_dir = ""
# extensions_dir = ""
# state_dir = ""
# log_dir = ""
`
