package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete tandem configuration
type Config struct {
	Emulator EmulatorConfig `mapstructure:"emulator"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Hooks    HooksConfig    `mapstructure:"hooks"`
	Run      RunConfig      `mapstructure:"run"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Paths    PathsConfig    `mapstructure:"paths"`
}

// EmulatorConfig controls how the emulator console utility is invoked
type EmulatorConfig struct {
	// ConsoleCommand is the console utility used to launch, query, and quit
	// emulator instances (default: "ldconsole"). A bare name is resolved via
	// PATH; an absolute path is used as-is.
	ConsoleCommand string `mapstructure:"console_command"`
	// CommandTimeoutSeconds bounds each console invocation (default: 5)
	CommandTimeoutSeconds int `mapstructure:"command_timeout_seconds"`
}

// MonitorConfig controls liveness checking during a monitored run
type MonitorConfig struct {
	// CheckEverySeconds is how often liveness checks run during the countdown,
	// in seconds (default: 10). The countdown itself ticks once per second.
	CheckEverySeconds int `mapstructure:"check_every_seconds"`
	// MaxFailures is the number of consecutive failed liveness checks before
	// the run is aborted (default: 10). A passing check resets the count.
	MaxFailures int `mapstructure:"max_failures"`
}

// HooksConfig controls extension hook dispatch
type HooksConfig struct {
	// CallTimeoutSeconds bounds each individual extension hook call
	// (default: 30, 0 = no timeout). A call that exceeds the timeout is
	// abandoned and logged; the run continues.
	CallTimeoutSeconds int `mapstructure:"call_timeout_seconds"`
}

// RunConfig controls profile run behavior
type RunConfig struct {
	// DefaultWaittimeSeconds is the pause between launching the emulator and
	// launching the automation app when the profile does not set its own
	// waittime (default: 15)
	DefaultWaittimeSeconds int `mapstructure:"default_waittime_seconds"`
	// KillGracePeriodSeconds is how long a process gets to exit after SIGTERM
	// before it is force-killed (default: 5)
	KillGracePeriodSeconds int `mapstructure:"kill_grace_period_seconds"`
}

// LoggingConfig controls diagnostic logging behavior
type LoggingConfig struct {
	// Enabled controls whether diagnostic logging is enabled (default: true)
	Enabled bool `mapstructure:"enabled"`
	// Level is the log level: "debug", "info", "warn", "error" (default: "info")
	Level string `mapstructure:"level"`
	// MaxSizeMB is the maximum log file size in megabytes before rotation (default: 10)
	MaxSizeMB int `mapstructure:"max_size_mb"`
	// MaxBackups is the number of backup log files to keep (default: 3)
	MaxBackups int `mapstructure:"max_backups"`
}

// PathsConfig controls where tandem stores and looks for data
type PathsConfig struct {
	// ProfilesDir is the directory holding profile TOML files.
	// If empty, defaults to "profiles" under the config directory.
	// Supports ~ for home directory expansion.
	ProfilesDir string `mapstructure:"profiles_dir"`

	// ExtensionsDir is the directory scanned for extension files.
	// If empty, defaults to "extensions" under the config directory.
	ExtensionsDir string `mapstructure:"extensions_dir"`

	// StateDir is where mutable state (completion ledger, notify lists) lives.
	// If empty, defaults to $XDG_STATE_HOME/tandem or ~/.local/state/tandem.
	StateDir string `mapstructure:"state_dir"`

	// LogDir is where the diagnostic log file is written.
	// If empty, defaults to "logs" under the state directory.
	LogDir string `mapstructure:"log_dir"`
}

// CommandTimeout returns the console command timeout as a time.Duration
func (e *EmulatorConfig) CommandTimeout() time.Duration {
	return time.Duration(e.CommandTimeoutSeconds) * time.Second
}

// CallTimeout returns the hook call timeout as a time.Duration (0 means disabled)
func (h *HooksConfig) CallTimeout() time.Duration {
	return time.Duration(h.CallTimeoutSeconds) * time.Second
}

// DefaultWaittime returns the default inter-launch wait as a time.Duration
func (r *RunConfig) DefaultWaittime() time.Duration {
	return time.Duration(r.DefaultWaittimeSeconds) * time.Second
}

// KillGracePeriod returns the kill grace period as a time.Duration
func (r *RunConfig) KillGracePeriod() time.Duration {
	return time.Duration(r.KillGracePeriodSeconds) * time.Second
}

// resolvePath expands ~ and resolves relative paths against base.
func resolvePath(path, base string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}

	return path
}

// ResolveProfilesDir returns the resolved profiles directory path.
// If ProfilesDir is empty, it returns "profiles" under the config directory.
// Relative paths are resolved against the config directory.
func (p *PathsConfig) ResolveProfilesDir() string {
	if p.ProfilesDir == "" {
		return filepath.Join(ConfigDir(), "profiles")
	}
	return resolvePath(p.ProfilesDir, ConfigDir())
}

// ResolveExtensionsDir returns the resolved extensions directory path.
func (p *PathsConfig) ResolveExtensionsDir() string {
	if p.ExtensionsDir == "" {
		return filepath.Join(ConfigDir(), "extensions")
	}
	return resolvePath(p.ExtensionsDir, ConfigDir())
}

// ResolveStateDir returns the resolved state directory path.
func (p *PathsConfig) ResolveStateDir() string {
	if p.StateDir == "" {
		return StateDir()
	}
	return resolvePath(p.StateDir, StateDir())
}

// ResolveLogDir returns the resolved log directory path.
// If LogDir is empty, it returns "logs" under the resolved state directory.
func (p *PathsConfig) ResolveLogDir() string {
	if p.LogDir == "" {
		return filepath.Join(p.ResolveStateDir(), "logs")
	}
	return resolvePath(p.LogDir, p.ResolveStateDir())
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Emulator: EmulatorConfig{
			ConsoleCommand:        "ldconsole",
			CommandTimeoutSeconds: 5,
		},
		Monitor: MonitorConfig{
			CheckEverySeconds: 10,
			MaxFailures:       10,
		},
		Hooks: HooksConfig{
			CallTimeoutSeconds: 30,
		},
		Run: RunConfig{
			DefaultWaittimeSeconds: 15,
			KillGracePeriodSeconds: 5,
		},
		Logging: LoggingConfig{
			Enabled:    true,
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
		Paths: PathsConfig{
			ProfilesDir:   "", // Empty means use default: <config>/profiles
			ExtensionsDir: "", // Empty means use default: <config>/extensions
			StateDir:      "", // Empty means use default: XDG state dir
			LogDir:        "", // Empty means use default: <state>/logs
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	// Emulator defaults
	viper.SetDefault("emulator.console_command", defaults.Emulator.ConsoleCommand)
	viper.SetDefault("emulator.command_timeout_seconds", defaults.Emulator.CommandTimeoutSeconds)

	// Monitor defaults
	viper.SetDefault("monitor.check_every_seconds", defaults.Monitor.CheckEverySeconds)
	viper.SetDefault("monitor.max_failures", defaults.Monitor.MaxFailures)

	// Hooks defaults
	viper.SetDefault("hooks.call_timeout_seconds", defaults.Hooks.CallTimeoutSeconds)

	// Run defaults
	viper.SetDefault("run.default_waittime_seconds", defaults.Run.DefaultWaittimeSeconds)
	viper.SetDefault("run.kill_grace_period_seconds", defaults.Run.KillGracePeriodSeconds)

	// Logging defaults
	viper.SetDefault("logging.enabled", defaults.Logging.Enabled)
	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	// Paths defaults
	viper.SetDefault("paths.profiles_dir", defaults.Paths.ProfilesDir)
	viper.SetDefault("paths.extensions_dir", defaults.Paths.ExtensionsDir)
	viper.SetDefault("paths.state_dir", defaults.Paths.StateDir)
	viper.SetDefault("paths.log_dir", defaults.Paths.LogDir)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Validate the configuration
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration (convenience function)
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		// Fall back to defaults if unmarshaling fails
		return Default()
	}
	return cfg
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	// Check XDG_CONFIG_HOME first
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tandem")
	}
	// Fall back to ~/.config/tandem
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tandem"
	}
	return filepath.Join(home, ".config", "tandem")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// StateDir returns the path to the user's state directory
func StateDir() string {
	// Check XDG_STATE_HOME first
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "tandem")
	}
	// Fall back to ~/.local/state/tandem
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".tandem", "state")
	}
	return filepath.Join(home, ".local", "state", "tandem")
}
