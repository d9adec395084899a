package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	// Verify default emulator config
	if cfg.Emulator.ConsoleCommand != "ldconsole" {
		t.Errorf("Emulator.ConsoleCommand = %q, want %q", cfg.Emulator.ConsoleCommand, "ldconsole")
	}
	if cfg.Emulator.CommandTimeoutSeconds != 5 {
		t.Errorf("Emulator.CommandTimeoutSeconds = %d, want 5", cfg.Emulator.CommandTimeoutSeconds)
	}

	// Verify default monitor config
	if cfg.Monitor.CheckEverySeconds != 10 {
		t.Errorf("Monitor.CheckEverySeconds = %d, want 10", cfg.Monitor.CheckEverySeconds)
	}
	if cfg.Monitor.MaxFailures != 10 {
		t.Errorf("Monitor.MaxFailures = %d, want 10", cfg.Monitor.MaxFailures)
	}

	// Verify default hooks config
	if cfg.Hooks.CallTimeoutSeconds != 30 {
		t.Errorf("Hooks.CallTimeoutSeconds = %d, want 30", cfg.Hooks.CallTimeoutSeconds)
	}

	// Verify default run config
	if cfg.Run.DefaultWaittimeSeconds != 15 {
		t.Errorf("Run.DefaultWaittimeSeconds = %d, want 15", cfg.Run.DefaultWaittimeSeconds)
	}
	if cfg.Run.KillGracePeriodSeconds != 5 {
		t.Errorf("Run.KillGracePeriodSeconds = %d, want 5", cfg.Run.KillGracePeriodSeconds)
	}

	// Verify default logging config
	if !cfg.Logging.Enabled {
		t.Error("Logging.Enabled should be true by default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}
	if cfg.Logging.MaxSizeMB != 10 {
		t.Errorf("Logging.MaxSizeMB = %d, want 10", cfg.Logging.MaxSizeMB)
	}
	if cfg.Logging.MaxBackups != 3 {
		t.Errorf("Logging.MaxBackups = %d, want 3", cfg.Logging.MaxBackups)
	}

	// Verify default paths config (empty means computed defaults)
	if cfg.Paths.ProfilesDir != "" {
		t.Errorf("Paths.ProfilesDir should be empty by default, got %q", cfg.Paths.ProfilesDir)
	}
	if cfg.Paths.StateDir != "" {
		t.Errorf("Paths.StateDir should be empty by default, got %q", cfg.Paths.StateDir)
	}
}

func TestEmulatorConfig_CommandTimeout(t *testing.T) {
	tests := []struct {
		seconds  int
		expected time.Duration
	}{
		{5, 5 * time.Second},
		{1, 1 * time.Second},
		{60, time.Minute},
		{0, 0},
	}

	for _, tt := range tests {
		cfg := EmulatorConfig{CommandTimeoutSeconds: tt.seconds}
		result := cfg.CommandTimeout()
		if result != tt.expected {
			t.Errorf("CommandTimeout() with %ds = %v, want %v", tt.seconds, result, tt.expected)
		}
	}
}

func TestHooksConfig_CallTimeout(t *testing.T) {
	tests := []struct {
		seconds  int
		expected time.Duration
	}{
		{30, 30 * time.Second},
		{0, 0},
		{120, 2 * time.Minute},
	}

	for _, tt := range tests {
		cfg := HooksConfig{CallTimeoutSeconds: tt.seconds}
		result := cfg.CallTimeout()
		if result != tt.expected {
			t.Errorf("CallTimeout() with %ds = %v, want %v", tt.seconds, result, tt.expected)
		}
	}
}

func TestRunConfig_Durations(t *testing.T) {
	cfg := RunConfig{DefaultWaittimeSeconds: 15, KillGracePeriodSeconds: 5}

	if cfg.DefaultWaittime() != 15*time.Second {
		t.Errorf("DefaultWaittime() = %v, want 15s", cfg.DefaultWaittime())
	}
	if cfg.KillGracePeriod() != 5*time.Second {
		t.Errorf("KillGracePeriod() = %v, want 5s", cfg.KillGracePeriod())
	}
}

func TestConfigDir(t *testing.T) {
	// Test with XDG_CONFIG_HOME set
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/tandem"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	// Test without XDG_CONFIG_HOME
	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_CONFIG_HOME")
		defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

		_ = os.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		// Should be based on home directory
		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "tandem")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	defer func() { _ = os.Setenv("XDG_CONFIG_HOME", original) }()

	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/tandem/config.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}

func TestStateDir(t *testing.T) {
	t.Run("with XDG_STATE_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_STATE_HOME")
		defer func() { _ = os.Setenv("XDG_STATE_HOME", original) }()

		_ = os.Setenv("XDG_STATE_HOME", "/custom/state")
		result := StateDir()
		expected := "/custom/state/tandem"
		if result != expected {
			t.Errorf("StateDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_STATE_HOME", func(t *testing.T) {
		original := os.Getenv("XDG_STATE_HOME")
		defer func() { _ = os.Setenv("XDG_STATE_HOME", original) }()

		_ = os.Setenv("XDG_STATE_HOME", "")
		result := StateDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".local", "state", "tandem")
		if result != expected {
			t.Errorf("StateDir() = %q, want %q", result, expected)
		}
	})
}

func TestPathsConfig_Resolution(t *testing.T) {
	original := os.Getenv("XDG_CONFIG_HOME")
	originalState := os.Getenv("XDG_STATE_HOME")
	defer func() {
		_ = os.Setenv("XDG_CONFIG_HOME", original)
		_ = os.Setenv("XDG_STATE_HOME", originalState)
	}()
	_ = os.Setenv("XDG_CONFIG_HOME", "/custom/config")
	_ = os.Setenv("XDG_STATE_HOME", "/custom/state")

	t.Run("empty paths use defaults", func(t *testing.T) {
		p := PathsConfig{}

		if got := p.ResolveProfilesDir(); got != "/custom/config/tandem/profiles" {
			t.Errorf("ResolveProfilesDir() = %q", got)
		}
		if got := p.ResolveExtensionsDir(); got != "/custom/config/tandem/extensions" {
			t.Errorf("ResolveExtensionsDir() = %q", got)
		}
		if got := p.ResolveStateDir(); got != "/custom/state/tandem" {
			t.Errorf("ResolveStateDir() = %q", got)
		}
		if got := p.ResolveLogDir(); got != "/custom/state/tandem/logs" {
			t.Errorf("ResolveLogDir() = %q", got)
		}
	})

	t.Run("absolute paths used as-is", func(t *testing.T) {
		p := PathsConfig{
			ProfilesDir: "/opt/tandem/profiles",
			StateDir:    "/var/lib/tandem",
		}

		if got := p.ResolveProfilesDir(); got != "/opt/tandem/profiles" {
			t.Errorf("ResolveProfilesDir() = %q", got)
		}
		if got := p.ResolveStateDir(); got != "/var/lib/tandem" {
			t.Errorf("ResolveStateDir() = %q", got)
		}
		// LogDir follows the overridden state dir
		if got := p.ResolveLogDir(); got != "/var/lib/tandem/logs" {
			t.Errorf("ResolveLogDir() = %q", got)
		}
	})

	t.Run("relative paths resolve against defaults", func(t *testing.T) {
		p := PathsConfig{ProfilesDir: "my-profiles"}

		if got := p.ResolveProfilesDir(); got != "/custom/config/tandem/my-profiles" {
			t.Errorf("ResolveProfilesDir() = %q", got)
		}
	})

	t.Run("tilde expands to home", func(t *testing.T) {
		p := PathsConfig{ProfilesDir: "~/tandem-profiles"}

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, "tandem-profiles")
		if got := p.ResolveProfilesDir(); got != expected {
			t.Errorf("ResolveProfilesDir() = %q, want %q", got, expected)
		}
	})
}

func TestGet(t *testing.T) {
	// Set defaults in viper first (normally done by cmd init)
	SetDefaults()

	// Get() should return defaults when no config file exists
	cfg := Get()
	if cfg == nil {
		t.Fatal("Get() returned nil")
	}

	// Should have default values
	if cfg.Emulator.ConsoleCommand != "ldconsole" {
		t.Errorf("Get().Emulator.ConsoleCommand = %q, want %q", cfg.Emulator.ConsoleCommand, "ldconsole")
	}
	if cfg.Monitor.MaxFailures != 10 {
		t.Errorf("Get().Monitor.MaxFailures = %d, want 10", cfg.Monitor.MaxFailures)
	}
}

func TestConfig_MonitorConfig_Values(t *testing.T) {
	cfg := Default()

	// Check cadence must divide sensibly into the one-second countdown
	if cfg.Monitor.CheckEverySeconds < 1 {
		t.Errorf("CheckEverySeconds should be at least 1, got %d", cfg.Monitor.CheckEverySeconds)
	}

	if cfg.Monitor.MaxFailures < 1 {
		t.Errorf("MaxFailures should be at least 1, got %d", cfg.Monitor.MaxFailures)
	}
}

func TestConfig_DefaultIsValid(t *testing.T) {
	cfg := Default()

	if errs := cfg.Validate(); len(errs) > 0 {
		t.Errorf("Default() config should validate cleanly, got %d errors: %v", len(errs), ValidationErrors(errs))
	}
}
