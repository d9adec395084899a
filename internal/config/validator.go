package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "monitor.max_failures")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	// Validate Emulator config
	errors = append(errors, c.validateEmulator()...)

	// Validate Monitor config
	errors = append(errors, c.validateMonitor()...)

	// Validate Hooks config
	errors = append(errors, c.validateHooks()...)

	// Validate Run config
	errors = append(errors, c.validateRun()...)

	// Validate Logging config
	errors = append(errors, c.validateLogging()...)

	// Validate Paths config
	errors = append(errors, c.validatePaths()...)

	return errors
}

// validateEmulator validates the EmulatorConfig
func (c *Config) validateEmulator() []ValidationError {
	var errors []ValidationError

	if c.Emulator.ConsoleCommand == "" {
		errors = append(errors, ValidationError{
			Field:   "emulator.console_command",
			Value:   c.Emulator.ConsoleCommand,
			Message: "cannot be empty",
		})
	}
	if strings.ContainsRune(c.Emulator.ConsoleCommand, '\x00') {
		errors = append(errors, ValidationError{
			Field:   "emulator.console_command",
			Value:   c.Emulator.ConsoleCommand,
			Message: "contains invalid null character",
		})
	}

	const minCommandTimeout = 1
	const maxCommandTimeout = 300
	if c.Emulator.CommandTimeoutSeconds < minCommandTimeout {
		errors = append(errors, ValidationError{
			Field:   "emulator.command_timeout_seconds",
			Value:   c.Emulator.CommandTimeoutSeconds,
			Message: fmt.Sprintf("must be at least %d second", minCommandTimeout),
		})
	}
	if c.Emulator.CommandTimeoutSeconds > maxCommandTimeout {
		errors = append(errors, ValidationError{
			Field:   "emulator.command_timeout_seconds",
			Value:   c.Emulator.CommandTimeoutSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxCommandTimeout),
		})
	}

	return errors
}

// validateMonitor validates the MonitorConfig
func (c *Config) validateMonitor() []ValidationError {
	var errors []ValidationError

	const minCheckEvery = 1
	const maxCheckEvery = 3600
	if c.Monitor.CheckEverySeconds < minCheckEvery {
		errors = append(errors, ValidationError{
			Field:   "monitor.check_every_seconds",
			Value:   c.Monitor.CheckEverySeconds,
			Message: fmt.Sprintf("must be at least %d second", minCheckEvery),
		})
	}
	if c.Monitor.CheckEverySeconds > maxCheckEvery {
		errors = append(errors, ValidationError{
			Field:   "monitor.check_every_seconds",
			Value:   c.Monitor.CheckEverySeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxCheckEvery),
		})
	}

	const minMaxFailures = 1
	const maxMaxFailures = 1000
	if c.Monitor.MaxFailures < minMaxFailures {
		errors = append(errors, ValidationError{
			Field:   "monitor.max_failures",
			Value:   c.Monitor.MaxFailures,
			Message: fmt.Sprintf("must be at least %d", minMaxFailures),
		})
	}
	if c.Monitor.MaxFailures > maxMaxFailures {
		errors = append(errors, ValidationError{
			Field:   "monitor.max_failures",
			Value:   c.Monitor.MaxFailures,
			Message: fmt.Sprintf("exceeds maximum of %d", maxMaxFailures),
		})
	}

	return errors
}

// validateHooks validates the HooksConfig
func (c *Config) validateHooks() []ValidationError {
	var errors []ValidationError

	// Timeout validation (0 means disabled, which is valid; negative is invalid)
	if c.Hooks.CallTimeoutSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "hooks.call_timeout_seconds",
			Value:   c.Hooks.CallTimeoutSeconds,
			Message: "must be non-negative (0 disables timeout)",
		})
	}

	const maxCallTimeout = 3600
	if c.Hooks.CallTimeoutSeconds > maxCallTimeout {
		errors = append(errors, ValidationError{
			Field:   "hooks.call_timeout_seconds",
			Value:   c.Hooks.CallTimeoutSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxCallTimeout),
		})
	}

	return errors
}

// validateRun validates the RunConfig
func (c *Config) validateRun() []ValidationError {
	var errors []ValidationError

	if c.Run.DefaultWaittimeSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "run.default_waittime_seconds",
			Value:   c.Run.DefaultWaittimeSeconds,
			Message: "must be non-negative",
		})
	}

	const maxWaittime = 3600
	if c.Run.DefaultWaittimeSeconds > maxWaittime {
		errors = append(errors, ValidationError{
			Field:   "run.default_waittime_seconds",
			Value:   c.Run.DefaultWaittimeSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxWaittime),
		})
	}

	if c.Run.KillGracePeriodSeconds < 0 {
		errors = append(errors, ValidationError{
			Field:   "run.kill_grace_period_seconds",
			Value:   c.Run.KillGracePeriodSeconds,
			Message: "must be non-negative (0 force-kills immediately)",
		})
	}

	const maxGracePeriod = 300
	if c.Run.KillGracePeriodSeconds > maxGracePeriod {
		errors = append(errors, ValidationError{
			Field:   "run.kill_grace_period_seconds",
			Value:   c.Run.KillGracePeriodSeconds,
			Message: fmt.Sprintf("exceeds maximum of %d seconds", maxGracePeriod),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	// Validate log level
	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// Max size must be positive
	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	// Reasonable upper bound for log file size
	const maxLogSizeMB = 1000 // 1GB
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	// Max backups must be non-negative
	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	var errors []ValidationError

	paths := []struct {
		field string
		value string
	}{
		{"paths.profiles_dir", c.Paths.ProfilesDir},
		{"paths.extensions_dir", c.Paths.ExtensionsDir},
		{"paths.state_dir", c.Paths.StateDir},
		{"paths.log_dir", c.Paths.LogDir},
	}

	const maxPathLength = 4096
	for _, p := range paths {
		if p.value == "" {
			continue
		}

		// Check for null bytes which are invalid in paths
		if strings.ContainsRune(p.value, '\x00') {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: "path contains invalid null character",
			})
		}

		// Reasonable path length limit (most filesystems have limits around 4096)
		if len(p.value) > maxPathLength {
			errors = append(errors, ValidationError{
				Field:   p.field,
				Value:   p.value,
				Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
			})
		}
	}

	return errors
}
