// Package logging provides structured diagnostic logging for tandem runs.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support for debugging and post-hoc analysis. User-visible
// output (countdowns, status lines) goes directly to the terminal from the
// commands; this package is the diagnostic channel underneath it, recording
// what every run, hook dispatch, and liveness check actually did.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (profile, run ID, extension)
//   - Log rotation with configurable size limits
//   - Optional gzip compression for rotated logs
//   - Read-back, filtering, and export utilities for the logs command
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger for a log directory:
//
//	logger, err := logging.NewLogger("/path/to/state/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	// Log messages at various levels
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("emulator launched", "index", 2)
//	logger.Warn("liveness check failed", "failures", 3)
//	logger.Error("launch failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	runLogger := logger.WithProfile("daily").WithRun(runID)
//
//	// All logs from runLogger include profile and run_id
//	runLogger.Info("automation launched", "path", appPath)
//
// Output:
//
//	{"time":"...","level":"INFO","msg":"automation launched","profile":"daily","run_id":"...","path":"..."}
//
// # Log Rotation
//
// The file target rotates automatically. To change the limits:
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10,    // Rotate when file exceeds 10MB
//	    MaxBackups: 3,     // Keep 3 backup files
//	    Compress:   true,  // Gzip compress rotated files
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/path/to/state/logs", "INFO", config)
//
// Rotated files are named: tandem.log.1, tandem.log.2, etc., where .1 is the
// most recent backup. When compression is enabled, rotated files become
// tandem.log.1.gz, etc.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Reading Logs Back
//
// Read and analyze logs after a run:
//
//	entries, err := logging.ReadEntries("/path/to/state/logs")
//	if err != nil {
//	    return err
//	}
//
//	filter := logging.LogFilter{
//	    Level:   "WARN",
//	    Profile: "daily",
//	    StartTime: time.Now().Add(-1 * time.Hour),
//	}
//	filtered := logging.FilterEntries(entries, filter)
//
//	logging.ExportEntries(filtered, "errors.json", "json")
//
// # Log Levels
//
// The package defines four log levels:
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Warning conditions that may need attention
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
package logging
