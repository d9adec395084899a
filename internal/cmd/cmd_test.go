//go:build integration

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tandem-run/tandem/internal/ledger"
)

// executeCommand runs the root command with args and returns captured output
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// setupTestEnvironment points every tandem directory at a fresh temp tree
// and resets viper so commands cannot touch real user state.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("TANDEM_PATHS_PROFILES_DIR", filepath.Join(base, "profiles"))
	t.Setenv("TANDEM_PATHS_EXTENSIONS_DIR", filepath.Join(base, "extensions"))
	t.Setenv("TANDEM_PATHS_STATE_DIR", filepath.Join(base, "state"))
	t.Setenv("TANDEM_PATHS_LOG_DIR", filepath.Join(base, "logs"))

	viper.Reset()
	return base
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Name() != "tandem" {
		t.Errorf("root command name = %q, want %q", rootCmd.Name(), "tandem")
	}

	expected := []string{"run", "profile", "ledger", "extensions", "logs", "config"}
	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}
	for _, name := range expected {
		if !registered[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestProfileCommands(t *testing.T) {
	base := setupTestEnvironment(t)
	defer func() { profileShowResolved = false }()

	output, err := executeCommand(rootCmd, "profile", "new", "base", "--kind", "emulator")
	if err != nil {
		t.Fatalf("profile new failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Created") {
		t.Errorf("expected creation notice, got: %s", output)
	}
	path := filepath.Join(base, "profiles", "base.emulator.toml")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("scaffolded file missing: %v", err)
	}

	// A second new for the same stem is refused
	if _, err := executeCommand(rootCmd, "profile", "new", "base", "--kind", "emulator"); err == nil {
		t.Error("expected duplicate profile new to fail")
	}

	output, err = executeCommand(rootCmd, "profile", "list")
	if err != nil {
		t.Fatalf("profile list failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "base.emulator") || !strings.Contains(output, "[EMU]") {
		t.Errorf("expected part listing with badge, got: %s", output)
	}

	output, err = executeCommand(rootCmd, "profile", "show", "base.emulator")
	if err != nil {
		t.Fatalf("profile show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Status:  valid") || !strings.Contains(output, "index = 0") {
		t.Errorf("expected valid status and raw file text, got: %s", output)
	}

	output, err = executeCommand(rootCmd, "profile", "show", "base.emulator", "--resolved")
	if err != nil {
		t.Fatalf("profile show --resolved failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "index = 0") {
		t.Errorf("expected resolved TOML, got: %s", output)
	}

	if _, err := executeCommand(rootCmd, "profile", "show", "nosuch"); err == nil {
		t.Error("expected show of an unknown profile to fail")
	}
}

func TestLedgerCommands(t *testing.T) {
	base := setupTestEnvironment(t)
	defer func() { ledgerDate = "" }()

	led := ledger.NewLedger(filepath.Join(base, "state", "completion"))
	if err := led.Save("daily", true, ""); err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}
	if err := led.Save("weekly", false, ""); err != nil {
		t.Fatalf("failed to seed ledger: %v", err)
	}

	output, err := executeCommand(rootCmd, "ledger", "show")
	if err != nil {
		t.Fatalf("ledger show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "daily") || !strings.Contains(output, "weekly (failed)") {
		t.Errorf("expected both outcomes in the record, got: %s", output)
	}

	output, err = executeCommand(rootCmd, "ledger", "reset", "daily")
	if err != nil {
		t.Fatalf("ledger reset failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Reset completion status for 'daily'.") {
		t.Errorf("expected reset confirmation, got: %s", output)
	}

	output, err = executeCommand(rootCmd, "ledger", "reset", "daily")
	if err != nil {
		t.Fatalf("second ledger reset failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "was not marked as completed") {
		t.Errorf("expected no-op reset notice, got: %s", output)
	}

	if _, err := executeCommand(rootCmd, "ledger", "show", "--date", "yesterday"); err == nil {
		t.Error("expected a malformed --date to fail")
	}
}

func TestExtensionsCommand(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "extensions")
	if err != nil {
		t.Fatalf("extensions failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "completion") || !strings.Contains(output, "(built-in)") {
		t.Errorf("expected the built-in recorder to be listed, got: %s", output)
	}
}

func TestLogsCommands(t *testing.T) {
	base := setupTestEnvironment(t)
	defer func() {
		logsLevel = ""
		logsExport = ""
		logsFormat = "text"
		logsTail = 50
	}()

	logDir := filepath.Join(base, "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		t.Fatalf("failed to create log dir: %v", err)
	}
	lines := `{"time":"2026-08-25T10:00:00Z","level":"INFO","msg":"emulator launched","profile":"daily"}
{"time":"2026-08-25T10:00:05Z","level":"ERROR","msg":"automation failed to launch","profile":"daily"}
`
	if err := os.WriteFile(filepath.Join(logDir, "tandem.log"), []byte(lines), 0644); err != nil {
		t.Fatalf("failed to write log file: %v", err)
	}

	output, err := executeCommand(rootCmd, "logs", "-n", "0")
	if err != nil {
		t.Fatalf("logs failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "emulator launched") || !strings.Contains(output, "automation failed") {
		t.Errorf("expected both entries, got: %s", output)
	}

	exportPath := filepath.Join(base, "out.csv")
	output, err = executeCommand(rootCmd, "logs", "-n", "0", "--export", exportPath, "--format", "csv")
	if err != nil {
		t.Fatalf("logs export failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Exported 2 entries") {
		t.Errorf("expected export summary, got: %s", output)
	}
	if _, err := os.Stat(exportPath); err != nil {
		t.Errorf("export file missing: %v", err)
	}

	output, err = executeCommand(rootCmd, "logs", "-n", "0", "--export", "", "--level", "error")
	if err != nil {
		t.Fatalf("logs level filter failed: %v\nOutput: %s", err, output)
	}
	if strings.Contains(output, "emulator launched") || !strings.Contains(output, "automation failed") {
		t.Errorf("expected only the error entry, got: %s", output)
	}
}

func TestLogsCommand_NoFile(t *testing.T) {
	setupTestEnvironment(t)
	defer func() { logsTail = 50 }()

	output, err := executeCommand(rootCmd, "logs")
	if err != nil {
		t.Fatalf("logs failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No log file found") {
		t.Errorf("expected missing-file notice, got: %s", output)
	}
}

func TestRunCommands(t *testing.T) {
	setupTestEnvironment(t)

	// An unknown literal profile fails that profile and the command
	output, err := executeCommand(rootCmd, "run", "up", "missing")
	if err == nil {
		t.Error("expected run up of an unknown profile to fail")
	}
	if !strings.Contains(output, "Error starting profile 'missing'") {
		t.Errorf("expected per-profile diagnostic, got: %s", output)
	}

	// A pattern matching nothing is rejected up front
	output, err = executeCommand(rootCmd, "run", "up", "daily-*")
	if err == nil {
		t.Error("expected an unmatched pattern to fail")
	}
	if !strings.Contains(output, "no profiles match pattern") {
		t.Errorf("expected pattern diagnostic, got: %s", output)
	}

	// notify resolves through the store
	if _, err := executeCommand(rootCmd, "run", "notify", "missing"); err == nil {
		t.Error("expected notify of an unknown profile to fail")
	}

	// next with an empty store reports and exits zero
	output, err = executeCommand(rootCmd, "run", "next")
	if err != nil {
		t.Fatalf("run next failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "No profiles found.") {
		t.Errorf("expected empty-store notice, got: %s", output)
	}
}

func TestRunDownAll(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a no-op console utility on PATH")
	}
	setupTestEnvironment(t)
	t.Setenv("TANDEM_EMULATOR_CONSOLE_COMMAND", "true")

	output, err := executeCommand(rootCmd, "run", "down")
	if err != nil {
		t.Fatalf("run down failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Stopping all profiles...") {
		t.Errorf("expected stopping notice, got: %s", output)
	}
	if !strings.Contains(output, "Stopped all emulator instances (no automation processes found)") {
		t.Errorf("expected summary line, got: %s", output)
	}
}

func TestConfigCommands(t *testing.T) {
	setupTestEnvironment(t)

	output, err := executeCommand(rootCmd, "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "[emulator]") || !strings.Contains(output, "console_command") {
		t.Errorf("expected rendered configuration, got: %s", output)
	}

	output, err = executeCommand(rootCmd, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "Created") {
		t.Errorf("expected creation notice, got: %s", output)
	}

	if _, err := executeCommand(rootCmd, "config", "init"); err == nil {
		t.Error("expected a second config init to be refused")
	}
}
