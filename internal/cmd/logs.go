package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandem-run/tandem/internal/config"
	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View the diagnostic log",
	Long: `View and filter tandem's diagnostic log.

Examples:
  # Show the last 50 entries
  tandem logs

  # All warnings and errors from the last hour
  tandem logs --level warn --since 1h -n 0

  # Entries for one profile, or one specific run
  tandem logs --profile daily
  tandem logs --run 7be4c2

  # Search messages and attributes
  tandem logs --grep "launch|veto"

  # Export everything as CSV
  tandem logs -n 0 --export runs.csv --format csv`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsTail    int
	logsLevel   string
	logsSince   string
	logsGrep    string
	logsProfile string
	logsRun     string
	logsExport  string
	logsFormat  string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsSince, "since", "", "Show entries since duration ago (e.g., 1h, 30m)")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Filter entries matching pattern (regex)")
	logsCmd.Flags().StringVar(&logsProfile, "profile", "", "Filter by profile name")
	logsCmd.Flags().StringVar(&logsRun, "run", "", "Filter by run ID")
	logsCmd.Flags().StringVar(&logsExport, "export", "", "Write matching entries to a file instead of printing")
	logsCmd.Flags().StringVar(&logsFormat, "format", "text", "Export format: json, text, or csv")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	logDir := cfg.Paths.ResolveLogDir()
	entries, err := logging.ReadEntries(logDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "No log file found at %s\n", filepath.Join(logDir, logging.FileName))
			return nil
		}
		return err
	}

	filter := logging.LogFilter{
		Profile: logsProfile,
		RunID:   logsRun,
	}
	if logsLevel != "" {
		filter.Level = logging.ParseLevel(logsLevel)
	}
	if logsSince != "" {
		d, err := time.ParseDuration(logsSince)
		if err != nil {
			return fmt.Errorf("invalid duration format: %w", err)
		}
		filter.StartTime = time.Now().Add(-d)
	}
	entries = logging.FilterEntries(entries, filter)

	if logsGrep != "" {
		re, err := regexp.Compile(logsGrep)
		if err != nil {
			return fmt.Errorf("invalid grep pattern: %w", err)
		}
		entries = slices.DeleteFunc(entries, func(e logging.LogEntry) bool {
			return !matchesGrep(e, re)
		})
	}

	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}

	if logsExport != "" {
		if err := logging.ExportEntries(entries, logsExport, logsFormat); err != nil {
			return err
		}
		fmt.Fprintf(out, "Exported %d entries to %s\n", len(entries), logsExport)
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "No matching log entries found.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(out, logging.FormatEntry(e))
	}
	return nil
}

// matchesGrep searches the message and attribute values.
func matchesGrep(e logging.LogEntry, re *regexp.Regexp) bool {
	if re.MatchString(e.Message) {
		return true
	}
	for _, v := range e.Attrs {
		if re.MatchString(fmt.Sprintf("%v", v)) {
			return true
		}
	}
	return false
}
