package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tandem-run/tandem/internal/config"
	"github.com/tandem-run/tandem/internal/ledger"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect and reset daily completion records",
}

var ledgerShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's completion record and notify list",
	Args:  cobra.NoArgs,
	RunE:  runLedgerShow,
}

var ledgerResetCmd = &cobra.Command{
	Use:   "reset <profile>",
	Short: "Clear a profile's completion record for a day",
	Args:  cobra.ExactArgs(1),
	RunE:  runLedgerReset,
}

var ledgerDate string

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerCmd.AddCommand(ledgerShowCmd)
	ledgerCmd.AddCommand(ledgerResetCmd)

	ledgerCmd.PersistentFlags().StringVar(&ledgerDate, "date", "", "Day to operate on as YYYY-MM-DD (default: today)")
}

func resolveDay() (string, error) {
	if ledgerDate == "" {
		return ledger.Today(), nil
	}
	if _, err := time.Parse("2006-01-02", ledgerDate); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", ledgerDate)
	}
	return ledgerDate, nil
}

func runLedgerShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	day, err := resolveDay()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	led := openLedger(cfg)
	notify := openNotifyList(cfg)

	fmt.Fprintf(out, "Completion record for %s\n", day)
	fmt.Fprintf(out, "File: %s\n", led.Path(day))

	record := led.Load(day)
	if len(record) == 0 {
		fmt.Fprintln(out, "\nNo completions recorded.")
	} else {
		names := make([]string, 0, len(record))
		for name := range record {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(out)
		for _, name := range names {
			if record[name] {
				fmt.Fprintf(out, "  %s %s\n", okMark, name)
			} else {
				fmt.Fprintf(out, "  %s %s (failed)\n", failMark, name)
			}
		}
	}

	if names := notify.Names(day); len(names) > 0 {
		fmt.Fprintf(out, "\nNotify list: %s\n", strings.Join(names, ", "))
	}
	return nil
}

func runLedgerReset(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	day, err := resolveDay()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	led := openLedger(cfg)
	reset, err := led.Reset(args[0], day)
	if err != nil {
		return err
	}
	if reset {
		fmt.Fprintf(out, "Reset completion status for '%s'.\n", args[0])
	} else {
		fmt.Fprintf(out, "Profile '%s' was not marked as completed.\n", args[0])
	}
	return nil
}
