package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var extensionsCmd = &cobra.Command{
	Use:   "extensions",
	Short: "List loaded extensions in dispatch order",
	Long: `List every extension registered on the hook bus, in the order their
hooks fire: the built-in completion recorder first, then each loadable
extension file in lexical file-name order.`,
	Args: cobra.NoArgs,
	RunE: runExtensions,
}

func init() {
	rootCmd.AddCommand(extensionsCmd)
}

func runExtensions(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()
	names := a.bus.Extensions()
	if len(names) == 0 {
		fmt.Fprintln(out, "No extensions loaded.")
		return nil
	}

	fmt.Fprintf(out, "Loaded extensions (%d):\n", len(names))
	for i, name := range names {
		note := ""
		if name == "completion" {
			note = " (built-in)"
		}
		fmt.Fprintf(out, "  %d. %s%s\n", i+1, name, note)
	}
	fmt.Fprintf(out, "\nExtension files are read from %s\n", a.cfg.Paths.ResolveExtensionsDir())
	return nil
}
