package cmd

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tandem-run/tandem/internal/hook"
	"github.com/tandem-run/tandem/internal/monitor"
	"github.com/tandem-run/tandem/internal/orchestrator"
	"github.com/tandem-run/tandem/internal/profile"
	"github.com/tandem-run/tandem/internal/util"
)

var (
	okMark   = lipgloss.NewStyle().Foreground(lipgloss.Color("#34D399")).Render("✓")
	failMark = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Render("✗")
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start, stop, and track profile runs",
}

var runUpCmd = &cobra.Command{
	Use:   "up <profile>...",
	Short: "Launch one or more profiles",
	Long: `Launch the processes of one or more profiles: the emulator instance
first, then the automation app once the profile's waittime has elapsed.

Profile arguments may be glob patterns, expanded against the store:

  tandem run up daily
  tandem run up 'daily-*' weekly
  tandem run up daily --kill --var by-completion=true

With --kill or --kill-all, a profile that sets a lifetime is watched for
that many seconds and its processes are stopped when the time is up.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runUp,
}

var runDownCmd = &cobra.Command{
	Use:   "down [<profile>...]",
	Short: "Stop profile processes",
	Long: `Stop the processes of the named profiles (glob patterns allowed).
Without arguments, stops every stored profile's automation app and quits
all emulator instances.`,
	RunE: runDown,
}

var runNextCmd = &cobra.Command{
	Use:   "next",
	Short: "Run the next profile not yet completed today",
	Long: `Pick the first profile without a completion record for today and run
it with completion tracking and kill-on-expiry enabled. Profiles that
never ran today come before profiles that ran and failed.`,
	Args: cobra.NoArgs,
	RunE: runNext,
}

var runNotifyCmd = &cobra.Command{
	Use:   "notify <profile>",
	Short: "Mark a profile's early exit as intentional for today",
	Long: `Add a profile to today's notify list. If a monitored run of that
profile fails later today, the completion recorder treats the early exit
as a successful completion instead of a failure.`,
	Args: cobra.ExactArgs(1),
	RunE: runNotify,
}

var (
	upWaittime        int
	upKill            bool
	upKillAll         bool
	upVars            []string
	nextIncludeFailed bool
)

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runUpCmd)
	runCmd.AddCommand(runDownCmd)
	runCmd.AddCommand(runNextCmd)
	runCmd.AddCommand(runNotifyCmd)

	runUpCmd.Flags().IntVarP(&upWaittime, "waittime", "w", 0, "Seconds between emulator and automation launch (overrides the profile)")
	runUpCmd.Flags().BoolVar(&upKill, "kill", false, "Stop the profile's processes when its lifetime expires")
	runUpCmd.Flags().BoolVar(&upKillAll, "kill-all", false, "Stop all processes when the profile's lifetime expires")
	runUpCmd.Flags().StringArrayVar(&upVars, "var", nil, "Run variable as key=value, visible to extensions (repeatable)")

	runNextCmd.Flags().BoolVar(&nextIncludeFailed, "include-failed", false, "Treat failed runs as completed when picking the next profile")
}

func runUp(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	names, err := expandProfiles(a.store, args)
	if err != nil {
		return err
	}

	vars, err := parseVars(upVars)
	if err != nil {
		return err
	}

	var waitOverride *int
	if cmd.Flags().Changed("waittime") {
		waitOverride = &upWaittime
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, name := range names {
		switch runProfile(ctx, cmd, a, name, vars, waitOverride, upKill, upKillAll) {
		case runFailed:
			failed++
		case runInterrupted:
			return nil
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profile(s) failed", failed, len(names))
	}
	return nil
}

func runDown(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if len(args) == 0 {
		fmt.Fprintln(out, "Stopping all profiles...")
		return stopEverything(ctx, a, out)
	}

	names, err := expandProfiles(a.store, args)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Stopping %d profile(s)...\n", len(names))
	failed := 0
	for _, name := range names {
		p, err := a.store.Load(name)
		if err != nil {
			fmt.Fprintf(errOut, "Error stopping profile '%s': %v\n", name, err)
			failed++
			continue
		}
		ev := hook.NewEvent(p, hook.NewRunContext(p.Name, nil))
		outcome, err := a.orch.Kill(ctx, p, ev)
		if err != nil {
			fmt.Fprintf(errOut, "Error stopping profile '%s': %v\n", p.Name, err)
			failed++
			continue
		}
		if outcome == orchestrator.OutcomeKilled {
			fmt.Fprintf(out, "%s Stopped profile '%s'\n", okMark, p.Name)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profile(s) failed to stop", failed, len(names))
	}
	return nil
}

func runNext(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	all, err := a.store.List()
	if err != nil {
		return fmt.Errorf("failed to discover profiles: %w", err)
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No profiles found.")
		return nil
	}

	incomplete := a.ledger.Incomplete(all, nextIncludeFailed, "")
	if len(incomplete) == 0 {
		fmt.Fprintf(out, "All %d profiles already completed today.\n", len(all))
		return nil
	}

	fmt.Fprintf(out, "Found %d incomplete profiles out of %d total.\n", len(incomplete), len(all))
	name := incomplete[0]
	fmt.Fprintf(out, "Running next incomplete profile: %s\n", name)
	if len(incomplete) > 1 {
		fmt.Fprintf(out, "Remaining: %s\n", strings.Join(incomplete[1:], ", "))
	}

	vars := map[string]string{"by-completion": "true"}
	if nextIncludeFailed {
		vars["include-failed"] = "true"
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runProfile(ctx, cmd, a, name, vars, nil, true, false) == runFailed {
		return fmt.Errorf("profile '%s' failed", name)
	}
	return nil
}

func runNotify(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	out := cmd.OutOrStdout()

	p, err := a.store.Load(args[0])
	if err != nil {
		return err
	}

	added, err := a.notify.Add(p.Name, "")
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(out, "Added '%s' to today's notify list.\n", p.Name)
		fmt.Fprintln(out, "An early exit today will be recorded as a successful completion.")
	} else {
		fmt.Fprintf(out, "Profile '%s' is already on today's notify list.\n", p.Name)
	}
	return nil
}

// runResult classifies one profile's trip through runProfile. The caller
// decides what a failure means for the overall exit code; an interrupt
// stops all further processing.
type runResult int

const (
	runOK runResult = iota
	runFailed
	runInterrupted
)

// runProfile starts one profile and, when kill or killAll is set and the
// profile has a lifetime, monitors it and stops its processes afterwards.
func runProfile(ctx context.Context, cmd *cobra.Command, a *app, name string, vars map[string]string, waitOverride *int, kill, killAll bool) runResult {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	p, err := a.store.Load(name)
	if err != nil {
		fmt.Fprintf(errOut, "Error starting profile '%s': %v\n", name, err)
		return runFailed
	}

	fmt.Fprintf(out, "Starting profile: %s\n", p.Name)

	// Each profile gets its own run context so extension writes cannot
	// leak across profiles.
	ev := hook.NewEvent(p, hook.NewRunContext(p.Name, maps.Clone(vars)))
	outcome, err := a.orch.Start(ctx, p, ev, waitOverride)
	if err != nil {
		fmt.Fprintf(errOut, "Error starting profile '%s': %v\n", p.Name, err)
		return runFailed
	}
	switch outcome {
	case orchestrator.OutcomeBlocked:
		return runOK
	case orchestrator.OutcomeCancelled:
		fmt.Fprintln(out, "Interrupted by user")
		return runInterrupted
	}

	fmt.Fprintf(out, "%s Profile '%s' started successfully\n", okMark, p.Name)

	if !kill && !killAll {
		return runOK
	}
	if p.Lifetime == nil {
		fmt.Fprintln(out, "Warning: --kill or --kill-all specified but profile has no lifetime")
		return runOK
	}

	a.orch.BeginMonitoring()
	label := fmt.Sprintf("Profile '%s' running", p.Name)
	result, err := a.mon.Wait(ctx, p, *p.Lifetime, label)
	switch result {
	case monitor.Aborted:
		a.orch.NotifyFailure(ev)
		if err != nil {
			a.logger.Error("monitored run aborted", "profile", p.Name, "error", err)
		}
		fmt.Fprintf(errOut, "%s Profile '%s' failed during execution\n", failMark, p.Name)
		return runFailed
	case monitor.Cancelled:
		return runInterrupted
	}

	if killAll {
		fmt.Fprintln(out, "Lifetime expired, stopping all processes...")
		if err := stopEverything(ctx, a, out); err != nil {
			fmt.Fprintf(errOut, "Error stopping all processes: %v\n", err)
			return runFailed
		}
		return runOK
	}

	fmt.Fprintf(out, "Lifetime expired, stopping profile '%s'...\n", p.Name)
	outcome, err = a.orch.Kill(ctx, p, ev)
	if err != nil {
		fmt.Fprintf(errOut, "Error stopping profile '%s': %v\n", p.Name, err)
		return runFailed
	}
	if outcome == orchestrator.OutcomeKilled {
		fmt.Fprintf(out, "%s Profile '%s' stopped\n", okMark, p.Name)
	}
	return runOK
}

// stopEverything kills every stored profile's automation app by path and
// quits all emulator instances. Per-profile hooks do not run; this is the
// blunt instrument for a machine in an unknown state.
func stopEverything(ctx context.Context, a *app, out io.Writer) error {
	names, err := a.store.List()
	if err != nil {
		return err
	}

	killed := 0
	seen := make(map[string]bool)
	for _, name := range names {
		p, err := a.store.Load(name)
		if err != nil || p.Automation == nil {
			continue
		}
		path := p.Automation.AppPath()
		if seen[path] {
			continue
		}
		seen[path] = true
		n, err := a.killByPath(path, a.cfg.Run.KillGracePeriod())
		if err != nil {
			a.logger.Warn("failed to stop automation app", "path", path, "error", err)
			continue
		}
		killed += n
	}

	if err := a.console.QuitAll(ctx); err != nil {
		return err
	}

	if killed > 0 {
		fmt.Fprintf(out, "%s Stopped %d automation process(es) and all emulator instances\n", okMark, killed)
	} else {
		fmt.Fprintf(out, "%s Stopped all emulator instances (no automation processes found)\n", okMark)
	}
	return nil
}

// expandProfiles resolves run arguments: glob patterns expand against the
// store's full-profile names, literal names pass through for the store's
// exact-then-prefix resolution. Duplicates collapse; a pattern matching
// nothing is an error.
func expandProfiles(store *profile.Store, args []string) ([]string, error) {
	all, err := store.List()
	if err != nil {
		return nil, err
	}

	var names []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, arg := range args {
		if !util.IsPattern(arg) {
			add(arg)
			continue
		}
		matches := util.FilterByPattern(all, arg, false)
		if len(matches) == 0 {
			return nil, fmt.Errorf("no profiles match pattern '%s'", arg)
		}
		for _, m := range matches {
			add(m)
		}
	}
	return names, nil
}

// parseVars turns repeated key=value flags into a run-vars map.
func parseVars(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	vars := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q (expected key=value)", pair)
		}
		vars[key] = value
	}
	return vars, nil
}
