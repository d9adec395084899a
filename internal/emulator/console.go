// Package emulator wraps the external console utility that manages
// emulator instances.
//
// The utility (ldconsole by default) exposes launch, quit, quitall, and
// isrunning verbs addressed by --index or --name. Instances live outside
// any process tree tandem owns, so the console is the only control
// surface: mutations are fire-and-forget and queries are best-effort.
package emulator

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/logging"
	"github.com/tandem-run/tandem/internal/profile"
)

// DefaultCommand is the console utility used when none is configured.
const DefaultCommand = "ldconsole"

// DefaultCommandTimeout bounds a console invocation when the configured
// timeout is zero.
const DefaultCommandTimeout = 5 * time.Second

// Console verbs understood by the utility.
const (
	verbLaunch    = "launch"
	verbQuit      = "quit"
	verbQuitAll   = "quitall"
	verbIsRunning = "isrunning"
)

// Runner executes a prepared console command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Console issues commands to the emulator console utility.
type Console struct {
	command string
	timeout time.Duration
	logger  *logging.Logger
	run     Runner
}

// New creates a console wrapper around command. The command may carry
// embedded arguments ("ldpx console"); it is split on whitespace before
// the verb is appended. A zero timeout falls back to
// DefaultCommandTimeout.
func New(command string, timeout time.Duration, logger *logging.Logger) *Console {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Console{
		command: command,
		timeout: timeout,
		logger:  logger,
		run:     runCommand,
	}
}

// Launch starts the emulator instance selected by em.
func (c *Console) Launch(ctx context.Context, em *profile.Emulator) error {
	target, err := targetArgs(em)
	if err != nil {
		return err
	}
	_, err = c.exec(ctx, verbLaunch, target)
	return err
}

// Quit stops the emulator instance selected by em.
func (c *Console) Quit(ctx context.Context, em *profile.Emulator) error {
	target, err := targetArgs(em)
	if err != nil {
		return err
	}
	_, err = c.exec(ctx, verbQuit, target)
	return err
}

// QuitAll stops every emulator instance the utility knows about.
func (c *Console) QuitAll(ctx context.Context) error {
	_, err := c.exec(ctx, verbQuitAll, nil)
	return err
}

// IsRunning queries the running state of the instance at index. The
// utility answers "running" or "stop" on stdout; any other answer counts
// as not running. An error means the state could not be determined at
// all, which liveness callers treat as "assume running".
func (c *Console) IsRunning(ctx context.Context, index int) (bool, error) {
	out, err := c.exec(ctx, verbIsRunning, []string{"--index", strconv.Itoa(index)})
	if err != nil {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(string(out)), "running"), nil
}

// exec runs a single console verb, bounded by the configured timeout.
func (c *Console) exec(ctx context.Context, verb string, target []string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	argv := c.argv(verb, target)
	c.logger.Debug("console command", "argv", strings.Join(argv, " "))

	out, err := c.run(ctx, argv[0], argv[1:]...)
	if err == nil {
		return out, nil
	}

	msg := "console command failed"
	cause := err
	switch {
	case errors.Is(err, exec.ErrNotFound):
		msg = "console utility not found"
		cause = errors.Join(errors.ErrConsoleUnavailable, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		msg = "console command timed out"
		cause = errors.Join(errors.ErrTimeout, err)
	}

	cerr := errors.NewConsoleError(msg, cause).WithVerb(verb)
	if len(target) > 0 {
		cerr = cerr.WithTarget(strings.Join(target, " "))
	}
	if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
		cerr = cerr.WithOutput(trimmed)
	}
	return out, cerr
}

// argv assembles the full command line for verb.
func (c *Console) argv(verb string, target []string) []string {
	argv := append(strings.Fields(c.command), verb)
	return append(argv, target...)
}

// targetArgs renders the --index or --name selector for em. Index takes
// precedence; profile validation rejects specs carrying both.
func targetArgs(em *profile.Emulator) ([]string, error) {
	switch {
	case em == nil:
		return nil, errors.NewValidationError("no emulator to address").WithField("emulator")
	case em.Index != nil:
		return []string{"--index", strconv.Itoa(*em.Index)}, nil
	case em.Name != "":
		return []string{"--name", em.Name}, nil
	default:
		return nil, errors.NewValidationError("emulator has neither index nor name").WithField("emulator")
	}
}

// runCommand is the production Runner. Output() captures stdout, where
// the isrunning verb answers.
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}
