// Package monitor implements the liveness wait loop for a running
// profile: a one-second countdown over the profile's lifetime with
// periodic checks that its processes still exist, aborting early after
// sustained absence.
package monitor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/logging"
	"github.com/tandem-run/tandem/internal/proc"
	"github.com/tandem-run/tandem/internal/profile"
)

// DefaultCheckEvery is how many seconds pass between liveness checks.
const DefaultCheckEvery = 10

// DefaultMaxFailures is how many consecutive failed checks abort the wait.
const DefaultMaxFailures = 10

var (
	labelStyle = lipgloss.NewStyle().Bold(true)
	infoTag    = lipgloss.NewStyle().Foreground(lipgloss.Color("#60A5FA")).Render("[Info]")
	warnTag    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Render("[Warning]")
	errorTag   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F87171")).Render("[Error]")
)

// Result describes how a monitored wait ended.
type Result int

const (
	// Completed means the full lifetime elapsed with no abort.
	Completed Result = iota
	// Aborted means consecutive liveness failures exhausted the budget.
	Aborted
	// Cancelled means the user interrupted the wait. The processes are
	// left running; the outcome is indeterminate.
	Cancelled
)

// String returns a human-readable result name.
func (r Result) String() string {
	switch r {
	case Completed:
		return "completed"
	case Aborted:
		return "aborted"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// EmulatorChecker answers whether the emulator instance at index is
// running. Errors mean the state could not be determined.
type EmulatorChecker interface {
	IsRunning(ctx context.Context, index int) (bool, error)
}

// Options tune the monitor's check cadence and output.
type Options struct {
	// CheckEvery is the liveness check interval in seconds (default 10).
	CheckEvery int
	// MaxFailures is the consecutive-failure budget (default 10).
	MaxFailures int
	// Out receives the countdown and status lines (default os.Stdout).
	Out io.Writer
	// Logger receives structured duplicates of warnings and aborts.
	Logger *logging.Logger
}

// Monitor waits out profile lifetimes while watching process liveness.
type Monitor struct {
	console     EmulatorChecker
	checkEvery  int
	maxFailures int
	out         io.Writer
	logger      *logging.Logger

	// tick is one countdown step; tests shorten it.
	tick time.Duration
	// nameRunning scans the process table; tests replace it.
	nameRunning func(name string) bool
}

// New creates a monitor. console may be nil, in which case emulator
// liveness is always assumed.
func New(console EmulatorChecker, opts Options) *Monitor {
	if opts.CheckEvery <= 0 {
		opts.CheckEvery = DefaultCheckEvery
	}
	if opts.MaxFailures <= 0 {
		opts.MaxFailures = DefaultMaxFailures
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &Monitor{
		console:     console,
		checkEvery:  opts.CheckEvery,
		maxFailures: opts.MaxFailures,
		out:         opts.Out,
		logger:      opts.Logger,
		tick:        time.Second,
		nameRunning: proc.NameRunning,
	}
}

// Wait counts down lifetime seconds for p, rendering a single-line
// countdown prefixed with label. Every CheckEvery seconds it verifies
// the profile's processes; MaxFailures consecutive misses abort the wait
// with a MonitorAbortError. Context cancellation is honored at tick
// boundaries and returns Cancelled with the processes untouched.
func (m *Monitor) Wait(ctx context.Context, p *profile.Profile, lifetime int, label string) (Result, error) {
	if lifetime <= 0 {
		return Completed, nil
	}

	styled := labelStyle.Render(label)
	failures := 0

	ticker := time.NewTicker(m.tick)
	defer ticker.Stop()

	for remaining := lifetime; remaining > 0; remaining-- {
		fmt.Fprintf(m.out, "\r%s: %ds remaining...    ", styled, remaining)

		select {
		case <-ctx.Done():
			m.clearLine()
			fmt.Fprintln(m.out, "\nInterrupted by user")
			m.logger.Info("wait interrupted", "profile", p.Name, "remaining", remaining)
			return Cancelled, nil
		case <-ticker.C:
		}

		if remaining%m.checkEvery != 0 {
			continue
		}

		alive, reason := m.checkProfile(ctx, p)
		if alive {
			if failures > 0 {
				fmt.Fprintf(m.out, "\n%s Processes recovered, resetting failure counter.\n", infoTag)
				m.logger.Info("liveness recovered", "profile", p.Name, "failures", failures)
			}
			failures = 0
			continue
		}

		failures++
		fmt.Fprintf(m.out, "\n%s %s (failure %d/%d)\n", warnTag, reason, failures, m.maxFailures)
		m.logger.Warn("liveness check failed", "profile", p.Name, "reason", reason, "failures", failures)

		if failures >= m.maxFailures {
			m.clearLine()
			fmt.Fprintf(m.out, "\n%s Profile processes failed %d times. Terminating.\n", errorTag, m.maxFailures)
			return Aborted, errors.NewMonitorAbortError(reason, failures).WithProfile(p.Name)
		}
	}

	m.clearLine()
	return Completed, nil
}

// checkProfile reports whether the profile's processes look alive and,
// when they do not, which component went missing.
func (m *Monitor) checkProfile(ctx context.Context, p *profile.Profile) (bool, string) {
	emulatorAlive := m.emulatorRunning(ctx, p)
	automationAlive := m.automationRunning(p)

	switch {
	case !emulatorAlive && !automationAlive:
		return false, "emulator instance and automation process terminated"
	case !emulatorAlive:
		return false, "emulator instance terminated"
	case !automationAlive:
		return false, "automation process terminated"
	}
	return true, ""
}

// emulatorRunning assumes running whenever the state cannot be queried:
// no emulator section, no index to address, no console, or a failed check.
func (m *Monitor) emulatorRunning(ctx context.Context, p *profile.Profile) bool {
	if p.Emulator == nil || p.Emulator.Index == nil || m.console == nil {
		return true
	}
	running, err := m.console.IsRunning(ctx, *p.Emulator.Index)
	if err != nil {
		m.logger.Debug("emulator liveness check skipped", "profile", p.Name, "error", err)
		return true
	}
	return running
}

// automationRunning scans the process table for the automation app.
func (m *Monitor) automationRunning(p *profile.Profile) bool {
	if p.Automation == nil || p.Automation.App == "" {
		return true
	}
	return m.nameRunning(p.Automation.App)
}

// clearLine wipes the countdown so following output starts clean.
func (m *Monitor) clearLine() {
	fmt.Fprint(m.out, "\r"+strings.Repeat(" ", 60)+"\r")
}
