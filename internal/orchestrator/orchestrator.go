// Package orchestrator sequences profile starts and kills: structural
// validation, extension gating, the emulator console launch, the
// inter-launch wait, the detached automation launch, and teardown, with
// hook dispatch around every step.
package orchestrator

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/hook"
	"github.com/tandem-run/tandem/internal/logging"
	"github.com/tandem-run/tandem/internal/proc"
	"github.com/tandem-run/tandem/internal/profile"
)

// DefaultWaittime is the pause between the emulator launch and the
// automation launch when neither the profile nor the caller sets one.
const DefaultWaittime = 15 * time.Second

// DefaultKillGrace is how long killed processes get to exit politely
// before being force-killed.
const DefaultKillGrace = 5 * time.Second

// EmulatorConsole is the slice of the console surface the orchestrator
// drives. *emulator.Console satisfies it.
type EmulatorConsole interface {
	Launch(ctx context.Context, em *profile.Emulator) error
	Quit(ctx context.Context, em *profile.Emulator) error
}

// Options tune orchestrator timing and output.
type Options struct {
	// DefaultWaittime overrides the built-in inter-launch pause.
	DefaultWaittime time.Duration
	// KillGrace overrides the built-in terminate-to-force-kill budget.
	KillGrace time.Duration
	// Out receives the extension-veto notices (default os.Stdout).
	Out io.Writer
	// Logger receives structured progress events.
	Logger *logging.Logger
}

// Orchestrator runs the start and kill sequences for one profile at a
// time. It is not safe for concurrent operations; the state field
// reflects the most recent sequence.
type Orchestrator struct {
	mu    sync.Mutex
	state State

	bus         *hook.Bus
	console     EmulatorConsole
	defaultWait time.Duration
	killGrace   time.Duration
	out         io.Writer
	logger      *logging.Logger

	// launch and killByPath front the process collaborator; tests
	// replace them.
	launch     func(argv []string, dir string) (int, error)
	killByPath func(path string, grace time.Duration) (int, error)
}

// New creates an orchestrator. console must be non-nil if any profile
// handed to Start or Kill references an emulator.
func New(bus *hook.Bus, console EmulatorConsole, opts Options) *Orchestrator {
	if opts.DefaultWaittime <= 0 {
		opts.DefaultWaittime = DefaultWaittime
	}
	if opts.KillGrace <= 0 {
		opts.KillGrace = DefaultKillGrace
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	return &Orchestrator{
		state:       StateIdle,
		bus:         bus,
		console:     console,
		defaultWait: opts.DefaultWaittime,
		killGrace:   opts.KillGrace,
		out:         opts.Out,
		logger:      opts.Logger,
		launch:      proc.LaunchDetached,
		killByPath:  proc.KillByPath,
	}
}

// State returns the orchestrator's current position.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// BeginMonitoring marks the transition from a completed start into a
// caller-driven liveness wait.
func (o *Orchestrator) BeginMonitoring() {
	o.setState(StateMonitoring)
}

// Start launches the profile's processes in order: emulator first, then
// the inter-launch wait when both components are configured, then the
// automation app. waitOverride replaces both the profile's waittime and
// the configured default when non-nil. Launch failures are fatal for
// the profile; partially launched components are left as-is.
//
// A gate veto returns (OutcomeBlocked, nil): a declined run is not an
// error. Start never monitors; that phase belongs to the caller.
func (o *Orchestrator) Start(ctx context.Context, p *profile.Profile, ev *hook.Event, waitOverride *int) (Outcome, error) {
	o.setState(StateIdle)

	if err := p.Validate(); err != nil {
		o.setState(StateFailed)
		return OutcomeFailed, err
	}
	o.setState(StateValidated)

	if !o.bus.AllowRun(ev) {
		o.setState(StateBlocked)
		fmt.Fprintln(o.out, "Profile run prevented by extension.")
		o.logger.Info("run blocked by extension gate", "profile", p.Name)
		return OutcomeBlocked, nil
	}
	o.setState(StateGateChecked)

	o.bus.BeforeProfileStart(ev)

	if p.Emulator != nil {
		o.setState(StateLaunchingEmulator)
		o.bus.Emit(hook.StageEmulatorLaunch, ev)
		if err := o.console.Launch(ctx, p.Emulator); err != nil {
			o.setState(StateFailed)
			return OutcomeFailed, errors.NewLaunchError("emulator failed to launch", err).
				WithComponent("emulator").
				WithProfile(p.Name)
		}
		o.logger.Info("emulator launched", "profile", p.Name)
	}

	if p.Emulator != nil && p.Automation != nil {
		o.setState(StateWaiting)
		o.bus.Emit(hook.StageWait, ev)
		wait := o.waitDuration(p, waitOverride)
		o.logger.Debug("waiting before automation launch", "profile", p.Name, "wait", wait)
		if err := sleepContext(ctx, wait); err != nil {
			o.logger.Info("start cancelled during wait", "profile", p.Name)
			return OutcomeCancelled, nil
		}
	}

	if p.Automation != nil {
		o.setState(StateLaunchingAutomation)
		o.bus.Emit(hook.StageAutomationLaunch, ev)
		app := p.Automation.AppPath()
		pid, err := o.launch([]string{app}, p.Automation.Path)
		if err != nil {
			o.setState(StateFailed)
			return OutcomeFailed, errors.NewLaunchError("automation failed to launch", err).
				WithComponent("automation").
				WithPath(app).
				WithProfile(p.Name)
		}
		o.logger.Info("automation launched", "profile", p.Name, "app", app, "pid", pid)
	}

	o.bus.AfterProfileStart(ev)
	o.setState(StateRunning)
	return OutcomeStarted, nil
}

// Kill tears the profile's processes down: automation first, then the
// emulator. Both steps are best-effort; failures are logged and the
// sequence continues so one stuck process never strands the other.
func (o *Orchestrator) Kill(ctx context.Context, p *profile.Profile, ev *hook.Event) (Outcome, error) {
	if !o.bus.AllowKill(ev) {
		o.setState(StateBlocked)
		fmt.Fprintln(o.out, "Profile kill prevented by extension.")
		o.logger.Info("kill blocked by extension gate", "profile", p.Name)
		return OutcomeBlocked, nil
	}

	o.setState(StateStopping)
	o.bus.BeforeProfileKill(ev)

	if p.Automation != nil {
		o.bus.Emit(hook.StageAutomationKill, ev)
		app := p.Automation.AppPath()
		killed, err := o.killByPath(app, o.killGrace)
		if err != nil {
			o.logger.Warn("automation kill failed", "profile", p.Name, "path", app, "error", err)
		} else {
			o.logger.Info("automation processes terminated", "profile", p.Name, "path", app, "count", killed)
		}
	}

	if p.Emulator != nil {
		o.bus.Emit(hook.StageEmulatorKill, ev)
		if err := o.console.Quit(ctx, p.Emulator); err != nil {
			o.logger.Warn("emulator quit failed", "profile", p.Name, "error", err)
		} else {
			o.logger.Info("emulator quit", "profile", p.Name)
		}
	}

	o.bus.AfterProfileKill(ev)
	o.setState(StateSucceeded)
	return OutcomeKilled, nil
}

// NotifyFailure tells extensions that a run failed after Start
// succeeded, during the lifetime wait. It marks the run context failed
// and re-broadcasts the post-start hook so bookkeeping extensions can
// downgrade the recorded outcome.
func (o *Orchestrator) NotifyFailure(ev *hook.Event) {
	ev.Ctx.Failed = true
	o.bus.AfterProfileStart(ev)
	o.setState(StateFailed)
}

// waitDuration resolves the inter-launch pause: caller override, then
// the profile's waittime, then the configured default.
func (o *Orchestrator) waitDuration(p *profile.Profile, override *int) time.Duration {
	switch {
	case override != nil:
		return time.Duration(*override) * time.Second
	case p.Waittime != nil:
		return time.Duration(*p.Waittime) * time.Second
	default:
		return o.defaultWait
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	prev := o.state
	o.state = s
	o.mu.Unlock()
	if prev != s {
		o.logger.Debug("state transition", "from", string(prev), "to", string(s))
	}
}

// sleepContext sleeps for d or until ctx is done, whichever comes first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
