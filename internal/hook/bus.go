// Package hook is the extension dispatch layer: typed lifecycle events, a
// mutable per-run context, capability interfaces, and a bus that fans hook
// calls out to registered extensions in registration order.
//
// The bus never lets an extension break a run: hook errors are logged and
// dispatch continues, panics are recovered with their stack, and calls that
// exceed the configured timeout are abandoned. Gate hooks (AllowRun,
// AllowKill) are the exception in one direction only: the first false
// answer short-circuits and blocks the operation, while a failing gate is
// treated as having no opinion.
package hook

import (
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/logging"
)

// Bus dispatches lifecycle hooks to registered extensions, in registration
// order, one call at a time.
type Bus struct {
	logger      *logging.Logger
	callTimeout time.Duration

	mu   sync.Mutex
	exts []Extension
}

// NewBus creates a bus. callTimeout bounds each individual hook call; zero
// or negative disables the bound.
func NewBus(logger *logging.Logger, callTimeout time.Duration) *Bus {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Bus{
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// Register appends an extension. Registration order is dispatch order.
func (b *Bus) Register(ext Extension) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.exts = append(b.exts, ext)
}

// Extensions returns the registered extension names in registration order.
func (b *Bus) Extensions() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	names := make([]string, len(b.exts))
	for i, ext := range b.exts {
		names[i] = ext.Name()
	}
	return names
}

// snapshot copies the registration list so dispatch never holds the lock.
func (b *Bus) snapshot() []Extension {
	b.mu.Lock()
	defer b.mu.Unlock()
	exts := make([]Extension, len(b.exts))
	copy(exts, b.exts)
	return exts
}

// AllowRun asks every RunGate whether the profile may start. The first veto
// wins and later gates are not consulted. A gate that errors, panics, or
// times out has no opinion and is skipped. With no gates registered the
// answer is true.
func (b *Bus) AllowRun(ev *Event) bool {
	for _, ext := range b.snapshot() {
		gate, ok := ext.(RunGate)
		if !ok {
			continue
		}
		allowed, err := b.call(ext.Name(), "AllowRun", func() (bool, error) {
			return gate.AllowRun(ev)
		})
		if err != nil {
			b.logger.WithExtension(ext.Name()).Warn("run gate skipped",
				"profile", ev.Ctx.ProfileName, "error", err)
			continue
		}
		if !allowed {
			b.logger.WithExtension(ext.Name()).Info("run vetoed",
				"profile", ev.Ctx.ProfileName)
			return false
		}
	}
	return true
}

// AllowKill asks every KillGate whether the profile may be killed, with the
// same short-circuit and no-opinion rules as AllowRun.
func (b *Bus) AllowKill(ev *Event) bool {
	for _, ext := range b.snapshot() {
		gate, ok := ext.(KillGate)
		if !ok {
			continue
		}
		allowed, err := b.call(ext.Name(), "AllowKill", func() (bool, error) {
			return gate.AllowKill(ev)
		})
		if err != nil {
			b.logger.WithExtension(ext.Name()).Warn("kill gate skipped",
				"profile", ev.Ctx.ProfileName, "error", err)
			continue
		}
		if !allowed {
			b.logger.WithExtension(ext.Name()).Info("kill vetoed",
				"profile", ev.Ctx.ProfileName)
			return false
		}
	}
	return true
}

// BeforeProfileStart notifies every StartObserver.
func (b *Bus) BeforeProfileStart(ev *Event) {
	for _, ext := range b.snapshot() {
		if obs, ok := ext.(StartObserver); ok {
			b.observe(ext.Name(), "BeforeProfileStart", ev, obs.BeforeProfileStart)
		}
	}
}

// AfterProfileStart notifies every StartedObserver.
func (b *Bus) AfterProfileStart(ev *Event) {
	for _, ext := range b.snapshot() {
		if obs, ok := ext.(StartedObserver); ok {
			b.observe(ext.Name(), "AfterProfileStart", ev, obs.AfterProfileStart)
		}
	}
}

// BeforeProfileKill notifies every KillObserver.
func (b *Bus) BeforeProfileKill(ev *Event) {
	for _, ext := range b.snapshot() {
		if obs, ok := ext.(KillObserver); ok {
			b.observe(ext.Name(), "BeforeProfileKill", ev, obs.BeforeProfileKill)
		}
	}
}

// AfterProfileKill notifies every KilledObserver.
func (b *Bus) AfterProfileKill(ev *Event) {
	for _, ext := range b.snapshot() {
		if obs, ok := ext.(KilledObserver); ok {
			b.observe(ext.Name(), "AfterProfileKill", ev, obs.AfterProfileKill)
		}
	}
}

// Emit notifies every StageObserver of a stage transition.
func (b *Bus) Emit(stage Stage, ev *Event) {
	for _, ext := range b.snapshot() {
		obs, ok := ext.(StageObserver)
		if !ok {
			continue
		}
		name := ext.Name()
		_, err := b.call(name, "OnStage", func() (bool, error) {
			return true, obs.OnStage(stage, ev)
		})
		if err != nil {
			b.logger.WithExtension(name).Warn("stage hook failed",
				"stage", string(stage), "profile", ev.Ctx.ProfileName, "error", err)
		}
	}
}

// observe runs a single observer hook. Hook errors are logged and swallowed
// so one extension never stops dispatch to the rest.
func (b *Bus) observe(name, hookName string, ev *Event, fn func(*Event) error) {
	_, err := b.call(name, hookName, func() (bool, error) {
		return true, fn(ev)
	})
	if err != nil {
		b.logger.WithExtension(name).Warn("hook failed",
			"hook", hookName, "profile", ev.Ctx.ProfileName, "error", err)
	}
}

// callResult carries a hook return value across the goroutine boundary.
type callResult struct {
	allowed bool
	err     error
}

// call runs one hook invocation with panic recovery and the per-call
// timeout. The hook runs in its own goroutine; on timeout the goroutine is
// abandoned and an ErrExtensionTimeout error is returned, so a hung
// extension cannot stall the lifecycle.
func (b *Bus) call(name, hookName string, fn func() (bool, error)) (bool, error) {
	done := make(chan callResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.WithExtension(name).Error("extension panicked",
					"hook", hookName, "panic", r, "stack", string(debug.Stack()))
				done <- callResult{err: errors.NewExtensionError(
					fmt.Sprintf("panic: %v", r), errors.ErrExtensionPanic).
					WithExtension(name).
					WithHook(hookName)}
			}
		}()
		allowed, err := fn()
		done <- callResult{allowed: allowed, err: err}
	}()

	if b.callTimeout <= 0 {
		res := <-done
		return res.allowed, res.err
	}

	timer := time.NewTimer(b.callTimeout)
	defer timer.Stop()
	select {
	case res := <-done:
		return res.allowed, res.err
	case <-timer.C:
		return false, errors.NewExtensionError(
			fmt.Sprintf("abandoned after %s", b.callTimeout), errors.ErrExtensionTimeout).
			WithExtension(name).
			WithHook(hookName)
	}
}
