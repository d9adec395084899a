package hook

import "github.com/tandem-run/tandem/internal/profile"

// Stage identifies a fine-grained emit point inside a start or kill
// operation.
type Stage string

// Stage names follow the category.action convention.
const (
	// StageEmulatorLaunch fires just before the emulator instance launches.
	StageEmulatorLaunch Stage = "emulator.launch"
	// StageWait fires just before the delay between the emulator launch and
	// the automation launch.
	StageWait Stage = "wait"
	// StageAutomationLaunch fires just before the automation process launches.
	StageAutomationLaunch Stage = "automation.launch"
	// StageAutomationKill fires just before the automation process is killed.
	StageAutomationKill Stage = "automation.kill"
	// StageEmulatorKill fires just before the emulator instance is quit.
	StageEmulatorKill Stage = "emulator.kill"
)

// Event is the payload handed to every hook call.
type Event struct {
	// Profile is the profile being operated on. Extensions must treat it
	// as read-only.
	Profile *profile.Profile

	// Ctx is the mutable per-invocation state.
	Ctx *RunContext
}

// NewEvent pairs a profile with its run context.
func NewEvent(p *profile.Profile, ctx *RunContext) *Event {
	return &Event{Profile: p, Ctx: ctx}
}
