package orchestrator

// State names the orchestrator's position in a start or kill sequence.
type State string

const (
	// StateIdle - nothing in progress
	StateIdle State = "idle"
	// StateValidated - profile passed structural validation
	StateValidated State = "validated"
	// StateGateChecked - no extension vetoed the operation
	StateGateChecked State = "gate_checked"
	// StateLaunchingEmulator - console launch in progress
	StateLaunchingEmulator State = "launching_emulator"
	// StateWaiting - pausing between emulator and automation launch
	StateWaiting State = "waiting"
	// StateLaunchingAutomation - detached automation launch in progress
	StateLaunchingAutomation State = "launching_automation"
	// StateRunning - all configured processes launched
	StateRunning State = "running"
	// StateMonitoring - a caller-driven liveness wait is in progress
	StateMonitoring State = "monitoring"
	// StateStopping - teardown in progress
	StateStopping State = "stopping"
	// StateSucceeded - teardown finished
	StateSucceeded State = "succeeded"
	// StateFailed - validation, launch, or a monitored run failed
	StateFailed State = "failed"
	// StateBlocked - an extension vetoed the operation
	StateBlocked State = "blocked"
)

// Outcome summarizes how a start or kill request ended.
type Outcome string

const (
	// OutcomeStarted - every configured process launched
	OutcomeStarted Outcome = "started"
	// OutcomeKilled - teardown ran to completion
	OutcomeKilled Outcome = "killed"
	// OutcomeBlocked - an extension vetoed the operation; not an error
	OutcomeBlocked Outcome = "blocked"
	// OutcomeCancelled - the context was cancelled mid-sequence
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeFailed - validation or a launch failed
	OutcomeFailed Outcome = "failed"
)
