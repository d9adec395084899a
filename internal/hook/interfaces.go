package hook

// Extension is the base interface every extension implements. The capability
// interfaces below opt an extension into specific hooks; the bus checks which
// of them an extension satisfies at dispatch time, so an extension implements
// only the hooks it cares about.
type Extension interface {
	// Name identifies the extension in logs and listings.
	Name() string
}

// RunGate vetoes profile starts. A false answer blocks the run before any
// launch work happens.
type RunGate interface {
	AllowRun(ev *Event) (bool, error)
}

// KillGate vetoes profile kills. A false answer leaves the profile's
// processes untouched.
type KillGate interface {
	AllowKill(ev *Event) (bool, error)
}

// StartObserver runs before any launch work begins.
type StartObserver interface {
	BeforeProfileStart(ev *Event) error
}

// StartedObserver runs after the profile's components have launched. It runs
// a second time, with ev.Ctx.Failed set, when a monitored run is later
// downgraded to a failure.
type StartedObserver interface {
	AfterProfileStart(ev *Event) error
}

// KillObserver runs before teardown begins.
type KillObserver interface {
	BeforeProfileKill(ev *Event) error
}

// KilledObserver runs after teardown finishes.
type KilledObserver interface {
	AfterProfileKill(ev *Event) error
}

// StageObserver receives fine-grained stage notifications inside start and
// kill operations.
type StageObserver interface {
	OnStage(stage Stage, ev *Event) error
}
