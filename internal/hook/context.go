package hook

import "github.com/google/uuid"

// RunContext carries the mutable per-invocation state shared with every
// extension during a run. It is created at command entry, passed by pointer
// through all hook calls, and discarded when the command exits; writes made
// by one extension are visible to the extensions and hooks that follow.
type RunContext struct {
	// RunID uniquely identifies this invocation in logs.
	RunID string

	// ProfileName is the profile the invocation operates on.
	ProfileName string

	// Vars holds the runtime variables from repeated --var flags.
	// Extensions may read and write them.
	Vars map[string]string

	// Failed marks a run that started successfully but was later downgraded
	// by the monitor. It is set before failure bookkeeping re-broadcasts.
	Failed bool
}

// NewRunContext returns a RunContext with a fresh run ID. A nil vars map is
// replaced with an empty one so extensions can always write variables.
func NewRunContext(profileName string, vars map[string]string) *RunContext {
	if vars == nil {
		vars = make(map[string]string)
	}
	return &RunContext{
		RunID:       uuid.NewString(),
		ProfileName: profileName,
		Vars:        vars,
	}
}

// Var returns the value of a runtime variable, or "" when unset.
func (c *RunContext) Var(key string) string {
	return c.Vars[key]
}

// Flag reports whether a runtime variable is "true", the value bare --var
// flags receive.
func (c *RunContext) Flag(key string) bool {
	return c.Vars[key] == "true"
}
