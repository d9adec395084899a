// Package profile defines the profile model and its TOML-backed store.
//
// A profile pairs an emulator instance with an automation application and
// carries per-run timing knobs. Profiles live as TOML files in a single
// directory; standalone part files (<name>.emulator.toml,
// <name>.automation.toml) hold reusable halves that full profiles pull in
// through template references.
package profile

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tandem-run/tandem/internal/errors"
)

// ManagedPathPrefix marks automation paths that are resolved by an external
// package manager rather than pointing at a directory. Managed paths skip
// filesystem existence checks during validation.
const ManagedPathPrefix = "scoop:"

// Profile pairs an emulator instance with an automation application.
// At least one of Emulator and Automation must be present.
type Profile struct {
	// Name is the profile's file stem. It comes from the file name and is
	// never stored inside the file.
	Name string `toml:"-"`

	// Emulator identifies the emulator instance to launch.
	Emulator *Emulator `toml:"emulator,omitempty"`

	// Automation describes the automation application launched after the
	// emulator is up.
	Automation *Automation `toml:"automation,omitempty"`

	// Lifetime is how long a monitored run lasts, in seconds. Nil means the
	// profile launches without monitoring.
	Lifetime *int `toml:"lifetime,omitempty"`

	// Waittime is the delay between the emulator launch and the automation
	// launch, in seconds. Nil falls back to the configured default.
	Waittime *int `toml:"waittime,omitempty"`
}

// Validate checks the profile against its structural invariants and returns
// a *errors.ValidationError describing the first violation found.
func (p *Profile) Validate() error {
	if p.Emulator == nil && p.Automation == nil {
		return errors.NewValidationError("profile must define an emulator or an automation").
			WithField("profile").
			WithValue(p.Name)
	}
	if p.Lifetime != nil && *p.Lifetime <= 0 {
		return errors.NewValidationError("lifetime must be positive").
			WithField("lifetime").
			WithValue(*p.Lifetime)
	}
	if p.Waittime != nil && *p.Waittime < 0 {
		return errors.NewValidationError("waittime cannot be negative").
			WithField("waittime").
			WithValue(*p.Waittime)
	}
	if p.Emulator != nil {
		if err := p.Emulator.Validate(); err != nil {
			return err
		}
	}
	if p.Automation != nil {
		if err := p.Automation.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Emulator selects an emulator instance either by console index or by
// display name. Exactly one of Index and Name must be set.
type Emulator struct {
	// Index is the instance index as known to the console utility.
	Index *int `toml:"index,omitempty"`

	// Name is the instance display name as known to the console utility.
	Name string `toml:"name,omitempty"`
}

// Validate enforces the index/name exclusivity rule.
func (e *Emulator) Validate() error {
	if e.Index == nil && e.Name == "" {
		return errors.NewValidationError("either 'name' or 'index' must be provided").
			WithField("emulator")
	}
	if e.Index != nil && e.Name != "" {
		return errors.NewValidationError("only one of 'name' or 'index' may be provided").
			WithField("emulator")
	}
	return nil
}

// Automation describes the automation application paired with an emulator
// instance.
type Automation struct {
	// Path is the application install directory, or a managed reference such
	// as "scoop:maa".
	Path string `toml:"path"`

	// App is the executable file name under Path.
	App string `toml:"app"`

	// ConfigDir is an optional configuration directory under Path.
	ConfigDir string `toml:"config_dir,omitempty"`

	// Files selects which files under ConfigDir are considered by tooling
	// that snapshots or rewrites the automation configuration.
	Files *Files `toml:"files,omitempty"`

	// Parse tunes how configuration values are rewritten before a run.
	Parse *Parse `toml:"parse,omitempty"`
}

// Files holds include/exclude glob patterns over automation config files.
type Files struct {
	Include []string `toml:"include,omitempty"`
	Exclude []string `toml:"exclude,omitempty"`
}

// Parse holds config rewrite rules: keys to overwrite with fixed values and
// key patterns to leave untouched.
type Parse struct {
	Overwrite map[string]any `toml:"overwrite,omitempty"`
	Exclude   []string       `toml:"exclude,omitempty"`
}

// Managed reports whether the install is resolved by an external package
// manager rather than a filesystem path.
func (a *Automation) Managed() bool {
	return strings.HasPrefix(a.Path, ManagedPathPrefix)
}

// AppPath returns the full path of the automation executable.
func (a *Automation) AppPath() string {
	return filepath.Join(a.Path, a.App)
}

// ConfigPath returns the full path of the automation config directory, or
// "" when none is set.
func (a *Automation) ConfigPath() string {
	if a.ConfigDir == "" {
		return ""
	}
	return filepath.Join(a.Path, a.ConfigDir)
}

// Validate checks the automation block. Managed paths only require the
// executable name; filesystem paths must exist, along with the executable
// and the config directory when one is set.
func (a *Automation) Validate() error {
	if a.Path == "" {
		return errors.NewValidationError("automation path cannot be empty").
			WithField("automation.path")
	}
	if a.App == "" {
		return errors.NewValidationError("automation app executable must be specified").
			WithField("automation.app")
	}
	if a.Managed() {
		return nil
	}
	if _, err := os.Stat(a.Path); err != nil {
		return errors.NewValidationError("automation path does not exist").
			WithField("automation.path").
			WithValue(a.Path).
			WithCause(err)
	}
	if _, err := os.Stat(a.AppPath()); err != nil {
		return errors.NewValidationError("automation app executable not found").
			WithField("automation.app").
			WithValue(a.AppPath()).
			WithCause(err)
	}
	if a.ConfigDir != "" {
		if _, err := os.Stat(a.ConfigPath()); err != nil {
			return errors.NewValidationError("automation config directory not found").
				WithField("automation.config_dir").
				WithValue(a.ConfigPath()).
				WithCause(err)
		}
	}
	return nil
}
