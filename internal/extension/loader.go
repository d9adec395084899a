// Package extension loads hook extensions: a static list for built-ins,
// and a directory loader that interprets Go source files dropped into
// the extensions directory, binding their top-level functions to hook
// dispatch without any compile step.
package extension

import "github.com/tandem-run/tandem/internal/hook"

// Loader produces the extensions to register on the hook bus.
type Loader interface {
	Load() ([]hook.Extension, error)
}

// Static returns a Loader that yields the given extensions as-is. The
// built-in completion recorder registers through it.
func Static(exts ...hook.Extension) Loader {
	return staticLoader(exts)
}

type staticLoader []hook.Extension

func (l staticLoader) Load() ([]hook.Extension, error) {
	return l, nil
}
