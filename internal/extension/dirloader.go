package extension

import (
	"os"
	"path/filepath"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/tandem-run/tandem/internal/errors"
	"github.com/tandem-run/tandem/internal/hook"
	"github.com/tandem-run/tandem/internal/logging"
)

// nameFunc is the one function every extension file must define.
const nameFunc = "ExtensionName"

// DirLoader interprets each *.go file in a directory as an extension.
// Files declare `package main` and export hooks as top-level functions;
// only ExtensionName() string is required, everything else is optional:
//
//	ExtensionName() string
//	AllowRun(profile string, vars map[string]string) (bool, error)
//	AllowKill(profile string, vars map[string]string) (bool, error)
//	BeforeProfileStart(profile string, vars map[string]string) error
//	AfterProfileStart(profile string, vars map[string]string, failed bool) error
//	BeforeProfileKill(profile string, vars map[string]string) error
//	AfterProfileKill(profile string, vars map[string]string) error
//	OnStage(stage, profile string, vars map[string]string) error
//
// Files load in lexical name order, which is also their dispatch order
// on the bus. A file that fails to interpret, lacks ExtensionName, or
// declares a hook with the wrong signature is skipped with a warning;
// loading never aborts the command.
type DirLoader struct {
	dir    string
	logger *logging.Logger
}

// NewDirLoader creates a loader over dir. A missing directory loads as
// zero extensions.
func NewDirLoader(dir string, logger *logging.Logger) *DirLoader {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &DirLoader{dir: dir, logger: logger}
}

// Load interprets every extension file in the directory.
func (l *DirLoader) Load() ([]hook.Extension, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read extensions directory %s", l.dir)
	}

	var exts []hook.Extension
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		path := filepath.Join(l.dir, entry.Name())
		ext, err := interpretFile(path)
		if err != nil {
			l.logger.Warn("extension skipped", "path", path, "error", err)
			continue
		}
		l.logger.Info("extension loaded", "name", ext.name, "path", path)
		exts = append(exts, ext)
	}
	return exts, nil
}

// interpreted adapts one interpreted file onto the hook capability
// interfaces. Hooks the file does not define answer neutrally: gates
// allow, observers succeed.
type interpreted struct {
	name string
	path string

	allowRun    func(string, map[string]string) (bool, error)
	allowKill   func(string, map[string]string) (bool, error)
	beforeStart func(string, map[string]string) error
	afterStart  func(string, map[string]string, bool) error
	beforeKill  func(string, map[string]string) error
	afterKill   func(string, map[string]string) error
	onStage     func(string, string, map[string]string) error
}

var (
	_ hook.Extension       = (*interpreted)(nil)
	_ hook.RunGate         = (*interpreted)(nil)
	_ hook.KillGate        = (*interpreted)(nil)
	_ hook.StartObserver   = (*interpreted)(nil)
	_ hook.StartedObserver = (*interpreted)(nil)
	_ hook.KillObserver    = (*interpreted)(nil)
	_ hook.KilledObserver  = (*interpreted)(nil)
	_ hook.StageObserver   = (*interpreted)(nil)
)

// interpretFile evaluates one extension file and binds its hooks.
func interpretFile(path string) (*interpreted, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrapf(err, "failed to prime interpreter")
	}
	if _, err := i.EvalPath(path); err != nil {
		return nil, errors.Wrapf(err, "failed to interpret %s", filepath.Base(path))
	}

	nameVal, err := i.Eval(nameFunc)
	if err != nil {
		return nil, errors.New("missing required ExtensionName() string")
	}
	nameFn, ok := nameVal.Interface().(func() string)
	if !ok {
		return nil, errors.New("ExtensionName must be func() string")
	}

	ext := &interpreted{name: nameFn(), path: path}
	if ext.name == "" {
		return nil, errors.New("ExtensionName returned an empty name")
	}

	if v, err := i.Eval("AllowRun"); err == nil {
		if ext.allowRun, ok = v.Interface().(func(string, map[string]string) (bool, error)); !ok {
			return nil, errors.New("AllowRun must be func(profile string, vars map[string]string) (bool, error)")
		}
	}
	if v, err := i.Eval("AllowKill"); err == nil {
		if ext.allowKill, ok = v.Interface().(func(string, map[string]string) (bool, error)); !ok {
			return nil, errors.New("AllowKill must be func(profile string, vars map[string]string) (bool, error)")
		}
	}
	if v, err := i.Eval("BeforeProfileStart"); err == nil {
		if ext.beforeStart, ok = v.Interface().(func(string, map[string]string) error); !ok {
			return nil, errors.New("BeforeProfileStart must be func(profile string, vars map[string]string) error")
		}
	}
	if v, err := i.Eval("AfterProfileStart"); err == nil {
		if ext.afterStart, ok = v.Interface().(func(string, map[string]string, bool) error); !ok {
			return nil, errors.New("AfterProfileStart must be func(profile string, vars map[string]string, failed bool) error")
		}
	}
	if v, err := i.Eval("BeforeProfileKill"); err == nil {
		if ext.beforeKill, ok = v.Interface().(func(string, map[string]string) error); !ok {
			return nil, errors.New("BeforeProfileKill must be func(profile string, vars map[string]string) error")
		}
	}
	if v, err := i.Eval("AfterProfileKill"); err == nil {
		if ext.afterKill, ok = v.Interface().(func(string, map[string]string) error); !ok {
			return nil, errors.New("AfterProfileKill must be func(profile string, vars map[string]string) error")
		}
	}
	if v, err := i.Eval("OnStage"); err == nil {
		if ext.onStage, ok = v.Interface().(func(string, string, map[string]string) error); !ok {
			return nil, errors.New("OnStage must be func(stage, profile string, vars map[string]string) error")
		}
	}
	return ext, nil
}

// Name identifies the extension in logs and listings.
func (e *interpreted) Name() string { return e.name }

func (e *interpreted) AllowRun(ev *hook.Event) (bool, error) {
	if e.allowRun == nil {
		return true, nil
	}
	return e.allowRun(ev.Ctx.ProfileName, ev.Ctx.Vars)
}

func (e *interpreted) AllowKill(ev *hook.Event) (bool, error) {
	if e.allowKill == nil {
		return true, nil
	}
	return e.allowKill(ev.Ctx.ProfileName, ev.Ctx.Vars)
}

func (e *interpreted) BeforeProfileStart(ev *hook.Event) error {
	if e.beforeStart == nil {
		return nil
	}
	return e.beforeStart(ev.Ctx.ProfileName, ev.Ctx.Vars)
}

func (e *interpreted) AfterProfileStart(ev *hook.Event) error {
	if e.afterStart == nil {
		return nil
	}
	return e.afterStart(ev.Ctx.ProfileName, ev.Ctx.Vars, ev.Ctx.Failed)
}

func (e *interpreted) BeforeProfileKill(ev *hook.Event) error {
	if e.beforeKill == nil {
		return nil
	}
	return e.beforeKill(ev.Ctx.ProfileName, ev.Ctx.Vars)
}

func (e *interpreted) AfterProfileKill(ev *hook.Event) error {
	if e.afterKill == nil {
		return nil
	}
	return e.afterKill(ev.Ctx.ProfileName, ev.Ctx.Vars)
}

func (e *interpreted) OnStage(stage hook.Stage, ev *hook.Event) error {
	if e.onStage == nil {
		return nil
	}
	return e.onStage(string(stage), ev.Ctx.ProfileName, ev.Ctx.Vars)
}
