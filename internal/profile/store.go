package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/tandem-run/tandem/internal/errors"
)

// Recognized part suffixes in profile file stems. A file named
// <name>.emulator.toml holds a standalone emulator block, and
// <name>.automation.toml a standalone automation block; anything else is a
// full profile.
const (
	EmulatorPart   = "emulator"
	AutomationPart = "automation"
)

// templateKey is the sole key a template reference may contain.
const templateKey = "template"

// Entry is a single loaded store item. Exactly one of Profile, Emulator and
// Automation is non-nil, matching the file's part suffix.
type Entry struct {
	// Name is the file stem, including any part suffix.
	Name string
	// Part is "" for a full profile, EmulatorPart or AutomationPart otherwise.
	Part string
	// Path is the file the entry was loaded from.
	Path string

	Profile    *Profile
	Emulator   *Emulator
	Automation *Automation
}

// Validate checks whichever model the entry holds.
func (e *Entry) Validate() error {
	switch {
	case e.Profile != nil:
		return e.Profile.Validate()
	case e.Emulator != nil:
		return e.Emulator.Validate()
	case e.Automation != nil:
		return e.Automation.Validate()
	}
	return nil
}

// Store loads profiles and standalone parts from a directory of TOML files.
// Template references are resolved at load time and results are cached for
// the lifetime of the store.
type Store struct {
	dir string

	mu    sync.RWMutex
	cache map[string]*Entry
}

// NewStore returns a store reading profile files from dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:   dir,
		cache: make(map[string]*Entry),
	}
}

// Dir returns the directory the store reads from.
func (s *Store) Dir() string {
	return s.dir
}

// Load resolves name to a full, template-resolved profile. Loading a part
// stem is a validation error since parts are not runnable on their own.
func (s *Store) Load(name string) (*Profile, error) {
	entry, err := s.LoadEntry(name)
	if err != nil {
		return nil, err
	}
	if entry.Profile == nil {
		return nil, errors.NewValidationError(
			fmt.Sprintf("'%s' is a profile part, not a runnable profile", entry.Name)).
			WithField("profile").
			WithValue(entry.Name)
	}
	return entry.Profile, nil
}

// LoadEntry resolves name to any store item, full profile or part.
// Name resolution tries an exact stem match first; a name without dots also
// matches the first stem (in sorted order) whose prefix before its first dot
// equals the name. A name that resolves nowhere yields a *errors.NotFoundError.
func (s *Store) LoadEntry(name string) (*Entry, error) {
	stem, err := s.resolveName(name)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	cached, ok := s.cache[stem]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	part := partOf(stem)
	raw, err := s.resolveRaw(stem, part, map[string]bool{})
	if err != nil {
		return nil, err
	}

	entry := &Entry{
		Name: stem,
		Part: part,
		Path: filepath.Join(s.dir, stem+".toml"),
	}
	switch part {
	case EmulatorPart:
		entry.Emulator = &Emulator{}
		err = decodeRaw(raw, entry.Emulator)
	case AutomationPart:
		entry.Automation = &Automation{}
		err = decodeRaw(raw, entry.Automation)
	default:
		p := &Profile{}
		err = decodeRaw(raw, p)
		p.Name = stem
		entry.Profile = p
	}
	if err != nil {
		return nil, fmt.Errorf("decoding profile '%s': %w", stem, err)
	}

	s.mu.Lock()
	s.cache[stem] = entry
	s.mu.Unlock()
	return entry, nil
}

// Path returns the file backing name without loading it.
func (s *Store) Path(name string) (string, error) {
	stem, err := s.resolveName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, stem+".toml"), nil
}

// List returns the names of all full profiles, sorted.
func (s *Store) List() ([]string, error) {
	return s.listStems(false)
}

// ListAll returns every profile and part stem, sorted.
func (s *Store) ListAll() ([]string, error) {
	return s.listStems(true)
}

func (s *Store) listStems(includeParts bool) ([]string, error) {
	stems, err := s.stems()
	if err != nil {
		return nil, err
	}
	var names []string
	for _, stem := range stems {
		if !includeParts && partOf(stem) != "" {
			continue
		}
		names = append(names, stem)
	}
	sort.Strings(names)
	return names, nil
}

// stems lists the file stems of every .toml file in the store directory,
// sorted. A missing directory is treated as an empty store.
func (s *Store) stems() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var stems []string
	for _, dirEntry := range dirEntries {
		if dirEntry.IsDir() || !strings.HasSuffix(dirEntry.Name(), ".toml") {
			continue
		}
		stems = append(stems, strings.TrimSuffix(dirEntry.Name(), ".toml"))
	}
	return stems, nil
}

// resolveName maps a requested name to an existing file stem: exact match
// first, then for dot-less names the stem prefix before the first dot.
func (s *Store) resolveName(name string) (string, error) {
	stems, err := s.stems()
	if err != nil {
		return "", err
	}
	for _, stem := range stems {
		if stem == name {
			return stem, nil
		}
	}
	if strings.Contains(name, ".") {
		return "", errors.NewNotFoundError("profile", name)
	}
	for _, stem := range stems {
		if prefix, _, found := strings.Cut(stem, "."); found && prefix == name {
			return stem, nil
		}
	}
	return "", errors.NewNotFoundError("profile", name)
}

// resolveRaw reads the TOML file for stem and resolves template references.
// A part file consisting solely of template = "<base>" chains to the part
// <base>.<part>; a full profile section consisting solely of
// template = "<base>" is replaced by the resolved part <base>.<section>.
// seen carries the stems already on the resolution path so that reference
// cycles fail instead of recursing forever.
func (s *Store) resolveRaw(stem, part string, seen map[string]bool) (map[string]any, error) {
	if seen[stem] {
		return nil, errors.Wrapf(errors.ErrTemplateCycle, "template chain revisits '%s'", stem)
	}
	seen[stem] = true

	data, err := os.ReadFile(filepath.Join(s.dir, stem+".toml"))
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing profile '%s': %w", stem, err)
	}

	if part != "" {
		if _, ok := raw[templateKey]; ok {
			return s.resolveWholeFile(raw, stem, part, seen)
		}
	}

	for key, value := range raw {
		section, ok := value.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := section[templateKey]; !ok {
			continue
		}
		target, err := templateTarget(section, key, stem)
		if err != nil {
			return nil, err
		}
		resolved, err := s.resolveRaw(target+"."+key, key, seen)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Wrapf(errors.ErrTemplateNotFound,
					"template '%s' for section '%s' in '%s'", target, key, stem)
			}
			return nil, err
		}
		raw[key] = resolved
	}
	return raw, nil
}

// resolveWholeFile handles a part file that is a single template reference.
func (s *Store) resolveWholeFile(raw map[string]any, stem, part string, seen map[string]bool) (map[string]any, error) {
	target, err := templateTarget(raw, part, stem)
	if err != nil {
		return nil, err
	}
	resolved, err := s.resolveRaw(target+"."+part, part, seen)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(errors.ErrTemplateNotFound,
				"template '%s' for part '%s'", target, stem)
		}
		return nil, err
	}
	return resolved, nil
}

// templateTarget extracts and checks the target of a template reference:
// the reference must hold the template key alone, with a string value.
func templateTarget(table map[string]any, key, stem string) (string, error) {
	if len(table) != 1 {
		return "", errors.NewValidationError(
			fmt.Sprintf("template reference for '%s' in '%s' has extra keys", key, stem)).
			WithField(key)
	}
	target, ok := table[templateKey].(string)
	if !ok {
		return "", errors.NewValidationError(
			fmt.Sprintf("template reference for '%s' in '%s' must be a string", key, stem)).
			WithField(key)
	}
	if target == "" {
		return "", errors.NewValidationError(
			fmt.Sprintf("template reference for '%s' in '%s' is empty", key, stem)).
			WithField(key)
	}
	return target, nil
}

// partOf extracts the part suffix from a file stem: "daily.emulator" yields
// EmulatorPart. A stem without a recognized suffix is a full profile.
func partOf(stem string) string {
	idx := strings.LastIndex(stem, ".")
	if idx < 0 {
		return ""
	}
	switch suffix := stem[idx+1:]; suffix {
	case EmulatorPart, AutomationPart:
		return suffix
	}
	return ""
}

// decodeRaw round-trips a resolved raw table through TOML into a typed model.
func decodeRaw(raw map[string]any, out any) error {
	data, err := toml.Marshal(raw)
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, out)
}
