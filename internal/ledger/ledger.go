// Package ledger persists per-day run outcomes and the notify override
// list, and provides the bus extension that records them.
//
// Each calendar day gets its own JSON file named YYYY-MM-DD.json. A day's
// completion record maps profile names to a boolean outcome: true for a
// successful run, false for a failed one, absent for never attempted.
// Records are read-modify-written whole and replaced with an atomic
// rename so a crashed write never truncates an existing day.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// dayFormat is the layout for per-day file stems.
const dayFormat = "2006-01-02"

// Today returns the current day key, e.g. "2026-08-25".
func Today() string {
	return time.Now().Format(dayFormat)
}

// dayOrToday substitutes today's key for an empty day argument.
func dayOrToday(day string) string {
	if day == "" {
		return Today()
	}
	return day
}

// Ledger stores one completion record per calendar day under a state
// directory.
//
// Missing, unreadable, or corrupt day files read as empty records. Losing
// a completion flag only risks a redundant rerun, which beats refusing to
// operate over a damaged file.
type Ledger struct {
	dir string
}

// NewLedger creates a ledger rooted at dir. The directory is created on
// first write, not here.
func NewLedger(dir string) *Ledger {
	return &Ledger{dir: dir}
}

// Dir returns the directory holding the per-day record files.
func (l *Ledger) Dir() string {
	return l.dir
}

// Path returns the file holding the record for day. An empty day selects
// today.
func (l *Ledger) Path(day string) string {
	return filepath.Join(l.dir, dayOrToday(day)+".json")
}

// Load reads the completion record for day. It always returns a usable
// map, substituting an empty record for any file it cannot read or parse.
func (l *Ledger) Load(day string) map[string]bool {
	record := map[string]bool{}
	data, err := os.ReadFile(l.Path(day))
	if err != nil {
		return record
	}
	if err := json.Unmarshal(data, &record); err != nil || record == nil {
		return map[string]bool{}
	}
	return record
}

// Save records the outcome for name on day, creating the day file if
// needed. The whole record is rewritten; last writer wins.
func (l *Ledger) Save(name string, success bool, day string) error {
	record := l.Load(day)
	record[name] = success
	return l.write(day, record)
}

// IsCompleted reports whether name already has an outcome for day. With
// includeFailed false only a successful outcome counts; with includeFailed
// true any recorded outcome does.
func (l *Ledger) IsCompleted(name string, includeFailed bool, day string) bool {
	status, ok := l.Load(day)[name]
	if !ok {
		return false
	}
	if includeFailed {
		return true
	}
	return status
}

// Reset removes the recorded outcome for name on day and reports whether
// one was present.
func (l *Ledger) Reset(name string, day string) (bool, error) {
	record := l.Load(day)
	if _, ok := record[name]; !ok {
		return false, nil
	}
	delete(record, name)
	if err := l.write(day, record); err != nil {
		return false, err
	}
	return true, nil
}

// Incomplete filters all down to the names still worth running on day.
// Completed names are dropped; with includeFailed, failed names count as
// completed too. Never-attempted names come first and previously failed
// names last, each group keeping its input order, so a persistently
// failing profile cannot monopolize automatic retries ahead of untried
// work.
func (l *Ledger) Incomplete(all []string, includeFailed bool, day string) []string {
	record := l.Load(day)

	var neverRun, failed []string
	for _, name := range all {
		status, ok := record[name]
		if ok && (status || includeFailed) {
			continue
		}
		if ok {
			failed = append(failed, name)
		} else {
			neverRun = append(neverRun, name)
		}
	}
	return append(neverRun, failed...)
}

// write marshals and atomically replaces the record file for day.
func (l *Ledger) write(day string, record map[string]bool) error {
	if err := os.MkdirAll(l.dir, 0755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode completion record: %w", err)
	}
	return atomicWriteFile(l.Path(day), data, 0644)
}

// atomicWriteFile writes data to a temporary file in the target directory
// and renames it into place, so readers never observe a partial write.
func atomicWriteFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up the temp file if we fail before the rename
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}
