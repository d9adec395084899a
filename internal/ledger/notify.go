package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// NotifyList stores the per-day set of profiles whose early process exit
// is trusted as intentional. Like the completion record it keeps one JSON
// file per day, here an array of profile names, and reads missing or
// corrupt files as empty. Entries expire by day rollover, never
// explicitly.
type NotifyList struct {
	dir string
}

// NewNotifyList creates a notify list rooted at dir.
func NewNotifyList(dir string) *NotifyList {
	return &NotifyList{dir: dir}
}

// Path returns the file holding the list for day. An empty day selects
// today.
func (n *NotifyList) Path(day string) string {
	return filepath.Join(n.dir, dayOrToday(day)+".json")
}

// Names returns the profiles on day's list in insertion order.
func (n *NotifyList) Names(day string) []string {
	data, err := os.ReadFile(n.Path(day))
	if err != nil {
		return nil
	}
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil
	}
	return names
}

// Contains reports whether name is on day's list.
func (n *NotifyList) Contains(name string, day string) bool {
	return slices.Contains(n.Names(day), name)
}

// Add puts name on day's list and reports whether it was newly added.
// Adding a name that is already present is a no-op.
func (n *NotifyList) Add(name string, day string) (bool, error) {
	names := n.Names(day)
	if slices.Contains(names, name) {
		return false, nil
	}
	names = append(names, name)

	if err := os.MkdirAll(n.dir, 0755); err != nil {
		return false, fmt.Errorf("failed to create notify directory: %w", err)
	}
	data, err := json.MarshalIndent(names, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode notify list: %w", err)
	}
	if err := atomicWriteFile(n.Path(day), data, 0644); err != nil {
		return false, err
	}
	return true, nil
}
