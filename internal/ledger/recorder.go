package ledger

import (
	"fmt"
	"io"
	"os"

	"github.com/tandem-run/tandem/internal/hook"
)

// Recorder bridges the hook bus to the ledger. Registered as a built-in
// extension, it vetoes runs already completed today, resets records on
// demand, and writes the outcome of every tracked run back to the day's
// record.
//
// Recognized run vars:
//
//	by-completion=true     enable completion gating and outcome recording
//	include-failed=true    treat a failed outcome as completed when gating
//	reset-completion=true  clear today's outcome for the profile first
type Recorder struct {
	ledger *Ledger
	notify *NotifyList
	out    io.Writer
}

var (
	_ hook.Extension       = (*Recorder)(nil)
	_ hook.RunGate         = (*Recorder)(nil)
	_ hook.StartedObserver = (*Recorder)(nil)
)

// NewRecorder wires a recorder to its ledger and notify list. Status
// lines are written to out; nil means os.Stdout.
func NewRecorder(ledger *Ledger, notify *NotifyList, out io.Writer) *Recorder {
	if out == nil {
		out = os.Stdout
	}
	return &Recorder{ledger: ledger, notify: notify, out: out}
}

// Name implements hook.Extension.
func (r *Recorder) Name() string {
	return "completion"
}

// AllowRun implements hook.RunGate. A reset-completion var is honored
// before the completion check, so passing both flags resets the record
// and then runs.
func (r *Recorder) AllowRun(ev *hook.Event) (bool, error) {
	name := ev.Ctx.ProfileName
	if name == "" {
		return true, nil
	}

	if ev.Ctx.Flag("reset-completion") {
		reset, err := r.ledger.Reset(name, "")
		if err != nil {
			return true, err
		}
		if reset {
			r.printf("Reset completion status for '%s'.", name)
		} else {
			r.printf("Profile '%s' was not marked as completed.", name)
		}
	}

	if !ev.Ctx.Flag("by-completion") {
		return true, nil
	}

	if r.ledger.IsCompleted(name, ev.Ctx.Flag("include-failed"), "") {
		statusText := "with failure"
		if r.ledger.Load("")[name] {
			statusText = "successfully"
		}
		r.printf("Profile '%s' already completed today %s.", name, statusText)
		r.printf("Completion file: %s", r.ledger.Path(""))
		r.printf("Skipping execution.")
		return false, nil
	}

	r.printf("Profile '%s' not yet completed today.", name)
	r.printf("Will track completion after run.")
	return true, nil
}

// AfterProfileStart implements hook.StartedObserver. It runs once after a
// successful start and possibly again through the failure notification
// path with ev.Ctx.Failed set, overwriting the day's outcome each time.
// A failed run whose profile is on today's notify list is recorded as a
// success: such automations are trusted to exit early on purpose.
func (r *Recorder) AfterProfileStart(ev *hook.Event) error {
	if !ev.Ctx.Flag("by-completion") {
		return nil
	}
	name := ev.Ctx.ProfileName
	if name == "" {
		return nil
	}

	failed := ev.Ctx.Failed
	if failed && r.notify.Contains(name, "") {
		r.printf("Profile '%s' is on today's notify list.", name)
		r.printf("Treating early exit as successful completion.")
		failed = false
	}

	if err := r.ledger.Save(name, !failed, ""); err != nil {
		return err
	}

	if failed {
		r.printf("Marked '%s' as failed for today.", name)
	} else {
		r.printf("Marked '%s' as completed successfully for today.", name)
	}
	return nil
}

func (r *Recorder) printf(format string, args ...any) {
	fmt.Fprintf(r.out, "[completion] "+format+"\n", args...)
}
