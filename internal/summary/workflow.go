// Package summary drives the executive-summary generation workflow: select
// projects, check troubled ones for recovery plans, collect plans the data
// lacks, then assemble the summary. The workflow itself is synchronous state;
// gateway calls run elsewhere and report back with a sequence token so stale
// completions from an abandoned run cannot corrupt a newer one.
package summary

import (
	"errors"
	"time"

	"github.com/progdeck/progdeck/internal/domain"
)

// Phase is the workflow's current step.
type Phase int

const (
	// PhaseIdle means no run is active. A finished result may be present.
	PhaseIdle Phase = iota
	// PhaseSelecting means the user is choosing which projects to cover.
	PhaseSelecting
	// PhaseChecking means a recovery-plan check is in flight.
	PhaseChecking
	// PhaseAwaitingPlans means the user is entering missing recovery plans.
	PhaseAwaitingPlans
	// PhaseAssembling means summary generation is in flight.
	PhaseAssembling
)

var (
	// ErrBusy is returned when a new run is started while one is active.
	ErrBusy = errors.New("summary generation already in progress")
	// ErrNoSelection is returned when a run is confirmed with no projects.
	ErrNoSelection = errors.New("no projects selected")
)

// asOfLayout renders the completion stamp date.
const asOfLayout = "01/02/06"

// Stamp prefixes generated markdown with its as-of date line.
func Stamp(markdown string, now time.Time) string {
	return "**As of: " + now.Format(asOfLayout) + "**\n\n" + markdown
}

// Workflow holds one summary run's state. It is not safe for concurrent use;
// drive it from a single goroutine (the TUI update loop) and feed gateway
// completions back through the seq-checked Apply methods.
type Workflow struct {
	phase Phase
	seq   int

	snapshot   *domain.ProgramData
	selection  []string
	missing    []string
	planInputs map[string]string

	result string
	// prior holds the summary as it stood before the last generation
	// replaced it, so a discard can fall back to it.
	prior string
}

// New returns a Workflow in the idle phase.
func New() *Workflow {
	return &Workflow{}
}

// Phase returns the current phase.
func (w *Workflow) Phase() Phase { return w.phase }

// InProgress reports whether a gateway call is outstanding. While true, a new
// run cannot start.
func (w *Workflow) InProgress() bool {
	return w.phase == PhaseChecking || w.phase == PhaseAssembling
}

// Result returns the last completed summary, empty if none.
func (w *Workflow) Result() string { return w.result }

// Snapshot returns the program data frozen at confirmation time. Gateway
// calls use this copy so concurrent edits to live data cannot shift the
// summary scope mid-run.
func (w *Workflow) Snapshot() *domain.ProgramData { return w.snapshot }

// Selection returns the confirmed project ids for the active run.
func (w *Workflow) Selection() []string { return w.selection }

// MissingCodes returns the project codes still awaiting a recovery plan.
func (w *Workflow) MissingCodes() []string { return w.missing }

// PlanInputs returns the user-entered recovery plans keyed by project code.
// Blank entries are excluded.
func (w *Workflow) PlanInputs() map[string]string {
	out := make(map[string]string, len(w.planInputs))
	for code, text := range w.planInputs {
		if text != "" {
			out[code] = text
		}
	}
	return out
}

// Begin starts a new run, entering the selection phase. The previous result
// is kept until a new one replaces it.
func (w *Workflow) Begin() error {
	if w.InProgress() {
		return ErrBusy
	}
	w.phase = PhaseSelecting
	w.selection = nil
	w.missing = nil
	w.planInputs = nil
	w.snapshot = nil
	return nil
}

// Confirm locks in the selection and freezes a snapshot of data, moving to
// the checking phase. The returned sequence token must accompany the
// recovery-plan check result. An empty selection is rejected.
func (w *Workflow) Confirm(data *domain.ProgramData, selectedIDs []string) (int, error) {
	if w.phase != PhaseSelecting {
		return 0, ErrBusy
	}
	if len(selectedIDs) == 0 {
		return 0, ErrNoSelection
	}

	w.seq++
	w.phase = PhaseChecking
	w.selection = append([]string(nil), selectedIDs...)
	cloned := data.Clone()
	w.snapshot = &cloned
	return w.seq, nil
}

// ApplyMissing feeds back the recovery-plan check. A stale token (from a run
// since cancelled or superseded) is ignored and false is returned. With no
// missing codes the run advances straight to assembling and nextSeq carries
// the token for the generation call; otherwise nextSeq is zero and the run
// waits for plan input.
func (w *Workflow) ApplyMissing(seq int, codes []string) (nextSeq int, applied bool) {
	if w.phase != PhaseChecking || seq != w.seq {
		return 0, false
	}

	if len(codes) == 0 {
		w.seq++
		w.phase = PhaseAssembling
		return w.seq, true
	}

	w.phase = PhaseAwaitingPlans
	w.missing = append([]string(nil), codes...)
	w.planInputs = make(map[string]string, len(codes))
	return 0, true
}

// SetPlan records a recovery plan for one project code during the awaiting
// phase. Unknown codes are ignored.
func (w *Workflow) SetPlan(code, text string) {
	if w.phase != PhaseAwaitingPlans {
		return
	}
	for _, c := range w.missing {
		if c == code {
			w.planInputs[code] = text
			return
		}
	}
}

// SubmitPlans advances from awaiting plans to assembling, keeping whatever
// plans were entered. Blank plans are allowed; the summary simply goes out
// without them.
func (w *Workflow) SubmitPlans() (int, bool) {
	return w.advanceToAssembling()
}

// Skip advances to assembling without any entered plans.
func (w *Workflow) Skip() (int, bool) {
	if w.phase != PhaseAwaitingPlans {
		return 0, false
	}
	w.planInputs = nil
	return w.advanceToAssembling()
}

func (w *Workflow) advanceToAssembling() (int, bool) {
	if w.phase != PhaseAwaitingPlans {
		return 0, false
	}
	w.seq++
	w.phase = PhaseAssembling
	return w.seq, true
}

// ApplyResult completes the run with the generated markdown, stamping it with
// the as-of date. A stale token is ignored.
func (w *Workflow) ApplyResult(seq int, markdown string, now time.Time) bool {
	if w.phase != PhaseAssembling || seq != w.seq {
		return false
	}
	w.prior = w.result
	w.result = Stamp(markdown, now)
	w.phase = PhaseIdle
	w.snapshot = nil
	w.missing = nil
	w.planInputs = nil
	return true
}

// SetResult replaces the completed summary text, keeping the existing stamp
// line intact if the caller included it. Used by the result editor. Ignored
// while a run is active.
func (w *Workflow) SetResult(text string) {
	if w.phase != PhaseIdle {
		return
	}
	w.result = text
}

// DiscardResult restores the summary that stood before the last generation.
// Discarding the first summary of a session restores the empty state.
func (w *Workflow) DiscardResult() {
	if w.phase != PhaseIdle {
		return
	}
	w.result = w.prior
}

// Cancel abandons the active run. Any in-flight gateway completion becomes
// stale and will be ignored. The last completed result is kept.
func (w *Workflow) Cancel() {
	w.seq++
	w.phase = PhaseIdle
	w.snapshot = nil
	w.selection = nil
	w.missing = nil
	w.planInputs = nil
}
