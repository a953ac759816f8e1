package cli

import (
	"errors"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/summary"
)

// summaryView drives the summary workflow. Unlike entity editors it embeds
// its huh forms directly instead of pushing them on the view stack, so Esc
// can cancel the whole run in one place and in-flight gateway completions
// are matched against the workflow's sequence token.
type summaryView struct {
	state *SharedState
	vp    viewport.Model

	// Active embedded form, nil when none. The fields below back it.
	form       *huh.Form
	formTitle  string
	onComplete func() tea.Cmd

	selection   []string
	planTexts   map[string]*string
	submitPlans bool
	edited      string
}

func newSummaryView(state *SharedState) *summaryView {
	vp := viewport.New(0, 0)
	v := &summaryView{state: state, vp: vp}
	v.resize()
	v.refreshResult()
	return v
}

func (v *summaryView) ID() ViewID    { return ViewSummary }
func (v *summaryView) Title() string { return "Summary" }

func (v *summaryView) ShortHelp() []key.Binding {
	if v.form != nil || v.state.Workflow.InProgress() {
		return []key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "generate")),
	}
	if v.state.Workflow.Result() != "" {
		bindings = append(bindings,
			key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
			key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
			key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "discard")),
		)
	}
	return bindings
}

func (v *summaryView) Init() tea.Cmd { return nil }

// capturesInput reports whether an embedded form is active and should see
// every key event, including letters the idle view binds to shortcuts.
func (v *summaryView) capturesInput() bool { return v.form != nil }

func (v *summaryView) resize() {
	width := v.state.Width
	if width <= 0 {
		width = 80
	}
	height := v.state.Height - 8
	if height < 5 {
		height = 5
	}
	v.vp.Width = width
	v.vp.Height = height
}

func (v *summaryView) refreshResult() {
	result := v.state.Workflow.Result()
	if result == "" {
		v.vp.SetContent(formatter.Dim("No summary yet. Press g to generate one."))
		return
	}
	v.vp.SetContent(result)
	v.vp.GotoTop()
}

// startForm installs an embedded form and returns its init command.
func (v *summaryView) startForm(title string, form *huh.Form, done func() tea.Cmd) tea.Cmd {
	form = form.WithTheme(huhTheme(v.state.Palette()))
	v.form = form
	v.formTitle = title
	v.onComplete = done
	return form.Init()
}

func (v *summaryView) clearForm() {
	v.form = nil
	v.formTitle = ""
	v.onComplete = nil
}

func (v *summaryView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.resize()
		if v.form == nil && !v.state.Workflow.InProgress() {
			v.refreshResult()
		}
		return v, nil

	case plansCheckedMsg:
		return v.handlePlansChecked(msg)

	case summaryReadyMsg:
		if v.state.Workflow.ApplyResult(msg.seq, msg.markdown, time.Now()) {
			v.refreshResult()
			return v, flash("Summary ready")
		}
		v.state.Log.Debug().Int("seq", msg.seq).Msg("dropping stale summary result")
		return v, nil
	}

	if v.form != nil {
		return v.updateForm(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return v.handleKey(keyMsg)
	}
	return v, nil
}

func (v *summaryView) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.clearForm()
		v.state.Workflow.Cancel()
		v.refreshResult()
		return v, nil
	}

	model, cmd := v.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		v.form = f
	}
	if v.form.State == huh.StateCompleted {
		done := v.onComplete
		v.clearForm()
		var next tea.Cmd
		if done != nil {
			next = done()
		}
		return v, tea.Batch(cmd, next)
	}
	return v, cmd
}

func (v *summaryView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	wf := v.state.Workflow

	if wf.InProgress() {
		if msg.Type == tea.KeyEsc {
			wf.Cancel()
			v.refreshResult()
			return v, flash("Cancelled")
		}
		return v, nil
	}

	switch msg.String() {
	case "g":
		if err := wf.Begin(); err != nil {
			return v, flash("A run is already active")
		}
		return v, v.startSelection()
	case "c":
		if result := wf.Result(); result != "" {
			if err := clipboard.WriteAll(result); err != nil {
				v.state.Log.Warn().Err(err).Msg("clipboard copy failed")
				return v, flash("Copy failed: " + err.Error())
			}
			return v, flash("Copied to clipboard")
		}
	case "e":
		if wf.Result() != "" {
			return v, v.startResultEditor()
		}
	case "x":
		if wf.Result() != "" {
			wf.DiscardResult()
			v.refreshResult()
			return v, flash("Summary discarded")
		}
	default:
		var cmd tea.Cmd
		v.vp, cmd = v.vp.Update(msg)
		return v, cmd
	}
	return v, nil
}

// startSelection opens the project selection form with everything
// preselected.
func (v *summaryView) startSelection() tea.Cmd {
	data := v.state.Store.Data()

	options := make([]huh.Option[string], 0, len(data.Projects))
	v.selection = make([]string, 0, len(data.Projects))
	for _, p := range data.Projects {
		options = append(options, huh.NewOption(p.Code+"  "+p.Name, p.ID))
		v.selection = append(v.selection, p.ID)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Projects to cover").
			Description("Everything starts selected. Deselect to narrow the scope.").
			Options(options...).
			Value(&v.selection),
	))

	return v.startForm("Select Scope", form, v.confirmSelection)
}

func (v *summaryView) confirmSelection() tea.Cmd {
	data := v.state.Store.Data()
	seq, err := v.state.Workflow.Confirm(&data, v.selection)
	if errors.Is(err, summary.ErrNoSelection) {
		// Confirmation is blocked, not cancelled: put the form back up.
		return tea.Batch(flash("Select at least one project"), v.startSelection())
	}
	if err != nil {
		v.state.Workflow.Cancel()
		v.refreshResult()
		return flash(err.Error())
	}
	return checkPlansCmd(v.state, seq, v.state.Workflow.Snapshot(), v.state.Workflow.Selection())
}

func (v *summaryView) handlePlansChecked(msg plansCheckedMsg) (tea.Model, tea.Cmd) {
	wf := v.state.Workflow
	seq, applied := wf.ApplyMissing(msg.seq, msg.codes)
	if !applied {
		return v, nil
	}
	if wf.Phase() == summary.PhaseAssembling {
		return v, summarizeCmd(v.state, seq, wf.Snapshot(), wf.Selection(), wf.PlanInputs())
	}
	return v, v.startPlanEntry()
}

// startPlanEntry opens the recovery-plan form, one text field per project
// the check flagged.
func (v *summaryView) startPlanEntry() tea.Cmd {
	wf := v.state.Workflow
	snapshot := wf.Snapshot()

	v.planTexts = map[string]*string{}
	v.submitPlans = true

	fields := make([]huh.Field, 0, len(wf.MissingCodes())+1)
	for _, code := range wf.MissingCodes() {
		title := code
		if snapshot != nil {
			if p := snapshot.ProjectByCode(code); p != nil {
				title = code + "  " + p.Name
			}
		}
		text := ""
		v.planTexts[code] = &text
		fields = append(fields, huh.NewText().
			Title(title).
			Description("Path to Green. Leave blank to omit.").
			Lines(3).
			Value(&text))
	}
	fields = append(fields, huh.NewConfirm().
		Title("Include entered plans?").
		Affirmative("Submit").
		Negative("Skip").
		Value(&v.submitPlans))

	form := huh.NewForm(huh.NewGroup(fields...))
	return v.startForm("Recovery Plans", form, v.submitPlanEntry)
}

func (v *summaryView) submitPlanEntry() tea.Cmd {
	wf := v.state.Workflow
	for code, text := range v.planTexts {
		wf.SetPlan(code, *text)
	}
	v.planTexts = nil

	var seq int
	var ok bool
	if v.submitPlans {
		seq, ok = wf.SubmitPlans()
	} else {
		seq, ok = wf.Skip()
	}
	if !ok {
		return nil
	}
	return summarizeCmd(v.state, seq, wf.Snapshot(), wf.Selection(), wf.PlanInputs())
}

// startResultEditor opens the finished summary for manual touch-ups.
func (v *summaryView) startResultEditor() tea.Cmd {
	v.edited = v.state.Workflow.Result()
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Edit Summary").
			Lines(16).
			Value(&v.edited),
	))
	return v.startForm("Edit Summary", form, func() tea.Cmd {
		v.state.Workflow.SetResult(v.edited)
		v.refreshResult()
		return flash("Summary updated")
	})
}

func (v *summaryView) View() string {
	p := v.state.Palette()

	if v.form != nil {
		return "\n" + p.SectionHeader(v.formTitle) + "\n\n" + v.form.View()
	}

	switch v.state.Workflow.Phase() {
	case summary.PhaseChecking:
		return "\n" + formatter.Dim("Checking recovery plans...") + "\n"
	case summary.PhaseAssembling:
		return "\n" + formatter.Dim("Generating summary...") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(v.vp.View())
	if v.vp.TotalLineCount() > v.vp.Height {
		b.WriteString("\n" + formatter.Dim("↑/↓ to scroll"))
	}
	return b.String()
}
