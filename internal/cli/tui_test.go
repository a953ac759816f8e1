package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/state"
	"github.com/progdeck/progdeck/internal/summary"
	"github.com/progdeck/progdeck/internal/teatest"
)

// Scripted gateway fakes so TUI flows run without a model endpoint.

type fakeAgent struct {
	reply string
	asked []string
}

func (f *fakeAgent) Ask(_ context.Context, question string, _ []domain.ChatMessage, _ *domain.ProgramData) string {
	f.asked = append(f.asked, question)
	return f.reply
}

type fakePlans struct {
	codes []string
	calls int
}

func (f *fakePlans) DetectMissingPlans(_ context.Context, _ *domain.ProgramData, _ []string) []string {
	f.calls++
	return f.codes
}

type fakeSummaries struct {
	markdown string
	plans    map[string]string
}

func (f *fakeSummaries) Summarize(_ context.Context, _ *domain.ProgramData, _ []string, planContext map[string]string) string {
	f.plans = planContext
	return f.markdown
}

type tuiFixture struct {
	state     *SharedState
	agent     *fakeAgent
	plans     *fakePlans
	summaries *fakeSummaries
}

func newTUIDriver(t *testing.T) (*teatest.Driver, *tuiFixture) {
	t.Helper()

	fx := &tuiFixture{
		agent:     &fakeAgent{reply: "P02 is at risk."},
		plans:     &fakePlans{},
		summaries: &fakeSummaries{markdown: "All projects are fine."},
	}
	fx.state = &SharedState{
		Store:        state.NewStore(domain.SeedProgram()),
		Agent:        fx.agent,
		Plans:        fx.plans,
		Summaries:    fx.summaries,
		Workflow:     summary.New(),
		SectionOrder: DefaultSectionOrder(),
	}
	fx.state.SanitizeHeaderIcon()

	d := teatest.New(t, newAppModel(fx.state), 100, 40)
	d.DrainInit()
	return d, fx
}

func TestDashboardShowsAllSections(t *testing.T) {
	d, _ := newTUIDriver(t)

	view := d.View()
	assert.Contains(t, view, "Program Name")
	assert.Contains(t, view, "SUMMARY")
	assert.Contains(t, view, "TIMELINE")
	assert.Contains(t, view, "PROJECTS")
	assert.Contains(t, view, "RESOURCES")
	assert.Contains(t, view, "MILESTONES")
	assert.Contains(t, view, "DELIVERABLES")
	assert.Contains(t, view, "Mobile App Redesign")
}

func TestJumpKeysOpenAndEscReturns(t *testing.T) {
	d, _ := newTUIDriver(t)

	d.Press('p')
	assert.Contains(t, d.View(), "Dashboard › Projects")
	assert.Contains(t, d.View(), "Cloud Migration")

	d.Esc()
	assert.NotContains(t, d.View(), "Dashboard › Projects")
}

func TestDashboardEnterOpensSectionUnderCursor(t *testing.T) {
	d, _ := newTUIDriver(t)

	// Default order: summary, timeline, projects, ...
	d.Down()
	d.Down()
	d.Enter()
	assert.Contains(t, d.View(), "Dashboard › Projects")
}

func TestDeleteProjectFromTable(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('p')
	d.Press('x')

	data := fx.state.Store.Data()
	require.Len(t, data.Projects, 1)
	assert.Equal(t, "Cloud Migration", data.Projects[0].Name)
	assert.Contains(t, d.View(), "Deleted Mobile App Redesign")
}

func TestAddProjectOpensEditForm(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('p')
	d.Press('a')

	require.Len(t, fx.state.Store.Data().Projects, 3)
	assert.Equal(t, "P03", fx.state.Store.Data().Projects[2].Code)
	assert.Contains(t, d.View(), "Edit Project")

	// Cancelling the form keeps the freshly added record.
	d.Esc()
	assert.Len(t, fx.state.Store.Data().Projects, 3)
	assert.Contains(t, d.View(), "New Project")
}

func TestFormCapturesGlobalKeys(t *testing.T) {
	d, _ := newTUIDriver(t)

	d.Press('p')
	d.Enter() // edit first project
	d.Press('q')

	assert.False(t, d.Quitting, "typing q inside a form must not quit")
}

func TestTimelineVisibilityToggles(t *testing.T) {
	d, _ := newTUIDriver(t)

	d.Press('t')
	view := d.View()
	assert.Contains(t, view, "VISIBLE PROJECTS")
	assert.Contains(t, view, "P01")

	d.Press('n')
	assert.Contains(t, d.View(), "All projects hidden.")

	d.Press('a')
	assert.NotContains(t, d.View(), "All projects hidden.")
}

func TestChatRoundTrip(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('c')
	d.Type("what is at risk?")
	d.Enter()

	require.Equal(t, []string{"what is at risk?"}, fx.agent.asked)
	view := d.View()
	assert.Contains(t, view, "what is at risk?")
	assert.Contains(t, view, "P02 is at risk.")
}

func TestChatQuestionLettersDoNotQuit(t *testing.T) {
	d, _ := newTUIDriver(t)

	d.Press('c')
	d.Type("quick question")
	assert.False(t, d.Quitting)
}

func TestSummaryFlowWithoutMissingPlans(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('s')
	assert.Contains(t, d.View(), "No summary yet.")

	d.Press('g')
	assert.Contains(t, d.View(), "Projects to cover")

	// Confirm the preselected-everything selection. The plan check returns
	// no missing codes, so generation runs straight through.
	d.Enter()

	assert.Equal(t, 1, fx.plans.calls)
	view := d.View()
	assert.Contains(t, view, "**As of:")
	assert.Contains(t, view, "All projects are fine.")
	assert.Equal(t, summary.PhaseIdle, fx.state.Workflow.Phase())
}

func TestSummaryEscCancelsSelection(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('s')
	d.Press('g')
	d.Esc()

	assert.Equal(t, summary.PhaseIdle, fx.state.Workflow.Phase())
	assert.Equal(t, 0, fx.plans.calls)
	assert.Contains(t, d.View(), "No summary yet.")
}

func TestSummaryDiscard(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('s')
	d.Press('g')
	d.Enter()
	require.Contains(t, d.View(), "All projects are fine.")

	d.Press('x')
	assert.Contains(t, d.View(), "No summary yet.")
	assert.Empty(t, fx.state.Workflow.Result())
}

func TestSummaryDiscardAfterRegenerateRestoresPrevious(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('s')
	d.Press('g')
	d.Enter()
	require.Contains(t, d.View(), "All projects are fine.")

	fx.summaries.markdown = "Second pass."
	d.Press('g')
	d.Enter()
	require.Contains(t, d.View(), "Second pass.")

	d.Press('x')
	view := d.View()
	assert.Contains(t, view, "All projects are fine.")
	assert.NotContains(t, view, "Second pass.")
}

func TestSummaryEmptySelectionReopensForm(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press('s')
	d.Press('g')

	// Deselect both seeded projects, then try to confirm.
	d.Press('x')
	d.Down()
	d.Press('x')
	d.Enter()

	assert.Equal(t, summary.PhaseSelecting, fx.state.Workflow.Phase())
	assert.Equal(t, 0, fx.plans.calls)
	view := d.View()
	assert.Contains(t, view, "Projects to cover")
	assert.Contains(t, view, "Select at least one project")
}

func TestSettingsMoveSectionDown(t *testing.T) {
	d, fx := newTUIDriver(t)

	d.Press(',')
	// Move cursor onto the first section row.
	for range settingRows {
		d.Down()
	}
	d.Press('J')

	require.Equal(t, SectionTimeline, fx.state.SectionOrder[0])
	assert.Equal(t, SectionSummary, fx.state.SectionOrder[1])
}

func TestQuitKey(t *testing.T) {
	d, _ := newTUIDriver(t)
	d.Press('q')
	assert.True(t, d.Quitting)
}
