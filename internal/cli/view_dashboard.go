package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/health"
	"github.com/progdeck/progdeck/internal/timeline"
)

// sectionPreviewRows caps how many records each dashboard section shows.
const sectionPreviewRows = 5

// dashboardView is the home screen: every section rendered condensed, in the
// user's configured order. Enter drills into the section under the cursor.
type dashboardView struct {
	state  *SharedState
	cursor int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "Dashboard" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("p", "r", "m", "d", "t", "s"), key.WithHelp("p/r/m/d/t/s", "jump")),
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "assistant")),
		key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

func sectionView(state *SharedState, id SectionID) View {
	switch id {
	case SectionSummary:
		return newSummaryView(state)
	case SectionTimeline:
		return newTimelineView(state)
	case SectionProjects:
		return newProjectsView(state)
	case SectionResources:
		return newResourcesView(state)
	case SectionMilestones:
		return newMilestonesView(state)
	case SectionDeliverables:
		return newDeliverablesView(state)
	}
	return nil
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if v.cursor >= len(v.state.SectionOrder) {
			v.cursor = len(v.state.SectionOrder) - 1
		}
		if v.cursor < 0 {
			v.cursor = 0
		}
		return v, nil

	case tea.KeyMsg:
		order := v.state.SectionOrder
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(order)-1 {
				v.cursor++
			}
		case "enter":
			if v.cursor < len(order) {
				if next := sectionView(v.state, order[v.cursor]); next != nil {
					return v, pushView(next)
				}
			}
		case "p":
			return v, pushView(newProjectsView(v.state))
		case "r":
			return v, pushView(newResourcesView(v.state))
		case "m":
			return v, pushView(newMilestonesView(v.state))
		case "d":
			return v, pushView(newDeliverablesView(v.state))
		case "t":
			return v, pushView(newTimelineView(v.state))
		case "s":
			return v, pushView(newSummaryView(v.state))
		case "c":
			return v, pushView(newChatView(v.state))
		case ",":
			return v, pushView(newSettingsView(v.state))
		}
	}
	return v, nil
}

func (v *dashboardView) View() string {
	var b strings.Builder
	for i, section := range v.state.SectionOrder {
		b.WriteString("\n")
		b.WriteString(v.renderSection(section, i == v.cursor))
	}
	return b.String()
}

func (v *dashboardView) renderSection(id SectionID, selected bool) string {
	p := v.state.Palette()
	data := v.state.Store.Data()

	marker := "  "
	if selected {
		marker = p.Primary.Render("▸ ")
	}

	var b strings.Builder
	header := func(text string) {
		b.WriteString(marker + p.SectionHeader(text) + "\n")
	}
	line := func(text string) {
		b.WriteString("    " + text + "\n")
	}
	overflow := func(total int) {
		if total > sectionPreviewRows {
			line(formatter.Dim(fmt.Sprintf("… %d more", total-sectionPreviewRows)))
		}
	}

	switch id {
	case SectionSummary:
		header("Summary")
		result := v.state.Workflow.Result()
		if result == "" {
			line(formatter.Dim("No summary yet."))
			break
		}
		first := result
		if idx := strings.IndexByte(first, '\n'); idx >= 0 {
			first = first[:idx]
		}
		line(formatter.Truncate(first, 70))

	case SectionTimeline:
		header("Timeline")
		visible := map[string]bool{}
		for _, proj := range data.Projects {
			visible[proj.ID] = true
		}
		proj, ok := timeline.Project(&data, visible, time.Now())
		if !ok {
			line(formatter.Dim("No projects to plot."))
			break
		}
		line(fmt.Sprintf("%s – %s  %s",
			proj.Range.Start.Format("Jan 06"),
			proj.Range.End.Format("Jan 06"),
			formatter.Dim(fmt.Sprintf("%d projects, %d milestones", len(proj.Projects), len(proj.Milestones)))))

	case SectionProjects:
		header("Projects")
		if len(data.Projects) == 0 {
			line(formatter.Dim("None."))
		}
		for i, rec := range data.Projects {
			if i == sectionPreviewRows {
				break
			}
			line(p.Code.Render(rec.Code) + " " +
				formatter.Truncate(rec.Name, 34) + "  " +
				p.StatusDot(rec.Status, health.FamilyProject))
		}
		overflow(len(data.Projects))

	case SectionResources:
		header("Resources")
		if len(data.Resources) == 0 {
			line(formatter.Dim("None."))
		}
		for i, rec := range data.Resources {
			if i == sectionPreviewRows {
				break
			}
			role := rec.RoleCode
			if role == "" {
				role = "—"
			}
			line(p.Code.Render(role) + " " +
				formatter.Truncate(rec.Name, 28) + "  " +
				formatter.Dim(strings.Join(rec.Assignments, " ")))
		}
		overflow(len(data.Resources))

	case SectionMilestones:
		header("Milestones")
		if len(data.Milestones) == 0 {
			line(formatter.Dim("None."))
		}
		for i, rec := range data.Milestones {
			if i == sectionPreviewRows {
				break
			}
			line(p.Code.Render(rec.Code) + " " +
				formatter.Truncate(rec.Name, 30) + "  " +
				formatter.ShortDate(rec.DueDate) + "  " +
				p.StatusDot(rec.Status, health.FamilyMilestone))
		}
		overflow(len(data.Milestones))

	case SectionDeliverables:
		header("Deliverables")
		if len(data.Deliverables) == 0 {
			line(formatter.Dim("None."))
		}
		for i, rec := range data.Deliverables {
			if i == sectionPreviewRows {
				break
			}
			line(p.Code.Render(rec.Code) + " " +
				formatter.Truncate(rec.Name, 30) + "  " +
				formatter.ShortDate(rec.DueDate) + "  " +
				p.StatusDot(rec.Status, health.FamilyDeliverable))
		}
		overflow(len(data.Deliverables))
	}

	return b.String()
}
