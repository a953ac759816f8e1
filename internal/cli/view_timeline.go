package cli

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/health"
	"github.com/progdeck/progdeck/internal/timeline"
)

// timelineView renders the program timeline with a per-project visibility
// filter. New projects start visible; hidden ids are remembered instead of
// visible ones so additions show up without a toggle.
type timelineView struct {
	state  *SharedState
	cursor int
	hidden map[string]bool
	now    func() time.Time
}

func newTimelineView(state *SharedState) *timelineView {
	return &timelineView{
		state:  state,
		hidden: map[string]bool{},
		now:    time.Now,
	}
}

func (v *timelineView) ID() ViewID    { return ViewTimeline }
func (v *timelineView) Title() string { return "Timeline" }

func (v *timelineView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("space"), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "none")),
	}
}

func (v *timelineView) Init() tea.Cmd { return nil }

func (v *timelineView) visibleIDs() map[string]bool {
	visible := map[string]bool{}
	for _, p := range v.state.Store.Data().Projects {
		if !v.hidden[p.ID] {
			visible[p.ID] = true
		}
	}
	return visible
}

func (v *timelineView) clampCursor() {
	n := len(v.state.Store.Data().Projects)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *timelineView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		projects := v.state.Store.Data().Projects
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(projects)-1 {
				v.cursor++
			}
		case " ", "space":
			if v.cursor < len(projects) {
				id := projects[v.cursor].ID
				v.hidden[id] = !v.hidden[id]
			}
		case "a":
			v.hidden = map[string]bool{}
		case "n":
			for _, p := range projects {
				v.hidden[p.ID] = true
			}
		}
	}
	return v, nil
}

func (v *timelineView) View() string {
	data := v.state.Store.Data()
	p := v.state.Palette()

	if len(data.Projects) == 0 {
		return "\n" + formatter.Dim("  No projects to plot.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n" + p.SectionHeader("Visible Projects") + "\n")
	for i, proj := range data.Projects {
		marker := "  "
		if i == v.cursor {
			marker = p.Primary.Render("▸ ")
		}
		box := "[✓]"
		if v.hidden[proj.ID] {
			box = formatter.Dim("[ ]")
		}
		line := marker + box + " " + p.Code.Render(proj.Code) + " " +
			formatter.Truncate(proj.Name, 32) + "  " +
			p.StatusDot(proj.Status, health.FamilyProject)
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	proj, ok := timeline.Project(&data, v.visibleIDs(), v.now())
	if !ok {
		b.WriteString(formatter.Dim("  All projects hidden.") + "\n")
		return b.String()
	}

	chartWidth := v.state.Width - 28
	if chartWidth < 20 {
		chartWidth = 20
	}
	b.WriteString(p.RenderTimeline(proj, chartWidth))
	return b.String()
}
