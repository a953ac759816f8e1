package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/health"
)

// milestonesView is the editable milestones table.
type milestonesView struct {
	state  *SharedState
	cursor int
}

func newMilestonesView(state *SharedState) *milestonesView {
	return &milestonesView{state: state}
}

func (v *milestonesView) ID() ViewID    { return ViewMilestones }
func (v *milestonesView) Title() string { return "Milestones" }

func (v *milestonesView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *milestonesView) Init() tea.Cmd { return nil }

func (v *milestonesView) clampCursor() {
	n := len(v.state.Store.Data().Milestones)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *milestonesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		milestones := v.state.Store.Data().Milestones
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(milestones)-1 {
				v.cursor++
			}
		case "enter", "e":
			if v.cursor < len(milestones) {
				return v, v.editMilestone(milestones[v.cursor].ID)
			}
		case "a":
			m := v.state.Store.AddMilestone()
			v.cursor = len(v.state.Store.Data().Milestones) - 1
			return v, tea.Batch(v.editMilestone(m.ID), refreshViews())
		case "x":
			if v.cursor < len(milestones) {
				name := milestones[v.cursor].Name
				if err := v.state.Store.DeleteMilestone(milestones[v.cursor].ID); err == nil {
					v.clampCursor()
					return v, tea.Batch(refreshViews(), flash("Deleted "+name))
				}
			}
		}
	}
	return v, nil
}

func (v *milestonesView) editMilestone(id string) tea.Cmd {
	data := v.state.Store.Data()
	for i := range data.Milestones {
		if data.Milestones[i].ID == id {
			edited := data.Milestones[i]
			form := milestoneForm(v.state, &edited)
			return startFormCmd(v.state, "Edit Milestone", form, func() tea.Cmd {
				if err := v.state.Store.UpdateMilestone(edited); err != nil {
					return flash("Update failed: " + err.Error())
				}
				return refreshViews()
			})
		}
	}
	return nil
}

func (v *milestonesView) View() string {
	data := v.state.Store.Data()
	p := v.state.Palette()

	if len(data.Milestones) == 0 {
		return "\n" + formatter.Dim("  No milestones. Press a to add one.") + "\n"
	}

	rows := make([][]string, 0, len(data.Milestones))
	for _, m := range data.Milestones {
		project := formatter.Dim("—")
		if owner := data.ProjectByCode(m.ProjectCode); owner != nil {
			project = formatter.Truncate(owner.Name, 24)
		} else if m.ProjectCode != "" {
			project = formatter.Dim(m.ProjectCode + " (dangling)")
		}
		rows = append(rows, []string{
			p.Code.Render(m.Code),
			formatter.Truncate(m.Name, 26),
			project,
			formatter.ShortDate(m.DueDate),
			p.StatusPill(m.Status, health.FamilyMilestone),
		})
	}

	return "\n" + p.RenderTable(
		[]string{"CODE", "NAME", "PROJECT", "DUE", "STATUS"},
		rows,
		v.cursor,
	)
}
