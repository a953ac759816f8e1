package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/health"
)

// projectsView is the editable projects table.
type projectsView struct {
	state  *SharedState
	cursor int
}

func newProjectsView(state *SharedState) *projectsView {
	return &projectsView{state: state}
}

func (v *projectsView) ID() ViewID    { return ViewProjects }
func (v *projectsView) Title() string { return "Projects" }

func (v *projectsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *projectsView) Init() tea.Cmd { return nil }

func (v *projectsView) clampCursor() {
	n := len(v.state.Store.Data().Projects)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *projectsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		case "enter", "e":
			if v.cursor < len(projects) {
				return v, v.editProject(projects[v.cursor].ID)
			}
		case "a":
			p := v.state.Store.AddProject()
			v.cursor = len(v.state.Store.Data().Projects) - 1
			return v, tea.Batch(v.editProject(p.ID), refreshViews())
		case "x":
			if v.cursor < len(projects) {
				name := projects[v.cursor].Name
				if err := v.state.Store.DeleteProject(projects[v.cursor].ID); err == nil {
					v.clampCursor()
					return v, tea.Batch(refreshViews(), flash("Deleted "+name))
				}
			}
		}
	}
	return v, nil
}

// editProject opens the edit form bound to a copy of the project; the store
// only sees it on submit.
func (v *projectsView) editProject(id string) tea.Cmd {
	data := v.state.Store.Data()
	p := data.ProjectByID(id)
	if p == nil {
		return nil
	}
	edited := *p
	form := projectForm(v.state, &edited)
	return startFormCmd(v.state, "Edit Project", form, func() tea.Cmd {
		if err := v.state.Store.UpdateProject(edited); err != nil {
			return flash("Update failed: " + err.Error())
		}
		return refreshViews()
	})
}

func (v *projectsView) View() string {
	data := v.state.Store.Data()
	p := v.state.Palette()

	if len(data.Projects) == 0 {
		return "\n" + formatter.Dim("  No projects. Press a to add one.") + "\n"
	}

	rows := make([][]string, 0, len(data.Projects))
	for _, project := range data.Projects {
		rows = append(rows, []string{
			p.Code.Render(project.Code),
			formatter.Truncate(project.Name, 28),
			formatter.ShortDate(project.CompletionDate),
			p.StatusPill(project.Status, health.FamilyProject),
			formatter.Truncate(project.StatusDetails, 36),
		})
	}

	return "\n" + p.RenderTable(
		[]string{"CODE", "NAME", "TARGET", "STATUS", "DETAILS"},
		rows,
		v.cursor,
	)
}
