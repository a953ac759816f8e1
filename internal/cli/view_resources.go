package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/domain"
)

// resourcesView is the editable team roster table.
type resourcesView struct {
	state  *SharedState
	cursor int
}

func newResourcesView(state *SharedState) *resourcesView {
	return &resourcesView{state: state}
}

func (v *resourcesView) ID() ViewID    { return ViewResources }
func (v *resourcesView) Title() string { return "Resources" }

func (v *resourcesView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *resourcesView) Init() tea.Cmd { return nil }

func (v *resourcesView) clampCursor() {
	n := len(v.state.Store.Data().Resources)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *resourcesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		resources := v.state.Store.Data().Resources
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(resources)-1 {
				v.cursor++
			}
		case "enter", "e":
			if v.cursor < len(resources) {
				return v, v.editResource(resources[v.cursor].ID)
			}
		case "a":
			r := v.state.Store.AddResource()
			v.cursor = len(v.state.Store.Data().Resources) - 1
			return v, tea.Batch(v.editResource(r.ID), refreshViews())
		case "x":
			if v.cursor < len(resources) {
				name := resources[v.cursor].Name
				if err := v.state.Store.DeleteResource(resources[v.cursor].ID); err == nil {
					v.clampCursor()
					return v, tea.Batch(refreshViews(), flash("Deleted "+name))
				}
			}
		}
	}
	return v, nil
}

func (v *resourcesView) editResource(id string) tea.Cmd {
	data := v.state.Store.Data()
	var edited *domain.Resource
	for i := range data.Resources {
		if data.Resources[i].ID == id {
			c := data.Resources[i]
			c.Assignments = append([]string(nil), data.Resources[i].Assignments...)
			edited = &c
			break
		}
	}
	if edited == nil {
		return nil
	}
	form := resourceForm(v.state, edited)
	return startFormCmd(v.state, "Edit Resource", form, func() tea.Cmd {
		if err := v.state.Store.UpdateResource(*edited); err != nil {
			return flash("Update failed: " + err.Error())
		}
		return refreshViews()
	})
}

func (v *resourcesView) View() string {
	data := v.state.Store.Data()
	p := v.state.Palette()

	if len(data.Resources) == 0 {
		return "\n" + formatter.Dim("  No resources. Press a to add one.") + "\n"
	}

	rows := make([][]string, 0, len(data.Resources))
	for _, r := range data.Resources {
		assignments := formatter.Dim("—")
		if len(r.Assignments) > 0 {
			assignments = strings.Join(r.Assignments, ", ")
		}
		roleCode := r.RoleCode
		if roleCode == "" {
			roleCode = formatter.Dim("—")
		} else {
			roleCode = p.Code.Render(roleCode)
		}
		rows = append(rows, []string{
			formatter.Truncate(r.Name, 24),
			formatter.Truncate(r.Role, 20),
			roleCode,
			r.Allocation,
			assignments,
		})
	}

	return "\n" + p.RenderTable(
		[]string{"NAME", "ROLE", "CODE", "ALLOC", "PROJECTS"},
		rows,
		v.cursor,
	)
}
