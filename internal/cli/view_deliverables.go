package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/health"
)

// deliverablesView is the editable deliverables table.
type deliverablesView struct {
	state  *SharedState
	cursor int
}

func newDeliverablesView(state *SharedState) *deliverablesView {
	return &deliverablesView{state: state}
}

func (v *deliverablesView) ID() ViewID    { return ViewDeliverables }
func (v *deliverablesView) Title() string { return "Deliverables" }

func (v *deliverablesView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
	}
}

func (v *deliverablesView) Init() tea.Cmd { return nil }

func (v *deliverablesView) clampCursor() {
	n := len(v.state.Store.Data().Deliverables)
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *deliverablesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.clampCursor()
		return v, nil

	case tea.KeyMsg:
		deliverables := v.state.Store.Data().Deliverables
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < len(deliverables)-1 {
				v.cursor++
			}
		case "enter", "e":
			if v.cursor < len(deliverables) {
				return v, v.editDeliverable(deliverables[v.cursor].ID)
			}
		case "a":
			d := v.state.Store.AddDeliverable()
			v.cursor = len(v.state.Store.Data().Deliverables) - 1
			return v, tea.Batch(v.editDeliverable(d.ID), refreshViews())
		case "x":
			if v.cursor < len(deliverables) {
				name := deliverables[v.cursor].Name
				if err := v.state.Store.DeleteDeliverable(deliverables[v.cursor].ID); err == nil {
					v.clampCursor()
					return v, tea.Batch(refreshViews(), flash("Deleted "+name))
				}
			}
		}
	}
	return v, nil
}

func (v *deliverablesView) editDeliverable(id string) tea.Cmd {
	data := v.state.Store.Data()
	for i := range data.Deliverables {
		if data.Deliverables[i].ID == id {
			edited := data.Deliverables[i]
			edited.Links = append([]string{}, data.Deliverables[i].Links...)
			links := strings.Join(edited.Links, "\n")
			form := deliverableForm(v.state, &edited, &links)
			return startFormCmd(v.state, "Edit Deliverable", form, func() tea.Cmd {
				edited.Links = splitLinks(links)
				if err := v.state.Store.UpdateDeliverable(edited); err != nil {
					return flash("Update failed: " + err.Error())
				}
				return refreshViews()
			})
		}
	}
	return nil
}

func (v *deliverablesView) View() string {
	data := v.state.Store.Data()
	p := v.state.Palette()

	if len(data.Deliverables) == 0 {
		return "\n" + formatter.Dim("  No deliverables. Press a to add one.") + "\n"
	}

	rows := make([][]string, 0, len(data.Deliverables))
	for _, d := range data.Deliverables {
		project := formatter.Dim("—")
		if owner := data.ProjectByCode(d.ProjectCode); owner != nil {
			project = formatter.Truncate(owner.Name, 22)
		} else if d.ProjectCode != "" {
			project = formatter.Dim(d.ProjectCode + " (dangling)")
		}
		links := formatter.Dim("—")
		if n := len(d.Links); n > 0 {
			links = fmt.Sprintf("%d", n)
		}
		rows = append(rows, []string{
			p.Code.Render(d.Code),
			formatter.Truncate(d.Name, 26),
			project,
			formatter.ShortDate(d.DueDate),
			p.StatusPill(d.Status, health.FamilyDeliverable),
			links,
		})
	}

	return "\n" + p.RenderTable(
		[]string{"CODE", "NAME", "PROJECT", "DUE", "STATUS", "LINKS"},
		rows,
		v.cursor,
	)
}
