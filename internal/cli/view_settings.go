package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/domain"
)

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

func validateHexColor(s string) error {
	if !hexColorRe.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("use #RRGGBB")
	}
	return nil
}

// settingRow is one editable entry in the settings list.
type settingRow struct {
	label string
	value func(v *settingsView) string
	edit  func(v *settingsView) tea.Cmd
}

var settingRows = []settingRow{
	{
		label: "Program name",
		value: func(v *settingsView) string { return v.state.Store.Data().ProgramName },
		edit:  (*settingsView).editName,
	},
	{
		label: "Header icon",
		value: func(v *settingsView) string { return v.state.HeaderIcon },
		edit:  (*settingsView).pickIcon,
	},
	{
		label: "Project statuses",
		value: func(v *settingsView) string { return vocabPreview(v.state.Store.Data().Config.ProjectStatuses) },
		edit: func(v *settingsView) tea.Cmd {
			return v.editVocab("Project Statuses", func(cfg *domain.ProgramConfig) *[]string { return &cfg.ProjectStatuses })
		},
	},
	{
		label: "Resource roles",
		value: func(v *settingsView) string { return vocabPreview(v.state.Store.Data().Config.ResourceRoles) },
		edit: func(v *settingsView) tea.Cmd {
			return v.editVocab("Resource Roles", func(cfg *domain.ProgramConfig) *[]string { return &cfg.ResourceRoles })
		},
	},
	{
		label: "Milestone statuses",
		value: func(v *settingsView) string { return vocabPreview(v.state.Store.Data().Config.MilestoneStatuses) },
		edit: func(v *settingsView) tea.Cmd {
			return v.editVocab("Milestone Statuses", func(cfg *domain.ProgramConfig) *[]string { return &cfg.MilestoneStatuses })
		},
	},
	{
		label: "Deliverable statuses",
		value: func(v *settingsView) string { return vocabPreview(v.state.Store.Data().Config.DeliverableStatuses) },
		edit: func(v *settingsView) tea.Cmd {
			return v.editVocab("Deliverable Statuses", func(cfg *domain.ProgramConfig) *[]string { return &cfg.DeliverableStatuses })
		},
	},
	{
		label: "Header icon list",
		value: func(v *settingsView) string { return vocabPreview(v.state.Store.Data().Config.HeaderIcons) },
		edit: func(v *settingsView) tea.Cmd {
			return v.editVocab("Header Icons", func(cfg *domain.ProgramConfig) *[]string { return &cfg.HeaderIcons })
		},
	},
	{
		label: "Theme colors",
		value: func(v *settingsView) string {
			theme := v.state.Store.Data().Config.Theme
			return theme.Primary + " " + theme.StatusOnTrack + " " + theme.StatusAtRisk
		},
		edit: (*settingsView).editTheme,
	},
}

func vocabPreview(values []string) string {
	joined := strings.Join(values, ", ")
	return formatter.Truncate(joined, 48)
}

// settingsView edits program configuration: name, vocabularies, icon, theme
// and the dashboard section order.
type settingsView struct {
	state  *SharedState
	cursor int
}

func newSettingsView(state *SharedState) *settingsView {
	return &settingsView{state: state}
}

func (v *settingsView) ID() ViewID    { return ViewSettings }
func (v *settingsView) Title() string { return "Settings" }

func (v *settingsView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "move section")),
	}
}

func (v *settingsView) Init() tea.Cmd { return nil }

func (v *settingsView) rowCount() int {
	return len(settingRows) + len(v.state.SectionOrder)
}

func (v *settingsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		if v.cursor >= v.rowCount() {
			v.cursor = v.rowCount() - 1
		}
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if v.cursor > 0 {
				v.cursor--
			}
		case "down", "j":
			if v.cursor < v.rowCount()-1 {
				v.cursor++
			}
		case "enter", "e":
			if v.cursor < len(settingRows) {
				return v, settingRows[v.cursor].edit(v)
			}
		case "K":
			if idx := v.cursor - len(settingRows); idx >= 0 {
				v.state.MoveSection(v.state.SectionOrder[idx], true)
				if idx > 0 {
					v.cursor--
				}
				return v, refreshViews()
			}
		case "J":
			if idx := v.cursor - len(settingRows); idx >= 0 && idx < len(v.state.SectionOrder) {
				v.state.MoveSection(v.state.SectionOrder[idx], false)
				if idx < len(v.state.SectionOrder)-1 {
					v.cursor++
				}
				return v, refreshViews()
			}
		}
	}
	return v, nil
}

func (v *settingsView) editName() tea.Cmd {
	name := v.state.Store.Data().ProgramName
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().Title("Program Name").Validate(validateRequired).Value(&name),
	))
	return startFormCmd(v.state, "Program Name", form, func() tea.Cmd {
		v.state.Store.SetProgramName(strings.TrimSpace(name))
		return refreshViews()
	})
}

func (v *settingsView) pickIcon() tea.Cmd {
	icons := v.state.Store.Data().Config.HeaderIcons
	if len(icons) == 0 {
		return flash("No icons configured")
	}
	icon := v.state.HeaderIcon
	options := make([]huh.Option[string], 0, len(icons))
	for _, name := range icons {
		options = append(options, huh.NewOption(name, name))
	}
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().Title("Header Icon").Options(options...).Value(&icon),
	))
	return startFormCmd(v.state, "Header Icon", form, func() tea.Cmd {
		v.state.HeaderIcon = icon
		v.state.SanitizeHeaderIcon()
		return refreshViews()
	})
}

// editVocab edits one vocabulary list as one-entry-per-line text.
func (v *settingsView) editVocab(title string, slot func(cfg *domain.ProgramConfig) *[]string) tea.Cmd {
	cfg := v.state.Store.Data().Config.Clone()
	raw := strings.Join(*slot(&cfg), "\n")
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(title).
			Description("One entry per line. Order is display order.").
			Lines(8).
			Value(&raw),
	))
	return startFormCmd(v.state, title, form, func() tea.Cmd {
		*slot(&cfg) = splitLinks(raw)
		v.state.Store.SetConfig(cfg)
		v.state.SanitizeHeaderIcon()
		return refreshViews()
	})
}

func (v *settingsView) editTheme() tea.Cmd {
	cfg := v.state.Store.Data().Config.Clone()
	theme := &cfg.Theme

	slots := []struct {
		title string
		value *string
	}{
		{"Primary", &theme.Primary},
		{"On primary", &theme.OnPrimary},
		{"Code", &theme.Code},
		{"Bold text", &theme.BoldText},
		{"Timeline bar", &theme.TimelineBar},
		{"Timeline marker", &theme.TimelineMarker},
		{"Timeline goal", &theme.TimelineGoal},
		{"Status: not started", &theme.StatusNotStarted},
		{"Status: planning", &theme.StatusPlanning},
		{"Status: on track", &theme.StatusOnTrack},
		{"Status: at risk", &theme.StatusAtRisk},
		{"Status: blocked", &theme.StatusBlocked},
		{"Status: completed", &theme.StatusCompleted},
		{"Status: cancelled", &theme.StatusCancelled},
	}

	fields := make([]huh.Field, 0, len(slots))
	for _, slot := range slots {
		fields = append(fields, huh.NewInput().
			Title(slot.title).
			Validate(validateHexColor).
			Value(slot.value))
	}

	form := huh.NewForm(huh.NewGroup(fields...))
	return startFormCmd(v.state, "Theme Colors", form, func() tea.Cmd {
		v.state.Store.SetConfig(cfg)
		return refreshViews()
	})
}

func (v *settingsView) View() string {
	p := v.state.Palette()
	var b strings.Builder

	b.WriteString("\n" + p.SectionHeader("Configuration") + "\n")
	for i, row := range settingRows {
		marker := "  "
		if i == v.cursor {
			marker = p.Primary.Render("▸ ")
		}
		label := row.label
		for len(label) < 22 {
			label += " "
		}
		b.WriteString(marker + p.Bold.Render(label) + formatter.Dim(row.value(v)) + "\n")
	}

	b.WriteString("\n" + p.SectionHeader("Dashboard Order") + "\n")
	for i, sec := range v.state.SectionOrder {
		marker := "  "
		if len(settingRows)+i == v.cursor {
			marker = p.Primary.Render("▸ ")
		}
		b.WriteString(marker + fmt.Sprintf("%d. %s", i+1, sec) + "\n")
	}

	return b.String()
}
