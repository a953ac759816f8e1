package cli

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
)

// headerGlyphs maps configured icon names to terminal glyphs. Unknown names
// fall back to a diamond so a hand-edited icon list never breaks the header.
var headerGlyphs = map[string]string{
	"layers":    "▤",
	"ship":      "⛵",
	"anchor":    "⚓",
	"compass":   "🧭",
	"map":       "🗺",
	"shield":    "🛡",
	"briefcase": "💼",
	"chart":     "📊",
	"rocket":    "🚀",
	"gem":       "💎",
}

func headerGlyph(name string) string {
	if g, ok := headerGlyphs[name]; ok {
		return g
	}
	return "◆"
}

// inputCapturer is implemented by views that own a text input and need every
// key event, bypassing the global q/esc handling.
type inputCapturer interface {
	capturesInput() bool
}

func viewCapturesInput(v View) bool {
	if v == nil {
		return false
	}
	switch v.ID() {
	case ViewForm, ViewChat:
		return true
	}
	if c, ok := v.(inputCapturer); ok {
		return c.capturesInput()
	}
	return false
}

// appModel is the root bubbletea Model: a header, a view stack and a status
// bar with transient flash notices.
type appModel struct {
	state     *SharedState
	viewStack []View
	flash     string
	quitting  bool
}

func newAppModel(state *SharedState) appModel {
	m := appModel{state: state}
	m.viewStack = []View{newDashboardView(state)}
	return m
}

func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		// Views recompute their layout on the refresh broadcast.
		return m, refreshViews()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.flash = ""
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case replaceViewMsg:
		m.flash = ""
		if len(m.viewStack) > 0 {
			m.viewStack[len(m.viewStack)-1] = msg.view
		} else {
			m.viewStack = append(m.viewStack, msg.view)
		}
		return m, msg.view.Init()

	case refreshViewMsg:
		var cmds []tea.Cmd
		for i, v := range m.viewStack {
			updated, cmd := v.Update(msg)
			m.viewStack[i] = updated.(View)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case formCompleteMsg:
		// Atomically pop the form view, then run the follow-up with a refresh
		// so the underlying table re-reads the store.
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, tea.Batch(msg.nextCmd, refreshViews())

	case statusFlashMsg:
		m.flash = msg.text
		return m, nil

	case quitMsg:
		m.quitting = true
		return m, tea.Quit
	}

	// Async completions (gateway replies, blink ticks) go to every view so a
	// summary run finishes even while the user is elsewhere in the stack.
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	if m.flash != "" {
		m.flash = ""
	}

	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		// Views with modal sub-state (the summary run) see Esc first.
		if v := m.activeView(); v != nil && v.ID() == ViewSummary {
			updated, cmd := v.Update(msg)
			m.setActiveView(updated.(View))
			if cmd != nil {
				return m, cmd
			}
		}
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from the
	// line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

func (m *appModel) renderHeader() string {
	p := m.state.Palette()

	title := headerGlyph(m.state.HeaderIcon) + " " + p.Header.Render(m.state.Store.Data().ProgramName)

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	breadcrumb := ""
	if len(crumbs) > 0 {
		breadcrumb = " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + breadcrumb + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string

	if m.flash != "" {
		hints = append(hints, m.state.Palette().Primary.Render(m.flash))
	} else if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}

	if len(m.viewStack) > 1 {
		hints = append(hints, formatter.Dim("esc: back"))
	} else if m.flash == "" {
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
