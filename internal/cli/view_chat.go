package cli

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/domain"
)

// chatView is the interactive assistant chat. The conversation transcript
// lives in a scrollable viewport; history is per-process and feeds back into
// every question so the agent can resolve follow-ups.
type chatView struct {
	state *SharedState
	input textinput.Model
	vp    viewport.Model

	history  []domain.ChatMessage
	thinking bool
}

func newChatView(state *SharedState) *chatView {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	vp := viewport.New(0, 0)
	vp.KeyMap = chatViewportKeyMap()

	v := &chatView{state: state, input: ti, vp: vp}
	v.resize()
	v.refreshTranscript()
	return v
}

func (v *chatView) ID() ViewID    { return ViewChat }
func (v *chatView) Title() string { return "Assistant" }

func (v *chatView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ask")),
		key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
	}
}

func (v *chatView) Init() tea.Cmd {
	return textinput.Blink
}

func (v *chatView) resize() {
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
	v.input.Width = width - 4
}

func (v *chatView) refreshTranscript() {
	var b strings.Builder
	p := v.state.Palette()

	if len(v.history) == 0 {
		b.WriteString(formatter.Dim("Ask anything about your program data. Dates read as MM/DD/YY.") + "\n")
	}
	for _, msg := range v.history {
		switch msg.Role {
		case domain.ChatUser:
			b.WriteString(p.Bold.Render("You: ") + msg.Text + "\n\n")
		default:
			b.WriteString(p.Primary.Render("Assistant: ") + msg.Text + "\n\n")
		}
	}
	if v.thinking {
		b.WriteString(formatter.Dim("Thinking...") + "\n")
	}

	v.vp.SetContent(b.String())
	v.vp.GotoBottom()
}

func (v *chatView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshViewMsg:
		v.resize()
		v.refreshTranscript()
		return v, nil

	case chatReplyMsg:
		v.thinking = false
		v.history = append(v.history, domain.ChatMessage{Role: domain.ChatModel, Text: msg.reply})
		v.refreshTranscript()
		return v, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return v, popView()
		}
		if isChatScrollKey(msg) {
			var cmd tea.Cmd
			v.vp, cmd = v.vp.Update(msg)
			return v, cmd
		}
		if msg.Type == tea.KeyEnter && !v.thinking {
			question := strings.TrimSpace(v.input.Value())
			v.input.Reset()
			if question == "" {
				return v, nil
			}
			prior := append([]domain.ChatMessage{}, v.history...)
			v.history = append(v.history, domain.ChatMessage{Role: domain.ChatUser, Text: question})
			v.thinking = true
			v.refreshTranscript()
			return v, askCmd(v.state, question, prior)
		}

		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *chatView) View() string {
	prompt := v.state.Palette().Primary.Render("ask") + formatter.Dim("> ")
	return "\n" + v.vp.View() + "\n\n" + prompt + v.input.View()
}

// chatViewportKeyMap restricts scrolling to keys the text input does not use.
func chatViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Down:     key.NewBinding(key.WithKeys("ctrl+j")),
		Up:       key.NewBinding(key.WithKeys("ctrl+k")),
	}
}

func isChatScrollKey(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "pgup", "pgdown", "ctrl+j", "ctrl+k":
		return true
	}
	return false
}
