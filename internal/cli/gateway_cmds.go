package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/progdeck/progdeck/internal/domain"
)

// Gateway calls run inside tea.Cmd goroutines and report back as messages.
// Workflow messages carry the sequence token handed out at dispatch time so
// a completion from a cancelled run is recognized as stale and dropped.

// chatReplyMsg carries the agent's answer to a chat question.
type chatReplyMsg struct {
	reply string
}

// plansCheckedMsg carries the recovery-plan check result.
type plansCheckedMsg struct {
	seq   int
	codes []string
}

// summaryReadyMsg carries the generated summary markdown.
type summaryReadyMsg struct {
	seq      int
	markdown string
}

// askCmd asks the agent a question against the current data.
func askCmd(state *SharedState, question string, history []domain.ChatMessage) tea.Cmd {
	data := state.Store.Data()
	return func() tea.Msg {
		reply := state.Agent.Ask(context.Background(), question, history, &data)
		return chatReplyMsg{reply: reply}
	}
}

// checkPlansCmd runs the recovery-plan check against the workflow snapshot.
func checkPlansCmd(state *SharedState, seq int, snapshot *domain.ProgramData, selectedIDs []string) tea.Cmd {
	return func() tea.Msg {
		codes := state.Plans.DetectMissingPlans(context.Background(), snapshot, selectedIDs)
		return plansCheckedMsg{seq: seq, codes: codes}
	}
}

// summarizeCmd generates the scoped summary against the workflow snapshot.
func summarizeCmd(state *SharedState, seq int, snapshot *domain.ProgramData, selectedIDs []string, planContext map[string]string) tea.Cmd {
	return func() tea.Msg {
		markdown := state.Summaries.Summarize(context.Background(), snapshot, selectedIDs, planContext)
		return summaryReadyMsg{seq: seq, markdown: markdown}
	}
}
