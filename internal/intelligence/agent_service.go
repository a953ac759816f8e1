package intelligence

import (
	"context"
	"strings"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/llm"
)

// Literal fallback strings are part of the product surface: the chat view
// renders them verbatim when the model is unreachable or returns nothing.
const (
	askErrorReply = "Error communicating with the AI agent."
	askEmptyReply = "I'm sorry, I couldn't process that question."
)

// AgentService answers free-form questions about the program data.
type AgentService interface {
	// Ask answers question grounded in data, with optional chat history.
	// It never returns an error: failures surface as a spoken fallback
	// reply so the chat flow is uninterrupted.
	Ask(ctx context.Context, question string, history []domain.ChatMessage, data *domain.ProgramData) string
}

type agentService struct {
	client llm.Client
}

// NewAgentService creates an AgentService backed by a generation client.
func NewAgentService(client llm.Client) AgentService {
	return &agentService{client: client}
}

func (s *agentService) Ask(ctx context.Context, question string, history []domain.ChatMessage, data *domain.ProgramData) string {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskAsk,
		SystemPrompt: buildAskSystemPrompt(data),
		UserPrompt:   buildAskUserPrompt(history, question),
	})
	if err != nil {
		return askErrorReply
	}
	if strings.TrimSpace(resp.Text) == "" {
		return askEmptyReply
	}
	return resp.Text
}
