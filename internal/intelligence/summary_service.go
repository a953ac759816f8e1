package intelligence

import (
	"context"
	"sort"
	"strings"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/llm"
)

const (
	summaryErrorReply = "Error generating summary. Please check your data or API key."
	summaryEmptyReply = "Unable to generate summary."
)

// SummaryService generates scoped executive summaries.
type SummaryService interface {
	// Summarize generates a markdown executive summary for the projects in
	// selectedIDs (all projects when empty). planContext maps project codes
	// to user-supplied recovery plans folded into the prompt. Failures
	// surface as a literal error summary rather than an error value.
	Summarize(ctx context.Context, data *domain.ProgramData, selectedIDs []string, planContext map[string]string) string
}

type summaryService struct {
	client llm.Client
}

// NewSummaryService creates a SummaryService backed by a generation client.
func NewSummaryService(client llm.Client) SummaryService {
	return &summaryService{client: client}
}

func (s *summaryService) Summarize(ctx context.Context, data *domain.ProgramData, selectedIDs []string, planContext map[string]string) string {
	scope := ScopeProgram(data, selectedIDs)

	projects := make([]summaryProjectPayload, 0, len(scope.Projects))
	for _, p := range scope.Projects {
		projects = append(projects, summaryProjectPayload{
			Code:    p.Code,
			Name:    p.Name,
			Status:  p.Status,
			Details: p.StatusDetails,
		})
	}

	inScope := make(map[string]bool, len(scope.Projects))
	for _, p := range scope.Projects {
		inScope[p.Code] = true
	}

	resources := make([]summaryResourcePayload, 0, len(scope.Resources))
	for _, r := range scope.Resources {
		var assignments []string
		for _, code := range r.Assignments {
			if inScope[code] {
				assignments = append(assignments, code)
			}
		}
		resources = append(resources, summaryResourcePayload{
			Name:     r.Name,
			RoleCode: r.RoleCode,
			Projects: assignments,
		})
	}

	prompt := buildSummaryPrompt(
		projects,
		resources,
		milestonePayloads(scope.Milestones),
		deliverablePayloads(scope.Deliverables),
		formatPlanContext(data, planContext),
	)

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskSummarize,
		UserPrompt: prompt,
	})
	if err != nil {
		return summaryErrorReply
	}
	if strings.TrimSpace(resp.Text) == "" {
		return summaryEmptyReply
	}
	return resp.Text
}

// formatPlanContext renders user-entered recovery plans as one line per
// project, named by project when the code resolves. Codes are sorted for a
// deterministic prompt.
func formatPlanContext(data *domain.ProgramData, planContext map[string]string) string {
	if len(planContext) == 0 {
		return ""
	}

	codes := make([]string, 0, len(planContext))
	for code := range planContext {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	var b strings.Builder
	for i, code := range codes {
		if i > 0 {
			b.WriteString("\n")
		}
		name := code
		if p := data.ProjectByCode(code); p != nil {
			name = p.Name
		}
		b.WriteString("- ")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(planContext[code])
	}
	return b.String()
}
