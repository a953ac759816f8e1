package intelligence

import (
	"context"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/llm"
)

// PlanService classifies troubled projects by whether their status details
// already describe a credible recovery plan.
type PlanService interface {
	// DetectMissingPlans returns the codes of AT RISK or BLOCKED projects
	// whose status details lack an obvious recovery plan. When selectedIDs
	// is non-empty, only those projects are considered. The check is
	// fail-open: on any generation failure an empty list is returned, so
	// callers proceed as if every plan were present.
	DetectMissingPlans(ctx context.Context, data *domain.ProgramData, selectedIDs []string) []string
}

type planService struct {
	client llm.Client
}

// NewPlanService creates a PlanService backed by a generation client.
func NewPlanService(client llm.Client) PlanService {
	return &planService{client: client}
}

// plansReply is the JSON structure expected from the model.
type plansReply struct {
	NeedsPlan []string `json:"needsPlan"`
}

func (s *planService) DetectMissingPlans(ctx context.Context, data *domain.ProgramData, selectedIDs []string) []string {
	problematic := troubledProjects(data, selectedIDs)
	if len(problematic) == 0 {
		return nil
	}

	payloads := make([]planCheckPayload, 0, len(problematic))
	for _, p := range problematic {
		payloads = append(payloads, planCheckPayload{
			Code:    p.Code,
			Name:    p.Name,
			Details: p.StatusDetails,
		})
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:       llm.TaskDetectPlans,
		UserPrompt: buildPlanCheckPrompt(payloads),
	})
	if err != nil {
		return nil
	}

	parsed, err := llm.ExtractJSON[plansReply](resp.Text, nil)
	if err != nil {
		return nil
	}
	return parsed.NeedsPlan
}

// troubledProjects returns the projects whose status is exactly AT RISK or
// BLOCKED, restricted to selectedIDs when the selection is non-empty.
// Free-form variants ("AT RISK - vendor delay") are deliberately excluded:
// the health scanner is for coloring, not candidacy.
func troubledProjects(data *domain.ProgramData, selectedIDs []string) []domain.Project {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var out []domain.Project
	for _, p := range data.Projects {
		if p.Status != "AT RISK" && p.Status != "BLOCKED" {
			continue
		}
		if len(selected) > 0 && !selected[p.ID] {
			continue
		}
		out = append(out, p)
	}
	return out
}
