package intelligence

import (
	"encoding/json"

	"github.com/progdeck/progdeck/internal/domain"
)

// Prompt payloads mirror the wire shape the model is instructed about:
// camelCase keys, projectAssignments for resource links. Dates cross this
// boundary already converted to MM/DD/YY so the model never sees ISO values.

type projectPayload struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	CompletionDate string `json:"completionDate"`
	Status         string `json:"status"`
	StatusDetails  string `json:"statusDetails"`
}

type resourcePayload struct {
	Name        string   `json:"name"`
	Role        string   `json:"role"`
	RoleCode    string   `json:"roleCode"`
	Allocation  string   `json:"allocation"`
	Assignments []string `json:"projectAssignments"`
}

type milestonePayload struct {
	Code          string `json:"code"`
	Name          string `json:"name"`
	ProjectCode   string `json:"projectCode"`
	DueDate       string `json:"dueDate"`
	Status        string `json:"status"`
	StatusDetails string `json:"statusDetails"`
}

type deliverablePayload struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	ProjectCode string `json:"projectCode"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
}

// planCheckPayload is the condensed project record for the recovery-plan
// check: only what the model needs to judge the details text.
type planCheckPayload struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Details string `json:"details"`
}

// summaryProjectPayload and summaryResourcePayload are the scoped summary
// shapes: resources carry only their in-scope assignments.
type summaryProjectPayload struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Details string `json:"details"`
}

type summaryResourcePayload struct {
	Name     string   `json:"name"`
	RoleCode string   `json:"roleCode"`
	Projects []string `json:"projects"`
}

func projectPayloads(projects []domain.Project) []projectPayload {
	out := make([]projectPayload, 0, len(projects))
	for _, p := range projects {
		out = append(out, projectPayload{
			Code:           p.Code,
			Name:           p.Name,
			Description:    p.Description,
			CompletionDate: domain.FormatShortDate(p.CompletionDate),
			Status:         p.Status,
			StatusDetails:  p.StatusDetails,
		})
	}
	return out
}

func resourcePayloads(resources []domain.Resource) []resourcePayload {
	out := make([]resourcePayload, 0, len(resources))
	for _, r := range resources {
		out = append(out, resourcePayload{
			Name:        r.Name,
			Role:        r.Role,
			RoleCode:    r.RoleCode,
			Allocation:  r.Allocation,
			Assignments: r.Assignments,
		})
	}
	return out
}

func milestonePayloads(milestones []domain.Milestone) []milestonePayload {
	out := make([]milestonePayload, 0, len(milestones))
	for _, m := range milestones {
		out = append(out, milestonePayload{
			Code:          m.Code,
			Name:          m.Name,
			ProjectCode:   m.ProjectCode,
			DueDate:       domain.FormatShortDate(m.DueDate),
			Status:        m.Status,
			StatusDetails: m.StatusDetails,
		})
	}
	return out
}

func deliverablePayloads(deliverables []domain.Deliverable) []deliverablePayload {
	out := make([]deliverablePayload, 0, len(deliverables))
	for _, d := range deliverables {
		out = append(out, deliverablePayload{
			Code:        d.Code,
			Name:        d.Name,
			ProjectCode: d.ProjectCode,
			DueDate:     domain.FormatShortDate(d.DueDate),
			Status:      d.Status,
		})
	}
	return out
}

// mustJSON renders a payload for prompt embedding. Payload types contain
// nothing json.Marshal can fail on.
func mustJSON(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}
