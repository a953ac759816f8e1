package intelligence

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/llm"
)

// testProgram builds a small program with one healthy, one at-risk, and one
// blocked project plus joined records. Used across the service tests.
func testProgram() *domain.ProgramData {
	return &domain.ProgramData{
		ProgramName: "Design Systems",
		Projects: []domain.Project{
			{ID: "p1", Name: "Mobile App Redesign", Code: "P01", Status: "ON TRACK", CompletionDate: "2026-11-20"},
			{ID: "p2", Name: "Checkout Revamp", Code: "P02", Status: "AT RISK", StatusDetails: "Waiting on vendor SDK."},
			{ID: "p3", Name: "Data Migration", Code: "P03", Status: "BLOCKED", StatusDetails: "Legal review pending. Plan: escalate to VP by Friday."},
		},
		Resources: []domain.Resource{
			{ID: "r1", Name: "Alice Johnson", Role: "UX Designer", RoleCode: "UXD01", Assignments: []string{"P01", "P02"}},
			{ID: "r2", Name: "Bob Chen", Role: "Engineer", RoleCode: "ENG01", Assignments: []string{"P03"}},
		},
		Milestones: []domain.Milestone{
			{ID: "m1", Name: "Design Review", Code: "M01", ProjectCode: "P01", DueDate: "2026-10-01", Status: "Scheduled"},
			{ID: "m2", Name: "Vendor Handoff", Code: "M02", ProjectCode: "P02", DueDate: "2026-10-15", Status: "TBD"},
		},
		Deliverables: []domain.Deliverable{
			{ID: "d1", Name: "Component Library", Code: "D01", ProjectCode: "P01", DueDate: "2026-10-20", Status: "In Progress"},
			{ID: "d2", Name: "Migration Runbook", Code: "D02", ProjectCode: "P03", DueDate: "2026-12-01", Status: "Not Started"},
		},
		Config: domain.DefaultConfig(),
	}
}

// newGatewayClient starts an httptest server wrapped in an llm.Client so
// service tests exercise the real HTTP serialization path.
func newGatewayClient(t *testing.T, handler http.HandlerFunc) (llm.Client, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0

	return llm.NewClient(cfg, llm.NoopObserver{}), srv.Close
}

// respondWith wraps text in the generation endpoint's reply envelope.
func respondWith(t *testing.T, text string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": text,
		})
	}
}

// failingClient returns a client pointed at a closed port.
func failingClient() llm.Client {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = "http://127.0.0.1:1"
	cfg.MaxRetries = 0
	for task, tc := range cfg.Tasks {
		tc.TimeoutMs = 500
		cfg.Tasks[task] = tc
	}
	return llm.NewClient(cfg, llm.NoopObserver{})
}
