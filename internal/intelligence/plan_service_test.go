package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
)

func TestPlanService_DetectMissingPlans_ParsesCodes(t *testing.T) {
	var gotPrompt string
	client, done := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body.Prompt
		respondWith(t, `{"needsPlan":["P02"]}`)(w, r)
	})
	defer done()

	svc := NewPlanService(client)
	codes := svc.DetectMissingPlans(context.Background(), testProgram(), nil)

	assert.Equal(t, []string{"P02"}, codes)
	// Both troubled projects go to the model; the healthy one does not.
	assert.Contains(t, gotPrompt, "Checkout Revamp")
	assert.Contains(t, gotPrompt, "Data Migration")
	assert.NotContains(t, gotPrompt, "Mobile App Redesign")
}

func TestPlanService_DetectMissingPlans_SelectionRestricts(t *testing.T) {
	var gotPrompt string
	client, done := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Prompt string `json:"prompt"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotPrompt = body.Prompt
		respondWith(t, `{"needsPlan":[]}`)(w, r)
	})
	defer done()

	svc := NewPlanService(client)
	codes := svc.DetectMissingPlans(context.Background(), testProgram(), []string{"p3"})

	assert.Empty(t, codes)
	assert.Contains(t, gotPrompt, "Data Migration")
	assert.NotContains(t, gotPrompt, "Checkout Revamp")
}

func TestPlanService_DetectMissingPlans_NoTroubledProjectsSkipsCall(t *testing.T) {
	calls := 0
	client, done := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		respondWith(t, `{"needsPlan":[]}`)(w, r)
	})
	defer done()

	data := testProgram()
	// Selection covers only the healthy project.
	svc := NewPlanService(client)
	codes := svc.DetectMissingPlans(context.Background(), data, []string{"p1"})

	assert.Empty(t, codes)
	assert.Zero(t, calls)
}

func TestPlanService_DetectMissingPlans_FreeFormStatusNotACandidate(t *testing.T) {
	data := &domain.ProgramData{
		Projects: []domain.Project{
			{ID: "p1", Name: "Edge Case", Code: "P01", Status: "AT RISK - vendor delay"},
			{ID: "p2", Name: "Lower Case", Code: "P02", Status: "blocked"},
		},
	}

	// Only exact AT RISK / BLOCKED statuses are candidates, so no call is made.
	calls := 0
	client, done := newGatewayClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		respondWith(t, `{"needsPlan":["P01"]}`)(w, r)
	})
	defer done()

	svc := NewPlanService(client)
	codes := svc.DetectMissingPlans(context.Background(), data, nil)
	assert.Empty(t, codes)
	assert.Zero(t, calls)
}

func TestPlanService_DetectMissingPlans_FailOpenOnGatewayError(t *testing.T) {
	svc := NewPlanService(failingClient())
	codes := svc.DetectMissingPlans(context.Background(), testProgram(), nil)
	assert.Empty(t, codes)
}

func TestPlanService_DetectMissingPlans_FailOpenOnMalformedOutput(t *testing.T) {
	client, done := newGatewayClient(t, respondWith(t, "I cannot answer in JSON, sorry."))
	defer done()

	svc := NewPlanService(client)
	codes := svc.DetectMissingPlans(context.Background(), testProgram(), nil)
	assert.Empty(t, codes)
}
