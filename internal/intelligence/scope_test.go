package intelligence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
)

func TestScopeProgram_EmptySelectionCoversEverything(t *testing.T) {
	data := testProgram()
	scope := ScopeProgram(data, nil)

	assert.Len(t, scope.Projects, 3)
	assert.Len(t, scope.Resources, 2)
	assert.Len(t, scope.Milestones, 2)
	assert.Len(t, scope.Deliverables, 2)
}

func TestScopeProgram_SelectionFiltersJoins(t *testing.T) {
	data := testProgram()
	scope := ScopeProgram(data, []string{"p1"})

	require.Len(t, scope.Projects, 1)
	assert.Equal(t, "P01", scope.Projects[0].Code)

	require.Len(t, scope.Resources, 1)
	assert.Equal(t, "Alice Johnson", scope.Resources[0].Name)

	require.Len(t, scope.Milestones, 1)
	assert.Equal(t, "Design Review", scope.Milestones[0].Name)

	require.Len(t, scope.Deliverables, 1)
	assert.Equal(t, "Component Library", scope.Deliverables[0].Name)
}

func TestScopeProgram_ResourceQualifiesOnAnyOverlap(t *testing.T) {
	data := testProgram()
	// Alice is on P01 and P02; selecting only p2 must still include her.
	scope := ScopeProgram(data, []string{"p2"})

	require.Len(t, scope.Resources, 1)
	assert.Equal(t, "Alice Johnson", scope.Resources[0].Name)
}

func TestScopeProgram_DanglingCodesExcluded(t *testing.T) {
	data := &domain.ProgramData{
		Projects: []domain.Project{
			{ID: "p1", Name: "Only Project", Code: "P01"},
		},
		Milestones: []domain.Milestone{
			{ID: "m1", Name: "Orphan", Code: "M01", ProjectCode: "P77"},
		},
		Deliverables: []domain.Deliverable{
			{ID: "d1", Name: "Orphan Doc", Code: "D01", ProjectCode: "P77"},
		},
		Resources: []domain.Resource{
			{ID: "r1", Name: "Unassigned", Assignments: []string{"P77"}},
		},
	}

	scope := ScopeProgram(data, nil)
	assert.Len(t, scope.Projects, 1)
	assert.Empty(t, scope.Milestones)
	assert.Empty(t, scope.Deliverables)
	assert.Empty(t, scope.Resources)
}
