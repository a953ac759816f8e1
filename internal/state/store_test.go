package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
)

func seededStore() *Store {
	return NewStore(domain.SeedProgram())
}

func TestStore_AddProject_SequentialCodeAndDefaults(t *testing.T) {
	s := seededStore()
	before := len(s.Data().Projects)

	p := s.AddProject()

	assert.Equal(t, "P03", p.Code)
	assert.Equal(t, "New Project", p.Name)
	assert.Equal(t, s.Data().Config.ProjectStatuses[0], p.Status)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, s.Data().Projects, before+1)
}

func TestStore_AddProject_EmptyVocabularyFallback(t *testing.T) {
	data := domain.SeedProgram()
	data.Config.ProjectStatuses = nil
	s := NewStore(data)

	p := s.AddProject()
	assert.Equal(t, "NOT STARTED", p.Status)
}

func TestStore_AddResource_BlankRoleUntilChosen(t *testing.T) {
	s := seededStore()
	r := s.AddResource()

	assert.Empty(t, r.Role)
	assert.Empty(t, r.RoleCode)
	assert.Equal(t, "100%", r.Allocation)
	assert.Empty(t, r.Assignments)
}

func TestStore_AddMilestone_AttachesToFirstProject(t *testing.T) {
	s := seededStore()
	m := s.AddMilestone()

	assert.Equal(t, "M04", m.Code)
	assert.Equal(t, s.Data().Projects[0].Code, m.ProjectCode)
	assert.Equal(t, "2026-01-01", m.DueDate)
}

func TestStore_AddMilestone_NoProjectsDefaultsCode(t *testing.T) {
	s := NewStore(domain.ProgramData{Config: domain.DefaultConfig()})
	m := s.AddMilestone()
	assert.Equal(t, "P01", m.ProjectCode)
}

func TestStore_AddDeliverable_ProjectCodeOnlyWhenUnambiguous(t *testing.T) {
	s := seededStore()
	d := s.AddDeliverable()
	// Two seeded projects: no default attachment.
	assert.Empty(t, d.ProjectCode)

	single := NewStore(domain.ProgramData{
		Projects: []domain.Project{{ID: "p1", Code: "P01"}},
		Config:   domain.DefaultConfig(),
	})
	d2 := single.AddDeliverable()
	assert.Equal(t, "P01", d2.ProjectCode)
}

func TestStore_UpdateProject_ReplacesRecord(t *testing.T) {
	s := seededStore()
	p := s.Data().Projects[0]
	p.Name = "Renamed"
	p.Status = "BLOCKED"

	require.NoError(t, s.UpdateProject(p))
	assert.Equal(t, "Renamed", s.Data().Projects[0].Name)
	assert.Equal(t, "BLOCKED", s.Data().Projects[0].Status)
}

func TestStore_UpdateProject_UnknownID(t *testing.T) {
	s := seededStore()
	err := s.UpdateProject(domain.Project{ID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_UpdateProject_CodeChangeCascades(t *testing.T) {
	s := seededStore()
	p := s.Data().Projects[0]
	oldCode := p.Code
	p.Code = "P10"
	require.NoError(t, s.UpdateProject(p))

	data := s.Data()
	for _, m := range data.Milestones {
		assert.NotEqual(t, oldCode, m.ProjectCode)
	}
	for _, d := range data.Deliverables {
		assert.NotEqual(t, oldCode, d.ProjectCode)
	}
	for _, r := range data.Resources {
		assert.NotContains(t, r.Assignments, oldCode)
	}
	// At least one record followed to the new code.
	followed := false
	for _, m := range data.Milestones {
		if m.ProjectCode == "P10" {
			followed = true
		}
	}
	assert.True(t, followed)
}

func TestStore_UpdateResource_RoleChangeDerivesCode(t *testing.T) {
	s := seededStore()
	r := s.AddResource()
	r.Role = "Engineer"
	require.NoError(t, s.UpdateResource(r))

	got := s.Data().Resources[len(s.Data().Resources)-1]
	assert.Equal(t, "ENG01", got.RoleCode)
}

func TestStore_UpdateResource_HandEditedCodeWins(t *testing.T) {
	s := seededStore()
	r := s.AddResource()
	r.Role = "Engineer"
	r.RoleCode = "CUSTOM7"
	require.NoError(t, s.UpdateResource(r))

	got := s.Data().Resources[len(s.Data().Resources)-1]
	assert.Equal(t, "CUSTOM7", got.RoleCode)
}

func TestStore_UpdateResource_UnchangedRoleKeepsCode(t *testing.T) {
	s := seededStore()
	r := s.Data().Resources[0]
	code := r.RoleCode
	r.Allocation = "50%"
	require.NoError(t, s.UpdateResource(r))

	assert.Equal(t, code, s.Data().Resources[0].RoleCode)
	assert.Equal(t, "50%", s.Data().Resources[0].Allocation)
}

func TestStore_DeleteProject_LeavesDanglingJoins(t *testing.T) {
	s := seededStore()
	p := s.Data().Projects[0]
	require.NoError(t, s.DeleteProject(p.ID))

	data := s.Data()
	assert.Nil(t, data.ProjectByID(p.ID))
	// Joined records survive with their now-dangling code.
	dangling := 0
	for _, m := range data.Milestones {
		if m.ProjectCode == p.Code {
			dangling++
		}
	}
	assert.Greater(t, dangling, 0)
}

func TestStore_Delete_UnknownID(t *testing.T) {
	s := seededStore()
	assert.ErrorIs(t, s.DeleteProject("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteResource("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteMilestone("nope"), ErrNotFound)
	assert.ErrorIs(t, s.DeleteDeliverable("nope"), ErrNotFound)
}

func TestStore_CopyOnWrite_OldAggregateUntouched(t *testing.T) {
	s := seededStore()
	before := s.Data()
	beforeName := before.Projects[0].Name

	p := s.Data().Projects[0]
	p.Name = "Changed"
	require.NoError(t, s.UpdateProject(p))

	assert.Equal(t, beforeName, before.Projects[0].Name)
	assert.Equal(t, "Changed", s.Data().Projects[0].Name)
}

func TestStore_Replace(t *testing.T) {
	s := seededStore()
	s.Replace(domain.ProgramData{ProgramName: "Loaded"})
	assert.Equal(t, "Loaded", s.Data().ProgramName)
	assert.Empty(t, s.Data().Projects)
}
