package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
)

func memStore(t *testing.T) *ProgramStore {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewProgramStore(db)
}

func TestProgramStore_SaveLoadRoundTrip(t *testing.T) {
	store := memStore(t)
	ctx := context.Background()
	data := domain.SeedProgram()

	require.NoError(t, store.Save(ctx, data, time.Now()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, data.ProgramName, loaded.ProgramName)
	assert.Equal(t, data.Projects, loaded.Projects)
	assert.Equal(t, data.Resources, loaded.Resources)
	assert.Equal(t, data.Milestones, loaded.Milestones)
	assert.Equal(t, data.Deliverables, loaded.Deliverables)
	assert.Equal(t, data.Config, loaded.Config)
}

func TestProgramStore_SaveReplacesPrevious(t *testing.T) {
	store := memStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.SeedProgram(), time.Now()))

	small := domain.ProgramData{
		ProgramName: "Tiny",
		Projects:    []domain.Project{{ID: "p1", Name: "Solo", Code: "P01"}},
		Config:      domain.DefaultConfig(),
	}
	require.NoError(t, store.Save(ctx, small, time.Now()))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Tiny", loaded.ProgramName)
	require.Len(t, loaded.Projects, 1)
	assert.Empty(t, loaded.Resources)
	assert.Empty(t, loaded.Milestones)
	assert.Empty(t, loaded.Deliverables)
}

func TestProgramStore_LoadEmptyDatabase(t *testing.T) {
	store := memStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestProgramStore_PreservesRowOrderAndJoins(t *testing.T) {
	store := memStore(t)
	ctx := context.Background()

	data := domain.ProgramData{
		ProgramName: "Ordered",
		Projects: []domain.Project{
			{ID: "pz", Name: "Zed", Code: "P09"},
			{ID: "pa", Name: "Aay", Code: "P01"},
		},
		Resources: []domain.Resource{
			{ID: "r1", Name: "Dana", Assignments: []string{"P09", "P01"}},
		},
		Deliverables: []domain.Deliverable{
			{ID: "d1", Name: "Doc", Code: "D01", Links: []string{"https://a.example", "https://b.example"}},
		},
		Config: domain.DefaultConfig(),
	}

	require.NoError(t, store.Save(ctx, data, time.Now()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, "Zed", loaded.Projects[0].Name)
	assert.Equal(t, []string{"P09", "P01"}, loaded.Resources[0].Assignments)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, loaded.Deliverables[0].Links)
}

func TestProgramStore_DanglingCodesSurvive(t *testing.T) {
	store := memStore(t)
	ctx := context.Background()

	data := domain.ProgramData{
		ProgramName: "Dangling",
		Milestones: []domain.Milestone{
			{ID: "m1", Name: "Orphan", Code: "M01", ProjectCode: "P77"},
		},
		Config: domain.DefaultConfig(),
	}

	require.NoError(t, store.Save(ctx, data, time.Now()))
	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Milestones, 1)
	assert.Equal(t, "P77", loaded.Milestones[0].ProjectCode)
}
