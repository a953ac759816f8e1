package timeline

import (
	"testing"
	"time"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProgram() *domain.ProgramData {
	return &domain.ProgramData{
		Projects: []domain.Project{
			{ID: "1", Code: "P01", Name: "Alpha", CompletionDate: "2026-12-15"},
			{ID: "2", Code: "P02", Name: "Beta", CompletionDate: "2026-03-20"},
		},
		Milestones: []domain.Milestone{
			{ID: "m1", Code: "M01", ProjectCode: "P01", DueDate: "2026-10-25"},
			{ID: "m2", Code: "M02", ProjectCode: "P02", DueDate: "2026-02-15"},
			{ID: "m3", Code: "M03", ProjectCode: "P99", DueDate: "2026-06-01"}, // dangling
		},
	}
}

func allVisible() map[string]bool {
	return map[string]bool{"1": true, "2": true}
}

func TestProject_RangePadsThirtyDays(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	proj, ok := Project(testProgram(), allVisible(), now)
	require.True(t, ok)

	minDate := time.Date(2026, 2, 15, 0, 0, 0, 0, time.UTC)
	maxDate := time.Date(2026, 12, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, !proj.Range.Start.After(minDate.AddDate(0, 0, -30)))
	assert.True(t, !proj.Range.End.Before(maxDate.AddDate(0, 0, 30)))

	// Extremes land strictly inside the axis.
	assert.Greater(t, proj.Range.Pos(minDate), 0.0)
	assert.Less(t, proj.Range.Pos(maxDate), 100.0)
}

func TestProject_RangeAlwaysIncludesToday(t *testing.T) {
	// All dates far in the past relative to now.
	now := time.Date(2027, 8, 1, 0, 0, 0, 0, time.UTC)
	proj, ok := Project(testProgram(), allVisible(), now)
	require.True(t, ok)

	assert.True(t, proj.Range.Start.Before(now))
	assert.True(t, proj.Range.End.After(now))
	assert.InDelta(t, 100.0, proj.TodayPos, 15.0, "today sits near the right edge when all work is past")
}

func TestProject_NoVisibleProjects(t *testing.T) {
	_, ok := Project(testProgram(), map[string]bool{}, time.Now())
	assert.False(t, ok, "projector signals no timeline when nothing is visible")
}

func TestProject_UndatedProgramStillProjects(t *testing.T) {
	data := &domain.ProgramData{
		Projects: []domain.Project{{ID: "1", Code: "P01", Name: "Alpha"}},
	}
	now := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	proj, ok := Project(data, map[string]bool{"1": true}, now)
	require.True(t, ok, "the current date keeps the range non-degenerate")
	assert.InDelta(t, 50.0, proj.TodayPos, 1.0)
}

func TestProject_MilestoneVisibilityFollowsProject(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	proj, ok := Project(testProgram(), map[string]bool{"1": true}, now)
	require.True(t, ok)

	require.Len(t, proj.Milestones, 1)
	assert.Equal(t, "M01", proj.Milestones[0].Code)
	assert.Empty(t, proj.MilestonesFor("P02"))
}

func TestProject_DanglingMilestoneExcluded(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	proj, ok := Project(testProgram(), allVisible(), now)
	require.True(t, ok)

	for _, m := range proj.Milestones {
		assert.NotEqual(t, "M03", m.Code, "milestone of a nonexistent project must not render")
	}
}

func TestMonthTicks_StartAtFirstOfMonth(t *testing.T) {
	now := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	proj, ok := Project(testProgram(), allVisible(), now)
	require.True(t, ok)

	require.NotEmpty(t, proj.Months)
	first := proj.Months[0]
	assert.Equal(t, "Jan", first.Month, "range starts mid-January 2026, so the first tick is Jan")
	assert.Equal(t, "26", first.Year)

	// Ticks are monotonically increasing and inside the axis.
	prev := -1.0
	for _, m := range proj.Months {
		assert.Greater(t, m.Pos, prev)
		assert.Less(t, m.Pos, 100.0)
		prev = m.Pos
	}
}

func TestRange_PosISO(t *testing.T) {
	r := Range{
		Start: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 1, 11, 0, 0, 0, 0, time.UTC),
	}
	assert.InDelta(t, 50.0, r.PosISO("2026-01-06"), 0.01)
	assert.Equal(t, 0.0, r.PosISO(""))
	assert.Equal(t, 0.0, r.PosISO("garbage"))
}
