package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/health"
	"github.com/progdeck/progdeck/internal/timeline"
)

func testPalette() Palette {
	return NewPalette(domain.DefaultConfig().Theme)
}

func TestStatusPill_KeepsStatusText(t *testing.T) {
	p := testPalette()
	out := p.StatusPill("AT RISK - vendor delay", health.FamilyProject)
	assert.Contains(t, out, "AT RISK - vendor delay")
}

func TestShortDate(t *testing.T) {
	assert.Contains(t, ShortDate("2026-03-05"), "03/05/26")
	assert.Contains(t, ShortDate("soon"), "soon")
	assert.Contains(t, ShortDate(""), "—")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab…", Truncate("abcdef", 3))
	assert.Equal(t, "…", Truncate("abcdef", 1))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestRenderTable_AlignmentAndCursor(t *testing.T) {
	p := testPalette()
	out := p.RenderTable(
		[]string{"CODE", "NAME"},
		[][]string{
			{"P01", "Mobile App Redesign"},
			{"P02", "Checkout"},
		},
		1,
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "CODE")
	assert.Contains(t, lines[2], "P01")
	assert.Contains(t, lines[3], "▸")
	assert.Contains(t, lines[3], "P02")
	assert.NotContains(t, lines[2], "▸")
}

func TestRenderTable_EmptyHeaders(t *testing.T) {
	p := testPalette()
	assert.Empty(t, p.RenderTable(nil, nil, -1))
}

func TestRenderTimeline_BarsAndMarkers(t *testing.T) {
	data := &domain.ProgramData{
		Projects: []domain.Project{
			{ID: "p1", Name: "Alpha", Code: "P01", CompletionDate: "2026-11-20"},
			{ID: "p2", Name: "No Target", Code: "P02"},
		},
		Milestones: []domain.Milestone{
			{ID: "m1", Name: "Review", Code: "M01", ProjectCode: "P01", DueDate: "2026-10-01"},
		},
	}
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	proj, ok := timeline.Project(data, map[string]bool{"p1": true, "p2": true}, now)
	require.True(t, ok)

	p := testPalette()
	out := p.RenderTimeline(proj, 60)

	assert.Contains(t, out, "Alpha")
	assert.Contains(t, out, "No Target")
	assert.Contains(t, out, string(timelineGoal))
	assert.Contains(t, out, string(timelineMark))
	assert.Contains(t, out, string(timelineToday))
	// Month axis present.
	assert.Contains(t, out, "Sep")
}

func TestRenderTimeline_LongNameTruncated(t *testing.T) {
	data := &domain.ProgramData{
		Projects: []domain.Project{
			{ID: "p1", Name: strings.Repeat("x", 40), Code: "P01", CompletionDate: "2026-11-20"},
		},
	}
	proj, ok := timeline.Project(data, map[string]bool{"p1": true}, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	require.True(t, ok)

	out := testPalette().RenderTimeline(proj, 40)
	assert.Contains(t, out, "…")
}
