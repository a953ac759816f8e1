// Package timeline projects program dates onto a normalized horizontal axis.
//
// The projection is a pure read-only view over the domain model: callers pass
// the set of visible project ids and get back positioned rows, markers and
// month ticks in the [0,100] range.
package timeline

import (
	"time"

	"github.com/progdeck/progdeck/internal/domain"
)

// rangePadding extends the computed range by 30 days on each side.
const rangePadding = 30 * 24 * time.Hour

// Range is the visible date window of the timeline.
type Range struct {
	Start time.Time
	End   time.Time
}

// Pos maps a date onto the range as a percentage in [0,100].
func (r Range) Pos(t time.Time) float64 {
	total := r.End.Sub(r.Start)
	if total <= 0 {
		return 0
	}
	return float64(t.Sub(r.Start)) / float64(total) * 100
}

// PosISO maps a stored ISO date string onto the range. Unparseable or empty
// values map to 0, mirroring how dangling data renders rather than erroring.
func (r Range) PosISO(iso string) float64 {
	t, ok := domain.ParseISODate(iso)
	if !ok {
		return 0
	}
	return r.Pos(t)
}

// MonthTick is one calendar-month label on the axis.
type MonthTick struct {
	Month string // short month name, e.g. "Mar"
	Year  string // two-digit year, e.g. "26"
	Pos   float64
}

// Projection is the computed timeline for a set of visible projects.
type Projection struct {
	Range      Range
	Projects   []domain.Project   // visible projects, input order preserved
	Milestones []domain.Milestone // milestones of visible projects
	Months     []MonthTick
	TodayPos   float64
}

// Project computes the timeline for the given program restricted to the
// visible project id set. It returns ok=false only when there is nothing to
// place on the axis at all; since "now" is always included that can only
// happen when no projects are visible.
func Project(data *domain.ProgramData, visibleIDs map[string]bool, now time.Time) (Projection, bool) {
	var projects []domain.Project
	for _, p := range data.Projects {
		if visibleIDs[p.ID] {
			projects = append(projects, p)
		}
	}
	if len(projects) == 0 {
		return Projection{}, false
	}

	// A milestone is visible iff its owning project, resolved by code, is visible.
	var milestones []domain.Milestone
	for _, m := range data.Milestones {
		owner := data.ProjectByCode(m.ProjectCode)
		if owner != nil && visibleIDs[owner.ID] {
			milestones = append(milestones, m)
		}
	}

	r := computeRange(projects, milestones, now)

	return Projection{
		Range:      r,
		Projects:   projects,
		Milestones: milestones,
		Months:     monthTicks(r),
		TodayPos:   r.Pos(now),
	}, true
}

// computeRange spans all non-empty project completion dates and milestone due
// dates plus "now", padded by 30 days on each side. Including now keeps the
// range non-degenerate even with no dated records.
func computeRange(projects []domain.Project, milestones []domain.Milestone, now time.Time) Range {
	min, max := now, now

	observe := func(iso string) {
		t, ok := domain.ParseISODate(iso)
		if !ok {
			return
		}
		if t.Before(min) {
			min = t
		}
		if t.After(max) {
			max = t
		}
	}

	for _, p := range projects {
		observe(p.CompletionDate)
	}
	for _, m := range milestones {
		observe(m.DueDate)
	}

	return Range{Start: min.Add(-rangePadding), End: max.Add(rangePadding)}
}

// monthTicks emits one tick per calendar month, starting from the first day
// of the month containing the range start and stepping while before the end.
func monthTicks(r Range) []MonthTick {
	var ticks []MonthTick
	cur := time.Date(r.Start.Year(), r.Start.Month(), 1, 0, 0, 0, 0, r.Start.Location())
	for cur.Before(r.End) {
		ticks = append(ticks, MonthTick{
			Month: cur.Format("Jan"),
			Year:  cur.Format("06"),
			Pos:   r.Pos(cur),
		})
		cur = cur.AddDate(0, 1, 0)
	}
	return ticks
}

// MilestonesFor returns the projection's milestones owned by the given
// project code, preserving order.
func (p Projection) MilestonesFor(code string) []domain.Milestone {
	var out []domain.Milestone
	for _, m := range p.Milestones {
		if m.ProjectCode == code {
			out = append(out, m)
		}
	}
	return out
}
