package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/progdeck/progdeck/internal/timeline"
)

// Timeline glyphs. The goal flag marks a project's completion date, the
// diamond a milestone, the vertical rule today.
const (
	timelineFill   = '─'
	timelineBar    = '█'
	timelineGoal   = '◀'
	timelineMark   = '◆'
	timelineToday  = '│'
	timelineLabelW = 22
)

// RenderTimeline draws a projection as one bar row per project under a month
// axis. chartWidth is the drawable width of the bar area; rows narrower than
// a label get the full row.
func (p Palette) RenderTimeline(proj timeline.Projection, chartWidth int) string {
	if chartWidth < 10 {
		chartWidth = 10
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Theme.TimelineBar))
	markStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Theme.TimelineMarker))
	goalStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Theme.TimelineGoal))

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", timelineLabelW))
	b.WriteString(p.renderMonthAxis(proj, chartWidth))
	b.WriteString("\n")

	todayCol := col(proj.TodayPos, chartWidth)

	for _, project := range proj.Projects {
		label := Truncate(project.Name, timelineLabelW-2)
		b.WriteString(StyleFg.Render(label))
		b.WriteString(strings.Repeat(" ", timelineLabelW-lipgloss.Width(label)))

		row := make([]rune, chartWidth)
		for i := range row {
			row[i] = ' '
		}
		row[todayCol] = timelineToday

		// Bar runs from range start to the completion date; a project
		// without one renders as a marker-only row.
		goalCol := -1
		if project.CompletionDate != "" {
			goalCol = col(proj.Range.PosISO(project.CompletionDate), chartWidth)
			for i := 0; i < goalCol; i++ {
				if row[i] == ' ' {
					row[i] = timelineFill
				}
			}
			row[goalCol] = timelineGoal
		}

		markCols := map[int]bool{}
		for _, m := range proj.MilestonesFor(project.Code) {
			if m.DueDate == "" {
				continue
			}
			c := col(proj.Range.PosISO(m.DueDate), chartWidth)
			row[c] = timelineMark
			markCols[c] = true
		}

		for i, r := range row {
			s := string(r)
			switch {
			case markCols[i]:
				b.WriteString(markStyle.Render(s))
			case i == goalCol:
				b.WriteString(goalStyle.Render(s))
			case r == timelineFill:
				b.WriteString(barStyle.Render(s))
			case r == timelineToday:
				b.WriteString(StyleDim.Render(s))
			default:
				b.WriteString(s)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString(strings.Repeat(" ", timelineLabelW))
	b.WriteString(Dim("today ") + StyleDim.Render(string(timelineToday)) +
		Dim("  milestone ") + markStyle.Render(string(timelineMark)) +
		Dim("  target ") + goalStyle.Render(string(timelineGoal)))
	b.WriteString("\n")

	return b.String()
}

// renderMonthAxis lays month labels at their tick positions.
func (p Palette) renderMonthAxis(proj timeline.Projection, chartWidth int) string {
	axis := make([]rune, chartWidth)
	for i := range axis {
		axis[i] = ' '
	}
	for _, tick := range proj.Months {
		label := tick.Month + " '" + tick.Year
		start := col(tick.Pos, chartWidth)
		if start+len(label) > chartWidth {
			continue
		}
		for i, r := range label {
			axis[start+i] = r
		}
	}
	return StyleDim.Render(string(axis))
}

// col clamps a percentage position onto a column index.
func col(pos float64, width int) int {
	c := int(pos / 100 * float64(width))
	if c < 0 {
		c = 0
	}
	if c > width-1 {
		c = width - 1
	}
	return c
}
