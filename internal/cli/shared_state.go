package cli

import (
	"github.com/rs/zerolog"

	"github.com/progdeck/progdeck/internal/cli/formatter"
	"github.com/progdeck/progdeck/internal/intelligence"
	"github.com/progdeck/progdeck/internal/state"
	"github.com/progdeck/progdeck/internal/summary"
)

// SectionID names one dashboard section.
type SectionID string

const (
	SectionSummary      SectionID = "summary"
	SectionTimeline     SectionID = "timeline"
	SectionProjects     SectionID = "projects"
	SectionResources    SectionID = "resources"
	SectionMilestones   SectionID = "milestones"
	SectionDeliverables SectionID = "deliverables"
)

// DefaultSectionOrder is the initial dashboard layout.
func DefaultSectionOrder() []SectionID {
	return []SectionID{
		SectionSummary,
		SectionTimeline,
		SectionProjects,
		SectionResources,
		SectionMilestones,
		SectionDeliverables,
	}
}

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	Store *state.Store

	Agent     intelligence.AgentService
	Plans     intelligence.PlanService
	Summaries intelligence.SummaryService
	Workflow  *summary.Workflow

	Log zerolog.Logger

	// Presentation state
	HeaderIcon   string
	SectionOrder []SectionID

	// Terminal dimensions
	Width  int
	Height int
}

// Palette returns styles for the current program theme. Rebuilt on demand so
// theme edits in settings take effect immediately.
func (s *SharedState) Palette() formatter.Palette {
	return formatter.NewPalette(s.Store.Data().Config.Theme)
}

// MoveSection shifts a dashboard section up or down one slot.
func (s *SharedState) MoveSection(id SectionID, up bool) {
	idx := -1
	for i, sec := range s.SectionOrder {
		if sec == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return
	}
	swap := idx + 1
	if up {
		swap = idx - 1
	}
	if swap < 0 || swap >= len(s.SectionOrder) {
		return
	}
	s.SectionOrder[idx], s.SectionOrder[swap] = s.SectionOrder[swap], s.SectionOrder[idx]
}

// SanitizeHeaderIcon resets the header icon when it is no longer among the
// configured icons, mirroring what happens after icon list edits.
func (s *SharedState) SanitizeHeaderIcon() {
	icons := s.Store.Data().Config.HeaderIcons
	for _, icon := range icons {
		if icon == s.HeaderIcon {
			return
		}
	}
	if len(icons) > 0 {
		s.HeaderIcon = icons[0]
	} else {
		s.HeaderIcon = "layers"
	}
}
