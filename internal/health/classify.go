// Package health maps free-form status strings onto a fixed set of semantic
// color buckets. The bucket set is closed; the status vocabularies are not.
package health

import (
	"strings"

	"github.com/progdeck/progdeck/internal/domain"
)

// Bucket is a semantic health category used purely for color coding.
type Bucket string

const (
	NotStarted Bucket = "NOT STARTED"
	Planning   Bucket = "PLANNING"
	OnTrack    Bucket = "ON TRACK"
	AtRisk     Bucket = "AT RISK"
	Blocked    Bucket = "BLOCKED"
	Completed  Bucket = "COMPLETED"
	Cancelled  Bucket = "CANCELLED"
)

// Family selects which remapping table applies before generic matching.
type Family int

const (
	FamilyProject Family = iota
	FamilyMilestone
	FamilyDeliverable
)

// genericScan is the fixed keyword scan order. Later matches overwrite
// earlier ones, so a status containing both "PLANNING" and "BLOCKED"
// classifies as Blocked.
var genericScan = []struct {
	keyword string
	bucket  Bucket
}{
	{"PLANNING", Planning},
	{"ON TRACK", OnTrack},
	{"AT RISK", AtRisk},
	{"BLOCKED", Blocked},
	{"COMPLETED", Completed},
	{"CANCELLED", Cancelled},
}

// Classify maps a status string to its bucket. It is a pure function: no
// error path, unmatched input falls through to NotStarted.
func Classify(status string, family Family) Bucket {
	switch family {
	case FamilyMilestone:
		switch status {
		case "Completed":
			return Completed
		case "Scheduled":
			return Planning
		default:
			return NotStarted
		}
	case FamilyDeliverable:
		switch status {
		case "Completed":
			return Completed
		case "In Progress":
			return OnTrack
		case "On Hold":
			return AtRisk
		case "Review":
			return Planning
		default:
			return NotStarted
		}
	}

	upper := strings.ToUpper(status)
	bucket := NotStarted
	for _, entry := range genericScan {
		if strings.Contains(upper, entry.keyword) {
			bucket = entry.bucket
		}
	}
	return bucket
}

// ThemeColor returns the theme hex slot backing a bucket.
func ThemeColor(bucket Bucket, theme domain.Theme) string {
	switch bucket {
	case Planning:
		return theme.StatusPlanning
	case OnTrack:
		return theme.StatusOnTrack
	case AtRisk:
		return theme.StatusAtRisk
	case Blocked:
		return theme.StatusBlocked
	case Completed:
		return theme.StatusCompleted
	case Cancelled:
		return theme.StatusCancelled
	default:
		return theme.StatusNotStarted
	}
}

// Style bundles the derived presentation colors for a classified status.
type Style struct {
	Text       string // full-strength bucket color
	Background string // bucket color at 15% alpha over the surface
	Border     string // bucket color at 40% alpha over the surface
}

// StyleFor derives the text/background/border colors for a status string
// against the given theme and surface color.
func StyleFor(status string, family Family, theme domain.Theme, surface string) Style {
	c := ThemeColor(Classify(status, family), theme)
	return Style{
		Text:       c,
		Background: BlendHex(c, surface, 0.15),
		Border:     BlendHex(c, surface, 0.40),
	}
}
