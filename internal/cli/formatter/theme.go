// Package formatter renders program data for the terminal: theme-driven
// styles, status pills, aligned tables, and the timeline chart. All color
// comes from the program theme so user palette edits restyle the whole UI.
package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/health"
)

// Fixed chrome colors independent of the user theme.
var (
	ColorDim = lipgloss.Color("#928374")
	ColorFg  = lipgloss.Color("#ebdbb2")

	StyleDim = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg  = lipgloss.NewStyle().Foreground(ColorFg)
)

// Palette holds the lipgloss styles derived from one program theme.
type Palette struct {
	Theme domain.Theme

	Primary lipgloss.Style
	Code    lipgloss.Style
	Bold    lipgloss.Style
	Header  lipgloss.Style
}

// NewPalette builds styles from a theme.
func NewPalette(theme domain.Theme) Palette {
	return Palette{
		Theme:   theme,
		Primary: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary)),
		Code:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Code)).Bold(true),
		Bold:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.BoldText)).Bold(true),
		Header:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary)).Bold(true),
	}
}

// pillSurface is the dark backdrop the pill colors are blended against.
const pillSurface = "#282828"

// StatusPill renders a status as a pill: bucket color on a blended
// background, like the original badge treatment.
func (p Palette) StatusPill(status string, family health.Family) string {
	s := health.StyleFor(status, family, p.Theme, pillSurface)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.Text)).
		Background(lipgloss.Color(s.Background)).
		Bold(true).
		Padding(0, 1).
		Render(status)
}

// StatusDot renders a colored dot plus the status text.
func (p Palette) StatusDot(status string, family health.Family) string {
	bucket := health.Classify(status, family)
	color := health.ThemeColor(bucket, p.Theme)
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render("●")
	return dot + " " + status
}

// Header renders a section header with an underline.
func (p Palette) SectionHeader(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", p.Header.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted chrome color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// ShortDate renders an ISO date as MM/DD/YY for display, passing through
// anything unparseable.
func ShortDate(iso string) string {
	if iso == "" {
		return Dim("—")
	}
	return domain.FormatShortDate(iso)
}

// Truncate shortens s to width runes, appending an ellipsis when cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
