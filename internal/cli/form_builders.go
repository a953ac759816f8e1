package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/progdeck/progdeck/internal/domain"
)

// validateOptionalDate accepts blank or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, ok := domain.ParseISODate(strings.TrimSpace(s)); !ok {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

// validateRequired rejects blank input.
func validateRequired(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

// dateInput returns a huh.Input for an optional ISO date field.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

// vocabSelect builds a select over a configured vocabulary. The current
// value is kept selectable even when it has been removed from the vocabulary.
func vocabSelect(title string, vocab []string, value *string) *huh.Select[string] {
	options := make([]huh.Option[string], 0, len(vocab)+1)
	seen := false
	for _, v := range vocab {
		if v == *value {
			seen = true
		}
		options = append(options, huh.NewOption(v, v))
	}
	if !seen && *value != "" {
		options = append(options, huh.NewOption(*value, *value))
	}
	return huh.NewSelect[string]().Title(title).Options(options...).Value(value)
}

// projectCodeSelect builds a select over project codes, with a blank option
// for unattached records.
func projectCodeSelect(title string, data domain.ProgramData, allowBlank bool, value *string) *huh.Select[string] {
	var options []huh.Option[string]
	if allowBlank {
		options = append(options, huh.NewOption("(none)", ""))
	}
	seen := *value == "" && allowBlank
	for _, p := range data.Projects {
		label := fmt.Sprintf("%s — %s", p.Code, p.Name)
		if p.Code == *value {
			seen = true
		}
		options = append(options, huh.NewOption(label, p.Code))
	}
	if !seen && *value != "" {
		// Dangling code: keep it selectable rather than silently rewriting.
		options = append(options, huh.NewOption(*value+" (dangling)", *value))
	}
	return huh.NewSelect[string]().Title(title).Options(options...).Value(value)
}

// assignmentsMultiSelect builds a multi-select over project codes for
// resource assignments.
func assignmentsMultiSelect(data domain.ProgramData, value *[]string) *huh.MultiSelect[string] {
	options := make([]huh.Option[string], 0, len(data.Projects))
	known := map[string]bool{}
	for _, p := range data.Projects {
		known[p.Code] = true
		options = append(options, huh.NewOption(fmt.Sprintf("%s — %s", p.Code, p.Name), p.Code))
	}
	for _, code := range *value {
		if !known[code] {
			options = append(options, huh.NewOption(code+" (dangling)", code))
			known[code] = true
		}
	}
	return huh.NewMultiSelect[string]().
		Title("Project Assignments").
		Options(options...).
		Value(value)
}

// projectForm edits a project in place via the bound pointers.
func projectForm(state *SharedState, p *domain.Project) *huh.Form {
	cfg := state.Store.Data().Config
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&p.Name).Validate(validateRequired),
			huh.NewInput().Title("Code").Value(&p.Code).Validate(validateRequired),
			huh.NewText().Title("Description").Value(&p.Description).Lines(3),
			dateInput("Completion Date (blank for none)", &p.CompletionDate),
			vocabSelect("Status", cfg.ProjectStatuses, &p.Status),
			huh.NewText().Title("Status Details").Value(&p.StatusDetails).Lines(3),
		),
	).WithTheme(huhTheme(state.Palette())).WithShowHelp(false)
}

// resourceForm edits a resource. Role changes regenerate the role code on
// save unless the code was hand-edited (the store applies that rule).
func resourceForm(state *SharedState, r *domain.Resource) *huh.Form {
	data := state.Store.Data()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&r.Name).Validate(validateRequired),
			vocabSelect("Role", data.Config.ResourceRoles, &r.Role),
			huh.NewInput().Title("Role Code").Value(&r.RoleCode),
			huh.NewInput().Title("Allocation").Placeholder("100%").Value(&r.Allocation),
			assignmentsMultiSelect(data, &r.Assignments),
		),
	).WithTheme(huhTheme(state.Palette())).WithShowHelp(false)
}

// milestoneForm edits a milestone.
func milestoneForm(state *SharedState, m *domain.Milestone) *huh.Form {
	data := state.Store.Data()
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.Name).Validate(validateRequired),
			huh.NewInput().Title("Code").Value(&m.Code).Validate(validateRequired),
			projectCodeSelect("Project", data, false, &m.ProjectCode),
			dateInput("Due Date", &m.DueDate),
			vocabSelect("Status", data.Config.MilestoneStatuses, &m.Status),
			huh.NewText().Title("Status Details").Value(&m.StatusDetails).Lines(2),
		),
	).WithTheme(huhTheme(state.Palette())).WithShowHelp(false)
}

// deliverableForm edits a deliverable. Links are edited as one-per-line text.
func deliverableForm(state *SharedState, d *domain.Deliverable, links *string) *huh.Form {
	data := state.Store.Data()
	*links = strings.Join(d.Links, "\n")
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&d.Name).Validate(validateRequired),
			huh.NewInput().Title("Code").Value(&d.Code).Validate(validateRequired),
			projectCodeSelect("Project", data, true, &d.ProjectCode),
			dateInput("Due Date", &d.DueDate),
			vocabSelect("Status", data.Config.DeliverableStatuses, &d.Status),
			huh.NewText().Title("Links (one per line)").Value(links).Lines(3),
		),
	).WithTheme(huhTheme(state.Palette())).WithShowHelp(false)
}

// splitLinks parses the one-per-line links editor back into a slice.
func splitLinks(raw string) []string {
	var links []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			links = append(links, trimmed)
		}
	}
	if links == nil {
		links = []string{}
	}
	return links
}
