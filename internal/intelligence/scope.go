package intelligence

import "github.com/progdeck/progdeck/internal/domain"

// ProgramScope is the slice of a program covered by a summary: the selected
// projects plus every record that joins to them.
type ProgramScope struct {
	Projects     []domain.Project
	Resources    []domain.Resource
	Milestones   []domain.Milestone
	Deliverables []domain.Deliverable
}

// ScopeProgram narrows data to the projects in selectedIDs (all projects when
// the selection is empty). Milestones and deliverables are included when
// their projectCode matches a scoped project; a resource qualifies when any
// of its assignments overlaps the scope. Records with dangling project codes
// fall outside every scope.
func ScopeProgram(data *domain.ProgramData, selectedIDs []string) ProgramScope {
	selected := make(map[string]bool, len(selectedIDs))
	for _, id := range selectedIDs {
		selected[id] = true
	}

	var scope ProgramScope
	inScope := make(map[string]bool)
	for _, p := range data.Projects {
		if len(selected) > 0 && !selected[p.ID] {
			continue
		}
		scope.Projects = append(scope.Projects, p)
		inScope[p.Code] = true
	}

	for _, m := range data.Milestones {
		if inScope[m.ProjectCode] {
			scope.Milestones = append(scope.Milestones, m)
		}
	}
	for _, d := range data.Deliverables {
		if inScope[d.ProjectCode] {
			scope.Deliverables = append(scope.Deliverables, d)
		}
	}
	for _, r := range data.Resources {
		for _, code := range r.Assignments {
			if inScope[code] {
				scope.Resources = append(scope.Resources, r)
				break
			}
		}
	}

	return scope
}
