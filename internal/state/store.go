// Package state owns the live program aggregate. All mutation goes through
// the Store, which applies the domain's derivation rules: sequential display
// codes for new records, role-code generation on role changes, and code-edit
// cascade so joins follow a renamed project.
package state

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/progdeck/progdeck/internal/domain"
	"github.com/progdeck/progdeck/internal/rolecode"
)

// ErrNotFound is returned when an update or delete names an unknown record.
var ErrNotFound = errors.New("record not found")

// Store holds the program data. Mutations are copy-on-write: the aggregate
// handed out by Data is never modified afterwards, so callers can keep it
// (or hand it to a goroutine) without copying. The Store itself is not safe
// for concurrent mutation; drive it from one goroutine.
type Store struct {
	data domain.ProgramData
}

// NewStore creates a Store seeded with data.
func NewStore(data domain.ProgramData) *Store {
	return &Store{data: data}
}

// Data returns the current aggregate. Treat it as immutable.
func (s *Store) Data() domain.ProgramData { return s.data }

// Replace swaps in a whole new aggregate, e.g. after loading a snapshot.
func (s *Store) Replace(data domain.ProgramData) {
	s.data = data
}

// SetProgramName renames the program.
func (s *Store) SetProgramName(name string) {
	s.data.ProgramName = name
}

// SetConfig replaces the configuration (vocabularies, icons, theme).
func (s *Store) SetConfig(cfg domain.ProgramConfig) {
	s.data.Config = cfg.Clone()
}

// AddProject appends a new project with the next sequential display code and
// the first configured status, and returns it.
func (s *Store) AddProject() domain.Project {
	p := domain.Project{
		ID:          uuid.NewString(),
		Name:        "New Project",
		Code:        fmt.Sprintf("P%02d", len(s.data.Projects)+1),
		Description: "Enter description...",
		Status:      firstOr(s.data.Config.ProjectStatuses, "NOT STARTED"),
	}
	s.data.Projects = appendCopy(s.data.Projects, p)
	return p
}

// AddResource appends a blank resource. Role and role code stay empty until
// a role is chosen.
func (s *Store) AddResource() domain.Resource {
	r := domain.Resource{
		ID:          uuid.NewString(),
		Name:        "New Resource",
		Allocation:  "100%",
		Assignments: []string{},
	}
	s.data.Resources = appendCopy(s.data.Resources, r)
	return r
}

// AddMilestone appends a new milestone attached to the first project when
// one exists.
func (s *Store) AddMilestone() domain.Milestone {
	projectCode := "P01"
	if len(s.data.Projects) > 0 {
		projectCode = s.data.Projects[0].Code
	}
	m := domain.Milestone{
		ID:          uuid.NewString(),
		Name:        "New Milestone",
		Code:        fmt.Sprintf("M%02d", len(s.data.Milestones)+1),
		ProjectCode: projectCode,
		DueDate:     "2026-01-01",
		Status:      firstOr(s.data.Config.MilestoneStatuses, "TBD"),
	}
	s.data.Milestones = appendCopy(s.data.Milestones, m)
	return m
}

// AddDeliverable appends a new deliverable. The project code defaults only
// when the choice is unambiguous (exactly one project).
func (s *Store) AddDeliverable() domain.Deliverable {
	projectCode := ""
	if len(s.data.Projects) == 1 {
		projectCode = s.data.Projects[0].Code
	}
	d := domain.Deliverable{
		ID:          uuid.NewString(),
		Name:        "New Deliverable",
		Code:        fmt.Sprintf("D%02d", len(s.data.Deliverables)+1),
		ProjectCode: projectCode,
		Links:       []string{},
		DueDate:     "2026-01-01",
		Status:      firstOr(s.data.Config.DeliverableStatuses, "Not Started"),
	}
	s.data.Deliverables = appendCopy(s.data.Deliverables, d)
	return d
}

// UpdateProject replaces the project with updated's ID. When the display
// code changes, every milestone, deliverable, and resource assignment
// pointing at the old code follows to the new one.
func (s *Store) UpdateProject(updated domain.Project) error {
	idx := -1
	for i := range s.data.Projects {
		if s.data.Projects[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	oldCode := s.data.Projects[idx].Code
	projects := append([]domain.Project(nil), s.data.Projects...)
	projects[idx] = updated
	s.data.Projects = projects

	if oldCode != updated.Code {
		s.cascadeCodeChange(oldCode, updated.Code)
	}
	return nil
}

// UpdateResource replaces the resource with updated's ID. When the role
// changed and the role code was left alone, a fresh role code is derived;
// a hand-edited role code always wins.
func (s *Store) UpdateResource(updated domain.Resource) error {
	idx := -1
	for i := range s.data.Resources {
		if s.data.Resources[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrNotFound
	}

	prev := s.data.Resources[idx]
	if updated.Role != prev.Role && updated.RoleCode == prev.RoleCode {
		updated.RoleCode = rolecode.Generate(updated.Role, s.data.Resources, updated.ID)
	}

	resources := append([]domain.Resource(nil), s.data.Resources...)
	resources[idx] = updated
	s.data.Resources = resources
	return nil
}

// UpdateMilestone replaces the milestone with updated's ID.
func (s *Store) UpdateMilestone(updated domain.Milestone) error {
	for i := range s.data.Milestones {
		if s.data.Milestones[i].ID == updated.ID {
			milestones := append([]domain.Milestone(nil), s.data.Milestones...)
			milestones[i] = updated
			s.data.Milestones = milestones
			return nil
		}
	}
	return ErrNotFound
}

// UpdateDeliverable replaces the deliverable with updated's ID.
func (s *Store) UpdateDeliverable(updated domain.Deliverable) error {
	for i := range s.data.Deliverables {
		if s.data.Deliverables[i].ID == updated.ID {
			deliverables := append([]domain.Deliverable(nil), s.data.Deliverables...)
			deliverables[i] = updated
			s.data.Deliverables = deliverables
			return nil
		}
	}
	return ErrNotFound
}

// DeleteProject removes a project. Records that referenced its code are kept
// and simply dangle; dangling joins resolve to nothing everywhere else.
func (s *Store) DeleteProject(id string) error {
	projects := make([]domain.Project, 0, len(s.data.Projects))
	found := false
	for _, p := range s.data.Projects {
		if p.ID == id {
			found = true
			continue
		}
		projects = append(projects, p)
	}
	if !found {
		return ErrNotFound
	}
	s.data.Projects = projects
	return nil
}

// DeleteResource removes a resource.
func (s *Store) DeleteResource(id string) error {
	resources := make([]domain.Resource, 0, len(s.data.Resources))
	found := false
	for _, r := range s.data.Resources {
		if r.ID == id {
			found = true
			continue
		}
		resources = append(resources, r)
	}
	if !found {
		return ErrNotFound
	}
	s.data.Resources = resources
	return nil
}

// DeleteMilestone removes a milestone.
func (s *Store) DeleteMilestone(id string) error {
	milestones := make([]domain.Milestone, 0, len(s.data.Milestones))
	found := false
	for _, m := range s.data.Milestones {
		if m.ID == id {
			found = true
			continue
		}
		milestones = append(milestones, m)
	}
	if !found {
		return ErrNotFound
	}
	s.data.Milestones = milestones
	return nil
}

// DeleteDeliverable removes a deliverable.
func (s *Store) DeleteDeliverable(id string) error {
	deliverables := make([]domain.Deliverable, 0, len(s.data.Deliverables))
	found := false
	for _, d := range s.data.Deliverables {
		if d.ID == id {
			found = true
			continue
		}
		deliverables = append(deliverables, d)
	}
	if !found {
		return ErrNotFound
	}
	s.data.Deliverables = deliverables
	return nil
}

// cascadeCodeChange rewrites joins from oldCode to newCode.
func (s *Store) cascadeCodeChange(oldCode, newCode string) {
	milestones := append([]domain.Milestone(nil), s.data.Milestones...)
	for i := range milestones {
		if milestones[i].ProjectCode == oldCode {
			milestones[i].ProjectCode = newCode
		}
	}
	s.data.Milestones = milestones

	deliverables := append([]domain.Deliverable(nil), s.data.Deliverables...)
	for i := range deliverables {
		if deliverables[i].ProjectCode == oldCode {
			deliverables[i].ProjectCode = newCode
		}
	}
	s.data.Deliverables = deliverables

	resources := append([]domain.Resource(nil), s.data.Resources...)
	for i := range resources {
		changed := false
		for _, code := range resources[i].Assignments {
			if code == oldCode {
				changed = true
				break
			}
		}
		if !changed {
			continue
		}
		assignments := append([]string(nil), resources[i].Assignments...)
		for j := range assignments {
			if assignments[j] == oldCode {
				assignments[j] = newCode
			}
		}
		resources[i].Assignments = assignments
	}
	s.data.Resources = resources
}

func firstOr(values []string, fallback string) string {
	if len(values) > 0 {
		return values[0]
	}
	return fallback
}

func appendCopy[T any](src []T, v T) []T {
	out := make([]T, 0, len(src)+1)
	out = append(out, src...)
	return append(out, v)
}
