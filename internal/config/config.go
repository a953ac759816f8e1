// Package config loads a program definition from a YAML file. Everything in
// the file is optional: omitted vocabularies and theme slots fall back to the
// built-in defaults, and a missing file yields the seeded demo program.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/progdeck/progdeck/internal/domain"
)

// EnvFile names the environment variable holding the program file path.
const EnvFile = "PROGDECK_FILE"

type programFile struct {
	ProgramName  string                `yaml:"programName"`
	Config       *domain.ProgramConfig `yaml:"config"`
	Projects     []projectRow          `yaml:"projects"`
	Resources    []resourceRow         `yaml:"resources"`
	Milestones   []milestoneRow        `yaml:"milestones"`
	Deliverables []deliverableRow      `yaml:"deliverables"`
}

// Entity rows carry yaml tags here so the domain structs stay tag-free for
// this format. IDs are optional in the file; absent ones are filled in.

type projectRow struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Code           string `yaml:"code"`
	Description    string `yaml:"description"`
	CompletionDate string `yaml:"completionDate"`
	Status         string `yaml:"status"`
	StatusDetails  string `yaml:"statusDetails"`
}

type resourceRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Role        string   `yaml:"role"`
	RoleCode    string   `yaml:"roleCode"`
	Allocation  string   `yaml:"allocation"`
	Assignments []string `yaml:"projectAssignments"`
}

type milestoneRow struct {
	ID            string `yaml:"id"`
	Name          string `yaml:"name"`
	Code          string `yaml:"code"`
	ProjectCode   string `yaml:"projectCode"`
	DueDate       string `yaml:"dueDate"`
	Status        string `yaml:"status"`
	StatusDetails string `yaml:"statusDetails"`
}

type deliverableRow struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Code        string   `yaml:"code"`
	ProjectCode string   `yaml:"projectCode"`
	Links       []string `yaml:"links"`
	DueDate     string   `yaml:"dueDate"`
	Status      string   `yaml:"status"`
}

// LoadOrSeed loads the program file at path, or returns the seeded demo
// program when path is empty.
func LoadOrSeed(path string) (domain.ProgramData, error) {
	if path == "" {
		return domain.SeedProgram(), nil
	}
	return Load(path)
}

// Load reads and parses a program file.
func Load(path string) (domain.ProgramData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ProgramData{}, fmt.Errorf("read program file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes YAML into a program. A file that names entities gets exactly
// those entities; a file without any starts the program empty rather than
// seeding demo data.
func Parse(raw []byte) (domain.ProgramData, error) {
	var file programFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.ProgramData{}, fmt.Errorf("parse program file: %w", err)
	}

	data := domain.ProgramData{
		ProgramName:  file.ProgramName,
		Projects:     make([]domain.Project, 0, len(file.Projects)),
		Resources:    make([]domain.Resource, 0, len(file.Resources)),
		Milestones:   make([]domain.Milestone, 0, len(file.Milestones)),
		Deliverables: make([]domain.Deliverable, 0, len(file.Deliverables)),
		Config:       mergeConfig(file.Config),
	}
	if data.ProgramName == "" {
		data.ProgramName = "Program Dashboard"
	}

	for i, row := range file.Projects {
		data.Projects = append(data.Projects, domain.Project{
			ID:             fallbackID(row.ID, "p", i),
			Name:           row.Name,
			Code:           row.Code,
			Description:    row.Description,
			CompletionDate: row.CompletionDate,
			Status:         row.Status,
			StatusDetails:  row.StatusDetails,
		})
	}
	for i, row := range file.Resources {
		allocation := row.Allocation
		if allocation == "" {
			allocation = "100%"
		}
		data.Resources = append(data.Resources, domain.Resource{
			ID:          fallbackID(row.ID, "r", i),
			Name:        row.Name,
			Role:        row.Role,
			RoleCode:    row.RoleCode,
			Allocation:  allocation,
			Assignments: row.Assignments,
		})
	}
	for i, row := range file.Milestones {
		data.Milestones = append(data.Milestones, domain.Milestone{
			ID:            fallbackID(row.ID, "m", i),
			Name:          row.Name,
			Code:          row.Code,
			ProjectCode:   row.ProjectCode,
			DueDate:       row.DueDate,
			Status:        row.Status,
			StatusDetails: row.StatusDetails,
		})
	}
	for i, row := range file.Deliverables {
		data.Deliverables = append(data.Deliverables, domain.Deliverable{
			ID:          fallbackID(row.ID, "d", i),
			Name:        row.Name,
			Code:        row.Code,
			ProjectCode: row.ProjectCode,
			Links:       row.Links,
			DueDate:     row.DueDate,
			Status:      row.Status,
		})
	}

	return data, nil
}

// Render encodes a program back into the file format, the inverse of Parse.
// Used when restoring a snapshot into an editable program file.
func Render(data domain.ProgramData) ([]byte, error) {
	cfg := data.Config.Clone()
	file := programFile{
		ProgramName:  data.ProgramName,
		Config:       &cfg,
		Projects:     make([]projectRow, 0, len(data.Projects)),
		Resources:    make([]resourceRow, 0, len(data.Resources)),
		Milestones:   make([]milestoneRow, 0, len(data.Milestones)),
		Deliverables: make([]deliverableRow, 0, len(data.Deliverables)),
	}

	for _, p := range data.Projects {
		file.Projects = append(file.Projects, projectRow{
			ID:             p.ID,
			Name:           p.Name,
			Code:           p.Code,
			Description:    p.Description,
			CompletionDate: p.CompletionDate,
			Status:         p.Status,
			StatusDetails:  p.StatusDetails,
		})
	}
	for _, r := range data.Resources {
		file.Resources = append(file.Resources, resourceRow{
			ID:          r.ID,
			Name:        r.Name,
			Role:        r.Role,
			RoleCode:    r.RoleCode,
			Allocation:  r.Allocation,
			Assignments: r.Assignments,
		})
	}
	for _, m := range data.Milestones {
		file.Milestones = append(file.Milestones, milestoneRow{
			ID:            m.ID,
			Name:          m.Name,
			Code:          m.Code,
			ProjectCode:   m.ProjectCode,
			DueDate:       m.DueDate,
			Status:        m.Status,
			StatusDetails: m.StatusDetails,
		})
	}
	for _, d := range data.Deliverables {
		file.Deliverables = append(file.Deliverables, deliverableRow{
			ID:          d.ID,
			Name:        d.Name,
			Code:        d.Code,
			ProjectCode: d.ProjectCode,
			Links:       d.Links,
			DueDate:     d.DueDate,
			Status:      d.Status,
		})
	}

	out, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("render program file: %w", err)
	}
	return out, nil
}

// mergeConfig overlays the file's config onto the defaults. Omitted lists
// and blank theme slots keep their default values; a provided list replaces
// its default wholesale.
func mergeConfig(file *domain.ProgramConfig) domain.ProgramConfig {
	cfg := domain.DefaultConfig()
	if file == nil {
		return cfg
	}

	if len(file.ProjectStatuses) > 0 {
		cfg.ProjectStatuses = file.ProjectStatuses
	}
	if len(file.ResourceRoles) > 0 {
		cfg.ResourceRoles = file.ResourceRoles
	}
	if len(file.MilestoneStatuses) > 0 {
		cfg.MilestoneStatuses = file.MilestoneStatuses
	}
	if len(file.DeliverableStatuses) > 0 {
		cfg.DeliverableStatuses = file.DeliverableStatuses
	}
	if len(file.HeaderIcons) > 0 {
		cfg.HeaderIcons = file.HeaderIcons
	}
	cfg.Theme = mergeTheme(cfg.Theme, file.Theme)
	return cfg
}

func mergeTheme(base, over domain.Theme) domain.Theme {
	pick := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	pick(&base.Primary, over.Primary)
	pick(&base.OnPrimary, over.OnPrimary)
	pick(&base.Code, over.Code)
	pick(&base.BoldText, over.BoldText)
	pick(&base.TimelineBar, over.TimelineBar)
	pick(&base.TimelineMarker, over.TimelineMarker)
	pick(&base.TimelineGoal, over.TimelineGoal)
	pick(&base.StatusNotStarted, over.StatusNotStarted)
	pick(&base.StatusPlanning, over.StatusPlanning)
	pick(&base.StatusOnTrack, over.StatusOnTrack)
	pick(&base.StatusAtRisk, over.StatusAtRisk)
	pick(&base.StatusBlocked, over.StatusBlocked)
	pick(&base.StatusCompleted, over.StatusCompleted)
	pick(&base.StatusCancelled, over.StatusCancelled)
	return base
}

func fallbackID(id, prefix string, i int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s%d", prefix, i+1)
}
