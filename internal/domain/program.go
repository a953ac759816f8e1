package domain

// Project is a tracked workstream. Code is the human-assigned display code
// (nominally P + 2-digit sequence, but freely editable text).
type Project struct {
	ID             string
	Name           string
	Code           string
	Description    string
	CompletionDate string // ISO YYYY-MM-DD, empty if not set
	Status         string
	StatusDetails  string
}

// Resource is a team member. RoleCode is derived from Role (see the rolecode
// package) but remains independently editable — derivation is advisory.
// Assignments holds project codes, not project ids.
type Resource struct {
	ID          string
	Name        string
	Role        string
	RoleCode    string
	Allocation  string // free text, e.g. "100%"
	Assignments []string
}

// Milestone is a dated event belonging to one project by code.
type Milestone struct {
	ID            string
	Name          string
	Code          string
	ProjectCode   string
	DueDate       string // ISO YYYY-MM-DD
	Status        string // TBD | Scheduled | Completed
	StatusDetails string
}

// Deliverable is a concrete project outcome with zero or more links.
type Deliverable struct {
	ID          string
	Name        string
	Code        string
	ProjectCode string
	Links       []string
	DueDate     string // ISO YYYY-MM-DD
	Status      string
}

// Theme maps named color slots to hex values.
type Theme struct {
	Primary          string `yaml:"primary"`
	OnPrimary        string `yaml:"onPrimary"`
	Code             string `yaml:"code"`
	BoldText         string `yaml:"boldText"`
	TimelineBar      string `yaml:"timelineBar"`
	TimelineMarker   string `yaml:"timelineMarker"`
	TimelineGoal     string `yaml:"timelineGoal"`
	StatusNotStarted string `yaml:"statusNotStarted"`
	StatusPlanning   string `yaml:"statusPlanning"`
	StatusOnTrack    string `yaml:"statusOnTrack"`
	StatusAtRisk     string `yaml:"statusAtRisk"`
	StatusBlocked    string `yaml:"statusBlocked"`
	StatusCompleted  string `yaml:"statusCompleted"`
	StatusCancelled  string `yaml:"statusCancelled"`
}

// ProgramConfig holds the configurable vocabularies and presentation options.
// Vocabularies are ordered sets of free-form strings, not closed enums.
type ProgramConfig struct {
	ProjectStatuses     []string `yaml:"projectStatuses"`
	ResourceRoles       []string `yaml:"resourceRoles"`
	MilestoneStatuses   []string `yaml:"milestoneStatuses"`
	DeliverableStatuses []string `yaml:"deliverableStatuses"`
	HeaderIcons         []string `yaml:"headerIcons"`
	Theme               Theme    `yaml:"theme"`
}

// ChatRole distinguishes the two sides of an assistant conversation.
type ChatRole string

const (
	ChatUser  ChatRole = "user"
	ChatModel ChatRole = "model"
)

// ChatMessage is one turn in the assistant chat. The sequence is append-only
// and scoped to a single process lifetime.
type ChatMessage struct {
	Role ChatRole
	Text string
}

// ProgramData is the whole in-memory program: the single aggregate the state
// container owns. Consumers treat values handed out as immutable.
type ProgramData struct {
	ProgramName  string
	Projects     []Project
	Resources    []Resource
	Deliverables []Deliverable
	Milestones   []Milestone
	Config       ProgramConfig
}

// ProjectByCode returns the project with the given code, or nil. Codes are
// user-editable and not guaranteed unique; the first match wins, mirroring
// join behavior elsewhere (a dangling code resolves to an empty join).
func (d *ProgramData) ProjectByCode(code string) *Project {
	for i := range d.Projects {
		if d.Projects[i].Code == code {
			return &d.Projects[i]
		}
	}
	return nil
}

// ProjectByID returns the project with the given id, or nil.
func (d *ProgramData) ProjectByID(id string) *Project {
	for i := range d.Projects {
		if d.Projects[i].ID == id {
			return &d.Projects[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the program data. The state container hands
// out clones so published snapshots are never mutated in place.
func (d ProgramData) Clone() ProgramData {
	out := d
	out.Projects = append([]Project(nil), d.Projects...)
	out.Milestones = append([]Milestone(nil), d.Milestones...)

	out.Resources = make([]Resource, len(d.Resources))
	for i, r := range d.Resources {
		r.Assignments = append([]string(nil), r.Assignments...)
		out.Resources[i] = r
	}

	out.Deliverables = make([]Deliverable, len(d.Deliverables))
	for i, del := range d.Deliverables {
		del.Links = append([]string(nil), del.Links...)
		out.Deliverables[i] = del
	}

	out.Config = d.Config.Clone()
	return out
}

// Clone returns a deep copy of the config.
func (c ProgramConfig) Clone() ProgramConfig {
	out := c
	out.ProjectStatuses = append([]string(nil), c.ProjectStatuses...)
	out.ResourceRoles = append([]string(nil), c.ResourceRoles...)
	out.MilestoneStatuses = append([]string(nil), c.MilestoneStatuses...)
	out.DeliverableStatuses = append([]string(nil), c.DeliverableStatuses...)
	out.HeaderIcons = append([]string(nil), c.HeaderIcons...)
	return out
}
