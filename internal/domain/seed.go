package domain

// DefaultConfig returns the stock vocabularies, icons and theme.
func DefaultConfig() ProgramConfig {
	return ProgramConfig{
		ProjectStatuses:     []string{"NOT STARTED", "PLANNING", "ON TRACK", "AT RISK", "BLOCKED", "CANCELLED", "COMPLETED"},
		ResourceRoles:       []string{"UX Program Manager", "UX Designer", "Visual Designer", "Motion Designer", "Engineer", "Design Manager", "Lead", "QA", "Contractor", "Agency"},
		MilestoneStatuses:   []string{"TBD", "Scheduled", "Completed"},
		DeliverableStatuses: []string{"Not Started", "In Progress", "On Hold", "Review", "Completed"},
		HeaderIcons: []string{
			"layers", "ship", "anchor", "compass", "map",
			"shield", "briefcase", "chart", "rocket", "gem",
		},
		Theme: Theme{
			Primary:          "#4f46e5",
			OnPrimary:        "#ffffff",
			Code:             "#4338ca",
			BoldText:         "#1e293b",
			TimelineBar:      "#e0e7ff",
			TimelineMarker:   "#4f46e5",
			TimelineGoal:     "#f43f5e",
			StatusNotStarted: "#94a3b8",
			StatusPlanning:   "#0ea5e9",
			StatusOnTrack:    "#10b981",
			StatusAtRisk:     "#f59e0b",
			StatusBlocked:    "#e11d48",
			StatusCompleted:  "#3b82f6",
			StatusCancelled:  "#64748b",
		},
	}
}

// SeedProgram returns the template program loaded on first run.
func SeedProgram() ProgramData {
	return ProgramData{
		ProgramName: "Program Name",
		Projects: []Project{
			{
				ID:             "1",
				Name:           "Mobile App Redesign",
				Code:           "P01",
				Description:    "Overhauling the primary customer mobile experience.",
				CompletionDate: "2026-12-15",
				Status:         "ON TRACK",
				StatusDetails:  "Design phase complete. Entering development sprint 3.",
			},
			{
				ID:             "2",
				Name:           "Cloud Migration",
				Code:           "P02",
				Description:    "Moving legacy infrastructure to GCP.",
				CompletionDate: "2026-03-20",
				Status:         "AT RISK",
				StatusDetails:  "Latency issues detected in test environment. Resource UXPM01 investigating.",
			},
		},
		Resources: []Resource{
			{ID: "r1", Name: "Alice Johnson", Role: "UX Designer", RoleCode: "UXD01", Allocation: "100%", Assignments: []string{"P01", "P02"}},
			{ID: "r2", Name: "Bob Smith", Role: "Lead", RoleCode: "PM01", Allocation: "50%", Assignments: []string{"P01"}},
			{ID: "r3", Name: "Charlie Davis", Role: "UX Program Manager", RoleCode: "UXPM01", Allocation: "100%", Assignments: []string{"P02"}},
		},
		Deliverables: []Deliverable{
			{ID: "d1", Name: "High-Fidelity Mocks", Code: "D01", ProjectCode: "P01", Links: []string{"https://figma.com/design/P01"}, DueDate: "2026-11-01", Status: "Completed"},
			{ID: "d2", Name: "Technical Spec Doc", Code: "D02", ProjectCode: "P01", Links: []string{"https://docs.google.com/D02", "https://github.com/spec/D02"}, DueDate: "2026-11-15", Status: "In Progress"},
			{ID: "d3", Name: "Infrastructure Plan", Code: "D03", ProjectCode: "P02", Links: []string{}, DueDate: "2026-12-01", Status: "Not Started"},
		},
		Milestones: []Milestone{
			{ID: "m1", Name: "Director Review", Code: "M01", ProjectCode: "P01", DueDate: "2026-10-25", Status: "Completed", StatusDetails: "Approved by Director. All feedback addressed."},
			{ID: "m2", Name: "Handoff to Engg", Code: "M02", ProjectCode: "P01", DueDate: "2026-11-20", Status: "Scheduled", StatusDetails: "Meeting invitation sent to engineering leads."},
			{ID: "m3", Name: "Leadership Review", Code: "M03", ProjectCode: "P02", DueDate: "2026-02-15", Status: "TBD", StatusDetails: "Pending final migration scope confirmation."},
		},
		Config: DefaultConfig(),
	}
}
