package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/progdeck/progdeck/internal/domain"
)

// ErrEmpty is returned by Load when the database holds no snapshot.
var ErrEmpty = errors.New("no snapshot in database")

// ProgramStore saves and loads whole-program snapshots. Save replaces any
// previous snapshot; the store never merges.
type ProgramStore struct {
	db *sql.DB
}

// NewProgramStore creates a ProgramStore on an open database.
func NewProgramStore(db *sql.DB) *ProgramStore {
	return &ProgramStore{db: db}
}

// Save writes the snapshot in one transaction, replacing whatever was there.
func (s *ProgramStore) Save(ctx context.Context, data domain.ProgramData, now time.Time) error {
	cfgYAML, err := yaml.Marshal(data.Config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"deliverable_links", "resource_assignments", "deliverables", "milestones", "resources", "projects", "program"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO program (id, name, config_yaml, saved_at) VALUES (1, ?, ?, ?)`,
		data.ProgramName, string(cfgYAML), now.UTC().Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("inserting program row: %w", err)
	}

	for i, p := range data.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, code, description, completion_date, status, status_details, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Name, p.Code, p.Description, p.CompletionDate, p.Status, p.StatusDetails, i,
		); err != nil {
			return fmt.Errorf("inserting project %s: %w", p.Code, err)
		}
	}

	for i, r := range data.Resources {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO resources (id, name, role, role_code, allocation, position) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Role, r.RoleCode, r.Allocation, i,
		); err != nil {
			return fmt.Errorf("inserting resource %s: %w", r.Name, err)
		}
		for j, code := range r.Assignments {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO resource_assignments (resource_id, project_code, position) VALUES (?, ?, ?)`,
				r.ID, code, j,
			); err != nil {
				return fmt.Errorf("inserting assignment for %s: %w", r.Name, err)
			}
		}
	}

	for i, m := range data.Milestones {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO milestones (id, name, code, project_code, due_date, status, status_details, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Code, m.ProjectCode, m.DueDate, m.Status, m.StatusDetails, i,
		); err != nil {
			return fmt.Errorf("inserting milestone %s: %w", m.Code, err)
		}
	}

	for i, d := range data.Deliverables {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deliverables (id, name, code, project_code, due_date, status, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Name, d.Code, d.ProjectCode, d.DueDate, d.Status, i,
		); err != nil {
			return fmt.Errorf("inserting deliverable %s: %w", d.Code, err)
		}
		for j, url := range d.Links {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO deliverable_links (deliverable_id, url, position) VALUES (?, ?, ?)`,
				d.ID, url, j,
			); err != nil {
				return fmt.Errorf("inserting link for %s: %w", d.Code, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot back, preserving row order.
func (s *ProgramStore) Load(ctx context.Context) (domain.ProgramData, error) {
	var data domain.ProgramData

	var cfgYAML string
	err := s.db.QueryRowContext(ctx, `SELECT name, config_yaml FROM program WHERE id = 1`).
		Scan(&data.ProgramName, &cfgYAML)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ProgramData{}, ErrEmpty
	}
	if err != nil {
		return domain.ProgramData{}, fmt.Errorf("loading program row: %w", err)
	}
	if err := yaml.Unmarshal([]byte(cfgYAML), &data.Config); err != nil {
		return domain.ProgramData{}, fmt.Errorf("decoding config: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, code, description, completion_date, status, status_details FROM projects ORDER BY position`)
	if err != nil {
		return domain.ProgramData{}, fmt.Errorf("loading projects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.CompletionDate, &p.Status, &p.StatusDetails); err != nil {
			return domain.ProgramData{}, fmt.Errorf("scanning project: %w", err)
		}
		data.Projects = append(data.Projects, p)
	}
	if err := rows.Err(); err != nil {
		return domain.ProgramData{}, fmt.Errorf("iterating projects: %w", err)
	}

	if data.Resources, err = s.loadResources(ctx); err != nil {
		return domain.ProgramData{}, err
	}
	if data.Milestones, err = s.loadMilestones(ctx); err != nil {
		return domain.ProgramData{}, err
	}
	if data.Deliverables, err = s.loadDeliverables(ctx); err != nil {
		return domain.ProgramData{}, err
	}

	return data, nil
}

func (s *ProgramStore) loadResources(ctx context.Context) ([]domain.Resource, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, role, role_code, allocation FROM resources ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var r domain.Resource
		if err := rows.Scan(&r.ID, &r.Name, &r.Role, &r.RoleCode, &r.Allocation); err != nil {
			return nil, fmt.Errorf("scanning resource: %w", err)
		}
		r.Assignments = []string{}
		resources = append(resources, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating resources: %w", err)
	}

	aRows, err := s.db.QueryContext(ctx,
		`SELECT resource_id, project_code FROM resource_assignments ORDER BY resource_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading assignments: %w", err)
	}
	defer aRows.Close()
	for aRows.Next() {
		var resourceID, code string
		if err := aRows.Scan(&resourceID, &code); err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		for i := range resources {
			if resources[i].ID == resourceID {
				resources[i].Assignments = append(resources[i].Assignments, code)
				break
			}
		}
	}
	if err := aRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating assignments: %w", err)
	}

	return resources, nil
}

func (s *ProgramStore) loadMilestones(ctx context.Context) ([]domain.Milestone, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, code, project_code, due_date, status, status_details FROM milestones ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	defer rows.Close()

	var milestones []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.ProjectCode, &m.DueDate, &m.Status, &m.StatusDetails); err != nil {
			return nil, fmt.Errorf("scanning milestone: %w", err)
		}
		milestones = append(milestones, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return milestones, nil
}

func (s *ProgramStore) loadDeliverables(ctx context.Context) ([]domain.Deliverable, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, code, project_code, due_date, status FROM deliverables ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("loading deliverables: %w", err)
	}
	defer rows.Close()

	var deliverables []domain.Deliverable
	for rows.Next() {
		var d domain.Deliverable
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &d.ProjectCode, &d.DueDate, &d.Status); err != nil {
			return nil, fmt.Errorf("scanning deliverable: %w", err)
		}
		d.Links = []string{}
		deliverables = append(deliverables, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating deliverables: %w", err)
	}

	lRows, err := s.db.QueryContext(ctx,
		`SELECT deliverable_id, url FROM deliverable_links ORDER BY deliverable_id, position`)
	if err != nil {
		return nil, fmt.Errorf("loading links: %w", err)
	}
	defer lRows.Close()
	for lRows.Next() {
		var deliverableID, url string
		if err := lRows.Scan(&deliverableID, &url); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		for i := range deliverables {
			if deliverables[i].ID == deliverableID {
				deliverables[i].Links = append(deliverables[i].Links, url)
				break
			}
		}
	}
	if err := lRows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}

	return deliverables, nil
}
