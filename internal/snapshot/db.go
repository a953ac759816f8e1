// Package snapshot persists whole-program snapshots to SQLite for the
// export and load commands. It is an on-demand store, not a live
// persistence layer: the program runs entirely in memory.
package snapshot

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens a SQLite database at the given path, ":memory:" included.
// Sets WAL mode, enables foreign keys, and runs migrations.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// Joins are by display code, which is user-editable free text, so project
// codes are deliberately unconstrained: a dangling code is valid data.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS program (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		name TEXT NOT NULL,
		config_yaml TEXT NOT NULL,
		saved_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		completion_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		status_details TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS resources (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT '',
		role_code TEXT NOT NULL DEFAULT '',
		allocation TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS resource_assignments (
		resource_id TEXT NOT NULL REFERENCES resources(id) ON DELETE CASCADE,
		project_code TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (resource_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS milestones (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		project_code TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		status_details TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliverables (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL,
		project_code TEXT NOT NULL DEFAULT '',
		due_date TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deliverable_links (
		deliverable_id TEXT NOT NULL REFERENCES deliverables(id) ON DELETE CASCADE,
		url TEXT NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (deliverable_id, position)
	)`,
}

func migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
