package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Statements are idempotent so it runs on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           TEXT PRIMARY KEY,
		display_name TEXT NOT NULL,
		email        TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS projects (
		id               TEXT PRIMARY KEY,
		workspace_slug   TEXT NOT NULL,
		identifier       TEXT NOT NULL,
		name             TEXT NOT NULL,
		estimate_enabled INTEGER NOT NULL DEFAULT 0,
		module_view      INTEGER NOT NULL DEFAULT 0,
		cycle_view       INTEGER NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL,
		UNIQUE (workspace_slug, identifier)
	)`,
	`CREATE TABLE IF NOT EXISTS workflow_states (
		id         TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name       TEXT NOT NULL,
		state_group TEXT NOT NULL
		           CHECK(state_group IN ('backlog','unstarted','started','completed','cancelled')),
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS work_items (
		id             TEXT PRIMARY KEY,
		project_id     TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		name           TEXT NOT NULL,
		state_id       TEXT NOT NULL DEFAULT '',
		priority       TEXT NOT NULL DEFAULT 'none'
		               CHECK(priority IN ('urgent','high','medium','low','none')),
		start_date     TEXT,
		target_date    TEXT,
		estimate_point TEXT,
		cycle_id       TEXT,
		parent_id      TEXT REFERENCES work_items(id) ON DELETE SET NULL,
		created_by     TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL,
		updated_at     TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS work_item_members (
		work_item_id TEXT NOT NULL REFERENCES work_items(id) ON DELETE CASCADE,
		kind         TEXT NOT NULL CHECK(kind IN ('assignee','label','module')),
		member_id    TEXT NOT NULL,
		position     INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_item_id, kind, member_id)
	)`,
	// budget was added after the first release.
	`ALTER TABLE work_items ADD COLUMN budget REAL`,
	`CREATE INDEX IF NOT EXISTS idx_work_items_project ON work_items(project_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workflow_states_project ON workflow_states(project_id)`,
}
