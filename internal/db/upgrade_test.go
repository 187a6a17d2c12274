package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A database created before the budget column existed keeps its rows and
// gains a NULL budget.
func TestMigrate_UpgradeAddsBudgetColumn(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	legacy := []string{
		`CREATE TABLE projects (
			id TEXT PRIMARY KEY, workspace_slug TEXT NOT NULL, identifier TEXT NOT NULL, name TEXT NOT NULL,
			estimate_enabled INTEGER NOT NULL DEFAULT 0, module_view INTEGER NOT NULL DEFAULT 0,
			cycle_view INTEGER NOT NULL DEFAULT 0, created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`CREATE TABLE work_items (
			id TEXT PRIMARY KEY, project_id TEXT NOT NULL, name TEXT NOT NULL,
			state_id TEXT NOT NULL DEFAULT '', priority TEXT NOT NULL DEFAULT 'none',
			start_date TEXT, target_date TEXT, estimate_point TEXT, cycle_id TEXT, parent_id TEXT,
			created_by TEXT NOT NULL DEFAULT '', created_at TEXT NOT NULL, updated_at TEXT NOT NULL)`,
		`INSERT INTO projects (id, workspace_slug, identifier, name, created_at, updated_at)
			VALUES ('p1', 'acme', 'WEB', 'Web', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
		`INSERT INTO work_items (id, project_id, name, created_at, updated_at)
			VALUES ('w1', 'p1', 'Legacy item', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`,
	}
	for _, stmt := range legacy {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var name string
	var budget sql.NullFloat64
	err = db.QueryRow(`SELECT name, budget FROM work_items WHERE id = 'w1'`).Scan(&name, &budget)
	require.NoError(t, err)
	assert.Equal(t, "Legacy item", name)
	assert.False(t, budget.Valid)

	_, err = db.Exec(`UPDATE work_items SET budget = 12.5 WHERE id = 'w1'`)
	require.NoError(t, err)
}
