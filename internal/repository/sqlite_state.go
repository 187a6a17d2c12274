package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/domain"
)

// SQLiteStateRepo implements StateRepo using a SQLite database.
type SQLiteStateRepo struct {
	db db.DBTX
}

func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Create(ctx context.Context, s *domain.WorkflowState) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO workflow_states (id, project_id, name, state_group, created_at) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.ProjectID, s.Name, string(s.Group), s.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting workflow state: %w", err)
	}
	return nil
}

func (r *SQLiteStateRepo) GetByID(ctx context.Context, id string) (*domain.WorkflowState, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, name, state_group, created_at FROM workflow_states WHERE id = ?`, id)
	return scanState(row)
}

func (r *SQLiteStateRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkflowState, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, project_id, name, state_group, created_at FROM workflow_states
		WHERE project_id = ? ORDER BY created_at, name`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing workflow states: %w", err)
	}
	defer rows.Close()

	var states []*domain.WorkflowState
	for rows.Next() {
		s, err := scanState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workflow states: %w", err)
	}
	return states, nil
}

func scanState(row rowScanner) (*domain.WorkflowState, error) {
	var s domain.WorkflowState
	var group, createdAt string
	if err := row.Scan(&s.ID, &s.ProjectID, &s.Name, &group, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("workflow state: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning workflow state: %w", err)
	}
	s.Group = domain.StateGroup(group)
	var err error
	if s.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &s, nil
}
