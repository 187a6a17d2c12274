package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/domain"
)

// workItemColumns is the canonical SELECT column list for work_items.
const workItemColumns = `w.id, p.workspace_slug, w.project_id, w.name, w.state_id, w.priority,
		w.start_date, w.target_date, w.estimate_point, w.budget, w.cycle_id, w.parent_id,
		w.created_by, w.created_at, w.updated_at`

const workItemFrom = ` FROM work_items w JOIN projects p ON w.project_id = p.id`

// Member kinds stored in work_item_members.
const (
	memberAssignee = "assignee"
	memberLabel    = "label"
	memberModule   = "module"
)

// SQLiteWorkItemRepo implements WorkItemRepo using a SQLite database.
// Run it against a transaction (db.UnitOfWork) when applying patches that
// touch member sets, since those are a delete followed by inserts.
type SQLiteWorkItemRepo struct {
	db db.DBTX
}

func NewSQLiteWorkItemRepo(conn db.DBTX) *SQLiteWorkItemRepo {
	return &SQLiteWorkItemRepo{db: conn}
}

func (r *SQLiteWorkItemRepo) Create(ctx context.Context, w *domain.WorkItem) error {
	query := `INSERT INTO work_items (id, project_id, name, state_id, priority,
		start_date, target_date, estimate_point, budget, cycle_id, parent_id,
		created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.ProjectID,
		w.Name,
		w.StateID,
		string(w.Priority),
		nullableTimeToString(w.StartDate, dateLayout),
		nullableTimeToString(w.TargetDate, dateLayout),
		nullableStringValue(w.EstimatePoint),
		nullableFloatValue(w.Budget),
		nullableStringValue(w.CycleID),
		nullableStringValue(w.ParentID),
		w.CreatedBy,
		w.CreatedAt.Format(time.RFC3339),
		w.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting work item: %w", err)
	}

	for kind, ids := range map[string][]string{
		memberAssignee: w.AssigneeIDs,
		memberLabel:    w.LabelIDs,
		memberModule:   w.ModuleIDs,
	} {
		if err := r.replaceMembers(ctx, w.ID, kind, ids); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteWorkItemRepo) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workItemColumns+workItemFrom+` WHERE w.id = ?`, id)
	w, err := scanWorkItem(row)
	if err != nil {
		return nil, err
	}
	if err := r.loadMembers(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (r *SQLiteWorkItemRepo) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+workItemColumns+workItemFrom+` WHERE w.project_id = ? ORDER BY w.created_at`, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing work items by project: %w", err)
	}
	var items []*domain.WorkItem
	for rows.Next() {
		w, err := scanWorkItem(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		items = append(items, w)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterating work items: %w", err)
	}
	// Release the cursor before loading members; the pool may hold a single connection.
	rows.Close()

	for _, w := range items {
		if err := r.loadMembers(ctx, w); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// ApplyPatch writes the set slots of patch to the row. Returns a wrapped
// ErrNotFound when no work item has the id.
func (r *SQLiteWorkItemRepo) ApplyPatch(ctx context.Context, id string, patch domain.WorkItemPatch, updatedAt time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{updatedAt.UTC().Format(time.RFC3339)}

	add := func(col string, v any) {
		sets = append(sets, col+" = ?")
		args = append(args, v)
	}
	if patch.StateID.Set {
		add("state_id", patch.StateID.Value)
	}
	if patch.Priority.Set {
		add("priority", string(patch.Priority.Value))
	}
	if patch.StartDate.Set {
		add("start_date", nullableTimeToString(patch.StartDate.Value, dateLayout))
	}
	if patch.TargetDate.Set {
		add("target_date", nullableTimeToString(patch.TargetDate.Value, dateLayout))
	}
	if patch.EstimatePoint.Set {
		add("estimate_point", nullableStringValue(patch.EstimatePoint.Value))
	}
	if patch.Budget.Set {
		add("budget", nullableFloatValue(patch.Budget.Value))
	}
	if patch.CycleID.Set {
		add("cycle_id", nullableStringValue(patch.CycleID.Value))
	}
	if patch.ParentID.Set {
		add("parent_id", nullableStringValue(patch.ParentID.Value))
	}

	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_items SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating work item: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("work item %s: %w", id, ErrNotFound)
	}

	if patch.AssigneeIDs.Set {
		if err := r.replaceMembers(ctx, id, memberAssignee, patch.AssigneeIDs.Value); err != nil {
			return err
		}
	}
	if patch.LabelIDs.Set {
		if err := r.replaceMembers(ctx, id, memberLabel, patch.LabelIDs.Value); err != nil {
			return err
		}
	}
	if patch.ModuleIDs.Set {
		if err := r.replaceMembers(ctx, id, memberModule, patch.ModuleIDs.Value); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteWorkItemRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work item: %w", err)
	}
	return nil
}

func (r *SQLiteWorkItemRepo) replaceMembers(ctx context.Context, itemID, kind string, ids []string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM work_item_members WHERE work_item_id = ? AND kind = ?`, itemID, kind); err != nil {
		return fmt.Errorf("clearing %s members: %w", kind, err)
	}
	seen := make(map[string]bool, len(ids))
	pos := 0
	for _, m := range ids {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO work_item_members (work_item_id, kind, member_id, position) VALUES (?, ?, ?, ?)`,
			itemID, kind, m, pos); err != nil {
			return fmt.Errorf("inserting %s member: %w", kind, err)
		}
		pos++
	}
	return nil
}

func (r *SQLiteWorkItemRepo) loadMembers(ctx context.Context, w *domain.WorkItem) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT kind, member_id FROM work_item_members WHERE work_item_id = ? ORDER BY kind, position`, w.ID)
	if err != nil {
		return fmt.Errorf("loading work item members: %w", err)
	}
	defer rows.Close()

	w.AssigneeIDs, w.LabelIDs, w.ModuleIDs = []string{}, []string{}, []string{}
	for rows.Next() {
		var kind, member string
		if err := rows.Scan(&kind, &member); err != nil {
			return fmt.Errorf("scanning work item member: %w", err)
		}
		switch kind {
		case memberAssignee:
			w.AssigneeIDs = append(w.AssigneeIDs, member)
		case memberLabel:
			w.LabelIDs = append(w.LabelIDs, member)
		case memberModule:
			w.ModuleIDs = append(w.ModuleIDs, member)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating work item members: %w", err)
	}
	return nil
}

func scanWorkItem(row rowScanner) (*domain.WorkItem, error) {
	var w domain.WorkItem
	var priority, createdAt, updatedAt string
	var startDate, targetDate, estimate, cycleID, parentID sql.NullString
	var budget sql.NullFloat64

	err := row.Scan(
		&w.ID, &w.WorkspaceSlug, &w.ProjectID, &w.Name, &w.StateID, &priority,
		&startDate, &targetDate, &estimate, &budget, &cycleID, &parentID,
		&w.CreatedBy, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work item: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work item: %w", err)
	}

	w.Priority = domain.Priority(priority)
	w.StartDate = parseNullableTime(startDate, dateLayout)
	w.TargetDate = parseNullableTime(targetDate, dateLayout)
	w.EstimatePoint = nullableString(estimate)
	w.Budget = nullableFloat(budget)
	w.CycleID = nullableString(cycleID)
	w.ParentID = nullableString(parentID)

	if w.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if w.UpdatedAt, err = parseTimestamp(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &w, nil
}
