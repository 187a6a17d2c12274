package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
)

// WorkItemOperations is the mutation gateway the panel writes through. It
// validates scope and values, persists the patch in one transaction, then
// refreshes the entity store so field watchers observe the new snapshot.
type WorkItemOperations struct {
	uow      db.UnitOfWork
	store    Refresher
	observer UseCaseObserver
	now      func() time.Time
}

// OperationsOption configures WorkItemOperations.
type OperationsOption func(*WorkItemOperations)

// WithClock overrides the clock used for updated_at.
func WithClock(now func() time.Time) OperationsOption {
	return func(o *WorkItemOperations) {
		if now != nil {
			o.now = now
		}
	}
}

// WithObserver adds an observer for update events.
func WithObserver(obs UseCaseObserver) OperationsOption {
	return func(o *WorkItemOperations) {
		o.observer = MultiObserver(o.observer, obs)
	}
}

func NewWorkItemOperations(uow db.UnitOfWork, store Refresher, opts ...OperationsOption) *WorkItemOperations {
	o := &WorkItemOperations{
		uow:      uow,
		store:    store,
		observer: NoopUseCaseObserver{},
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Update applies patch to the work item. An empty patch is a no-op.
func (o *WorkItemOperations) Update(ctx context.Context, workspaceID, projectID, itemID string, patch domain.WorkItemPatch) (err error) {
	startedAt := time.Now()
	fields := map[string]any{
		"workspace": workspaceID,
		"project":   projectID,
		"item":      itemID,
		"fields":    joinFields(patch.Fields()),
	}
	defer func() { observe(ctx, o.observer, "update-work-item", startedAt, fields, err) }()

	if patch.Empty() {
		return nil
	}

	err = o.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := repository.NewSQLiteRepos(tx)
		current, err := repos.WorkItems.GetByID(ctx, itemID)
		if err != nil {
			return err
		}
		if current.WorkspaceSlug != workspaceID || current.ProjectID != projectID {
			return fmt.Errorf("work item %s in %s/%s: %w", itemID, current.WorkspaceSlug, current.ProjectID, ErrScopeMismatch)
		}
		if err := validatePatch(ctx, repos, current, patch); err != nil {
			return err
		}
		return repos.WorkItems.ApplyPatch(ctx, itemID, patch, o.now())
	})
	if err != nil {
		return fmt.Errorf("updating work item %s: %w", itemID, err)
	}

	if o.store != nil {
		if err = o.store.Refresh(ctx, itemID); err != nil {
			return err
		}
	}
	return nil
}

func validatePatch(ctx context.Context, repos repository.SQLiteRepos, current *domain.WorkItem, patch domain.WorkItemPatch) error {
	if patch.Priority.Set && !domain.ValidPriority(patch.Priority.Value) {
		return fmt.Errorf("priority %q: %w", patch.Priority.Value, ErrInvalidPatch)
	}
	if patch.StateID.Set {
		st, err := repos.States.GetByID(ctx, patch.StateID.Value)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("state %q does not exist: %w", patch.StateID.Value, ErrInvalidPatch)
		}
		if err != nil {
			return err
		}
		if st.ProjectID != current.ProjectID {
			return fmt.Errorf("state %q belongs to another project: %w", st.Name, ErrInvalidPatch)
		}
	}
	if patch.ParentID.Set && patch.ParentID.Value != nil {
		parentID := *patch.ParentID.Value
		if parentID == current.ID {
			return fmt.Errorf("work item cannot be its own parent: %w", ErrInvalidPatch)
		}
		parent, err := repos.WorkItems.GetByID(ctx, parentID)
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("parent %q does not exist: %w", parentID, ErrInvalidPatch)
		}
		if err != nil {
			return err
		}
		if parent.WorkspaceSlug != current.WorkspaceSlug {
			return fmt.Errorf("parent %q is in another workspace: %w", parentID, ErrInvalidPatch)
		}
	}
	start, target := current.StartDate, current.TargetDate
	if patch.StartDate.Set {
		start = patch.StartDate.Value
	}
	if patch.TargetDate.Set {
		target = patch.TargetDate.Value
	}
	if (patch.StartDate.Set || patch.TargetDate.Set) && start != nil && target != nil && start.After(*target) {
		return fmt.Errorf("start date %s is after due date %s: %w",
			start.Format(domain.DateLayout), target.Format(domain.DateLayout), ErrInvalidPatch)
	}
	return nil
}

func joinFields(fs []domain.FieldName) string {
	parts := make([]string, len(fs))
	for i, f := range fs {
		parts[i] = string(f)
	}
	return strings.Join(parts, ",")
}
