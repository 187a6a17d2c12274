package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/google/uuid"
)

type workItemService struct {
	workItems repository.WorkItemRepo
	uow       db.UnitOfWork
}

func NewWorkItemService(workItems repository.WorkItemRepo, uow db.UnitOfWork) WorkItemService {
	return &workItemService{workItems: workItems, uow: uow}
}

// Create inserts a work item after checking that its project exists and that
// its state, if any, belongs to that project. WorkspaceSlug is taken from
// the project.
func (s *workItemService) Create(ctx context.Context, w *domain.WorkItem) error {
	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	w.Name = strings.TrimSpace(w.Name)
	if w.Name == "" {
		return fmt.Errorf("work item name is required: %w", ErrInvalidInput)
	}
	if w.Priority == "" {
		w.Priority = domain.PriorityNone
	}
	if !domain.ValidPriority(w.Priority) {
		return fmt.Errorf("priority %q: %w", w.Priority, ErrInvalidInput)
	}
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repos := repository.NewSQLiteRepos(tx)
		p, err := repos.Projects.GetByID(ctx, w.ProjectID)
		if err != nil {
			return fmt.Errorf("work item project: %w", err)
		}
		w.WorkspaceSlug = p.WorkspaceSlug
		if w.StateID != "" {
			st, err := repos.States.GetByID(ctx, w.StateID)
			if err != nil {
				return fmt.Errorf("work item state: %w", err)
			}
			if st.ProjectID != p.ID {
				return fmt.Errorf("state %q belongs to another project: %w", st.Name, ErrInvalidInput)
			}
		}
		return repos.WorkItems.Create(ctx, w)
	})
}

func (s *workItemService) GetByID(ctx context.Context, id string) (*domain.WorkItem, error) {
	return s.workItems.GetByID(ctx, id)
}

func (s *workItemService) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error) {
	return s.workItems.ListByProject(ctx, projectID)
}
