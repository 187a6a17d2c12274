package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/peek/internal/domain"
)

var (
	// ErrScopeMismatch is returned when a work item does not belong to the
	// workspace or project named by the caller.
	ErrScopeMismatch = errors.New("work item is outside the given workspace or project")
	// ErrInvalidPatch is returned when a patch value fails validation.
	ErrInvalidPatch = errors.New("invalid patch")
	// ErrInvalidInput is returned when a create request fails validation.
	ErrInvalidInput = errors.New("invalid input")
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	// Resolve finds a project by id, or by identifier within the workspace.
	Resolve(ctx context.Context, workspaceSlug, ref string) (*domain.Project, error)
	List(ctx context.Context, workspaceSlug string) ([]*domain.Project, error)
}

type StateService interface {
	Create(ctx context.Context, s *domain.WorkflowState) error
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkflowState, error)
}

type UserService interface {
	Create(ctx context.Context, u *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}

type WorkItemService interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error)
}

// Refresher reloads a work item into the entity store after a write.
type Refresher interface {
	Refresh(ctx context.Context, itemID string) error
}
