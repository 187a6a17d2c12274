package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// ErrNotFound is returned (wrapped) when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	GetByIdentifier(ctx context.Context, workspaceSlug, identifier string) (*domain.Project, error)
	List(ctx context.Context, workspaceSlug string) ([]*domain.Project, error)
}

type StateRepo interface {
	Create(ctx context.Context, s *domain.WorkflowState) error
	GetByID(ctx context.Context, id string) (*domain.WorkflowState, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkflowState, error)
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type WorkItemRepo interface {
	Create(ctx context.Context, w *domain.WorkItem) error
	GetByID(ctx context.Context, id string) (*domain.WorkItem, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.WorkItem, error)
	ApplyPatch(ctx context.Context, id string, patch domain.WorkItemPatch, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
