package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/google/uuid"
)

type projectService struct {
	projects repository.ProjectRepo
}

func NewProjectService(projects repository.ProjectRepo) ProjectService {
	return &projectService{projects: projects}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("project name is required: %w", ErrInvalidInput)
	}
	if p.WorkspaceSlug == "" {
		return fmt.Errorf("workspace is required: %w", ErrInvalidInput)
	}
	p.Identifier = strings.ToUpper(strings.TrimSpace(p.Identifier))
	if err := p.ValidateIdentifier(); err != nil {
		return fmt.Errorf("%v: %w", err, ErrInvalidInput)
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) Resolve(ctx context.Context, workspaceSlug, ref string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, ref)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.projects.GetByIdentifier(ctx, workspaceSlug, strings.ToUpper(ref))
}

func (s *projectService) List(ctx context.Context, workspaceSlug string) ([]*domain.Project, error) {
	return s.projects.List(ctx, workspaceSlug)
}
