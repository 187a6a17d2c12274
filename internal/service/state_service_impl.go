package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/google/uuid"
)

type stateService struct {
	states   repository.StateRepo
	projects repository.ProjectRepo
}

func NewStateService(states repository.StateRepo, projects repository.ProjectRepo) StateService {
	return &stateService{states: states, projects: projects}
}

func (s *stateService) Create(ctx context.Context, st *domain.WorkflowState) error {
	if st.ID == "" {
		st.ID = uuid.New().String()
	}
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return fmt.Errorf("state name is required: %w", ErrInvalidInput)
	}
	if !domain.ValidStateGroups[string(st.Group)] {
		return fmt.Errorf("state group %q: %w", st.Group, ErrInvalidInput)
	}
	if _, err := s.projects.GetByID(ctx, st.ProjectID); err != nil {
		return fmt.Errorf("state project: %w", err)
	}
	st.CreatedAt = time.Now().UTC()
	return s.states.Create(ctx, st)
}

func (s *stateService) ListByProject(ctx context.Context, projectID string) ([]*domain.WorkflowState, error) {
	return s.states.ListByProject(ctx, projectID)
}
