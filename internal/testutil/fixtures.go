package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/google/uuid"
)

// TestWorkspace is the workspace slug fixtures are created in.
const TestWorkspace = "acme"

var testIdentifierCounter atomic.Int64

// Project options
type ProjectOption func(*domain.Project)

func WithEstimates() ProjectOption {
	return func(p *domain.Project) { p.EstimateEnabled = true }
}

func WithModules() ProjectOption {
	return func(p *domain.Project) { p.ModuleView = true }
}

func WithCycles() ProjectOption {
	return func(p *domain.Project) { p.CycleView = true }
}

func WithIdentifier(id string) ProjectOption {
	return func(p *domain.Project) { p.Identifier = id }
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:            uuid.New().String(),
		WorkspaceSlug: TestWorkspace,
		Identifier:    fmt.Sprintf("P%d", testIdentifierCounter.Add(1)),
		Name:          name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func NewTestState(projectID, name string, group domain.StateGroup) *domain.WorkflowState {
	return &domain.WorkflowState{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		Group:     group,
		CreatedAt: time.Now().UTC(),
	}
}

func NewTestUser(displayName string) *domain.User {
	return &domain.User{
		ID:          uuid.New().String(),
		DisplayName: displayName,
		Email:       displayName + "@example.com",
		CreatedAt:   time.Now().UTC(),
	}
}

// WorkItem options
type WorkItemOption func(*domain.WorkItem)

func WithState(id string) WorkItemOption {
	return func(w *domain.WorkItem) { w.StateID = id }
}

func WithBudget(v float64) WorkItemOption {
	return func(w *domain.WorkItem) { w.Budget = &v }
}

func WithDates(start, target *time.Time) WorkItemOption {
	return func(w *domain.WorkItem) {
		w.StartDate = start
		w.TargetDate = target
	}
}

func WithAssignees(ids ...string) WorkItemOption {
	return func(w *domain.WorkItem) { w.AssigneeIDs = ids }
}

func WithLabels(ids ...string) WorkItemOption {
	return func(w *domain.WorkItem) { w.LabelIDs = ids }
}

func WithCreatedBy(userID string) WorkItemOption {
	return func(w *domain.WorkItem) { w.CreatedBy = userID }
}

func WithPriority(p domain.Priority) WorkItemOption {
	return func(w *domain.WorkItem) { w.Priority = p }
}

func NewTestWorkItem(projectID, name string, opts ...WorkItemOption) *domain.WorkItem {
	now := time.Now().UTC()
	w := &domain.WorkItem{
		ID:            uuid.New().String(),
		WorkspaceSlug: TestWorkspace,
		ProjectID:     projectID,
		Name:          name,
		Priority:      domain.PriorityNone,
		AssigneeIDs:   []string{},
		LabelIDs:      []string{},
		ModuleIDs:     []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Date returns midnight UTC of the given calendar day.
func Date(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
