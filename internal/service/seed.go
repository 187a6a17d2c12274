package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// Services groups the create/read services used by the CLI.
type Services struct {
	Projects  ProjectService
	States    StateService
	Users     UserService
	WorkItems WorkItemService
}

// SeedResult lists what Seed created.
type SeedResult struct {
	Project *domain.Project
	States  []*domain.WorkflowState
	Users   []*domain.User
	Items   []*domain.WorkItem
}

// Seed creates a demo project with workflow states, users, and work items in
// workspace. It fails if the demo identifier is already taken.
func Seed(ctx context.Context, svc Services, workspace string, today time.Time) (*SeedResult, error) {
	res := &SeedResult{}
	res.Project = &domain.Project{
		WorkspaceSlug:   workspace,
		Identifier:      "DEMO",
		Name:            "Demo",
		EstimateEnabled: true,
		ModuleView:      true,
		CycleView:       true,
	}
	if err := svc.Projects.Create(ctx, res.Project); err != nil {
		return nil, fmt.Errorf("seeding project: %w", err)
	}

	for _, s := range []struct {
		name  string
		group domain.StateGroup
	}{
		{"Backlog", domain.StateBacklog},
		{"Todo", domain.StateUnstarted},
		{"In Progress", domain.StateStarted},
		{"Done", domain.StateCompleted},
		{"Cancelled", domain.StateCancelled},
	} {
		st := &domain.WorkflowState{ProjectID: res.Project.ID, Name: s.name, Group: s.group}
		if err := svc.States.Create(ctx, st); err != nil {
			return nil, fmt.Errorf("seeding state %s: %w", s.name, err)
		}
		res.States = append(res.States, st)
	}

	for _, name := range []string{"ada", "grace", "support-intake"} {
		u := &domain.User{DisplayName: name, Email: name + "@example.com"}
		if err := svc.Users.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", name, err)
		}
		res.Users = append(res.Users, u)
	}

	day := func(offset int) *time.Time {
		d := time.Date(today.Year(), today.Month(), today.Day()+offset, 0, 0, 0, 0, time.UTC)
		return &d
	}
	budget := 1200.0
	items := []*domain.WorkItem{
		{
			Name:        "Checkout redesign",
			StateID:     res.States[2].ID,
			Priority:    domain.PriorityHigh,
			AssigneeIDs: []string{res.Users[0].ID},
			StartDate:   day(-10),
			TargetDate:  day(-2),
			Budget:      &budget,
			CreatedBy:   res.Users[1].ID,
		},
		{
			Name:      "Customer reported crash",
			StateID:   res.States[0].ID,
			Priority:  domain.PriorityUrgent,
			CreatedBy: res.Users[2].ID,
		},
	}
	for _, w := range items {
		w.ProjectID = res.Project.ID
		if err := svc.WorkItems.Create(ctx, w); err != nil {
			return nil, fmt.Errorf("seeding work item %s: %w", w.Name, err)
		}
		res.Items = append(res.Items, w)
	}
	return res, nil
}
