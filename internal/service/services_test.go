package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/alexanderramin/peek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServices(t *testing.T) Services {
	t.Helper()
	database := testutil.NewTestDB(t)
	projects := repository.NewSQLiteProjectRepo(database)
	states := repository.NewSQLiteStateRepo(database)
	return Services{
		Projects:  NewProjectService(projects),
		States:    NewStateService(states, projects),
		Users:     NewUserService(repository.NewSQLiteUserRepo(database)),
		WorkItems: NewWorkItemService(repository.NewSQLiteWorkItemRepo(database), testutil.NewTestUoW(database)),
	}
}

func TestProjectService_CreateAndResolve(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	p := &domain.Project{WorkspaceSlug: "acme", Identifier: "web", Name: " Web "}
	require.NoError(t, svc.Projects.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "WEB", p.Identifier)
	assert.Equal(t, "Web", p.Name)

	byID, err := svc.Projects.Resolve(ctx, "acme", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, byID.ID)

	byIdent, err := svc.Projects.Resolve(ctx, "acme", "web")
	require.NoError(t, err)
	assert.Equal(t, p.ID, byIdent.ID)

	_, err = svc.Projects.Resolve(ctx, "other", "WEB")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()

	for name, p := range map[string]*domain.Project{
		"no name":       {WorkspaceSlug: "acme", Identifier: "WEB"},
		"no workspace":  {Identifier: "WEB", Name: "Web"},
		"bad ident":     {WorkspaceSlug: "acme", Identifier: "1WEB", Name: "Web"},
		"no identifier": {WorkspaceSlug: "acme", Name: "Web"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Projects.Create(ctx, p), ErrInvalidInput)
		})
	}
}

func TestStateService_Create(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	p := &domain.Project{WorkspaceSlug: "acme", Identifier: "WEB", Name: "Web"}
	require.NoError(t, svc.Projects.Create(ctx, p))

	require.NoError(t, svc.States.Create(ctx, &domain.WorkflowState{ProjectID: p.ID, Name: "Todo", Group: domain.StateUnstarted}))
	assert.ErrorIs(t, svc.States.Create(ctx, &domain.WorkflowState{ProjectID: p.ID, Name: "Odd", Group: "limbo"}), ErrInvalidInput)
	assert.ErrorIs(t, svc.States.Create(ctx, &domain.WorkflowState{ProjectID: "missing", Name: "Todo", Group: domain.StateStarted}), repository.ErrNotFound)

	states, err := svc.States.ListByProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, states, 1)
}

func TestWorkItemService_Create(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	p := &domain.Project{WorkspaceSlug: "acme", Identifier: "WEB", Name: "Web"}
	require.NoError(t, svc.Projects.Create(ctx, p))
	st := &domain.WorkflowState{ProjectID: p.ID, Name: "Todo", Group: domain.StateUnstarted}
	require.NoError(t, svc.States.Create(ctx, st))

	w := &domain.WorkItem{ProjectID: p.ID, Name: "Checkout", StateID: st.ID}
	require.NoError(t, svc.WorkItems.Create(ctx, w))
	assert.Equal(t, "acme", w.WorkspaceSlug)
	assert.Equal(t, domain.PriorityNone, w.Priority)

	got, err := svc.WorkItems.GetByID(ctx, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Checkout", got.Name)

	assert.ErrorIs(t, svc.WorkItems.Create(ctx, &domain.WorkItem{ProjectID: p.ID}), ErrInvalidInput)
	assert.ErrorIs(t, svc.WorkItems.Create(ctx, &domain.WorkItem{ProjectID: p.ID, Name: "x", Priority: "p0"}), ErrInvalidInput)
	assert.ErrorIs(t, svc.WorkItems.Create(ctx, &domain.WorkItem{ProjectID: "missing", Name: "x"}), repository.ErrNotFound)
}

func TestSeed(t *testing.T) {
	svc := newServices(t)
	ctx := context.Background()
	today := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	res, err := Seed(ctx, svc, "acme", today)
	require.NoError(t, err)
	assert.Equal(t, "DEMO", res.Project.Identifier)
	assert.Len(t, res.States, 5)
	assert.Len(t, res.Users, 3)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Users[2].IsIntakeBot())

	items, err := svc.WorkItems.ListByProject(ctx, res.Project.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = Seed(ctx, svc, "acme", today)
	assert.Error(t, err, "demo identifier is unique per workspace")
}
