package cli

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/peek/internal/config"
	"github.com/alexanderramin/peek/internal/db"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
	"github.com/alexanderramin/peek/internal/service"
	"github.com/alexanderramin/peek/internal/store"
	"github.com/alexanderramin/peek/internal/testutil"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)

type testEnv struct {
	app     *App
	items   *repository.SQLiteWorkItemRepo
	logs    *bytes.Buffer
	project *domain.Project
	todo    *domain.WorkflowState
	user    *domain.User
	item    *domain.WorkItem
}

// newTestApp wires an App over an in-memory database with one project,
// one state, one user, and one work item with a budget of 100.
func newTestApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	database := testutil.NewTestDB(t)

	repos := repository.NewSQLiteRepos(database)
	projects, states, users, items := repos.Projects, repos.States, repos.Users, repos.WorkItems
	uow := db.NewSQLiteUnitOfWork(database)

	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	st := store.New(items, projects, states, users, store.WithLogger(logger))

	app := &App{
		Config: config.Config{
			Workspace:       testutil.TestWorkspace,
			EnableBudget:    true,
			RefreshInterval: time.Hour,
		},
		Projects:      service.NewProjectService(projects),
		States:        service.NewStateService(states, projects),
		Users:         service.NewUserService(users),
		WorkItems:     service.NewWorkItemService(items, uow),
		Store:         st,
		Operations:    service.NewWorkItemOperations(uow, st, service.WithObserver(service.NewLogUseCaseObserver(logger))),
		Logger:        logger,
		Now:           func() time.Time { return testNow },
		IsInteractive: func() bool { return false },
	}

	e := &testEnv{app: app, items: items, logs: logs}
	e.project = testutil.NewTestProject("Web", testutil.WithIdentifier("WEB"), testutil.WithEstimates())
	require.NoError(t, projects.Create(ctx, e.project))
	e.todo = testutil.NewTestState(e.project.ID, "Todo", domain.StateUnstarted)
	require.NoError(t, states.Create(ctx, e.todo))
	e.user = testutil.NewTestUser("ada")
	require.NoError(t, users.Create(ctx, e.user))
	e.item = testutil.NewTestWorkItem(e.project.ID, "Checkout",
		testutil.WithState(e.todo.ID), testutil.WithBudget(100), testutil.WithCreatedBy(e.user.ID),
		testutil.WithDates(testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 10)))
	require.NoError(t, items.Create(ctx, e.item))
	require.NoError(t, st.LoadProject(ctx, e.project.ID))
	return e
}

func (e *testEnv) persisted(t *testing.T) *domain.WorkItem {
	t.Helper()
	w, err := e.items.GetByID(context.Background(), e.item.ID)
	require.NoError(t, err)
	return w
}

// runCmd executes the root command with args and returns its output.
func runCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func lineContaining(view, substr string) string {
	for _, line := range strings.Split(view, "\n") {
		if strings.Contains(line, substr) {
			return line
		}
	}
	return ""
}
