package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/peek/internal/panel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCmd(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "show", e.item.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "WEB · CHECKOUT")
	assert.Contains(t, lineContaining(out, "Budget"), "100")
	assert.NotContains(t, out, "›")
}

func TestShowCmd_Errors(t *testing.T) {
	t.Run("unknown item", func(t *testing.T) {
		e := newTestApp(t)
		_, err := runCmd(t, e.app, "show", "zzzz")
		assert.ErrorContains(t, err, "work item not found")
	})
	t.Run("other workspace", func(t *testing.T) {
		e := newTestApp(t)
		_, err := runCmd(t, e.app, "-w", "other", "show", e.item.ID)
		assert.ErrorContains(t, err, `not in workspace "other"`)
	})
	t.Run("missing argument", func(t *testing.T) {
		e := newTestApp(t)
		_, err := runCmd(t, e.app, "show")
		assert.Error(t, err)
	})
}

func TestPanelCmd_NonInteractiveFallsBackToShow(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "panel", e.item.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "WEB · CHECKOUT")
	assert.Equal(t, 0, e.app.Store.WatcherCount())
}

func TestItemSetBudgetCmd(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "item", "set-budget", e.item.ID, "12.5")
	require.NoError(t, err)
	assert.Contains(t, out, "12.50")
	require.NotNil(t, e.persisted(t).Budget)
	assert.Equal(t, 12.5, *e.persisted(t).Budget)

	cached, ok := e.app.Store.WorkItem(e.item.ID)
	require.True(t, ok)
	assert.Equal(t, 12.5, *cached.Budget)

	_, err = runCmd(t, e.app, "item", "set-budget", e.item.ID, "")
	require.NoError(t, err)
	assert.Nil(t, e.persisted(t).Budget)
}

func TestItemSetBudgetCmd_RejectsNonNumbers(t *testing.T) {
	e := newTestApp(t)

	_, err := runCmd(t, e.app, "item", "set-budget", e.item.ID, "lots")
	assert.ErrorIs(t, err, panel.ErrInvalidBudget)
	assert.Equal(t, 100.0, *e.persisted(t).Budget)
}

func TestItemAddAndList(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "item", "add", "-p", "web", "--name", "Search", "--state", "todo",
		"--priority", "High", "--due", "2025-07-01", "--budget", "80")
	require.NoError(t, err)
	assert.Contains(t, out, "Created work item")

	items, err := e.app.WorkItems.ListByProject(context.Background(), e.project.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	out, err = runCmd(t, e.app, "item", "list", "-p", "WEB")
	require.NoError(t, err)
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "Checkout")
	assert.Contains(t, out, "80.00")
	assert.Contains(t, out, "2025-07-01")
}

func TestItemAdd_InvalidFlags(t *testing.T) {
	cases := map[string][]string{
		"priority": {"--priority", "asap"},
		"date":     {"--due", "July 1"},
		"state":    {"--state", "nope"},
		"budget":   {"--budget", "ten"},
	}
	for name, extra := range cases {
		t.Run(name, func(t *testing.T) {
			e := newTestApp(t)
			args := append([]string{"item", "add", "-p", "WEB", "--name", "Bad"}, extra...)
			_, err := runCmd(t, e.app, args...)
			assert.Error(t, err)
		})
	}
}

func TestProjectStateUserCmds(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "project", "add", "--id", "ops", "--name", "Ops", "--cycles")
	require.NoError(t, err)
	assert.Contains(t, out, "Created project Ops [OPS]")

	out, err = runCmd(t, e.app, "project", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "OPS")
	assert.Contains(t, out, "WEB")

	out, err = runCmd(t, e.app, "state", "add", "-p", "OPS", "--name", "Doing", "--group", "started")
	require.NoError(t, err)
	assert.Contains(t, out, "Doing")

	out, err = runCmd(t, e.app, "state", "list", "-p", "OPS")
	require.NoError(t, err)
	assert.Contains(t, out, "started")

	out, err = runCmd(t, e.app, "user", "add", "--name", "grace", "--email", "grace@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Created user grace")

	out, err = runCmd(t, e.app, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "grace@example.com")
	assert.Contains(t, out, "ada")
}

func TestSeedCmd(t *testing.T) {
	e := newTestApp(t)

	out, err := runCmd(t, e.app, "seed")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeded project Demo [DEMO]")
	assert.Contains(t, out, "Try: peek panel")

	_, err = runCmd(t, e.app, "seed")
	assert.Error(t, err)
}

func TestResolveWorkItem(t *testing.T) {
	e := newTestApp(t)
	ctx := context.Background()

	w, err := resolveWorkItem(ctx, e.app, e.item.ID)
	require.NoError(t, err)
	assert.Equal(t, e.item.ID, w.ID)

	w, err = resolveWorkItem(ctx, e.app, e.item.ID[:6])
	require.NoError(t, err)
	assert.Equal(t, e.item.ID, w.ID)

	_, err = resolveWorkItem(ctx, e.app, "")
	assert.ErrorContains(t, err, "required")
}
