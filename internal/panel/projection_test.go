package panel

import (
	"testing"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AbsentItem(t *testing.T) {
	fs := newFakeStore()
	pr, ok := Resolve(fs, DefaultConfig(), "missing")
	assert.False(t, ok)
	assert.Nil(t, pr.Item)
}

func TestResolve_DateBoundsFollowOppositeField(t *testing.T) {
	start, due := testutil.Date(2025, 6, 1), testutil.Date(2025, 6, 30)
	fx := newFixture(testutil.WithDates(start, due))

	pr, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
	require.True(t, ok)
	require.NotNil(t, pr.StartDateMax)
	require.NotNil(t, pr.DueDateMin)
	assert.True(t, due.Equal(*pr.StartDateMax))
	assert.True(t, start.Equal(*pr.DueDateMin))
}

func TestResolve_NoDatesNoBounds(t *testing.T) {
	fx := newFixture()
	pr, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
	require.True(t, ok)
	assert.Nil(t, pr.StartDateMax)
	assert.Nil(t, pr.DueDateMin)
	assert.False(t, pr.DueDateAtRisk)
}

func TestResolve_DueDateAtRisk_DefaultPredicate(t *testing.T) {
	cases := []struct {
		name  string
		due   *time.Time
		group domain.StateGroup
		want  bool
	}{
		{"overdue and open", testutil.Date(2025, 6, 14), domain.StateStarted, true},
		{"due today", testutil.Date(2025, 6, 15), domain.StateStarted, false},
		{"future", testutil.Date(2025, 7, 1), domain.StateUnstarted, false},
		{"overdue but completed", testutil.Date(2025, 6, 1), domain.StateCompleted, false},
		{"overdue but cancelled", testutil.Date(2025, 6, 1), domain.StateCancelled, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture(testutil.WithDates(nil, tc.due))
			st := testutil.NewTestState(fx.project.ID, "S", tc.group)
			fx.store.states[st.ID] = st
			w, _ := fx.store.WorkItem(fx.item.ID)
			w.StateID = st.ID
			fx.store.put(w)

			cfg := DefaultConfig()
			cfg.Now = fixedNow
			pr, ok := Resolve(fx.store, cfg, fx.item.ID)
			require.True(t, ok)
			assert.Equal(t, tc.want, pr.DueDateAtRisk)
			assert.Equal(t, st.ID, pr.State.ID)
		})
	}
}

func TestResolve_UsesSuppliedAtRiskPredicate(t *testing.T) {
	fx := newFixture(testutil.WithDates(nil, testutil.Date(2030, 1, 1)))
	var gotGroup domain.StateGroup = "unset"
	cfg := DefaultConfig()
	cfg.DueDateAtRisk = func(due *time.Time, group domain.StateGroup, now time.Time) bool {
		gotGroup = group
		return due != nil
	}

	pr, ok := Resolve(fx.store, cfg, fx.item.ID)
	require.True(t, ok)
	assert.True(t, pr.DueDateAtRisk)
	assert.Equal(t, domain.StateGroup(""), gotGroup, "unknown state yields the empty group")
}

func TestResolve_SectionVisibilityFollowsProjectFlags(t *testing.T) {
	fx := newFixture()
	pr, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
	require.True(t, ok)
	assert.True(t, pr.ShowEstimate)
	assert.True(t, pr.ShowModules)
	assert.True(t, pr.ShowCycle)
	assert.True(t, pr.ShowBudget)

	fx.project.EstimateEnabled = false
	fx.project.CycleView = false
	cfg := DefaultConfig()
	cfg.EnableBudgetField = false
	pr, ok = Resolve(fx.store, cfg, fx.item.ID)
	require.True(t, ok)
	assert.False(t, pr.ShowEstimate)
	assert.True(t, pr.ShowModules)
	assert.False(t, pr.ShowCycle)
	assert.False(t, pr.ShowBudget)
}

func TestResolve_UnknownProjectHidesSections(t *testing.T) {
	fx := newFixture()
	delete(fx.store.projects, fx.project.ID)
	pr, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
	require.True(t, ok)
	assert.Nil(t, pr.Project)
	assert.False(t, pr.ShowEstimate)
	assert.False(t, pr.ShowModules)
	assert.False(t, pr.ShowCycle)
}

func TestResolve_PeopleLookups(t *testing.T) {
	dana := testutil.NewTestUser("dana")
	bot := testutil.NewTestUser("support-intake")
	fx := newFixture(testutil.WithAssignees(dana.ID, "ghost"), testutil.WithCreatedBy(bot.ID))
	fx.store.users[dana.ID] = dana
	fx.store.users[bot.ID] = bot

	pr, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
	require.True(t, ok)
	require.Len(t, pr.Assignees, 1, "unknown users are skipped")
	assert.Equal(t, "dana", pr.Assignees[0].DisplayName)
	assert.Equal(t, domain.SystemDisplayName, pr.CreatedByName)
}

func TestResolve_IsSideEffectFree(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	for i := 0; i < 3; i++ {
		_, ok := Resolve(fx.store, DefaultConfig(), fx.item.ID)
		require.True(t, ok)
	}
	assert.Empty(t, fx.ops.Calls())
	assert.Zero(t, fx.store.watcherCount())
}
