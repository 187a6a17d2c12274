package panel

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mountBudget(t *testing.T, fx *fixture, cfg Config) *BudgetField {
	t.Helper()
	b, ok := fx.panel(cfg).MountBudget(fx.store)
	require.True(t, ok)
	t.Cleanup(b.Close)
	return b
}

func TestBudget_MountSeedsFromSnapshot(t *testing.T) {
	fx := newFixture(testutil.WithBudget(100))
	b := mountBudget(t, fx, DefaultConfig())

	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "100", b.Display())
}

// racingLookup publishes a new budget right after a snapshot read, as if a
// remote write landed between the read and the seed.
type racingLookup struct {
	*fakeStore
	armed bool
	next  *float64
}

func (r *racingLookup) WorkItem(id string) (*domain.WorkItem, bool) {
	w, ok := r.fakeStore.WorkItem(id)
	if r.armed {
		r.armed = false
		r.fakeStore.setBudget(id, r.next)
	}
	return w, ok
}

func TestBudget_MountKeepsNotificationThatRacesTheSeed(t *testing.T) {
	fx := newFixture(testutil.WithBudget(100))
	lookup := &racingLookup{fakeStore: fx.store, next: f64(999)}
	p := New(fx.input(false), lookup, DefaultConfig(), SyncDispatcher{})

	lookup.armed = true
	b, ok := p.MountBudget(fx.store)
	require.True(t, ok)
	t.Cleanup(b.Close)

	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "999", b.Display())
}

func TestBudget_MountWithNullBudgetShowsBlank(t *testing.T) {
	fx := newFixture()
	b := mountBudget(t, fx, DefaultConfig())

	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "", b.Display())
}

func TestBudget_DisabledByConfig(t *testing.T) {
	fx := newFixture(testutil.WithBudget(1))
	cfg := DefaultConfig()
	cfg.EnableBudgetField = false

	b, ok := fx.panel(cfg).MountBudget(fx.store)
	assert.False(t, ok)
	assert.Nil(t, b)
	assert.Zero(t, fx.store.watcherCount())
}

func TestBudget_UpstreamChangeUpdatesDisplayWhenNotEditing(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())

	for _, v := range []*float64{f64(20), nil, f64(12.5), f64(0)} {
		fx.store.setBudget(fx.item.ID, v)
		assert.Equal(t, FormatBudget(v), b.Display())
		assert.Equal(t, BudgetSynced, b.State())
	}
}

func TestBudget_UnrelatedUpdatesDoNotResync(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())
	b.Edit("42")

	w, _ := fx.store.WorkItem(fx.item.ID)
	w.StateID = "another-state"
	fx.store.put(w)

	assert.Equal(t, BudgetEditing, b.State())
	assert.Equal(t, "42", b.Display())
}

func TestBudget_SameUpstreamValueDoesNotClobberEdit(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())
	b.Edit("42")

	assert.False(t, b.Sync(f64(10)))
	assert.Equal(t, "42", b.Display())
}

func TestBudget_EditShowsLocalValue(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())

	b.Edit("1")
	b.Edit("15")
	assert.Equal(t, BudgetEditing, b.State())
	assert.Equal(t, "15", b.Display())
	assert.Empty(t, fx.ops.Calls(), "keystrokes never write")
}

func TestBudget_CommitScenarios(t *testing.T) {
	cases := []struct {
		name     string
		snapshot *float64
		typed    string
		want     []*float64
	}{
		{"clear existing budget sends null", f64(100), "", []*float64{nil}},
		{"type into null budget sends number", nil, "250", []*float64{f64(250)}},
		{"same value sends nothing", f64(50), "50", nil},
		{"loosely equal text sends nothing", f64(50), " 50.0 ", nil},
		{"blank over null sends nothing", nil, "", nil},
		{"decimal value", f64(1), "1.25", []*float64{f64(1.25)}},
		{"zero is a value not null", nil, "0", []*float64{f64(0)}},
		{"clearing zero sends null", f64(0), "", []*float64{nil}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fx := newFixture()
			fx.store.setBudget(fx.item.ID, tc.snapshot)
			b := mountBudget(t, fx, DefaultConfig())

			b.Edit(tc.typed)
			require.NoError(t, b.Commit(context.Background()))

			calls := fx.ops.Calls()
			require.Len(t, calls, len(tc.want))
			for i, want := range tc.want {
				assert.Equal(t, []domain.FieldName{domain.FieldBudget}, calls[i].Patch.Fields())
				if want == nil {
					assert.Nil(t, calls[i].Patch.Budget.Value)
				} else {
					require.NotNil(t, calls[i].Patch.Budget.Value)
					assert.Equal(t, *want, *calls[i].Patch.Budget.Value)
				}
			}
		})
	}
}

func TestBudget_CommitWithoutEditIsNoop(t *testing.T) {
	fx := newFixture(testutil.WithBudget(75))
	b := mountBudget(t, fx, DefaultConfig())

	require.NoError(t, b.Commit(context.Background()))
	require.NoError(t, b.Commit(context.Background()))
	assert.Empty(t, fx.ops.Calls())
}

func TestBudget_CommitComparesAgainstLatestSnapshot(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())
	b.Edit("30")

	// The snapshot moves to 30 without a notification reaching the field.
	fx.store.mu.Lock()
	fx.store.items[fx.item.ID].Budget = f64(30)
	fx.store.mu.Unlock()

	require.NoError(t, b.Commit(context.Background()))
	assert.Empty(t, fx.ops.Calls())
}

func TestBudget_InvalidInputIsRejectedBeforeWrite(t *testing.T) {
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, cfg)

	for _, bad := range []string{"abc", "12abc", "NaN", "Inf", "1e400"} {
		b.Edit(bad)
		err := b.Commit(context.Background())
		assert.ErrorIs(t, err, ErrInvalidBudget, "input %q", bad)
	}
	assert.Empty(t, fx.ops.Calls())
	assert.Equal(t, "1e400", b.Display(), "rejected buffer is kept")
	assert.Contains(t, logs.String(), "budget rejected")
}

func TestBudget_FailedCommitIsLoggedAndBufferKept(t *testing.T) {
	var logs bytes.Buffer
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(&logs, nil))
	fx := newFixture(testutil.WithBudget(10))
	fx.ops.Err = errors.New("503 from gateway")
	b := mountBudget(t, fx, cfg)

	b.Edit("99")
	require.NoError(t, b.Commit(context.Background()))

	assert.Len(t, fx.ops.Calls(), 1)
	assert.Equal(t, BudgetEditing, b.State())
	assert.Equal(t, "99", b.Display())
	assert.Contains(t, logs.String(), "budget save failed")
	assert.Contains(t, logs.String(), "503 from gateway")
}

func TestBudget_SuccessfulCommitConfirmedByNextEmission(t *testing.T) {
	fx := newFixture()
	fx.ops.OnUpdate = func(c testutil.UpdateCall) {
		fx.store.setBudget(c.ItemID, c.Patch.Budget.Value)
	}
	b := mountBudget(t, fx, DefaultConfig())

	b.Edit("250.50")
	require.NoError(t, b.Commit(context.Background()))

	assert.Len(t, fx.ops.Calls(), 1)
	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "250.5", b.Display())
}

func TestBudget_UpstreamRefreshOverwritesUncommittedEdit(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b := mountBudget(t, fx, DefaultConfig())

	b.Edit("30")
	fx.store.setBudget(fx.item.ID, f64(75))

	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "75", b.Display())

	require.NoError(t, b.Commit(context.Background()))
	assert.Empty(t, fx.ops.Calls(), "the overwritten edit is gone")
}

func TestBudget_CloseStopsUpdates(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	b, ok := fx.panel(DefaultConfig()).MountBudget(fx.store)
	require.True(t, ok)
	require.Equal(t, 1, fx.store.watcherCount())

	b.Close()
	b.Close()
	assert.Zero(t, fx.store.watcherCount())

	fx.store.setBudget(fx.item.ID, f64(500))
	b.Edit("7")
	assert.Equal(t, "10", b.Display())
	assert.NoError(t, b.Commit(context.Background()))
	assert.Empty(t, fx.ops.Calls())
}

func TestBudget_InFlightWriteAfterCloseIsHarmless(t *testing.T) {
	fx := newFixture(testutil.WithBudget(10))
	d := &GoDispatcher{}
	p := New(fx.input(false), fx.store, DefaultConfig(), d)
	b, ok := p.MountBudget(fx.store)
	require.True(t, ok)

	release := make(chan struct{})
	fx.ops.OnUpdate = func(c testutil.UpdateCall) {
		<-release
		fx.store.setBudget(c.ItemID, c.Patch.Budget.Value)
	}

	b.Edit("11")
	require.NoError(t, b.Commit(context.Background()))
	b.Close()
	close(release)
	d.Wait()

	assert.Equal(t, "11", b.Display(), "closed field ignores the confirming emission")
	assert.Len(t, fx.ops.Calls(), 1)
}

func TestBudget_ItemAppearsAfterMount(t *testing.T) {
	fx := newFixture()
	in := fx.input(false)
	in.ItemID = "late"
	p := New(in, fx.store, DefaultConfig(), SyncDispatcher{})
	b, ok := p.MountBudget(fx.store)
	require.True(t, ok)
	defer b.Close()

	assert.Equal(t, BudgetUninitialized, b.State())
	assert.ErrorIs(t, func() error { b.Edit("1"); return b.Commit(context.Background()) }(), ErrNotFound)

	late := testutil.NewTestWorkItem(fx.project.ID, "Late", testutil.WithBudget(3))
	late.ID = "late"
	fx.store.put(late)
	assert.Equal(t, BudgetSynced, b.State())
	assert.Equal(t, "3", b.Display())
}

func TestParseBudget(t *testing.T) {
	v, err := ParseBudget("")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseBudget("   ")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseBudget("-12.5")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, -12.5, *v)

	_, err = ParseBudget("twelve")
	assert.ErrorIs(t, err, ErrInvalidBudget)
}

func TestFormatBudget(t *testing.T) {
	assert.Equal(t, "", FormatBudget(nil))
	assert.Equal(t, "100", FormatBudget(f64(100)))
	assert.Equal(t, "0.1", FormatBudget(f64(0.1)))
}
