package panel

import (
	"sync"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/testutil"
)

// fakeStore is an in-memory Lookup and Watcher.
type fakeStore struct {
	mu       sync.Mutex
	items    map[string]*domain.WorkItem
	projects map[string]*domain.Project
	states   map[string]*domain.WorkflowState
	users    map[string]*domain.User
	watchers map[string][]*func(*domain.WorkItem)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:    map[string]*domain.WorkItem{},
		projects: map[string]*domain.Project{},
		states:   map[string]*domain.WorkflowState{},
		users:    map[string]*domain.User{},
		watchers: map[string][]*func(*domain.WorkItem){},
	}
}

func watchKey(itemID string, f domain.FieldName) string { return itemID + "|" + string(f) }

func (f *fakeStore) WorkItem(id string) (*domain.WorkItem, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.items[id]
	return w.Clone(), ok
}

func (f *fakeStore) Project(id string) (*domain.Project, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[id]
	return p, ok
}

func (f *fakeStore) State(id string) (*domain.WorkflowState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[id]
	return s, ok
}

func (f *fakeStore) User(id string) (*domain.User, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeStore) Watch(itemID string, field domain.FieldName, fn func(*domain.WorkItem)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := watchKey(itemID, field)
	p := &fn
	f.watchers[key] = append(f.watchers[key], p)
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		subs := f.watchers[key]
		for i, s := range subs {
			if s == p {
				f.watchers[key] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// put replaces the snapshot and notifies watchers of changed fields.
func (f *fakeStore) put(w *domain.WorkItem) {
	f.mu.Lock()
	prev := f.items[w.ID]
	f.items[w.ID] = w.Clone()
	var fns []*func(*domain.WorkItem)
	for _, field := range domain.ChangedFields(prev, w) {
		fns = append(fns, f.watchers[watchKey(w.ID, field)]...)
	}
	f.mu.Unlock()
	for _, fn := range fns {
		(*fn)(w.Clone())
	}
}

// setBudget simulates an upstream emission of a new budget value.
func (f *fakeStore) setBudget(itemID string, v *float64) {
	w, _ := f.WorkItem(itemID)
	w.Budget = v
	f.put(w)
}

func (f *fakeStore) watcherCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, subs := range f.watchers {
		n += len(subs)
	}
	return n
}

type fixture struct {
	store   *fakeStore
	ops     *testutil.RecordingOperations
	project *domain.Project
	item    *domain.WorkItem
}

func newFixture(itemOpts ...testutil.WorkItemOption) *fixture {
	fs := newFakeStore()
	proj := testutil.NewTestProject("Web", testutil.WithEstimates(), testutil.WithModules(), testutil.WithCycles())
	fs.projects[proj.ID] = proj
	item := testutil.NewTestWorkItem(proj.ID, "Checkout", itemOpts...)
	fs.put(item)
	return &fixture{store: fs, ops: &testutil.RecordingOperations{}, project: proj, item: item}
}

func (fx *fixture) input(disabled bool) Input {
	return Input{
		WorkspaceID: testutil.TestWorkspace,
		ProjectID:   fx.project.ID,
		ItemID:      fx.item.ID,
		Disabled:    disabled,
		Operations:  fx.ops,
	}
}

func (fx *fixture) panel(cfg Config) *Panel {
	return New(fx.input(false), fx.store, cfg, SyncDispatcher{})
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 9, 30, 0, 0, time.UTC)
}

func f64(v float64) *float64 { return &v }
