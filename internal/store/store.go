package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sort"
	"sync"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
)

// WatchFunc receives the new snapshot after a watched field changed.
// item is nil when the work item was removed.
type WatchFunc func(item *domain.WorkItem)

type watchKey struct {
	itemID string
	field  domain.FieldName
}

type watcher struct {
	id uint64
	fn WatchFunc
}

// Store caches snapshots loaded from the repositories.
type Store struct {
	items    repository.WorkItemRepo
	projects repository.ProjectRepo
	states   repository.StateRepo
	users    repository.UserRepo
	logger   *slog.Logger

	mu        sync.RWMutex
	workItems map[string]*domain.WorkItem
	projectBy map[string]*domain.Project
	stateBy   map[string]*domain.WorkflowState
	userBy    map[string]*domain.User
	watchers  map[watchKey][]watcher
	nextID    uint64

	// pubMu serializes reads for Refresh with snapshot replacement and
	// delivery, so snapshots are published in the order they were read.
	pubMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used to report panicking watchers.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(items repository.WorkItemRepo, projects repository.ProjectRepo, states repository.StateRepo, users repository.UserRepo, opts ...Option) *Store {
	s := &Store{
		items:     items,
		projects:  projects,
		states:    states,
		users:     users,
		logger:    slog.New(slog.DiscardHandler),
		workItems: make(map[string]*domain.WorkItem),
		projectBy: make(map[string]*domain.Project),
		stateBy:   make(map[string]*domain.WorkflowState),
		userBy:    make(map[string]*domain.User),
		watchers:  make(map[watchKey][]watcher),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadProject loads a project with its workflow states, its work items, and
// all users into the store.
func (s *Store) LoadProject(ctx context.Context, projectID string) error {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading project: %w", err)
	}
	states, err := s.states.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading workflow states: %w", err)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("loading users: %w", err)
	}
	items, err := s.items.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("loading work items: %w", err)
	}

	s.mu.Lock()
	s.projectBy[p.ID] = p
	for _, st := range states {
		s.stateBy[st.ID] = st
	}
	for _, u := range users {
		s.userBy[u.ID] = u
	}
	s.mu.Unlock()

	for _, w := range items {
		s.Put(w)
	}
	return nil
}

// Refresh reloads one work item from the repository and publishes the
// fields that changed. A deleted item is removed from the store.
func (s *Store) Refresh(ctx context.Context, itemID string) error {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	w, err := s.items.GetByID(ctx, itemID)
	if errors.Is(err, repository.ErrNotFound) {
		s.replaceLocked(itemID, nil)
		return nil
	}
	if err != nil {
		return fmt.Errorf("refreshing work item %s: %w", itemID, err)
	}
	s.replaceLocked(itemID, w.Clone())
	return nil
}

// Put replaces the snapshot of w.ID and notifies watchers of changed fields.
func (s *Store) Put(w *domain.WorkItem) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.replaceLocked(w.ID, w.Clone())
}

// Remove drops the snapshot and notifies every watcher of the item.
func (s *Store) Remove(itemID string) {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()
	s.replaceLocked(itemID, nil)
}

// replaceLocked must be called with pubMu held.
func (s *Store) replaceLocked(itemID string, next *domain.WorkItem) {
	s.mu.Lock()
	prev := s.workItems[itemID]
	if next == nil {
		delete(s.workItems, itemID)
	} else {
		s.workItems[itemID] = next
	}
	changed := domain.ChangedFields(prev, next)

	var fns []watcher
	seen := make(map[uint64]bool)
	for _, f := range changed {
		for _, w := range s.watchers[watchKey{itemID, f}] {
			if !seen[w.id] {
				seen[w.id] = true
				fns = append(fns, w)
			}
		}
	}
	s.mu.Unlock()

	sort.Slice(fns, func(i, j int) bool { return fns[i].id < fns[j].id })
	for _, w := range fns {
		s.safeCall(itemID, w.fn, next.Clone())
	}
}

// Watch registers fn for changes to one field of one work item. The returned
// func unsubscribes and is safe to call more than once. fn must not call Put,
// Remove, or Refresh.
func (s *Store) Watch(itemID string, field domain.FieldName, fn func(item *domain.WorkItem)) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	key := watchKey{itemID, field}
	s.watchers[key] = append(s.watchers[key], watcher{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			subs := s.watchers[key]
			for i, w := range subs {
				if w.id == id {
					s.watchers[key] = append(subs[:i:i], subs[i+1:]...)
					break
				}
			}
			if len(s.watchers[key]) == 0 {
				delete(s.watchers, key)
			}
		})
	}
}

// WatcherCount returns the number of active watches.
func (s *Store) WatcherCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, subs := range s.watchers {
		n += len(subs)
	}
	return n
}

func (s *Store) safeCall(itemID string, fn WatchFunc, item *domain.WorkItem) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("store watcher panicked",
				"item_id", itemID, "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
		}
	}()
	fn(item)
}
