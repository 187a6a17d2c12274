package store

import (
	"sort"

	"github.com/alexanderramin/peek/internal/domain"
)

// WorkItem returns a copy of the current snapshot.
func (s *Store) WorkItem(id string) (*domain.WorkItem, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.workItems[id]
	if !ok {
		return nil, false
	}
	return w.Clone(), true
}

func (s *Store) Project(id string) (*domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projectBy[id]
	if !ok {
		return nil, false
	}
	c := *p
	return &c, true
}

func (s *Store) State(id string) (*domain.WorkflowState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stateBy[id]
	if !ok {
		return nil, false
	}
	c := *st
	return &c, true
}

func (s *Store) User(id string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.userBy[id]
	if !ok {
		return nil, false
	}
	c := *u
	return &c, true
}

// States lists the workflow states of a project in name order.
func (s *Store) States(projectID string) []*domain.WorkflowState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.WorkflowState
	for _, st := range s.stateBy {
		if st.ProjectID == projectID {
			c := *st
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Users lists every known user in display name order.
func (s *Store) Users() []*domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.User, 0, len(s.userBy))
	for _, u := range s.userBy {
		c := *u
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}

// WorkItems lists the work items of a project in name order.
func (s *Store) WorkItems(projectID string) []*domain.WorkItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*domain.WorkItem
	for _, w := range s.workItems {
		if w.ProjectID == projectID {
			out = append(out, w.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
