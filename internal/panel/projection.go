package panel

import (
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// Projection is everything the panel renders for one snapshot.
type Projection struct {
	Item    *domain.WorkItem
	Project *domain.Project
	State   *domain.WorkflowState

	Assignees     []*domain.User
	CreatedBy     *domain.User
	CreatedByName string

	// StartDateMax bounds the start date picker; DueDateMin bounds the due date picker.
	StartDateMax *time.Time
	DueDateMin   *time.Time

	DueDateAtRisk bool

	ShowEstimate bool
	ShowModules  bool
	ShowCycle    bool
	ShowBudget   bool
}

// Resolve builds the projection of itemID. It returns false when the work
// item is absent, in which case nothing should be rendered. Resolve has no
// side effects and is meant to run on every render.
func Resolve(l Lookup, cfg Config, itemID string) (Projection, bool) {
	cfg = cfg.withDefaults()

	item, ok := l.WorkItem(itemID)
	if !ok {
		return Projection{}, false
	}

	pr := Projection{
		Item:         item,
		StartDateMax: item.TargetDate,
		DueDateMin:   item.StartDate,
		ShowBudget:   cfg.EnableBudgetField,
	}

	if p, ok := l.Project(item.ProjectID); ok {
		pr.Project = p
		pr.ShowEstimate = p.EstimateEnabled
		pr.ShowModules = p.ModuleView
		pr.ShowCycle = p.CycleView
	}

	var group domain.StateGroup
	if st, ok := l.State(item.StateID); ok {
		pr.State = st
		group = st.Group
	}
	pr.DueDateAtRisk = cfg.DueDateAtRisk(item.TargetDate, group, cfg.Now())

	for _, id := range item.AssigneeIDs {
		if u, ok := l.User(id); ok {
			pr.Assignees = append(pr.Assignees, u)
		}
	}
	if u, ok := l.User(item.CreatedBy); ok {
		pr.CreatedBy = u
		pr.CreatedByName = u.Label()
	}
	return pr, true
}
