package domain

import "time"

type WorkItem struct {
	ID            string
	WorkspaceSlug string
	ProjectID     string
	Name          string
	StateID       string
	AssigneeIDs   []string
	Priority      Priority

	StartDate  *time.Time
	TargetDate *time.Time

	EstimatePoint *string
	Budget        *float64

	CycleID   *string
	ModuleIDs []string
	ParentID  *string
	LabelIDs  []string

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a deep copy so snapshots handed to readers never alias
// the store's copy.
func (w *WorkItem) Clone() *WorkItem {
	if w == nil {
		return nil
	}
	c := *w
	c.AssigneeIDs = cloneStrings(w.AssigneeIDs)
	c.ModuleIDs = cloneStrings(w.ModuleIDs)
	c.LabelIDs = cloneStrings(w.LabelIDs)
	c.StartDate = clonePtr(w.StartDate)
	c.TargetDate = clonePtr(w.TargetDate)
	c.EstimatePoint = clonePtr(w.EstimatePoint)
	c.Budget = clonePtr(w.Budget)
	c.CycleID = clonePtr(w.CycleID)
	c.ParentID = clonePtr(w.ParentID)
	return &c
}

// ChangedFields reports which patchable fields differ between two snapshots.
func ChangedFields(prev, next *WorkItem) []FieldName {
	if prev == nil || next == nil {
		if prev == next {
			return nil
		}
		return append([]FieldName(nil), PatchableFields...)
	}
	var changed []FieldName
	for _, f := range PatchableFields {
		if !fieldEqual(f, prev, next) {
			changed = append(changed, f)
		}
	}
	return changed
}

func fieldEqual(f FieldName, a, b *WorkItem) bool {
	switch f {
	case FieldStateID:
		return a.StateID == b.StateID
	case FieldAssigneeIDs:
		return SameSet(a.AssigneeIDs, b.AssigneeIDs)
	case FieldPriority:
		return a.Priority == b.Priority
	case FieldStartDate:
		return SameDay(a.StartDate, b.StartDate)
	case FieldTargetDate:
		return SameDay(a.TargetDate, b.TargetDate)
	case FieldEstimatePoint:
		return ptrEqual(a.EstimatePoint, b.EstimatePoint)
	case FieldBudget:
		return ptrEqual(a.Budget, b.Budget)
	case FieldCycleID:
		return ptrEqual(a.CycleID, b.CycleID)
	case FieldModuleIDs:
		return SameSet(a.ModuleIDs, b.ModuleIDs)
	case FieldParentID:
		return ptrEqual(a.ParentID, b.ParentID)
	case FieldLabelIDs:
		return SameSet(a.LabelIDs, b.LabelIDs)
	default:
		return true
	}
}

// SameDay compares two optional dates at calendar-day granularity.
func SameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(DateLayout) == b.Format(DateLayout)
}

// SameSet reports whether two id lists hold the same members, ignoring order.
func SameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, v := range a {
		seen[v]++
	}
	for _, v := range b {
		if seen[v] == 0 {
			return false
		}
		seen[v]--
	}
	return true
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}
