package domain

import "time"

// FieldName is the canonical wire name of a patchable work item field.
type FieldName string

const (
	FieldStateID       FieldName = "state_id"
	FieldAssigneeIDs   FieldName = "assignee_ids"
	FieldPriority      FieldName = "priority"
	FieldStartDate     FieldName = "start_date"
	FieldTargetDate    FieldName = "target_date"
	FieldEstimatePoint FieldName = "estimate_point"
	FieldBudget        FieldName = "budget"
	FieldCycleID       FieldName = "cycle_id"
	FieldModuleIDs     FieldName = "module_ids"
	FieldParentID      FieldName = "parent_id"
	FieldLabelIDs      FieldName = "label_ids"
)

// PatchableFields lists every field a WorkItemPatch can carry.
var PatchableFields = []FieldName{
	FieldStateID, FieldAssigneeIDs, FieldPriority, FieldStartDate, FieldTargetDate,
	FieldEstimatePoint, FieldBudget, FieldCycleID, FieldModuleIDs, FieldParentID, FieldLabelIDs,
}

// Field is one slot of a partial update. A zero Field leaves the stored
// value untouched; Set with a nil pointer value clears it.
type Field[T any] struct {
	Set   bool
	Value T
}

// Some returns a Field that writes v.
func Some[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// WorkItemPatch is a partial record of WorkItem fields.
type WorkItemPatch struct {
	StateID       Field[string]
	AssigneeIDs   Field[[]string]
	Priority      Field[Priority]
	StartDate     Field[*time.Time]
	TargetDate    Field[*time.Time]
	EstimatePoint Field[*string]
	Budget        Field[*float64]
	CycleID       Field[*string]
	ModuleIDs     Field[[]string]
	ParentID      Field[*string]
	LabelIDs      Field[[]string]
}

// Fields returns the names of the slots that are set, in canonical order.
func (p WorkItemPatch) Fields() []FieldName {
	set := map[FieldName]bool{
		FieldStateID:       p.StateID.Set,
		FieldAssigneeIDs:   p.AssigneeIDs.Set,
		FieldPriority:      p.Priority.Set,
		FieldStartDate:     p.StartDate.Set,
		FieldTargetDate:    p.TargetDate.Set,
		FieldEstimatePoint: p.EstimatePoint.Set,
		FieldBudget:        p.Budget.Set,
		FieldCycleID:       p.CycleID.Set,
		FieldModuleIDs:     p.ModuleIDs.Set,
		FieldParentID:      p.ParentID.Set,
		FieldLabelIDs:      p.LabelIDs.Set,
	}
	var out []FieldName
	for _, f := range PatchableFields {
		if set[f] {
			out = append(out, f)
		}
	}
	return out
}

// Empty reports whether the patch carries no fields.
func (p WorkItemPatch) Empty() bool {
	return len(p.Fields()) == 0
}

// Apply writes the set slots onto w. It does not touch UpdatedAt.
func (p WorkItemPatch) Apply(w *WorkItem) {
	if p.StateID.Set {
		w.StateID = p.StateID.Value
	}
	if p.AssigneeIDs.Set {
		w.AssigneeIDs = cloneStrings(p.AssigneeIDs.Value)
	}
	if p.Priority.Set {
		w.Priority = p.Priority.Value
	}
	if p.StartDate.Set {
		w.StartDate = clonePtr(p.StartDate.Value)
	}
	if p.TargetDate.Set {
		w.TargetDate = clonePtr(p.TargetDate.Value)
	}
	if p.EstimatePoint.Set {
		w.EstimatePoint = clonePtr(p.EstimatePoint.Value)
	}
	if p.Budget.Set {
		w.Budget = clonePtr(p.Budget.Value)
	}
	if p.CycleID.Set {
		w.CycleID = clonePtr(p.CycleID.Value)
	}
	if p.ModuleIDs.Set {
		w.ModuleIDs = cloneStrings(p.ModuleIDs.Value)
	}
	if p.ParentID.Set {
		w.ParentID = clonePtr(p.ParentID.Value)
	}
	if p.LabelIDs.Set {
		w.LabelIDs = cloneStrings(p.LabelIDs.Value)
	}
}
