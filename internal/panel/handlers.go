package panel

import (
	"context"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// Panel binds one mounted work item to its handlers.
type Panel struct {
	in       Input
	cfg      Config
	lookup   Lookup
	dispatch Dispatcher
}

func New(in Input, lookup Lookup, cfg Config, dispatch Dispatcher) *Panel {
	if dispatch == nil {
		dispatch = SyncDispatcher{}
	}
	return &Panel{in: in, cfg: cfg.withDefaults(), lookup: lookup, dispatch: dispatch}
}

// Input returns the mount input.
func (p *Panel) Input() Input {
	return p.in
}

// Projection resolves the current snapshot of the mounted item.
func (p *Panel) Projection() (Projection, bool) {
	return Resolve(p.lookup, p.cfg, p.in.ItemID)
}

// Editable reports whether handlers are reachable right now.
func (p *Panel) Editable() bool {
	if p.in.Disabled {
		return false
	}
	_, ok := p.lookup.WorkItem(p.in.ItemID)
	return ok
}

func (p *Panel) SetState(ctx context.Context, stateID string) error {
	return p.write(ctx, domain.FieldStateID, domain.WorkItemPatch{StateID: domain.Some(stateID)})
}

func (p *Panel) SetAssignees(ctx context.Context, userIDs []string) error {
	return p.write(ctx, domain.FieldAssigneeIDs, domain.WorkItemPatch{AssigneeIDs: domain.Some(nonNil(userIDs))})
}

func (p *Panel) SetPriority(ctx context.Context, priority domain.Priority) error {
	return p.write(ctx, domain.FieldPriority, domain.WorkItemPatch{Priority: domain.Some(priority)})
}

// SetStartDate writes the calendar day of d; nil clears the date.
func (p *Panel) SetStartDate(ctx context.Context, d *time.Time) error {
	return p.write(ctx, domain.FieldStartDate, domain.WorkItemPatch{StartDate: domain.Some(calendarDay(d))})
}

// SetTargetDate writes the calendar day of d; nil clears the date.
func (p *Panel) SetTargetDate(ctx context.Context, d *time.Time) error {
	return p.write(ctx, domain.FieldTargetDate, domain.WorkItemPatch{TargetDate: domain.Some(calendarDay(d))})
}

func (p *Panel) SetEstimate(ctx context.Context, point *string) error {
	if err := p.requireSection(func(pr Projection) bool { return pr.ShowEstimate }); err != nil {
		return err
	}
	return p.write(ctx, domain.FieldEstimatePoint, domain.WorkItemPatch{EstimatePoint: domain.Some(point)})
}

func (p *Panel) SetModules(ctx context.Context, moduleIDs []string) error {
	if err := p.requireSection(func(pr Projection) bool { return pr.ShowModules }); err != nil {
		return err
	}
	return p.write(ctx, domain.FieldModuleIDs, domain.WorkItemPatch{ModuleIDs: domain.Some(nonNil(moduleIDs))})
}

func (p *Panel) SetCycle(ctx context.Context, cycleID *string) error {
	if err := p.requireSection(func(pr Projection) bool { return pr.ShowCycle }); err != nil {
		return err
	}
	return p.write(ctx, domain.FieldCycleID, domain.WorkItemPatch{CycleID: domain.Some(cycleID)})
}

func (p *Panel) SetParent(ctx context.Context, parentID *string) error {
	return p.write(ctx, domain.FieldParentID, domain.WorkItemPatch{ParentID: domain.Some(parentID)})
}

func (p *Panel) SetLabels(ctx context.Context, labelIDs []string) error {
	return p.write(ctx, domain.FieldLabelIDs, domain.WorkItemPatch{LabelIDs: domain.Some(nonNil(labelIDs))})
}

// write hands one single-field patch to the dispatcher. The gateway's
// result is not observed here.
func (p *Panel) write(ctx context.Context, field domain.FieldName, patch domain.WorkItemPatch) error {
	if p.in.Disabled {
		return ErrReadOnly
	}
	if _, ok := p.lookup.WorkItem(p.in.ItemID); !ok {
		return ErrNotFound
	}
	in := p.in
	p.dispatch.Dispatch(ctx, field, func(ctx context.Context) error {
		return in.Operations.Update(ctx, in.WorkspaceID, in.ProjectID, in.ItemID, patch)
	})
	return nil
}

func (p *Panel) requireSection(shown func(Projection) bool) error {
	if p.in.Disabled {
		return ErrReadOnly
	}
	pr, ok := p.Projection()
	if !ok {
		return ErrNotFound
	}
	if !shown(pr) {
		return ErrFieldHidden
	}
	return nil
}

func calendarDay(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return &day
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
