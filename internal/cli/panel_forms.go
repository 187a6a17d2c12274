package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/panel"
	"github.com/charmbracelet/huh"
)

// picker is an open huh form plus the handler call that applies its result.
type picker struct {
	row   rowKind
	form  *huh.Form
	apply func(ctx context.Context, p *panel.Panel) error
}

func newForm(field huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(field)).WithTheme(peekHuhTheme()).WithShowHelp(false)
}

// openPicker builds the picker for a row, or returns nil for rows that are
// not edited through a form. apply skips the handler when the submitted
// value equals the snapshot.
func (m *panelModel) openPicker(r rowKind, pr panel.Projection) *picker {
	w := pr.Item
	switch r {
	case rowState:
		value := w.StateID
		states := m.app.Store.States(w.ProjectID)
		opts := make([]huh.Option[string], 0, len(states))
		for _, st := range states {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%s (%s)", st.Name, st.Group), st.ID))
		}
		form := newForm(huh.NewSelect[string]().Title("State").Options(opts...).Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if value == w.StateID {
				return nil
			}
			return p.SetState(ctx, value)
		}}

	case rowAssignees:
		value := append([]string(nil), w.AssigneeIDs...)
		users := m.app.Store.Users()
		opts := make([]huh.Option[string], 0, len(users))
		for _, u := range users {
			opts = append(opts, huh.NewOption(u.Label(), u.ID))
		}
		form := newForm(huh.NewMultiSelect[string]().Title("Assignees").Options(opts...).Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if domain.SameSet(value, w.AssigneeIDs) {
				return nil
			}
			return p.SetAssignees(ctx, value)
		}}

	case rowPriority:
		value := w.Priority
		opts := make([]huh.Option[domain.Priority], 0, len(domain.Priorities))
		for _, prio := range domain.Priorities {
			opts = append(opts, huh.NewOption(strings.ToUpper(string(prio[:1]))+string(prio[1:]), prio))
		}
		form := newForm(huh.NewSelect[domain.Priority]().Title("Priority").Options(opts...).Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if value == w.Priority {
				return nil
			}
			return p.SetPriority(ctx, value)
		}}

	case rowStartDate:
		value := dateText(w.StartDate)
		form := newForm(dateInput("Start date (YYYY-MM-DD, blank for none)", &value, nil, pr.StartDateMax))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			d, err := parseOptionalDate(value)
			if err != nil || domain.SameDay(d, w.StartDate) {
				return err
			}
			return p.SetStartDate(ctx, d)
		}}

	case rowDueDate:
		value := dateText(w.TargetDate)
		form := newForm(dateInput("Due date (YYYY-MM-DD, blank for none)", &value, pr.DueDateMin, nil))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			d, err := parseOptionalDate(value)
			if err != nil || domain.SameDay(d, w.TargetDate) {
				return err
			}
			return p.SetTargetDate(ctx, d)
		}}

	case rowEstimate:
		value := optionalText(w.EstimatePoint)
		form := newForm(huh.NewInput().Title("Estimate point (blank for none)").Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if strings.TrimSpace(value) == optionalText(w.EstimatePoint) {
				return nil
			}
			return p.SetEstimate(ctx, textPtr(value))
		}}

	case rowCycle:
		value := optionalText(w.CycleID)
		form := newForm(huh.NewInput().Title("Cycle id (blank for none)").Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if strings.TrimSpace(value) == optionalText(w.CycleID) {
				return nil
			}
			return p.SetCycle(ctx, textPtr(value))
		}}

	case rowModules:
		value := strings.Join(w.ModuleIDs, ", ")
		form := newForm(huh.NewInput().Title("Module ids (comma separated)").Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			ids := splitIDs(value)
			if domain.SameSet(ids, w.ModuleIDs) {
				return nil
			}
			return p.SetModules(ctx, ids)
		}}

	case rowLabels:
		value := strings.Join(w.LabelIDs, ", ")
		form := newForm(huh.NewInput().Title("Label ids (comma separated)").Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			ids := splitIDs(value)
			if domain.SameSet(ids, w.LabelIDs) {
				return nil
			}
			return p.SetLabels(ctx, ids)
		}}

	case rowParent:
		value := optionalText(w.ParentID)
		opts := []huh.Option[string]{huh.NewOption("No parent", "")}
		for _, it := range m.app.Store.WorkItems(w.ProjectID) {
			if it.ID != w.ID {
				opts = append(opts, huh.NewOption(fmt.Sprintf("%s %s", formatter.ShortID(it.ID), it.Name), it.ID))
			}
		}
		form := newForm(huh.NewSelect[string]().Title("Parent").Options(opts...).Value(&value))
		return &picker{row: r, form: form, apply: func(ctx context.Context, p *panel.Panel) error {
			if value == optionalText(w.ParentID) {
				return nil
			}
			return p.SetParent(ctx, textPtr(value))
		}}
	}
	return nil
}

// dateInput returns an optional date input bounded by lo and hi.
func dateInput(title string, value *string, lo, hi *time.Time) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2025-06-30").
		Value(value).
		Validate(func(s string) error { return validateDateInRange(s, lo, hi) })
}

// validateDateInRange accepts blank or a YYYY-MM-DD day within [lo, hi].
func validateDateInRange(s string, lo, hi *time.Time) error {
	d, err := parseOptionalDate(s)
	if err != nil || d == nil {
		return err
	}
	day := d.Format(domain.DateLayout)
	if lo != nil && day < lo.Format(domain.DateLayout) {
		return fmt.Errorf("must be on or after %s", lo.Format(domain.DateLayout))
	}
	if hi != nil && day > hi.Format(domain.DateLayout) {
		return fmt.Errorf("must be on or before %s", hi.Format(domain.DateLayout))
	}
	return nil
}

func dateText(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(domain.DateLayout)
}

func optionalText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func textPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func splitIDs(s string) []string {
	ids := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	return ids
}
