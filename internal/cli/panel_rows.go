package cli

import (
	"time"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/panel"
)

type rowKind int

const (
	rowState rowKind = iota
	rowAssignees
	rowPriority
	rowCreatedBy
	rowStartDate
	rowDueDate
	rowEstimate
	rowModules
	rowCycle
	rowParent
	rowLabels
	rowBudget
)

var rowTitles = map[rowKind]string{
	rowState:     "State",
	rowAssignees: "Assignees",
	rowPriority:  "Priority",
	rowCreatedBy: "Created by",
	rowStartDate: "Start date",
	rowDueDate:   "Due date",
	rowEstimate:  "Estimate",
	rowModules:   "Modules",
	rowCycle:     "Cycle",
	rowParent:    "Parent",
	rowLabels:    "Labels",
	rowBudget:    "Budget",
}

// visibleRows lists the rows shown for a projection, in display order.
func visibleRows(p panel.Projection) []rowKind {
	rows := []rowKind{rowState, rowAssignees, rowPriority, rowCreatedBy, rowStartDate, rowDueDate}
	if p.ShowEstimate {
		rows = append(rows, rowEstimate)
	}
	if p.ShowModules {
		rows = append(rows, rowModules)
	}
	if p.ShowCycle {
		rows = append(rows, rowCycle)
	}
	rows = append(rows, rowParent, rowLabels)
	if p.ShowBudget {
		rows = append(rows, rowBudget)
	}
	return rows
}

// rowValue renders the static value of a row. The budget row shows
// budgetText, which is the controller's display value in the TUI.
func rowValue(p panel.Projection, r rowKind, budgetText string, now time.Time) string {
	w := p.Item
	switch r {
	case rowState:
		return formatter.StatePill(p.State)
	case rowAssignees:
		return formatter.FormatUsers(p.Assignees)
	case rowPriority:
		return formatter.PriorityPill(w.Priority)
	case rowCreatedBy:
		if p.CreatedByName == "" {
			return formatter.Dim(formatter.Placeholder)
		}
		return p.CreatedByName
	case rowStartDate:
		return formatter.FormatDate(w.StartDate)
	case rowDueDate:
		return formatter.FormatDueDate(w.TargetDate, p.DueDateAtRisk, now)
	case rowEstimate:
		return formatter.FormatOptional(w.EstimatePoint)
	case rowModules:
		return formatter.FormatIDs(w.ModuleIDs)
	case rowCycle:
		if w.CycleID == nil {
			return formatter.Dim(formatter.Placeholder)
		}
		return formatter.ShortID(*w.CycleID)
	case rowParent:
		if w.ParentID == nil {
			return formatter.Dim(formatter.Placeholder)
		}
		return formatter.ShortID(*w.ParentID)
	case rowLabels:
		return formatter.FormatIDs(w.LabelIDs)
	case rowBudget:
		if budgetText == "" {
			return formatter.Dim(formatter.Placeholder)
		}
		return budgetText
	}
	return ""
}

func projectionFields(p panel.Projection, budgetText string, now time.Time) []formatter.Field {
	rows := visibleRows(p)
	fields := make([]formatter.Field, len(rows))
	for i, r := range rows {
		fields[i] = formatter.Field{
			Label:    rowTitles[r],
			Value:    rowValue(p, r, budgetText, now),
			ReadOnly: r == rowCreatedBy,
		}
	}
	return fields
}

func panelTitle(p panel.Projection) string {
	if p.Project != nil {
		return p.Project.Identifier + " · " + p.Item.Name
	}
	return p.Item.Name
}
