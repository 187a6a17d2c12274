package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/panel"
	"github.com/spf13/cobra"
)

func newItemCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage work items",
	}
	cmd.AddCommand(newItemAddCmd(app), newItemListCmd(app), newItemSetBudgetCmd(app))
	return cmd
}

func newItemAddCmd(app *App) *cobra.Command {
	var project, name, state, budget, createdBy string
	var assignees, labels []string
	priority := priorityFlag(domain.PriorityNone)
	var start, due dateFlag

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a work item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			amount, err := panel.ParseBudget(budget)
			if err != nil {
				return err
			}
			w := &domain.WorkItem{
				ProjectID:   p.ID,
				Name:        name,
				Priority:    domain.Priority(priority),
				StartDate:   start.t,
				TargetDate:  due.t,
				Budget:      amount,
				AssigneeIDs: assignees,
				LabelIDs:    labels,
				CreatedBy:   createdBy,
			}
			if state != "" {
				st, err := resolveState(ctx, app, p.ID, state)
				if err != nil {
					return err
				}
				w.StateID = st.ID
			}
			if err := app.WorkItems.Create(ctx, w); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created work item %s %s\n", formatter.Bold(w.Name), formatter.TruncID(w.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project id or identifier")
	cmd.Flags().StringVar(&name, "name", "", "Work item name")
	cmd.Flags().StringVar(&state, "state", "", "Workflow state id or name")
	cmd.Flags().Var(&priority, "priority", "Priority ("+joinPriorities()+")")
	cmd.Flags().Var(&start, "start", "Start date (YYYY-MM-DD)")
	cmd.Flags().Var(&due, "due", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&budget, "budget", "", "Budget amount")
	cmd.Flags().StringSliceVar(&assignees, "assignee", nil, "Assignee user id (repeatable)")
	cmd.Flags().StringSliceVar(&labels, "label", nil, "Label id (repeatable)")
	cmd.Flags().StringVar(&createdBy, "created-by", "", "Creator user id")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newItemListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List work items of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p, err := resolveProject(ctx, app, project)
			if err != nil {
				return err
			}
			items, err := app.WorkItems.ListByProject(ctx, p.ID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "No work items found.")
				return nil
			}
			rows := make([][]string, 0, len(items))
			for _, w := range items {
				rows = append(rows, []string{
					formatter.ShortID(w.ID),
					w.Name,
					formatter.PriorityPill(w.Priority),
					formatter.FormatDate(w.TargetDate),
					formatter.FormatBudget(w.Budget),
				})
			}
			fmt.Fprintln(out, formatter.RenderTable([]string{"ID", "NAME", "PRIORITY", "DUE", "BUDGET"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project id or identifier")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

// newItemSetBudgetCmd writes a budget through the mutation gateway. A blank
// value clears the budget.
func newItemSetBudgetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set-budget <item> <amount>",
		Short: "Set or clear the budget of a work item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			w, err := resolveWorkItem(ctx, app, args[0])
			if err != nil {
				return err
			}
			amount, err := panel.ParseBudget(args[1])
			if err != nil {
				return err
			}
			patch := domain.WorkItemPatch{Budget: domain.Some(amount)}
			if err := app.Operations.Update(ctx, w.WorkspaceSlug, w.ProjectID, w.ID, patch); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Budget of %s: %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(w.Name), formatter.FormatBudget(amount))
			return nil
		},
	}
}

// resolveState finds a workflow state of the project by id, id prefix, or
// case-insensitive name.
func resolveState(ctx context.Context, app *App, projectID, input string) (*domain.WorkflowState, error) {
	states, err := app.States.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	var matches []*domain.WorkflowState
	for _, st := range states {
		if st.ID == input || strings.EqualFold(st.Name, input) {
			return st, nil
		}
		if strings.HasPrefix(st.ID, input) {
			matches = append(matches, st)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("state not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("state %q is ambiguous (%d matches)", input, len(matches))
	}
}
