package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Manage workflow states",
	}
	cmd.AddCommand(newStateAddCmd(app), newStateListCmd(app))
	return cmd
}

func newStateAddCmd(app *App) *cobra.Command {
	var project, name, group string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a workflow state to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			st := &domain.WorkflowState{
				ProjectID: p.ID,
				Name:      name,
				Group:     domain.StateGroup(strings.ToLower(group)),
			}
			if err := app.States.Create(cmd.Context(), st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created state %s in %s %s\n", formatter.StatePill(st), p.Identifier, formatter.TruncID(st.ID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", "", "Project id or identifier")
	cmd.Flags().StringVar(&name, "name", "", "State name")
	cmd.Flags().StringVar(&group, "group", string(domain.StateUnstarted), "backlog, unstarted, started, completed, or cancelled")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newStateListCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workflow states of a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := resolveProject(cmd.Context(), app, project)
			if err != nil {
				return err
			}
			states, err := app.States.ListByProject(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(states))
			for _, st := range states {
				rows = append(rows, []string{formatter.ShortID(st.ID), formatter.StatePill(st), string(st.Group)})
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "STATE", "GROUP"}, rows))
			return nil
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "Project id or identifier")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}
