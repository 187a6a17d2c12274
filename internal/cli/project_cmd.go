package cli

import (
	"fmt"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/domain"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(newProjectAddCmd(app), newProjectListCmd(app))
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, identifier string
	var estimates, modules, cycles bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a new project",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &domain.Project{
				WorkspaceSlug:   app.Config.Workspace,
				Identifier:      identifier,
				Name:            name,
				EstimateEnabled: estimates,
				ModuleView:      modules,
				CycleView:       cycles,
			}
			if err := app.Projects.Create(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s [%s] %s\n", p.Name, p.Identifier, formatter.TruncID(p.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&identifier, "id", "", "Identifier (uppercase, e.g. WEB)")
	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().BoolVar(&estimates, "estimates", false, "Enable estimate points")
	cmd.Flags().BoolVar(&modules, "modules", false, "Enable the module view")
	cmd.Flags().BoolVar(&cycles, "cycles", false, "Enable the cycle view")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects in the workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context(), app.Config.Workspace)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(projects) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{p.Identifier, p.Name, formatter.TruncID(p.ID)})
			}
			fmt.Fprintln(out, formatter.RenderTable([]string{"ID", "NAME", "UUID"}, rows))
			return nil
		},
	}
}
