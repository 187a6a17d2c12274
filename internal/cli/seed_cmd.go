package cli

import (
	"fmt"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/service"
	"github.com/spf13/cobra"
)

func newSeedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo project with states, users, and work items",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := service.Seed(cmd.Context(), app.services(), app.Config.Workspace, app.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Seeded project %s [%s]\n", res.Project.Name, res.Project.Identifier)
			for _, w := range res.Items {
				fmt.Fprintf(out, "  %s %s\n", formatter.TruncID(w.ID), w.Name)
			}
			fmt.Fprintf(out, "\nTry: peek panel %s\n", formatter.ShortID(res.Items[0].ID))
			return nil
		},
	}
}
