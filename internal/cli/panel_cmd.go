package cli

import (
	"fmt"

	"github.com/alexanderramin/peek/internal/panel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newPanelCmd(app *App) *cobra.Command {
	var readOnly bool

	cmd := &cobra.Command{
		Use:   "panel <item>",
		Short: "Open the interactive property panel of a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := mountItem(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				fmt.Fprintln(cmd.OutOrStdout(), renderStatic(app, w.ID))
				return nil
			}

			m := newPanelModel(app, panel.Input{
				WorkspaceID: w.WorkspaceSlug,
				ProjectID:   w.ProjectID,
				ItemID:      w.ID,
				Disabled:    readOnly,
				Operations:  app.Operations,
			})
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&readOnly, "read-only", false, "Open the panel without editing")
	return cmd
}
