package cli

import (
	"fmt"

	"github.com/alexanderramin/peek/internal/cli/formatter"
	"github.com/alexanderramin/peek/internal/panel"
	"github.com/spf13/cobra"
)

func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <item>",
		Short: "Print the property panel of a work item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := mountItem(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderStatic(app, w.ID))
			return nil
		},
	}
}

// renderStatic renders the projection without interaction. It renders
// nothing when the item is absent from the store.
func renderStatic(app *App, itemID string) string {
	p, ok := panel.Resolve(app.Store, app.panelConfig(), itemID)
	if !ok {
		return ""
	}
	return formatter.FormatPanel(panelTitle(p), projectionFields(p, panel.FormatBudget(p.Item.Budget), app.now()), -1, "")
}
