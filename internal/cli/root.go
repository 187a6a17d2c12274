package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/peek/internal/config"
	"github.com/alexanderramin/peek/internal/panel"
	"github.com/alexanderramin/peek/internal/service"
	"github.com/alexanderramin/peek/internal/store"
	"github.com/spf13/cobra"
)

// App holds references to everything CLI commands use.
type App struct {
	Config config.Config

	Projects  service.ProjectService
	States    service.StateService
	Users     service.UserService
	WorkItems service.WorkItemService

	Store      *store.Store
	Operations panel.Operations
	Logger     *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal. The panel command
	// falls back to show when it is not.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (a *App) services() service.Services {
	return service.Services{Projects: a.Projects, States: a.States, Users: a.Users, WorkItems: a.WorkItems}
}

// panelConfig derives the panel configuration from the process config.
func (a *App) panelConfig() panel.Config {
	cfg := panel.DefaultConfig()
	cfg.EnableBudgetField = a.Config.EnableBudget
	cfg.Now = a.now
	cfg.Logger = a.logger()
	return cfg
}

// NewRootCmd creates the top-level "peek" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "peek",
		Short:         "Inspect and edit work item properties",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&app.Config.Workspace, "workspace", "w", app.Config.Workspace, "Workspace slug")

	root.AddCommand(
		newPanelCmd(app),
		newShowCmd(app),
		newProjectCmd(app),
		newStateCmd(app),
		newUserCmd(app),
		newItemCmd(app),
		newSeedCmd(app),
	)
	return root
}
