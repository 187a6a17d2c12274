package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/alexanderramin/peek/internal/repository"
)

// resolveWorkItem finds a work item in the current workspace by full id or
// unique id prefix.
func resolveWorkItem(ctx context.Context, app *App, input string) (*domain.WorkItem, error) {
	if input == "" {
		return nil, fmt.Errorf("work item ID is required")
	}

	w, err := app.WorkItems.GetByID(ctx, input)
	switch {
	case err == nil:
		if w.WorkspaceSlug != app.Config.Workspace {
			return nil, fmt.Errorf("work item %s is not in workspace %q", input, app.Config.Workspace)
		}
		return w, nil
	case !errors.Is(err, repository.ErrNotFound):
		return nil, err
	}

	projects, err := app.Projects.List(ctx, app.Config.Workspace)
	if err != nil {
		return nil, err
	}
	var matches []*domain.WorkItem
	for _, p := range projects {
		items, err := app.WorkItems.ListByProject(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		for _, w := range items {
			if strings.HasPrefix(w.ID, input) {
				matches = append(matches, w)
			}
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("work item not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("work item ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

// resolveProject finds a project in the current workspace by id or identifier.
func resolveProject(ctx context.Context, app *App, input string) (*domain.Project, error) {
	if input == "" {
		return nil, fmt.Errorf("project is required")
	}
	p, err := app.Projects.Resolve(ctx, app.Config.Workspace, input)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("project not found: %q", input)
	}
	if err != nil {
		return nil, err
	}
	if p.WorkspaceSlug != app.Config.Workspace {
		return nil, fmt.Errorf("project %s is not in workspace %q", input, app.Config.Workspace)
	}
	return p, nil
}

// mountItem resolves the work item and loads its project into the store.
func mountItem(ctx context.Context, app *App, input string) (*domain.WorkItem, error) {
	w, err := resolveWorkItem(ctx, app, input)
	if err != nil {
		return nil, err
	}
	if err := app.Store.LoadProject(ctx, w.ProjectID); err != nil {
		return nil, err
	}
	return w, nil
}
