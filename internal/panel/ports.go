package panel

import (
	"context"
	"errors"
	"sync"

	"github.com/alexanderramin/peek/internal/domain"
)

var (
	// ErrReadOnly is returned by every handler of a disabled panel.
	ErrReadOnly = errors.New("panel is read-only")
	// ErrNotFound is returned when the work item is absent from the store.
	ErrNotFound = errors.New("work item not found")
	// ErrFieldHidden is returned for a field whose section is not shown.
	ErrFieldHidden = errors.New("field is not shown for this project")
	// ErrInvalidBudget is returned when the budget buffer is not a number.
	ErrInvalidBudget = errors.New("budget must be a number")
)

// Operations is the mutation gateway.
type Operations interface {
	Update(ctx context.Context, workspaceID, projectID, itemID string, patch domain.WorkItemPatch) error
}

// Lookup is the synchronous read side of the entity store.
type Lookup interface {
	WorkItem(id string) (*domain.WorkItem, bool)
	Project(id string) (*domain.Project, bool)
	State(id string) (*domain.WorkflowState, bool)
	User(id string) (*domain.User, bool)
}

// Watcher delivers per-field change notifications for one work item.
type Watcher interface {
	Watch(itemID string, field domain.FieldName, fn func(item *domain.WorkItem)) (unsubscribe func())
}

// Input is what the host passes to mount a panel.
type Input struct {
	WorkspaceID string
	ProjectID   string
	ItemID      string
	Disabled    bool
	Operations  Operations
}

// Dispatcher runs gateway writes. Implementations decide where the write
// runs; none of them report the result back to the handler.
type Dispatcher interface {
	Dispatch(ctx context.Context, field domain.FieldName, write func(ctx context.Context) error)
}

// SyncDispatcher runs writes inline and drops their result.
type SyncDispatcher struct{}

func (SyncDispatcher) Dispatch(ctx context.Context, _ domain.FieldName, write func(context.Context) error) {
	_ = write(ctx)
}

// GoDispatcher runs each write on its own goroutine. Writes are detached
// from the caller's cancellation, so unmounting does not abort them.
type GoDispatcher struct {
	wg sync.WaitGroup
}

func (d *GoDispatcher) Dispatch(ctx context.Context, _ domain.FieldName, write func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		_ = write(ctx)
	}()
}

// Wait blocks until every dispatched write has returned.
func (d *GoDispatcher) Wait() {
	d.wg.Wait()
}
