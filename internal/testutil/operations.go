package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/peek/internal/domain"
)

// UpdateCall is one recorded mutation gateway call.
type UpdateCall struct {
	WorkspaceID string
	ProjectID   string
	ItemID      string
	Patch       domain.WorkItemPatch
}

// RecordingOperations is a mutation gateway double that records every call.
// Err, when set, is returned from every Update. OnUpdate runs after the call
// is recorded and may simulate the store re-emitting.
type RecordingOperations struct {
	mu       sync.Mutex
	calls    []UpdateCall
	Err      error
	OnUpdate func(UpdateCall)
}

func (r *RecordingOperations) Update(_ context.Context, workspaceID, projectID, itemID string, patch domain.WorkItemPatch) error {
	call := UpdateCall{WorkspaceID: workspaceID, ProjectID: projectID, ItemID: itemID, Patch: patch}
	r.mu.Lock()
	r.calls = append(r.calls, call)
	hook, err := r.OnUpdate, r.Err
	r.mu.Unlock()

	if hook != nil {
		hook(call)
	}
	return err
}

// Calls returns a copy of the recorded calls.
func (r *RecordingOperations) Calls() []UpdateCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]UpdateCall(nil), r.calls...)
}
