package panel

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/alexanderramin/peek/internal/domain"
)

// BudgetState is the state of the budget controller.
type BudgetState int

const (
	BudgetUninitialized BudgetState = iota
	BudgetSynced
	BudgetEditing
)

func (s BudgetState) String() string {
	switch s {
	case BudgetSynced:
		return "synced"
	case BudgetEditing:
		return "editing"
	default:
		return "uninitialized"
	}
}

// BudgetField buffers edits of the budget text input. It is safe for
// concurrent use: store notifications arrive on the goroutine that
// completed a write.
type BudgetField struct {
	panel *Panel

	mu          sync.Mutex
	state       BudgetState
	synced      *float64
	text        string
	closed      bool
	unsubscribe func()
}

// MountBudget subscribes a budget controller to upstream budget changes of
// the panel's item and seeds it from the current snapshot. It returns false
// when the budget field is disabled by configuration.
func (p *Panel) MountBudget(w Watcher) (*BudgetField, bool) {
	if !p.cfg.EnableBudgetField {
		return nil, false
	}
	b := &BudgetField{panel: p}
	unsubscribe := w.Watch(p.in.ItemID, domain.FieldBudget, func(item *domain.WorkItem) {
		if item != nil {
			b.Sync(item.Budget)
		}
	})
	b.mu.Lock()
	b.unsubscribe = unsubscribe
	b.mu.Unlock()
	if item, ok := p.lookup.WorkItem(p.in.ItemID); ok {
		b.seed(item.Budget)
	}
	return b, true
}

// seed initializes the buffer from the mount-time snapshot. It does nothing
// once a store notification has already initialized the controller.
func (b *BudgetField) seed(v *float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed || b.state != BudgetUninitialized {
		return
	}
	b.state = BudgetSynced
	b.synced = copyFloat(v)
	b.text = ""
}

// Sync reseeds the buffer from the upstream value when the controller is
// uninitialized or upstream differs from the last synced value. An
// uncommitted edit is overwritten. Reports whether it reseeded.
func (b *BudgetField) Sync(upstream *float64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return false
	}
	if b.state != BudgetUninitialized && budgetEqual(upstream, b.synced) {
		return false
	}
	b.state = BudgetSynced
	b.synced = copyFloat(upstream)
	b.text = ""
	return true
}

// Edit records a keystroke-level change of the input text.
func (b *BudgetField) Edit(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.state = BudgetEditing
	b.text = text
}

// Display returns what the input shows.
func (b *BudgetField) Display() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == BudgetEditing {
		return b.text
	}
	return FormatBudget(b.synced)
}

func (b *BudgetField) State() BudgetState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Commit runs the commit check at a blur or Enter boundary. When the parsed
// buffer differs from the snapshot it dispatches one {budget: value} update.
// A failed write is logged and swallowed and the buffer is kept; the next
// upstream emission decides what is shown.
func (b *BudgetField) Commit(ctx context.Context) error {
	b.mu.Lock()
	if b.closed || b.state == BudgetUninitialized {
		b.mu.Unlock()
		return nil
	}
	buffer := b.text
	if b.state == BudgetSynced {
		buffer = FormatBudget(b.synced)
	}
	b.mu.Unlock()

	p := b.panel
	if p.in.Disabled {
		return ErrReadOnly
	}
	item, ok := p.lookup.WorkItem(p.in.ItemID)
	if !ok {
		return ErrNotFound
	}

	value, err := ParseBudget(buffer)
	if err != nil {
		p.cfg.Logger.WarnContext(ctx, "budget rejected", "item_id", p.in.ItemID, "input", buffer)
		return err
	}
	if budgetEqual(value, item.Budget) {
		return nil
	}

	in, logger := p.in, p.cfg.Logger
	patch := domain.WorkItemPatch{Budget: domain.Some(value)}
	p.dispatch.Dispatch(ctx, domain.FieldBudget, func(ctx context.Context) error {
		if err := in.Operations.Update(ctx, in.WorkspaceID, in.ProjectID, in.ItemID, patch); err != nil {
			logger.ErrorContext(ctx, "budget save failed", "item_id", in.ItemID, "error", err)
		}
		return nil
	})
	return nil
}

// Close unsubscribes from the store. Later calls are no-ops.
func (b *BudgetField) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	unsubscribe := b.unsubscribe
	b.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// ParseBudget converts input text to a budget value: blank is null,
// anything else must be a finite number.
func ParseBudget(text string) (*float64, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%q: %w", text, ErrInvalidBudget)
	}
	return &v, nil
}

// FormatBudget renders a budget value for the input; null renders blank.
func FormatBudget(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func budgetEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
