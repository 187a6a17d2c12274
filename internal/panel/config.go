package panel

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// AtRiskFunc decides whether a due date should be flagged.
type AtRiskFunc func(due *time.Time, group domain.StateGroup, now time.Time) bool

// Config holds panel options that are not per-item.
type Config struct {
	// EnableBudgetField shows the budget row and allows mounting its controller.
	EnableBudgetField bool
	DueDateAtRisk     AtRiskFunc
	Now               func() time.Time
	// Logger is the diagnostic sink for swallowed budget failures.
	Logger *slog.Logger
}

func DefaultConfig() Config {
	return Config{
		EnableBudgetField: true,
		DueDateAtRisk:     DefaultDueDateAtRisk,
		Now:               time.Now,
		Logger:            slog.New(slog.DiscardHandler),
	}
}

func (c Config) withDefaults() Config {
	if c.DueDateAtRisk == nil {
		c.DueDateAtRisk = DefaultDueDateAtRisk
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	return c
}

// DefaultDueDateAtRisk flags a due date that is before today while the work
// item is still open.
func DefaultDueDateAtRisk(due *time.Time, group domain.StateGroup, now time.Time) bool {
	if due == nil || group.Closed() {
		return false
	}
	return due.Format(domain.DateLayout) < now.Format(domain.DateLayout)
}
