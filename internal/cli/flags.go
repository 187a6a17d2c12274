package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/spf13/pflag"
)

// priorityFlag is a pflag.Value restricted to known priorities.
type priorityFlag domain.Priority

var _ pflag.Value = (*priorityFlag)(nil)

func (p *priorityFlag) String() string { return string(*p) }
func (p *priorityFlag) Type() string   { return "priority" }

func (p *priorityFlag) Set(s string) error {
	v := domain.Priority(strings.ToLower(strings.TrimSpace(s)))
	if !domain.ValidPriority(v) {
		return fmt.Errorf("must be one of %s", joinPriorities())
	}
	*p = priorityFlag(v)
	return nil
}

func joinPriorities() string {
	names := make([]string, len(domain.Priorities))
	for i, p := range domain.Priorities {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// dateFlag is an optional YYYY-MM-DD calendar day.
type dateFlag struct {
	t *time.Time
}

var _ pflag.Value = (*dateFlag)(nil)

func (d *dateFlag) String() string {
	if d.t == nil {
		return ""
	}
	return d.t.Format(domain.DateLayout)
}

func (d *dateFlag) Type() string { return "date" }

func (d *dateFlag) Set(s string) error {
	t, err := parseOptionalDate(s)
	if err != nil {
		return err
	}
	d.t = t
	return nil
}

// parseOptionalDate parses YYYY-MM-DD; blank is nil.
func parseOptionalDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("use YYYY-MM-DD format")
	}
	return &t, nil
}
