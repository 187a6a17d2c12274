package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/peek/internal/domain"
)

// Placeholder is rendered for empty values.
const Placeholder = "--"

// RelativeDateFrom returns a human-friendly distance between two calendar days.
func RelativeDateFrom(t, now time.Time) string {
	a := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(math.Round(a.Sub(b).Hours() / 24))

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days > 0:
		return fmt.Sprintf("in %dd", days)
	default:
		return fmt.Sprintf("%dd ago", -days)
	}
}

// FormatDate renders an optional calendar day as YYYY-MM-DD.
func FormatDate(d *time.Time) string {
	if d == nil {
		return StyleDim.Render(Placeholder)
	}
	return d.Format(domain.DateLayout)
}

// FormatDueDate renders the due date with its relative distance; an at-risk
// due date is rendered red.
func FormatDueDate(d *time.Time, atRisk bool, now time.Time) string {
	if d == nil {
		return StyleDim.Render(Placeholder)
	}
	text := fmt.Sprintf("%s (%s)", d.Format(domain.DateLayout), RelativeDateFrom(*d, now))
	if atRisk {
		return StyleRed.Render(text + " ⚠")
	}
	return StyleFg.Render(text)
}

// FormatUsers joins user labels; intake bots render as the system name.
func FormatUsers(users []*domain.User) string {
	if len(users) == 0 {
		return StyleDim.Render("Unassigned")
	}
	names := make([]string, len(users))
	for i, u := range users {
		names[i] = u.Label()
	}
	return strings.Join(names, ", ")
}

// FormatIDs renders a set of ids, truncated.
func FormatIDs(ids []string) string {
	if len(ids) == 0 {
		return StyleDim.Render(Placeholder)
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = ShortID(id)
	}
	return strings.Join(parts, ", ")
}

// FormatOptional renders an optional string value.
func FormatOptional(s *string) string {
	if s == nil || *s == "" {
		return StyleDim.Render(Placeholder)
	}
	return *s
}

// FormatBudget renders a budget amount with two decimals.
func FormatBudget(v *float64) string {
	if v == nil {
		return StyleDim.Render(Placeholder)
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// ShortID returns the first 8 characters of an id.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// TruncID returns ShortID dimmed.
func TruncID(id string) string {
	return StyleDim.Render(ShortID(id))
}
