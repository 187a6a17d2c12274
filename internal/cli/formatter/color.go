package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/peek/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// PriorityStyle returns the style a priority is rendered with.
func PriorityStyle(p domain.Priority) lipgloss.Style {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed
	case domain.PriorityHigh:
		return StyleYellow
	case domain.PriorityMedium:
		return StyleBlue
	case domain.PriorityLow:
		return StyleFg
	default:
		return StyleDim
	}
}

// PriorityPill returns a colored priority indicator such as "▲ Urgent".
func PriorityPill(p domain.Priority) string {
	switch p {
	case domain.PriorityUrgent:
		return StyleRed.Render("▲ Urgent")
	case domain.PriorityHigh:
		return StyleYellow.Render("▲ High")
	case domain.PriorityMedium:
		return StyleBlue.Render("■ Medium")
	case domain.PriorityLow:
		return StyleFg.Render("▼ Low")
	default:
		return StyleDim.Render("– None")
	}
}

// StatePill renders a workflow state name colored by its group.
func StatePill(st *domain.WorkflowState) string {
	if st == nil {
		return StyleDim.Render("○ No state")
	}
	switch st.Group {
	case domain.StateStarted:
		return StyleGreen.Render("● " + st.Name)
	case domain.StateUnstarted:
		return StyleBlue.Render("○ " + st.Name)
	case domain.StateCompleted:
		return StyleDim.Render("✔ " + st.Name)
	case domain.StateCancelled:
		return StyleDim.Render("✖ " + st.Name)
	default:
		return StyleDim.Render("◌ " + st.Name)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
