package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Field is one labelled row of the property panel.
type Field struct {
	Label    string
	Value    string
	ReadOnly bool
}

const labelWidth = 12

var (
	styleCursor   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	styleLabel    = lipgloss.NewStyle().Foreground(ColorDim).Width(labelWidth)
	styleSelected = lipgloss.NewStyle().Foreground(ColorHeader).Width(labelWidth)
)

// FormatFields renders panel rows. cursor is the index of the selected row,
// or -1 for none.
func FormatFields(fields []Field, cursor int) string {
	var b strings.Builder
	for i, f := range fields {
		marker := "  "
		label := styleLabel.Render(f.Label)
		if i == cursor {
			marker = styleCursor.Render("› ")
			label = styleSelected.Render(f.Label)
		}
		b.WriteString(marker)
		b.WriteString(label)
		b.WriteString(f.Value)
		if f.ReadOnly && i == cursor {
			b.WriteString(StyleDim.Render("  (read-only)"))
		}
		if i < len(fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// FormatPanel renders a titled panel: header, fields, and an optional footer.
func FormatPanel(title string, fields []Field, cursor int, footer string) string {
	parts := []string{Header(title), FormatFields(fields, cursor)}
	if footer != "" {
		parts = append(parts, footer)
	}
	return strings.Join(parts, "\n\n")
}
