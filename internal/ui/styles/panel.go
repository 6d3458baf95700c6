package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns a rounded panel. Focused panels use the accent border.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Border
	if focused {
		border = t.BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2)
}
