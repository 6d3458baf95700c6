package cmd

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/llehouerou/fmcli/internal/ui/render"
	"github.com/llehouerou/fmcli/internal/ui/styles"
)

// printTable renders rows for plain terminal output.
func printTable(headers []string, rows [][]string) string {
	t := styles.T()
	header := lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	for _, row := range rows {
		for i := range row {
			row[i] = render.Sanitize(row[i])
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(t.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}
