package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/render"
	"github.com/llehouerou/fmcli/internal/ui/styles"
)

// View renders the current screen.
func (m Model) View() string {
	if m.quitting || m.selection != nil {
		return ""
	}
	s := styles.T().S()

	sections := []string{m.header(), m.body()}

	switch {
	case m.loading != "":
		sections = append(sections, m.spinner.View()+" "+s.Muted.Render(m.loading))
	case m.status != "" && m.statusErr:
		sections = append(sections, s.Error.Render(m.status))
	case m.status != "":
		sections = append(sections, s.Success.Render(m.status))
	}

	if m.confirm.Active() {
		sections = append(sections, m.confirm.View())
	} else {
		sections = append(sections, s.Subtle.Render(m.hint()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) header() string {
	t := styles.T()
	if m.screen == ScreenHome {
		return styles.Logo()
	}
	brand := styles.ApplyBoldGradient("fmcli", t.Primary, t.Secondary)
	return brand + t.S().Muted.Render(" › ") + t.S().Title.Render(m.title())
}

func (m Model) title() string {
	switch m.screen { //nolint:exhaustive // home shows the logo
	case ScreenSearch:
		return "Search"
	case ScreenResults:
		title := fmt.Sprintf("Results for %q", m.page.Query)
		if m.page.Offset > 0 {
			title += fmt.Sprintf(" (from #%d)", m.page.Offset+1)
		}
		return title
	case ScreenStreams:
		return render.Sanitize(m.station.Name)
	case ScreenFavorites:
		return "Favorites"
	case ScreenHistory:
		return "History"
	}
	return ""
}

func (m Model) body() string {
	switch m.screen {
	case ScreenHome:
		return m.homeView()
	case ScreenSearch:
		return "\n" + m.input.View() + "\n"
	case ScreenResults:
		return m.resultsView()
	case ScreenStreams:
		return m.streamsView()
	case ScreenFavorites:
		return m.favoritesView()
	case ScreenHistory:
		return m.historyView()
	}
	return ""
}

func (m Model) homeView() string {
	s := styles.T().S()
	var lines []string
	for _, b := range keymap.ByContext(keymap.ContextHome) {
		lines = append(lines, "  "+s.Label.Render(b.Keys[0])+"  "+s.Base.Render(b.Description))
	}
	return "\n" + strings.Join(lines, "\n") + "\n"
}

func (m Model) resultsView() string {
	s := styles.T().S()
	if len(m.page.Stations) == 0 {
		return s.Muted.Render("No stations.")
	}
	var nav []string
	if m.page.HasPrev() {
		nav = append(nav, "← previous")
	}
	if m.page.HasNext() {
		nav = append(nav, "next →")
	}
	view := m.results.View()
	if len(nav) > 0 {
		view += "\n" + s.Muted.Render(strings.Join(nav, "   "))
	}
	return view
}

func (m Model) streamsView() string {
	s := styles.T().S()
	width := max(m.width, 20)

	info := []string{s.Muted.Render(render.Sanitize(m.station.Location))}
	if m.station.Genre != "" {
		info = append(info, s.Genre.Render(render.Sanitize(m.station.Genre)))
	}
	lines := []string{strings.Join(info, s.Subtle.Render(" · "))}
	if m.station.Description != "" {
		lines = append(lines, s.Subtle.Render(render.Truncate(render.Sanitize(m.station.Description), width)))
	}
	lines = append(lines, m.streamTable.View())
	return strings.Join(lines, "\n")
}

func (m Model) favoritesView() string {
	s := styles.T().S()
	if m.favorites.Len() == 0 {
		return s.Muted.Render("No favorites yet. Press a on a search result to add one.")
	}

	width := max(m.width, 20)
	nameW, locW := width*2/5, width/4
	genreW := max(width-nameW-locW-4, 1)

	items := m.favorites.Items()
	start, end := m.favorites.VisibleRange()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		f := items[i]
		row := render.TruncateAndPad(f.Name, nameW) + " " +
			render.TruncateAndPad(f.Location, locW) + " " +
			render.TruncateAndPad(f.Genre, genreW)
		lines = append(lines, m.listRow(row, i == m.favorites.SelectedIndex()))
	}
	return strings.Join(lines, "\n")
}

func (m Model) historyView() string {
	s := styles.T().S()
	if m.history.Len() == 0 {
		return s.Muted.Render("Nothing played yet.")
	}

	width := max(m.width, 20)
	items := m.history.Items()
	start, end := m.history.VisibleRange()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, m.listRow(historyRow(items[i], width-2), i == m.history.SelectedIndex()))
	}
	return strings.Join(lines, "\n")
}

func historyRow(e state.HistoryEntry, width int) string {
	stationW := width / 3
	whenW := 16
	durW := 9
	titleW := max(width-stationW-whenW-durW-3, 1)

	title := e.LastTitle
	if title == "" {
		title = e.Outcome
	}
	return render.TruncateAndPad(e.Station, stationW) + " " +
		render.TruncateAndPad(humanize.Time(e.PlayedAt), whenW) + " " +
		render.TruncateAndPad(render.Elapsed(e.Duration), durW) + " " +
		render.TruncateAndPad(title, titleW)
}

func (m Model) listRow(row string, selected bool) string {
	s := styles.T().S()
	if selected {
		return s.Cursor.Render("› " + row)
	}
	return s.Base.Render("  " + row)
}

func (m Model) hint() string {
	if m.screen == ScreenSearch {
		return "[enter] Search  [esc] Back"
	}
	if m.screen == ScreenHome {
		return ""
	}
	return keymap.Hint(keymap.ForContexts(screenContexts[m.screen]...))
}
