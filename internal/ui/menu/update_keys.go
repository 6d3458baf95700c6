package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/keymap"
)

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}
	if m.confirm.Active() {
		cmd := m.confirm.Update(msg)
		return m, cmd
	}
	if m.loading != "" {
		// Esc abandons the request; its response will be stale.
		if msg.Type == tea.KeyEsc {
			m.seq++
			m.loading = ""
			m.setStatus("Cancelled")
		}
		return m, nil
	}

	switch m.screen {
	case ScreenHome:
		return m.updateHome(msg)
	case ScreenSearch:
		return m.updateSearch(msg)
	case ScreenResults:
		return m.updateResults(msg)
	case ScreenStreams:
		return m.updateStreams(msg)
	case ScreenFavorites:
		return m.updateFavorites(msg)
	case ScreenHistory:
		return m.updateHistory(msg)
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.resolvers[ScreenHome].Resolve(msg.String()) { //nolint:exhaustive // home actions only
	case keymap.ActionSearch:
		return m.openSearch()
	case keymap.ActionFavorites:
		m.screen = ScreenFavorites
		m.clearStatus()
		return m, m.loadFavoritesCmd()
	case keymap.ActionHistory:
		m.screen = ScreenHistory
		m.clearStatus()
		return m, m.loadHistoryCmd()
	case keymap.ActionQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) openSearch() (tea.Model, tea.Cmd) {
	m.screen = ScreenSearch
	m.clearStatus()
	m.input.CursorEnd()
	focus := m.input.Focus()
	return m, tea.Batch(focus, textinput.Blink)
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type { //nolint:exhaustive // every other key is typed into the input
	case tea.KeyEnter:
		query := strings.TrimSpace(m.input.Value())
		if query == "" {
			m.setError("Type a station name to search")
			return m, nil
		}
		return m.search(query, 0)
	case tea.KeyEsc:
		m.input.Blur()
		m.screen = ScreenHome
		m.clearStatus()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) search(query string, offset int) (tea.Model, tea.Cmd) {
	seq := m.startLoading(fmt.Sprintf("Searching %q", query))
	return m, tea.Batch(m.spinner.Tick, m.searchCmd(seq, query, offset))
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.resolvers[ScreenResults].Resolve(msg.String()) { //nolint:exhaustive // results actions only
	case keymap.ActionSelect:
		if st, ok := m.selectedStation(); ok {
			return m.openStreams(st, ScreenResults)
		}
		return m, nil
	case keymap.ActionMenuBack:
		return m.openSearch()
	case keymap.ActionNextPage:
		if !m.page.HasNext() {
			m.setStatus("Already on the last page")
			return m, nil
		}
		return m.search(m.page.Query, *m.page.NextOffset)
	case keymap.ActionPrevPage:
		if !m.page.HasPrev() {
			m.setStatus("Already on the first page")
			return m, nil
		}
		return m.search(m.page.Query, *m.page.PrevOffset)
	case keymap.ActionAddFavorite:
		if st, ok := m.selectedStation(); ok {
			return m, m.addFavoriteCmd(st)
		}
		return m, nil
	case keymap.ActionQuit:
		return m.quit()
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return m, cmd
}

func (m Model) selectedStation() (catalog.Station, bool) {
	i := m.results.Cursor()
	if i < 0 || i >= len(m.page.Stations) {
		return catalog.Station{}, false
	}
	return m.page.Stations[i], true
}

func (m Model) openStreams(st catalog.Station, from Screen) (tea.Model, tea.Cmd) {
	streams := st.SortedStreams()
	if len(streams) == 0 {
		m.setError("No streams listed for " + st.Name)
		return m, nil
	}
	m.station = st
	m.streams = streams
	m.streamTable.SetRows(streamRows(streams))
	m.streamTable.SetCursor(0)
	m.streamsFrom = from
	m.screen = ScreenStreams
	m.clearStatus()
	return m, nil
}

func (m Model) updateStreams(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.resolvers[ScreenStreams].Resolve(msg.String()) { //nolint:exhaustive // streams actions only
	case keymap.ActionSelect:
		i := m.streamTable.Cursor()
		if i < 0 || i >= len(m.streams) {
			return m, nil
		}
		m.selection = &Selection{Station: m.station, Stream: m.streams[i]}
		return m, tea.Quit
	case keymap.ActionMenuBack:
		m.screen = m.streamsFrom
		m.clearStatus()
		return m, nil
	case keymap.ActionAddFavorite:
		return m, m.addFavoriteCmd(m.station)
	case keymap.ActionQuit:
		return m.quit()
	}

	var cmd tea.Cmd
	m.streamTable, cmd = m.streamTable.Update(msg)
	return m, cmd
}

func (m Model) updateFavorites(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.favorites.Update(msg) {
		return m, nil
	}

	switch m.resolvers[ScreenFavorites].Resolve(msg.String()) { //nolint:exhaustive // favorites actions only
	case keymap.ActionSelect:
		fav, ok := m.favorites.Selected()
		if !ok {
			return m, nil
		}
		seq := m.startLoading("Looking up " + fav.Name)
		return m, tea.Batch(m.spinner.Tick, m.lookupCmd(seq, fav))
	case keymap.ActionRemoveFavorite:
		if fav, ok := m.favorites.Selected(); ok {
			m.confirm.Show("Remove favorite?", fmt.Sprintf("%s (%s)", fav.Name, fav.Location), fav)
		}
		return m, nil
	case keymap.ActionMenuBack:
		m.screen = ScreenHome
		m.clearStatus()
		return m, nil
	case keymap.ActionQuit:
		return m.quit()
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.history.Update(msg) {
		return m, nil
	}

	switch m.resolvers[ScreenHistory].Resolve(msg.String()) { //nolint:exhaustive // history actions only
	case keymap.ActionSelect:
		e, ok := m.history.Selected()
		if !ok {
			return m, nil
		}
		m.selection = &Selection{
			Station: catalog.Station{Name: e.Station, Location: e.Location, Genre: e.Genre},
			Stream:  catalog.Stream{URL: e.StreamURL, Codec: e.Codec, Bitrate: e.Bitrate},
		}
		return m, tea.Quit
	case keymap.ActionClearHistory:
		if m.history.Len() > 0 {
			m.confirm.Show("Clear history?", fmt.Sprintf("%d entries will be deleted", m.history.Len()), clearHistoryRequest{})
		}
		return m, nil
	case keymap.ActionMenuBack:
		m.screen = ScreenHome
		m.clearStatus()
		return m, nil
	case keymap.ActionQuit:
		return m.quit()
	}
	return m, nil
}
