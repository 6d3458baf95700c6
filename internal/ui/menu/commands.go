package menu

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/state"
)

func (m Model) searchCmd(seq int, query string, offset int) tea.Cmd {
	ctx, cat := m.deps.Context, m.deps.Catalog
	return func() tea.Msg {
		page, err := cat.Search(ctx, query, offset)
		return searchDoneMsg{seq: seq, page: page, err: err}
	}
}

func (m Model) lookupCmd(seq int, fav state.Favorite) tea.Cmd {
	ctx, cat := m.deps.Context, m.deps.Catalog
	return func() tea.Msg {
		st, err := cat.Lookup(ctx, fav.Name, fav.Location)
		return lookupDoneMsg{seq: seq, name: fav.Name, station: st, err: err}
	}
}

func (m Model) loadFavoritesCmd() tea.Cmd {
	st := m.deps.State
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := st.ListFavorites()
		return favoritesLoadedMsg{items: items, err: err}
	}
}

func (m Model) loadHistoryCmd() tea.Cmd {
	st := m.deps.State
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		items, err := st.ListHistory(state.DefaultHistoryLimit)
		return historyLoadedMsg{items: items, err: err}
	}
}

func (m Model) addFavoriteCmd(station catalog.Station) tea.Cmd {
	st := m.deps.State
	if st == nil {
		return nil
	}
	return func() tea.Msg {
		_, err := st.AddFavorite(state.Favorite{
			Name:        station.Name,
			Location:    station.Location,
			Genre:       station.Genre,
			Description: station.Description,
		})
		return favoriteAddedMsg{name: station.Name, err: err}
	}
}

func (m Model) removeFavoriteCmd(fav state.Favorite) tea.Cmd {
	st := m.deps.State
	return func() tea.Msg {
		return favoriteRemovedMsg{name: fav.Name, err: st.RemoveFavorite(fav.ID)}
	}
}

func (m Model) clearHistoryCmd() tea.Cmd {
	st := m.deps.State
	return func() tea.Msg {
		return historyClearedMsg{err: st.ClearHistory()}
	}
}
