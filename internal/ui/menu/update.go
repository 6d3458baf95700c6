package menu

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/errmsg"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/confirm"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case spinner.TickMsg:
		if m.loading == "" {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case lookupDoneMsg:
		return m.handleLookupDone(msg)

	case favoritesLoadedMsg:
		if msg.err != nil {
			m.setError(errmsg.Format(errmsg.OpFavoriteLoad, msg.err))
			return m, nil
		}
		m.favorites.SetItems(msg.items)
		return m, nil

	case historyLoadedMsg:
		if msg.err != nil {
			m.setError(errmsg.Format(errmsg.OpHistoryLoad, msg.err))
			return m, nil
		}
		m.history.SetItems(msg.items)
		return m, nil

	case favoriteAddedMsg:
		return m.handleFavoriteAdded(msg)

	case favoriteRemovedMsg:
		if msg.err != nil {
			m.setError(errmsg.FormatWith(errmsg.OpFavoriteRemove, msg.name, msg.err))
			return m, nil
		}
		m.setStatus("Removed " + msg.name + " from favorites")
		return m, m.loadFavoritesCmd()

	case historyClearedMsg:
		if msg.err != nil {
			m.setError(errmsg.Format(errmsg.OpHistoryClear, msg.err))
			return m, nil
		}
		m.setStatus("History cleared")
		return m, m.loadHistoryCmd()

	case confirm.ResultMsg:
		return m.handleConfirmResult(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blink and other input internals.
	if m.screen == ScreenSearch {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.loading = ""

	if msg.err != nil {
		m.deps.Logger.Warn("search failed", zap.Error(msg.err))
		m.setError(errmsg.Format(errmsg.OpSearch, msg.err))
		return m, nil
	}

	m.page = msg.page
	m.results.SetRows(resultRows(msg.page.Stations))
	m.results.SetCursor(0)
	m.screen = ScreenResults
	m.input.Blur()
	m.saveNavigation()

	if len(msg.page.Stations) == 0 {
		m.setStatus(fmt.Sprintf("No stations found for %q", msg.page.Query))
	} else {
		m.clearStatus()
	}
	return m, nil
}

func (m Model) handleLookupDone(msg lookupDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq {
		return m, nil
	}
	m.loading = ""

	if msg.err != nil {
		m.setError(errmsg.FormatWith(errmsg.OpLookup, msg.name, msg.err))
		return m, nil
	}
	return m.openStreams(msg.station, ScreenFavorites)
}

func (m Model) handleFavoriteAdded(msg favoriteAddedMsg) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(msg.err, state.ErrAlreadyFavorite):
		m.setStatus(msg.name + " is already in favorites")
	case msg.err != nil:
		m.setError(errmsg.FormatWith(errmsg.OpFavoriteAdd, msg.name, msg.err))
	default:
		m.setStatus("Added " + msg.name + " to favorites")
	}
	return m, nil
}

func (m Model) handleConfirmResult(msg confirm.ResultMsg) (tea.Model, tea.Cmd) {
	if !msg.Confirmed {
		return m, nil
	}
	switch ctx := msg.Context.(type) {
	case state.Favorite:
		return m, m.removeFavoriteCmd(ctx)
	case clearHistoryRequest:
		return m, m.clearHistoryCmd()
	}
	return m, nil
}

// startLoading marks a request in flight and returns its sequence number.
func (m *Model) startLoading(label string) int {
	m.seq++
	m.loading = label
	m.clearStatus()
	return m.seq
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

func (m Model) saveNavigation() {
	if m.deps.State == nil {
		return
	}
	m.deps.State.SaveNavigation(state.NavigationState{
		LastQuery:  m.page.Query,
		LastScreen: m.screen.String(),
	})
}
