package menu

import (
	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/state"
)

// searchDoneMsg carries one page of search results.
type searchDoneMsg struct {
	seq  int
	page catalog.Page
	err  error
}

// lookupDoneMsg carries a favorite resolved to a live directory entry.
type lookupDoneMsg struct {
	seq     int
	name    string
	station catalog.Station
	err     error
}

type favoritesLoadedMsg struct {
	items []state.Favorite
	err   error
}

type historyLoadedMsg struct {
	items []state.HistoryEntry
	err   error
}

type favoriteAddedMsg struct {
	name string
	err  error
}

type favoriteRemovedMsg struct {
	name string
	err  error
}

type historyClearedMsg struct {
	err error
}

// clearHistoryRequest is the confirm prompt context for clearing history.
type clearHistoryRequest struct{}
