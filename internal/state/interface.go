package state

import "database/sql"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	DB() *sql.DB
	SaveNavigation(state NavigationState)
	GetNavigation() (*NavigationState, error)
	AddFavorite(f Favorite) (int64, error)
	RemoveFavorite(id int64) error
	ListFavorites() ([]Favorite, error)
	IsFavorite(name, location string) (bool, error)
	AddHistory(e HistoryEntry) (int64, error)
	ListHistory(limit int) ([]HistoryEntry, error)
	ClearHistory() error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
