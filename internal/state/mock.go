package state

import (
	"database/sql"
	"slices"
	"sync"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu        sync.Mutex
	navState  *NavigationState
	favorites []Favorite
	history   []HistoryEntry
	nextID    int64
	closed    bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) DB() *sql.DB { return nil }

func (m *Mock) SaveNavigation(state NavigationState) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navState = &state
}

func (m *Mock) GetNavigation() (*NavigationState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navState, nil
}

func (m *Mock) AddFavorite(f Favorite) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.favorites {
		if existing.Name == f.Name && existing.Location == f.Location {
			return 0, ErrAlreadyFavorite
		}
	}
	m.nextID++
	f.ID = m.nextID
	m.favorites = append(m.favorites, f)
	return f.ID, nil
}

func (m *Mock) RemoveFavorite(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.favorites, func(f Favorite) bool { return f.ID == id })
	if i < 0 {
		return ErrFavoriteNotFound
	}
	m.favorites = slices.Delete(m.favorites, i, i+1)
	return nil
}

func (m *Mock) ListFavorites() ([]Favorite, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.favorites), nil
}

func (m *Mock) IsFavorite(name, location string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.ContainsFunc(m.favorites, func(f Favorite) bool {
		return f.Name == name && f.Location == location
	}), nil
}

func (m *Mock) AddHistory(e HistoryEntry) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	e.ID = m.nextID
	m.history = append(m.history, e)
	return e.ID, nil
}

func (m *Mock) ListHistory(limit int) ([]HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := slices.Clone(m.history)
	slices.Reverse(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Mock) ClearHistory() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = nil
	return nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
