// Package state persists favorites, playback history and the last menu
// position in a SQLite database under the XDG data directory.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "fmcli"
	dbFileName   = "fmcli.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	now       func() time.Time
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *NavigationState
}

// Open opens the database at the default XDG location.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path, creating it if needed. ":memory:"
// opens a private in-memory database.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, now: time.Now}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = saveNavigation(m.db, *pending)
	}

	return m.db.Close()
}

func (m *Manager) DB() *sql.DB {
	return m.db
}

func (m *Manager) GetNavigation() (*NavigationState, error) {
	return getNavigation(m.db)
}

// SaveNavigation stores the menu position after a short quiet period, so
// typing in the search box does not write on every key.
func (m *Manager) SaveNavigation(state NavigationState) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending = &state

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = saveNavigation(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
