package state

import (
	"database/sql"
	"errors"
)

// NavigationState is the menu position restored on the next start.
type NavigationState struct {
	LastQuery  string
	LastScreen string
}

func getNavigation(db *sql.DB) (*NavigationState, error) {
	row := db.QueryRow(`SELECT last_query, last_screen FROM navigation_state WHERE id = 1`)

	var state NavigationState
	err := row.Scan(&state.LastQuery, &state.LastScreen)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved state is valid on first run
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

func saveNavigation(db *sql.DB, state NavigationState) error {
	_, err := db.Exec(`
		INSERT INTO navigation_state (id, last_query, last_screen)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_query = excluded.last_query,
			last_screen = excluded.last_screen
	`, state.LastQuery, state.LastScreen)
	return err
}
