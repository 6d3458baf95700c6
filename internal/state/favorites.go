package state

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ErrAlreadyFavorite is returned when a station with the same name and
// location is already saved.
var ErrAlreadyFavorite = errors.New("station already in favorites")

// ErrFavoriteNotFound is returned when removing an unknown favorite.
var ErrFavoriteNotFound = errors.New("favorite not found")

// Favorite is a saved station. Streams are not stored, they are looked up
// again from the directory when the favorite is played.
type Favorite struct {
	ID          int64
	Name        string
	Location    string
	Genre       string
	Description string
	AddedAt     time.Time
}

// AddFavorite saves a station. Stations are unique on name and location.
func (m *Manager) AddFavorite(f Favorite) (int64, error) {
	res, err := m.db.Exec(`
		INSERT INTO favorites (name, location, genre, description, added_at)
		VALUES (?, ?, ?, ?, ?)
	`, f.Name, f.Location, f.Genre, f.Description, m.now().Unix())
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %s (%s)", ErrAlreadyFavorite, f.Name, f.Location)
		}
		return 0, err
	}
	return res.LastInsertId()
}

// RemoveFavorite deletes a favorite by ID.
func (m *Manager) RemoveFavorite(id int64) error {
	res, err := m.db.Exec(`DELETE FROM favorites WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

// ListFavorites returns favorites in the order they were added.
func (m *Manager) ListFavorites() ([]Favorite, error) {
	rows, err := m.db.Query(`
		SELECT id, name, location, genre, description, added_at
		FROM favorites
		ORDER BY added_at, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []Favorite
	for rows.Next() {
		var f Favorite
		var addedAt int64
		if err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.Genre, &f.Description, &addedAt); err != nil {
			return nil, err
		}
		f.AddedAt = time.Unix(addedAt, 0)
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// IsFavorite reports whether a station is saved.
func (m *Manager) IsFavorite(name, location string) (bool, error) {
	var id int64
	err := m.db.QueryRow(`SELECT id FROM favorites WHERE name = ? AND location = ?`, name, location).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return false
	}
	return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
}
