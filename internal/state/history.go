package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/fmcli/internal/db"
)

// DefaultHistoryLimit is the number of entries listed when no limit is given.
const DefaultHistoryLimit = 50

// HistoryEntry records one playback session.
type HistoryEntry struct {
	ID        int64
	Station   string
	Location  string
	Genre     string
	StreamURL string
	Codec     string
	Bitrate   string
	PlayedAt  time.Time
	Duration  time.Duration
	Outcome   string
	LastTitle string
}

// AddHistory appends an entry. A zero PlayedAt is set to now.
func (m *Manager) AddHistory(e HistoryEntry) (int64, error) {
	if e.PlayedAt.IsZero() {
		e.PlayedAt = m.now()
	}
	res, err := m.db.Exec(`
		INSERT INTO history (station, location, genre, stream_url, codec, bitrate,
		                     played_at, duration_ms, outcome, last_title)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.Station, dbutil.NullString(e.Location), dbutil.NullString(e.Genre), e.StreamURL,
		dbutil.NullString(e.Codec), dbutil.NullString(e.Bitrate), e.PlayedAt.Unix(),
		e.Duration.Milliseconds(), e.Outcome, dbutil.NullString(e.LastTitle))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListHistory returns the most recent entries first. limit <= 0 uses
// DefaultHistoryLimit.
func (m *Manager) ListHistory(limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	rows, err := m.db.Query(`
		SELECT id, station, location, genre, stream_url, codec, bitrate,
		       played_at, duration_ms, outcome, last_title
		FROM history
		ORDER BY played_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var location, genre, codec, bitrate, lastTitle sql.NullString
		var playedAt, durationMs int64
		if err := rows.Scan(&e.ID, &e.Station, &location, &genre, &e.StreamURL, &codec, &bitrate,
			&playedAt, &durationMs, &e.Outcome, &lastTitle); err != nil {
			return nil, err
		}
		e.Location = dbutil.NullStringValue(location)
		e.Genre = dbutil.NullStringValue(genre)
		e.Codec = dbutil.NullStringValue(codec)
		e.Bitrate = dbutil.NullStringValue(bitrate)
		e.LastTitle = dbutil.NullStringValue(lastTitle)
		e.PlayedAt = time.Unix(playedAt, 0)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearHistory deletes every entry.
func (m *Manager) ClearHistory() error {
	_, err := m.db.Exec(`DELETE FROM history`)
	return err
}
