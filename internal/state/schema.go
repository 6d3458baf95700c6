package state

import (
	"database/sql"

	dbutil "github.com/llehouerou/fmcli/internal/db"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS navigation_state (
				id INTEGER PRIMARY KEY CHECK (id = 1),
				last_query TEXT NOT NULL DEFAULT '',
				last_screen TEXT NOT NULL DEFAULT ''
			);

			CREATE TABLE IF NOT EXISTS favorites (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				name TEXT NOT NULL,
				location TEXT NOT NULL,
				genre TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				added_at INTEGER NOT NULL,
				UNIQUE(name, location)
			);

			CREATE TABLE IF NOT EXISTS history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				station TEXT NOT NULL,
				location TEXT,
				genre TEXT,
				stream_url TEXT NOT NULL,
				codec TEXT,
				bitrate TEXT,
				played_at INTEGER NOT NULL,
				duration_ms INTEGER NOT NULL DEFAULT 0,
				outcome TEXT NOT NULL,
				last_title TEXT
			);

			CREATE INDEX IF NOT EXISTS idx_history_played_at ON history(played_at DESC);
		`)
		if err != nil {
			return err
		}

		_, err = tx.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, currentSchemaVersion)
		return err
	})
}
