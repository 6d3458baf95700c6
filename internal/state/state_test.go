package state

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

// setupManager returns a manager whose clock advances one minute per call.
func setupManager(t *testing.T) *Manager {
	t.Helper()

	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	t.Cleanup(func() { m.Close() })

	clock := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return m
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestGetNavigation_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	nav, err := getNavigation(db)
	if err != nil {
		t.Fatalf("getNavigation failed: %v", err)
	}
	if nav != nil {
		t.Errorf("expected nil navigation on empty db, got %+v", nav)
	}
}

func TestSaveNavigation_Upsert(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveNavigation(db, NavigationState{LastQuery: "jazz", LastScreen: "results"}); err != nil {
		t.Fatalf("saveNavigation failed: %v", err)
	}
	if err := saveNavigation(db, NavigationState{LastQuery: "rock", LastScreen: "home"}); err != nil {
		t.Fatalf("saveNavigation failed: %v", err)
	}

	nav, err := getNavigation(db)
	if err != nil {
		t.Fatalf("getNavigation failed: %v", err)
	}
	if nav == nil {
		t.Fatal("expected navigation state")
	}
	if nav.LastQuery != "rock" || nav.LastScreen != "home" {
		t.Errorf("navigation = %+v, want rock/home", nav)
	}

	var rows int
	if err := db.QueryRow(`SELECT COUNT(*) FROM navigation_state`).Scan(&rows); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows = %d, want 1", rows)
	}
}

func TestManager_SaveNavigationDebounced(t *testing.T) {
	m := setupManager(t)

	m.SaveNavigation(NavigationState{LastQuery: "j"})
	m.SaveNavigation(NavigationState{LastQuery: "ja"})
	m.SaveNavigation(NavigationState{LastQuery: "jazz"})

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		nav, err := m.GetNavigation()
		if err != nil {
			t.Fatalf("GetNavigation failed: %v", err)
		}
		if nav != nil {
			if nav.LastQuery != "jazz" {
				t.Errorf("LastQuery = %q, want %q", nav.LastQuery, "jazz")
			}
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("debounced navigation was never saved")
}

func TestManager_CloseFlushesPendingNavigation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fmcli.db")

	m, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath failed: %v", err)
	}
	m.SaveNavigation(NavigationState{LastQuery: "ambient", LastScreen: "results"})
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	m, err = OpenPath(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer m.Close()

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation failed: %v", err)
	}
	if nav == nil || nav.LastQuery != "ambient" {
		t.Errorf("navigation = %+v, want LastQuery ambient", nav)
	}
}

func TestFavorites_AddListRemove(t *testing.T) {
	m := setupManager(t)

	id1, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Paris FR", Genre: "Eclectic"})
	if err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if _, err := m.AddFavorite(Favorite{Name: "KEXP", Location: "Seattle US", Description: "Where the music matters"}); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}

	favs, err := m.ListFavorites()
	if err != nil {
		t.Fatalf("ListFavorites failed: %v", err)
	}
	if len(favs) != 2 {
		t.Fatalf("len(favorites) = %d, want 2", len(favs))
	}
	if favs[0].Name != "FIP" || favs[1].Name != "KEXP" {
		t.Errorf("order = %s, %s; want FIP, KEXP", favs[0].Name, favs[1].Name)
	}
	if favs[0].Genre != "Eclectic" {
		t.Errorf("Genre = %q, want Eclectic", favs[0].Genre)
	}
	if favs[1].Description != "Where the music matters" {
		t.Errorf("Description = %q", favs[1].Description)
	}
	if favs[0].AddedAt.IsZero() {
		t.Error("AddedAt should be set")
	}

	if err := m.RemoveFavorite(id1); err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	ok, err := m.IsFavorite("FIP", "Paris FR")
	if err != nil {
		t.Fatalf("IsFavorite failed: %v", err)
	}
	if ok {
		t.Error("FIP should no longer be a favorite")
	}
}

func TestFavorites_Duplicate(t *testing.T) {
	m := setupManager(t)

	if _, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Paris FR"}); err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	_, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Paris FR", Genre: "Other"})
	if !errors.Is(err, ErrAlreadyFavorite) {
		t.Fatalf("err = %v, want ErrAlreadyFavorite", err)
	}

	// Same name in another city is a different station.
	if _, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Bordeaux FR"}); err != nil {
		t.Fatalf("AddFavorite in other location failed: %v", err)
	}
}

func TestFavorites_RemoveUnknown(t *testing.T) {
	m := setupManager(t)

	if err := m.RemoveFavorite(42); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("err = %v, want ErrFavoriteNotFound", err)
	}
}

func TestHistory_NewestFirstWithLimit(t *testing.T) {
	m := setupManager(t)

	for _, name := range []string{"First", "Second", "Third"} {
		if _, err := m.AddHistory(HistoryEntry{
			Station:   name,
			StreamURL: "http://example.com/" + name,
			Outcome:   "stopped",
		}); err != nil {
			t.Fatalf("AddHistory failed: %v", err)
		}
	}

	entries, err := m.ListHistory(2)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Station != "Third" || entries[1].Station != "Second" {
		t.Errorf("order = %s, %s; want Third, Second", entries[0].Station, entries[1].Station)
	}
}

func TestHistory_OptionalFields(t *testing.T) {
	m := setupManager(t)

	playedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err := m.AddHistory(HistoryEntry{
		Station:   "Radio Paradise",
		Location:  "Paradise US",
		StreamURL: "http://stream.example/rp.mp3",
		Codec:     "MP3",
		Bitrate:   "320",
		PlayedAt:  playedAt,
		Duration:  90 * time.Second,
		Outcome:   "completed",
		LastTitle: "Artist - Song",
	})
	if err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if _, err := m.AddHistory(HistoryEntry{Station: "Bare", StreamURL: "http://x", Outcome: "launch-failed"}); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}

	entries, err := m.ListHistory(0)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}

	bare, full := entries[0], entries[1]
	if bare.Genre != "" || bare.LastTitle != "" || bare.Codec != "" {
		t.Errorf("bare entry has unexpected fields: %+v", bare)
	}
	if full.Codec != "MP3" || full.Bitrate != "320" || full.LastTitle != "Artist - Song" {
		t.Errorf("full entry = %+v", full)
	}
	if full.Duration != 90*time.Second {
		t.Errorf("Duration = %v, want 1m30s", full.Duration)
	}
	if !full.PlayedAt.Equal(playedAt) {
		t.Errorf("PlayedAt = %v, want %v", full.PlayedAt, playedAt)
	}
}

func TestHistory_Clear(t *testing.T) {
	m := setupManager(t)

	if _, err := m.AddHistory(HistoryEntry{Station: "A", StreamURL: "http://a", Outcome: "stopped"}); err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if err := m.ClearHistory(); err != nil {
		t.Fatalf("ClearHistory failed: %v", err)
	}
	entries, err := m.ListHistory(10)
	if err != nil {
		t.Fatalf("ListHistory failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestMock_MatchesManagerSemantics(t *testing.T) {
	m := NewMock()

	id, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Paris FR"})
	if err != nil {
		t.Fatalf("AddFavorite failed: %v", err)
	}
	if _, err := m.AddFavorite(Favorite{Name: "FIP", Location: "Paris FR"}); !errors.Is(err, ErrAlreadyFavorite) {
		t.Errorf("err = %v, want ErrAlreadyFavorite", err)
	}
	if err := m.RemoveFavorite(id); err != nil {
		t.Fatalf("RemoveFavorite failed: %v", err)
	}
	if err := m.RemoveFavorite(id); !errors.Is(err, ErrFavoriteNotFound) {
		t.Errorf("err = %v, want ErrFavoriteNotFound", err)
	}

	_, _ = m.AddHistory(HistoryEntry{Station: "A"})
	_, _ = m.AddHistory(HistoryEntry{Station: "B"})
	entries, _ := m.ListHistory(1)
	if len(entries) != 1 || entries[0].Station != "B" {
		t.Errorf("ListHistory(1) = %+v, want [B]", entries)
	}
}
