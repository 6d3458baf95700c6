// Package metadata keeps the latest stream metadata and polls the stream
// for updates in the background.
package metadata

import "sync"

// Sentinel values shown until the first successful fetch.
const (
	Unknown = "N/A"
	Loading = "Loading..."
)

// Target is the stream being played. Hints seed the first snapshot so the
// display shows the directory's values until the server answers.
type Target struct {
	URL         string
	StationName string
	Genre       string
	Bitrate     string
}

// Snapshot is the metadata of one fetch. It is always replaced whole.
type Snapshot struct {
	StreamName    string
	StreamGenre   string
	StreamBitrate string
	CurrentTitle  string
	// Error is the last fetch failure, empty after a successful fetch.
	Error string
}

// Initial returns the snapshot shown before the first fetch completes.
func Initial(t Target) Snapshot {
	return Snapshot{
		StreamName:    orDefault(t.StationName, Unknown),
		StreamGenre:   orDefault(t.Genre, Unknown),
		StreamBitrate: orDefault(t.Bitrate, Unknown),
		CurrentTitle:  Loading,
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// Store is the shared container written by the poller and read by the
// render loop. Readers always get a complete snapshot from one fetch.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	version uint64
}

// NewStore creates a store holding the initial snapshot.
func NewStore(initial Snapshot) *Store {
	return &Store{current: initial}
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Replace swaps the current snapshot.
func (s *Store) Replace(snap Snapshot) {
	s.mu.Lock()
	s.current = snap
	s.version++
	s.mu.Unlock()
}

// Version returns the number of replacements so far.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
