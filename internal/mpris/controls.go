// Package mpris exposes the running session on the MPRIS D-Bus interface so
// desktop media keys and widgets can pause, resume and stop it.
package mpris

import (
	"fmt"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/quarckster/go-mpris-server/pkg/types"

	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/player"
)

// Controls is the playback surface the adapter drives. session.Controller
// implements it.
type Controls interface {
	Pause() error
	Resume() error
	Toggle() error
	Stop()
	State() player.State
	Snapshot() metadata.Snapshot
}

func playbackStatus(s player.State) types.PlaybackStatus {
	switch s {
	case player.Playing, player.Starting:
		return types.PlaybackStatusPlaying
	case player.Paused:
		return types.PlaybackStatusPaused
	default:
		return types.PlaybackStatusStopped
	}
}

// buildMetadata maps the stream metadata to MPRIS fields. ICY titles are
// usually "Artist - Song"; the station name stands in for the album.
func buildMetadata(snap metadata.Snapshot) types.Metadata {
	meta := types.Metadata{
		TrackId: dbus.ObjectPath(formatTrackID(snap.StreamName, snap.CurrentTitle)),
	}
	if snap.StreamName != metadata.Unknown {
		meta.Album = snap.StreamName
	}
	if snap.StreamGenre != metadata.Unknown && snap.StreamGenre != "" {
		meta.Genre = []string{snap.StreamGenre}
	}

	title := snap.CurrentTitle
	if title == metadata.Loading || title == metadata.Unknown {
		title = ""
	}
	artist, song := splitTitle(title)
	meta.Title = song
	if artist != "" {
		meta.Artist = []string{artist}
	}
	if meta.Title == "" {
		meta.Title = meta.Album
	}
	return meta
}

func splitTitle(title string) (artist, song string) {
	if a, s, ok := strings.Cut(title, " - "); ok && strings.TrimSpace(a) != "" && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(a), strings.TrimSpace(s)
	}
	return "", strings.TrimSpace(title)
}

func formatTrackID(station, title string) string {
	h := fnv.New64a()
	h.Write([]byte(station))
	h.Write([]byte{0})
	h.Write([]byte(title))
	return fmt.Sprintf("/org/mpris/MediaPlayer2/Track/%x", h.Sum64())
}

// clock measures listening time, not counting pauses.
type clock struct {
	mu      sync.Mutex
	now     func() time.Time
	total   time.Duration
	since   time.Time
	running bool
}

func newClock() *clock {
	return &clock{now: time.Now}
}

func (c *clock) elapsed(s player.State) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	playing := s == player.Playing
	if c.running {
		c.total += now.Sub(c.since)
	}
	c.running = playing
	c.since = now
	return c.total
}
