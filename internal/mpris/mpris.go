//go:build linux

package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/server"
	"github.com/quarckster/go-mpris-server/pkg/types"
)

// Adapter connects a playback session to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
	player *playerAdapter
}

// New creates and starts a new MPRIS adapter.
func New(controls Controls) (*Adapter, error) {
	player := &playerAdapter{controls: controls, clock: newClock()}
	a := &Adapter{
		server: server.NewServer("fmcli", &rootAdapter{}, player),
		player: player,
	}

	// Start the server in background
	go func() {
		_ = a.server.Listen()
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}

// rootAdapter implements OrgMprisMediaPlayer2Adapter.
type rootAdapter struct{}

func (r *rootAdapter) Raise() error {
	return nil // Not supported
}

func (r *rootAdapter) Quit() error {
	return nil // Not supported - the session ends through Stop
}

func (r *rootAdapter) CanQuit() (bool, error) {
	return false, nil
}

func (r *rootAdapter) CanRaise() (bool, error) {
	return false, nil
}

func (r *rootAdapter) HasTrackList() (bool, error) {
	return false, nil
}

func (r *rootAdapter) Identity() (string, error) {
	return "fmcli", nil
}

//nolint:revive // Method name required by interface.
func (r *rootAdapter) SupportedUriSchemes() ([]string, error) {
	return []string{"http", "https"}, nil
}

func (r *rootAdapter) SupportedMimeTypes() ([]string, error) {
	return []string{"audio/mpeg", "audio/aac", "audio/ogg"}, nil
}

// playerAdapter implements OrgMprisMediaPlayer2PlayerAdapter.
type playerAdapter struct {
	controls Controls
	clock    *clock
}

func (p *playerAdapter) Next() error {
	return nil // A live stream has no next track
}

func (p *playerAdapter) Previous() error {
	return nil
}

func (p *playerAdapter) Pause() error {
	return p.controls.Pause()
}

func (p *playerAdapter) PlayPause() error {
	return p.controls.Toggle()
}

func (p *playerAdapter) Stop() error {
	p.controls.Stop()
	return nil
}

func (p *playerAdapter) Play() error {
	return p.controls.Resume()
}

func (p *playerAdapter) Seek(_ types.Microseconds) error {
	return nil // Not supported
}

func (p *playerAdapter) SetPosition(_ string, _ types.Microseconds) error {
	return nil // Not supported
}

//nolint:revive // Method name required by interface.
func (p *playerAdapter) OpenUri(_ string) error {
	return nil // Not supported
}

func (p *playerAdapter) PlaybackStatus() (types.PlaybackStatus, error) {
	return playbackStatus(p.controls.State()), nil
}

func (p *playerAdapter) Rate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) SetRate(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Metadata() (types.Metadata, error) {
	return buildMetadata(p.controls.Snapshot()), nil
}

func (p *playerAdapter) Volume() (float64, error) {
	return 1.0, nil // Volume belongs to the external player
}

func (p *playerAdapter) SetVolume(_ float64) error {
	return nil // Not supported
}

func (p *playerAdapter) Position() (int64, error) {
	return p.clock.elapsed(p.controls.State()).Microseconds(), nil
}

func (p *playerAdapter) MinimumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) MaximumRate() (float64, error) {
	return 1.0, nil
}

func (p *playerAdapter) CanGoNext() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanGoPrevious() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanPlay() (bool, error) {
	return p.controls.State().CanResume(), nil
}

func (p *playerAdapter) CanPause() (bool, error) {
	return p.controls.State().CanPause(), nil
}

func (p *playerAdapter) CanSeek() (bool, error) {
	return false, nil
}

func (p *playerAdapter) CanControl() (bool, error) {
	return true, nil
}
