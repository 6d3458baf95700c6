package session

import (
	"time"

	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/player"
)

// Frames is the streaming animation, advanced once per tick while playing.
var Frames = []string{"▰▱▱▱▱", "▰▰▱▱▱", "▰▰▰▱▱", "▰▰▰▰▱", "▰▰▰▰▰", "▱▰▰▰▰"}

// View is everything the display needs for one frame.
type View struct {
	State      player.State
	StateLabel string
	StreamName string
	Genre      string
	Bitrate    string
	Title      string
	Frame      string
	// Error is the last metadata failure, empty when the last fetch worked.
	Error   string
	Elapsed time.Duration
	// Final is set on the last view of a session.
	Final bool
}

// Sink receives views from the render loop.
type Sink interface {
	Render(View)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(View)

// Render calls f(v).
func (f SinkFunc) Render(v View) { f(v) }

// StateLabel is the text shown for a playback state.
func StateLabel(s player.State) string {
	switch s {
	case player.Starting:
		return "Connecting..."
	case player.Playing:
		return "Streaming..."
	case player.Paused:
		return "Paused"
	case player.Stopped:
		return "Stopped"
	default:
		return s.String()
	}
}

// buildView merges one snapshot with the playback state.
func buildView(state player.State, snap metadata.Snapshot, tick int, elapsed time.Duration) View {
	frame := Frames[0]
	if state == player.Playing {
		frame = Frames[tick%len(Frames)]
	}
	return View{
		State:      state,
		StateLabel: StateLabel(state),
		StreamName: snap.StreamName,
		Genre:      snap.StreamGenre,
		Bitrate:    snap.StreamBitrate,
		Title:      snap.CurrentTitle,
		Frame:      frame,
		Error:      snap.Error,
		Elapsed:    elapsed,
	}
}
