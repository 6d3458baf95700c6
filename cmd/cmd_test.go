package cmd

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/config"
	"github.com/llehouerou/fmcli/internal/controls"
	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/player"
	"github.com/llehouerou/fmcli/internal/session"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/menu"
	"github.com/llehouerou/fmcli/internal/ui/nowplaying"
	"github.com/llehouerou/fmcli/internal/ui/testutil"
)

func TestRequestFromSelection(t *testing.T) {
	req := requestFromSelection(menu.Selection{
		Station: catalog.Station{Name: "FIP", Location: "Paris FR", Genre: "Eclectic"},
		Stream:  catalog.Stream{URL: "http://fip/live.aac", Codec: "AAC", Bitrate: "192"},
	})

	assert.Equal(t, metadata.Target{
		URL:         "http://fip/live.aac",
		StationName: "FIP",
		Genre:       "Eclectic",
		Bitrate:     "192",
	}, req.Target)
	assert.Equal(t, "Paris FR", req.Location)
	assert.Equal(t, "AAC", req.Codec)
}

func TestRecord_SavesHistoryEntry(t *testing.T) {
	st := state.NewMock()
	a := &app{cfg: &config.Config{}, logger: zap.NewNop(), state: st}

	started := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	a.record(playRequest{
		Target:   metadata.Target{URL: "http://kexp/live.mp3", StationName: "KEXP", Bitrate: "128"},
		Location: "Seattle US",
		Codec:    "MP3",
	}, session.Result{
		Outcome:   session.Stopped,
		Started:   started,
		Ended:     started.Add(95 * time.Second),
		LastTitle: "Artist - Song",
	})

	entries, err := st.ListHistory(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "KEXP", e.Station)
	assert.Equal(t, "Seattle US", e.Location)
	assert.Equal(t, "http://kexp/live.mp3", e.StreamURL)
	assert.Equal(t, "MP3", e.Codec)
	assert.Equal(t, "128", e.Bitrate)
	assert.Equal(t, started, e.PlayedAt)
	assert.Equal(t, 95*time.Second, e.Duration)
	assert.Equal(t, "stopped", e.Outcome)
	assert.Equal(t, "Artist - Song", e.LastTitle)
}

func TestPanelWidth_NonTerminalFallsBack(t *testing.T) {
	a := &app{stdout: &bytes.Buffer{}}
	assert.Equal(t, nowplaying.DefaultWidth, a.panelWidth())
}

func TestFavoritesTable(t *testing.T) {
	out := testutil.StripANSI(favoritesTable([]state.Favorite{
		{ID: 3, Name: "FIP", Location: "Paris FR", Genre: "Eclectic", AddedAt: time.Now().Add(-2 * time.Hour)},
	}))

	assert.Contains(t, out, "Station")
	line := testutil.FindLine(out, "FIP")
	assert.Contains(t, line, "3")
	assert.Contains(t, line, "Paris FR")
	assert.Contains(t, line, "2 hours ago")
}

func TestHistoryTable(t *testing.T) {
	out := testutil.StripANSI(historyTable([]state.HistoryEntry{
		{Station: "KEXP", PlayedAt: time.Now(), Duration: 61 * time.Second, Outcome: "completed"},
		{Station: "Bad\x1bStation", PlayedAt: time.Now(), Outcome: "launch_failed", LastTitle: "Song"},
	}))

	line := testutil.FindLine(out, "KEXP")
	assert.Contains(t, line, "1:01")
	assert.Contains(t, line, "completed")
	assert.Contains(t, line, "-")
	assert.Contains(t, out, "BadStation")
}

func TestCommands_Registered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"play", "favorites", "history"} {
		assert.True(t, names[want], "missing command %q", want)
	}

	limit := historyCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "50", limit.DefValue)

	assert.Error(t, playCmd.Args(playCmd, nil))
	assert.NoError(t, playCmd.Args(playCmd, []string{"http://x"}))
}

// rawKeys stands in for a raw-mode terminal and records when it is closed.
type rawKeys struct {
	closed bool
}

func (k *rawKeys) ReadKey(time.Duration) (string, error) { return "", controls.ErrNoKey }

func (k *rawKeys) Close() error {
	k.closed = true
	return nil
}

// cookedWriter fails the test when written to while keys is still raw.
type cookedWriter struct {
	t    *testing.T
	keys *rawKeys
	buf  bytes.Buffer
}

func (w *cookedWriter) Write(p []byte) (int, error) {
	assert.True(w.t, w.keys.closed, "diagnostics written while the terminal is in raw mode")
	return w.buf.Write(p)
}

func TestPlay_LaunchFailureRestoresTerminalFirst(t *testing.T) {
	off := false
	keys := &rawKeys{}
	stderr := &cookedWriter{t: t, keys: keys}
	m := player.NewMock()
	m.SetStartError(errors.New("exec: \"ffplay\": executable file not found in $PATH"))
	m.SetStderr([]string{"ffplay: not found", "check the player command"})
	st := state.NewMock()

	a := &app{
		cfg:       &config.Config{Desktop: config.DesktopConfig{Notifications: &off, MPRIS: &off}},
		logger:    zap.NewNop(),
		state:     st,
		stdout:    &bytes.Buffer{},
		stderr:    stderr,
		newPlayer: func(player.Command, time.Duration) player.Interface { return m },
		openKeys:  func() (controls.KeySource, error) { return keys, nil },
	}

	res, err := a.play(context.Background(), playRequest{
		Target: metadata.Target{URL: "http://radio/live.mp3", StationName: "Radio"},
	})

	require.ErrorIs(t, err, player.ErrPlayerUnavailable)
	assert.Equal(t, session.LaunchFailed, res.Outcome)
	assert.True(t, keys.closed)
	assert.Equal(t, "ffplay: not found\ncheck the player command\n", stderr.buf.String())

	entries, err := st.ListHistory(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, session.LaunchFailed.String(), entries[0].Outcome)
}
