package controls

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/player"
)

// fakeKeys replays scripted keys, then reports no key until closed.
type fakeKeys struct {
	mu     sync.Mutex
	keys   []string
	err    error
	closes int
}

func (f *fakeKeys) ReadKey(timeout time.Duration) (string, error) {
	f.mu.Lock()
	if len(f.keys) > 0 {
		k := f.keys[0]
		f.keys = f.keys[1:]
		f.mu.Unlock()
		return k, nil
	}
	err := f.err
	f.mu.Unlock()

	if err != nil {
		return "", err
	}
	time.Sleep(timeout)
	return "", ErrNoKey
}

func (f *fakeKeys) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closes++
	return nil
}

func (f *fakeKeys) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closes
}

func playingMock(t *testing.T) *player.Mock {
	t.Helper()
	m := player.NewMock()
	require.NoError(t, m.Start())
	m.MarkPlaying()
	return m
}

func runListener(t *testing.T, l *Listener) error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- l.Run(context.Background()) }()
	select {
	case err := <-errc:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not return")
		return nil
	}
}

func TestListener_PauseResumeStop(t *testing.T) {
	m := playingMock(t)
	keys := &fakeKeys{keys: []string{"a", "a", "p", "s"}}
	stopped := 0

	err := runListener(t, &Listener{
		Keys:        keys,
		Player:      m,
		OnStop:      func() { stopped++ },
		PollTimeout: time.Millisecond,
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)

	assert.Equal(t, []player.State{player.Playing, player.Paused, player.Playing, player.Stopped}, m.States())
	assert.Equal(t, []string{player.SignalSuspend, player.SignalResume, player.SignalTerminate}, m.Signals())
	assert.Equal(t, 1, stopped)
	assert.Equal(t, 1, keys.closeCount())
}

func TestListener_ToggleAndUnknownKeys(t *testing.T) {
	m := playingMock(t)
	keys := &fakeKeys{keys: []string{"x", "space", "z", "space", "ctrl+c"}}

	err := runListener(t, &Listener{Keys: keys, Player: m, PollTimeout: time.Millisecond})
	require.NoError(t, err)

	assert.Equal(t, []string{player.SignalSuspend, player.SignalResume, player.SignalTerminate}, m.Signals())
}

func TestListener_Back(t *testing.T) {
	m := playingMock(t)
	var calls []string
	keys := &fakeKeys{keys: []string{"b", "p"}}

	err := runListener(t, &Listener{
		Keys:        keys,
		Player:      m,
		OnStop:      func() { calls = append(calls, "stop") },
		OnBack:      func() { calls = append(calls, "back") },
		PollTimeout: time.Millisecond,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"back"}, calls)
	assert.Equal(t, player.Stopped, m.State())
	assert.Equal(t, 1, m.StopCalls())
}

func TestListener_StopsWhenContextCancelled(t *testing.T) {
	m := playingMock(t)
	keys := &fakeKeys{}
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() {
		errc <- (&Listener{Keys: keys, Player: m, PollTimeout: 5 * time.Millisecond}).Run(ctx)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-errc:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("listener ignored cancellation")
	}
	assert.Equal(t, 1, keys.closeCount())
	assert.Equal(t, player.Playing, m.State())
}

func TestListener_StopsWhenPlayerExits(t *testing.T) {
	m := playingMock(t)
	keys := &fakeKeys{}

	go func() {
		time.Sleep(20 * time.Millisecond)
		m.SimulateExit(nil)
	}()

	err := runListener(t, &Listener{Keys: keys, Player: m, PollTimeout: 5 * time.Millisecond})
	require.NoError(t, err)
	assert.Equal(t, 1, keys.closeCount())
}

func TestListener_ReadError(t *testing.T) {
	m := playingMock(t)
	boom := errors.New("tty gone")
	keys := &fakeKeys{err: boom}

	err := runListener(t, &Listener{Keys: keys, Player: m, PollTimeout: time.Millisecond})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, keys.closeCount())
}

func TestListener_EndOfInput(t *testing.T) {
	m := playingMock(t)
	keys := &fakeKeys{err: ErrClosed}

	err := runListener(t, &Listener{Keys: keys, Player: m, PollTimeout: time.Millisecond})
	require.NoError(t, err)
}

func TestListener_PauseUnsupportedIsLogged(t *testing.T) {
	m := playingMock(t)
	m.SetPauseError(player.ErrUnsupported)
	keys := &fakeKeys{keys: []string{"a", "s"}}

	err := runListener(t, &Listener{
		Keys:        keys,
		Resolver:    keymap.Playback(),
		Player:      m,
		PollTimeout: time.Millisecond,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{player.SignalTerminate}, m.Signals())
}
