//go:build !windows

package player

import (
	"os/exec"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func requireBinary(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available", name)
	}
}

func startSupervisor(t *testing.T, cmd Command, grace time.Duration) *Supervisor {
	t.Helper()
	s := NewSupervisor(cmd, grace, zap.NewNop())
	require.NoError(t, s.Start())
	t.Cleanup(s.Stop)
	return s
}

func TestSupervisor_StartUnavailable(t *testing.T) {
	s := NewSupervisor(Command{Path: "/nonexistent/fmcli-player"}, 0, nil)

	err := s.Start()
	require.ErrorIs(t, err, ErrPlayerUnavailable)
	assert.Equal(t, Stopped, s.State())
	assert.False(t, s.Alive())
	assert.Error(t, s.ExitErr())

	select {
	case <-s.Done():
	default:
		t.Fatal("done should be closed after a failed start")
	}

	// No transition out of Stopped.
	s.MarkPlaying()
	assert.Equal(t, Stopped, s.State())
	s.Stop()
}

func TestSupervisor_StartTwice(t *testing.T) {
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sleep", Args: []string{"30"}}, time.Second)
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
}

func TestSupervisor_StateSequence(t *testing.T) {
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sleep", Args: []string{"30"}}, time.Second)

	var seen []State
	record := func() {
		if st := s.State(); len(seen) == 0 || seen[len(seen)-1] != st {
			seen = append(seen, st)
		}
	}

	record()
	require.True(t, s.Alive())
	s.MarkPlaying()
	record()

	// Pausing twice leaves the process suspended once.
	require.NoError(t, s.Pause())
	record()
	require.NoError(t, s.Pause())
	record()
	assert.True(t, s.Alive(), "a suspended process is still alive")

	require.NoError(t, s.Resume())
	record()
	require.NoError(t, s.Resume())
	record()

	s.Stop()
	record()

	assert.Equal(t, []State{Starting, Playing, Paused, Playing, Stopped}, seen)
	assert.False(t, s.Alive())
}

func TestSupervisor_MarkPlayingOnlyFromStarting(t *testing.T) {
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sleep", Args: []string{"30"}}, time.Second)

	assert.NoError(t, s.Pause(), "pause while starting is a no-op")
	assert.Equal(t, Starting, s.State())

	s.MarkPlaying()
	require.NoError(t, s.Pause())
	s.MarkPlaying()
	assert.Equal(t, Paused, s.State())
}

func TestSupervisor_StopWhilePaused(t *testing.T) {
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sleep", Args: []string{"30"}}, 2*time.Second)
	s.MarkPlaying()
	require.NoError(t, s.Pause())

	start := time.Now()
	s.Stop()

	assert.Equal(t, Stopped, s.State())
	assert.Less(t, time.Since(start), 2*time.Second, "paused process should terminate without the kill fallback")
}

func TestSupervisor_StopKillsAfterGrace(t *testing.T) {
	requireBinary(t, "sh")
	s := startSupervisor(t, Command{
		Path: "sh",
		Args: []string{"-c", `trap '' TERM; echo ready >&2; while true; do sleep 0.05; done`},
	}, 200*time.Millisecond)

	require.Eventually(t, func() bool {
		return slices.Contains(s.Stderr(), "ready")
	}, 2*time.Second, 10*time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("stop did not kill the process")
	}
	assert.Equal(t, Stopped, s.State())
}

func TestSupervisor_StopConcurrent(t *testing.T) {
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sleep", Args: []string{"30"}}, time.Second)
	s.MarkPlaying()

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()

	assert.Equal(t, Stopped, s.State())
	s.Stop()
	assert.Equal(t, Stopped, s.State())
}

func TestSupervisor_ProcessExitDetected(t *testing.T) {
	requireBinary(t, "sh")
	s := startSupervisor(t, Command{Path: "sh", Args: []string{"-c", "echo 'stream ended' >&2; exit 3"}}, time.Second)

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("process did not exit")
	}

	assert.False(t, s.Alive())
	assert.Equal(t, Stopped, s.State())
	assert.Error(t, s.ExitErr())
	assert.Equal(t, []string{"stream ended"}, s.Stderr())

	require.NoError(t, s.Pause())
	assert.Equal(t, Stopped, s.State())
}

func TestSupervisor_ExitDetectedWhileChildHoldsStderr(t *testing.T) {
	requireBinary(t, "sh")
	requireBinary(t, "sleep")
	s := startSupervisor(t, Command{Path: "sh", Args: []string{"-c", "echo 'spawned helper' >&2; sleep 5 & exit 0"}}, time.Second)

	select {
	case <-s.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("exit was not detected while a child kept stderr open")
	}

	assert.False(t, s.Alive())
	assert.Equal(t, Stopped, s.State())
	assert.NoError(t, s.ExitErr())
	assert.Equal(t, []string{"spawned helper"}, s.Stderr())
}

func TestSupervisor_StopBeforeStart(t *testing.T) {
	s := NewSupervisor(Command{Path: "sleep"}, 0, nil)
	s.Stop()

	assert.Equal(t, Stopped, s.State())
	assert.ErrorIs(t, s.Start(), ErrAlreadyStarted)
}
