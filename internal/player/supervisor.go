package player

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/stderr"
)

// DefaultStopGrace is how long Stop waits after the termination signal
// before killing the process.
const DefaultStopGrace = 3 * time.Second

// stderrDrain bounds how long Wait keeps reading stderr after the player
// exits, in case a child it spawned still holds the pipe open.
const stderrDrain = 500 * time.Millisecond

var (
	// ErrPlayerUnavailable wraps any failure to launch the player binary.
	ErrPlayerUnavailable = errors.New("player unavailable")

	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New("player already started")

	// ErrUnsupported is returned by Pause and Resume on platforms where a
	// process cannot be suspended.
	ErrUnsupported = errors.New("pause is not supported on this platform")
)

// Supervisor owns one player process for the duration of a session.
// All methods are safe for concurrent use.
type Supervisor struct {
	command   Command
	stopGrace time.Duration
	logger    *zap.Logger
	capture   *stderr.Capture

	mu       sync.Mutex
	state    State
	started  bool
	stopping bool
	proc     *os.Process
	exitErr  error
	done     chan struct{}
}

// NewSupervisor creates a supervisor for cmd. Nothing runs until Start.
func NewSupervisor(cmd Command, stopGrace time.Duration, logger *zap.Logger) *Supervisor {
	if stopGrace <= 0 {
		stopGrace = DefaultStopGrace
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "player"))
	return &Supervisor{
		command:   cmd,
		stopGrace: stopGrace,
		logger:    logger,
		capture: stderr.New(stderr.DefaultLines, func(line string) {
			logger.Debug("player output", zap.String("line", line))
		}),
		state: Starting,
		done:  make(chan struct{}),
	}
}

// Start launches the player. Its standard output goes to the null device
// and its standard error to the capture.
func (s *Supervisor) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	s.started = true

	cmd := exec.Command(s.command.Path, s.command.Args...)
	configure(cmd)
	pr, pw := io.Pipe()
	cmd.Stderr = pw
	cmd.WaitDelay = stderrDrain
	if err := cmd.Start(); err != nil {
		_ = pw.Close()
		return s.failLocked(err)
	}

	s.proc = cmd.Process
	s.state = Starting
	s.capture.Start(pr)
	s.logger.Info("player started",
		zap.String("command", s.command.String()),
		zap.Int("pid", cmd.Process.Pid))

	go s.wait(cmd, pw)
	return nil
}

func (s *Supervisor) failLocked(err error) error {
	s.state = Stopped
	s.exitErr = err
	close(s.done)
	return fmt.Errorf("%w: %s: %w", ErrPlayerUnavailable, s.command.Path, err)
}

// wait reaps the process, then lets the capture finish the lines already
// copied. Wait gives up on stderr stderrDrain after the exit.
func (s *Supervisor) wait(cmd *exec.Cmd, pw *io.PipeWriter) {
	err := cmd.Wait()
	if errors.Is(err, exec.ErrWaitDelay) {
		s.logger.Debug("player stderr still open after exit")
		err = nil
	}
	_ = pw.Close()
	<-s.capture.Done()

	s.mu.Lock()
	s.exitErr = err
	s.state = Stopped
	s.mu.Unlock()

	if err != nil {
		s.logger.Info("player exited", zap.Error(err), zap.String("stderr", s.capture.Last()))
	} else {
		s.logger.Info("player exited")
	}
	close(s.done)
}

// MarkPlaying moves Starting to Playing. It has no effect in any other state.
func (s *Supervisor) MarkPlaying() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Starting && s.proc != nil && !s.stopping {
		s.state = Playing
	}
}

// Pause suspends the process. It is a no-op unless the state is Playing.
func (s *Supervisor) Pause() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanPause() || s.stopping {
		return nil
	}
	if err := suspend(s.proc); err != nil {
		if errors.Is(err, ErrUnsupported) {
			return err
		}
		// The process is gone, the waiter will report it.
		s.logger.Debug("suspend failed", zap.Error(err))
		return nil
	}
	s.state = Paused
	return nil
}

// Resume continues a suspended process. It is a no-op unless the state is
// Paused.
func (s *Supervisor) Resume() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.CanResume() || s.stopping {
		return nil
	}
	if err := resume(s.proc); err != nil {
		if errors.Is(err, ErrUnsupported) {
			return err
		}
		s.logger.Debug("resume failed", zap.Error(err))
		return nil
	}
	s.state = Playing
	return nil
}

// Toggle pauses a playing process and resumes a paused one.
func (s *Supervisor) Toggle() error {
	switch s.State() {
	case Playing:
		return s.Pause()
	case Paused:
		return s.Resume()
	default:
		return nil
	}
}

// Stop terminates the process gracefully, kills it after the grace period
// and returns once it has been reaped. It is idempotent.
func (s *Supervisor) Stop() {
	s.mu.Lock()
	if !s.started {
		s.started = true
		s.state = Stopped
		close(s.done)
		s.mu.Unlock()
		return
	}
	proc := s.proc
	first := !s.stopping
	wasPaused := s.state == Paused
	s.stopping = true
	s.mu.Unlock()

	if proc == nil {
		return
	}

	if first {
		select {
		case <-s.done:
		default:
			if err := terminate(proc); err != nil {
				s.logger.Debug("terminate failed", zap.Error(err))
			}
			// A suspended process only handles the signal once continued.
			if wasPaused {
				_ = resume(proc)
			}
		}
	}

	timer := time.NewTimer(s.stopGrace)
	defer timer.Stop()

	select {
	case <-s.done:
	case <-timer.C:
		s.logger.Warn("player ignored termination, killing", zap.Duration("grace", s.stopGrace))
		if err := kill(proc); err != nil {
			s.logger.Debug("kill failed", zap.Error(err))
		}
		<-s.done
	}
}

// Alive reports whether the process is still running. It never blocks.
func (s *Supervisor) Alive() bool {
	select {
	case <-s.done:
		return false
	default:
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && s.proc != nil
}

// State returns the current state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ExitErr returns the launch error or the process exit error once Done is
// closed.
func (s *Supervisor) ExitErr() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exitErr
}

// Stderr returns the captured standard error lines.
func (s *Supervisor) Stderr() []string {
	return s.capture.Lines()
}

// Done is closed once the process has exited and been reaped.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}
