package player

import "sync"

// Signal names recorded by Mock.
const (
	SignalSuspend   = "suspend"
	SignalResume    = "resume"
	SignalTerminate = "terminate"
)

// Mock is a test double for Supervisor. It follows the same state machine
// and records every signal it would have sent.
type Mock struct {
	mu       sync.Mutex
	state    State
	started  bool
	startErr error
	pauseErr error
	exitErr  error
	stderr   []string
	signals  []string
	states   []State
	stops    int
	done     chan struct{}
}

// NewMock creates a new mock player for testing.
func NewMock() *Mock {
	return &Mock{
		state: Starting,
		done:  make(chan struct{}),
	}
}

func (m *Mock) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return ErrAlreadyStarted
	}
	m.started = true
	if m.startErr != nil {
		m.setLocked(Stopped)
		close(m.done)
		return m.startErr
	}
	return nil
}

func (m *Mock) MarkPlaying() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Starting && m.started {
		m.setLocked(Playing)
	}
}

func (m *Mock) Pause() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.CanPause() {
		return nil
	}
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.signals = append(m.signals, SignalSuspend)
	m.setLocked(Paused)
	return nil
}

func (m *Mock) Resume() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.state.CanResume() {
		return nil
	}
	if m.pauseErr != nil {
		return m.pauseErr
	}
	m.signals = append(m.signals, SignalResume)
	m.setLocked(Playing)
	return nil
}

func (m *Mock) Toggle() error {
	switch m.State() {
	case Playing:
		return m.Pause()
	case Paused:
		return m.Resume()
	default:
		return nil
	}
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	if m.state == Stopped {
		return
	}
	if m.started {
		m.signals = append(m.signals, SignalTerminate)
	}
	m.setLocked(Stopped)
	m.closeLocked()
}

func (m *Mock) Alive() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started && m.state != Stopped
}

func (m *Mock) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Mock) ExitErr() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exitErr
}

func (m *Mock) Stderr() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.stderr...)
}

func (m *Mock) Done() <-chan struct{} {
	return m.done
}

func (m *Mock) setLocked(s State) {
	m.state = s
	m.states = append(m.states, s)
}

func (m *Mock) closeLocked() {
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}

// Test helpers

func (m *Mock) SetStartError(err error) {
	m.mu.Lock()
	m.startErr = err
	m.mu.Unlock()
}

func (m *Mock) SetPauseError(err error) {
	m.mu.Lock()
	m.pauseErr = err
	m.mu.Unlock()
}

func (m *Mock) SetStderr(lines []string) {
	m.mu.Lock()
	m.stderr = lines
	m.mu.Unlock()
}

// Signals returns the signals sent so far, in order.
func (m *Mock) Signals() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.signals...)
}

// States returns every state entered since creation, in order.
func (m *Mock) States() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]State(nil), m.states...)
}

// StopCalls returns how many times Stop was called.
func (m *Mock) StopCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stops
}

// SimulateExit ends the process as if it had exited on its own.
func (m *Mock) SimulateExit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Stopped {
		return
	}
	m.exitErr = err
	m.setLocked(Stopped)
	m.closeLocked()
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
