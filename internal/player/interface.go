package player

// Interface defines the supervisor contract for dependency injection and testing.
type Interface interface {
	Start() error
	MarkPlaying()
	Pause() error
	Resume() error
	Toggle() error
	Stop()
	Alive() bool
	State() State
	ExitErr() error
	Stderr() []string
	Done() <-chan struct{}
}

// Verify Supervisor implements Interface at compile time.
var _ Interface = (*Supervisor)(nil)
