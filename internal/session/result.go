package session

import (
	"time"

	"github.com/llehouerou/fmcli/internal/metadata"
)

// Outcome is how a session ended, as reported to the caller.
type Outcome int

const (
	// Completed means the player exited on its own.
	Completed Outcome = iota
	// Stopped means the user or an interrupt ended playback.
	Stopped
	// LaunchFailed means the player could not be started.
	LaunchFailed
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Stopped:
		return "stopped"
	case LaunchFailed:
		return "launch_failed"
	default:
		return "unknown"
	}
}

// Reason is the event that ended the render loop.
type Reason int32

const (
	ReasonNone Reason = iota
	ReasonStop
	ReasonBack
	ReasonInterrupt
	ReasonExit
	ReasonLaunch
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonStop:
		return "stop"
	case ReasonBack:
		return "back"
	case ReasonInterrupt:
		return "interrupt"
	case ReasonExit:
		return "exit"
	case ReasonLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// Outcome maps the reason to the outcome reported to the caller.
func (r Reason) Outcome() Outcome {
	switch r {
	case ReasonExit:
		return Completed
	case ReasonLaunch:
		return LaunchFailed
	default:
		return Stopped
	}
}

// Result summarizes a finished session.
type Result struct {
	Target  metadata.Target
	Outcome Outcome
	Reason  Reason
	Started time.Time
	Ended   time.Time
	// LastTitle is the last StreamTitle seen, empty if none arrived.
	LastTitle string
	// Stderr holds the player's last diagnostic lines.
	Stderr  []string
	ExitErr error
}

// Duration is the time between start and end.
func (r Result) Duration() time.Duration {
	return r.Ended.Sub(r.Started)
}
