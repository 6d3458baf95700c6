package player

// State represents the lifecycle of the player process.
//
// The state machine has four states with the following valid transitions:
//
//	┌──────────┐  first tick   ┌──────────┐
//	│ Starting │ ─────────────▶│  Playing │
//	└──────────┘               └──────────┘
//	     │                       │ ▲     │
//	     │                 pause │ │     │ stop / exit
//	     │                       ▼ │     │
//	     │                     ┌──────────┐
//	     │ stop / exit         │  Paused  │
//	     │                     └──────────┘
//	     │                          │ stop / exit
//	     ▼                          ▼
//	┌───────────────────────────────────────┐
//	│                Stopped                │
//	└───────────────────────────────────────┘
//
// Valid transitions:
//   - Starting → Playing (via MarkPlaying)
//   - Playing  → Paused  (via Pause)
//   - Paused   → Playing (via Resume)
//   - any      → Stopped (via Stop, or when the process exits)
//
// Stopped is terminal. Every other request is a no-op:
//   - Starting → Paused  (ignored)
//   - Paused   → Paused  (ignored)
//   - Playing  → Playing (ignored)
type State int

const (
	Starting State = iota
	Playing
	Paused
	Stopped
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Starting:
		return "Starting"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Stopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// IsActive returns true if a process is running (Starting, Playing or Paused).
func (s State) IsActive() bool {
	return s == Starting || s == Playing || s == Paused
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if the state allows resuming.
func (s State) CanResume() bool {
	return s == Paused
}

// IsTerminal returns true once the process is gone.
func (s State) IsTerminal() bool {
	return s == Stopped
}
