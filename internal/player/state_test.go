package player

import "testing"

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{Starting, "Starting"},
		{Playing, "Playing"},
		{Paused, "Paused"},
		{Stopped, "Stopped"},
		{State(99), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.state.String(); got != tt.want {
				t.Errorf("State.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState_Predicates(t *testing.T) {
	tests := []struct {
		state                                   State
		active, canPause, canResume, isTerminal bool
	}{
		{Starting, true, false, false, false},
		{Playing, true, true, false, false},
		{Paused, true, false, true, false},
		{Stopped, false, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.active {
				t.Errorf("IsActive() = %v, want %v", got, tt.active)
			}
			if got := tt.state.CanPause(); got != tt.canPause {
				t.Errorf("CanPause() = %v, want %v", got, tt.canPause)
			}
			if got := tt.state.CanResume(); got != tt.canResume {
				t.Errorf("CanResume() = %v, want %v", got, tt.canResume)
			}
			if got := tt.state.IsTerminal(); got != tt.isTerminal {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.isTerminal)
			}
		})
	}
}
