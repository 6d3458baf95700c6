package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	tests := []struct {
		name string
		got  Urgency
		want byte
	}{
		{"low", UrgencyLow, 0},
		{"normal", UrgencyNormal, 1},
		{"critical", UrgencyCritical, 2},
	}
	for _, tt := range tests {
		if byte(tt.got) != tt.want {
			t.Errorf("%s urgency = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
}

func TestNop(t *testing.T) {
	n := Nop()
	id, err := n.Notify(Notification{Title: "Artist - Song", Body: "FIP"})
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if id != 0 {
		t.Errorf("Notify() id = %d, want 0", id)
	}
	if err := n.Close(42); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}
