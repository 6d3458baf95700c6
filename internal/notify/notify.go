// Package notify announces song changes as desktop notifications. The
// freedesktop D-Bus service is used on Linux; elsewhere notifications are
// dropped.
package notify

// Urgency is the freedesktop urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// CategoryMusic is the hint shell extensions use to group media
// notifications.
const CategoryMusic = "x-gnome.music"

// Notification is one popup.
type Notification struct {
	Title      string // song, or station when no title is known
	Body       string // station name
	Icon       string // icon name or image path
	Timeout    int32  // ms, -1 = server default, 0 = never expire
	ReplacesID uint32 // 0 = new notification
	Urgency    Urgency
	Category   string
	// Transient notifications skip the server's history.
	Transient bool
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify shows n and returns its ID. A notifier without a server
	// returns 0 and a nil error.
	Notify(n Notification) (uint32, error)
	// Close dismisses a notification.
	Close(id uint32) error
}

// Nop returns a notifier that drops everything.
func Nop() Notifier { return nopNotifier{} }

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (nopNotifier) Close(uint32) error { return nil }
