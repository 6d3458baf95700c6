//go:build !linux

package notify

// New returns a notifier that drops everything; only Linux has a
// notification service.
func New() (Notifier, error) {
	return Nop(), nil
}
