//go:build !linux

package mpris

// Adapter does nothing: MPRIS needs a D-Bus session bus.
type Adapter struct{}

// New returns an adapter that ignores controls.
func New(Controls) (*Adapter, error) { return &Adapter{}, nil }

// Close does nothing.
func (*Adapter) Close() error { return nil }
