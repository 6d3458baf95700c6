package session

import (
	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/player"
)

// Controller exposes playback controls to surfaces other than the
// keyboard, such as the desktop media keys.
type Controller struct {
	s *Session
}

// Controller returns the controls of s.
func (s *Session) Controller() *Controller {
	return &Controller{s: s}
}

func (c *Controller) Pause() error  { return c.s.Player.Pause() }
func (c *Controller) Resume() error { return c.s.Player.Resume() }
func (c *Controller) Toggle() error { return c.s.Player.Toggle() }

// Stop ends the session as if the stop key was pressed.
func (c *Controller) Stop() {
	c.s.request(ReasonStop)
	c.s.Player.Stop()
}

func (c *Controller) State() player.State { return c.s.Player.State() }

// Snapshot returns the current metadata.
func (c *Controller) Snapshot() metadata.Snapshot {
	if c.s.Store == nil {
		return metadata.Initial(c.s.Target)
	}
	return c.s.Store.Snapshot()
}
