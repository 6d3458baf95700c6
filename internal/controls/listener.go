package controls

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/player"
)

// DefaultPollTimeout bounds each key wait so cancellation is noticed quickly.
const DefaultPollTimeout = 100 * time.Millisecond

// Listener turns keypresses into player commands until playback ends.
type Listener struct {
	Keys     KeySource
	Resolver *keymap.Resolver
	Player   player.Interface

	// OnStop and OnBack run before the player is stopped, so the caller
	// knows why playback ended by the time the state reads Stopped.
	OnStop func()
	OnBack func()

	PollTimeout time.Duration
	Logger      *zap.Logger
}

// Run reads keys until ctx is done, the player stops, or a stop or back
// key is pressed. The key source is closed on every return path.
func (l *Listener) Run(ctx context.Context) error {
	defer func() {
		if err := l.Keys.Close(); err != nil {
			l.logger().Warn("close key source", zap.Error(err))
		}
	}()

	timeout := l.PollTimeout
	if timeout <= 0 {
		timeout = DefaultPollTimeout
	}
	resolver := l.Resolver
	if resolver == nil {
		resolver = keymap.Playback()
	}

	for {
		if ctx.Err() != nil || l.Player.State().IsTerminal() {
			return nil
		}

		key, err := l.Keys.ReadKey(timeout)
		switch {
		case errors.Is(err, ErrNoKey):
			continue
		case errors.Is(err, ErrClosed), errors.Is(err, io.EOF):
			l.logger().Debug("key input ended", zap.Error(err))
			return nil
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read key: %w", err)
		}

		if done := l.handle(resolver.Resolve(key), key); done {
			return nil
		}
	}
}

// handle applies one action and reports whether listening should end.
func (l *Listener) handle(action keymap.Action, key string) bool {
	logger := l.logger()

	var err error
	switch action {
	case keymap.ActionPause:
		err = l.Player.Pause()
	case keymap.ActionResume:
		err = l.Player.Resume()
	case keymap.ActionToggle:
		err = l.Player.Toggle()
	case keymap.ActionStop:
		logger.Info("stop requested", zap.String("key", key))
		if l.OnStop != nil {
			l.OnStop()
		}
		l.Player.Stop()
		return true
	case keymap.ActionBack:
		logger.Info("back requested", zap.String("key", key))
		if l.OnBack != nil {
			l.OnBack()
		}
		l.Player.Stop()
		return true
	default:
		logger.Debug("unbound key", zap.String("key", key))
		return false
	}

	if err != nil {
		logger.Warn("player control failed", zap.String("action", string(action)), zap.Error(err))
	}
	return false
}

func (l *Listener) logger() *zap.Logger {
	if l.Logger == nil {
		return zap.NewNop()
	}
	return l.Logger.With(zap.String("component", "controls"))
}
