// Package session runs one playback session: it starts the player, keeps
// metadata fresh in the background, listens for keys, and redraws the
// now-playing view on a fixed cadence until playback ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/fmcli/internal/controls"
	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/player"
)

// Defaults for Config.
const (
	DefaultTick        = 200 * time.Millisecond
	DefaultJoinTimeout = 2 * time.Second
)

// Config holds the session timings.
type Config struct {
	Tick           time.Duration
	PollInterval   time.Duration
	NetworkTimeout time.Duration
	StopGrace      time.Duration
	JoinTimeout    time.Duration
	UserAgent      string
}

// DefaultConfig returns the default timings.
func DefaultConfig() Config {
	return Config{
		Tick:           DefaultTick,
		PollInterval:   metadata.DefaultInterval,
		NetworkTimeout: metadata.DefaultNetworkTimeout,
		StopGrace:      player.DefaultStopGrace,
		JoinTimeout:    DefaultJoinTimeout,
		UserAgent:      metadata.DefaultUserAgent,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Tick <= 0 {
		c.Tick = d.Tick
	}
	if c.PollInterval <= 0 {
		c.PollInterval = d.PollInterval
	}
	if c.NetworkTimeout <= 0 {
		c.NetworkTimeout = d.NetworkTimeout
	}
	if c.StopGrace <= 0 {
		c.StopGrace = d.StopGrace
	}
	if c.JoinTimeout <= 0 {
		c.JoinTimeout = d.JoinTimeout
	}
	if c.UserAgent == "" {
		c.UserAgent = d.UserAgent
	}
	return c
}

// Poller refreshes metadata until its context is done.
type Poller interface {
	Run(ctx context.Context)
}

// Listener handles user input until its context is done.
type Listener interface {
	Run(ctx context.Context) error
}

// Session wires the player, the metadata poller and the key listener to a
// display sink. Use New for the standard wiring.
type Session struct {
	Config   Config
	Target   metadata.Target
	Player   player.Interface
	Store    *metadata.Store
	Poller   Poller
	Listener Listener
	Sink     Sink
	Logger   *zap.Logger

	// Observers receive every rendered view after the sink.
	Observers []func(View)

	reason   atomic.Int32
	wakeOnce sync.Once
	wake     chan struct{}
}

// New builds a session for target. keys may be nil when no interactive
// input is available; the session then ends on interrupt or player exit.
func New(cfg Config, target metadata.Target, p player.Interface, keys controls.KeySource, sink Sink, logger *zap.Logger) *Session {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		Config: cfg,
		Target: target,
		Player: p,
		Store:  metadata.NewStore(metadata.Initial(target)),
		Sink:   sink,
		Logger: logger,
	}
	s.Poller = &metadata.Poller{
		Client:    metadata.NewHTTPClient(cfg.NetworkTimeout),
		Target:    target,
		Store:     s.Store,
		Interval:  cfg.PollInterval,
		Timeout:   cfg.NetworkTimeout,
		UserAgent: cfg.UserAgent,
		Logger:    logger,
	}
	if keys != nil {
		s.Listener = &controls.Listener{
			Keys:   keys,
			Player: p,
			OnStop: func() { s.request(ReasonStop) },
			OnBack: func() { s.request(ReasonBack) },
			Logger: logger,
		}
	}
	return s
}

// request records why the user ended playback. The first reason wins.
func (s *Session) request(r Reason) {
	if s.reason.CompareAndSwap(int32(ReasonNone), int32(r)) {
		s.notify()
	}
}

func (s *Session) notify() {
	select {
	case s.wakeup() <- struct{}{}:
	default:
	}
}

// wakeup interrupts the wait between two ticks.
func (s *Session) wakeup() chan struct{} {
	s.wakeOnce.Do(func() { s.wake = make(chan struct{}, 1) })
	return s.wake
}

// Run plays the target until the player exits, the user stops or goes
// back, or ctx is cancelled. It returns once the player process is gone.
//
// A launch failure returns LaunchFailed with an error wrapping
// player.ErrPlayerUnavailable. Every other ending returns a nil error.
func (s *Session) Run(ctx context.Context) (Result, error) {
	cfg := s.Config.withDefaults()
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "session"), zap.String("url", s.Target.URL))
	if s.Store == nil {
		s.Store = metadata.NewStore(metadata.Initial(s.Target))
	}
	wake := s.wakeup()

	res := Result{Target: s.Target, Started: time.Now()}

	// A stop requested before launch (from MPRIS, say) ends the session
	// without starting the player.
	if r := Reason(s.reason.Load()); r != ReasonNone {
		return s.endedBeforeStart(res, r, logger), nil
	}

	if err := s.Player.Start(); err != nil {
		if r := Reason(s.reason.Load()); r != ReasonNone && errors.Is(err, player.ErrAlreadyStarted) {
			return s.endedBeforeStart(res, r, logger), nil
		}
		res.Outcome = LaunchFailed
		res.Reason = ReasonLaunch
		res.Ended = time.Now()
		res.Stderr = s.Player.Stderr()
		if !errors.Is(err, player.ErrPlayerUnavailable) {
			err = fmt.Errorf("%w: %w", player.ErrPlayerUnavailable, err)
		}
		logger.Error("player launch failed", zap.Error(err))
		return res, err
	}
	logger.Info("session started")
	s.render(buildView(s.Player.State(), s.Store.Snapshot(), 0, 0))

	bgCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var g errgroup.Group
	if s.Poller != nil {
		g.Go(func() error {
			s.Poller.Run(bgCtx)
			return nil
		})
	}
	if s.Listener != nil {
		g.Go(func() error {
			return s.Listener.Run(bgCtx)
		})
	}

	ticker := time.NewTicker(cfg.Tick)
	defer ticker.Stop()

	var reason Reason
	for tick := 0; ; tick++ {
		var done bool
		if reason, done = s.stopCondition(ctx); done {
			break
		}
		s.Player.MarkPlaying()
		s.render(buildView(s.Player.State(), s.Store.Snapshot(), tick, time.Since(res.Started)))

		select {
		case <-ctx.Done():
		case <-s.Player.Done():
		case <-wake:
		case <-ticker.C:
		}
	}

	// The final frame shows the state the player is about to reach.
	final := buildView(player.Stopped, s.Store.Snapshot(), 0, time.Since(res.Started))
	final.Final = true
	s.render(final)

	// Ending
	cancel()
	s.join(g.Wait, cfg.JoinTimeout, logger)
	s.Player.Stop()

	res.Reason = reason
	res.Outcome = reason.Outcome()
	res.Ended = time.Now()
	res.Stderr = s.Player.Stderr()
	res.ExitErr = s.Player.ExitErr()
	if title := s.Store.Snapshot().CurrentTitle; title != metadata.Loading {
		res.LastTitle = title
	}

	logger.Info("session ended",
		zap.Stringer("outcome", res.Outcome),
		zap.Stringer("reason", res.Reason),
		zap.Duration("duration", res.Duration()))
	return res, nil
}

func (s *Session) endedBeforeStart(res Result, r Reason, logger *zap.Logger) Result {
	res.Reason = r
	res.Outcome = r.Outcome()
	res.Ended = time.Now()
	logger.Info("session ended before the player started", zap.Stringer("reason", r))
	return res
}

// stopCondition reports whether the loop must end and why. A requested
// stop takes precedence over the process exit it causes.
func (s *Session) stopCondition(ctx context.Context) (Reason, bool) {
	if r := Reason(s.reason.Load()); r != ReasonNone {
		return r, true
	}
	if ctx.Err() != nil {
		return ReasonInterrupt, true
	}
	if !s.Player.Alive() || s.Player.State().IsTerminal() {
		if r := Reason(s.reason.Load()); r != ReasonNone {
			return r, true
		}
		return ReasonExit, true
	}
	return ReasonNone, false
}

// join waits for the background tasks, abandoning them after timeout.
func (s *Session) join(wait func() error, timeout time.Duration, logger *zap.Logger) {
	joined := make(chan error, 1)
	go func() { joined <- wait() }()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-joined:
		if err != nil {
			logger.Warn("background task failed", zap.Error(err))
		}
	case <-timer.C:
		logger.Warn("background tasks did not stop in time", zap.Duration("timeout", timeout))
	}
}

func (s *Session) render(v View) {
	if s.Sink != nil {
		s.Sink.Render(v)
	}
	for _, obs := range s.Observers {
		obs(v)
	}
}
