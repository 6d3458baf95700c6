package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/catalog"
	"github.com/llehouerou/fmcli/internal/config"
	"github.com/llehouerou/fmcli/internal/controls"
	"github.com/llehouerou/fmcli/internal/errmsg"
	"github.com/llehouerou/fmcli/internal/logger"
	"github.com/llehouerou/fmcli/internal/metadata"
	"github.com/llehouerou/fmcli/internal/mpris"
	"github.com/llehouerou/fmcli/internal/notify"
	"github.com/llehouerou/fmcli/internal/player"
	"github.com/llehouerou/fmcli/internal/session"
	"github.com/llehouerou/fmcli/internal/state"
	"github.com/llehouerou/fmcli/internal/ui/menu"
	"github.com/llehouerou/fmcli/internal/ui/nowplaying"
)

// app holds what every command shares.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	state   state.Interface
	catalog *catalog.Client

	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	// Overridden in tests.
	newPlayer func(cmd player.Command, grace time.Duration) player.Interface
	openKeys  func() (controls.KeySource, error)
}

func newApp() (*app, error) {
	var extra []string
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
		}
		extra = append(extra, configFile)
	}
	cfg, err := config.Load(extra...)
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpConfigLoad, err)
	}

	logCfg := cfg.GetLogConfig()
	level := logCfg.Level
	if logLevel != "" {
		level = logLevel
	}
	log, err := logger.New(logger.Config{
		Level:      logger.Level(level),
		OutputPath: logCfg.File,
		MaxSize:    logCfg.MaxSizeMB,
		MaxBackups: logCfg.MaxBackups,
		MaxAge:     logCfg.MaxAgeDays,
	})
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpInitialize, err)
	}

	st, err := state.Open()
	if err != nil {
		_ = log.Sync()
		return nil, errmsg.Wrap(errmsg.OpStateOpen, err)
	}

	catCfg := cfg.GetCatalogConfig()
	return &app{
		cfg:     cfg,
		logger:  log,
		state:   st,
		catalog: catalog.NewClient(catCfg.BaseURL, catCfg.Timeout, log),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}, nil
}

// Close flushes the state and the log.
func (a *app) Close() {
	if err := a.state.Close(); err != nil {
		a.logger.Warn("close state", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// playRequest is one stream to play and what to remember about it.
type playRequest struct {
	Target   metadata.Target
	Location string
	Codec    string
}

func requestFromSelection(sel menu.Selection) playRequest {
	return playRequest{
		Target: metadata.Target{
			URL:         sel.Stream.URL,
			StationName: sel.Station.Name,
			Genre:       sel.Station.Genre,
			Bitrate:     sel.Stream.Bitrate,
		},
		Location: sel.Station.Location,
		Codec:    sel.Stream.Codec,
	}
}

// play runs one session in the foreground terminal and records it in the
// history. A launch failure is returned after the history entry is saved.
func (a *app) play(ctx context.Context, req playRequest) (session.Result, error) {
	pb := a.cfg.GetPlaybackConfig()
	cmd := player.NewCommand(a.cfg.Player.Command, a.cfg.Player.Args, req.Target.URL)
	a.logger.Info("starting playback",
		zap.String("station", req.Target.StationName),
		zap.Stringer("command", cmd))

	p := a.player(cmd, pb.StopGrace)

	keys, err := a.keys()
	switch {
	case err == nil:
		defer keys.Close()
	case errors.Is(err, controls.ErrNotTerminal):
		a.logger.Info("stdin is not a terminal, keyboard controls disabled")
	default:
		return session.Result{}, errmsg.Wrap(errmsg.OpPlaybackStart, err)
	}

	renderer := nowplaying.New(a.stdout, a.panelWidth())
	defer renderer.Close()

	s := session.New(session.Config{
		Tick:           pb.Tick,
		PollInterval:   pb.PollInterval,
		NetworkTimeout: pb.NetworkTimeout,
		StopGrace:      pb.StopGrace,
		JoinTimeout:    pb.JoinTimeout,
		UserAgent:      pb.UserAgent,
	}, req.Target, p, keys, renderer, a.logger)

	if a.cfg.NotificationsEnabled() {
		if n, err := notify.New(); err != nil {
			a.logger.Warn("desktop notifications unavailable", zap.Error(err))
		} else {
			w := notify.NewTitleWatcher(n, req.Target.StationName, a.logger)
			s.Observers = append(s.Observers, w.Observe)
			defer w.Close()
		}
	}
	if a.cfg.MPRISEnabled() {
		if adapter, err := mpris.New(s.Controller()); err != nil {
			a.logger.Warn("mpris unavailable", zap.Error(err))
		} else {
			defer adapter.Close()
		}
	}

	res, runErr := s.Run(ctx)
	a.record(req, res)

	if runErr != nil {
		// Leave raw mode before printing the player's diagnostics.
		if keys != nil {
			_ = keys.Close()
		}
		for _, line := range res.Stderr {
			fmt.Fprintln(a.stderr, line)
		}
		return res, errmsg.Wrap(errmsg.OpPlaybackStart, runErr)
	}
	return res, nil
}

func (a *app) player(cmd player.Command, grace time.Duration) player.Interface {
	if a.newPlayer != nil {
		return a.newPlayer(cmd, grace)
	}
	return player.NewSupervisor(cmd, grace, a.logger)
}

// keys opens the keyboard source. The returned source is nil on error.
func (a *app) keys() (controls.KeySource, error) {
	if a.openKeys != nil {
		return a.openKeys()
	}
	src, err := controls.OpenTerminal(a.stdin)
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (a *app) record(req playRequest, res session.Result) {
	_, err := a.state.AddHistory(state.HistoryEntry{
		Station:   req.Target.StationName,
		Location:  req.Location,
		Genre:     req.Target.Genre,
		StreamURL: req.Target.URL,
		Codec:     req.Codec,
		Bitrate:   req.Target.Bitrate,
		PlayedAt:  res.Started,
		Duration:  res.Duration(),
		Outcome:   res.Outcome.String(),
		LastTitle: res.LastTitle,
	})
	if err != nil {
		a.logger.Warn(errmsg.Format(errmsg.OpHistorySave, err))
	}
}

func (a *app) panelWidth() int {
	if f, ok := a.stdout.(*os.File); ok {
		if w, _, err := term.GetSize(f.Fd()); err == nil && w > 0 {
			return w
		}
	}
	return nowplaying.DefaultWidth
}
