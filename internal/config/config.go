package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "fmcli"

type Config struct {
	// External player invocation
	Player PlayerConfig `koanf:"player"`

	// Session timings
	Playback PlaybackConfig `koanf:"playback"`

	// Station directory
	Catalog CatalogConfig `koanf:"catalog"`

	// Log file settings
	Log LogConfig `koanf:"log"`

	// Desktop integration (notifications and MPRIS, Linux only)
	Desktop DesktopConfig `koanf:"desktop"`
}

// PlayerConfig selects the external player. Args may contain "{url}", which
// is replaced by the stream URL; without it the URL is appended.
type PlayerConfig struct {
	Command string   `koanf:"command"` // default: ffplay
	Args    []string `koanf:"args"`    // default: ffplay arguments
}

// PlaybackConfig holds session timings. Durations are TOML strings ("5s").
type PlaybackConfig struct {
	Tick           time.Duration `koanf:"tick"`            // redraw period (default: 200ms)
	PollInterval   time.Duration `koanf:"poll_interval"`   // metadata refresh (default: 5s)
	NetworkTimeout time.Duration `koanf:"network_timeout"` // per metadata fetch (default: 10s)
	StopGrace      time.Duration `koanf:"stop_grace"`      // terminate before kill (default: 3s)
	JoinTimeout    time.Duration `koanf:"join_timeout"`    // background task join (default: 2s)
	UserAgent      string        `koanf:"user_agent"`      // default: fmcli/1.0
}

// CatalogConfig holds the station directory settings.
type CatalogConfig struct {
	BaseURL string        `koanf:"base_url"` // default: https://fmstream.org/index.php
	Timeout time.Duration `koanf:"timeout"`  // default: 20s
}

// LogConfig holds the rotating log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`        // debug, info, warn, error (default: info)
	File       string `koanf:"file"`         // default: $XDG_STATE_HOME/fmcli/fmcli.log
	MaxSizeMB  int    `koanf:"max_size_mb"`  // default: 10
	MaxBackups int    `koanf:"max_backups"`  // default: 3
	MaxAgeDays int    `koanf:"max_age_days"` // default: 28
}

// DesktopConfig toggles the D-Bus integrations. Both default to enabled.
type DesktopConfig struct {
	Notifications *bool `koanf:"notifications"`
	MPRIS         *bool `koanf:"mpris"`
}

// Load reads the user config, then ./config.toml, then any extra files; the
// last file wins. Missing files are skipped.
func Load(extra ...string) (*Config, error) {
	return LoadFiles(append(getConfigPaths(), extra...)...)
}

// LoadFiles reads the given TOML files in order, skipping missing ones.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.Player.Command = expandPath(strings.TrimSpace(cfg.Player.Command))
	cfg.Log.File = expandPath(cfg.Log.File)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/fmcli/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the session timings with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.Tick <= 0 {
		cfg.Tick = 200 * time.Millisecond
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 5 * time.Second
	}
	if cfg.NetworkTimeout <= 0 {
		cfg.NetworkTimeout = 10 * time.Second
	}
	if cfg.StopGrace <= 0 {
		cfg.StopGrace = 3 * time.Second
	}
	if cfg.JoinTimeout <= 0 {
		cfg.JoinTimeout = 2 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "fmcli/1.0"
	}

	return cfg
}

// GetCatalogConfig returns the directory settings with defaults applied.
func (c *Config) GetCatalogConfig() CatalogConfig {
	cfg := c.Catalog

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://fmstream.org/index.php"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}

	return cfg
}

// GetLogConfig returns the log settings with defaults applied. An empty
// File is left empty; the logger resolves it under the XDG state directory.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log

	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		cfg.Level = "info"
	}
	if cfg.MaxSizeMB <= 0 {
		cfg.MaxSizeMB = 10
	}
	if cfg.MaxBackups <= 0 {
		cfg.MaxBackups = 3
	}
	if cfg.MaxAgeDays <= 0 {
		cfg.MaxAgeDays = 28
	}

	return cfg
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Desktop.Notifications == nil || *c.Desktop.Notifications
}

// MPRISEnabled reports whether the MPRIS server is on.
func (c *Config) MPRISEnabled() bool {
	return c.Desktop.MPRIS == nil || *c.Desktop.MPRIS
}
