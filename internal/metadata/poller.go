package metadata

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/fmcli/internal/icy"
)

// Defaults for the poll loop.
const (
	DefaultInterval       = 5 * time.Second
	DefaultNetworkTimeout = 10 * time.Second
	DefaultUserAgent      = "fmcli/1.0"
)

// NewHTTPClient returns a client with explicit connect and header timeouts.
// The overall bound on a fetch comes from the context passed to Fetch.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultNetworkTimeout
	}
	return &http.Client{
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: timeout,
			}).DialContext,
			TLSHandshakeTimeout:   timeout,
			ResponseHeaderTimeout: timeout,
			DisableCompression:    true,
			// Every cycle opens a fresh connection to get a metadata frame
			// from the start of the body.
			DisableKeepAlives: true,
		},
	}
}

// Fetch opens one connection to the stream and builds a new snapshot from
// its headers and, when the server interleaves metadata, the first block.
// Fields missing from this fetch keep their value from prev.
func Fetch(ctx context.Context, client *http.Client, url, userAgent string, prev Snapshot) (Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return prev, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(icy.HeaderRequestMetadata, "1")
	req.Header.Set("Accept", "*/*")
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return prev, fmt.Errorf("open stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return prev, fmt.Errorf("open stream: unexpected status %s", resp.Status)
	}

	h := icy.ParseHeaders(resp.Header)
	next := Snapshot{
		StreamName:    orDefault(h.Name, prev.StreamName),
		StreamGenre:   orDefault(h.Genre, prev.StreamGenre),
		StreamBitrate: orDefault(h.Bitrate, prev.StreamBitrate),
		CurrentTitle:  prev.CurrentTitle,
	}

	if !h.HasMetaInt {
		return next, nil
	}

	m, err := icy.ReadMetadata(resp.Body, h.MetaInt)
	if err != nil {
		return prev, fmt.Errorf("read metadata: %w", err)
	}
	if m.HasTitle && m.Title != "" {
		next.CurrentTitle = m.Title
	}
	return next, nil
}

// Poller refreshes a Store from the stream until its context is done.
type Poller struct {
	Client    *http.Client
	Target    Target
	Store     *Store
	Interval  time.Duration
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
}

// Run polls until ctx is cancelled. Failures are logged and recorded in the
// snapshot, and never end the loop.
func (p *Poller) Run(ctx context.Context) {
	interval := p.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	client := p.Client
	if client == nil {
		client = NewHTTPClient(p.Timeout)
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("component", "metadata"), zap.String("url", p.Target.URL))

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		p.poll(ctx, client, logger)
		timer.Reset(interval)
	}
}

func (p *Poller) poll(ctx context.Context, client *http.Client, logger *zap.Logger) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultNetworkTimeout
	}
	fetchCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	prev := p.Store.Snapshot()
	next, err := Fetch(fetchCtx, client, p.Target.URL, p.userAgent(), prev)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		level := zap.WarnLevel
		if errors.Is(err, icy.ErrIncompleteStream) {
			level = zap.DebugLevel
		}
		logger.Log(level, "metadata fetch failed", zap.Error(err))
		next = prev
		next.Error = err.Error()
		p.Store.Replace(next)
		return
	}

	if next.CurrentTitle != prev.CurrentTitle {
		logger.Info("now playing", zap.String("title", next.CurrentTitle))
	}
	p.Store.Replace(next)
}

func (p *Poller) userAgent() string {
	if p.UserAgent == "" {
		return DefaultUserAgent
	}
	return p.UserAgent
}
