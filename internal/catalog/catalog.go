// Package catalog searches the fmstream.org station directory.
package catalog

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Defaults for the directory client.
const (
	DefaultBaseURL = "https://fmstream.org/index.php"
	DefaultTimeout = 20 * time.Second
)

// Placeholders for fields missing from a station block.
const (
	UnknownStation  = "Unknown Station"
	UnknownLocation = "Unknown Location"
	UnknownGenre    = "Unknown Genre"
	Unknown         = "Unknown"
)

// ErrNotFound is returned by Lookup when no station matches.
var ErrNotFound = errors.New("station not found")

// Stream is one playable URL of a station.
type Stream struct {
	URL   string
	Codec string
	// Bitrate is the kbps value as printed, empty when unknown.
	Bitrate string
}

// Kbps returns the numeric bitrate, or 0 when unknown.
func (s Stream) Kbps() int {
	n, err := strconv.Atoi(strings.TrimSpace(s.Bitrate))
	if err != nil {
		return 0
	}
	return n
}

// BitrateLabel returns "128 kbps", or Unknown.
func (s Stream) BitrateLabel() string {
	if s.Bitrate == "" {
		return Unknown
	}
	return s.Bitrate + " kbps"
}

// Station is one directory entry.
type Station struct {
	Name        string
	Location    string
	Genre       string
	Description string
	Streams     []Stream
}

// SortedStreams returns the streams by ascending bitrate, unknown first.
func (s Station) SortedStreams() []Stream {
	out := slices.Clone(s.Streams)
	slices.SortStableFunc(out, func(a, b Stream) int {
		return cmp.Compare(a.Kbps(), b.Kbps())
	})
	return out
}

// Page is one page of search results.
type Page struct {
	Query    string
	Offset   int
	Stations []Station
	// PrevOffset and NextOffset are set when the directory links to the
	// previous or next page.
	PrevOffset *int
	NextOffset *int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.PrevOffset != nil }

// HasNext reports whether a next page exists.
func (p Page) HasNext() bool { return p.NextOffset != nil }

// Client queries the directory over HTTP.
type Client struct {
	BaseURL   string
	HTTP      *http.Client
	UserAgent string
	Logger    *zap.Logger
}

// NewClient creates a client. An empty baseURL uses DefaultBaseURL.
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger.With(zap.String("component", "catalog")),
	}
}

// SearchURL returns the directory URL for a query at offset.
func (c *Client) SearchURL(query string, offset int) (string, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	q := u.Query()
	q.Set("s", query)
	q.Set("n", strconv.Itoa(offset))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Search fetches one page of stations matching query.
func (c *Client) Search(ctx context.Context, query string, offset int) (Page, error) {
	target, err := c.SearchURL(query, offset)
	if err != nil {
		return Page{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return Page{}, fmt.Errorf("create request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("fetch directory: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("fetch directory: unexpected status %s", resp.Status)
	}

	page, err := ParsePage(resp.Body)
	if err != nil {
		return Page{}, err
	}
	page.Query = query
	page.Offset = offset

	c.logger().Debug("directory search",
		zap.String("query", query),
		zap.Int("offset", offset),
		zap.Int("stations", len(page.Stations)),
		zap.Duration("took", time.Since(start)))
	return page, nil
}

// Lookup searches for a station by name and returns the entry matching
// name and location, or the first result when none matches exactly.
func (c *Client) Lookup(ctx context.Context, name, location string) (Station, error) {
	page, err := c.Search(ctx, name, 0)
	if err != nil {
		return Station{}, err
	}
	if len(page.Stations) == 0 {
		return Station{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	for _, st := range page.Stations {
		if st.Name == name && st.Location == location {
			return st, nil
		}
	}
	return page.Stations[0], nil
}

func (c *Client) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
