package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/search.html")
	require.NoError(t, err)
	return data
}

func TestParsePage(t *testing.T) {
	page, err := ParsePage(strings.NewReader(string(loadFixture(t))))
	require.NoError(t, err)

	require.Len(t, page.Stations, 2, "stations without streams are skipped")

	jazz := page.Stations[0]
	assert.Equal(t, "Jazz 24", jazz.Name)
	assert.Equal(t, "Seattle, USA", jazz.Location)
	assert.Equal(t, "Jazz", jazz.Genre)
	assert.Equal(t, "The best jazz, all day long", jazz.Description)
	require.Len(t, jazz.Streams, 3)
	assert.Equal(t, Stream{URL: "https://live.example.org/jazz24-256", Codec: "MP3", Bitrate: "256"}, jazz.Streams[0])

	anon := page.Stations[1]
	assert.Equal(t, UnknownStation, anon.Name)
	assert.Equal(t, UnknownLocation, anon.Location)
	assert.Equal(t, UnknownGenre, anon.Genre)
	require.Len(t, anon.Streams, 1)
	assert.Equal(t, Unknown, anon.Streams[0].Codec)
	assert.Equal(t, Unknown, anon.Streams[0].BitrateLabel())

	require.True(t, page.HasPrev())
	require.True(t, page.HasNext())
	assert.Equal(t, 0, *page.PrevOffset)
	assert.Equal(t, 40, *page.NextOffset)
}

func TestParsePage_Empty(t *testing.T) {
	page, err := ParsePage(strings.NewReader("<html><body><p>No result</p></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, page.Stations)
	assert.False(t, page.HasPrev())
	assert.False(t, page.HasNext())
}

func TestSortedStreams(t *testing.T) {
	st := Station{Streams: []Stream{
		{URL: "a", Bitrate: "256"},
		{URL: "b"},
		{URL: "c", Bitrate: "64"},
		{URL: "d", Bitrate: "n/a"},
		{URL: "e", Bitrate: "128"},
	}}

	var urls []string
	for _, s := range st.SortedStreams() {
		urls = append(urls, s.URL)
	}
	assert.Equal(t, []string{"b", "d", "c", "e", "a"}, urls)
	assert.Equal(t, "a", st.Streams[0].URL, "original order untouched")
}

func TestStream_BitrateLabel(t *testing.T) {
	assert.Equal(t, "128 kbps", Stream{Bitrate: "128"}.BitrateLabel())
	assert.Equal(t, Unknown, Stream{}.BitrateLabel())
}

func TestClient_Search(t *testing.T) {
	fixture := loadFixture(t)
	requests := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r.Clone(context.Background())
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/index.php", time.Second, nil)
	c.UserAgent = "fmcli-test"

	page, err := c.Search(context.Background(), "jazz fm", 20)
	require.NoError(t, err)

	req := <-requests
	assert.Equal(t, "jazz fm", req.URL.Query().Get("s"))
	assert.Equal(t, "20", req.URL.Query().Get("n"))
	assert.Equal(t, "fmcli-test", req.UserAgent())
	assert.Equal(t, "jazz fm", page.Query)
	assert.Equal(t, 20, page.Offset)
	assert.Len(t, page.Stations, 2)
}

func TestClient_SearchStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, time.Second, nil).Search(context.Background(), "x", 0)
	assert.ErrorContains(t, err, "502")
}

func TestClient_Lookup(t *testing.T) {
	fixture := loadFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("s") == "missing" {
			_, _ = w.Write([]byte("<html></html>"))
			return
		}
		_, _ = w.Write(fixture)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, time.Second, nil)

	st, err := c.Lookup(context.Background(), "Jazz 24", "Seattle, USA")
	require.NoError(t, err)
	assert.Equal(t, "Jazz 24", st.Name)

	st, err = c.Lookup(context.Background(), "Other", "Elsewhere")
	require.NoError(t, err)
	assert.Equal(t, "Jazz 24", st.Name, "falls back to the first result")

	_, err = c.Lookup(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchURL(t *testing.T) {
	c := NewClient("https://fmstream.org/index.php", 0, nil)
	u, err := c.SearchURL("radio paradise", 40)
	require.NoError(t, err)
	assert.Equal(t, "https://fmstream.org/index.php?n=40&s=radio+paradise", u)
}
