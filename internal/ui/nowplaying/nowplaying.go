// Package nowplaying draws the playback panel directly on the terminal,
// redrawing it in place on every tick.
package nowplaying

import (
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/fmcli/internal/keymap"
	"github.com/llehouerou/fmcli/internal/session"
	"github.com/llehouerou/fmcli/internal/ui/render"
	"github.com/llehouerou/fmcli/internal/ui/styles"
)

const (
	DefaultWidth = 60
	minWidth     = 30
	maxWidth     = 80
)

// Renderer is a session.Sink writing to a terminal. The terminal is in raw
// mode while a session runs, so lines end with "\r\n".
type Renderer struct {
	mu    sync.Mutex
	out   io.Writer
	width int
	hint  string
	drawn int // lines drawn by the previous frame
}

// New creates a renderer for a terminal of the given width.
func New(out io.Writer, width int) *Renderer {
	return &Renderer{
		out:   out,
		width: width,
		hint:  keymap.Hint(keymap.ByContext(keymap.ContextPlayback)),
	}
}

// Render implements session.Sink.
func (r *Renderer) Render(v session.View) {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := strings.Split(Panel(v, r.width, r.hint), "\n")

	var b strings.Builder
	if r.drawn == 0 {
		b.WriteString(ansi.HideCursor)
	} else {
		b.WriteString(ansi.CursorUp(r.drawn))
		b.WriteString("\r")
		b.WriteString(ansi.EraseScreenBelow)
	}
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	r.drawn = len(lines)
	if v.Final {
		b.WriteString(ansi.ShowCursor)
		r.drawn = 0
	}
	_, _ = io.WriteString(r.out, b.String())
}

// Close restores the cursor if the last frame was not final.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.drawn > 0 {
		_, _ = io.WriteString(r.out, ansi.ShowCursor)
		r.drawn = 0
	}
}

// Panel renders one view as a bordered panel no wider than width.
func Panel(v session.View, width int, hint string) string {
	if width <= 0 {
		width = DefaultWidth
	}
	width = min(max(width, minWidth), maxWidth)
	// Border and padding take 6 cells.
	inner := width - 6

	s := styles.T().S()
	text := func(st lipgloss.Style, value string) string {
		return st.Render(render.Truncate(value, inner))
	}

	lines := []string{
		s.Label.Render("▶ Now Playing"),
		text(s.Station, v.StreamName),
		"",
		text(s.Genre, "Genre: "+v.Genre),
		text(s.Bitrate, "Bitrate: "+render.Bitrate(v.Bitrate)),
		"",
		text(s.Playing, "♪ "+v.Title),
		"",
		s.Muted.Render(render.Row(v.Frame+" "+v.StateLabel, render.Elapsed(v.Elapsed), inner)),
	}
	if v.Error != "" {
		lines = append(lines, text(s.Warning, "metadata: "+v.Error))
	}
	if hint != "" && !v.Final {
		lines = append(lines, text(s.Subtle, hint))
	}

	return styles.PanelStyle(!v.Final).
		Width(width - 2).
		Render(strings.Join(lines, "\n"))
}
