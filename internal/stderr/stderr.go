// Package stderr captures the standard error of the player process so its
// diagnostics never reach the terminal and stay available after it exits.
package stderr

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"sync"
)

// DefaultLines is the number of lines a Capture keeps.
const DefaultLines = 50

// maxLine bounds a single line. Longer lines are split.
const maxLine = 64 * 1024

// Capture keeps the most recent lines read from a stream.
type Capture struct {
	mu     sync.Mutex
	lines  []string
	max    int
	onLine func(string)
	done   chan struct{}
}

// New returns a capture keeping up to max lines. onLine, if not nil, is
// called from the reading goroutine for every non-empty line.
func New(max int, onLine func(string)) *Capture {
	if max <= 0 {
		max = DefaultLines
	}
	return &Capture{
		max:    max,
		onLine: onLine,
		done:   make(chan struct{}),
	}
}

// Start reads r in a goroutine until EOF. Done is closed once r is drained.
func (c *Capture) Start(r io.Reader) {
	go c.read(r)
}

func (c *Capture) read(r io.Reader) {
	defer close(c.done)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 4096), maxLine)
	scanner.Split(scanLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.add(line)
		if c.onLine != nil {
			c.onLine(line)
		}
	}
	// Keep draining so the writer never blocks on a full pipe.
	_, _ = io.Copy(io.Discard, r)
}

func (c *Capture) add(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == c.max {
		copy(c.lines, c.lines[1:])
		c.lines = c.lines[:c.max-1]
	}
	c.lines = append(c.lines, line)
}

// Lines returns a copy of the captured lines, oldest first.
func (c *Capture) Lines() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.lines))
	copy(out, c.lines)
	return out
}

// Last returns the most recent line, or "" when nothing was captured.
func (c *Capture) Last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.lines) == 0 {
		return ""
	}
	return c.lines[len(c.lines)-1]
}

// Done is closed when the stream has been fully read.
func (c *Capture) Done() <-chan struct{} {
	return c.done
}

// scanLines splits on '\n' and '\r'. Players redraw their status line
// with a bare carriage return.
func scanLines(data []byte, atEOF bool) (int, []byte, error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
