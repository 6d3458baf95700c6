// Package render provides text rendering utilities for TUI components.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab) and invalid UTF-8 bytes.
// Station names and stream titles come from remote servers, and a stray
// escape byte would corrupt the terminal.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		if r == '\u00a0' {
			b.WriteByte(' ')
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

// needsSanitize returns true if the string contains bytes that need sanitizing.
func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for i := range len(s) {
		b := s[i]
		if b < 0x20 && b != '\t' {
			return true
		}
		if b == 0x7f {
			return true
		}
		// U+0080-U+009F (C1 controls) and U+00A0 (NBSP) start with 0xc2.
		if b == 0xc2 && i+1 < len(s) && s[i+1] <= 0xa0 {
			return true
		}
	}
	return false
}

// Truncate shortens a string to fit within maxWidth, adding "..." if truncated.
// The input is sanitized first.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "...")
}

// Pad fills a string with spaces to reach the specified width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad truncates a string if necessary, then pads to the exact width.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row creates a row with left and right aligned content separated by spaces.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal separator line of the specified width.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// Bitrate formats a bitrate field. Numeric values get a "kbps" suffix,
// anything else (such as "N/A") is returned unchanged.
func Bitrate(s string) string {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "kbps"))
	if _, err := strconv.Atoi(s); err != nil {
		return s
	}
	return s + " kbps"
}

// Elapsed formats a duration as m:ss, or h:mm:ss past one hour.
func Elapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	sec := int(d%time.Minute) / int(time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
