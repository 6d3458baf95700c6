// Package controls reads single keypresses from the terminal while a
// stream plays and turns them into player commands.
package controls

import (
	"github.com/charmbracelet/x/ansi"
)

// csiKeys maps the final byte of a cursor-key escape sequence.
var csiKeys = map[byte]string{
	'A': "up",
	'B': "down",
	'C': "right",
	'D': "left",
	'H': "home",
	'F': "end",
}

// tildeKeys maps the parameter of "ESC [ n ~" sequences.
var tildeKeys = map[int]string{
	2: "insert",
	3: "delete",
	5: "pgup",
	6: "pgdown",
}

// decoder turns raw terminal input into key names, using the same names as
// the bubbletea key strings ("space", "ctrl+c", "esc").
type decoder struct {
	p *ansi.Parser
}

func newDecoder() *decoder {
	p := ansi.NewParser()
	p.SetDataSize(256)
	return &decoder{p: p}
}

// decode splits one read from a raw-mode terminal into key names. Each read
// is decoded on its own; a sequence cut off at the end of b is dropped.
func (d *decoder) decode(b []byte) []string {
	var keys []string
	for len(b) > 0 {
		key, n := d.next(b)
		if key != "" {
			keys = append(keys, key)
		}
		b = b[n:]
	}
	return keys
}

// next decodes the first key in b and returns its name and size. Unknown
// sequences decode to "" and are skipped whole.
func (d *decoder) next(b []byte) (string, int) {
	seq, width, n, state := ansi.DecodeSequence(b, ansi.NormalState, d.p)
	if n == 0 {
		return "", 1
	}

	if state != ansi.NormalState {
		if len(seq) == 1 && seq[0] == ansi.ESC {
			return "esc", n
		}
		return "", n
	}

	switch {
	case width > 0:
		if seq[0] == ' ' {
			return "space", n
		}
		return string(seq), n
	case len(seq) == 1:
		return controlKey(seq[0]), n
	case ansi.HasCsiPrefix(seq):
		return d.csi(), n
	case ansi.HasEscPrefix(seq):
		return d.escape(b, seq, n)
	}
	return "", n
}

func (d *decoder) csi() string {
	cmd := ansi.Cmd(d.p.Command())
	if cmd.Prefix() != 0 || cmd.Intermediate() != 0 {
		return ""
	}
	if cmd.Final() == '~' {
		code, _ := d.p.Param(0, 0)
		return tildeKeys[code]
	}
	return csiKeys[cmd.Final()]
}

// escape handles two-byte "ESC x" sequences: SS3 cursor keys ("ESC O A")
// and alt-modified keys.
func (d *decoder) escape(b, seq []byte, n int) (string, int) {
	cmd := ansi.Cmd(d.p.Command())
	if cmd.Intermediate() != 0 || len(seq) != 2 {
		return "", n
	}
	if cmd.Final() == 'O' {
		if n >= len(b) {
			return "", n
		}
		return csiKeys[b[n]], n + 1
	}
	return "alt+" + string(seq[1:]), n
}

func controlKey(c byte) string {
	switch {
	case c == ansi.ESC:
		return "esc"
	case c == '\r' || c == '\n':
		return "enter"
	case c == '\t':
		return "tab"
	case c == ansi.DEL || c == ansi.BS:
		return "backspace"
	case c == ansi.NUL:
		return "ctrl+@"
	case c <= ansi.SUB:
		return "ctrl+" + string(rune('a'+c-1))
	}
	return ""
}
