// Package icy reads SHOUTcast/Icecast interleaved metadata.
//
// An ICY stream interleaves metaint bytes of audio with one metadata block.
// A block is a single length byte L followed by L*16 bytes of Latin-1 text,
// padded with NULs, e.g. "StreamTitle='Artist - Track';StreamUrl='';".
package icy

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"
)

// blockUnit is the multiplier applied to the length byte.
const blockUnit = 16

var (
	// ErrIncompleteStream is returned when the stream ends before a full
	// audio chunk, length byte, or metadata block could be read.
	ErrIncompleteStream = errors.New("icy: incomplete stream")

	// ErrInvalidMetaint is returned for a non-positive metadata interval.
	ErrInvalidMetaint = errors.New("icy: invalid metaint")
)

// Metadata holds the fields extracted from one metadata block.
type Metadata struct {
	// Present is false when the length byte was zero.
	Present bool
	// Raw is the decoded block with trailing NULs removed.
	Raw string
	// Title is the StreamTitle value, empty when absent.
	Title string
	// HasTitle reports whether a StreamTitle key was found.
	HasTitle bool
	// Fields holds every key='value' pair in the block.
	Fields map[string]string
}

// ReadMetadata performs one metadata cycle on r: it discards metaint audio
// bytes, reads the length byte and, if non-zero, the metadata block.
//
// It consumes exactly metaint+1+L*16 bytes on success and never more.
// A short read at any point yields ErrIncompleteStream.
func ReadMetadata(r io.Reader, metaint int) (Metadata, error) {
	if metaint <= 0 {
		return Metadata{}, fmt.Errorf("%w: %d", ErrInvalidMetaint, metaint)
	}

	if _, err := io.CopyN(io.Discard, r, int64(metaint)); err != nil {
		return Metadata{}, incomplete("audio chunk", err)
	}

	var lenByte [1]byte
	if _, err := io.ReadFull(r, lenByte[:]); err != nil {
		return Metadata{}, incomplete("length byte", err)
	}

	size := int(lenByte[0]) * blockUnit
	if size == 0 {
		return Metadata{}, nil
	}

	block := make([]byte, size)
	if _, err := io.ReadFull(r, block); err != nil {
		return Metadata{}, incomplete("metadata block", err)
	}

	return ParseMetadata(block), nil
}

// ParseMetadata decodes a raw metadata block.
func ParseMetadata(block []byte) Metadata {
	raw := strings.TrimRight(DecodeText(block), "\x00")
	fields := ParseBlock(raw)
	m := Metadata{
		Present: true,
		Raw:     raw,
		Fields:  fields,
	}
	m.Title, m.HasTitle = StreamTitle(raw)
	return m
}

// incomplete maps a short read to ErrIncompleteStream. Network errors that
// are not EOF are kept in the chain so callers can still inspect them.
func incomplete(stage string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: reading %s", ErrIncompleteStream, stage)
	}
	return fmt.Errorf("%w: reading %s: %w", ErrIncompleteStream, stage, err)
}

// DecodeText decodes a metadata block. Blocks that are valid UTF-8 are kept
// as is, anything else is read as Latin-1.
func DecodeText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return DecodeLatin1(b)
}

// DecodeLatin1 maps every byte to the code point of the same value.
// ISO-8859-1 is a subset of Unicode, so decoding cannot fail.
func DecodeLatin1(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}

var (
	streamTitleRe = regexp.MustCompile(`StreamTitle='((?:[^'\\]|\\.)*)'`)
	fieldRe       = regexp.MustCompile(`([A-Za-z][A-Za-z0-9_]*)='((?:[^'\\]|\\.)*)';?`)
)

// StreamTitle extracts the StreamTitle value. The value may contain any
// character except an unescaped single quote.
func StreamTitle(text string) (string, bool) {
	m := streamTitleRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(unescape(m[1])), true
}

// ParseBlock returns all key='value' pairs of a metadata block.
func ParseBlock(text string) map[string]string {
	matches := fieldRe.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	fields := make(map[string]string, len(matches))
	for _, m := range matches {
		fields[m[1]] = unescape(m[2])
	}
	return fields
}

func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	return strings.NewReplacer(`\'`, `'`, `\\`, `\`).Replace(s)
}
