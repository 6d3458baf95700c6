package controls

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/muesli/cancelreader"
)

var (
	// ErrNoKey is returned by ReadKey when no key arrived within the timeout.
	ErrNoKey = errors.New("no key pressed")

	// ErrClosed is returned by ReadKey after Close.
	ErrClosed = errors.New("key source closed")

	// ErrNotTerminal is returned by OpenTerminal for a file that is not a
	// terminal.
	ErrNotTerminal = errors.New("not a terminal")
)

// KeySource delivers keypresses one at a time.
type KeySource interface {
	// ReadKey waits up to timeout for the next key. It returns ErrNoKey
	// when the timeout expires first.
	ReadKey(timeout time.Duration) (string, error)
	// Close releases the input. It is safe to call more than once.
	Close() error
}

// Source is a KeySource over a cancelable reader. A background goroutine
// decodes input into keys.
type Source struct {
	reader  cancelreader.CancelReader
	release func() error

	keys     chan string
	closed   chan struct{}
	readDone chan struct{}
	readErr  error

	closeOnce sync.Once
	closeErr  error
}

// NewSource reads keys from r without changing any terminal mode.
func NewSource(r io.Reader) (*Source, error) {
	cr, err := cancelreader.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("create reader: %w", err)
	}
	return newSource(cr, nil), nil
}

// OpenTerminal switches f to raw mode and reads keys from it. Close
// restores the previous mode.
func OpenTerminal(f *os.File) (*Source, error) {
	fd := f.Fd()
	if !term.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	restore := func() error { return term.Restore(fd, state) }

	cr, err := cancelreader.NewReader(f)
	if err != nil {
		_ = restore()
		return nil, fmt.Errorf("create reader: %w", err)
	}
	return newSource(cr, restore), nil
}

func newSource(cr cancelreader.CancelReader, release func() error) *Source {
	s := &Source{
		reader:   cr,
		release:  release,
		keys:     make(chan string, 16),
		closed:   make(chan struct{}),
		readDone: make(chan struct{}),
	}
	go s.read()
	return s
}

func (s *Source) read() {
	defer close(s.readDone)

	d := newDecoder()
	buf := make([]byte, 256)
	for {
		n, err := s.reader.Read(buf)
		for _, k := range d.decode(buf[:n]) {
			select {
			case s.keys <- k:
			case <-s.closed:
				return
			}
		}
		if err != nil {
			s.readErr = err
			return
		}
	}
}

// ReadKey implements KeySource.
func (s *Source) ReadKey(timeout time.Duration) (string, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case k := <-s.keys:
		return k, nil
	case <-s.closed:
		return "", ErrClosed
	case <-s.readDone:
		select {
		case k := <-s.keys:
			return k, nil
		default:
		}
		if s.readErr == nil || errors.Is(s.readErr, cancelreader.ErrCanceled) {
			return "", ErrClosed
		}
		return "", s.readErr
	case <-timer.C:
		return "", ErrNoKey
	}
}

// Close cancels any pending read and restores the terminal.
func (s *Source) Close() error {
	s.closeOnce.Do(func() {
		close(s.closed)
		if s.reader.Cancel() {
			select {
			case <-s.readDone:
			case <-time.After(time.Second):
			}
		}
		var errs []error
		if err := s.reader.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close reader: %w", err))
		}
		if s.release != nil {
			if err := s.release(); err != nil {
				errs = append(errs, fmt.Errorf("restore terminal: %w", err))
			}
		}
		s.closeErr = errors.Join(errs...)
	})
	return s.closeErr
}

// Verify Source implements KeySource at compile time.
var _ KeySource = (*Source)(nil)
