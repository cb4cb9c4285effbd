// Package input turns raw terminal bytes into key identifiers.
package input

import (
	"bufio"
	"io"
	"sync"
	"unicode/utf8"
)

// Key identifies a pressed key using the browser KeyboardEvent.key names,
// so every host (terminal, web, desktop) speaks the same vocabulary.
type Key string

const (
	KeyArrowUp    Key = "ArrowUp"
	KeyArrowDown  Key = "ArrowDown"
	KeyArrowLeft  Key = "ArrowLeft"
	KeyArrowRight Key = "ArrowRight"
	KeyEnter      Key = "Enter"
	KeySpace      Key = " "
	KeyEscape     Key = "Escape"
	KeyBackspace  Key = "Backspace"
	KeyCtrlC      Key = "Ctrl+C"
)

// ReadKey decodes one key from r.
// CSI arrow sequences (ESC [ A..D) become arrow keys. A lone ESC, detected by
// nothing else being buffered behind it, becomes KeyEscape.
func ReadKey(r *bufio.Reader) (Key, error) {
	b, err := r.ReadByte()
	if err != nil {
		return "", err
	}

	switch b {
	case '\x1b':
		return readEscape(r)
	case '\r', '\n':
		return KeyEnter, nil
	case '\x03':
		return KeyCtrlC, nil
	case '\b', '\x7f':
		return KeyBackspace, nil
	}

	if b < utf8.RuneSelf {
		return Key(string(rune(b))), nil
	}

	// Multi-byte rune: push the lead byte back and decode the whole rune.
	if err := r.UnreadByte(); err != nil {
		return "", err
	}
	ch, _, err := r.ReadRune()
	if err != nil {
		return "", err
	}
	return Key(string(ch)), nil
}

// readEscape decodes what follows an ESC byte.
func readEscape(r *bufio.Reader) (Key, error) {
	if r.Buffered() == 0 {
		return KeyEscape, nil
	}
	next, err := r.Peek(1)
	if err != nil || next[0] != '[' {
		return KeyEscape, nil
	}
	_, _ = r.ReadByte() // '['

	code, err := r.ReadByte()
	if err != nil {
		return KeyEscape, nil
	}
	switch code {
	case 'A':
		return KeyArrowUp, nil
	case 'B':
		return KeyArrowDown, nil
	case 'C':
		return KeyArrowRight, nil
	case 'D':
		return KeyArrowLeft, nil
	}

	// Unknown CSI sequence: skip parameter bytes up to the final byte.
	for code < 0x40 || code > 0x7e {
		if code, err = r.ReadByte(); err != nil {
			break
		}
	}
	return KeyEscape, nil
}

// Stream delivers decoded keys via a channel.
type Stream struct {
	ch   chan Key
	done chan struct{}
	once sync.Once
	err  error
}

// NewStream spawns a goroutine that decodes keys from r and sends them to the stream.
// The channel is closed when r returns an error (including io.EOF) or after Close.
func NewStream(r io.Reader) *Stream {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	s := &Stream{ch: make(chan Key, 64), done: make(chan struct{})}
	go func() {
		defer close(s.ch)
		for {
			k, err := ReadKey(br)
			if err != nil {
				if err != io.EOF {
					s.err = err
				}
				return
			}
			select {
			case s.ch <- k:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Keys returns the channel of decoded keys.
func (s *Stream) Keys() <-chan Key {
	return s.ch
}

// Close stops delivering keys. A goroutine blocked on a full channel exits at once;
// one blocked in a read exits when that read returns.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.done) })
}

// Err returns the read error that ended the stream, if any.
// Only valid after Keys() has been closed.
func (s *Stream) Err() error {
	return s.err
}
