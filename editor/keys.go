package editor

import (
	"errors"
	"fmt"
	"io"
	"syscall"
)

// Key aliase
const (
	BACKSPACE  = 127 // ASCII backspace
	ARROW_LEFT = iota + 1000
	ARROW_RIGHT
	ARROW_UP
	ARROW_DOWN
	DELETE_KEY
	HOME_KEY
	END_KEY
	PAGE_UP
	PAGE_DOWN
)

// Check if the byte is a digit character
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Convert a character to its control key equivalent
func withControlKey(c int) int {
	return c & 0x1f // 0x1f is 31 in decimal, which is the control character range
}

// Escape-sequence discriminator tables. The trailing byte of a recognized
// sequence selects the key; anything not listed resolves to a bare escape.
var (
	// ESC [ <digit> ~
	csiTildeKeys = map[byte]int{
		'1': HOME_KEY,
		'3': DELETE_KEY,
		'4': END_KEY,
		'5': PAGE_UP,
		'6': PAGE_DOWN,
		'7': HOME_KEY,
		'8': END_KEY,
	}
	// ESC [ <letter>
	csiLetterKeys = map[byte]int{
		'A': ARROW_UP,
		'B': ARROW_DOWN,
		'C': ARROW_RIGHT,
		'D': ARROW_LEFT,
		'F': END_KEY,
		'H': HOME_KEY,
	}
	// ESC O <letter>
	ss3Keys = map[byte]int{
		'F': END_KEY,
		'H': HOME_KEY,
	}
)

// keyReader turns the raw terminal byte stream into key events.
type keyReader struct {
	in io.Reader
}

// readByte performs a single read attempt for one byte. With VTIME set on
// the terminal a read that waits out the timeout returns zero bytes, which
// surfaces here as ok == false rather than an error.
func (kr *keyReader) readByte() (byte, bool, error) {
	var buf [1]byte
	n, err := kr.in.Read(buf[:])
	if n == 1 {
		return buf[0], true, nil
	}
	if err == nil || errors.Is(err, io.EOF) || errors.Is(err, syscall.EINTR) {
		return 0, false, nil
	}
	return 0, false, err
}

// ReadKey blocks until one key event is decoded. Plain bytes are returned
// verbatim; escape sequences collapse into the symbolic key constants.
func (kr *keyReader) ReadKey() (int, error) {
	var c byte
	for {
		b, ok, err := kr.readByte()
		if err != nil {
			return 0, fmt.Errorf("reading keyboard input: %w", err)
		}
		if ok {
			c = b
			break
		}
	}

	if c != '\x1b' {
		return int(c), nil
	}

	// A lone escape keypress and the start of a sequence look the same;
	// the follow-up bytes either arrive within the read timeout or not
	// at all.
	b1, ok, err := kr.readByte()
	if err != nil || !ok {
		return '\x1b', nil
	}
	b2, ok, err := kr.readByte()
	if err != nil || !ok {
		return '\x1b', nil
	}

	switch b1 {
	case '[':
		if isDigit(b2) {
			b3, ok, err := kr.readByte()
			if err != nil || !ok {
				return '\x1b', nil
			}
			if b3 == '~' {
				if key, found := csiTildeKeys[b2]; found {
					return key, nil
				}
			}
		} else if key, found := csiLetterKeys[b2]; found {
			return key, nil
		}
	case 'O':
		if key, found := ss3Keys[b2]; found {
			return key, nil
		}
	}

	return '\x1b', nil // Unknown escape sequence, return escape
}
