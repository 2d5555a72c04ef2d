package editor

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Terminal handles terminal-specific operations: raw mode, restoration and
// screen geometry.
type Terminal struct {
	in       io.Reader
	out      io.Writer
	inFd     int
	outFd    int
	original *unix.Termios
}

// NewTerminal creates a Terminal bound to the controlling tty.
func NewTerminal() *Terminal {
	return &Terminal{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

// Enable raw mode for terminal input.
// This allows us to read every input key and position the cursor freely.
// term.MakeRaw is not used here because it leaves VMIN=1/VTIME=0; the key
// decoder relies on reads returning after 100ms with no input.
func (t *Terminal) EnableRawMode() error {
	// Check if stdin is a terminal
	if !term.IsTerminal(t.inFd) {
		return errors.New("not running in a terminal")
	}

	termios, err := unix.IoctlGetTermios(t.inFd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("reading terminal attributes: %w", err)
	}
	t.original = termios

	raw := *termios
	// No break-to-SIGINT, no CR-to-NL translation, no parity checking,
	// no high-bit stripping, no Ctrl-S/Ctrl-Q flow control
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	// No output post-processing; the renderer emits \r\n itself
	raw.Oflag &^= unix.OPOST
	// 8-bit characters
	raw.Cflag |= unix.CS8
	// No echo, no line buffering, no Ctrl-V, no Ctrl-C/Ctrl-Z signals
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// read returns as soon as any byte is available, or after 100ms
	// with none
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1

	if err := unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("setting terminal attributes: %w", err)
	}
	return nil
}

// Restore the original terminal state, disabling raw mode.
func (t *Terminal) Restore() {
	if t.original != nil {
		unix.IoctlSetTermios(t.inFd, ioctlWriteTermios, t.original)
		t.original = nil // Prevent multiple restoration attempts
	}
}

// Size reports the screen geometry in rows and columns. The direct query is
// not available on every system, so a zero or failed result falls back to
// parking the cursor in the bottom-right corner and asking where it ended up.
func (t *Terminal) Size() (int, int, error) {
	cols, rows, err := term.GetSize(t.outFd)
	if err != nil || cols == 0 {
		return t.fallbackSize()
	}
	return rows, cols, nil
}

func (t *Terminal) fallbackSize() (int, int, error) {
	if _, err := t.out.Write([]byte(CURSOR_BOTTOM_RIGHT)); err != nil {
		return 0, 0, fmt.Errorf("positioning cursor for size probe: %w", err)
	}
	return t.cursorPosition()
}

func (t *Terminal) cursorPosition() (int, int, error) {
	if _, err := t.out.Write([]byte(CURSOR_GET_POSITION)); err != nil {
		return 0, 0, fmt.Errorf("requesting cursor position: %w", err)
	}
	return parseCursorReport(readCursorReport(t.in))
}

// readCursorReport collects the terminal's reply to a cursor position
// request, up to and including the R terminator. The reply is bounded; a
// timed-out or truncated read leaves whatever arrived for the parser to
// reject.
func readCursorReport(in io.Reader) []byte {
	var buf [32]byte
	i := 0
	for i < len(buf)-1 {
		if n, _ := in.Read(buf[i : i+1]); n != 1 {
			break
		}
		i++
		if buf[i-1] == 'R' {
			break
		}
	}
	return buf[:i]
}

// parseCursorReport extracts rows and columns from a cursor position report
// of the form ESC [ <row> ; <col> R.
func parseCursorReport(reply []byte) (int, int, error) {
	if len(reply) < 2 || reply[0] != '\x1b' || reply[1] != '[' {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", reply)
	}
	var rows, cols int
	if n, err := fmt.Sscanf(string(reply), CURSOR_RESPONSE_FORMAT, &rows, &cols); n != 2 || err != nil {
		return 0, 0, fmt.Errorf("malformed cursor position report %q", reply)
	}
	return rows, cols, nil
}
