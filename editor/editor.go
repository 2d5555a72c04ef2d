package editor

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Config Constants
const (
	VIGO_VERSION = "0.0.1"
)

/*** data ***/

type editorRow struct {
	size  int
	chars []byte
}

// Editor represents the viewer state: cursor position, screen geometry and
// the loaded lines. Every component operation takes it as its receiver;
// there is no package-level mutable state.
type Editor struct {
	cx, cy     int
	screenRows int
	screenCols int
	rows       []editorRow
	terminal   *Terminal
	keys       *keyReader
	out        io.Writer
}

// NewEditor creates an Editor wired to the process terminal.
func NewEditor() *Editor {
	return &Editor{
		terminal: NewTerminal(),
		keys:     &keyReader{in: os.Stdin},
		out:      os.Stdout,
	}
}

/*** terminal ***/

// Die clears the screen, reports the failing operation on stderr, restores
// the terminal and exits with failure status. Restoration runs last so that
// the deferred restore in main, which a fatal exit bypasses, is not relied
// on.
func (e *Editor) Die(format string, args ...any) {
	e.out.Write([]byte(CLEAR_SCREEN))
	e.out.Write([]byte(CURSOR_HOME))
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	e.terminal.Restore()
	os.Exit(1)
}

func (e *Editor) EnableRawMode() error {
	return e.terminal.EnableRawMode()
}

func (e *Editor) RestoreTerminal() {
	e.terminal.Restore()
}

/*** init ***/

// Init fixes the screen geometry for the process lifetime. Without a usable
// size there is no safe way to render, so failure here is fatal to the
// caller.
func (e *Editor) Init() error {
	rows, cols, err := e.terminal.Size()
	if err != nil {
		return fmt.Errorf("getting window size: %w", err)
	}
	if rows <= 0 || cols <= 0 {
		return fmt.Errorf("unusable window size %dx%d", rows, cols)
	}
	e.screenRows = rows
	e.screenCols = cols
	return nil
}

/*** file i/o ***/

// loadLines reads the file into an ordered line list, stripping trailing
// newlines and carriage returns.
func loadLines(filename string) ([][]byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", filename, err)
	}
	defer file.Close()

	var lines [][]byte
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
			line = line[:len(line)-1]
		}
		lines = append(lines, []byte(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", filename, err)
	}
	return lines, nil
}

// Open loads a file's lines before the run loop starts. The line list is
// append-only here and immutable afterward.
func (e *Editor) Open(filename string) error {
	lines, err := loadLines(filename)
	if err != nil {
		return err
	}
	for _, line := range lines {
		e.appendRow(line)
	}
	return nil
}

func (e *Editor) appendRow(chars []byte) {
	e.rows = append(e.rows, editorRow{size: len(chars), chars: chars})
}

/*** input ***/

// MoveCursor applies one single-cell movement, clamped to the screen
// bounds. Movement is not content-aware: the cursor walks over filler rows
// below the last loaded line just as it does over text.
func (e *Editor) MoveCursor(key int) {
	switch key {
	case ARROW_LEFT:
		if e.cx != 0 {
			e.cx--
		}
	case ARROW_RIGHT:
		if e.cx != e.screenCols-1 {
			e.cx++
		}
	case ARROW_UP:
		if e.cy != 0 {
			e.cy--
		}
	case ARROW_DOWN:
		if e.cy != e.screenRows-1 {
			e.cy++
		}
	}
}

// ProcessKeypress maps one decoded key event onto a state transition. It
// reports whether the quit key was pressed.
func (e *Editor) ProcessKeypress(key int) bool {
	switch key {
	case withControlKey('q'):
		return true

	case HOME_KEY:
		e.cx = 0

	case END_KEY:
		e.cx = e.screenCols - 1

	case PAGE_UP, PAGE_DOWN:
		move := ARROW_UP
		if key == PAGE_DOWN {
			move = ARROW_DOWN
		}
		for i := 0; i < e.screenRows; i++ {
			e.MoveCursor(move)
		}

	case ARROW_LEFT, ARROW_RIGHT, ARROW_UP, ARROW_DOWN:
		e.MoveCursor(key)

	case withControlKey('l'), '\x1b':
		// stray escapes and refresh requests are no-ops

	default:
		// no text mutation in this version; everything else is ignored
	}
	return false
}

/*** run loop ***/

// Run alternates a full redraw with blocking on the next key event until
// the quit key is decoded, then leaves a cleared screen behind.
func (e *Editor) Run() error {
	for {
		if err := e.RefreshScreen(); err != nil {
			return err
		}
		key, err := e.keys.ReadKey()
		if err != nil {
			return err
		}
		if e.ProcessKeypress(key) {
			break
		}
	}

	e.out.Write([]byte(CLEAR_SCREEN))
	e.out.Write([]byte(CURSOR_HOME))
	return nil
}
