package editor

import "fmt"

/*** append buffer ***/

// appendBuffer accumulates one full frame so the terminal sees a single
// write instead of many small ones.
type appendBuffer struct {
	b   []byte
	len int
}

func (ab *appendBuffer) append(s []byte) {
	ab.b = append(ab.b, s...)
	ab.len += len(s)
}

/*** output ***/

func (e *Editor) drawRows(abuf *appendBuffer) {
	for y := 0; y < e.screenRows; y++ {
		if y < len(e.rows) {
			row := &e.rows[y]
			abuf.append(row.chars[:min(row.size, e.screenCols)])
		} else if len(e.rows) == 0 && y == e.screenRows/3 {
			welcome := "VIGO editor -- version " + VIGO_VERSION
			welcomeLen := min(len(welcome), e.screenCols)
			padding := (e.screenCols - welcomeLen) / 2
			if padding > 0 {
				abuf.append([]byte("~"))
				padding--
			}
			for i := 0; i < padding; i++ {
				abuf.append([]byte(" "))
			}
			abuf.append([]byte(welcome[:welcomeLen]))
		} else {
			abuf.append([]byte("~"))
		}

		abuf.append([]byte(CLEAR_LINE))
		if y < e.screenRows-1 {
			abuf.append([]byte("\r\n"))
		}
	}
}

// renderFrame composes one complete frame for the current editor state. The
// cursor is hidden while the rows are rewritten so it never flashes at its
// stale position.
func (e *Editor) renderFrame() []byte {
	var abuf appendBuffer

	abuf.append([]byte(CURSOR_HIDE))
	abuf.append([]byte(CURSOR_HOME)) // Move cursor to the top-left corner

	e.drawRows(&abuf)

	abuf.append(fmt.Appendf(nil, CURSOR_POSITION_FORMAT, e.cy+1, e.cx+1))
	abuf.append([]byte(CURSOR_SHOW))

	return abuf.b
}

// RefreshScreen redraws the whole screen with a single write. A fresh
// buffer is composed on every call; frames never share memory.
func (e *Editor) RefreshScreen() error {
	if _, err := e.out.Write(e.renderFrame()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}
