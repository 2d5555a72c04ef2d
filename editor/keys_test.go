package editor

import (
	"strings"
	"testing"
)

func newTestKeyReader(input string) *keyReader {
	return &keyReader{in: strings.NewReader(input)}
}

func TestReadKeyPlainBytes(t *testing.T) {
	inputs := []byte{'a', 'Z', '0', ' ', '\r', '\t', 0x11, BACKSPACE}

	for _, c := range inputs {
		kr := newTestKeyReader(string(c))
		key, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey(%q) returned error: %v", c, err)
		}
		if key != int(c) {
			t.Errorf("ReadKey(%q): expected %d, got %d", c, c, key)
		}
	}
}

func TestReadKeyEscapeSequences(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"\x1b[A", ARROW_UP},
		{"\x1b[B", ARROW_DOWN},
		{"\x1b[C", ARROW_RIGHT},
		{"\x1b[D", ARROW_LEFT},
		{"\x1b[H", HOME_KEY},
		{"\x1b[F", END_KEY},
		{"\x1b[1~", HOME_KEY},
		{"\x1b[3~", DELETE_KEY},
		{"\x1b[4~", END_KEY},
		{"\x1b[5~", PAGE_UP},
		{"\x1b[6~", PAGE_DOWN},
		{"\x1b[7~", HOME_KEY},
		{"\x1b[8~", END_KEY},
		{"\x1bOH", HOME_KEY},
		{"\x1bOF", END_KEY},
	}

	for _, tt := range tests {
		kr := newTestKeyReader(tt.input)
		key, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey(%q) returned error: %v", tt.input, err)
		}
		if key != tt.want {
			t.Errorf("ReadKey(%q): expected %d, got %d", tt.input, tt.want, key)
		}
	}
}

func TestReadKeyUnknownSequencesReturnEscape(t *testing.T) {
	inputs := []string{
		"\x1b",    // lone escape, both follow-up reads time out
		"\x1b[",   // sequence cut short
		"\x1b[5",  // digit with no terminator
		"\x1b[9~", // digit outside the mapping
		"\x1b[5x", // digit with wrong terminator
		"\x1b[Z",  // letter outside the mapping
		"\x1bOx",  // SS3 outside the mapping
		"\x1bXY",  // unknown introducer
	}

	for _, input := range inputs {
		kr := newTestKeyReader(input)
		key, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey(%q) returned error: %v", input, err)
		}
		if key != '\x1b' {
			t.Errorf("ReadKey(%q): expected bare escape, got %d", input, key)
		}
	}
}

func TestReadKeyConsumesOneEventPerCall(t *testing.T) {
	kr := newTestKeyReader("a\x1b[Bq")
	want := []int{'a', ARROW_DOWN, 'q'}

	for i, w := range want {
		key, err := kr.ReadKey()
		if err != nil {
			t.Fatalf("ReadKey call %d returned error: %v", i, err)
		}
		if key != w {
			t.Errorf("ReadKey call %d: expected %d, got %d", i, w, key)
		}
	}
}

func TestWithControlKey(t *testing.T) {
	if withControlKey('q') != 0x11 {
		t.Errorf("expected Ctrl-Q to be 0x11, got %#x", withControlKey('q'))
	}
	if withControlKey('l') != 0x0c {
		t.Errorf("expected Ctrl-L to be 0x0c, got %#x", withControlKey('l'))
	}
}
