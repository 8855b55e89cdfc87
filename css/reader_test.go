package css

import "testing"

func TestReaderLookahead(t *testing.T) {
	r := newReader([]byte("abcd"))

	if r.current != 'a' || r.peek1 != 'b' || r.peek2 != 'c' || r.peek3 != 'd' {
		t.Errorf("Expected window a b c d, got %q %q %q %q", r.current, r.peek1, r.peek2, r.peek3)
	}

	r.advance()
	if r.current != 'b' || r.peek3 != eof {
		t.Errorf("Expected window to shift, got current %q peek3 %v", r.current, r.peek3)
	}
}

func TestReaderEOFSentinel(t *testing.T) {
	r := newReader([]byte("x"))

	if r.peek1 != eof || r.peek2 != eof || r.peek3 != eof {
		t.Errorf("Expected eof sentinels past the end")
	}
	r.advance()
	if r.current != eof {
		t.Errorf("Expected eof after consuming everything")
	}
	// Advancing at end of stream stays put.
	r.advance()
	if r.current != eof {
		t.Errorf("Expected eof to be sticky")
	}
}

func TestReaderLineColumn(t *testing.T) {
	r := newReader([]byte("ab\ncd"))

	positions := []struct {
		line, column int
	}{
		{1, 1}, // a
		{1, 2}, // b
		{1, 3}, // \n
		{2, 1}, // c
		{2, 2}, // d
	}

	for i, want := range positions {
		if r.line != want.line || r.column != want.column {
			t.Errorf("Code point %d: expected %d:%d, got %d:%d",
				i, want.line, want.column, r.line, r.column)
		}
		r.advance()
	}
}

func TestReaderMultibyte(t *testing.T) {
	r := newReader([]byte("é€😀x"))

	want := []rune{'é', '€', '😀', 'x'}
	for _, c := range want {
		if r.current != c {
			t.Errorf("Expected %q, got %q", c, r.current)
		}
		r.advance()
	}
	if r.current != eof {
		t.Errorf("Expected eof at end")
	}
}

func TestReaderInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"bare continuation", []byte{0x80, 'a'}},
		{"truncated two-byte", []byte{0xc3}},
		{"truncated three-byte", []byte{0xe2, 0x82, 'x'}},
		{"invalid leading byte", []byte{0xff, 'a'}},
		{"overlong", []byte{0xc0, 0xaf}},
		{"surrogate", []byte{0xed, 0xa0, 0x80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newReader(tt.input)
			// Every invalid byte decodes to U+FFFD and advances exactly
			// one byte, so the reader consumes the whole input in at most
			// len(input) steps.
			steps := 0
			for r.current != eof {
				r.advance()
				steps++
				if steps > len(tt.input) {
					t.Fatalf("Reader did not consume %v within %d steps", tt.input, len(tt.input))
				}
			}
		})
	}
}
