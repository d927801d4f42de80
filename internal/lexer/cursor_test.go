package lexer

import "testing"

func TestCursorFind(t *testing.T) {
	c := NewCursor("ab{%cd%}")
	if got := c.Find(openDelim, 0); got != 2 {
		t.Errorf("Find({%%) = %d, want 2", got)
	}
	if got := c.Find(openDelim, 3); got != -1 {
		t.Errorf("Find from 3 = %d, want -1", got)
	}
	if got := c.Find(closeDelim, 2); got != 6 {
		t.Errorf("Find(%%}) = %d, want 6", got)
	}
	if got := c.Find(closeDelim, 100); got != -1 {
		t.Errorf("Find past end = %d, want -1", got)
	}
}

func TestCursorSeek(t *testing.T) {
	c := NewCursor("abc")
	c.Seek(10)
	if !c.EOF() || c.Off != 3 {
		t.Errorf("Seek past end: off=%d eof=%v", c.Off, c.EOF())
	}
	c.Seek(-1)
	if c.Off != 0 || c.EOF() {
		t.Errorf("Seek before start: off=%d", c.Off)
	}
}

func TestTrimSpace(t *testing.T) {
	s := " \t x y\r\n"
	si, ei := trimSpace(s, 0, len(s))
	if got := s[si:ei]; got != "x y" {
		t.Errorf("trimSpace = %q", got)
	}
	si, ei = trimSpace("   ", 0, 3)
	if si != ei {
		t.Errorf("all-space input should collapse, got [%d,%d)", si, ei)
	}
}
