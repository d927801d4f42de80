package lexer

import "strings"

// Cursor представляет собой позицию в тексте шаблона
type Cursor struct {
	Src string
	Off int
}

// NewCursor creates a cursor at the start of src.
func NewCursor(src string) Cursor {
	return Cursor{Src: src}
}

// EOF проверяет, достигнут ли конец текста
func (c *Cursor) EOF() bool {
	return c.Off >= len(c.Src)
}

// Find returns the absolute offset of the next occurrence of s at or after
// from, or -1.
func (c *Cursor) Find(s string, from int) int {
	if from > len(c.Src) {
		return -1
	}
	i := strings.Index(c.Src[from:], s)
	if i < 0 {
		return -1
	}
	return from + i
}

// Seek moves the cursor to an absolute offset, clamped to the text.
func (c *Cursor) Seek(off int) {
	c.Off = min(max(off, 0), len(c.Src))
}
