package lexer

import (
	"unicode"
	"unicode/utf8"
)

const (
	openDelim  = "{%"
	closeDelim = "%}"
)

// isTagSpace reports the bytes accepted as mandatory inner whitespace.
func isTagSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r'
}

// isLiteralStart reports bytes that open an expression without further analysis.
func isLiteralStart(b byte) bool {
	switch b {
	case '@', '"', '\'', '(', '+', '-', '*':
		return true
	}
	return isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isLower(b byte) bool { return b >= 'a' && b <= 'z' }

// isIdentContinueAt checks the rune starting at s[i].
func isIdentContinueAt(s string, i int) bool {
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trimSpace narrows [si, ei) past leading and trailing Unicode whitespace.
func trimSpace(s string, si, ei int) (int, int) {
	for si < ei {
		r, sz := utf8.DecodeRuneInString(s[si:ei])
		if !unicode.IsSpace(r) {
			break
		}
		si += sz
	}
	for ei > si {
		r, sz := utf8.DecodeLastRuneInString(s[si:ei])
		if !unicode.IsSpace(r) {
			break
		}
		ei -= sz
	}
	return si, ei
}
