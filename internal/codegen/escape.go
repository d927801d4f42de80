package codegen

import "strings"

// EscapeLiteral prepares text for a verbatim string literal (@"...") by
// doubling every quote.
func EscapeLiteral(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// UnescapeLiteral reverses EscapeLiteral.
func UnescapeLiteral(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}
