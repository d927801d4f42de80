// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"

	"transplator/internal/token"
	"transplator/internal/trim"
)

// CheckPartition verifies that tokens cover src exactly once:
// 1) every token is non-empty and starts where the previous one ended
// 2) tags are at least token.MinCodeLen bytes long
// 3) the last token ends at len(src)
func CheckPartition(tokens []token.Token, src string) error {
	pos := 0
	for i, tok := range tokens {
		if tok.Length <= 0 {
			return fmt.Errorf("token %d is empty: %v", i, tok)
		}
		if tok.Start != pos {
			return fmt.Errorf("token %d starts at %d, want %d", i, tok.Start, pos)
		}
		if tok.Kind() != token.Text && tok.Length < token.MinCodeLen {
			return fmt.Errorf("tag %d shorter than %d bytes: %v", i, token.MinCodeLen, tok)
		}
		if !tok.Traits.Valid() {
			return fmt.Errorf("token %d has inconsistent traits: %v", i, tok)
		}
		pos = tok.End()
	}
	if pos != len(src) {
		return fmt.Errorf("tokens end at %d, input has %d bytes", pos, len(src))
	}
	return nil
}

// CheckSpans verifies that every trimmed span lies inside its token and
// that tags keep their inner text untouched.
func CheckSpans(spans []trim.Span, src string) error {
	for i, sp := range spans {
		if sp.Start < sp.Token.Start || sp.End > sp.Token.End() || sp.Start > sp.End {
			return fmt.Errorf("span %d [%d,%d) escapes token %v", i, sp.Start, sp.End, sp.Token)
		}
		if sp.Token.Kind() != token.Text {
			if got, want := sp.Text(src), sp.Token.InnerText(src); got != want {
				return fmt.Errorf("span %d text %q differs from inner text %q", i, got, want)
			}
		}
	}
	return nil
}
