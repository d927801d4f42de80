// Package trim narrows token spans before emission. Text spans shrink
// according to the trim markers of the neighbouring tags; tag spans shrink
// to their inner content.
package trim

import (
	"io"
	"unicode"
	"unicode/utf8"

	"transplator/internal/lexer"
	"transplator/internal/token"
)

// Source yields tokens in order and io.EOF at the end. *lexer.Tokenizer
// satisfies it.
type Source interface {
	Next() (token.Token, error)
}

// Span is a token together with the bounds of the text the emitter uses.
// Start == End means nothing of the token survives.
type Span struct {
	Token token.Token
	Start int
	End   int
}

// Text returns the trimmed text.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// Empty reports whether trimming removed the whole span.
func (s Span) Empty() bool {
	return s.Start >= s.End
}

// Trimmer walks a token source once, remembering the previous tag's
// traits and holding one token of lookahead.
type Trimmer struct {
	src  Source
	text string

	prev    token.Traits // трейты предыдущего тега
	look    token.Token
	hasLook bool
	err     error
}

// New returns a trimmer over tokens of text.
func New(src Source, text string) *Trimmer {
	return &Trimmer{src: src, text: text}
}

// Next returns the next span, io.EOF when the source is exhausted, or the
// source's error.
func (t *Trimmer) Next() (Span, error) {
	tok, err := t.pull()
	if err != nil {
		return Span{}, err
	}

	if tok.Kind() != token.Text {
		t.prev = tok.Traits
		start, end := tok.Extents()
		return Span{Token: tok, Start: start, End: end}, nil
	}

	start, end := tok.Start, tok.End()
	switch {
	case t.prev.Has(token.TrimRightGreedy):
		start = skipSpaceForward(t.text, start, end)
	case t.prev.Has(token.TrimRight):
		start = skipLineForward(t.text, start, end)
	}
	t.prev = token.None

	// ошибка lookahead всплывёт на следующем вызове Next
	if next, err := t.peek(); err == nil {
		switch {
		case next.Has(token.TrimLeftGreedy):
			end = skipSpaceBackward(t.text, start, end)
		case next.Has(token.TrimLeft):
			end = skipBlankBackward(t.text, start, end)
		}
	}
	return Span{Token: tok, Start: start, End: end}, nil
}

func (t *Trimmer) pull() (token.Token, error) {
	if t.hasLook {
		t.hasLook = false
		return t.look, nil
	}
	if t.err != nil {
		return token.Token{}, t.err
	}
	tok, err := t.src.Next()
	if err != nil {
		t.err = err
	}
	return tok, err
}

func (t *Trimmer) peek() (token.Token, error) {
	if t.hasLook {
		return t.look, nil
	}
	tok, err := t.pull()
	if err != nil {
		return tok, err
	}
	t.look, t.hasLook = tok, true
	return tok, nil
}

// All trims an already tokenized text.
func All(tokens []token.Token, text string) []Span {
	tr := New(&sliceSource{tokens: tokens}, text)
	spans := make([]Span, 0, len(tokens))
	for {
		sp, err := tr.Next()
		if err != nil {
			return spans
		}
		spans = append(spans, sp)
	}
}

// Text tokenizes and trims src. A syntax error yields no spans.
func Text(src string) ([]Span, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return All(tokens, src), nil
}

type sliceSource struct {
	tokens []token.Token
	pos    int
}

func (s *sliceSource) Next() (token.Token, error) {
	if s.pos >= len(s.tokens) {
		return token.Token{}, io.EOF
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, nil
}

// skipSpaceForward skips all Unicode whitespace ("-%}").
func skipSpaceForward(s string, i, end int) int {
	for i < end {
		r, sz := utf8.DecodeRuneInString(s[i:end])
		if !unicode.IsSpace(r) {
			break
		}
		i += sz
	}
	return i
}

// skipSpaceBackward skips all Unicode whitespace ("{%-").
func skipSpaceBackward(s string, start, i int) int {
	for i > start {
		r, sz := utf8.DecodeLastRuneInString(s[start:i])
		if !unicode.IsSpace(r) {
			break
		}
		i -= sz
	}
	return i
}

// skipLineForward skips spaces and tabs, then one '\r', then one '\n' ("~%}").
func skipLineForward(s string, i, end int) int {
	for i < end && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	if i < end && s[i] == '\r' {
		i++
	}
	if i < end && s[i] == '\n' {
		i++
	}
	return i
}

// skipBlankBackward skips spaces and tabs only ("{%~").
func skipBlankBackward(s string, start, i int) int {
	for i > start && (s[i-1] == ' ' || s[i-1] == '\t') {
		i--
	}
	return i
}
