package lexer

import (
	"io"
	"iter"

	"transplator/internal/token"
)

// Tokenizer splits template text into Text and Code tokens. It is lazy:
// each Next call scans at most one tag. The first syntax error is sticky.
type Tokenizer struct {
	cursor Cursor
	look   *token.Token // 1 элементный буфер для токена
	err    error
}

// New returns a tokenizer positioned at the start of src.
func New(src string) *Tokenizer {
	return &Tokenizer{cursor: NewCursor(src)}
}

// Next returns the next token, io.EOF after the last one, or a
// *SyntaxError for a malformed tag. Tokens come back in source order and
// cover the text without gaps.
func (tz *Tokenizer) Next() (token.Token, error) {
	if tz.look != nil {
		tok := *tz.look
		tz.look = nil
		return tok, nil
	}
	if tz.err != nil {
		return token.Token{}, tz.err
	}
	if tz.cursor.EOF() {
		return token.Token{}, io.EOF
	}

	src := tz.cursor.Src
	off := tz.cursor.Off

	psi := tz.cursor.Find(openDelim, off)
	if psi < 0 {
		// хвост без тегов
		tz.cursor.Seek(len(src))
		return token.Token{Start: off, Length: len(src) - off}, nil
	}
	if psi > off {
		tz.cursor.Seek(psi)
		return token.Token{Start: off, Length: psi - off}, nil
	}

	// the closer is searched from the opener itself, so "{%}" closes early
	// and fails classification as a too-short tag
	pei := tz.cursor.Find(closeDelim, psi)
	if pei < 0 {
		tz.err = unclosedTag(psi)
		return token.Token{}, tz.err
	}
	pei += len(closeDelim)

	traits, err := Classify(src, psi, pei-psi)
	if err != nil {
		tz.err = err
		return token.Token{}, err
	}
	tz.cursor.Seek(pei)
	return token.Token{Traits: traits, Start: psi, Length: pei - psi}, nil
}

// Peek возвращает следующий токен, не потребляя его.
func (tz *Tokenizer) Peek() (token.Token, error) {
	tok, err := tz.Next()
	if err != nil {
		return tok, err
	}
	tz.look = &tok
	return tok, nil
}

// Tokens returns a restartable lazy sequence over src. A syntax error is
// yielded once, as the last element.
func Tokens(src string) iter.Seq2[token.Token, error] {
	return func(yield func(token.Token, error) bool) {
		tz := New(src)
		for {
			tok, err := tz.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				yield(token.Token{}, err)
				return
			}
			if !yield(tok, nil) {
				return
			}
		}
	}
}

// Tokenize collects every token of src. On error no tokens are returned.
func Tokenize(src string) ([]token.Token, error) {
	var tokens []token.Token
	for tok, err := range Tokens(src) {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
