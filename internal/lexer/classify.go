package lexer

import (
	"fmt"

	"transplator/internal/token"
)

// Classify computes the traits of the tag src[start:start+length], which
// must begin with "{%" and end with "%}".
//
// Layout of a tag:
//
//	"{%" [ "-" | "~" ] [ "#" ] WS content WS [ "-" | "~" ] "%}"
//
// where WS is at least one of ' ', '\n', '\r'. Non-comment content ending in
// ';', '}', '{' or starting with '{' is a Block; content starting with a
// literal opener is an Expression; otherwise a leading statement keyword
// makes it a Block and everything else is an Expression.
func Classify(src string, start, length int) (token.Traits, error) {
	fail := func(reason string) (token.Traits, error) {
		return token.None, malformedTag(start, reason)
	}

	if length < token.MinCodeLen {
		return fail(fmt.Sprintf("tag is shorter than %d bytes", token.MinCodeLen))
	}

	si := start + token.DelimiterLen
	ei := start + length - token.DelimiterLen
	var traits token.Traits

	switch src[si] {
	case '-':
		traits |= token.TrimLeftGreedy
		si++
	case '~':
		traits |= token.TrimLeft
		si++
	}
	if si == ei {
		return fail("tag has no content")
	}

	switch src[ei-1] {
	case '-':
		traits |= token.TrimRightGreedy
		ei--
	case '~':
		traits |= token.TrimRight
		ei--
	}
	if si == ei {
		return fail("tag has no content")
	}

	comment := false
	if src[si] == '#' {
		si++
		comment = true
		traits |= token.Comment
	}

	if si == ei {
		return fail("tag has no content")
	}
	if !isTagSpace(src[si]) {
		return fail("missing whitespace after opening delimiter")
	}
	if !isTagSpace(src[ei-1]) {
		return fail("missing whitespace before closing delimiter")
	}
	if src[si] == ' ' {
		traits |= token.LeftSpace
	}
	if src[ei-1] == ' ' {
		traits |= token.RightSpace
	}

	si, ei = trimSpace(src, si, ei)
	if si == ei {
		return fail("tag has no content")
	}
	if comment {
		return traits, nil
	}

	return traits | classifyContent(src[si:ei]), nil
}

// classifyContent decides between Block and Expression for non-empty,
// whitespace-trimmed tag content.
func classifyContent(content string) token.Traits {
	first, last := content[0], content[len(content)-1]

	switch {
	case last == ';' || last == '}' || last == '{' || first == '{':
		return token.Block
	case isLiteralStart(first):
		return token.Expression
	}

	i := 0
	for i < len(content) && isLower(content[i]) {
		i++
	}
	// the keyword must be followed by something that cannot extend it
	if i == len(content) || isIdentContinueAt(content, i) {
		return token.Expression
	}
	kw, ok := token.LookupKeyword(content[:i])
	if !ok {
		return token.Expression
	}
	if kw.NeedsSemicolon(last) {
		return token.Block | token.NeedsSemicolon
	}
	return token.Block
}
