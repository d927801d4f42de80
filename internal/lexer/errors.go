package lexer

import "fmt"

// SyntaxError reports a malformed tag. Offset is the byte offset of the
// offending tag's opening delimiter, or -1 when no position is known.
type SyntaxError struct {
	Offset  int
	Message string
}

// NewSyntaxError clamps offset to -1 and fills in a default message.
func NewSyntaxError(offset int, msg string) *SyntaxError {
	offset = max(offset, -1)
	if msg == "" {
		if offset >= 0 {
			msg = fmt.Sprintf("syntax error at offset %d", offset)
		} else {
			msg = "syntax error"
		}
	}
	return &SyntaxError{Offset: offset, Message: msg}
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func unclosedTag(offset int) *SyntaxError {
	return NewSyntaxError(offset, fmt.Sprintf("invalid template syntax: tag starting at offset %d is not closed", offset))
}

func malformedTag(offset int, reason string) *SyntaxError {
	return NewSyntaxError(offset, fmt.Sprintf("syntax error in tag starting at offset %d: %s", offset, reason))
}
