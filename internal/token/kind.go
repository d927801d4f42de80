package token

// Kind represents the category of a template token.
type Kind uint8

const (
	// Text is literal template text copied to the output.
	Text Kind = iota
	// Code is a tag holding an expression or a statement.
	Code
	// CommentKind is a tag whose content is discarded. The suffix keeps it
	// apart from the Comment trait.
	CommentKind
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Code:
		return "Code"
	case CommentKind:
		return "Comment"
	default:
		return "Invalid"
	}
}
