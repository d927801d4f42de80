package token

import "strings"

// Traits is a bitset describing how a tag trims its neighbours and how its
// content is classified.
type Traits uint16

const (
	// None is the empty trait set; tokens without traits are Text.
	None Traits = 0
	// Expression marks a value-producing tag.
	Expression Traits = 1 << 1
	// TrimLeft ("{%~") trims spaces/tabs before the tag.
	TrimLeft Traits = 1 << 2
	// TrimRight ("~%}") trims spaces/tabs and one line break after the tag.
	TrimRight Traits = 1 << 3
	// TrimLeftGreedy ("{%-") trims all whitespace before the tag.
	TrimLeftGreedy Traits = 1 << 4
	// TrimRightGreedy ("-%}") trims all whitespace after the tag.
	TrimRightGreedy Traits = 1 << 5
	// LeftSpace records that the mandatory inner whitespace after the opener is a space.
	LeftSpace Traits = 1 << 6
	// RightSpace records that the mandatory inner whitespace before the closer is a space.
	RightSpace Traits = 1 << 7
	// Block marks an embedded statement copied verbatim.
	Block Traits = 1 << 8
	// Comment marks a "{%#" tag.
	Comment Traits = 1 << 9
	// NeedsSemicolon asks the emitter to terminate a Block statement.
	NeedsSemicolon Traits = 1 << 10
)

// traitNames lists traits in rendering order.
var traitNames = []struct {
	bit  Traits
	name string
}{
	{Expression, "Expression"},
	{TrimLeft, "TrimLeft"},
	{TrimRight, "TrimRight"},
	{TrimLeftGreedy, "TrimLeftGreedy"},
	{TrimRightGreedy, "TrimRightGreedy"},
	{LeftSpace, "LeftSpace"},
	{RightSpace, "RightSpace"},
	{Block, "Block"},
	{Comment, "Comment"},
	{NeedsSemicolon, "NeedsSemicolon"},
}

// Has reports whether every bit of mask is set.
func (t Traits) Has(mask Traits) bool {
	return t&mask == mask
}

// Any reports whether at least one bit of mask is set.
func (t Traits) Any(mask Traits) bool {
	return t&mask != 0
}

// TrimsLeft reports a "{%-" or "{%~" marker.
func (t Traits) TrimsLeft() bool { return t.Any(TrimLeft | TrimLeftGreedy) }

// TrimsRight reports a "-%}" or "~%}" marker.
func (t Traits) TrimsRight() bool { return t.Any(TrimRight | TrimRightGreedy) }

// IsBlock reports whether the tag is an embedded statement.
func (t Traits) IsBlock() bool { return t.Has(Block) }

// IsExpression reports whether the tag is a value-producing expression.
func (t Traits) IsExpression() bool { return t.Has(Expression) }

// IsComment reports whether the tag is a comment.
func (t Traits) IsComment() bool { return t.Has(Comment) }

// NeedsSemicolon reports whether the emitter must terminate the statement.
func (t Traits) NeedsSemicolon() bool { return t.Has(NeedsSemicolon) }

// Kind derives the token kind from the trait set.
func (t Traits) Kind() Kind {
	switch {
	case t == None:
		return Text
	case t.Has(Comment):
		return CommentKind
	default:
		return Code
	}
}

// Valid checks the structural invariants of a trait set.
func (t Traits) Valid() bool {
	if t == None {
		return true
	}
	if t.Has(TrimLeft|TrimLeftGreedy) || t.Has(TrimRight|TrimRightGreedy) {
		return false
	}
	if t.Has(NeedsSemicolon) && !t.Has(Block) {
		return false
	}
	if t.Has(Comment) {
		return !t.Any(Expression | Block)
	}
	return t.Has(Expression) != t.Has(Block)
}

// String renders the set as "Expression|LeftSpace|RightSpace"; None renders as "None".
func (t Traits) String() string {
	if t == None {
		return "None"
	}
	var parts []string
	for _, tn := range traitNames {
		if t.Has(tn.bit) {
			parts = append(parts, tn.name)
		}
	}
	return strings.Join(parts, "|")
}
