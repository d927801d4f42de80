package token

import "fmt"

// DelimiterLen is the byte length of "{%" and "%}".
const DelimiterLen = 2

// MinCodeLen is the shortest well-formed tag: both delimiters plus one
// whitespace byte on each inner side.
const MinCodeLen = 2*DelimiterLen + 2

// Token is a classified span over template text.
type Token struct {
	Traits Traits
	Start  int
	Length int
}

// Kind returns the kind derived from the token's traits.
func (t Token) Kind() Kind { return t.Traits.Kind() }

// End returns the exclusive end offset.
func (t Token) End() int { return t.Start + t.Length }

// Has reports whether all of the given traits are set.
func (t Token) Has(mask Traits) bool { return t.Traits.Has(mask) }

// Substring returns the full token text, delimiters included.
func (t Token) Substring(src string) string {
	return src[t.Start:t.End()]
}

// Extents returns the bounds of the token's semantic text. Text tokens
// report their own bounds; tags drop the delimiters and one byte for every
// marker, mandatory space and comment sign recorded in the traits.
// A mandatory '\n' or '\r' is kept as part of the content.
func (t Token) Extents() (start, end int) {
	if t.Kind() == Text {
		return t.Start, t.End()
	}

	start = t.Start + DelimiterLen
	if t.Traits.TrimsLeft() {
		start++
	}
	if t.Has(LeftSpace) {
		start++
	}
	if t.Has(Comment) {
		start++
	}

	end = t.End() - DelimiterLen
	if t.Traits.TrimsRight() {
		end--
	}
	if t.Has(RightSpace) {
		end--
	}
	return start, end
}

// InnerText returns the text between Extents.
func (t Token) InnerText(src string) string {
	start, end := t.Extents()
	return src[start:end]
}

func (t Token) String() string {
	return fmt.Sprintf("%s [%d..%d) { %s }", t.Kind(), t.Start, t.End(), t.Traits)
}
