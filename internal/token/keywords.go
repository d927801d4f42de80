package token

// Keyword is a statement-introducing word recognised at the start of a tag.
type Keyword uint8

const (
	// NoKeyword means the word is not a statement keyword.
	NoKeyword Keyword = iota
	KwIf
	KwFor
	KwForeach
	KwWhile
	KwDo
	KwUsing
	KwTry
	KwGoto
	KwLock
	KwReturn
	KwThrow
	KwVar
)

// Terminator describes when a keyword statement needs a trailing ';'.
type Terminator uint8

const (
	// TermNever: the statement is never terminated by the emitter (for, do, try, ...).
	TermNever Terminator = iota
	// TermUnlessSemicolon: terminate unless the content already ends in ';'.
	TermUnlessSemicolon
	// TermUnlessBrace: terminate unless the content ends in '}'.
	TermUnlessBrace
)

var keywords = map[string]Keyword{
	"if":      KwIf,
	"for":     KwFor,
	"foreach": KwForeach,
	"while":   KwWhile,
	"do":      KwDo,
	"using":   KwUsing,
	"try":     KwTry,
	"goto":    KwGoto,
	"lock":    KwLock,
	"return":  KwReturn,
	"throw":   KwThrow,
	"var":     KwVar,
}

var keywordNames = [...]string{
	NoKeyword: "",
	KwIf:      "if",
	KwFor:     "for",
	KwForeach: "foreach",
	KwWhile:   "while",
	KwDo:      "do",
	KwUsing:   "using",
	KwTry:     "try",
	KwGoto:    "goto",
	KwLock:    "lock",
	KwReturn:  "return",
	KwThrow:   "throw",
	KwVar:     "var",
}

// LookupKeyword returns the keyword for word. Matching is case-sensitive.
func LookupKeyword(word string) (Keyword, bool) {
	k, ok := keywords[word]
	return k, ok
}

func (k Keyword) String() string {
	if int(k) < len(keywordNames) {
		return keywordNames[k]
	}
	return "invalid"
}

// Terminator reports the trailing-separator rule of the keyword.
func (k Keyword) Terminator() Terminator {
	switch k {
	case KwGoto, KwReturn, KwLock, KwThrow, KwVar:
		return TermUnlessSemicolon
	case KwIf, KwWhile:
		return TermUnlessBrace
	default:
		return TermNever
	}
}

// NeedsSemicolon applies the terminator rule to the last content byte.
func (k Keyword) NeedsSemicolon(last byte) bool {
	switch k.Terminator() {
	case TermUnlessSemicolon:
		return last != ';'
	case TermUnlessBrace:
		return last != '}'
	default:
		return false
	}
}
