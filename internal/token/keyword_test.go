package token

import "testing"

func TestLookupKeyword_Positive(t *testing.T) {
	cases := map[string]Keyword{
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
	for lexeme, want := range cases {
		got, ok := LookupKeyword(lexeme)
		if !ok {
			t.Fatalf("LookupKeyword(%q) = !ok, want %v", lexeme, want)
		}
		if got != want {
			t.Fatalf("LookupKeyword(%q) = %v, want %v", lexeme, got, want)
		}
		if got.String() != lexeme {
			t.Fatalf("%v.String() = %q", got, got.String())
		}
	}
}

func TestLookupKeyword_Negative(t *testing.T) {
	for _, s := range []string{"If", "VAR", "else", "switch", "checked", "new", ""} {
		if _, ok := LookupKeyword(s); ok {
			t.Fatalf("LookupKeyword(%q) returned ok=true, want false", s)
		}
	}
}

func TestKeywordNeedsSemicolon(t *testing.T) {
	tests := []struct {
		kw   Keyword
		last byte
		want bool
	}{
		{KwVar, '1', true},
		{KwVar, ';', false},
		{KwReturn, '2', true},
		{KwThrow, ')', true},
		{KwGoto, ';', false},
		{KwLock, ')', true},
		{KwIf, ')', true},
		{KwIf, '}', false},
		{KwWhile, ';', true},
		{KwFor, ')', false},
		{KwForeach, ')', false},
		{KwDo, 'o', false},
		{KwTry, 'y', false},
		{KwUsing, ')', false},
	}
	for _, tt := range tests {
		if got := tt.kw.NeedsSemicolon(tt.last); got != tt.want {
			t.Errorf("%v.NeedsSemicolon(%q) = %v, want %v", tt.kw, tt.last, got, tt.want)
		}
	}
}
