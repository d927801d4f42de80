package trim_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"transplator/internal/lexer"
	"transplator/internal/token"
	"transplator/internal/trim"
)

// render joins trimmed text with the untouched tag text.
func render(t *testing.T, src string) string {
	t.Helper()
	spans, err := trim.Text(src)
	if err != nil {
		t.Fatalf("trim.Text(%q): %v", src, err)
	}
	var sb strings.Builder
	for _, sp := range spans {
		if sp.Token.Kind() == token.Text {
			sb.WriteString(sp.Text(src))
		} else {
			sb.WriteString(sp.Token.Substring(src))
		}
	}
	return sb.String()
}

func TestTrimming(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"{% foo %}", "{% foo %}"},
		{"bar", "bar"},
		{"{% foo %} \t bar \t {% baz %}", "{% foo %} \t bar \t {% baz %}"},
		{"{% foo -%}{% foo %} \t bar \t {% baz %}{%- baz %}", "{% foo -%}{% foo %} \t bar \t {% baz %}{%- baz %}"},
		{"{% foo -%} \t bar \t {% baz %}", "{% foo -%}bar \t {% baz %}"},
		{"{% foo %} \t bar \t {%- baz %}", "{% foo %} \t bar{%- baz %}"},
		{"{% foo -%} \t bar \t {%- baz %}", "{% foo -%}bar{%- baz %}"},
		{"{% foo ~%} \t \n bar \n \t {%~ baz %}", "{% foo ~%} bar \n{%~ baz %}"},
		{"{% foo ~%} \t \r\n bar \r\n \t {%~ baz %}", "{% foo ~%} bar \r\n{%~ baz %}"},
		{"{% foo ~%} \t \r bar \r \t {%~ baz %}", "{% foo ~%} bar \r{%~ baz %}"},
		{"\r\n \t{%- foo -%}\r\n \t", "{%- foo -%}"},
		// "~%}" swallows one line break but not the indentation after it
		{"\t \r\n{%~ foo ~%}\r\n \t", "\t \r\n{%~ foo ~%} \t"},
		{"{% a ~%}\n\nx", "{% a ~%}\nx"},
		{"x\u00a0{%- a -%}\u2003y", "x{%- a -%}y"},
		{"{%# c -%}  z", "{%# c -%}z"},
	}
	for _, tt := range tests {
		if got := render(t, tt.src); got != tt.want {
			t.Errorf("trim %q:\n got %q\nwant %q", tt.src, got, tt.want)
		}
	}
}

func TestTagSpansUseInnerText(t *testing.T) {
	src := "a {%- b -%} c {%# d %}"
	spans, err := trim.Text(src)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, sp := range spans {
		got = append(got, sp.Text(src))
	}
	want := []string{"a", "b", "c ", "d"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("spans = %q, want %q", got, want)
	}
	if spans[3].Token.Kind() != token.CommentKind {
		t.Fatalf("comment tokens must not be filtered, got %v", spans[3].Token)
	}
}

func TestWhitespaceOnlyTextBecomesEmpty(t *testing.T) {
	src := "{% a -%} \n\t {%- b %}"
	spans, err := trim.Text(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(spans) != 3 || !spans[1].Empty() {
		t.Fatalf("spans = %+v", spans)
	}
}

func TestTrimmerPropagatesSyntaxError(t *testing.T) {
	src := "text {% ok %} more {% broken"
	tr := trim.New(lexer.New(src), src)

	var kinds []token.Kind
	var err error
	for {
		var sp trim.Span
		sp, err = tr.Next()
		if err != nil {
			break
		}
		kinds = append(kinds, sp.Token.Kind())
	}
	var se *lexer.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("expected *lexer.SyntaxError, got %v", err)
	}
	if se.Offset != 19 {
		t.Errorf("offset = %d, want 19", se.Offset)
	}
	if len(kinds) != 3 {
		t.Errorf("spans before the error = %v", kinds)
	}
}

func TestTrimmerEOF(t *testing.T) {
	tr := trim.New(lexer.New(""), "")
	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("EOF must be sticky, got %v", err)
	}
}

func TestAllMatchesStreaming(t *testing.T) {
	src := "x {%~ a ~%}\n  y {%- b -%} z"
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatal(err)
	}
	all := trim.All(tokens, src)
	streamed, err := trim.Text(src)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != len(streamed) {
		t.Fatalf("len %d vs %d", len(all), len(streamed))
	}
	for i := range all {
		if all[i] != streamed[i] {
			t.Errorf("span %d: %+v vs %+v", i, all[i], streamed[i])
		}
	}
}
