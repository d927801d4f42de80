package driver

import (
	"path/filepath"
	"testing"

	"transplator/internal/diag"
	"transplator/internal/token"
)

func TestTokenize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.tpl")
	writeFile(t, path, "foo = {% bar %}\n")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %+v", res.Bag.Items())
	}
	if len(res.Tokens) != 3 || len(res.Spans) != 3 {
		t.Fatalf("tokens=%d spans=%d, want 3", len(res.Tokens), len(res.Spans))
	}
	if res.Tokens[1].Kind() != token.Code {
		t.Errorf("token 1 kind = %v", res.Tokens[1].Kind())
	}
	if got := res.Spans[1].Text(res.File.Text()); got != "bar" {
		t.Errorf("span text = %q", got)
	}
}

func TestTokenizeSyntaxError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.tpl")
	writeFile(t, path, "abc\n{% x")

	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.TplSyntax {
		t.Fatalf("diagnostics = %+v", items)
	}
	if items[0].Primary.Start != 4 || items[0].Primary.End != 6 {
		t.Errorf("span = %v", items[0].Primary)
	}
	if res.Tokens != nil || res.Spans != nil {
		t.Error("tokens returned alongside a syntax error")
	}
}

func TestTokenizeMissingFile(t *testing.T) {
	if _, err := Tokenize(filepath.Join(t.TempDir(), "nope.tpl"), 0); err == nil {
		t.Fatal("expected error")
	}
}
