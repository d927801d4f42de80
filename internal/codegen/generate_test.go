package codegen_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"transplator/internal/codegen"
	"transplator/internal/lexer"
	"transplator/internal/source"
)

func generate(t *testing.T, name, text string) *codegen.Unit {
	t.Helper()
	unit, err := codegen.Generate(name, text, codegen.Options{})
	if err != nil {
		t.Fatalf("Generate(%q): %v", text, err)
	}
	return unit
}

func TestGenerateBareTemplate(t *testing.T) {
	unit := generate(t, "Test", "foo = {% bar %}")
	want := []string{
		"using System;",
		"",
		"partial class TestTemplate",
		"{",
		"    void RenderCore()",
		"    {",
		`WriteText(@"foo = ");`,
		"WriteValue(bar);",
		"    }",
		"}",
		"",
	}
	got := unit.Lines()
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("lines mismatch:\n got %q\nwant %q", got, want)
	}
	if unit.Name != "Test" {
		t.Errorf("Name = %q", unit.Name)
	}
}

func TestGenerateEmpty(t *testing.T) {
	for _, text := range []string{"", "{%# only a comment %}", "{%# a %}{%# b %}"} {
		unit := generate(t, "X", text)
		if !unit.Empty() || unit.Lines() != nil {
			t.Errorf("Generate(%q) = %q, want empty", text, unit.Text)
		}
		data, err := unit.Bytes()
		if err != nil || data != nil {
			t.Errorf("Bytes() = %v, %v", data, err)
		}
	}
}

func TestGenerateNonBareTemplate(t *testing.T) {
	text := "{% if (x) { %}\nhi {% name %}\n{% } %}"
	unit := generate(t, "T", text)
	want := "if (x) {\n" +
		"WriteText(@\"\nhi \");\n" +
		"WriteValue(name);\n" +
		"WriteText(@\"\n\");\n" +
		"}\n"
	if unit.Text != want {
		t.Fatalf("text:\n got %q\nwant %q", unit.Text, want)
	}
}

func TestGenerateBlocks(t *testing.T) {
	tests := []struct {
		text, want string
	}{
		{"{% var a = 1 %}", "var a = 1;\n"},
		{"{% var a = 1; %}", "var a = 1;\n"},
		{"{% return 42 %}", "return 42;\n"},
		{"{% if (x) Foo() %}", "if (x) Foo();\n"},
		{"{% foreach (var x in xs) %}", "foreach (var x in xs)\n"},
		{"{% } %}{% { %}", "}\n{\n"},
	}
	for _, tt := range tests {
		if got := generate(t, "B", tt.text).Text; got != tt.want {
			t.Errorf("Generate(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestGenerateDropsCommentsAndEmptyText(t *testing.T) {
	text := "a {%# note -%}   {%- v -%}  \n"
	unit := generate(t, "C", text)
	if strings.Contains(unit.Text, "note") {
		t.Fatalf("comment leaked: %q", unit.Text)
	}
	if strings.Count(unit.Text, "WriteText") != 1 {
		t.Fatalf("whitespace-only text must not be written: %q", unit.Text)
	}
	if !strings.Contains(unit.Text, "WriteValue(v);\n") {
		t.Fatalf("missing value: %q", unit.Text)
	}
}

func TestGenerateEscapesQuotes(t *testing.T) {
	unit := generate(t, "Q", `say "hi" {% x %}`)
	if !strings.Contains(unit.Text, `WriteText(@"say ""hi"" ");`) {
		t.Fatalf("quotes not doubled: %q", unit.Text)
	}
}

func TestGenerateSyntaxError(t *testing.T) {
	unit, err := codegen.Generate("E", "ok {% broken", codegen.Options{})
	if unit != nil {
		t.Errorf("expected no unit, got %q", unit.Text)
	}
	var se *lexer.SyntaxError
	if !errors.As(err, &se) || se.Offset != 3 {
		t.Fatalf("expected syntax error at 3, got %v", err)
	}
}

func TestOutputEncoding(t *testing.T) {
	bom := source.UTF8BOM
	unit, err := codegen.Generate("E", "x", codegen.Options{Encoding: &bom})
	if err != nil {
		t.Fatal(err)
	}
	data, err := unit.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, bom.BOM()) {
		t.Fatalf("missing BOM: % x", data[:4])
	}

	plain := generate(t, "E", "x")
	if plain.Encoding != source.UTF8 {
		t.Fatalf("default encoding = %s", plain.Encoding)
	}
	data, err = plain.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("using System;")) {
		t.Fatalf("unexpected prefix: %q", data[:8])
	}
}

func TestGenerateFileKeepsEncoding(t *testing.T) {
	fs := source.NewFileSet()
	raw := append([]byte{0xFF, 0xFE}, []byte("h\x00i\x00")...)
	id := fs.AddVirtual("t.tpl", raw)
	f := fs.Get(id)

	unit, err := codegen.GenerateFile("T", f, codegen.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if unit.Encoding != source.UTF16LE {
		t.Fatalf("encoding = %s, want utf-16le", unit.Encoding)
	}
	if !strings.Contains(unit.Text, `WriteText(@"hi");`) {
		t.Fatalf("text = %q", unit.Text)
	}

	utf8 := source.UTF8
	unit, err = codegen.GenerateFile("T", f, codegen.Options{Encoding: &utf8})
	if err != nil {
		t.Fatal(err)
	}
	if unit.Encoding != source.UTF8 {
		t.Fatalf("override ignored: %s", unit.Encoding)
	}

	if _, err := codegen.GenerateFile("T", nil, codegen.Options{}); err == nil {
		t.Fatal("expected error for nil file")
	}
}
