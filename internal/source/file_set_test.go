package source

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("hello.tpl", []byte("hello world"), 0, UTF8)
	id2 := fs.Add("hello.tpl", []byte("hello universe"), 0, UTF8)
	if id1 != 0 || id2 != 1 {
		t.Fatalf("expected ids 0 and 1, got %d and %d", id1, id2)
	}

	latest, ok := fs.GetByPath("hello.tpl")
	if !ok {
		t.Fatal("expected file to be indexed by path")
	}
	if latest.ID != id2 {
		t.Errorf("expected latest id %d, got %d", id2, latest.ID)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("first version content = %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.tpl", []byte("a\nb\n"))
	file := fs.Get(id)

	expected := []uint32{1, 3}
	if len(file.LineIdx) != len(expected) {
		t.Fatalf("expected LineIdx length %d, got %d", len(expected), len(file.LineIdx))
	}
	for i, val := range expected {
		if file.LineIdx[i] != val {
			t.Errorf("LineIdx[%d] = %d, want %d", i, file.LineIdx[i], val)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	if file.Encoding != UTF8 {
		t.Errorf("expected utf-8 for BOM-less input, got %s", file.Encoding)
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("r.tpl", []byte("ab\ncd\r\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}},
		{3, LineCol{2, 1}},
		{5, LineCol{2, 3}},
		{7, LineCol{3, 1}},
		{9, LineCol{3, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("l.tpl", []byte("one\r\ntwo\nthree")))

	for i, want := range []string{"", "one", "two", "three", ""} {
		if got := f.GetLine(uint32(i)); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestLoadKeepsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.tpl")
	if err := os.WriteFile(path, []byte("a\r\nb"), 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := fs.Get(id).Text(); got != "a\r\nb" {
		t.Fatalf("content = %q, want CRLF preserved", got)
	}
}

func TestLoadStripsBOM(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.tpl")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, "hi {% x %}"...)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatal(err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if !bytes.Equal(f.Content, []byte("hi {% x %}")) {
		t.Errorf("content = %q", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM")
	}
	if f.Encoding != UTF8BOM {
		t.Errorf("encoding = %s, want utf-8-bom", f.Encoding)
	}
}

func TestSpanOf(t *testing.T) {
	if got := SpanOf(3, -1, 10); got != (Span{File: 3}) {
		t.Errorf("negative offset: got %+v", got)
	}
	if got := SpanOf(1, 4, 2); got != (Span{File: 1, Start: 4, End: 4}) {
		t.Errorf("inverted span: got %+v", got)
	}
	if got := SpanOf(0, 2, 6); got.Len() != 4 {
		t.Errorf("Len = %d, want 4", got.Len())
	}
}

func TestRelativePath(t *testing.T) {
	tmp := t.TempDir()
	base := filepath.Join(tmp, "base")

	inside := filepath.Join(base, "nested", "file.tpl")
	if got, want := RelativePath(inside, base), "nested/file.tpl"; got != want {
		t.Errorf("inside: got %q, want %q", got, want)
	}

	outside := filepath.Join(tmp, "other", "file.tpl")
	if got, want := RelativePath(outside, base), normalizePath(outside); got != want {
		t.Errorf("outside: got %q, want %q", got, want)
	}
}
