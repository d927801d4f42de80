package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"transplator/internal/source"
	"transplator/internal/trim"
)

func TestJSON(t *testing.T) {
	bag, fs := sampleBag(t)
	var buf bytes.Buffer
	if err := JSON(&buf, bag, fs, JSONOpts{IncludePositions: true, PathMode: PathModeBasename, IncludeNotes: true}); err != nil {
		t.Fatal(err)
	}

	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d", out.Count)
	}
	d := out.Diagnostics[0]
	if out.Errors != 1 || out.Truncated {
		t.Errorf("errors = %d truncated = %v", out.Errors, out.Truncated)
	}
	if d.Code != "TPR001" || d.Severity != "ERROR" || d.Title != "Syntax error" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Location.File != "page.tpl" || d.Location.StartLine != 2 || d.Location.StartCol != 5 || d.Location.StartByte != 8 {
		t.Errorf("location = %+v", d.Location)
	}
	if len(d.Notes) != 1 {
		t.Errorf("notes = %+v", d.Notes)
	}
}

func TestJSONWithoutPositions(t *testing.T) {
	bag, fs := sampleBag(t)
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{PathMode: PathModeBasename})
	loc := out.Diagnostics[0].Location
	if loc.StartLine != 0 || loc.EndCol != 0 {
		t.Errorf("positions leaked: %+v", loc)
	}
	if out.Diagnostics[0].Notes != nil {
		t.Errorf("notes leaked")
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	src := "a {%- b -%}\nc"
	f := fs.Get(fs.AddVirtual("t.tpl", []byte(src)))
	spans, err := trim.Text(src)
	if err != nil {
		t.Fatal(err)
	}

	var pretty bytes.Buffer
	if err := FormatTokensPretty(&pretty, f, fs, spans); err != nil {
		t.Fatal(err)
	}
	want := "  1: Text     [0..2) at 1:1 \"a \" -> \"a\"\n" +
		"  2: Code     [2..11) at 1:3 \"{%- b -%}\" { Expression|TrimLeftGreedy|TrimRightGreedy|LeftSpace|RightSpace } -> \"b\"\n" +
		"  3: Text     [11..13) at 1:12 \"\\nc\" -> \"c\"\n"
	if pretty.String() != want {
		t.Fatalf("pretty tokens:\n got %q\nwant %q", pretty.String(), want)
	}

	var js bytes.Buffer
	if err := FormatTokensJSON(&js, f, fs, spans); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(js.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[1].Inner != "b" || out[2].Line != 1 || out[2].Col != 12 {
		t.Fatalf("json tokens = %+v", out)
	}
}
