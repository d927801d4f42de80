package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"":      slog.LevelInfo,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, level, err := New(Options{Writer: &buf, Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "template", "a.tpl")
	level.Set(slog.LevelDebug)
	logger.Debug("now visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info leaked at warn level:\n%s", out)
	}
	if !strings.Contains(out, "template=a.tpl") || !strings.Contains(out, "now visible") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Writer: &buf, Format: "json"})
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("generated", "count", 3)

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("not JSON: %v\n%s", err, buf.String())
	}
	if rec["msg"] != "generated" || rec["count"] != float64(3) {
		t.Errorf("record = %v", rec)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, _, err := New(Options{Writer: &bytes.Buffer{}, Format: "xml"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestToJournalKey(t *testing.T) {
	if got := toJournalKey("template.path-1"); got != "TEMPLATE_PATH_1" {
		t.Fatalf("got %q", got)
	}
}

func TestDiscard(t *testing.T) {
	Discard().Error("nothing")
}
