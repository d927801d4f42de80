package main

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"transplator/internal/buildpipeline"
)

func TestPickProgressView(t *testing.T) {
	cases := []struct {
		ui      string
		quiet   bool
		format  string
		tty     bool
		want    progressView
		wantErr bool
	}{
		{"", false, "pretty", true, viewTUI, false},
		{"AUTO", false, "pretty", false, viewLog, false},
		{" on ", false, "pretty", false, viewTUI, false},
		{"off", false, "pretty", true, viewLog, false},
		{"auto", true, "pretty", true, viewSilent, false},
		{"auto", false, "json", true, viewLog, false},
		{"on", false, "short", true, viewSilent, true},
		{"maybe", false, "pretty", true, viewSilent, true},
	}
	for _, tc := range cases {
		got, err := pickProgressView(tc.ui, tc.quiet, tc.format, tc.tty)
		if (err != nil) != tc.wantErr {
			t.Fatalf("pickProgressView(%q, %v, %q) error = %v", tc.ui, tc.quiet, tc.format, err)
		}
		if got != tc.want {
			t.Fatalf("pickProgressView(%q, %v, %q) = %v, want %v", tc.ui, tc.quiet, tc.format, got, tc.want)
		}
	}
}

func TestLogProgress(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := logProgress(l)
	sink.OnEvent(buildpipeline.Event{File: "a.tpl", Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusQueued})
	sink.OnEvent(buildpipeline.Event{File: "a.tpl", Stage: buildpipeline.StageWrite, Status: buildpipeline.StatusDone})
	sink.OnEvent(buildpipeline.Event{File: "b.tpl", Stage: buildpipeline.StageCompile, Status: buildpipeline.StatusError, Err: errors.New("boom")})

	out := buf.String()
	if strings.Contains(out, "queued") {
		t.Errorf("non-terminal event logged: %s", out)
	}
	if !strings.Contains(out, "template finished") || !strings.Contains(out, "file=a.tpl") {
		t.Errorf("done event missing: %s", out)
	}
	if !strings.Contains(out, "template failed") || !strings.Contains(out, "err=boom") {
		t.Errorf("error event missing: %s", out)
	}
}

func TestValidateDiagFormat(t *testing.T) {
	for _, ok := range []string{"pretty", "json", "short"} {
		if err := validateDiagFormat(ok); err != nil {
			t.Errorf("validateDiagFormat(%q) = %v", ok, err)
		}
	}
	if err := validateDiagFormat("sarif"); err == nil {
		t.Error("expected error for sarif")
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitThenGenerate(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	if _, err := execute(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "transplator.toml")); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "generate", "--ui", "off", "--color", "off", dir)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(out, "1 templates: 1 written") {
		t.Errorf("summary = %q", out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "generated", "Hello.cs"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "partial class HelloTemplate") {
		t.Errorf("Hello.cs = %s", data)
	}

	// шаблон с ошибкой валит check, но не generate остальных
	bad := filepath.Join(dir, "templates", "Broken.tpl")
	if err := os.WriteFile(bad, []byte("x {% y"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "check", "--format", "short", dir); !errors.Is(err, errDiagnostics) {
		t.Fatalf("check err = %v, want errDiagnostics", err)
	}
}

func TestGenerateClearCache(t *testing.T) {
	dir := t.TempDir()
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Cleanup(func() {
		_ = generateCmd.Flags().Set("clear-cache", "false")
		_ = generateCmd.Flags().Set("no-cache", "false")
	})

	if _, err := execute(t, "init", dir); err != nil {
		t.Fatalf("init: %v", err)
	}
	units := filepath.Join(cacheHome, "transplator", "units")
	if err := os.MkdirAll(units, 0o755); err != nil {
		t.Fatal(err)
	}
	stale := filepath.Join(units, "stale.mp")
	if err := os.WriteFile(stale, []byte("junk"), 0o600); err != nil {
		t.Fatal(err)
	}

	// --no-cache не мешает очистке
	if _, err := execute(t, "generate", "--ui", "off", "--no-cache", "--clear-cache", dir); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := os.Stat(stale); !os.IsNotExist(err) {
		t.Fatalf("stale unit still present: %v", err)
	}
}
