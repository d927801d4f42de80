package main

import (
	"fmt"
	"log/slog"
	"strings"

	"transplator/internal/buildpipeline"
)

// progressView решает, куда уходят события генерации.
type progressView int

const (
	// viewSilent: --quiet, событий никто не ждёт.
	viewSilent progressView = iota
	// viewLog пишет завершённые шаблоны в debug-лог.
	viewLog
	// viewTUI рисует прогресс bubbletea.
	viewTUI
)

func (v progressView) String() string {
	switch v {
	case viewLog:
		return "log"
	case viewTUI:
		return "tui"
	default:
		return "silent"
	}
}

// pickProgressView maps --ui, --quiet and --format onto a view. The TUI
// shares stdout with diagnostics, so only the pretty format may use it.
func pickProgressView(ui string, quiet bool, format string, tty bool) (progressView, error) {
	ui = strings.TrimSpace(strings.ToLower(ui))
	switch ui {
	case "", "auto", "on", "off":
	default:
		return viewSilent, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", ui)
	}
	if quiet {
		return viewSilent, nil
	}
	if format != "pretty" {
		if ui == "on" {
			return viewSilent, fmt.Errorf("--ui on needs --format pretty, got %q", format)
		}
		return viewLog, nil
	}
	switch ui {
	case "on":
		return viewTUI, nil
	case "off":
		return viewLog, nil
	}
	if tty {
		return viewTUI, nil
	}
	return viewLog, nil
}

// logProgress turns terminal pipeline events into debug records.
func logProgress(l *slog.Logger) buildpipeline.ProgressSink {
	return buildpipeline.FuncSink(func(evt buildpipeline.Event) {
		if !evt.Status.Terminal() {
			return
		}
		if evt.Err != nil {
			l.Debug("template failed", "file", evt.File, "stage", string(evt.Stage), "err", evt.Err)
			return
		}
		l.Debug("template finished", "file", evt.File, "stage", string(evt.Stage), "status", string(evt.Status), "elapsed", evt.Elapsed)
	})
}
