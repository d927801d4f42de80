// Package logs builds the process logger: a text or JSON handler on the
// terminal, optionally fanned out to the systemd journal.
package logs

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	slogmulti "github.com/samber/slog-multi"
	slogjournal "github.com/systemd/slog-journal"
)

// Options configures New.
type Options struct {
	Writer  io.Writer
	Level   string // debug|info|warn|error
	Format  string // text|json
	Journal bool
}

// ParseLevel maps a level name to slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", name)
}

// New builds a logger. The returned LevelVar can raise or lower the level
// after construction. A journal that cannot be opened is reported through
// the terminal handler and skipped.
func New(opts Options) (*slog.Logger, *slog.LevelVar, error) {
	level := new(slog.LevelVar)
	lv, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	level.Set(lv)

	hopts := &slog.HandlerOptions{Level: level}
	var terminal slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		terminal = slog.NewTextHandler(opts.Writer, hopts)
	case "json":
		terminal = slog.NewJSONHandler(opts.Writer, hopts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q (expected text|json)", opts.Format)
	}

	handlers := []slog.Handler{terminal}
	if opts.Journal {
		journal, err := slogjournal.NewHandler(&slogjournal.Options{
			Level: level,
			ReplaceGroup: func(key string) string {
				return toJournalKey(key)
			},
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				a.Key = toJournalKey(a.Key)
				return a
			},
		})
		if err != nil {
			record := slog.NewRecord(time.Now(), slog.LevelWarn, "systemd journal unavailable", 0)
			record.Add("error", err)
			_ = terminal.Handle(context.Background(), record)
		} else {
			handlers = append(handlers, journal)
		}
	}

	return slog.New(slogmulti.Fanout(handlers...)), level, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// toJournalKey upper-cases a key and replaces everything outside [A-Z0-9]
// with '_', as journald field names require.
func toJournalKey(str string) string {
	str = strings.ToUpper(str)
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' ||
			r >= '0' && r <= '9' {
			return r
		}
		return '_'
	}, str)
}
