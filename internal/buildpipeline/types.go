// Package buildpipeline carries progress events from the generate pipeline
// to whoever renders them (the terminal UI, a log, a test).
package buildpipeline

import "time"

// Stage describes a high-level pipeline phase.
type Stage string

const (
	// StageLoad reads and decodes a template file.
	StageLoad Stage = "load"
	// StageCompile tokenizes, trims and emits code.
	StageCompile Stage = "compile"
	// StageWrite writes the generated file.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusCached indicates the result came from the cache.
	StatusCached Status = "cached"
	// StatusSkipped indicates nothing had to be written.
	StatusSkipped Status = "skipped"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Terminal reports whether no further events follow for the file.
func (s Status) Terminal() bool {
	switch s {
	case StatusDone, StatusCached, StatusSkipped, StatusError:
		return true
	}
	return false
}

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}
