package source

import (
	"fmt"

	"fortio.org/safecast"
)

// Span is a half-open byte range [Start, End) inside one file.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// SpanOf builds a span from int offsets as produced by the tokenizer.
// Negative offsets collapse to an empty span at the start of the file.
func SpanOf(file FileID, start, end int) Span {
	if start < 0 {
		return Span{File: file}
	}
	if end < start {
		end = start
	}
	s, err := safecast.Conv[uint32](start)
	if err != nil {
		panic(fmt.Errorf("span start overflow: %w", err))
	}
	e, err := safecast.Conv[uint32](end)
	if err != nil {
		panic(fmt.Errorf("span end overflow: %w", err))
	}
	return Span{File: file, Start: s, End: e}
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d-%d", s.File, s.Start, s.End)
}

// Cover returns the smallest span containing both s and other.
// Spans from different files are not merged.
func (s Span) Cover(other Span) Span {
	if s.File != other.File {
		return s
	}
	if other.Start < s.Start {
		s.Start = other.Start
	}
	if other.End > s.End {
		s.End = other.End
	}
	return s
}

// Clamp limits the span to [0, limit).
func (s Span) Clamp(limit uint32) Span {
	if s.Start > limit {
		s.Start = limit
	}
	if s.End > limit {
		s.End = limit
	}
	return s
}
