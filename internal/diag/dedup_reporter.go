package diag

import "transplator/internal/source"

// Один DedupReporter живёт ровно один шаблон, поэтому файл в ключ не входит.
type dedupKey struct {
	code       Code
	sev        Severity
	start, end uint32
	msg        string
}

// DedupReporter forwards each distinct diagnostic of a single template once
// and counts the repeats it drops.
type DedupReporter struct {
	next       Reporter
	seen       map[dedupKey]struct{}
	suppressed int
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[dedupKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil {
		return
	}
	key := dedupKey{code: code, sev: sev, start: primary.Start, end: primary.End, msg: msg}
	if _, dup := r.seen[key]; dup {
		r.suppressed++
		return
	}
	r.seen[key] = struct{}{}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes)
	}
}

// Suppressed returns how many repeats were dropped so far.
func (r *DedupReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}
