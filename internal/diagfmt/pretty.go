package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"transplator/internal/diag"
	"transplator/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgCyan, color.Bold),
		note:   mk(color.FgBlue),
		gutter: mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgGreen, color.Bold),
		bold:   mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	for i, d := range items {
		if i > 0 {
			fmt.Fprintln(w)
		}
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
			pal.bold.Sprint(formatPath(f, fs, opts.PathMode)),
			start.Line, start.Col,
			pal.severity(d.Severity).Sprint(d.Severity.String()),
			d.Code.ID(),
			d.Message,
		)
		writeSnippet(w, pal, f, fs, d.Primary, opts.Context)

		if !opts.ShowNotes {
			continue
		}
		for _, note := range d.Notes {
			nf := fs.Get(note.Span.File)
			ns, _ := fs.Resolve(note.Span)
			fmt.Fprintf(w, "  %s %s:%d:%d: %s\n",
				pal.note.Sprint("note:"),
				formatPath(nf, fs, opts.PathMode),
				ns.Line, ns.Col, note.Msg)
		}
	}
}

// writeSnippet prints the span's line with optional context and a caret
// line underneath.
func writeSnippet(w io.Writer, pal palette, f *source.File, fs *source.FileSet, span source.Span, context int8) {
	if len(f.Content) == 0 {
		return
	}
	start, end := fs.Resolve(span)
	ctx := uint32(max(context, 0))

	first := uint32(1)
	if start.Line > ctx {
		first = start.Line - ctx
	}
	last := start.Line + ctx
	lastLine := uint32(len(f.LineIdx) + 1)
	last = min(last, lastLine)

	gw := len(fmt.Sprint(last))
	for ln := first; ln <= last; ln++ {
		text := f.GetLine(ln)
		if ln != start.Line && text == "" {
			continue
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gw, ln), text)
		if ln != start.Line {
			continue
		}

		col := int(start.Col) - 1
		col = min(col, len(text))
		width := 1
		if end.Line == start.Line && end.Col > start.Col {
			width = int(end.Col - start.Col)
		}
		width = max(min(width, len(text)-col), 1)

		pad := caretPadding(text[:col])
		marker := "^" + strings.Repeat("~", width-1)
		fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gw, ""), pad, pal.caret.Sprint(marker))
	}
}

// caretPadding повторяет табы и ширину символов префикса, чтобы '^'
// встал под нужной колонкой.
func caretPadding(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
