package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"transplator/internal/source"
	"transplator/internal/token"
	"transplator/internal/trim"
)

type TokenOutput struct {
	Kind   string `json:"kind"`
	Traits string `json:"traits"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
	Line   uint32 `json:"line"`
	Col    uint32 `json:"col"`
	Text   string `json:"text"`
	Inner  string `json:"inner"`
}

func tokenOutput(f *source.File, fs *source.FileSet, src string, sp trim.Span) TokenOutput {
	pos, _ := fs.Resolve(source.SpanOf(f.ID, sp.Token.Start, sp.Token.End()))
	return TokenOutput{
		Kind:   sp.Token.Kind().String(),
		Traits: sp.Token.Traits.String(),
		Start:  sp.Token.Start,
		End:    sp.Token.End(),
		Line:   pos.Line,
		Col:    pos.Col,
		Text:   sp.Token.Substring(src),
		Inner:  sp.Text(src),
	}
}

// FormatTokensPretty выводит токены и их обрезанный текст в человекочитаемом формате
func FormatTokensPretty(w io.Writer, f *source.File, fs *source.FileSet, spans []trim.Span) error {
	src := f.Text()
	for i, sp := range spans {
		out := tokenOutput(f, fs, src, sp)
		if _, err := fmt.Fprintf(w, "%3d: %-8s [%d..%d) at %d:%d %q", i+1, out.Kind, out.Start, out.End, out.Line, out.Col, out.Text); err != nil {
			return err
		}
		if sp.Token.Kind() != token.Text {
			fmt.Fprintf(w, " { %s }", out.Traits)
		}
		if out.Inner != out.Text {
			fmt.Fprintf(w, " -> %q", out.Inner)
		}
		fmt.Fprintln(w)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, f *source.File, fs *source.FileSet, spans []trim.Span) error {
	src := f.Text()
	output := make([]TokenOutput, 0, len(spans))
	for _, sp := range spans {
		output = append(output, tokenOutput(f, fs, src, sp))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
