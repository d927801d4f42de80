package codegen

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"transplator/internal/lexer"
	"transplator/internal/source"
	"transplator/internal/token"
	"transplator/internal/trim"
)

// Options tweaks code generation.
type Options struct {
	// Encoding overrides the output encoding. Nil keeps the input's
	// encoding, or UTF-8 without BOM when that is unknown.
	Encoding *source.Encoding
}

func (o Options) encoding(input source.Encoding) source.Encoding {
	if o.Encoding != nil && !o.Encoding.IsZero() {
		return *o.Encoding
	}
	return input.Or(source.UTF8)
}

// Generate compiles template text into a unit. Empty input, and input
// holding nothing but comments, yields an empty unit. A malformed tag
// fails with a *lexer.SyntaxError.
func Generate(name, text string, opts Options) (*Unit, error) {
	return generate(name, text, source.Encoding{}, opts)
}

// GenerateFile compiles a loaded file, keeping its on-disk encoding unless
// opts overrides it.
func GenerateFile(name string, f *source.File, opts Options) (*Unit, error) {
	if f == nil {
		return nil, fmt.Errorf("generate %s: nil file", name)
	}
	return generate(name, f.Text(), f.Encoding, opts)
}

func generate(name, text string, input source.Encoding, opts Options) (*Unit, error) {
	unit := &Unit{Name: name, Encoding: opts.encoding(input)}
	if text == "" {
		return unit, nil
	}

	spans, err := collect(text)
	if err != nil {
		return nil, err
	}
	if len(spans) == 0 {
		return unit, nil
	}

	var sb strings.Builder
	sb.Grow(len(text) * 2)

	bare := spans[0].Token.Kind() == token.Text
	if bare {
		sb.WriteString("using System;\n\npartial class ")
		sb.WriteString(name)
		sb.WriteString("Template\n{\n    void RenderCore()\n    {\n")
	}

	for _, sp := range spans {
		traits := sp.Token.Traits
		switch {
		case traits.IsBlock():
			sb.WriteString(sp.Token.InnerText(text))
			if traits.NeedsSemicolon() {
				sb.WriteByte(';')
			}
			sb.WriteByte('\n')
		case sp.Token.Kind() == token.Text:
			if sp.Empty() {
				continue
			}
			sb.WriteString(`WriteText(@"`)
			sb.WriteString(EscapeLiteral(sp.Text(text)))
			sb.WriteString("\");\n")
		default:
			sb.WriteString("WriteValue(")
			sb.WriteString(sp.Token.InnerText(text))
			sb.WriteString(");\n")
		}
	}

	if bare {
		sb.WriteString("    }\n}\n")
	}

	unit.Text = sb.String()
	return unit, nil
}

// collect trims the whole template and drops comments. Tokenizing fails
// before anything is emitted.
func collect(text string) ([]trim.Span, error) {
	tr := trim.New(lexer.New(text), text)
	var spans []trim.Span
	for {
		sp, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return spans, nil
		}
		if err != nil {
			return nil, err
		}
		if sp.Token.Kind() == token.CommentKind {
			continue
		}
		spans = append(spans, sp)
	}
}
