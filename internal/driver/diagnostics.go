package driver

import (
	"errors"
	"fmt"
	"strings"

	"transplator/internal/diag"
	"transplator/internal/lexer"
	"transplator/internal/source"
)

var newlineEscaper = strings.NewReplacer("\r\n", `\n`, "\n", `\n`)

// reportSyntax turns a tokenizer failure into TPR001. The span covers the
// two bytes of the offending opening delimiter.
func reportSyntax(r diag.Reporter, f *source.File, err error) {
	offset, msg := -1, err.Error()
	var se *lexer.SyntaxError
	if errors.As(err, &se) {
		offset, msg = se.Offset, se.Message
	}
	span := source.Span{File: f.ID}
	if offset >= 0 {
		span = source.SpanOf(f.ID, offset, offset+2).Clamp(uint32(len(f.Content)))
	}
	diag.ReportError(r, diag.TplSyntax, span, newlineEscaper.Replace(msg)).Emit()
}

func reportLoad(r diag.Reporter, f *source.File, err error) {
	diag.ReportError(r, diag.TplLoad, source.Span{File: f.ID}, fmt.Sprintf("cannot load template: %v", err)).Emit()
}

func reportWrite(r diag.Reporter, f *source.File, path string, err error) {
	diag.ReportError(r, diag.TplWrite, source.Span{File: f.ID}, fmt.Sprintf("cannot write %s: %v", path, err)).Emit()
}
