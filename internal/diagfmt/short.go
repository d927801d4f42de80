package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"transplator/internal/diag"
	"transplator/internal/source"
)

// Short renders one line per diagnostic:
//
//	error TPR001 templates/a.tpl:1:5 message
//
// Multi-line messages are folded onto the line.
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet) {
	for _, d := range bag.Items() {
		f := fs.Get(d.Primary.File)
		start, _ := fs.Resolve(d.Primary)
		path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
		fmt.Fprintf(w, "%s %s %s:%d:%d %s\n",
			d.Severity.Label(), d.Code.ID(), path, start.Line, start.Col, foldMessage(d.Message))
	}
}

func foldMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
