package driver

import (
	"transplator/internal/diag"
	"transplator/internal/lexer"
	"transplator/internal/source"
	"transplator/internal/token"
	"transplator/internal/trim"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Spans   []trim.Span
	Bag     *diag.Bag
}

// Tokenize loads one template and returns its raw tokens with their trimmed
// spans. A syntax error becomes a TPR001 diagnostic and leaves both slices
// empty; only I/O failures are returned as errors.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)

	src := file.Text()
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		reportSyntax(diag.BagReporter{Bag: bag}, file, err)
		return &TokenizeResult{FileSet: fs, File: file, Bag: bag}, nil
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Spans:   trim.All(tokens, src),
		Bag:     bag,
	}, nil
}
