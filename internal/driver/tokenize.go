package driver

import (
	"mlc/internal/diag"
	"mlc/internal/lexer"
	"mlc/internal/multiline"
	"mlc/internal/source"
	"mlc/internal/token"
)

// TokenizeResult holds one file's token stream and tokenizer warnings.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize loads path and runs the tokenizer over it.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	// Создаём FileSet и загружаем файл
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}

// SpansResult is a TokenizeResult plus the bracket forest.
type SpansResult struct {
	*TokenizeResult
	Roots []*multiline.Span
}

// Spans tokenizes path and builds its span forest. A *StructuralError is
// returned together with the token result.
func Spans(path string, maxDiagnostics int) (*SpansResult, error) {
	tr, err := Tokenize(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	ranges, err := multiline.CollectRanges(tr.Tokens)
	if err != nil {
		return &SpansResult{TokenizeResult: tr}, err
	}
	return &SpansResult{TokenizeResult: tr, Roots: multiline.BuildSpans(ranges)}, nil
}
