package multiline_test

import (
	"path/filepath"
	"strings"
	"testing"

	"mlc/internal/diag"
	"mlc/internal/lexer"
	"mlc/internal/multiline"
	"mlc/internal/source"
	"mlc/internal/token"
)

func tokenize(t *testing.T, src string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(src)))
	return lexer.Tokenize(file, lexer.Options{})
}

// tokenizeFile goes through FileSet.Load, so fixtures with CRLF line
// endings are normalized the way real files are.
func tokenizeFile(t *testing.T, name string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	id, err := fs.Load(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return lexer.Tokenize(fs.Get(id), lexer.Options{})
}

// run проверяет исходник целиком и возвращает диагностики в golden-виде
func run(t *testing.T, tokens []token.Token) string {
	t.Helper()
	diags, err := multiline.Collect(tokens)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return diag.FormatGolden(diags)
}

func forest(t *testing.T, tokens []token.Token) []*multiline.Span {
	t.Helper()
	ranges, err := multiline.CollectRanges(tokens)
	if err != nil {
		t.Fatalf("CollectRanges: %v", err)
	}
	return multiline.BuildSpans(ranges)
}

func lines(codes ...string) string {
	return strings.Join(codes, "\n")
}

const (
	msg101 = "PL101 Multi-line container not broken after opening character"
	msg102 = "PL102 Multi-line container not broken before closing character"
	msg110 = "PL110 Multi-line container does not close on same column as opening"
)
