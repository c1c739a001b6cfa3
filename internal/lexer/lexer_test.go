package lexer_test

import (
	"strings"
	"testing"

	"mlc/internal/diag"
	"mlc/internal/lexer"
	"mlc/internal/source"
	"mlc/internal/token"
)

type problem struct {
	kind string
	pos  token.Pos
	msg  string
}

// testReporter собирает все проблемы, полученные от лексера
type testReporter struct {
	problems []problem
}

func (r *testReporter) Report(kind string, pos token.Pos, msg string) {
	r.problems = append(r.problems, problem{kind: kind, pos: pos, msg: msg})
}

func lex(t *testing.T, input string) ([]token.Token, *testReporter) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte(input)))
	rep := &testReporter{}
	return lexer.Tokenize(file, lexer.Options{Reporter: rep}), rep
}

// expectStream сравнивает строковое представление каждого токена
func expectStream(t *testing.T, input string, expected []string) {
	t.Helper()
	toks, rep := lex(t, input)
	got := make([]string, len(toks))
	for i, tok := range toks {
		got[i] = tok.String()
	}
	if len(got) != len(expected) {
		t.Fatalf("Expected %d tokens, got %d\nInput: %q\nTokens:\n%s\nProblems: %v",
			len(expected), len(got), input, strings.Join(got, "\n"), rep.problems)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("Token %d: expected %s, got %s", i, expected[i], got[i])
		}
	}
}

func TestSimpleStatement(t *testing.T) {
	expectStream(t, "x = 1\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "x" 1:0-1:1`,
		`OP "=" 1:2-1:3`,
		`NUMBER "1" 1:4-1:5`,
		`NEWLINE "\n" 1:5-1:6`,
		`ENDMARKER "" 2:0-2:0`,
	})
}

func TestBracketsProduceNL(t *testing.T) {
	expectStream(t, "foo = {\n    'a': 1,\n}\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "foo" 1:0-1:3`,
		`OP "=" 1:4-1:5`,
		`OP "{" 1:6-1:7`,
		`NL "\n" 1:7-1:8`,
		`STRING "'a'" 2:4-2:7`,
		`OP ":" 2:7-2:8`,
		`NUMBER "1" 2:9-2:10`,
		`OP "," 2:10-2:11`,
		`NL "\n" 2:11-2:12`,
		`OP "}" 3:0-3:1`,
		`NEWLINE "\n" 3:1-3:2`,
		`ENDMARKER "" 4:0-4:0`,
	})
}

func TestIndentation(t *testing.T) {
	expectStream(t, "if x:\n    y = (1,\n  2)\nz\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "if" 1:0-1:2`,
		`NAME "x" 1:3-1:4`,
		`OP ":" 1:4-1:5`,
		`NEWLINE "\n" 1:5-1:6`,
		`INDENT "    " 2:0-2:4`,
		`NAME "y" 2:4-2:5`,
		`OP "=" 2:6-2:7`,
		`OP "(" 2:8-2:9`,
		`NUMBER "1" 2:9-2:10`,
		`OP "," 2:10-2:11`,
		`NL "\n" 2:11-2:12`,
		`NUMBER "2" 3:2-3:3`,
		`OP ")" 3:3-3:4`,
		`NEWLINE "\n" 3:4-3:5`,
		`DEDENT "" 4:0-4:0`,
		`NAME "z" 4:0-4:1`,
		`NEWLINE "\n" 4:1-4:2`,
		`ENDMARKER "" 5:0-5:0`,
	})
}

func TestCommentsAndBlankLines(t *testing.T) {
	expectStream(t, "# top\n\nx = [  # c\n    1,\n]\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`COMMENT "# top" 1:0-1:5`,
		`NL "\n" 1:5-1:6`,
		`NL "\n" 2:0-2:1`,
		`NAME "x" 3:0-3:1`,
		`OP "=" 3:2-3:3`,
		`OP "[" 3:4-3:5`,
		`COMMENT "# c" 3:7-3:10`,
		`NL "\n" 3:10-3:11`,
		`NUMBER "1" 4:4-4:5`,
		`OP "," 4:5-4:6`,
		`NL "\n" 4:6-4:7`,
		`OP "]" 5:0-5:1`,
		`NEWLINE "\n" 5:1-5:2`,
		`ENDMARKER "" 6:0-6:0`,
	})
}

func TestMissingTrailingNewline(t *testing.T) {
	expectStream(t, "def f():\n    return {1}", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "def" 1:0-1:3`,
		`NAME "f" 1:4-1:5`,
		`OP "(" 1:5-1:6`,
		`OP ")" 1:6-1:7`,
		`OP ":" 1:7-1:8`,
		`NEWLINE "\n" 1:8-1:9`,
		`INDENT "    " 2:0-2:4`,
		`NAME "return" 2:4-2:10`,
		`OP "{" 2:11-2:12`,
		`NUMBER "1" 2:12-2:13`,
		`OP "}" 2:13-2:14`,
		`NEWLINE "" 2:14-2:15`,
		`DEDENT "" 3:0-3:0`,
		`ENDMARKER "" 3:0-3:0`,
	})
}

func TestEmptyInput(t *testing.T) {
	expectStream(t, "", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`ENDMARKER "" 1:0-1:0`,
	})
}

func TestBackslashContinuation(t *testing.T) {
	expectStream(t, "x = 1 + \\\n    2\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "x" 1:0-1:1`,
		`OP "=" 1:2-1:3`,
		`NUMBER "1" 1:4-1:5`,
		`OP "+" 1:6-1:7`,
		`NUMBER "2" 2:4-2:5`,
		`NEWLINE "\n" 2:5-2:6`,
		`ENDMARKER "" 3:0-3:0`,
	})
}

func TestUnicodeColumns(t *testing.T) {
	expectStream(t, "é = ('ü',\n)\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "é" 1:0-1:1`,
		`OP "=" 1:2-1:3`,
		`OP "(" 1:4-1:5`,
		`STRING "'ü'" 1:5-1:8`,
		`OP "," 1:8-1:9`,
		`NL "\n" 1:9-1:10`,
		`OP ")" 2:0-2:1`,
		`NEWLINE "\n" 2:1-2:2`,
		`ENDMARKER "" 3:0-3:0`,
	})
}

func TestStrings(t *testing.T) {
	src := "s = rb'\\'' + f\"{x}\"\nt = \"\"\"a\n(b\"\"\"\n"
	toks, rep := lex(t, src)
	if len(rep.problems) != 0 {
		t.Fatalf("unexpected problems: %v", rep.problems)
	}

	var strs []token.Token
	for _, tok := range toks {
		if tok.Kind == token.String {
			strs = append(strs, tok)
		}
		if tok.Kind == token.Op && tok.IsOpening() {
			t.Errorf("bracket inside string leaked as %s", tok)
		}
	}
	if len(strs) != 3 {
		t.Fatalf("expected 3 strings, got %d", len(strs))
	}
	cases := []struct {
		text       string
		start, end token.Pos
	}{
		{`rb'\''`, token.Pos{Line: 1, Col: 4}, token.Pos{Line: 1, Col: 10}},
		{`f"{x}"`, token.Pos{Line: 1, Col: 13}, token.Pos{Line: 1, Col: 19}},
		{"\"\"\"a\n(b\"\"\"", token.Pos{Line: 2, Col: 4}, token.Pos{Line: 3, Col: 5}},
	}
	for i, tc := range cases {
		if strs[i].Text != tc.text || strs[i].Start != tc.start || strs[i].End != tc.end {
			t.Errorf("string %d: got %s, want %q %s-%s", i, strs[i], tc.text, tc.start, tc.end)
		}
	}
}

func TestStringPrefixNotAName(t *testing.T) {
	toks, _ := lex(t, "print(Rb'x', fr'y', bu'z')\n")
	var kinds []string
	for _, tok := range toks[1:] {
		kinds = append(kinds, tok.Kind.String()+":"+tok.Text)
	}
	want := "NAME:print OP:( STRING:Rb'x' OP:, STRING:fr'y' OP:, NAME:bu STRING:'z' OP:) NEWLINE:\n ENDMARKER:"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestUnterminatedString(t *testing.T) {
	expectStream(t, "x = 'abc\ny = 2\n", []string{
		`ENCODING "utf-8" 0:0-0:0`,
		`NAME "x" 1:0-1:1`,
		`OP "=" 1:2-1:3`,
		`ERRORTOKEN "'abc" 1:4-1:8`,
		`NEWLINE "\n" 1:8-1:9`,
		`NAME "y" 2:0-2:1`,
		`OP "=" 2:2-2:3`,
		`NUMBER "2" 2:4-2:5`,
		`NEWLINE "\n" 2:5-2:6`,
		`ENDMARKER "" 3:0-3:0`,
	})
	_, rep := lex(t, "x = 'abc\n")
	if len(rep.problems) != 1 || rep.problems[0].kind != lexer.ProblemUnterminatedString {
		t.Fatalf("expected one unterminated-string problem, got %v", rep.problems)
	}
	if rep.problems[0].pos != (token.Pos{Line: 1, Col: 4}) {
		t.Errorf("problem reported at %s", rep.problems[0].pos)
	}
}

func TestUnterminatedTripleString(t *testing.T) {
	toks, rep := lex(t, "x = '''abc\n(\n")
	if len(rep.problems) != 1 {
		t.Fatalf("expected one problem, got %v", rep.problems)
	}
	var errTok *token.Token
	for i := range toks {
		if toks[i].Kind == token.ErrorToken {
			errTok = &toks[i]
		}
		if toks[i].IsOpening() {
			t.Errorf("bracket inside unterminated string leaked")
		}
	}
	if errTok == nil || errTok.Text != "'''abc\n(\n" {
		t.Fatalf("expected error token covering the rest of the file, got %v", errTok)
	}
}

func TestOperatorsLongestMatch(t *testing.T) {
	toks, _ := lex(t, "a **= b // c -> d := e ... f != g >>= h\n")
	var ops []string
	for _, tok := range toks {
		if tok.Kind == token.Op {
			ops = append(ops, tok.Text)
		}
	}
	want := []string{"**=", "//", "->", ":=", "...", "!=", ">>="}
	if strings.Join(ops, " ") != strings.Join(want, " ") {
		t.Fatalf("got %v, want %v", ops, want)
	}
}

func TestNumbers(t *testing.T) {
	toks, _ := lex(t, "0x1F 1_000 3.14 .5 1e-3 2j 1. 0b1010\n")
	var nums []string
	for _, tok := range toks {
		if tok.Kind == token.Number {
			nums = append(nums, tok.Text)
		}
	}
	want := []string{"0x1F", "1_000", "3.14", ".5", "1e-3", "2j", "1.", "0b1010"}
	if strings.Join(nums, " ") != strings.Join(want, " ") {
		t.Fatalf("got %v, want %v", nums, want)
	}
}

func TestInconsistentDedent(t *testing.T) {
	toks, rep := lex(t, "if x:\n        a\n    b\n")
	if len(rep.problems) != 1 || rep.problems[0].kind != lexer.ProblemInconsistentDedent {
		t.Fatalf("expected inconsistent dedent, got %v", rep.problems)
	}
	if last := toks[len(toks)-1]; last.Kind != token.EndMarker {
		t.Fatalf("tokenization must still finish, last token %s", last)
	}
}

func TestInvalidCharacter(t *testing.T) {
	toks, rep := lex(t, "a $ b\n")
	if len(rep.problems) != 1 || rep.problems[0].kind != lexer.ProblemInvalidCharacter {
		t.Fatalf("expected invalid-character, got %v", rep.problems)
	}
	if toks[2].Kind != token.ErrorToken || toks[2].Text != "$" {
		t.Fatalf("expected error token for $, got %s", toks[2])
	}
}

func TestNextAfterEndMarker(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("t.py", []byte("x"))), lexer.Options{})
	for lx.Next().Kind != token.EndMarker {
	}
	for range 3 {
		if tok := lx.Next(); tok.Kind != token.EndMarker {
			t.Fatalf("expected ENDMARKER forever, got %s", tok)
		}
	}
}

func TestEncodingTokenFollowsCookie(t *testing.T) {
	fs := source.NewFileSet()
	id, err := fs.AddRaw("l1.py", []byte("# coding: latin-1\nx = '\xe9'\n"))
	if err != nil {
		t.Fatalf("AddRaw: %v", err)
	}
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if toks[0].Kind != token.Encoding || toks[0].Text != "iso-8859-1" {
		t.Fatalf("unexpected encoding token %s", toks[0])
	}
}

func TestReporterAdapter(t *testing.T) {
	fs := source.NewFileSet()
	bag := diag.NewBag(0)
	file := fs.Get(fs.AddVirtual("t.py", []byte("x = 'oops\n")))
	lexer.Tokenize(file, lexer.Options{Reporter: &lexer.ReporterAdapter{Bag: bag}})
	if bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", bag.Len())
	}
	d := bag.Items()[0]
	if d.Code != diag.TokenizeWarning || !strings.HasPrefix(d.Message, "E901 ") {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
}
