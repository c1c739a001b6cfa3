package multiline_test

import (
	"errors"
	"testing"

	"mlc/internal/multiline"
)

func TestScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "single line dict",
			src:  "foo = {'a': 'hello', 'b': 'world'}\n",
			want: "",
		},
		{
			name: "fully broken dict",
			src:  "foo = {\n    'a': 'hello',\n    'b': 'world',\n}\n",
			want: "",
		},
		{
			name: "not broken after opener",
			src:  "foo = {'a': 'hello',\n       'b': 'world',\n}\n",
			want: "PL101 1:7 " + msg101,
		},
		{
			name: "not broken before closer",
			src:  "foo = {\n    'a': 'hello', 'b': 'world'}\n",
			want: "PL102 2:31 " + msg102,
		},
		{
			name: "misaligned closer",
			src:  "foo = {'a': 'hello',\n       'b': 'world',\n      }\n",
			want: lines("PL101 1:7 "+msg101, "PL110 3:7 "+msg110),
		},
		{
			name: "closer aligned with indented statement",
			src:  "if x:\n    foo = [\n        1,\n    ]\n",
			want: "",
		},
		{
			name: "closer aligned with bracket instead of statement",
			src:  "if x:\n    foo = [\n        1,\n]\n",
			want: "PL110 4:1 " + msg110,
		},
		{
			name: "hugging child breaks for parent",
			src:  "foo = {'a': {\n'b': 1\n}}\n",
			want: "",
		},
		{
			name: "hugging child on a single line",
			src:  "foo = {'a': {\n    'b': 1\n}, 'c': {'d': 2}}\n",
			want: "PL102 3:17 " + msg102,
		},
		{
			name: "double closing hugging",
			src:  "foo(bar, (\n    1,\n    2,\n))\n",
			want: "",
		},
		{
			name: "nested call not broken",
			src:  "bizbat(bazbin('a',\n'b'))\n",
			want: lines("PL101 1:14 "+msg101, "PL102 2:4 "+msg102),
		},
		{
			name: "multi-line string argument",
			src:  "bizbat(bazbin(\"\"\"\n\"\"\"))\n",
			want: lines("PL101 1:14 "+msg101, "PL102 2:4 "+msg102),
		},
		{
			name: "comments are not content",
			src:  "foo = {  # comment\n    'a': 1,\n    # trailing\n}\n",
			want: "",
		},
		{
			name: "nested single line spans exempt",
			src:  "x = [[1, [2, 3]], (4, {5: 6})]\n",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, tokenize(t, tc.src)); got != tc.want {
				t.Fatalf("\ngot:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestUnbalancedYieldsNoDiagnostics(t *testing.T) {
	tokens := tokenizeFile(t, "unbalanced.py")
	seq, err := multiline.Check(tokens)
	if seq != nil {
		t.Fatal("no diagnostic sequence expected for unbalanced input")
	}
	var serr *multiline.StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StructuralError, got %v", err)
	}
	if serr.Open.Text != "(" || serr.Pos().Line != 1 || serr.Pos().Col != 6 || serr.Unmatched != 1 {
		t.Fatalf("unexpected error details: %v", serr)
	}
	diags, err := multiline.Collect(tokens)
	if err == nil || len(diags) != 0 {
		t.Fatalf("Collect must fail without diagnostics, got %d, %v", len(diags), err)
	}
}

func TestSummarize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want multiline.Summary
	}{
		{"clean", "x = [\n    1,\n]\n", multiline.Summary{StartBroken: true, EndBroken: true, EndColumnMatches: true}},
		{"start hugging", "x = [1,\n    2,\n]\n", multiline.Summary{StartBroken: false, EndBroken: true, EndColumnMatches: true}},
		{"end hugging", "x = [\n    1, 2]\n", multiline.Summary{StartBroken: true, EndBroken: false, EndColumnMatches: false}},
		{"misaligned", "x = [\n    1,\n  ]\n", multiline.Summary{StartBroken: true, EndBroken: true, EndColumnMatches: false}},
		{"single line", "x = [1, 2]\n", multiline.Summary{StartBroken: true, EndBroken: true, EndColumnMatches: true}},
		{"empty multi-line", "x = [\n]\n", multiline.Summary{StartBroken: true, EndBroken: true, EndColumnMatches: true}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tokens := tokenize(t, tc.src)
			roots := forest(t, tokens)
			if len(roots) != 1 {
				t.Fatalf("expected one root, got %d", len(roots))
			}
			if got := multiline.Summarize(tokens, roots[0]); got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSummarizeChildDeferral(t *testing.T) {
	// внешний список наследует перенос от вложенного контейнера на той же строке
	tokens := tokenize(t, "x = [{\n    1: 2,\n}]\n")
	roots := forest(t, tokens)
	outer := roots[0]
	if len(outer.Children) != 1 {
		t.Fatalf("expected one child, got %d", len(outer.Children))
	}
	got := multiline.Summarize(tokens, outer)
	want := multiline.Summary{StartBroken: true, EndBroken: true, EndColumnMatches: true}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	// однострочный ребёнок на строке открытия: перенос отсутствует
	tokens = tokenize(t, "x = [(1, 2),\n    (3, 4),\n]\n")
	roots = forest(t, tokens)
	got = multiline.Summarize(tokens, roots[0])
	if got.StartBroken {
		t.Fatalf("single-line first child on the opener line must not count as a break: %+v", got)
	}
}
