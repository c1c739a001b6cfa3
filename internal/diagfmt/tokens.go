package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"mlc/internal/token"
)

type PosOutput struct {
	Line int `json:"line"`
	Col  int `json:"col"`
}

type TokenOutput struct {
	Kind  string    `json:"kind"`
	Text  string    `json:"text"`
	Start PosOutput `json:"start"`
	End   PosOutput `json:"end"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
// (позиции как у tokenize: строки с 1, колонки с 0).
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		if _, err := fmt.Fprintf(w, "%3d: %-10s %-14s", i, tok.Kind.String(), fmt.Sprintf("%s-%s", tok.Start, tok.End)); err != nil {
			return err
		}
		if tok.Text != "" {
			if _, err := fmt.Fprintf(w, " %q", tok.Text); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		output = append(output, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: PosOutput{Line: tok.Start.Line, Col: tok.Start.Col},
			End:   PosOutput{Line: tok.End.Line, Col: tok.End.Col},
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
