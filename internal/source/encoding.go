package source

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
)

// codingCookie matches a PEP 263 declaration such as "# -*- coding: latin-1 -*-".
var codingCookie = regexp.MustCompile(`^[ \t\f]*#.*?coding[:=][ \t]*([-\w.]+)`)

// detectCodingCookie looks for a coding declaration on the first two lines.
// The second line counts only when the first is blank or a comment.
func detectCodingCookie(content []byte) (string, bool) {
	rest := content
	for line := 0; line < 2 && len(rest) > 0; line++ {
		var cur []byte
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			cur, rest = rest[:i], rest[i+1:]
		} else {
			cur, rest = rest, nil
		}
		if m := codingCookie.FindSubmatch(cur); m != nil {
			return string(m[1]), true
		}
		trimmed := bytes.TrimLeft(cur, " \t\f")
		if len(trimmed) != 0 && trimmed[0] != '#' {
			break
		}
	}
	return "", false
}

// normalizeEncodingName folds common Python spellings onto WHATWG labels.
func normalizeEncodingName(name string) string {
	n := strings.ReplaceAll(strings.ToLower(name), "_", "-")
	switch {
	case n == "utf-8" || n == "utf8" || strings.HasPrefix(n, "utf-8-"):
		return DefaultEncoding
	case n == "latin-1" || n == "latin1" || n == "iso-8859-1" || n == "iso-latin-1" ||
		strings.HasPrefix(n, "latin-1-") || strings.HasPrefix(n, "iso-8859-1-"):
		return "iso-8859-1"
	}
	return n
}

func lookupEncoding(name string) (encoding.Encoding, string, error) {
	norm := normalizeEncodingName(name)
	if norm == "iso-8859-1" {
		// htmlindex maps latin-1 to windows-1252, Python does not
		return charmap.ISO8859_1, norm, nil
	}
	enc, err := htmlindex.Get(norm)
	if err != nil {
		return nil, "", fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	canonical, err := htmlindex.Name(enc)
	if err != nil {
		canonical = norm
	}
	return enc, canonical, nil
}

// decodeContent transcodes content to UTF-8 using the declared encoding.
// It returns the canonical encoding name alongside the decoded bytes.
func decodeContent(content []byte, declared string) ([]byte, string, error) {
	if normalizeEncodingName(declared) == DefaultEncoding {
		if !utf8.Valid(content) {
			return nil, "", fmt.Errorf("invalid utf-8 content")
		}
		return content, DefaultEncoding, nil
	}
	enc, canonical, err := lookupEncoding(declared)
	if err != nil {
		return nil, "", err
	}
	if canonical == DefaultEncoding {
		return content, DefaultEncoding, nil
	}
	out, err := enc.NewDecoder().Bytes(content)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", canonical, err)
	}
	return out, canonical, nil
}
