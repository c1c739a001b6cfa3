package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"mlc/internal/token"
)

const utf8RuneSelf = utf8.RuneSelf

// ===== Классификаторы =====

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isQuote(b byte) bool { return b == '\'' || b == '"' }

// peekRune читает руну под курсором
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpN(n int) {
	for range n {
		lx.cursor.Bump()
	}
}

// stringPrefixes: допустимые префиксы строк (в нижнем регистре).
var stringPrefixes = map[string]struct{}{
	"r": {}, "u": {}, "b": {}, "f": {},
	"br": {}, "rb": {}, "fr": {}, "rf": {},
}

// scanNameOrString читает идентификатор; если это префикс строки и за ним
// кавычка, дочитывает строку как один токен.
func (lx *Lexer) scanNameOrString(m Mark) {
	if r, sz := lx.peekRune(); r >= utf8RuneSelf && !isIdentStartRune(r) {
		lx.bumpN(sz)
		lx.report(ProblemInvalidCharacter, m.Pos, "invalid character in identifier")
		lx.emit(token.ErrorToken, m)
		return
	}
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, sz := lx.peekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.bumpN(sz)
	}
	if isQuote(lx.cursor.Peek()) {
		if _, ok := stringPrefixes[strings.ToLower(lx.cursor.TextFrom(m))]; ok {
			lx.scanString(m)
			return
		}
	}
	lx.emit(token.Name, m)
}

// scanString читает строку от кавычки под курсором; m указывает на начало
// префикса. Экранирование обрабатывается одинаково для raw и обычных строк:
// обратный слэш всегда забирает следующий символ.
func (lx *Lexer) scanString(m Mark) {
	quote := lx.cursor.Bump()
	triple := false
	if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
		lx.cursor.Bump()
		lx.cursor.Bump()
		triple = true
	}

	for {
		if lx.cursor.EOF() {
			if triple {
				lx.report(ProblemUnterminatedString, m.Pos, "unterminated triple-quoted string literal")
			} else {
				lx.report(ProblemUnterminatedString, m.Pos, "unterminated string literal")
			}
			lx.emit(token.ErrorToken, m)
			return
		}
		b := lx.cursor.Peek()
		switch {
		case b == '\\':
			lx.cursor.Bump()
			if !lx.cursor.EOF() {
				_, sz := lx.peekRune()
				lx.bumpN(sz)
			}
		case b == '\n' && !triple:
			lx.report(ProblemUnterminatedString, m.Pos, "unterminated string literal")
			lx.emit(token.ErrorToken, m)
			return
		case b == quote:
			lx.cursor.Bump()
			if !triple {
				lx.emit(token.String, m)
				return
			}
			if lx.cursor.Peek() == quote && lx.cursor.PeekAt(1) == quote {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.emit(token.String, m)
				return
			}
		default:
			_, sz := lx.peekRune()
			lx.bumpN(sz)
		}
	}
}

// scanNumber читает числовой литерал: целые с основанием, дробные,
// экспоненту и мнимый суффикс. Валидацию цифр оставляем компилятору.
func (lx *Lexer) scanNumber(m Mark) {
	digits := func(ok func(byte) bool) {
		for ok(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			lx.bumpN(2)
			digits(func(b byte) bool { return isDec(b) || (b|0x20 >= 'a' && b|0x20 <= 'f') })
			lx.emit(token.Number, m)
			return
		}
	}

	digits(isDec)
	if lx.cursor.Peek() == '.' {
		lx.cursor.Bump()
		digits(isDec)
	}
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		if isDec(next) {
			lx.cursor.Bump()
			digits(isDec)
		} else if (next == '+' || next == '-') && isDec(lx.cursor.PeekAt(2)) {
			lx.bumpN(2)
			digits(isDec)
		}
	}
	if b := lx.cursor.Peek(); b == 'j' || b == 'J' {
		lx.cursor.Bump()
	}
	lx.emit(token.Number, m)
}

// operators упорядочены по убыванию длины: побеждает самое длинное совпадение.
var operators = []string{
	"**=", "//=", ">>=", "<<=", "...",
	"->", ":=", "**", "//", "<<", ">>", "<=", ">=", "==", "!=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	"(", ")", "[", "]", "{", "}",
	"+", "-", "*", "/", "%", "&", "|", "^", "~", "@",
	"<", ">", "=", ".", ",", ":", ";",
}

func (lx *Lexer) scanOperator(m Mark) {
	rest := lx.file.Content[lx.cursor.Off:lx.cursor.Limit]
	for _, op := range operators {
		if len(rest) >= len(op) && string(rest[:len(op)]) == op {
			lx.bumpN(len(op))
			switch op {
			case "(", "[", "{":
				lx.depth++
			case ")", "]", "}":
				if lx.depth > 0 {
					lx.depth--
				}
			}
			lx.emit(token.Op, m)
			return
		}
	}

	_, sz := lx.peekRune()
	lx.bumpN(sz)
	lx.report(ProblemInvalidCharacter, m.Pos, "invalid character "+lx.cursor.TextFrom(m))
	lx.emit(token.ErrorToken, m)
}
