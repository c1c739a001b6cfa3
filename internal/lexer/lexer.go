package lexer

import (
	"mlc/internal/source"
	"mlc/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	queue  []token.Token // готовые токены (Indent/Dedent пачками, Comment+NL)

	indents     []int // стек колонок отступа, всегда начинается с 0
	depth       int   // глубина скобок, только для выбора NL/Newline
	lineStart   bool  // курсор в начале физической строки нового оператора
	lineHasCode bool  // на текущей логической строке был значимый токен
	started     bool
	done        bool
}

func New(file *source.File, opts Options) *Lexer {
	if opts.TabSize <= 0 {
		opts.TabSize = 8
	}
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []int{0},
		lineStart: true,
	}
}

// Tokenize runs the lexer to completion and returns every token,
// Encoding first and EndMarker last.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/3+4)
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EndMarker {
			return out
		}
	}
}

// Next возвращает следующий токен.
// После EndMarker всегда возвращает EndMarker.
func (lx *Lexer) Next() token.Token {
	for len(lx.queue) == 0 {
		lx.fill()
	}
	tok := lx.queue[0]
	if tok.Kind == token.EndMarker && lx.done && len(lx.queue) == 1 {
		return tok // остаётся в очереди навсегда
	}
	lx.queue = lx.queue[1:]
	return tok
}

func (lx *Lexer) push(tok token.Token) {
	lx.queue = append(lx.queue, tok)
}

func (lx *Lexer) emit(kind token.Kind, m Mark) {
	lx.push(token.Token{
		Kind:  kind,
		Text:  lx.cursor.TextFrom(m),
		Start: m.Pos,
		End:   lx.cursor.Pos(),
	})
}

// emitLineBreak эмитит NL/Newline; конец токена остаётся на той же строке,
// как у tokenize: (line, col+len(text)).
func (lx *Lexer) emitLineBreak(kind token.Kind, m Mark) {
	text := lx.cursor.TextFrom(m)
	lx.push(token.Token{
		Kind:  kind,
		Text:  text,
		Start: m.Pos,
		End:   token.Pos{Line: m.Pos.Line, Col: m.Pos.Col + len(text)},
	})
}

// fill кладёт в очередь хотя бы один токен.
func (lx *Lexer) fill() {
	if !lx.started {
		lx.started = true
		enc := lx.file.Encoding
		if enc == "" {
			enc = source.DefaultEncoding
		}
		lx.push(token.Token{Kind: token.Encoding, Text: enc})
		return
	}
	if lx.done {
		return
	}
	if lx.lineStart {
		lx.lineStart = false
		if lx.depth == 0 && lx.scanLineStart() {
			return
		}
	}
	lx.skipBlanks()
	if lx.cursor.EOF() {
		lx.finish()
		return
	}
	lx.scanToken()
}

// scanLineStart обрабатывает начало строки вне скобок: пустые строки,
// строки из одного комментария и отступы. Возвращает true, если строка
// целиком обработана здесь.
func (lx *Lexer) scanLineStart() bool {
	lineMark := lx.cursor.Mark()
	column := 0
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ':
			column++
		case '\t':
			column = (column/lx.opts.TabSize + 1) * lx.opts.TabSize
		case '\f':
			column = 0
		default:
			goto measured
		}
		lx.cursor.Bump()
	}
measured:
	if lx.cursor.EOF() {
		return false
	}
	switch lx.cursor.Peek() {
	case '#':
		lx.scanComment()
		lx.scanNL()
		return true
	case '\n', '\r':
		lx.scanNL()
		return true
	}

	if column > lx.indents[len(lx.indents)-1] {
		lx.indents = append(lx.indents, column)
		lx.push(token.Token{
			Kind:  token.Indent,
			Text:  lx.cursor.TextFrom(lineMark),
			Start: lineMark.Pos,
			End:   lx.cursor.Pos(),
		})
	}
	for column < lx.indents[len(lx.indents)-1] {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Start: lx.cursor.Pos(), End: lx.cursor.Pos()})
	}
	if column != lx.indents[len(lx.indents)-1] {
		lx.report(ProblemInconsistentDedent, lx.cursor.Pos(), "unindent does not match any outer indentation level")
	}
	return false
}

// scanNL эмитит NL для строки без кода; на последней строке без \n текст пустой.
func (lx *Lexer) scanNL() {
	m := lx.cursor.Mark()
	lx.cursor.Eat('\r')
	lx.cursor.Eat('\n')
	lx.emitLineBreak(token.NL, m)
	lx.lineStart = true
}

func (lx *Lexer) skipBlanks() {
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\f':
			lx.cursor.Bump()
		case '\r':
			if lx.cursor.PeekAt(1) == '\n' {
				return
			}
			lx.cursor.Bump()
		default:
			return
		}
	}
}

func (lx *Lexer) scanToken() {
	m := lx.cursor.Mark()
	ch := lx.cursor.Peek()

	switch {
	case ch == '\n' || ch == '\r':
		lx.cursor.Eat('\r')
		lx.cursor.Eat('\n')
		if lx.depth > 0 || !lx.lineHasCode {
			lx.emitLineBreak(token.NL, m)
		} else {
			lx.emitLineBreak(token.Newline, m)
		}
		lx.lineHasCode = lx.depth > 0 && lx.lineHasCode
		lx.lineStart = true

	case ch == '#':
		lx.scanComment()

	case ch == '\\':
		lx.cursor.Bump()
		if lx.cursor.Eat('\n') {
			// продолжение строки: следующая физическая строка без отступов
			return
		}
		lx.report(ProblemStrayBackslash, m.Pos, "unexpected character after line continuation character")
		lx.emit(token.ErrorToken, m)

	case ch == '\'' || ch == '"':
		lx.lineHasCode = true
		lx.scanString(m)

	case isDec(ch) || (ch == '.' && isDec(lx.cursor.PeekAt(1))):
		lx.lineHasCode = true
		lx.scanNumber(m)

	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		lx.lineHasCode = true
		lx.scanNameOrString(m)

	default:
		lx.lineHasCode = true
		lx.scanOperator(m)
	}
}

func (lx *Lexer) scanComment() {
	m := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' || (b == '\r' && lx.cursor.PeekAt(1) == '\n') {
			break
		}
		lx.cursor.Bump()
	}
	lx.emit(token.Comment, m)
}

// finish закрывает поток: Newline для последней строки без \n,
// Dedent на каждый открытый отступ и EndMarker.
func (lx *Lexer) finish() {
	lx.done = true
	end := lx.cursor.Pos()
	if lx.lineHasCode && lx.depth == 0 {
		lx.push(token.Token{
			Kind:  token.Newline,
			Start: end,
			End:   token.Pos{Line: end.Line, Col: end.Col + 1},
		})
		lx.lineHasCode = false
	}
	last := end
	if last.Col != 0 {
		last = token.Pos{Line: end.Line + 1, Col: 0}
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.push(token.Token{Kind: token.Dedent, Start: last, End: last})
	}
	lx.push(token.Token{Kind: token.EndMarker, Start: last, End: last})
}
