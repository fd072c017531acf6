package lexer

import (
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

const utf8RuneSelf = 0x80

// scanIdentOrKeyword сканирует [Ident] и проверяет через LookupKeyword.
// Ключевые слова регистрозависимые (только lowercase). Token.Text: ровно исходный срез.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		if b := lx.cursor.Peek(); b < utf8RuneSelf {
			if !isIdentContinueByte(b) || lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	tok := lx.emit(start, token.Ident)
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// scanBacktickIdent читает `любое имя` до закрывающего backtick в той же строке.
func (lx *Lexer) scanBacktickIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		if lx.cursor.Bump() == '`' {
			return lx.emit(start, token.Ident)
		}
	}
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnterminatedBacktick, tok.Span, "unterminated backtick identifier")
	return tok
}

// scanNumber: 123, 0x1F, 0b1010. Дробных чисел в Tolk нет, поэтому "0.6.0"
// в `tolk 0.6.0` лексится как последовательность IntLit и Dot.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	digit := isDec
	if lx.cursor.Peek() == '0' {
		switch lx.cursor.PeekAt(1) {
		case 'x', 'X':
			digit = isHex
			lx.advance(2)
		case 'b', 'B':
			digit = isBin
			lx.advance(2)
		}
	}
	n := 0
	for digit(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
		n++
	}
	if isIdentContinueByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexBadNumber, tok.Span, "malformed number literal "+tok.Text)
		return tok
	}
	if n == 0 && uint32(start)+1 != lx.cursor.Off {
		// "0x" без цифр
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexBadNumber, tok.Span, "expected digits after base prefix")
		return tok
	}
	return lx.emit(start, token.IntLit)
}
