package lexer

import (
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// scanString читает "..." или """...""" (многострочная). Escape-последовательности
// не валидируются: форматтер печатает литерал как есть.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	if lx.cursor.HasPrefix(`"""`) {
		lx.advance(3)
		for !lx.cursor.EOF() {
			if lx.cursor.HasPrefix(`"""`) {
				lx.advance(3)
				return lx.emit(start, token.StringLit)
			}
			lx.cursor.Bump()
		}
		tok := lx.emit(start, token.Invalid)
		lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated triple-quoted string")
		return tok
	}

	lx.cursor.Bump() // opening '"'
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return lx.emit(start, token.StringLit)
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
		case '\n':
			tok := lx.emit(start, token.Invalid)
			lx.errLex(diag.LexUnterminatedString, tok.Span, "newline in string literal")
			return tok
		default:
			lx.cursor.Bump()
		}
	}
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnterminatedString, tok.Span, "unterminated string literal")
	return tok
}
