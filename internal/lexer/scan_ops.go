package lexer

import (
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// Жадность: сначала длинные операторы, затем короткие.
var multiOps = []struct {
	text string
	kind token.Kind
}{
	{"<=>", token.Spaceship},
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"~>>", token.TildeShr},
	{"^>>", token.CaretShr},
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleOps = map[byte]token.Kind{
	'+': token.Plus, '-': token.Minus, '*': token.Star, '/': token.Slash, '%': token.Percent,
	'~': token.Tilde, '=': token.Assign, '!': token.Bang, '<': token.Lt, '>': token.Gt,
	'&': token.Amp, '|': token.Pipe, '^': token.Caret, '?': token.Question, ':': token.Colon,
	';': token.Semicolon, ',': token.Comma, '.': token.Dot, '(': token.LParen, ')': token.RParen,
	'{': token.LBrace, '}': token.RBrace, '[': token.LBracket, ']': token.RBracket, '@': token.At,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// "!is" только если дальше не продолжение идентификатора
	if lx.cursor.HasPrefix("!is") && !isIdentContinueByte(lx.cursor.PeekAt(3)) {
		lx.advance(3)
		return lx.emit(start, token.NotIs)
	}
	// "~/" и "^/" не съедают начало комментария
	for _, op := range []struct {
		text string
		kind token.Kind
	}{{"~/", token.TildeSlash}, {"^/", token.CaretSlash}} {
		if lx.cursor.HasPrefix(op.text) && lx.cursor.PeekAt(2) != '/' && lx.cursor.PeekAt(2) != '*' {
			lx.advance(2)
			return lx.emit(start, op.kind)
		}
	}
	for _, op := range multiOps {
		if lx.cursor.HasPrefix(op.text) {
			lx.advance(len(op.text))
			return lx.emit(start, op.kind)
		}
	}

	ch := lx.cursor.Peek()
	if k, ok := singleOps[ch]; ok {
		lx.cursor.Bump()
		return lx.emit(start, k)
	}

	// неизвестный символ
	lx.bumpRune()
	tok := lx.emit(start, token.Invalid)
	lx.errLex(diag.LexUnknownChar, tok.Span, "unknown character "+tok.Text)
	return tok
}

func (lx *Lexer) advance(n int) {
	for range n {
		lx.cursor.Bump()
	}
}
