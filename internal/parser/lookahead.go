package parser

import (
	"tolkfmt/internal/token"
)

// typeArgsEnd сканирует вперёд от '<' на позиции i и возвращает индекс
// закрывающего '>' (или '>>', закрывающего два уровня), либо -1, если это не
// похоже на список типов. Токены не потребляются.
func (p *Parser) typeArgsEnd(i int) int {
	depth := 0
	for ; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.Shr:
			if depth < 2 {
				return -1
			}
			depth -= 2
		case token.Ident, token.Comma, token.Question, token.Pipe, token.Arrow, token.KwNull,
			token.LParen, token.RParen, token.LBracket, token.RBracket:
		default:
			return -1
		}
		if depth == 0 {
			return i
		}
	}
	return -1
}

// genericFollows reports whether the '<' at the current position opens a
// type-argument list whose closing '>' is followed by one of next.
func (p *Parser) genericFollows(next ...token.Kind) bool {
	if !p.at(token.Lt) {
		return false
	}
	end := p.typeArgsEnd(p.pos)
	if end < 0 || end+1 >= len(p.toks) {
		return false
	}
	after := p.toks[end+1].Kind
	for _, k := range next {
		if after == k {
			return true
		}
	}
	return false
}

// looksLikeObjectLiteral: '{' ident (':' | ',' | '}') в начале инструкции: литерал, иначе блок.
func (p *Parser) looksLikeObjectLiteral() bool {
	if !p.at(token.LBrace) || !p.peekN(1).IsWord() {
		return false
	}
	switch p.peekN(2).Kind {
	case token.Colon, token.Comma, token.RBrace:
		return true
	default:
		return false
	}
}

// looksLikeReceiver checks the tokens after `fun` for `Type.` or `Type<...>.`.
func (p *Parser) looksLikeReceiver() bool {
	switch p.peek().Kind {
	case token.LBracket, token.LParen:
		return true
	case token.Ident:
		switch p.peekN(1).Kind {
		case token.Dot:
			return true
		case token.Lt:
			end := p.typeArgsEnd(p.pos + 1)
			return end > 0 && end+1 < len(p.toks) && p.toks[end+1].Kind == token.Dot
		}
	}
	return false
}

// startsExpr reports whether tok can begin an expression.
func startsExpr(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.IntLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNull,
		token.Underscore, token.LParen, token.LBracket, token.LBrace, token.Bang, token.Minus,
		token.Plus, token.Tilde, token.KwLazy, token.KwMatch:
		return true
	default:
		return false
	}
}
