package parser

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// parseType разбирает полный тип: union (правоассоциативный) поверх функциональных
// типов `A -> B`. Ведущий '|' допускается и не попадает в дерево.
func (p *Parser) parseType() ast.NodeID {
	if p.at(token.Pipe) {
		p.advance()
	}
	lhs := p.parseFunType()
	if !p.at(token.Pipe) {
		return lhs
	}
	pipe := p.token()
	rhs := p.parseType()
	return p.b.Node("union_type", ast.F("lhs", lhs), ast.C(pipe), ast.F("rhs", rhs))
}

func (p *Parser) parseFunType() ast.NodeID {
	params := p.parseNonUnionType()
	if !p.at(token.Arrow) {
		return params
	}
	arrow := p.token()
	ret := p.parseFunType()
	return p.b.Node("fun_callable_type", ast.F("param_types", params), ast.C(arrow), ast.F("return_type", ret))
}

// parseNonUnionType: первичный тип с постфиксными '?'.
func (p *Parser) parseNonUnionType() ast.NodeID {
	typ := p.parsePrimaryType()
	for p.at(token.Question) {
		typ = p.b.Node("nullable_type", ast.F("inner", typ), ast.C(p.token()))
	}
	return typ
}

// parseTypeAfterOperator разбирает тип справа от `as`/`is`: без union, а '?'
// считается nullable, только если за ним не начинается выражение (иначе это тернарный оператор).
func (p *Parser) parseTypeAfterOperator() ast.NodeID {
	typ := p.parsePrimaryType()
	for p.at(token.Question) && !startsExpr(p.peekN(1)) {
		typ = p.b.Node("nullable_type", ast.F("inner", typ), ast.C(p.token()))
	}
	return typ
}

func (p *Parser) parsePrimaryType() ast.NodeID {
	switch p.peek().Kind {
	case token.Ident:
		name := p.named("type_identifier")
		if !p.at(token.Lt) {
			return name
		}
		return p.b.Node("type_instantiatedTs", ast.F("name", name), ast.F("arguments", p.parseInstantiationList()))
	case token.KwNull:
		return p.named("null_literal")
	case token.LParen:
		children, count, trailingComma := p.parseTypeList(token.RParen)
		if count == 1 && !trailingComma {
			return p.b.Node("parenthesized_type", relabel(children, "inner")...)
		}
		return p.b.Node("tensor_type", children...)
	case token.LBracket:
		children, _, _ := p.parseTypeList(token.RBracket)
		return p.b.Node("tuple_type", children...)
	}
	p.fail(diag.SynExpectType, "expected type")
	return ast.NoNodeID
}

// parseTypeList разбирает `(T, U)` / `[T, U]`, возвращая детей с разделителями.
func (p *Parser) parseTypeList(closing token.Kind) (children []ast.Child, count int, trailingComma bool) {
	children = []ast.Child{ast.C(p.token())}
	for !p.at(closing) {
		children = append(children, ast.F("type", p.parseType()))
		count++
		trailingComma = false
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
		trailingComma = true
	}
	children = append(children, ast.C(p.expect(closing, diag.SynUnclosedDelimiter, "expected '"+closing.String()+"' after types")))
	return children, count, trailingComma
}

// parseInstantiationList: `<T, U>`; '>>' разбивается на два '>'.
func (p *Parser) parseInstantiationList() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	for {
		children = append(children, ast.F("types", p.parseType()))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	p.splitShr()
	children = append(children, ast.C(p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' after type arguments")))
	return p.b.Node("instantiationT_list", children...)
}

// relabel помечает все непустые поля указанным именем.
func relabel(children []ast.Child, field string) []ast.Child {
	out := make([]ast.Child, len(children))
	for i, ch := range children {
		if ch.Field != "" {
			ch.Field = field
		}
		out[i] = ch
	}
	return out
}
