package parser

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// Таблица приоритетов для бинарных операторов.
// Чем больше число, тем выше приоритет; все левоассоциативны.
const (
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precBitwiseOr      = 3 // |
	precBitwiseXor     = 4 // ^
	precBitwiseAnd     = 5 // &
	precComparison     = 6 // == != < > <= >= <=>
	precShift          = 7 // << >> ~>> ^>>
	precAdditive       = 8 // + -
	precMultiplicative = 9 // * / % ~/ ^/
)

func binaryPrec(k token.Kind) int {
	switch k {
	case token.OrOr:
		return precLogicalOr
	case token.AndAnd:
		return precLogicalAnd
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.EqEq, token.BangEq, token.Lt, token.Gt, token.LtEq, token.GtEq, token.Spaceship:
		return precComparison
	case token.Shl, token.Shr, token.TildeShr, token.CaretShr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent, token.TildeSlash, token.CaretSlash:
		return precMultiplicative
	default:
		return 0
	}
}

// parseExpr: вход в разбор выражения: присваивание самое слабое и правоассоциативное.
func (p *Parser) parseExpr() ast.NodeID {
	left := p.parseTernary()
	tok := p.peek()
	switch {
	case tok.Kind == token.Assign:
		eq := p.token()
		right := p.parseExpr()
		return p.b.Node("assignment", ast.F("left", left), ast.C(eq), ast.F("right", right))
	case tok.IsAssignOp():
		op := p.token()
		right := p.parseExpr()
		return p.b.Node("set_assignment", ast.F("left", left), ast.F("operator_name", op), ast.F("right", right))
	}
	return left
}

func (p *Parser) parseTernary() ast.NodeID {
	cond := p.parseBinary(precLogicalOr)
	if !p.at(token.Question) {
		return cond
	}
	q := p.token()
	cons := p.parseTernary()
	colon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in ternary expression")
	alt := p.parseTernary()
	return p.b.Node("ternary_operator",
		ast.F("condition", cond), ast.C(q), ast.F("consequence", cons), ast.C(colon), ast.F("alternative", alt))
}

// parseBinary: precedence climbing.
func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	left := p.parseUnary()
	for {
		prec := binaryPrec(p.peek().Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.token()
		right := p.parseBinary(prec + 1)
		left = p.b.Node("binary_operator", ast.C(left), ast.F("operator_name", op), ast.C(right))
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	switch p.peek().Kind {
	case token.Bang, token.Minus, token.Plus, token.Tilde:
		op := p.token()
		arg := p.parseUnary()
		return p.b.Node("unary_operator", ast.F("operator_name", op), ast.F("argument", arg))
	case token.KwLazy:
		kw := p.token()
		arg := p.parseUnary()
		return p.b.Node("lazy_expression", ast.C(kw), ast.F("argument", arg))
	}
	return p.parsePostfix(p.parsePrimary())
}

// parsePostfix: '.', вызов, generic-инстанциация, '!', as, is, !is: слева направо.
func (p *Parser) parsePostfix(expr ast.NodeID) ast.NodeID {
	for {
		switch p.peek().Kind {
		case token.Dot:
			dot := p.token()
			var field ast.NodeID
			switch tok := p.peek(); {
			case tok.Kind == token.IntLit:
				field = p.named("numeric_index")
			case tok.IsWord():
				field = p.named("identifier")
			default:
				p.fail(diag.SynExpectIdentifier, "expected field name after '.'")
			}
			expr = p.b.Node("dot_access", ast.F("obj", expr), ast.C(dot), ast.F("field", field))
		case token.LParen:
			expr = p.b.Node("function_call", ast.F("callee", expr), ast.F("arguments", p.parseArgumentList()))
		case token.Lt:
			if !p.genericFollows(token.LParen, token.Dot) {
				return expr
			}
			expr = p.b.Node("generic_instantiation", ast.F("expr", expr), ast.F("instantiationTs", p.parseInstantiationList()))
		case token.Bang:
			expr = p.b.Node("not_null_operator", ast.F("inner", expr), ast.C(p.token()))
		case token.KwAs:
			kw := p.token()
			expr = p.b.Node("cast_as_operator", ast.F("expr", expr), ast.C(kw), ast.F("casted_to", p.parseTypeAfterOperator()))
		case token.KwIs, token.NotIs:
			op := p.token()
			expr = p.b.Node("is_type_operator", ast.F("expr", expr), ast.F("operator", op), ast.F("rhs_type", p.parseTypeAfterOperator()))
		default:
			return expr
		}
	}
}

func (p *Parser) parsePrimary() ast.NodeID {
	switch tok := p.peek(); tok.Kind {
	case token.IntLit:
		return p.named("number_literal")
	case token.StringLit:
		return p.named("string_literal")
	case token.KwTrue, token.KwFalse:
		return p.named("boolean_literal")
	case token.KwNull:
		return p.named("null_literal")
	case token.Underscore:
		return p.named("underscore")
	case token.Ident:
		if p.peekN(1).Kind == token.LBrace {
			typ := p.named("type_identifier")
			return p.parseObjectLiteral(typ)
		}
		if p.peekN(1).Kind == token.Lt {
			p.advance()
			brace := p.genericFollows(token.LBrace)
			p.pos--
			if brace {
				return p.parseObjectLiteral(p.parsePrimaryType())
			}
		}
		return p.named("identifier")
	case token.LParen:
		return p.parseParenOrTensor()
	case token.LBracket:
		children := []ast.Child{ast.C(p.token())}
		children = p.parseExprList(children, token.RBracket)
		return p.b.Node("typed_tuple", children...)
	case token.LBrace:
		return p.parseObjectLiteral(ast.NoNodeID)
	case token.KwMatch:
		return p.parseMatchExpression()
	}
	p.fail(diag.SynExpectExpression, "expected expression")
	return ast.NoNodeID
}

func (p *Parser) parseParenOrTensor() ast.NodeID {
	lp := p.token()
	if p.at(token.RParen) {
		return p.b.Node("tensor_expression", ast.C(lp), ast.C(p.token()))
	}
	first := p.parseExpr()
	if p.at(token.RParen) {
		return p.b.Node("parenthesized_expression", ast.C(lp), ast.F("inner", first), ast.C(p.token()))
	}
	children := []ast.Child{ast.C(lp), ast.C(first)}
	if !p.at(token.Comma) {
		p.fail(diag.SynUnclosedDelimiter, "expected ')' or ','")
	}
	children = p.appendToken(children)
	children = p.parseExprList(children, token.RParen)
	return p.b.Node("tensor_expression", children...)
}

// parseExprList дочитывает `a, b, c,` до closing включительно; хвостовая запятая допустима.
func (p *Parser) parseExprList(children []ast.Child, closing token.Kind) []ast.Child {
	for !p.at(closing) {
		children = append(children, ast.C(p.parseExpr()))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	return append(children, ast.C(p.expect(closing, diag.SynUnclosedDelimiter, "expected '"+closing.String()+"'")))
}

func (p *Parser) parseArgumentList() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	for !p.at(token.RParen) {
		var arg []ast.Child
		if p.at(token.KwMutate) {
			arg = append(arg, ast.C(p.token()))
		}
		arg = append(arg, ast.F("expr", p.parseExpr()))
		children = append(children, ast.C(p.b.Node("call_argument", arg...)))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after arguments")))
	return p.b.Node("argument_list", children...)
}

// parseObjectLiteral: `Type { a: 1, b, c: }` или `{ ... }` без типа.
func (p *Parser) parseObjectLiteral(typ ast.NodeID) ast.NodeID {
	body := []ast.Child{ast.C(p.expect(token.LBrace, diag.SynUnexpectedToken, "expected '{'"))}
	for !p.at(token.RBrace) {
		arg := []ast.Child{ast.F("name", p.expectWord("field name"))}
		if p.at(token.Colon) {
			arg = p.appendToken(arg)
			if !p.atOneOf(token.Comma, token.RBrace) {
				arg = append(arg, ast.F("value", p.parseExpr()))
			}
		}
		body = append(body, ast.C(p.b.Node("instance_argument", arg...)))
		if !p.at(token.Comma) {
			break
		}
		body = p.appendToken(body)
	}
	body = append(body, ast.C(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after object fields")))
	return p.b.Node("object_literal", ast.F("type", typ), ast.F("arguments", p.b.Node("object_literal_body", body...)))
}

// parseMatchExpression: match (expr | var x = expr) { arms }
func (p *Parser) parseMatchExpression() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	children = append(children, ast.C(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after match")))
	if p.atOneOf(token.KwVar, token.KwVal) {
		children = append(children, ast.F("expr", p.parseLocalVars()))
	} else {
		children = append(children, ast.F("expr", p.parseExpr()))
	}
	children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after match subject")))

	body := []ast.Child{ast.C(p.expect(token.LBrace, diag.SynExpectBody, "expected match body"))}
	for !p.at(token.RBrace) {
		body = append(body, ast.C(p.parseMatchArm()))
		for p.at(token.Comma) {
			body = p.appendToken(body)
		}
	}
	body = p.appendToken(body)
	children = append(children, ast.F("body", p.b.Node("match_body", body...)))
	return p.b.Node("match_expression", children...)
}

func (p *Parser) parseMatchArm() ast.NodeID {
	var children []ast.Child
	switch tok := p.peek(); {
	case tok.Kind == token.KwElse:
		children = append(children, ast.F("pattern_else", p.token()))
	case p.isExprPattern():
		children = append(children, ast.F("pattern_expr", p.parseExpr()))
	default:
		children = append(children, ast.F("pattern_type", p.parseType()))
	}
	children = append(children, ast.C(p.expect(token.FatArrow, diag.SynUnexpectedToken, "expected '=>' in match arm")))

	switch {
	case p.at(token.LBrace) && !p.looksLikeObjectLiteral():
		children = append(children, ast.F("block", p.parseBlock()))
	case p.at(token.KwReturn):
		children = append(children, ast.F("return", p.parseReturn()))
	case p.at(token.KwThrow):
		children = append(children, ast.F("throw", p.parseThrow()))
	default:
		children = append(children, ast.F("expr", p.parseExpr()))
	}
	return p.b.Node("match_arm", children...)
}

// isExprPattern: литералы и обращения вида `a.b`/`f(...)`: выражения, остальное: типы.
func (p *Parser) isExprPattern() bool {
	switch tok := p.peek(); tok.Kind {
	case token.IntLit, token.StringLit, token.KwTrue, token.KwFalse, token.Minus:
		return true
	case token.Ident:
		next := p.peekN(1).Kind
		return next == token.Dot || next == token.LParen
	default:
		return false
	}
}
