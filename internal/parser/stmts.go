package parser

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// parseBlock разбирает `{ stmt* }`. Разделители ';' остаются анонимными детьми блока.
func (p *Parser) parseBlock() ast.NodeID {
	children := []ast.Child{ast.C(p.expect(token.LBrace, diag.SynExpectBody, "expected '{'"))}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedDelimiter, "expected '}'")
		}
		stmt, needSemi := p.parseStatement()
		children = append(children, ast.C(stmt))
		switch {
		case p.at(token.Semicolon) && needSemi:
			children = p.appendToken(children)
		case needSemi && !p.at(token.RBrace):
			p.fail(diag.SynExpectSemicolon, "expected ';'")
		}
	}
	children = p.appendToken(children)
	return p.b.Node("block_statement", children...)
}

// parseStatement returns the statement node and whether it must be
// terminated by ';' (optional right before '}').
func (p *Parser) parseStatement() (ast.NodeID, bool) {
	switch tok := p.peek(); tok.Kind {
	case token.Semicolon:
		return p.b.Node("empty_statement", ast.C(p.token())), false
	case token.LBrace:
		if p.looksLikeObjectLiteral() {
			return p.parseExpressionStatement(), true
		}
		return p.parseBlock(), false
	case token.KwVar, token.KwVal:
		return p.parseLocalVars(), true
	case token.KwReturn:
		return p.parseReturn(), true
	case token.KwBreak:
		return p.b.Node("break_statement", ast.C(p.token())), true
	case token.KwContinue:
		return p.b.Node("continue_statement", ast.C(p.token())), true
	case token.KwThrow:
		return p.parseThrow(), true
	case token.KwIf:
		return p.parseIf(), false
	case token.KwWhile:
		return p.parseWhile(), false
	case token.KwDo:
		return p.parseDoWhile(), true
	case token.KwRepeat:
		return p.parseRepeat(), false
	case token.KwAssert:
		return p.parseAssert(), true
	case token.KwTry:
		return p.parseTryCatch(), false
	case token.KwMatch:
		return p.parseMatchStatement(), false
	}
	return p.parseExpressionStatement(), true
}

func (p *Parser) parseExpressionStatement() ast.NodeID {
	return p.b.Node("expression_statement", ast.C(p.parseExpr()))
}

// parseMatchStatement: match на уровне инструкции; одна ';' сразу после тела поглощается.
func (p *Parser) parseMatchStatement() ast.NodeID {
	children := []ast.Child{ast.C(p.parseMatchExpression())}
	if p.at(token.Semicolon) {
		children = p.appendToken(children)
	}
	return p.b.Node("match_statement", children...)
}

// parseLocalVars: `var x: int = 1`, `val (a, b redef) = t`, `var [x, y]`.
func (p *Parser) parseLocalVars() ast.NodeID {
	children := []ast.Child{ast.F("kind", p.token())}
	children = append(children, ast.F("lhs", p.parseVarsLHS()))
	if p.at(token.Assign) {
		children = p.appendToken(children)
		children = append(children, ast.F("assigned_val", p.parseExpr()))
	}
	return p.b.Node("local_vars_declaration", children...)
}

func (p *Parser) parseVarsLHS() ast.NodeID {
	switch p.peek().Kind {
	case token.LParen:
		return p.parseVarsGroup("tensor_vars_declaration", token.RParen)
	case token.LBracket:
		return p.parseVarsGroup("tuple_vars_declaration", token.RBracket)
	}

	var name ast.NodeID
	switch {
	case p.at(token.Underscore):
		name = p.named("underscore")
	case p.at(token.Ident):
		name = p.named("identifier")
	default:
		p.fail(diag.SynExpectIdentifier, "expected variable name")
	}
	children := []ast.Child{ast.F("name", name)}
	switch {
	case p.at(token.Colon):
		children = p.appendToken(children)
		children = append(children, ast.F("type", p.parseType()))
	case p.atWord("redef"):
		children = append(children, ast.F("redef", p.token()))
	}
	return p.b.Node("var_declaration", children...)
}

func (p *Parser) parseVarsGroup(typ string, closing token.Kind) ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	for !p.at(closing) {
		children = append(children, ast.F("vars", p.parseVarsLHS()))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	children = append(children, ast.C(p.expect(closing, diag.SynUnclosedDelimiter, "expected '"+closing.String()+"' after variables")))
	return p.b.Node(typ, children...)
}

func (p *Parser) parseReturn() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	if startsExpr(p.peek()) {
		children = append(children, ast.F("body", p.parseExpr()))
	}
	return p.b.Node("return_statement", children...)
}

func (p *Parser) parseThrow() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	if startsExpr(p.peek()) {
		children = append(children, ast.C(p.parseExpr()))
	}
	return p.b.Node("throw_statement", children...)
}

// parseCondition разбирает `( expr )`; скобки: анонимные дети инструкции.
func (p *Parser) parseCondition(children []ast.Child, field, what string) []ast.Child {
	children = append(children, ast.C(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after "+what)))
	children = append(children, ast.F(field, p.parseExpr()))
	return append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after "+what+" condition")))
}

func (p *Parser) parseIf() ast.NodeID {
	children := p.parseCondition([]ast.Child{ast.C(p.token())}, "condition", "if")
	children = append(children, ast.F("body", p.parseBlock()))
	if p.at(token.KwElse) {
		children = p.appendToken(children)
		if p.at(token.KwIf) {
			children = append(children, ast.F("alternative", p.parseIf()))
		} else {
			children = append(children, ast.F("alternative", p.parseBlock()))
		}
	}
	return p.b.Node("if_statement", children...)
}

func (p *Parser) parseWhile() ast.NodeID {
	children := p.parseCondition([]ast.Child{ast.C(p.token())}, "condition", "while")
	children = append(children, ast.F("body", p.parseBlock()))
	return p.b.Node("while_statement", children...)
}

func (p *Parser) parseDoWhile() ast.NodeID {
	children := []ast.Child{ast.C(p.token()), ast.F("body", p.parseBlock())}
	children = append(children, ast.C(p.expect(token.KwWhile, diag.SynUnexpectedToken, "expected 'while' after do body")))
	children = p.parseCondition(children, "condition", "while")
	return p.b.Node("do_while_statement", children...)
}

func (p *Parser) parseRepeat() ast.NodeID {
	children := p.parseCondition([]ast.Child{ast.C(p.token())}, "count", "repeat")
	children = append(children, ast.F("body", p.parseBlock()))
	return p.b.Node("repeat_statement", children...)
}

// parseAssert: `assert(cond, excNo)` или `assert(cond) throw excNo`.
func (p *Parser) parseAssert() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	children = append(children, ast.C(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after assert")))
	children = append(children, ast.F("condition", p.parseExpr()))
	if p.at(token.Comma) {
		children = p.appendToken(children)
		children = append(children, ast.F("excNo", p.parseExpr()))
		children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after assert arguments")))
		return p.b.Node("assert_statement", children...)
	}
	children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after assert condition")))
	children = append(children, ast.C(p.expect(token.KwThrow, diag.SynUnexpectedToken, "expected ',' or 'throw' in assert")))
	children = append(children, ast.F("excNo", p.parseExpr()))
	return p.b.Node("assert_statement", children...)
}

func (p *Parser) parseTryCatch() ast.NodeID {
	children := []ast.Child{ast.C(p.token()), ast.F("try_body", p.parseBlock())}
	children = append(children, ast.C(p.expect(token.KwCatch, diag.SynUnexpectedToken, "expected 'catch' after try body")))

	var clause []ast.Child
	if p.at(token.LParen) {
		clause = p.appendToken(clause)
		clause = append(clause, ast.F("catch_var1", p.parseCatchVar()))
		if p.at(token.Comma) {
			clause = p.appendToken(clause)
			clause = append(clause, ast.F("catch_var2", p.parseCatchVar()))
		}
		clause = append(clause, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after catch variables")))
	}
	clause = append(clause, ast.F("catch_body", p.parseBlock()))
	children = append(children, ast.F("catch", p.b.Node("catch_clause", clause...)))
	return p.b.Node("try_catch_statement", children...)
}

func (p *Parser) parseCatchVar() ast.NodeID {
	if p.at(token.Underscore) {
		return p.named("underscore")
	}
	return p.expectIdent("catch variable")
}
