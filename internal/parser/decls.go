package parser

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/diag"
	"tolkfmt/internal/token"
)

// parseTopLevel выбирает по первому токену нужный распознаватель top-level конструкции.
func (p *Parser) parseTopLevel() ast.NodeID {
	annotations := ast.NoNodeID
	if p.at(token.At) {
		annotations = p.parseAnnotationList()
	}

	switch tok := p.peek(); {
	case tok.IsContextual("tolk") && !annotations.IsValid():
		return p.parseRequiredVersion()
	case tok.Kind == token.KwImport && !annotations.IsValid():
		return p.b.Node("import_directive",
			ast.C(p.token()),
			ast.F("path", p.expectString("import path")))
	case tok.Kind == token.KwGlobal:
		return p.parseGlobal(annotations)
	case tok.Kind == token.KwConst:
		return p.parseConst(annotations)
	case tok.Kind == token.KwType:
		return p.parseTypeAlias(annotations)
	case tok.Kind == token.KwStruct:
		return p.parseStruct(annotations)
	case tok.Kind == token.KwEnum:
		return p.parseEnum(annotations)
	case tok.Kind == token.KwFun:
		return p.parseFunction(annotations)
	case tok.IsContextual("get") && (p.peekN(1).Kind == token.KwFun || p.peekN(1).Kind == token.Ident):
		return p.parseGetMethod(annotations)
	}
	p.fail(diag.SynUnexpectedTopLevel, "expected declaration")
	return ast.NoNodeID
}

// parseRequiredVersion: `tolk 0.6.0`. Версия: один лист из соседних токенов без пробелов.
func (p *Parser) parseRequiredVersion() ast.NodeID {
	kw := p.token()
	if !p.at(token.IntLit) {
		p.fail(diag.SynUnexpectedToken, "expected version number")
	}
	first := p.advance()
	span := first.Span
	for p.atOneOf(token.Dot, token.IntLit) && p.peek().Span.Start == span.End && len(p.peek().Leading) == 0 {
		span = span.Cover(p.advance().Span)
	}
	value := p.b.Leaf("version_value", true, span)
	return p.b.Node("tolk_required_version", ast.C(kw), ast.F("value", value))
}

func (p *Parser) expectString(what string) ast.NodeID {
	if !p.at(token.StringLit) {
		p.fail(diag.SynBadImportPath, "expected "+what)
	}
	return p.named("string_literal")
}

func (p *Parser) parseGlobal(annotations ast.NodeID) ast.NodeID {
	kw := p.token()
	name := p.expectIdent("global name")
	colon := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after global name")
	typ := p.parseType()
	return p.b.Node("global_var_declaration",
		ast.F("annotations", annotations), ast.C(kw), ast.F("name", name), ast.C(colon), ast.F("type", typ))
}

func (p *Parser) parseConst(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	children = append(children, ast.F("name", p.expectIdent("constant name")))
	if p.at(token.Colon) {
		children = p.appendToken(children)
		children = append(children, ast.F("type", p.parseType()))
	}
	children = append(children, ast.C(p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in constant")))
	children = append(children, ast.F("value", p.parseExpr()))
	return p.b.Node("constant_declaration", children...)
}

func (p *Parser) parseTypeAlias(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	children = append(children, ast.F("name", p.expectIdent("type name")))
	if p.at(token.Lt) {
		children = append(children, ast.F("type_parameters", p.parseTypeParameters()))
	}
	children = append(children, ast.C(p.expect(token.Assign, diag.SynUnexpectedToken, "expected '=' in type alias")))
	children = append(children, ast.F("underlying_type", p.parseType()))
	return p.b.Node("type_alias_declaration", children...)
}

func (p *Parser) parseStruct(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	if p.at(token.LParen) {
		children = p.appendToken(children)
		children = append(children, ast.F("pack_prefix", p.parseExpr()))
		children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after struct prefix")))
	}
	children = append(children, ast.F("name", p.expectIdent("struct name")))
	if p.at(token.Lt) {
		children = append(children, ast.F("type_parameters", p.parseTypeParameters()))
	}
	children = append(children, ast.F("body", p.parseStructBody()))
	return p.b.Node("struct_declaration", children...)
}

// parseStructBody: поля разделяются ',', ';' или переводом строки.
func (p *Parser) parseStructBody() ast.NodeID {
	children := []ast.Child{ast.C(p.expect(token.LBrace, diag.SynExpectBody, "expected struct body"))}
	for !p.at(token.RBrace) {
		children = append(children, ast.C(p.parseStructField()))
		for p.atOneOf(token.Comma, token.Semicolon) {
			children = p.appendToken(children)
		}
	}
	children = p.appendToken(children)
	return p.b.Node("struct_body", children...)
}

func (p *Parser) parseStructField() ast.NodeID {
	var children []ast.Child
	var mods []ast.Child
	for (p.atWord("private") || p.atWord("readonly")) && p.peekN(1).Kind != token.Colon {
		mods = append(mods, ast.C(p.token()))
	}
	if len(mods) > 0 {
		children = append(children, ast.F("modifiers", p.b.Node("struct_field_modifiers", mods...)))
	}
	children = append(children, ast.F("name", p.expectWord("field name")))
	children = append(children, ast.C(p.expect(token.Colon, diag.SynExpectColon, "expected ':' after field name")))
	children = append(children, ast.F("type", p.parseType()))
	if p.at(token.Assign) {
		children = p.appendToken(children)
		children = append(children, ast.F("default", p.parseExpr()))
	}
	return p.b.Node("struct_field_declaration", children...)
}

func (p *Parser) parseEnum(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	children = append(children, ast.F("name", p.expectIdent("enum name")))
	if p.at(token.Colon) {
		children = p.appendToken(children)
		children = append(children, ast.F("backed_type", p.parseType()))
	}

	body := []ast.Child{ast.C(p.expect(token.LBrace, diag.SynExpectBody, "expected enum body"))}
	for !p.at(token.RBrace) {
		member := []ast.Child{ast.F("name", p.expectWord("enum member"))}
		if p.at(token.Assign) {
			member = p.appendToken(member)
			member = append(member, ast.F("default", p.parseExpr()))
		}
		body = append(body, ast.C(p.b.Node("enum_member_declaration", member...)))
		if !p.atOneOf(token.Comma, token.Semicolon) {
			break
		}
		body = p.appendToken(body)
	}
	body = append(body, ast.C(p.expect(token.RBrace, diag.SynUnclosedDelimiter, "expected '}' after enum members")))
	children = append(children, ast.F("body", p.b.Node("enum_body", body...)))
	return p.b.Node("enum_declaration", children...)
}

// parseFunction: `fun name`, либо метод `fun Recv.name`.
func (p *Parser) parseFunction(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	typ := "function_declaration"
	if p.looksLikeReceiver() {
		typ = "method_declaration"
		recv := p.parseNonUnionType()
		dot := p.expect(token.Dot, diag.SynUnexpectedToken, "expected '.' after receiver")
		children = append(children, ast.F("receiver", p.b.Node("method_receiver", ast.F("receiver_type", recv), ast.C(dot))))
	}
	children = append(children, ast.F("name", p.expectWord("function name")))
	return p.b.Node(typ, p.parseSignatureAndBody(children)...)
}

// parseGetMethod: `get name()` или `get fun name()`.
func (p *Parser) parseGetMethod(annotations ast.NodeID) ast.NodeID {
	children := []ast.Child{ast.F("annotations", annotations), ast.C(p.token())}
	if p.at(token.KwFun) {
		children = p.appendToken(children)
	}
	children = append(children, ast.F("name", p.expectIdent("get method name")))
	return p.b.Node("get_method_declaration", p.parseSignatureAndBody(children)...)
}

func (p *Parser) parseSignatureAndBody(children []ast.Child) []ast.Child {
	if p.at(token.Lt) {
		children = append(children, ast.F("type_parameters", p.parseTypeParameters()))
	}
	children = append(children, ast.F("parameters", p.parseParameterList()))
	if p.at(token.Colon) {
		children = p.appendToken(children)
		children = append(children, ast.F("return_type", p.parseType()))
	}
	switch {
	case p.at(token.LBrace):
		children = append(children, ast.F("body", p.parseBlock()))
	case p.atWord("asm"):
		children = append(children, ast.F("asm_body", p.parseAsmBody()))
	case p.atWord("builtin"):
		children = append(children, ast.F("builtin_specifier", p.named("builtin_specifier")))
	default:
		p.fail(diag.SynExpectBody, "expected function body")
	}
	return children
}

// parseAsmBody: asm [(arrangement)] "..." "..."
func (p *Parser) parseAsmBody() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	if p.at(token.LParen) {
		start := p.advance().Span
		depth := 1
		end := start
		for depth > 0 {
			tok := p.advance()
			switch tok.Kind {
			case token.LParen:
				depth++
			case token.RParen:
				depth--
			case token.EOF:
				p.fail(diag.SynUnclosedDelimiter, "expected ')' after asm arrangement")
			}
			end = tok.Span
		}
		children = append(children, ast.C(p.b.Leaf("asm_arrangement", true, start.Cover(end))))
	}
	if !p.at(token.StringLit) {
		p.fail(diag.SynExpectBody, "expected asm string")
	}
	for p.at(token.StringLit) {
		children = append(children, ast.C(p.named("string_literal")))
	}
	return p.b.Node("asm_body", children...)
}

func (p *Parser) parseParameterList() ast.NodeID {
	children := []ast.Child{ast.C(p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' before parameters"))}
	for !p.at(token.RParen) {
		children = append(children, ast.C(p.parseParameter()))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	children = append(children, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after parameters")))
	return p.b.Node("parameter_list", children...)
}

func (p *Parser) parseParameter() ast.NodeID {
	var children []ast.Child
	if p.at(token.KwMutate) {
		children = append(children, ast.F("mutate", p.token()))
	}
	children = append(children, ast.F("name", p.expectIdent("parameter name")))
	if p.at(token.Colon) {
		children = p.appendToken(children)
		children = append(children, ast.F("type", p.parseType()))
	}
	if p.at(token.Assign) {
		children = p.appendToken(children)
		children = append(children, ast.F("default", p.parseExpr()))
	}
	return p.b.Node("parameter_declaration", children...)
}

func (p *Parser) parseTypeParameters() ast.NodeID {
	children := []ast.Child{ast.C(p.token())}
	for {
		param := []ast.Child{ast.F("name", p.expectTypeIdent())}
		if p.at(token.Assign) {
			param = p.appendToken(param)
			param = append(param, ast.F("default", p.parseType()))
		}
		children = append(children, ast.C(p.b.Node("type_parameter", param...)))
		if !p.at(token.Comma) {
			break
		}
		children = p.appendToken(children)
	}
	p.splitShr()
	children = append(children, ast.C(p.expect(token.Gt, diag.SynUnclosedDelimiter, "expected '>' after type parameters")))
	return p.b.Node("type_parameters", children...)
}

func (p *Parser) expectTypeIdent() ast.NodeID {
	if !p.at(token.Ident) {
		p.fail(diag.SynExpectType, "expected type name")
	}
	return p.named("type_identifier")
}

func (p *Parser) parseAnnotationList() ast.NodeID {
	var children []ast.Child
	for p.at(token.At) {
		ann := []ast.Child{ast.C(p.token()), ast.F("name", p.expectWord("annotation name"))}
		if p.at(token.LParen) {
			args := []ast.Child{ast.C(p.token())}
			for !p.at(token.RParen) {
				args = append(args, ast.C(p.parseExpr()))
				if !p.at(token.Comma) {
					break
				}
				args = p.appendToken(args)
			}
			args = append(args, ast.C(p.expect(token.RParen, diag.SynUnclosedDelimiter, "expected ')' after annotation arguments")))
			ann = append(ann, ast.F("arguments", p.b.Node("annotation_arguments", args...)))
		}
		children = append(children, ast.C(p.b.Node("annotation", ann...)))
	}
	return p.b.Node("annotation_list", children...)
}
