package format

import (
	"slices"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
)

// printBlock: one statement per line. Comments before '{' move inside the
// block, comments that belong to no statement go after the last one.
func (p *printer) printBlock(n *ast.Node) *doc.Doc {
	carried := p.takeCarry()
	stmts := codeChildren(n)
	leading := p.comments.TakeLeading(n)
	dangling := p.comments.TakeDangling(n)
	if len(stmts) == 0 {
		all := slices.Concat(carried, leading, dangling)
		if len(all) == 0 {
			return doc.Text("{}")
		}
		return braces(formatDangling(all))
	}

	gaps := p.gaps(stmts)
	inner := []*doc.Doc{leadingLines(carried), leadingLines(leading)}
	for i, s := range stmts {
		inner = append(inner, p.printStatement(s))
		if i < len(gaps) {
			inner = append(inner, doc.Blank(gaps[i]))
		}
	}
	if len(dangling) > 0 {
		inner = append(inner, doc.HardLine(), formatDangling(dangling))
	}
	return braces(inner...)
}

// braces wraps an always broken body in '{' '}'.
func braces(inner ...*doc.Doc) *doc.Doc {
	return doc.Concat(
		doc.Text("{"),
		doc.Indent(doc.HardLine(), doc.Concat(inner...)),
		doc.HardLine(),
		doc.Text("}"),
	)
}

func (p *printer) printExpressionStatement(n *ast.Node) *doc.Doc {
	exprs := codeChildren(n)
	if len(exprs) != 1 {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.print(exprs[0]), doc.Text(";"), trailing)
}

// semicolon terminates a jump statement unless it is the body of a match arm.
func semicolon(n *ast.Node) *doc.Doc {
	if parentIs(n, "match_arm") {
		return nil
	}
	return doc.Text(";")
}

func (p *printer) printReturn(n *ast.Node) *doc.Doc {
	trailing := p.trailing(n)
	var value *doc.Doc
	if body := n.ChildByField("body"); body != nil {
		value = doc.Concat(doc.Text(" "), p.print(body))
	}
	return doc.Concat(doc.Text("return"), value, semicolon(n), trailing)
}

// printKeywordStatement prints break and continue.
func (p *printer) printKeywordStatement(n *ast.Node) *doc.Doc {
	keyword := "break"
	if n.Type == "continue_statement" {
		keyword = "continue"
	}
	return doc.Concat(doc.Text(keyword), semicolon(n), p.trailing(n))
}

func (p *printer) printThrow(n *ast.Node) *doc.Doc {
	trailing := p.trailing(n)
	var value *doc.Doc
	if exprs := codeChildren(n); len(exprs) == 1 {
		value = doc.Concat(doc.Text(" "), p.print(exprs[0]))
	}
	return doc.Concat(doc.Text("throw"), value, semicolon(n), trailing)
}

// condition prints `keyword (cond) ` breaking inside the parentheses when
// the condition is too long.
func (p *printer) condition(keyword string, cond *ast.Node) *doc.Doc {
	return doc.Group(
		doc.Text(keyword+" ("),
		doc.Indent(doc.SoftLine(), p.print(cond)),
		doc.SoftLine(),
		doc.Text(") "),
	)
}

func (p *printer) printIf(n *ast.Node) *doc.Doc {
	cond := n.ChildByField("condition")
	body := n.ChildByField("body")
	if cond == nil || body == nil {
		return nil
	}
	trailing := p.trailing(n)
	head := p.condition("if", cond)
	a := n.ChildByField("alternative")
	if a == nil {
		return doc.Concat(doc.Group(head, p.print(body)), trailing)
	}
	inline, carried := p.splitTrailing(body)
	thenDoc := doc.Concat(p.print(body), inline)
	return doc.Concat(doc.Group(head, thenDoc, p.carryInto(carried, " else ", a)), trailing)
}

func (p *printer) printWhile(n *ast.Node) *doc.Doc {
	cond := n.ChildByField("condition")
	body := n.ChildByField("body")
	if cond == nil || body == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.condition("while", cond), p.print(body), trailing)
}

func (p *printer) printRepeat(n *ast.Node) *doc.Doc {
	count := n.ChildByField("count")
	body := n.ChildByField("body")
	if count == nil || body == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.condition("repeat", count), p.print(body), trailing)
}

func (p *printer) printDoWhile(n *ast.Node) *doc.Doc {
	cond := n.ChildByField("condition")
	body := n.ChildByField("body")
	if cond == nil || body == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(
		doc.Text("do "),
		p.print(body),
		doc.Group(
			doc.Text(" while ("),
			doc.Indent(doc.SoftLine(), p.print(cond)),
			doc.SoftLine(),
			doc.Text(");"),
		),
		trailing,
	)
}

// printLocalVars: `var x: int = 1;`. Inside `match (val x = ...)` there is no ';'.
func (p *printer) printLocalVars(n *ast.Node) *doc.Doc {
	kind := n.ChildByField("kind")
	lhs := n.ChildByField("lhs")
	if kind == nil || lhs == nil {
		return nil
	}
	trailing := p.trailing(n)
	var value *doc.Doc
	if v := n.ChildByField("assigned_val"); v != nil {
		value = doc.Concat(doc.Text(" = "), p.print(v))
	}
	var semi *doc.Doc
	if !parentIs(n, "match_expression") {
		semi = doc.Text(";")
	}
	return doc.Concat(doc.Text(kind.Text()+" "), p.print(lhs), value, semi, trailing)
}

func (p *printer) printVarDeclaration(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	var suffix *doc.Doc
	switch {
	case n.ChildByField("redef") != nil:
		suffix = doc.Text(" redef")
	case n.ChildByField("type") != nil:
		suffix = doc.Concat(doc.Text(": "), p.print(n.ChildByField("type")))
	}
	return doc.Concat(p.print(name), suffix, p.trailing(n))
}

func (p *printer) printTupleVars(n *ast.Node) *doc.Doc {
	vars := p.printAll(n.ChildrenByField("vars"))
	return p.list(n, "[", ",", "]", vars, false, p.trailing(n))
}

func (p *printer) printTensorVars(n *ast.Node) *doc.Doc {
	vars := p.printAll(n.ChildrenByField("vars"))
	return p.list(n, "(", ",", ")", vars, false, p.trailing(n))
}

func (p *printer) printEmptyStatement(n *ast.Node) *doc.Doc {
	return doc.Concat(doc.Text(";"), p.trailing(n))
}

// printAssert keeps the form it was written in: `assert(cond, code);` or
// `assert (cond) throw code;`.
func (p *printer) printAssert(n *ast.Node) *doc.Doc {
	cond := n.ChildByField("condition")
	if cond == nil {
		return nil
	}
	trailing := p.trailing(n)
	exc := n.ChildByField("excNo")
	switch {
	case exc == nil:
		return doc.Concat(doc.Text("assert("), p.print(cond), doc.Text(");"), trailing)
	case n.HasChildType("throw"):
		return doc.Concat(
			doc.Group(
				doc.Text("assert ("),
				doc.Indent(doc.SoftLine(), p.print(cond)),
				doc.SoftLine(),
				doc.Text(") throw "),
				p.print(exc),
				doc.Text(";"),
			),
			trailing,
		)
	default:
		return doc.Concat(doc.Text("assert("), p.print(cond), doc.Text(", "), p.print(exc), doc.Text(");"), trailing)
	}
}

func (p *printer) printTryCatch(n *ast.Node) *doc.Doc {
	body := n.ChildByField("try_body")
	clause := n.ChildByField("catch")
	if body == nil || clause == nil {
		return nil
	}
	trailing := p.trailing(n)
	inline, carried := p.splitTrailing(body)
	return doc.Concat(doc.Text("try "), p.print(body), inline, p.carryInto(carried, " catch ", clause), trailing)
}

func (p *printer) printCatchClause(n *ast.Node) *doc.Doc {
	body := n.ChildByField("catch_body")
	if body == nil {
		return nil
	}
	var vars *doc.Doc
	if v1 := n.ChildByField("catch_var1"); v1 != nil {
		parts := []*doc.Doc{p.print(v1)}
		if v2 := n.ChildByField("catch_var2"); v2 != nil {
			parts = append(parts, p.print(v2))
		}
		vars = doc.Concat(inlineList("(", ", ", ")", parts, nil), doc.Text(" "))
	}
	return doc.Concat(vars, p.print(body), p.trailing(n))
}
