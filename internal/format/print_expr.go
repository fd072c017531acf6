package format

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/comments"
	"tolkfmt/internal/doc"
)

// printBinary breaks after the operator and indents the right operand. A
// left-nested chain `a + b + c` shares the outermost indent, so every
// operand after the first lines up. Trailing comments of a nested binary
// expression are left to the outermost one.
func (p *printer) printBinary(n *ast.Node) *doc.Doc {
	operands := codeChildren(n)
	op := n.ChildByField("operator_name")
	if len(operands) != 2 || op == nil {
		return nil
	}
	left, right := operands[0], operands[1]

	leading := formatLeading(p.comments.TakeLeading(n))
	afterOp := afterOperator(p.comments.TakeTrailing(left))
	var trailing *doc.Doc
	if !parentIs(n, "binary_operator") {
		trailing = p.trailing(n)
	}
	chain := doc.Concat(
		p.print(left),
		doc.Text(" "+op.Text()),
		afterOp,
		doc.Line(),
		doc.Group(p.print(right)),
		trailing,
	)
	if isLeftOperand(n) {
		return doc.Concat(leading, chain)
	}
	return doc.Concat(leading, doc.Group(doc.Indent(chain)))
}

// isLeftOperand reports whether n is the left side of a binary expression.
func isLeftOperand(n *ast.Node) bool {
	if !parentIs(n, "binary_operator") {
		return false
	}
	operands := codeChildren(n.Parent())
	return len(operands) == 2 && operands[0].ID == n.ID
}

// afterOperator moves comments that followed the left operand behind the
// operator: `a + // note` then the right operand on the next line.
func afterOperator(cs []comments.Comment) *doc.Doc {
	parts := make([]*doc.Doc, 0, len(cs))
	for _, c := range cs {
		if isLineComment(c.Text) {
			parts = append(parts, doc.Text(" "), doc.LineSuffix(doc.Text(c.Text)), doc.BreakParent())
		} else {
			parts = append(parts, doc.Text(" "+c.Text))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) printUnary(n *ast.Node) *doc.Doc {
	op := n.ChildByField("operator_name")
	arg := n.ChildByField("argument")
	if op == nil || arg == nil {
		return nil
	}
	return doc.Concat(doc.Text(op.Text()), p.print(arg), p.trailing(n))
}

func (p *printer) printAssignment(n *ast.Node) *doc.Doc {
	left := n.ChildByField("left")
	right := n.ChildByField("right")
	if left == nil || right == nil {
		return nil
	}
	return doc.Concat(p.print(left), doc.Text(" = "), p.print(right), p.trailing(n))
}

func (p *printer) printSetAssignment(n *ast.Node) *doc.Doc {
	left := n.ChildByField("left")
	op := n.ChildByField("operator_name")
	right := n.ChildByField("right")
	if left == nil || op == nil || right == nil {
		return nil
	}
	return doc.Concat(
		doc.Group(p.print(left), doc.Text(" "+op.Text()+" "), p.print(right)),
		p.trailing(n),
	)
}

// printTernary moves both branches to their own indented lines when the
// whole expression does not fit.
func (p *printer) printTernary(n *ast.Node) *doc.Doc {
	cond := n.ChildByField("condition")
	cons := n.ChildByField("consequence")
	alt := n.ChildByField("alternative")
	if cond == nil || cons == nil || alt == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Group(
		p.print(cond),
		doc.Indent(
			doc.Line(), doc.Text("? "), p.print(cons),
			doc.Line(), doc.Text(": "), p.print(alt),
		),
		trailing,
	)
}

// printDotAccess lets a long call chain break before each '.'. A field
// access right after an object literal stays glued to its '}'.
func (p *printer) printDotAccess(n *ast.Node) *doc.Doc {
	obj := n.ChildByField("obj")
	field := n.ChildByField("field")
	if obj == nil || field == nil {
		return nil
	}
	trailing := p.trailing(n)
	fieldLeading := p.comments.TakeLeading(field)
	qualifier := p.print(obj)
	name := p.print(field)

	if obj.Type == "object_literal" && len(fieldLeading) == 0 {
		return doc.Group(qualifier, doc.Text("."), name, trailing)
	}
	return doc.Group(
		qualifier,
		doc.Indent(doc.SoftLine(), formatLeading(fieldLeading), doc.Text("."), name, trailing),
	)
}

func (p *printer) printFunctionCall(n *ast.Node) *doc.Doc {
	callee := n.ChildByField("callee")
	args := n.ChildByField("arguments")
	if callee == nil || args == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.print(callee), p.print(args), trailing)
}

func (p *printer) printArgumentList(n *ast.Node) *doc.Doc {
	args := childrenOfType(n, "call_argument")
	trailing := p.trailing(n)
	return p.list(n, "(", ",", ")", p.printAll(args), false, trailing)
}

func (p *printer) printCallArgument(n *ast.Node) *doc.Doc {
	expr := n.ChildByField("expr")
	if expr == nil {
		return nil
	}
	leading := formatLeading(p.comments.TakeLeading(n))
	trailing := p.trailing(n)
	var mutate *doc.Doc
	if n.HasChildType("mutate") {
		mutate = doc.Text("mutate ")
	}
	return doc.Concat(leading, mutate, p.print(expr), trailing)
}

func (p *printer) printParenthesizedExpr(n *ast.Node) *doc.Doc {
	inner := n.ChildByField("inner")
	if inner == nil {
		return nil
	}
	return doc.Concat(doc.Text("("), p.print(inner), doc.Text(")"), p.trailing(n))
}

// printTensorExpr keeps the comma of `(x,)`, which is not a parenthesized x.
func (p *printer) printTensorExpr(n *ast.Node) *doc.Doc {
	items := p.printAll(codeChildren(n))
	trailing := p.trailing(n)
	if len(items) == 1 {
		return doc.Concat(doc.Text("("), items[0], doc.Text(",)"), trailing)
	}
	return p.list(n, "(", ",", ")", items, false, trailing)
}

func (p *printer) printTypedTuple(n *ast.Node) *doc.Doc {
	items := p.printAll(codeChildren(n))
	trailing := p.trailing(n)
	return p.list(n, "[", ",", "]", items, false, trailing)
}

func (p *printer) printCastAs(n *ast.Node) *doc.Doc {
	expr := n.ChildByField("expr")
	to := n.ChildByField("casted_to")
	if expr == nil || to == nil {
		return nil
	}
	return doc.Concat(p.print(expr), doc.Text(" as "), p.print(to), p.trailing(n))
}

// printIsType covers both `is` and `!is`.
func (p *printer) printIsType(n *ast.Node) *doc.Doc {
	expr := n.ChildByField("expr")
	op := n.ChildByField("operator")
	rhs := n.ChildByField("rhs_type")
	if expr == nil || op == nil || rhs == nil {
		return nil
	}
	return doc.Concat(p.print(expr), doc.Text(" "+op.Text()+" "), p.print(rhs), p.trailing(n))
}

func (p *printer) printNotNull(n *ast.Node) *doc.Doc {
	inner := n.ChildByField("inner")
	if inner == nil {
		return nil
	}
	return doc.Concat(p.print(inner), doc.Text("!"), p.trailing(n))
}

func (p *printer) printLazy(n *ast.Node) *doc.Doc {
	arg := n.ChildByField("argument")
	if arg == nil {
		return nil
	}
	return doc.Concat(doc.Text("lazy "), p.print(arg), p.trailing(n))
}

func (p *printer) printObjectLiteral(n *ast.Node) *doc.Doc {
	body := n.ChildByField("arguments")
	if body == nil {
		return nil
	}
	var typ *doc.Doc
	if t := n.ChildByField("type"); t != nil {
		typ = doc.Concat(p.print(t), doc.Text(" "))
	}
	trailing := p.trailing(n)
	return doc.Concat(typ, p.print(body), trailing)
}

// printObjectLiteralBody keeps up to two fields on one line when they fit;
// longer literals put every field on its own line.
func (p *printer) printObjectLiteralBody(n *ast.Node) *doc.Doc {
	args := childrenOfType(n, "instance_argument")
	trailing := p.trailing(n)
	dangling := p.comments.TakeDangling(n)
	if len(args) == 0 {
		if len(dangling) == 0 {
			return doc.Concat(doc.Text("{}"), trailing)
		}
		return doc.Concat(braces(formatDangling(dangling)), trailing)
	}

	parts := make([]*doc.Doc, 0, len(args))
	for i, a := range args {
		parts = append(parts, p.printInstanceArgument(a, i == len(args)-1))
	}
	sep := doc.Line()
	if len(args) > 2 {
		sep = doc.HardLine()
	}
	inner := make([]*doc.Doc, 0, 2*len(parts)+2)
	for _, part := range parts {
		inner = append(inner, sep, part)
	}
	if len(dangling) > 0 {
		inner = append(inner, doc.HardLine(), formatDangling(dangling))
	}
	return doc.Concat(
		doc.Group(doc.Text("{"), doc.Indent(inner...), sep, doc.Text("}")),
		trailing,
	)
}

// printInstanceArgument prints one `name: value` field with its comma.
// `{ foo: foo }` becomes `{ foo }`.
func (p *printer) printInstanceArgument(n *ast.Node, last bool) *doc.Doc {
	if hasIgnoreDirective(p.comments.Leading(n)) {
		return doc.Concat(p.verbatim(n), doc.Text(","))
	}
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	leading := formatLeading(p.comments.TakeLeading(n))
	trailing := p.trailing(n)
	comma := doc.Text(",")
	if last {
		comma = doc.IfBreak(doc.Text(","), nil)
	}

	value := n.ChildByField("value")
	var rest *doc.Doc
	switch {
	case value != nil && value.Type == "identifier" && value.Text() == name.Text() &&
		len(p.comments.Leading(value)) == 0 && len(p.comments.Trailing(value)) == 0:
		rest = nil
	case value != nil:
		rest = doc.Concat(doc.Text(": "), p.print(value))
	case n.HasChildType(":"):
		rest = doc.Text(":")
	}
	return doc.Concat(leading, p.print(name), rest, comma, trailing)
}

func (p *printer) printGenericInstantiation(n *ast.Node) *doc.Doc {
	expr := n.ChildByField("expr")
	types := n.ChildByField("instantiationTs")
	if expr == nil || types == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.print(expr), p.print(types), trailing)
}
