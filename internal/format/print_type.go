package format

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
)

// printUnionType prints `A | B | C` flat, or one variant per line with a
// leading '|' when it does not fit.
func (p *printer) printUnionType(n *ast.Node) *doc.Doc {
	variants := p.unionVariants(n)
	if len(variants) == 0 {
		return nil
	}
	parts := []*doc.Doc{doc.SoftLine(), doc.IfBreak(doc.Text("| "), nil), variants[0]}
	for _, v := range variants[1:] {
		parts = append(parts, doc.Line(), doc.Text("| "), v)
	}
	return doc.Group(doc.Indent(parts...))
}

// unionVariants flattens the right-nested union chain. Comments of the
// nested union nodes stay next to the variants they surround.
func (p *printer) unionVariants(n *ast.Node) []*doc.Doc {
	lhs := n.ChildByField("lhs")
	rhs := n.ChildByField("rhs")
	if lhs == nil || rhs == nil {
		return nil
	}
	lead := formatLeading(p.comments.TakeLeading(n))
	trail := p.trailing(n)
	out := []*doc.Doc{doc.Concat(lead, p.print(lhs))}
	if rhs.Type != "union_type" {
		return append(out, doc.Concat(p.print(rhs), trail))
	}
	rest := p.unionVariants(rhs)
	if len(rest) == 0 {
		return nil
	}
	rest[len(rest)-1] = doc.Concat(rest[len(rest)-1], trail)
	return append(out, rest...)
}

func (p *printer) printNullableType(n *ast.Node) *doc.Doc {
	inner := n.ChildByField("inner")
	if inner == nil {
		return nil
	}
	return doc.Concat(p.print(inner), doc.Text("?"), p.trailing(n))
}

func (p *printer) printParenthesizedType(n *ast.Node) *doc.Doc {
	inner := n.ChildByField("inner")
	if inner == nil {
		return nil
	}
	return doc.Concat(doc.Text("("), p.print(inner), doc.Text(")"), p.trailing(n))
}

// printTensorType keeps the comma of a one-element tensor, `(int,)`, since
// `(int)` is a parenthesized type.
func (p *printer) printTensorType(n *ast.Node) *doc.Doc {
	types := p.printAll(n.ChildrenByField("type"))
	trailing := p.trailing(n)
	if len(types) == 1 {
		return doc.Concat(doc.Text("("), types[0], doc.Text(",)"), trailing)
	}
	return p.list(n, "(", ",", ")", types, false, trailing)
}

func (p *printer) printTupleType(n *ast.Node) *doc.Doc {
	types := p.printAll(n.ChildrenByField("type"))
	return p.list(n, "[", ",", "]", types, false, p.trailing(n))
}

func (p *printer) printFunCallableType(n *ast.Node) *doc.Doc {
	params := n.ChildByField("param_types")
	ret := n.ChildByField("return_type")
	if params == nil || ret == nil {
		return nil
	}
	return doc.Concat(p.print(params), doc.Text(" -> "), p.print(ret), p.trailing(n))
}

func (p *printer) printTypeInstantiatedTs(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.print(name), p.print(n.ChildByField("arguments")), trailing)
}

func (p *printer) printInstantiationList(n *ast.Node) *doc.Doc {
	types := p.printAll(n.ChildrenByField("types"))
	return inlineList("<", ", ", ">", types, p.trailing(n))
}
