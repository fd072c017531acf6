package format

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
)

func (p *printer) printMatchExpression(n *ast.Node) *doc.Doc {
	subject := n.ChildByField("expr")
	if subject == nil {
		return nil
	}
	trailing := p.trailing(n)
	body := doc.Text("{}")
	if b := n.ChildByField("body"); b != nil {
		body = p.print(b)
	}
	return doc.Concat(doc.Text("match ("), p.print(subject), doc.Text(") "), body, trailing)
}

// printMatchBody always breaks: one arm per line, empty lines between arms kept.
func (p *printer) printMatchBody(n *ast.Node) *doc.Doc {
	arms := childrenOfType(n, "match_arm")
	trailing := p.trailing(n)
	dangling := p.comments.TakeDangling(n)
	if len(arms) == 0 && len(dangling) == 0 {
		return doc.Concat(doc.Text("{}"), trailing)
	}

	gaps := p.gaps(arms)
	var inner []*doc.Doc
	for i, arm := range arms {
		inner = append(inner, p.printStatement(arm))
		if i < len(gaps) {
			inner = append(inner, doc.Blank(gaps[i]))
		}
	}
	if len(dangling) > 0 {
		if len(arms) > 0 {
			inner = append(inner, doc.HardLine())
		}
		inner = append(inner, formatDangling(dangling))
	}
	return doc.Concat(braces(inner...), trailing)
}

// printMatchArm: `pattern => body`, with ',' after every body except a block.
func (p *printer) printMatchArm(n *ast.Node) *doc.Doc {
	block := n.ChildByField("block")
	body := block
	for _, field := range []string{"return", "throw", "expr"} {
		if body != nil {
			break
		}
		body = n.ChildByField(field)
	}
	if body == nil {
		return nil
	}
	trailing := p.trailing(n)

	var pattern *doc.Doc
	switch {
	case n.ChildByField("pattern_type") != nil:
		pattern = p.print(n.ChildByField("pattern_type"))
	case n.ChildByField("pattern_expr") != nil:
		pattern = p.print(n.ChildByField("pattern_expr"))
	case n.ChildByField("pattern_else") != nil:
		pattern = doc.Text("else")
	}

	var comma *doc.Doc
	if block == nil {
		comma = doc.Text(",")
	}
	return doc.Concat(pattern, doc.Text(" => "), p.print(body), comma, trailing)
}

// printMatchStatement drops the optional ';' after a statement-level match.
func (p *printer) printMatchStatement(n *ast.Node) *doc.Doc {
	exprs := childrenOfType(n, "match_expression")
	if len(exprs) != 1 {
		return nil
	}
	trailing := p.trailing(n)
	return doc.Concat(p.print(exprs[0]), trailing)
}
