package format

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
)

// printFunction covers plain functions, methods and get methods.
func (p *printer) printFunction(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	params := n.ChildByField("parameters")
	special := n.ChildByField("asm_body")
	if special == nil {
		special = n.ChildByField("builtin_specifier")
	}
	body := n.ChildByField("body")
	if body == nil {
		body = special
	}
	if name == nil || params == nil || body == nil {
		return nil
	}

	var keyword, receiver *doc.Doc
	switch n.Type {
	case "get_method_declaration":
		keyword = doc.Text("get fun ")
	case "method_declaration":
		recv := n.ChildByField("receiver")
		if recv == nil {
			return nil
		}
		keyword = doc.Text("fun ")
		receiver = p.print(recv)
	default:
		keyword = doc.Text("fun ")
	}

	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	// комментарий перед телом уходит внутрь тела
	rt := n.ChildByField("return_type")
	prior := params
	if rt != nil {
		prior = rt
	}
	inline, carried := p.splitTrailing(prior)

	signature := []*doc.Doc{
		leading,
		p.print(n.ChildByField("annotations")),
		keyword,
		receiver,
		p.print(name),
		p.print(n.ChildByField("type_parameters")),
		p.print(params),
	}
	if rt != nil {
		signature = append(signature, doc.Text(": "), p.print(rt))
	}
	signature = append(signature, inline)

	var tail *doc.Doc
	if special != nil {
		tail = doc.Concat(trailingDoc(carried), doc.Indent(doc.HardLine(), p.print(body)))
	} else {
		tail = p.carryInto(carried, " ", body)
	}
	return doc.Concat(doc.Concat(signature...), tail, trailing)
}

func (p *printer) printMethodReceiver(n *ast.Node) *doc.Doc {
	recv := n.ChildByField("receiver_type")
	if recv == nil {
		return nil
	}
	return doc.Concat(p.print(recv), doc.Text("."), p.trailing(n))
}

func (p *printer) printParameterList(n *ast.Node) *doc.Doc {
	params := childrenOfType(n, "parameter_declaration")
	trailing := p.trailing(n)
	return p.list(n, "(", ",", ")", p.printAll(params), true, trailing)
}

func (p *printer) printParameter(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	parts := []*doc.Doc{formatLeading(p.comments.TakeLeading(n))}
	if n.ChildByField("mutate") != nil {
		parts = append(parts, doc.Text("mutate "))
	}
	parts = append(parts, p.print(name))
	if typ := n.ChildByField("type"); typ != nil {
		parts = append(parts, doc.Text(": "), p.print(typ))
	}
	if def := n.ChildByField("default"); def != nil {
		parts = append(parts, doc.Text(" = "), p.print(def))
	}
	parts = append(parts, p.trailing(n))
	return doc.Concat(parts...)
}

func (p *printer) printTypeParameters(n *ast.Node) *doc.Doc {
	params := childrenOfType(n, "type_parameter")
	return inlineList("<", ", ", ">", p.printAll(params), p.trailing(n))
}

func (p *printer) printTypeParameter(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	var def *doc.Doc
	if d := n.ChildByField("default"); d != nil {
		def = doc.Concat(doc.Text(" = "), p.print(d))
	}
	return doc.Concat(p.print(name), def, p.trailing(n))
}

// printAnnotationList puts every annotation on its own line above the declaration.
func (p *printer) printAnnotationList(n *ast.Node) *doc.Doc {
	annotations := childrenOfType(n, "annotation")
	if len(annotations) == 0 {
		return nil
	}
	docs := p.printAll(annotations)
	trailing := p.trailing(n)
	parts := make([]*doc.Doc, 0, 2*len(docs)+1)
	for i, d := range docs {
		parts = append(parts, d)
		if i == len(docs)-1 {
			parts = append(parts, trailing)
		}
		parts = append(parts, doc.HardLine())
	}
	return doc.Concat(parts...)
}

func (p *printer) printAnnotation(n *ast.Node) *doc.Doc {
	return doc.Concat(
		formatLeading(p.comments.TakeLeading(n)),
		doc.Text("@"),
		p.print(n.ChildByField("name")),
		p.print(n.ChildByField("arguments")),
		p.trailing(n),
	)
}

func (p *printer) printAnnotationArguments(n *ast.Node) *doc.Doc {
	args := p.printAll(codeChildren(n))
	trailing := p.trailing(n)
	if len(args) < 2 {
		return inlineList("(", "", ")", args, trailing)
	}
	return doc.Concat(doc.Group(
		doc.Text("("),
		doc.Indent(doc.SoftLine(), doc.Join(doc.Text(", "), args)),
		doc.SoftLine(),
		doc.Text(")"),
	), trailing)
}

// printAsmBody: `asm "A" "B"`, strings stay on one line while they fit.
func (p *printer) printAsmBody(n *ast.Node) *doc.Doc {
	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	head := []*doc.Doc{doc.Text("asm")}
	var strs []*doc.Doc
	for _, c := range codeChildren(n) {
		switch c.Type {
		case "asm_arrangement":
			head = append(head, doc.Text(c.Text()))
		case "string_literal":
			strs = append(strs, doc.Line(), p.print(c))
		}
	}
	return doc.Concat(leading, doc.Concat(head...), doc.Group(strs...), trailing)
}
