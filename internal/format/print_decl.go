package format

import (
	"slices"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
)

func (p *printer) printGlobalVar(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	typ := n.ChildByField("type")
	if name == nil || typ == nil {
		return nil
	}
	return doc.Concat(
		leadingLines(p.comments.TakeLeading(n)),
		p.print(n.ChildByField("annotations")),
		doc.Text("global "),
		p.print(name),
		doc.Text(": "),
		p.print(typ),
		p.trailing(n),
	)
}

func (p *printer) printConstant(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	value := n.ChildByField("value")
	if name == nil || value == nil {
		return nil
	}
	var typ *doc.Doc
	if t := n.ChildByField("type"); t != nil {
		typ = doc.Concat(doc.Text(": "), p.print(t))
	}
	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)
	return doc.Concat(
		leading,
		p.print(n.ChildByField("annotations")),
		doc.Text("const "),
		p.print(name),
		typ,
		doc.Text(" = "),
		p.print(value),
		trailing,
	)
}

// printTypeAlias moves a long union below the '=' with one variant per line.
func (p *printer) printTypeAlias(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	underlying := n.ChildByField("underlying_type")
	if name == nil || underlying == nil {
		return nil
	}
	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	space := doc.Text(" ")
	if underlying.Type == "union_type" {
		space = doc.IfBreak(nil, doc.Text(" "))
	}
	return doc.Concat(
		leading,
		p.print(n.ChildByField("annotations")),
		doc.Text("type "),
		p.print(name),
		p.print(n.ChildByField("type_parameters")),
		doc.Group(doc.Text(" ="), space, p.print(underlying)),
		trailing,
	)
}

func (p *printer) printStruct(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	body := n.ChildByField("body")
	if name == nil || body == nil {
		return nil
	}
	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	var pack *doc.Doc
	if prefix := n.ChildByField("pack_prefix"); prefix != nil {
		pack = doc.Concat(doc.Text("("), p.print(prefix), doc.Text(") "))
	}
	params := n.ChildByField("type_parameters")
	prior := name
	if params != nil {
		prior = params
	}
	inline, carried := p.splitTrailing(prior)
	return doc.Concat(
		leading,
		p.print(n.ChildByField("annotations")),
		doc.Text("struct "),
		pack,
		p.print(name),
		p.print(params),
		inline,
		p.carryInto(carried, " ", body),
		trailing,
	)
}

func (p *printer) printStructBody(n *ast.Node) *doc.Doc {
	fields := childrenOfType(n, "struct_field_declaration")
	return p.printMembers(n, fields, nil)
}

// printMembers lays out a struct or enum body: always broken, one member
// per line, empty lines between members kept as a single one. Comments
// written before '{' go first inside the body.
func (p *printer) printMembers(n *ast.Node, members []*ast.Node, sep *doc.Doc) *doc.Doc {
	carried := p.takeCarry()
	leading := p.comments.TakeLeading(n)
	trailing := p.trailing(n)
	dangling := p.comments.TakeDangling(n)
	if len(members) == 0 {
		all := slices.Concat(carried, leading, dangling)
		if len(all) == 0 {
			return doc.Concat(doc.Text("{}"), trailing)
		}
		return doc.Concat(braces(formatDangling(all)), trailing)
	}

	gaps := p.gaps(members)
	inner := []*doc.Doc{leadingLines(carried), leadingLines(leading)}
	for i, m := range members {
		inner = append(inner, p.printStatement(m), sep)
		if i < len(gaps) {
			inner = append(inner, doc.Blank(gaps[i]))
		}
	}
	if len(dangling) > 0 {
		inner = append(inner, doc.HardLine(), formatDangling(dangling))
	}
	return doc.Concat(braces(inner...), trailing)
}

// fieldModifiers lists the canonical modifier order.
var fieldModifiers = []string{"private", "readonly"}

func (p *printer) printStructField(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	typ := n.ChildByField("type")
	if name == nil || typ == nil {
		return nil
	}
	leading := formatLeading(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	var mods []*doc.Doc
	if m := n.ChildByField("modifiers"); m != nil {
		present := make(map[string]bool)
		for _, c := range m.Children() {
			present[c.Text()] = true
		}
		for _, mod := range fieldModifiers {
			if present[mod] {
				mods = append(mods, doc.Text(mod+" "))
			}
		}
		// комментарии внутри списка модификаторов
		mods = append(mods, trailingDoc(p.comments.TakeAll(m)))
	}

	var def *doc.Doc
	if d := n.ChildByField("default"); d != nil {
		def = doc.Concat(doc.Text(" = "), p.print(d))
	}
	return doc.Concat(
		leading,
		doc.Concat(mods...),
		p.print(name),
		doc.Text(": "),
		p.print(typ),
		def,
		trailing,
	)
}

func (p *printer) printEnum(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	body := n.ChildByField("body")
	if name == nil || body == nil {
		return nil
	}
	leading := leadingLines(p.comments.TakeLeading(n))
	trailing := p.trailing(n)

	prior := name
	t := n.ChildByField("backed_type")
	if t != nil {
		prior = t
	}
	inline, carried := p.splitTrailing(prior)
	var backed *doc.Doc
	if t != nil {
		backed = doc.Concat(doc.Text(": "), p.print(t))
	}
	return doc.Concat(
		leading,
		p.print(n.ChildByField("annotations")),
		doc.Text("enum "),
		p.print(name),
		backed,
		inline,
		p.carryInto(carried, " ", body),
		trailing,
	)
}

func (p *printer) printEnumBody(n *ast.Node) *doc.Doc {
	members := childrenOfType(n, "enum_member_declaration")
	return p.printMembers(n, members, doc.Text(","))
}

func (p *printer) printEnumMember(n *ast.Node) *doc.Doc {
	name := n.ChildByField("name")
	if name == nil {
		return nil
	}
	leading := formatLeading(p.comments.TakeLeading(n))
	trailing := p.trailing(n)
	var def *doc.Doc
	if d := n.ChildByField("default"); d != nil {
		def = doc.Concat(doc.Text(" = "), p.print(d))
	}
	return doc.Concat(leading, p.print(name), def, trailing)
}
