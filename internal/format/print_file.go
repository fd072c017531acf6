package format

import (
	"tolkfmt/internal/ast"
	"tolkfmt/internal/doc"
	"tolkfmt/internal/imports"
)

func (p *printer) printSourceFile(n *ast.Node) *doc.Doc {
	decls := codeChildren(n)
	var parts []*doc.Doc

	if p.sortImports {
		// версия компилятора остаётся над импортами
		var versions, importDecls, rest []*ast.Node
		for _, d := range decls {
			switch d.Type {
			case "tolk_required_version":
				versions = append(versions, d)
			case "import_directive":
				importDecls = append(importDecls, d)
			default:
				rest = append(rest, d)
			}
		}
		for _, v := range versions {
			parts = append(parts, p.printStatement(v), doc.HardLine())
		}
		if len(versions) > 0 && len(importDecls)+len(rest) > 0 {
			parts = append(parts, doc.HardLine())
		}
		parts = append(parts, p.printSortedImports(importDecls, len(rest) > 0))
		decls = rest
	}

	lastRow := -1
	if len(decls) > 0 {
		lastRow = int(decls[len(decls)-1].EndPoint.Row)
	}
	parts = append(parts, p.printDeclarations(decls))
	parts = append(parts, p.printFileTail(n, lastRow))
	return doc.Concat(parts...)
}

// printSortedImports prints imports in canonical order, one per line, with
// an empty line before the declarations that follow.
func (p *printer) printSortedImports(nodes []*ast.Node, more bool) *doc.Doc {
	if len(nodes) == 0 {
		return nil
	}
	list := make([]imports.Import, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, imports.Describe(n))
	}
	imports.Sort(list)

	parts := make([]*doc.Doc, 0, 2*len(list)+1)
	for _, imp := range list {
		parts = append(parts, p.printStatement(imp.Node), doc.HardLine())
	}
	if more {
		parts = append(parts, doc.HardLine())
	}
	return doc.Concat(parts...)
}

func (p *printer) printDeclarations(decls []*ast.Node) *doc.Doc {
	gaps := p.gaps(decls)
	parts := make([]*doc.Doc, 0, 2*len(decls))
	for i, d := range decls {
		parts = append(parts, p.printStatement(d))
		if i < len(gaps) {
			parts = append(parts, doc.Blank(gaps[i]))
		} else {
			parts = append(parts, doc.HardLine())
		}
	}
	return doc.Concat(parts...)
}

// printFileTail prints what the binder left on the file root: comments
// after the last declaration. One empty line before them is kept.
func (p *printer) printFileTail(n *ast.Node, lastRow int) *doc.Doc {
	rest := append(p.comments.TakeDangling(n), p.comments.TakeTrailing(n)...)
	if len(rest) == 0 {
		return nil
	}
	var gap *doc.Doc
	if lastRow >= 0 && rest[0].StartRow-lastRow > 1 {
		gap = doc.HardLine()
	}
	return doc.Concat(gap, formatDangling(rest), doc.HardLine())
}

func (p *printer) printImportDirective(n *ast.Node) *doc.Doc {
	path := n.ChildByField("path")
	if path == nil {
		return nil
	}
	return doc.Concat(
		leadingLines(p.comments.TakeLeading(n)),
		doc.Text("import "),
		p.print(path),
		p.trailing(n),
	)
}

func (p *printer) printRequiredVersion(n *ast.Node) *doc.Doc {
	value := n.ChildByField("value")
	if value == nil {
		return nil
	}
	return doc.Concat(doc.Text("tolk "), p.print(value), p.trailing(n))
}

func (p *printer) printVersionValue(n *ast.Node) *doc.Doc {
	return doc.Concat(doc.Text(n.Text()), p.trailing(n))
}
