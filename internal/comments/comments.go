// Package comments binds every comment of a syntax tree to exactly one node
// as a leading, trailing or dangling comment.
//
// Назначение: восстановить, к какой конструкции относится каждый комментарий.
// Не делает: печать; комментарии забирает принтер через Take*.
// Зависимости: internal/ast.
package comments

import (
	"cmp"
	"slices"

	"tolkfmt/internal/ast"
)

// Comment is one comment token.
type Comment struct {
	Node     *ast.Node
	Text     string
	Start    uint32
	End      uint32
	StartRow int
	EndRow   int
}

// Bound holds the comments attached to one node, in source order.
type Bound struct {
	Leading  []Comment
	Trailing []Comment
	Dangling []Comment
}

func (b *Bound) empty() bool {
	return len(b.Leading) == 0 && len(b.Trailing) == 0 && len(b.Dangling) == 0
}

// Fallback records a comment no rule matched; it went to Scope as dangling.
type Fallback struct {
	Comment Comment
	Scope   *ast.Node
}

// Map is the per-format-call comment map keyed by node identity.
type Map struct {
	bound     map[ast.NodeID]*Bound
	fallbacks []Fallback
}

// fallbackScopes: ближайший такой предок забирает непривязанный комментарий.
var fallbackScopes = []string{
	"block_statement", "source_file", "struct_body", "enum_body", "match_body", "object_literal_body",
}

// Bind builds the comment map for the tree rooted at root.
func Bind(root *ast.Node) *Map {
	m := &Map{bound: make(map[ast.NodeID]*Bound)}
	comments := collectComments(root)
	nodes := collectNamedNodes(root)

	index := 0
outer:
	for index < len(comments) {
		for _, node := range nodes {
			c := comments[index]
			if c.End <= node.Start() {
				m.entry(node).Leading = append(m.entry(node).Leading, c)
				index++
				continue outer
			}

			last := lastToken(node)
			if c.Start >= last.End() && c.StartRow == int(last.EndPoint.Row) && isReallyTrailing(node) {
				m.entry(node).Trailing = append(m.entry(node).Trailing, c)
				index++
				continue outer
			}

			if c.Start > node.Start() && c.End < node.End() && !insideChild(c.Node, node) {
				m.entry(node).Dangling = append(m.entry(node).Dangling, c)
				index++
				continue outer
			}

			if c.Node.Parent() == node && !hasCode(node) {
				m.entry(node).Dangling = append(m.entry(node).Dangling, c)
				index++
				continue outer
			}

			if node.Type == "block_statement" && c.Start > node.Start() && c.End < node.End() && !boundToStatement(c, node) {
				m.entry(node).Dangling = append(m.entry(node).Dangling, c)
				index++
				continue outer
			}
		}

		c := comments[index]
		scope := ancestorOfType(c.Node, fallbackScopes...)
		if scope == nil {
			m.entry(root).Trailing = append(m.entry(root).Trailing, c)
		} else {
			m.entry(scope).Dangling = append(m.entry(scope).Dangling, c)
		}
		m.fallbacks = append(m.fallbacks, Fallback{Comment: c, Scope: scope})
		index++
	}
	return m
}

// boundToStatement reports whether a comment inside block is handled by one
// of its statements (leading, same-row trailing or enclosed).
func boundToStatement(c Comment, block *ast.Node) bool {
	statements := 0
	for _, stmt := range block.NamedChildren() {
		if stmt.IsComment() {
			continue
		}
		statements++
		if c.End <= stmt.Start() {
			return true
		}
		if c.Start >= stmt.End() {
			if c.StartRow == int(stmt.EndPoint.Row) {
				return true
			}
			continue
		}
		if c.Start >= stmt.Start() && c.End <= stmt.End() {
			return true
		}
	}
	return false
}

// isReallyTrailing: за узлом идёт комментарий, напрямую или через один
// разделитель: ',' ';' или оператор бинарного выражения (`a + // c`).
// Через запятую в списке аргументов вызова шагать нельзя.
func isReallyTrailing(node *ast.Node) bool {
	next := node.NextSibling()
	if next == nil {
		return false
	}
	if next.IsComment() {
		return true
	}
	switch next.Type {
	case ",":
		if node.Type == "call_argument" {
			return false
		}
	case ";":
	default:
		if !isOperatorOf(next, node.Parent()) {
			return false
		}
	}
	nn := next.NextSibling()
	return nn != nil && nn.IsComment()
}

func isOperatorOf(tok, parent *ast.Node) bool {
	if parent == nil || parent.Type != "binary_operator" {
		return false
	}
	op := parent.ChildByField("operator_name")
	return op != nil && op.ID == tok.ID
}

// hasCode reports whether n has a named child that is not a comment.
func hasCode(n *ast.Node) bool {
	for _, c := range n.NamedChildren() {
		if !c.IsComment() {
			return true
		}
	}
	return false
}

// lastToken descends through last named children.
func lastToken(node *ast.Node) *ast.Node {
	cur := node
	for {
		last := cur.LastNamedChild()
		if last == nil {
			return cur
		}
		cur = last
	}
}

func insideChild(comment, parent *ast.Node) bool {
	for _, child := range parent.NamedChildren() {
		if child.Start() <= comment.Start() && child.End() >= comment.End() {
			return true
		}
	}
	return false
}

func ancestorOfType(n *ast.Node, types ...string) *ast.Node {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if slices.Contains(types, p.Type) {
			return p
		}
	}
	return nil
}

func collectComments(root *ast.Node) []Comment {
	var out []Comment
	root.Walk(func(n *ast.Node) bool {
		if n.IsComment() {
			out = append(out, Comment{
				Node:     n,
				Text:     n.Text(),
				Start:    n.Start(),
				End:      n.End(),
				StartRow: int(n.StartPoint.Row),
				EndRow:   int(n.EndPoint.Row),
			})
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b Comment) int { return cmp.Compare(a.Start, b.Start) })
	return out
}

func collectNamedNodes(root *ast.Node) []*ast.Node {
	var out []*ast.Node
	root.Walk(func(n *ast.Node) bool {
		if n.Named && !n.IsComment() {
			out = append(out, n)
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b *ast.Node) int { return cmp.Compare(a.Start(), b.Start()) })
	return out
}

func (m *Map) entry(n *ast.Node) *Bound {
	b, ok := m.bound[n.ID]
	if !ok {
		b = &Bound{}
		m.bound[n.ID] = b
	}
	return b
}
