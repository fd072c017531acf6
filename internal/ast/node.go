package ast

import (
	"tolkfmt/internal/source"
)

// TypeComment is the node type of comments inserted into the tree.
const TypeComment = "comment"

// Node is one element of the concrete syntax tree. Named nodes carry a
// grammar type such as "function_declaration"; anonymous nodes are tokens
// whose Type is their spelling ("(", "fun", ";").
type Node struct {
	ID         NodeID
	Type       string
	Named      bool
	Span       source.Span
	StartPoint source.Point
	EndPoint   source.Point

	parent   NodeID
	children []NodeID
	fields   []string // parallel to children
	tree     *Tree
}

// Start returns the start byte offset.
func (n *Node) Start() uint32 { return n.Span.Start }

// End returns the end byte offset.
func (n *Node) End() uint32 { return n.Span.End }

// Text returns the exact source slice covered by n.
func (n *Node) Text() string {
	return string(n.tree.File.Content[n.Span.Start:n.Span.End])
}

// IsComment reports whether n is a comment node.
func (n *Node) IsComment() bool { return n.Type == TypeComment }

func (n *Node) Tree() *Tree { return n.tree }

func (n *Node) Parent() *Node {
	return n.tree.Node(n.parent)
}

func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child including anonymous tokens, nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.tree.Node(n.children[i])
}

func (n *Node) Children() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		out = append(out, n.tree.Node(id))
	}
	return out
}

// NamedChildren returns named children, comments included.
func (n *Node) NamedChildren() []*Node {
	out := make([]*Node, 0, len(n.children))
	for _, id := range n.children {
		if c := n.tree.Node(id); c.Named {
			out = append(out, c)
		}
	}
	return out
}

// FirstNamedChild returns the first named child, comments included.
func (n *Node) FirstNamedChild() *Node {
	for _, id := range n.children {
		if c := n.tree.Node(id); c.Named {
			return c
		}
	}
	return nil
}

// LastNamedChild returns the last named child, comments included.
func (n *Node) LastNamedChild() *Node {
	for i := len(n.children) - 1; i >= 0; i-- {
		if c := n.tree.Node(n.children[i]); c.Named {
			return c
		}
	}
	return nil
}

// ChildByField returns the first child stored under field.
func (n *Node) ChildByField(field string) *Node {
	for i, f := range n.fields {
		if f == field {
			return n.tree.Node(n.children[i])
		}
	}
	return nil
}

// ChildrenByField returns every child stored under field, in source order.
func (n *Node) ChildrenByField(field string) []*Node {
	var out []*Node
	for i, f := range n.fields {
		if f == field {
			out = append(out, n.tree.Node(n.children[i]))
		}
	}
	return out
}

// FieldOf returns the field name under which child is stored, or "".
func (n *Node) FieldOf(child *Node) string {
	for i, id := range n.children {
		if id == child.ID {
			return n.fields[i]
		}
	}
	return ""
}

// HasChildType reports whether any direct child (anonymous included) has the given type.
func (n *Node) HasChildType(typ string) bool {
	for _, id := range n.children {
		if n.tree.Node(id).Type == typ {
			return true
		}
	}
	return false
}

// NextSibling returns the following child of the parent, anonymous tokens included.
func (n *Node) NextSibling() *Node {
	p := n.Parent()
	if p == nil {
		return nil
	}
	for i, id := range p.children {
		if id == n.ID {
			return p.Child(i + 1)
		}
	}
	return nil
}

// Walk visits n and its descendants in pre-order; returning false skips the subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, id := range n.children {
		n.tree.Node(id).Walk(fn)
	}
}
