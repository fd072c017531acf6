package ast

import (
	"slices"

	"tolkfmt/internal/source"
)

// Child pairs a node with the field it is stored under ("" for none).
type Child struct {
	ID    NodeID
	Field string
}

// C wraps an unlabelled child.
func C(id NodeID) Child { return Child{ID: id} }

// F wraps a child stored under field.
func F(field string, id NodeID) Child { return Child{ID: id, Field: field} }

// Builder allocates nodes bottom-up. Pointers into the arena are not
// stable across allocations, so Builder works with NodeIDs only.
type Builder struct {
	file  *source.File
	nodes *Arena[Node]
}

func NewBuilder(file *source.File, capHint uint) *Builder {
	if capHint == 0 {
		capHint = 1 << 8
	}
	return &Builder{file: file, nodes: NewArena[Node](capHint)}
}

// Leaf allocates a childless node.
func (b *Builder) Leaf(typ string, named bool, sp source.Span) NodeID {
	id := NodeID(b.nodes.Allocate(Node{Type: typ, Named: named, Span: sp}))
	b.nodes.Get(uint32(id)).ID = id
	return id
}

// Node allocates a named node whose span covers its children. Invalid
// child IDs are skipped so optional parts can be passed unconditionally.
func (b *Builder) Node(typ string, children ...Child) NodeID {
	n := Node{Type: typ, Named: true}
	first := true
	for _, ch := range children {
		if !ch.ID.IsValid() {
			continue
		}
		sp := b.nodes.Get(uint32(ch.ID)).Span
		if first {
			n.Span = sp
			first = false
		} else {
			n.Span = n.Span.Cover(sp)
		}
		n.children = append(n.children, ch.ID)
		n.fields = append(n.fields, ch.Field)
	}
	id := NodeID(b.nodes.Allocate(n))
	b.nodes.Get(uint32(id)).ID = id
	return id
}

// SetSpan overrides the span of id.
func (b *Builder) SetSpan(id NodeID, sp source.Span) {
	b.nodes.Get(uint32(id)).Span = sp
}

// Span returns the span of id.
func (b *Builder) Span(id NodeID) source.Span {
	return b.nodes.Get(uint32(id)).Span
}

// InsertComments places every comment into the deepest node that strictly
// contains it, in source order among that node's children.
func (b *Builder) InsertComments(root NodeID, comments []source.Span) {
	for _, c := range comments {
		b.insertComment(root, c)
	}
}

func (b *Builder) insertComment(parent NodeID, c source.Span) {
	for {
		next := NoNodeID
		for _, id := range b.nodes.Get(uint32(parent)).children {
			ch := b.nodes.Get(uint32(id))
			if len(ch.children) > 0 && ch.Span.Start < c.Start && c.End < ch.Span.End {
				next = id
				break
			}
		}
		if !next.IsValid() {
			break
		}
		parent = next
	}

	leaf := b.Leaf(TypeComment, true, c)
	p := b.nodes.Get(uint32(parent))
	pos := len(p.children)
	for i, id := range p.children {
		if b.nodes.Get(uint32(id)).Span.Start >= c.End {
			pos = i
			break
		}
	}
	p.children = slices.Insert(p.children, pos, leaf)
	p.fields = slices.Insert(p.fields, pos, "")
}

// Finish links parents, computes points and returns the tree. The root
// always spans the whole file.
func (b *Builder) Finish(root NodeID) *Tree {
	tree := &Tree{File: b.file, Nodes: b.nodes, Root: root}
	b.SetSpan(root, source.Span{File: b.file.ID, Start: 0, End: uint32(len(b.file.Content))}) // #nosec G115 -- checked by source.File
	nodes := b.nodes.Slice()
	for i := range nodes {
		n := &nodes[i]
		n.tree = tree
		n.StartPoint = b.file.Point(n.Span.Start)
		n.EndPoint = b.file.Point(n.Span.End)
		for _, ch := range n.children {
			nodes[ch-1].parent = n.ID
		}
	}
	return tree
}
