package ast

import (
	"tolkfmt/internal/source"
)

// Tree is a parsed file: an arena of nodes plus the root.
type Tree struct {
	File  *source.File
	Nodes *Arena[Node]
	Root  NodeID
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) RootNode() *Node {
	return t.Node(t.Root)
}

// Source returns the full text of the file.
func (t *Tree) Source() string {
	return string(t.File.Content)
}
