package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{Start: a, End: b} }

// "f(a) // c"
func buildCall(t *testing.T) *Tree {
	t.Helper()
	file := source.NewFile("t.tolk", []byte("f(a) // c\n"))
	b := NewBuilder(file, 0)
	callee := b.Leaf("identifier", true, sp(0, 1))
	lp := b.Leaf("(", false, sp(1, 2))
	arg := b.Node("call_argument", F("expr", b.Leaf("identifier", true, sp(2, 3))))
	rp := b.Leaf(")", false, sp(3, 4))
	args := b.Node("argument_list", C(lp), C(arg), C(rp))
	call := b.Node("function_call", F("callee", callee), F("arguments", args))
	root := b.Node("source_file", C(call))
	b.InsertComments(root, []source.Span{sp(5, 9)})
	return b.Finish(root)
}

func TestBuilderFieldsAndSpans(t *testing.T) {
	tree := buildCall(t)
	root := tree.RootNode()
	assert.Equal(t, sp(0, 10), root.Span)

	call := root.FirstNamedChild()
	require.NotNil(t, call)
	assert.Equal(t, "function_call", call.Type)
	assert.Equal(t, sp(0, 4), call.Span)
	assert.Equal(t, "f", call.ChildByField("callee").Text())
	assert.Nil(t, call.ChildByField("missing"))

	args := call.ChildByField("arguments")
	assert.Equal(t, 3, args.ChildCount())
	assert.Len(t, args.NamedChildren(), 1)
	assert.Equal(t, "arguments", call.FieldOf(args))
	assert.Equal(t, call, args.Parent())
	assert.True(t, args.HasChildType("("))
}

func TestInsertCommentAtDeepestContainer(t *testing.T) {
	tree := buildCall(t)
	root := tree.RootNode()
	named := root.NamedChildren()
	require.Len(t, named, 2)
	assert.True(t, named[1].IsComment())
	assert.Equal(t, "// c", named[1].Text())
	assert.Equal(t, named[1], named[0].NextSibling())
	assert.Equal(t, source.Point{Row: 0, Column: 5}, named[1].StartPoint)
}

func TestInsertCommentInsideNode(t *testing.T) {
	file := source.NewFile("t.tolk", []byte("{ /*x*/ a; }"))
	b := NewBuilder(file, 0)
	lb := b.Leaf("{", false, sp(0, 1))
	stmt := b.Node("expression_statement", C(b.Leaf("identifier", true, sp(8, 9))), C(b.Leaf(";", false, sp(9, 10))))
	rb := b.Leaf("}", false, sp(11, 12))
	block := b.Node("block_statement", C(lb), C(stmt), C(rb))
	root := b.Node("source_file", C(block))
	b.InsertComments(root, []source.Span{sp(2, 7)})
	tree := b.Finish(root)

	assert.Equal(t, "(source_file (block_statement (comment) (expression_statement (identifier))))", Dump(tree.RootNode()))
	blk := tree.RootNode().FirstNamedChild()
	assert.Equal(t, "{", blk.Child(0).Type)
	assert.True(t, blk.Child(1).IsComment())
}

func TestWalkAndDump(t *testing.T) {
	tree := buildCall(t)
	var types []string
	tree.RootNode().Walk(func(n *Node) bool {
		if n.Named {
			types = append(types, n.Type)
		}
		return n.Type != "argument_list"
	})
	assert.Equal(t, []string{"source_file", "function_call", "identifier", "argument_list", "comment"}, types)
	assert.Equal(t,
		"(source_file (function_call callee: (identifier) arguments: (argument_list (call_argument expr: (identifier)))) (comment))",
		Dump(tree.RootNode()))
}

func TestArena(t *testing.T) {
	a := NewArena[int](0)
	assert.Nil(t, a.Get(0))
	id := a.Allocate(7)
	assert.Equal(t, uint32(1), id)
	assert.Equal(t, 7, *a.Get(id))
	assert.Nil(t, a.Get(2))
	assert.Equal(t, uint32(1), a.Len())
}
