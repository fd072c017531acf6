// Package testkit holds structural checks shared by parser, formatter and fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"tolkfmt/internal/ast"
)

// CheckTreeInvariants runs a minimal set of span invariants on a parsed tree:
// 1) the root spans exactly the file content
// 2) every child span lies within its parent's span
// 3) siblings are ordered and do not overlap
// 4) every child links back to its parent
func CheckTreeInvariants(tree *ast.Tree) error {
	if tree == nil || tree.File == nil {
		return fmt.Errorf("nil tree or file")
	}
	root := tree.RootNode()
	lenContent, err := safecast.Conv[uint32](len(tree.File.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if root.Start() != 0 || root.End() != lenContent {
		return fmt.Errorf("root span %v does not cover file of %d bytes", root.Span, lenContent)
	}

	var firstErr error
	root.Walk(func(n *ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if n.End() < n.Start() {
			firstErr = fmt.Errorf("%s: inverted span %v", n.Type, n.Span)
			return false
		}
		var prev *ast.Node
		for _, ch := range n.Children() {
			if ch.Parent() != n {
				firstErr = fmt.Errorf("%s: child %s has wrong parent", n.Type, ch.Type)
				return false
			}
			if ch.ChildCount() == 0 && ch.Start() == ch.End() {
				continue // пустой узел без позиции
			}
			if ch.Start() < n.Start() || ch.End() > n.End() {
				firstErr = fmt.Errorf("%s %v: child %s %v outside parent", n.Type, n.Span, ch.Type, ch.Span)
				return false
			}
			if prev != nil && ch.Start() < prev.End() {
				firstErr = fmt.Errorf("%s: child %s %v overlaps %s %v", n.Type, ch.Type, ch.Span, prev.Type, prev.Span)
				return false
			}
			prev = ch
		}
		return true
	})
	return firstErr
}

// CommentTexts lists the text of every comment in source order.
func CommentTexts(tree *ast.Tree) []string {
	var out []string
	tree.RootNode().Walk(func(n *ast.Node) bool {
		if n.IsComment() {
			out = append(out, n.Text())
		}
		return true
	})
	return out
}
