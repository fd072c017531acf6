package ast

import (
	"strings"
)

// Dump renders the named structure of n as an S-expression, e.g.
// (source_file (import_directive path: (string_literal))). Comments are
// included; anonymous tokens are not.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node) {
	sb.WriteByte('(')
	sb.WriteString(n.Type)
	for i, id := range n.children {
		ch := n.tree.Node(id)
		if !ch.Named {
			continue
		}
		sb.WriteByte(' ')
		if f := n.fields[i]; f != "" {
			sb.WriteString(f)
			sb.WriteString(": ")
		}
		dump(sb, ch)
	}
	sb.WriteByte(')')
}
