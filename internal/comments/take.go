package comments

import (
	"cmp"
	"slices"

	"tolkfmt/internal/ast"
)

// Leading returns the leading comments of n without draining them.
func (m *Map) Leading(n *ast.Node) []Comment {
	if b, ok := m.bound[n.ID]; ok {
		return b.Leading
	}
	return nil
}

// Trailing returns the trailing comments of n without draining them.
func (m *Map) Trailing(n *ast.Node) []Comment {
	if b, ok := m.bound[n.ID]; ok {
		return b.Trailing
	}
	return nil
}

// TakeLeading returns and clears the leading comments of n.
func (m *Map) TakeLeading(n *ast.Node) []Comment {
	b, ok := m.bound[n.ID]
	if !ok {
		return nil
	}
	out := b.Leading
	b.Leading = nil
	return out
}

// TakeTrailing returns and clears the trailing comments of n.
func (m *Map) TakeTrailing(n *ast.Node) []Comment {
	b, ok := m.bound[n.ID]
	if !ok {
		return nil
	}
	out := b.Trailing
	b.Trailing = nil
	return out
}

// TakeDangling returns and clears the dangling comments of n.
func (m *Map) TakeDangling(n *ast.Node) []Comment {
	b, ok := m.bound[n.ID]
	if !ok {
		return nil
	}
	out := b.Dangling
	b.Dangling = nil
	return out
}

// TakeAll drains every comment bound to n or any of its descendants, in
// source order.
func (m *Map) TakeAll(n *ast.Node) []Comment {
	var out []Comment
	n.Walk(func(d *ast.Node) bool {
		if b, ok := m.bound[d.ID]; ok {
			out = append(out, b.Leading...)
			out = append(out, b.Trailing...)
			out = append(out, b.Dangling...)
			b.Leading, b.Trailing, b.Dangling = nil, nil, nil
		}
		return true
	})
	slices.SortStableFunc(out, func(a, b Comment) int { return cmp.Compare(a.Start, b.Start) })
	return out
}

// Fallbacks lists comments attached by the fallback rule.
func (m *Map) Fallbacks() []Fallback {
	return m.fallbacks
}

// Leftover returns the comments no printer handler took, keyed by owner node.
// After a complete print this is empty.
func (m *Map) Leftover() map[ast.NodeID]Bound {
	var out map[ast.NodeID]Bound
	for id, b := range m.bound {
		if b.empty() {
			continue
		}
		if out == nil {
			out = make(map[ast.NodeID]Bound)
		}
		out[id] = *b
	}
	return out
}

// Len counts comments still held by the map.
func (m *Map) Len() int {
	total := 0
	for _, b := range m.bound {
		total += len(b.Leading) + len(b.Trailing) + len(b.Dangling)
	}
	return total
}
