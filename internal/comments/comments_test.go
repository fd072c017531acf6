package comments_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/comments"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
)

func bind(t *testing.T, input string) (*ast.Tree, *comments.Map) {
	t.Helper()
	tree := parser.Parse(source.NewFile("test.tolk", []byte(input)), parser.Options{})
	require.NotNil(t, tree)
	return tree, comments.Bind(tree.RootNode())
}

func find(t *testing.T, tree *ast.Tree, typ, text string) *ast.Node {
	t.Helper()
	var found *ast.Node
	tree.RootNode().Walk(func(n *ast.Node) bool {
		if found == nil && n.Type == typ && n.Text() == text {
			found = n
		}
		return found == nil
	})
	require.NotNil(t, found, "no %s %q", typ, text)
	return found
}

func texts(cs []comments.Comment) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Text)
	}
	return out
}

func TestLeadingBeforeStatement(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    // hi\n    a;\n}\n")
	stmt := find(t, tree, "expression_statement", "a")
	assert.Equal(t, []string{"// hi"}, texts(m.Leading(stmt)))
	assert.Empty(t, m.Fallbacks())
}

func TestTrailingSameRow(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    foo(); // c\n    bar();\n}\n")
	stmt := find(t, tree, "expression_statement", "foo()")
	assert.Equal(t, []string{"// c"}, texts(m.Trailing(stmt)))
	assert.Empty(t, m.Leading(find(t, tree, "expression_statement", "bar()")))
}

func TestDanglingInEmptyBlock(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    // only\n}\n")
	block := find(t, tree, "block_statement", "{\n    // only\n}")
	assert.Equal(t, []string{"// only"}, texts(m.TakeDangling(block)))
	assert.Zero(t, m.Len())
}

func TestTopLevelLeadingAndTrailing(t *testing.T) {
	tree, m := bind(t, "// header\nfun f() {} // tail\n")
	fn := find(t, tree, "function_declaration", "fun f() {}")
	assert.Equal(t, []string{"// header"}, texts(m.Leading(fn)))
	assert.Equal(t, []string{"// tail"}, texts(m.Trailing(fn)))
}

func TestCallArgumentCommaException(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    foo(a, // c\n        b);\n}\n")
	a := find(t, tree, "call_argument", "a")
	b := find(t, tree, "call_argument", "b")
	assert.Empty(t, m.Trailing(a))
	assert.Equal(t, []string{"// c"}, texts(m.Leading(b)))
}

func TestFallbackToBlock(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    foo(a\n        /* c */);\n}\n")
	require.Len(t, m.Fallbacks(), 1)
	fb := m.Fallbacks()[0]
	assert.Equal(t, "/* c */", fb.Comment.Text)
	assert.Equal(t, "block_statement", fb.Scope.Type)
	block := find(t, tree, "block_statement", "{\n    foo(a\n        /* c */);\n}")
	assert.Equal(t, []string{"/* c */"}, texts(m.TakeDangling(block)))
}

func TestTrailingStepsOnlyOverSeparators(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   string
		text  string
	}{
		{"block comment between parameters and body", "fun f() /* c */ {}\n", "parameter_list", "()"},
		{"line comment between parameters and body", "fun f() // c\n{}\n", "parameter_list", "()"},
		{"after statement terminator", "fun f() {\n    foo(); // c\n}\n", "expression_statement", "foo()"},
		{"after field comma", "struct S {\n    x: int, // c\n    y: int\n}\n", "struct_field_declaration", "x: int"},
		{"after binary operator", "fun f() {\n    return a + b + // c\n        d;\n}\n", "binary_operator", "a + b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, m := bind(t, tt.input)
			owner := find(t, tree, tt.typ, tt.text)
			require.Len(t, m.Trailing(owner), 1)
			assert.Empty(t, m.Fallbacks())
		})
	}
}

func TestDanglingInEmptyList(t *testing.T) {
	tests := []struct {
		name  string
		input string
		typ   string
		text  string
		want  []string
	}{
		{"line comment in parameters", "fun f(\n    // c\n) {}\n", "parameter_list", "(\n    // c\n)", []string{"// c"}},
		{"block comment in arguments", "fun f() {\n    foo(/* c */);\n}\n", "argument_list", "(/* c */)", []string{"/* c */"}},
		{"two comments in struct body", "struct S {\n    // a\n    // b\n}\nfun g() {}\n", "struct_body", "{\n    // a\n    // b\n}", []string{"// a", "// b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, m := bind(t, tt.input)
			owner := find(t, tree, tt.typ, tt.text)
			assert.Equal(t, tt.want, texts(m.TakeDangling(owner)))
			assert.Zero(t, m.Len())
			assert.Empty(t, m.Fallbacks())
		})
	}
}

func TestTakeIsReturnAndClear(t *testing.T) {
	tree, m := bind(t, "// a\n// b\nfun f() {}\n")
	fn := find(t, tree, "function_declaration", "fun f() {}")
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"// a", "// b"}, texts(m.TakeLeading(fn)))
	assert.Nil(t, m.TakeLeading(fn))
	assert.Zero(t, m.Len())
	assert.Empty(t, m.Leftover())
}

func TestTakeAllDrainsSubtree(t *testing.T) {
	tree, m := bind(t, "fun f() {\n    // x\n    a; // y\n}\n")
	fn := find(t, tree, "function_declaration", "fun f() {\n    // x\n    a; // y\n}")
	assert.Equal(t, []string{"// x", "// y"}, texts(m.TakeAll(fn)))
	assert.Zero(t, m.Len())
}

func TestEveryCommentBoundOnce(t *testing.T) {
	src := `// file
import "@stdlib/a" // imp

struct Point {
    x: int, // first
    // before y
    y: int
}

fun main(a: int /* inline */, b: int) {
    /* lonely */

    val z = a + b; // sum
    match (z) {
        1 => {} // one
        else => {
            // empty
        }
    }
}
// end
`
	_, m := bind(t, src)
	assert.Equal(t, 10, m.Len())
}
