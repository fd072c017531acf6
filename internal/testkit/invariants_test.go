package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
)

func TestCheckTreeInvariants(t *testing.T) {
	inputs := []string{
		"",
		"// only a comment\n",
		"fun main() {\n    return 1 + 2; // sum\n}\n",
		"struct Point {\n    x: int\n    /* y */ y: int\n}\n",
		"import \"@stdlib/tvm-dicts\"\nconst A = 1\n",
	}
	for _, src := range inputs {
		tree := parser.Parse(source.NewFile("t.tolk", []byte(src)), parser.Options{})
		require.NotNil(t, tree, "input %q", src)
		assert.NoError(t, CheckTreeInvariants(tree), "input %q", src)
	}
}

func TestCommentTexts(t *testing.T) {
	src := "// a\nfun f(/* b */ x: int) {\n    g(); // c\n}\n"
	tree := parser.Parse(source.NewFile("t.tolk", []byte(src)), parser.Options{})
	require.NotNil(t, tree)
	assert.Equal(t, []string{"// a", "/* b */", "// c"}, CommentTexts(tree))
}

func TestCheckTreeInvariantsNil(t *testing.T) {
	assert.Error(t, CheckTreeInvariants(nil))
}
