package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		path string
		cat  Category
		sub  int
	}{
		{"@stdlib/tvm-dicts", Stdlib, 0},
		{"./local", RelativeCurrent, 0},
		{"other", RelativeCurrent, 0},
		{"nested/deep/file", RelativeNested, 2},
		{"../parent", RelativeParent, 1},
		{"../../../deep", RelativeParent, 3},
		{"/abs/path", Absolute, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			c := Categorize(tt.path)
			assert.Equal(t, tt.cat, c)
			assert.Equal(t, tt.sub, Subcategory(tt.path, c))
		})
	}
}

func TestSortOrder(t *testing.T) {
	paths := []string{
		"nested/deep/file", "../parent", "@stdlib/string", "./local", "/absolute",
		"@stdlib/array", "../../grandparent", "./other", "nested/file",
	}
	list := make([]Import, 0, len(paths))
	for _, p := range paths {
		c := Categorize(p)
		list = append(list, Import{Path: p, Category: c, Subcategory: Subcategory(p, c)})
	}
	Sort(list)

	got := make([]string, 0, len(list))
	for _, imp := range list {
		got = append(got, imp.Path)
	}
	assert.Equal(t, []string{
		"@stdlib/array", "@stdlib/string",
		"./local", "./other",
		"nested/file", "nested/deep/file",
		"../parent", "../../grandparent",
		"/absolute",
	}, got)
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "stdlib", Stdlib.String())
	assert.Equal(t, "absolute", Absolute.String())
}
