package format

import (
	"fmt"
	"slices"
	"strings"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
)

// CheckRoundTrip formats src and verifies the result: it must parse, keep
// the same top-level declarations and every comment, and be a fixed point
// of Format.
func CheckRoundTrip(src string, opt Options) (ok bool, msg string) {
	src = strings.TrimPrefix(src, byteOrderMark)
	orig, bag := parser.ParseFile(source.NewFile("input.tolk", []byte(src)))
	if orig == nil || bag.HasErrors() {
		return false, "fmt-check: initial parse failed"
	}

	formatted, err := Format(src, opt)
	if err != nil {
		return false, "fmt-check: formatter failed: " + err.Error()
	}

	rebuilt, bag := parser.ParseFile(source.NewFile("input.tolk", []byte(formatted)))
	if rebuilt == nil || bag.HasErrors() {
		return false, "fmt-check: reparse failed"
	}

	if !sameTopLevelKinds(orig, rebuilt, opt.SortImports) {
		return false, "fmt-check: top-level declaration kinds differ after round-trip"
	}
	if before, after := countComments(orig), countComments(rebuilt); before != after {
		return false, fmt.Sprintf("fmt-check: %d comments before, %d after", before, after)
	}

	// Диапазон сдвигается после переформатирования, повтор только без него.
	if opt.Range == nil {
		again, err := Format(formatted, opt)
		if err != nil {
			return false, "fmt-check: second pass failed: " + err.Error()
		}
		if again != formatted {
			return false, "fmt-check: output is not stable"
		}
	}
	return true, "fmt-check: OK"
}

func sameTopLevelKinds(a, b *ast.Tree, importsFirst bool) bool {
	kinds := func(t *ast.Tree) []string {
		var out []string
		for _, n := range codeChildren(t.RootNode()) {
			out = append(out, n.Type)
		}
		if importsFirst {
			slices.SortStableFunc(out, func(x, y string) int {
				return importRank(x) - importRank(y)
			})
		}
		return out
	}
	return slices.Equal(kinds(a), kinds(b))
}

func importRank(typ string) int {
	switch typ {
	case "tolk_required_version":
		return 0
	case "import_directive":
		return 1
	}
	return 2
}

func countComments(t *ast.Tree) int {
	count := 0
	t.RootNode().Walk(func(n *ast.Node) bool {
		if n.IsComment() {
			count++
		}
		return true
	})
	return count
}
