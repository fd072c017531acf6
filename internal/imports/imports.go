// Package imports classifies import paths and orders import directives.
//
// Назначение: категория пути (stdlib, ./, вложенный, ../, абсолютный),
// глубина внутри категории и сравнение путей с учётом локали.
// Не делает: разрешение путей на диске.
// Зависимости: internal/ast, golang.org/x/text/collate.
package imports

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tolkfmt/internal/ast"
)

// Category is the primary sort key of an import.
type Category uint8

const (
	Stdlib Category = iota
	RelativeCurrent
	RelativeNested
	RelativeParent
	Absolute
)

func (c Category) String() string {
	switch c {
	case Stdlib:
		return "stdlib"
	case RelativeCurrent:
		return "relative-current"
	case RelativeNested:
		return "relative-nested"
	case RelativeParent:
		return "relative-parent"
	case Absolute:
		return "absolute"
	default:
		return "unknown"
	}
}

// Import describes one import directive for sorting.
type Import struct {
	Node        *ast.Node
	Path        string
	Category    Category
	Subcategory int
}

// PathOf returns the import path of an import_directive without quotes and
// with '\' normalized to '/'.
func PathOf(n *ast.Node) string {
	p := n.ChildByField("path")
	if p == nil {
		return ""
	}
	text := p.Text()
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	return strings.ReplaceAll(text, `\`, "/")
}

// Categorize classifies a normalized path. A bare name without '/' counts
// as a same-directory import.
func Categorize(path string) Category {
	switch {
	case strings.HasPrefix(path, "@stdlib/"):
		return Stdlib
	case strings.HasPrefix(path, "./"):
		return RelativeCurrent
	case strings.HasPrefix(path, "../"):
		return RelativeParent
	case strings.HasPrefix(path, "/"):
		return Absolute
	case strings.Contains(path, "/"):
		return RelativeNested
	default:
		return RelativeCurrent
	}
}

// Subcategory is the depth key: '../' steps for parent imports, slash count
// for nested ones, 0 otherwise.
func Subcategory(path string, c Category) int {
	switch c {
	case RelativeParent:
		return strings.Count(path, "../")
	case RelativeNested:
		return strings.Count(path, "/")
	default:
		return 0
	}
}

// Describe builds the sort descriptor of an import_directive node.
func Describe(n *ast.Node) Import {
	path := PathOf(n)
	c := Categorize(path)
	return Import{Node: n, Path: path, Category: c, Subcategory: Subcategory(path, c)}
}

// Sort orders imports by category, subcategory, then path. The sort is stable.
func Sort(list []Import) {
	// collate.Collator не потокобезопасен: свой на каждый вызов.
	coll := collate.New(language.Und)
	slices.SortStableFunc(list, func(a, b Import) int {
		if a.Category != b.Category {
			return int(a.Category) - int(b.Category)
		}
		if a.Subcategory != b.Subcategory {
			return a.Subcategory - b.Subcategory
		}
		return coll.CompareString(a.Path, b.Path)
	})
}
