package format

import (
	"strconv"
	"strings"

	"tolkfmt/internal/ast"
	"tolkfmt/internal/comments"
	"tolkfmt/internal/doc"
	"tolkfmt/internal/parser"
	"tolkfmt/internal/source"
	"tolkfmt/internal/trace"
)

// Format reformats one Tolk source file. A leading UTF-8 byte order mark is
// dropped from the output. Source that does not parse is returned unchanged
// with a nil error; an invalid range is an error wrapping ErrInvalidRange.
func Format(src string, opts Options) (string, error) {
	opts = opts.withDefaults()
	file := source.NewFile("input.tolk", []byte(strings.TrimPrefix(src, byteOrderMark)))

	var rng *pointRange
	if opts.Range != nil {
		r, err := resolveRange(file, *opts.Range)
		if err != nil {
			return "", err
		}
		rng = &r
	}

	ph := opts.begin("parse")
	tree := parser.Parse(file, parser.Options{})
	if tree == nil {
		ph.end("syntax error")
		return src, nil
	}
	ph.end("")

	ph = opts.begin("bind")
	root := tree.RootNode()
	cm := comments.Bind(root)
	ph.end(strconv.Itoa(cm.Len()) + " comments")
	opts.reportFallbacks(cm.Fallbacks(), ph.id())

	ph = opts.begin("print")
	p := &printer{file: file, comments: cm, rng: rng, sortImports: opts.SortImports}
	d := p.print(root)
	ph.end("")
	opts.reportLeftover(tree, cm.Leftover(), ph.id())

	ph = opts.begin("render")
	out := doc.Render(d, opts.MaxWidth)
	ph.end(strconv.Itoa(len(out)) + " bytes")
	return out, nil
}

const byteOrderMark = "\uFEFF"

// phase is one pipeline step measured by both the tracer and the timer.
type phase struct {
	span  *trace.Span
	opts  *Options
	timer int
}

func (o *Options) begin(name string) phase {
	return phase{
		span:  trace.Begin(o.Tracer, trace.ScopePass, name, o.Parent),
		opts:  o,
		timer: o.Timer.Begin(name),
	}
}

func (ph phase) end(note string) {
	ph.span.End(note)
	ph.opts.Timer.End(ph.timer, note)
}

func (ph phase) id() uint64 { return ph.span.ID() }

func (o *Options) reportFallbacks(fallbacks []comments.Fallback, parent uint64) {
	for _, f := range fallbacks {
		scope := "root"
		if f.Scope != nil {
			scope = f.Scope.Type
		}
		trace.Point(o.Tracer, trace.ScopeNode, "comment:fallback", f.Comment.Text, parent, map[string]string{
			"scope": scope,
			"row":   strconv.Itoa(f.Comment.StartRow + 1),
		})
	}
}

// reportLeftover emits one event per comment the printer never took.
func (o *Options) reportLeftover(tree *ast.Tree, leftover map[ast.NodeID]comments.Bound, parent uint64) {
	for id, b := range leftover {
		node := tree.Node(id)
		for _, list := range [][]comments.Comment{b.Leading, b.Trailing, b.Dangling} {
			for _, c := range list {
				trace.Point(o.Tracer, trace.ScopeNode, "comment:leftover", c.Text, parent, map[string]string{
					"node": node.Type,
					"row":  strconv.Itoa(c.StartRow + 1),
				})
			}
		}
	}
}
