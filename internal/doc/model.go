package doc

// Kind tags the variant of a Doc.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindText
	KindLine
	KindSoftLine
	KindHardLine
	KindIndent
	KindGroup
	KindConcat
	KindLineSuffix
	KindBreakParent
	KindIfBreak
)

var kindNames = [...]string{
	KindEmpty:       "Empty",
	KindText:        "Text",
	KindLine:        "Line",
	KindSoftLine:    "SoftLine",
	KindHardLine:    "HardLine",
	KindIndent:      "Indent",
	KindGroup:       "Group",
	KindConcat:      "Concat",
	KindLineSuffix:  "LineSuffix",
	KindBreakParent: "BreakParent",
	KindIfBreak:     "IfBreak",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IndentStep is the number of columns added by Indent.
const IndentStep = 4

// Doc is an immutable layout node. A nil *Doc behaves as Empty.
//
// Which fields are meaningful depends on Kind: Value for Text, Parts for
// Concat, Content for Indent/Group/LineSuffix, Content and Flat for IfBreak
// (break and flat branches).
type Doc struct {
	Kind    Kind
	Value   string
	Parts   []*Doc
	Content *Doc
	Flat    *Doc
	Indent  int
}

var (
	empty       = &Doc{Kind: KindEmpty}
	line        = &Doc{Kind: KindLine}
	softLine    = &Doc{Kind: KindSoftLine}
	hardLine    = &Doc{Kind: KindHardLine}
	breakParent = &Doc{Kind: KindBreakParent}
)

func Empty() *Doc       { return empty }
func Line() *Doc        { return line }
func SoftLine() *Doc    { return softLine }
func HardLine() *Doc    { return hardLine }
func BreakParent() *Doc { return breakParent }

func Text(s string) *Doc {
	return &Doc{Kind: KindText, Value: s}
}

// Concat sequences parts; nil parts are dropped.
func Concat(parts ...*Doc) *Doc {
	out := make([]*Doc, 0, len(parts))
	for _, p := range parts {
		if p != nil && p.Kind != KindEmpty {
			out = append(out, p)
		}
	}
	return &Doc{Kind: KindConcat, Parts: out}
}

func Indent(content ...*Doc) *Doc {
	return &Doc{Kind: KindIndent, Indent: IndentStep, Content: Concat(content...)}
}

// Group is the unit of the flat/break decision.
func Group(content ...*Doc) *Doc {
	return &Doc{Kind: KindGroup, Content: Concat(content...)}
}

// LineSuffix defers content until the next line break.
func LineSuffix(content *Doc) *Doc {
	return &Doc{Kind: KindLineSuffix, Content: content}
}

// IfBreak selects brk when the enclosing group breaks and flat otherwise.
// Either branch may be nil.
func IfBreak(brk, flat *Doc) *Doc {
	return &Doc{Kind: KindIfBreak, Content: brk, Flat: flat}
}

// Blank separates siblings: one newline, or an empty line between them when n > 0.
func Blank(n int) *Doc {
	if n == 0 {
		return hardLine
	}
	return Concat(hardLine, hardLine)
}

// Join interleaves docs with sep.
func Join(sep *Doc, docs []*Doc) *Doc {
	parts := make([]*Doc, 0, 2*len(docs))
	for i, d := range docs {
		if i > 0 {
			parts = append(parts, sep)
		}
		parts = append(parts, d)
	}
	return Concat(parts...)
}

// IsEmpty reports whether d renders nothing in any mode.
func IsEmpty(d *Doc) bool {
	if d == nil {
		return true
	}
	switch d.Kind {
	case KindEmpty:
		return true
	case KindConcat:
		for _, p := range d.Parts {
			if !IsEmpty(p) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
