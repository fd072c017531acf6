package doc

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type mode uint8

const (
	modeBreak mode = iota
	modeFlat
)

type frame struct {
	doc    *Doc
	mode   mode
	indent int
}

// renderer держит явный стек кадров: глубина документа не ограничена стеком горутины.
type renderer struct {
	width    int
	out      []string
	col      int
	stack    []frame
	suffixes []*Doc
}

// Render lays d out within width columns.
func Render(d *Doc, width int) string {
	r := &renderer{
		width: width,
		stack: []frame{{doc: d, mode: modeBreak}},
	}
	r.run()
	return strings.Join(r.out, "")
}

func (r *renderer) push(d *Doc, m mode, indent int) {
	r.stack = append(r.stack, frame{doc: d, mode: m, indent: indent})
}

func (r *renderer) run() {
	for {
		r.drain()
		if len(r.suffixes) == 0 {
			return
		}
		// хвосты без последующего переноса выводятся в конце
		r.flushSuffixes()
	}
}

func (r *renderer) drain() {
	for len(r.stack) > 0 {
		fr := r.stack[len(r.stack)-1]
		r.stack = r.stack[:len(r.stack)-1]
		d := fr.doc
		if d == nil {
			continue
		}

		switch d.Kind {
		case KindText:
			r.emit(d.Value)
		case KindLine:
			if fr.mode == modeFlat {
				r.emit(" ")
				continue
			}
			r.newline(fr.indent)
		case KindSoftLine:
			if fr.mode == modeFlat {
				continue
			}
			r.newline(fr.indent)
		case KindHardLine:
			r.newline(fr.indent)
		case KindConcat:
			for i := len(d.Parts) - 1; i >= 0; i-- {
				r.push(d.Parts[i], fr.mode, fr.indent)
			}
		case KindIndent:
			r.push(d.Content, fr.mode, fr.indent+d.Indent)
		case KindGroup:
			m := modeBreak
			if fits(d.Content, r.width-r.col) {
				m = modeFlat
			}
			r.push(d.Content, m, fr.indent)
		case KindLineSuffix:
			r.suffixes = append(r.suffixes, d.Content)
		case KindBreakParent:
			r.flushSuffixes()
		case KindIfBreak:
			if fr.mode == modeBreak {
				r.push(d.Content, fr.mode, fr.indent)
			} else {
				r.push(d.Flat, fr.mode, fr.indent)
			}
		}
	}
}

// newline материализует перенос: сначала отложенные хвосты, затем '\n' и отступ.
func (r *renderer) newline(indent int) {
	if indent != 0 {
		r.push(Text(strings.Repeat(" ", indent)), modeFlat, 0)
	}
	r.push(Text("\n"), modeFlat, 0)
	r.flushSuffixes()
}

// flushSuffixes schedules pending suffixes so they pop in FIFO order.
func (r *renderer) flushSuffixes() {
	for i := len(r.suffixes) - 1; i >= 0; i-- {
		r.push(r.suffixes[i], modeFlat, 0)
	}
	r.suffixes = r.suffixes[:0]
}

func (r *renderer) emit(s string) {
	if s == "" {
		return
	}
	if s == "\n" && len(r.out) > 0 {
		if prev := r.out[len(r.out)-1]; strings.Trim(prev, " ") == "" {
			r.out[len(r.out)-1] = s
			r.col = 0
			return
		}
	}
	r.out = append(r.out, s)
	if nl := strings.LastIndexByte(s, '\n'); nl >= 0 {
		r.col = runewidth.StringWidth(s[nl+1:])
	} else {
		r.col += runewidth.StringWidth(s)
	}
}

// fits проверяет, помещается ли d целиком в одну строку шириной w.
func fits(d *Doc, w int) bool {
	stack := []*Doc{d}
	for w >= 0 && len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == nil {
			continue
		}
		switch cur.Kind {
		case KindText:
			w -= runewidth.StringWidth(cur.Value)
		case KindLine:
			w--
		case KindHardLine, KindBreakParent:
			return false
		case KindConcat:
			for i := len(cur.Parts) - 1; i >= 0; i-- {
				stack = append(stack, cur.Parts[i])
			}
		case KindIndent, KindGroup, KindLineSuffix:
			stack = append(stack, cur.Content)
		case KindIfBreak:
			stack = append(stack, cur.Flat)
		}
	}
	return w >= 0
}
