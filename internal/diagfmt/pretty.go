// Package diagfmt renders diagnostics for terminal output.
//
// Назначение: заголовок "path:line:col: SEV ID: message", строки исходника
// с номерами и подчёркивание ^~~~ под Primary span, затем заметки.
// Не делает: сортировку и дедупликацию (это diag.Bag).
// Зависимости: diag, source, fatih/color, go-runewidth, safecast.
package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"tolkfmt/internal/diag"
	"tolkfmt/internal/source"
)

const tabWidth = 4

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Context   int  // строк контекста до и после
	ShowNotes bool // печатать diag.Note с собственным превью
}

var (
	sevColor = map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgBlue, color.Bold),
	}
	gutterColor = color.New(color.FgBlue)
	markColor   = color.New(color.FgRed)
	noteColor   = color.New(color.FgCyan)
)

// Pretty writes d against f. Color follows color.NoColor.
func Pretty(w io.Writer, f *source.File, d diag.Diagnostic, opts PrettyOpts) {
	start := f.Point(clampOffset(f, d.Primary.Start))
	sev := d.Severity.String()
	if c, ok := sevColor[d.Severity]; ok {
		sev = c.Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, start.Row+1, start.Column+1, sev, d.Code.ID(), d.Message)
	writeSnippet(w, f, d.Primary, opts.Context)

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		p := f.Point(clampOffset(f, n.Span.Start))
		fmt.Fprintf(w, "%s %d:%d: %s\n", noteColor.Sprint("note:"), p.Row+1, p.Column+1, n.Msg)
		writeSnippet(w, f, n.Span, 0)
	}
}

// PrettyAll renders every diagnostic in order.
func PrettyAll(w io.Writer, f *source.File, diags []diag.Diagnostic, opts PrettyOpts) {
	for _, d := range diags {
		Pretty(w, f, d, opts)
	}
}

// writeSnippet prints the rows around sp and marks sp on its first row.
func writeSnippet(w io.Writer, f *source.File, sp source.Span, context int) {
	start := f.Point(clampOffset(f, sp.Start))
	end := f.Point(clampOffset(f, sp.End))
	row := int(start.Row)
	first := max(row-context, 0)
	last := min(row+context, f.LineCount()-1)
	numWidth := len(strconv.Itoa(last + 1))
	pad := strings.Repeat(" ", numWidth)

	for r := first; r <= last; r++ {
		line := string(f.Line(r))
		fmt.Fprintf(w, "%s %s\n", gutterColor.Sprintf("%*d |", numWidth, r+1), expandTabs(line))
		if r != row {
			continue
		}
		from := int(start.Column)
		to := len(line)
		if end.Row == start.Row {
			to = int(end.Column)
		}
		fmt.Fprintf(w, "%s %s\n", gutterColor.Sprint(pad+" |"), markColor.Sprint(marker(line, from, to)))
	}
}

// marker builds "   ^~~~" aligned to display columns of line[from:to].
func marker(line string, from, to int) string {
	from = min(max(from, 0), len(line))
	to = min(max(to, from), len(line))
	lead := runewidth.StringWidth(expandTabs(line[:from]))
	width := runewidth.StringWidth(expandTabs(line[:to])) - lead
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", lead) + "^" + strings.Repeat("~", width-1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

func clampOffset(f *source.File, off uint32) uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil || off > n {
		return n
	}
	return off
}
