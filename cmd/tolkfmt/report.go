package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pmezard/go-difflib/difflib"

	"tolkfmt/internal/diagfmt"
	"tolkfmt/internal/driver"
	"tolkfmt/internal/source"
)

// writeSyntax explains why a file was left as is.
func writeSyntax(w io.Writer, res driver.Result) {
	content, _, err := source.Normalize(res.Original)
	if err != nil {
		content = res.Original
	}
	fmt.Fprintf(w, "%s %s\n", warnColor.Sprint("[skip]"), res.Path)
	diagfmt.Pretty(w, source.NewFile(res.Path, content), *res.Syntax, diagfmt.PrettyOpts{Context: 1, ShowNotes: true})
}

// unifiedDiff renders the change formatting would make to one file.
func unifiedDiff(res driver.Result) string {
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(res.Original)),
		B:        difflib.SplitLines(string(res.Formatted)),
		FromFile: res.Path,
		ToFile:   res.Path + " (formatted)",
		Context:  3,
	})
	if err != nil {
		return fmt.Sprintf("diff failed: %v\n", err)
	}
	return out
}

func renderStats(w io.Writer, results []driver.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"File", "Lines", "Changed", "Cached", "Time"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Lines", Align: text.AlignRight},
		{Name: "Time", Align: text.AlignRight},
	})

	var lines, changed, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			t.AppendRow(table.Row{res.Path, "-", "error", "-", "-"})
			continue
		}
		n := countLines(res.Formatted)
		lines += n
		if res.Changed {
			changed++
		}
		t.AppendRow(table.Row{res.Path, n, yesNo(res.Changed), yesNo(res.Cached), fmt.Sprintf("%dms", res.Duration.Milliseconds())})
	}
	t.AppendFooter(table.Row{fmt.Sprintf("%d files", len(results)), lines, fmt.Sprintf("%d changed", changed), "", fmt.Sprintf("%d failed", failed)})
	t.Render()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
