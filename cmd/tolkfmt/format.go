package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tolkfmt/internal/driver"
	"tolkfmt/internal/format"
	"tolkfmt/internal/trace"
)

const rangeHelp = "Invalid range format. Expected: startLine:startChar-endLine:endChar (e.g., 1:5-3:10)"

var (
	warnColor      = color.New(color.FgYellow)
	errorColor     = color.New(color.FgRed)
	okColor        = color.New(color.FgGreen)
	reformatColor  = color.New(color.FgCyan)
	unchangedColor = color.New(color.Faint)
)

type formatMode int

const (
	modeStdout formatMode = iota
	modeWrite
	modeCheck
)

type formatFlags struct {
	mode    formatMode
	rng     *format.Range
	diff    bool
	stats   bool
	verbose bool
	ui      uiMode
}

func addFormatFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("write", "w", false, "write result to the same file")
	cmd.Flags().BoolP("check", "c", false, "check if the given files are formatted")
	cmd.Flags().StringP("range", "r", "", "format only the specified range (startLine:startChar-endLine:endChar, 1-based)")
	cmd.Flags().Bool("diff", false, "with --check, print a unified diff for every unformatted file")
	cmd.Flags().Bool("stats", false, "print a per-file summary table")
	cmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func readFormatFlags(cmd *cobra.Command) (formatFlags, error) {
	var ff formatFlags
	flags := cmd.Flags()

	write, err := flags.GetBool("write")
	if err != nil {
		return ff, err
	}
	check, err := flags.GetBool("check")
	if err != nil {
		return ff, err
	}
	if write && check {
		return ff, errors.New("Cannot use both --write and --check options together")
	}
	switch {
	case check:
		ff.mode = modeCheck
	case write:
		ff.mode = modeWrite
	}

	rangeStr, err := flags.GetString("range")
	if err != nil {
		return ff, err
	}
	if rangeStr != "" {
		r, err := format.ParseRange(rangeStr)
		if err != nil {
			return ff, errors.New(rangeHelp)
		}
		ff.rng = &r
	}

	if ff.diff, err = flags.GetBool("diff"); err != nil {
		return ff, err
	}
	if ff.diff && ff.mode != modeCheck {
		return ff, errors.New("--diff requires --check")
	}
	if ff.stats, err = flags.GetBool("stats"); err != nil {
		return ff, err
	}
	if ff.verbose, err = flags.GetBool("verbose"); err != nil {
		return ff, err
	}
	uiStr, err := flags.GetString("ui")
	if err != nil {
		return ff, err
	}
	if ff.ui, err = readUIMode("ui", uiStr); err != nil {
		return ff, err
	}
	return ff, nil
}

func runFormat(cmd *cobra.Command, args []string) (err error) {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	colorStr, err := cmd.Flags().GetString("color")
	if err != nil {
		return err
	}
	colorMode, err := readUIMode("color", colorStr)
	if err != nil {
		return err
	}
	applyColorMode(colorMode, stdout)

	ff, err := readFormatFlags(cmd)
	if err != nil {
		fmt.Fprintln(stderr, errorColor.Sprint("Error:"), err)
		return &exitError{code: 1}
	}
	if len(args) == 0 {
		return cmd.Help()
	}

	stopProfiling, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	tr, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	failed := false
	defer func() { tr.close(cmd, failed || err != nil) }()

	opts, err := driverOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.Write = ff.mode == modeWrite
	opts.Format.Range = ff.rng
	opts.Format.Tracer = tr.tracer
	span := trace.Begin(tr.tracer, trace.ScopeDriver, "tolkfmt", 0)
	opts.Format.Parent = span.ID()

	if ff.mode == modeCheck {
		fmt.Fprintln(stdout, "Checking formatting...")
	}

	useTUI := ff.mode != modeStdout && shouldUseTUI(ff.ui, stdout)
	var results []driver.Result
	if useTUI {
		results, err = runWithUI(cmd, args, opts)
	} else {
		results, err = driver.FormatPaths(cmd.Context(), args, opts)
	}
	span.End(fmt.Sprintf("%d files", len(results)))

	if errors.Is(err, driver.ErrNoFiles) {
		reportResults(stdout, stderr, results, ff, useTUI)
		fmt.Fprintln(stderr, errorColor.Sprint(err.Error()))
		failed = true
		return &exitError{code: 1}
	}
	if err != nil {
		return err
	}

	summary := reportResults(stdout, stderr, results, ff, useTUI)
	failed = summary.failed > 0

	if ff.stats {
		out := stdout
		if ff.mode == modeStdout {
			out = stderr
		}
		renderStats(out, results)
	}
	if opts.Format.Timer != nil {
		fmt.Fprint(stderr, opts.Format.Timer.Summary())
	}

	if ff.mode == modeCheck {
		if summary.unformatted == 0 {
			fmt.Fprintln(stdout, okColor.Sprint("All Tolk files are properly formatted!"))
		} else {
			fmt.Fprintln(stdout, warnColor.Sprint("Code style issues found in the above files. Run tolkfmt with --write to fix."))
			return &exitError{code: 1}
		}
	}
	if failed {
		return &exitError{code: 1}
	}
	return nil
}

type runSummary struct {
	unformatted int
	failed      int
}

// reportResults prints one line per file in the style of the selected mode.
func reportResults(stdout, stderr io.Writer, results []driver.Result, ff formatFlags, quietWrites bool) runSummary {
	var s runSummary
	for _, res := range results {
		if res.Err != nil {
			s.failed++
			fmt.Fprintln(stderr, errorColor.Sprint(res.Err.Error()))
			continue
		}
		if ff.verbose && res.Syntax != nil {
			writeSyntax(stderr, res)
		}
		name := filepath.Base(res.Path)
		switch ff.mode {
		case modeCheck:
			if !res.Changed {
				continue
			}
			s.unformatted++
			fmt.Fprintln(stdout, warnColor.Sprint("[warn]"), name)
			if ff.diff {
				fmt.Fprint(stdout, unifiedDiff(res))
			}
		case modeWrite:
			if res.Changed {
				s.unformatted++
			}
			if !quietWrites {
				fmt.Fprintf(stdout, "%s %dms %s\n", name, res.Duration.Round(1e6).Milliseconds(), status(res.Changed))
			}
		default:
			_, _ = stdout.Write(res.Formatted)
		}
	}
	return s
}

func status(changed bool) string {
	if changed {
		return reformatColor.Sprint("(reformatted)")
	}
	return unchangedColor.Sprint("(unchanged)")
}

// countLines counts lines the way editors do: a final line without '\n' still counts.
func countLines(b []byte) int {
	if len(b) == 0 {
		return 0
	}
	n := strings.Count(string(b), "\n")
	if b[len(b)-1] != '\n' {
		n++
	}
	return n
}
