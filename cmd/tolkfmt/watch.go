package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"tolkfmt/internal/driver"
	"tolkfmt/internal/trace"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Reformat .tolk files whenever they change",
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) (err error) {
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

	if len(args) == 0 {
		args = []string{"."}
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
	defer func() { tr.close(cmd, err != nil) }()

	opts, err := driverOptions(cmd, args)
	if err != nil {
		return err
	}
	opts.Write = true
	opts.Format.Tracer = tr.tracer
	span := trace.Begin(tr.tracer, trace.ScopeDriver, "tolkfmt watch", 0)
	defer span.End("")
	opts.Format.Parent = span.ID()

	fmt.Fprintf(stdout, "Watching %d path(s) for changes, press Ctrl+C to stop\n", len(args))
	return driver.Watch(cmd.Context(), args, opts, func(res driver.Result) {
		if res.Err != nil {
			fmt.Fprintln(stderr, errorColor.Sprint(res.Err.Error()))
			return
		}
		if !res.Changed {
			return
		}
		fmt.Fprintf(stdout, "%s %dms %s\n", filepath.Base(res.Path), res.Duration.Milliseconds(), status(true))
	})
}
