package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tolkfmt/internal/version"
)

// exitError carries a process exit code; everything worth saying was already printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tolkfmt [flags] <files or directories>",
		Short:         "Tolk source code formatter",
		Long:          `tolkfmt formats Tolk smart contract sources: prints, checks or rewrites .tolk files`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runFormat,
	}

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Int("max-width", 0, "maximum line width (default 100)")
	pf.BoolP("sort-imports", "s", false, "sort imports in the formatted file")
	pf.Int("jobs", 0, "files formatted in parallel (default GOMAXPROCS)")
	pf.Bool("no-cache", false, "do not read or write the result cache")
	pf.String("config", "", "config file (default: nearest tolkfmt.toml or .tolkfmt.yaml)")
	pf.Bool("verbose", false, "report files that could not be parsed")
	pf.Bool("verify", false, "re-parse formatted output and fail files that do not round-trip")
	pf.Bool("timings", false, "show per-phase timing information")
	pf.String("trace", "", "trace output file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("cpuprofile", "", "write a CPU profile to this file")
	pf.String("memprofile", "", "write a heap profile to this file on exit")
	pf.String("runtime-trace", "", "write a Go runtime trace to this file")

	addFormatFlags(rootCmd)

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newCacheCmd())
	return rootCmd
}

// main builds the command tree and runs it; failures map to exit code 1
// unless the command chose another one.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err == nil {
		return
	}
	var ee *exitError
	if errors.As(err, &ee) {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
