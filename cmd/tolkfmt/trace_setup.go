package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tolkfmt/internal/trace"
)

// tracing is the tracer of one invocation plus what to do with it at exit.
type tracing struct {
	tracer trace.Tracer
	ring   *trace.RingTracer
}

// setupTracing inspects trace-related flags and attaches the tracer to the
// command context.
func setupTracing(cmd *cobra.Command) (*tracing, error) {
	root := cmd.Root()

	traceOutput, err := root.PersistentFlags().GetString("trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := root.PersistentFlags().GetString("trace-level")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := root.PersistentFlags().GetString("trace-mode")
	if err != nil {
		return nil, fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return &tracing{tracer: trace.Nop}, nil
	}

	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return nil, fmt.Errorf("invalid trace mode: %w", err)
	}
	tracer, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer: %w", err)
	}

	t := &tracing{tracer: tracer}
	switch r := tracer.(type) {
	case *trace.RingTracer:
		t.ring = r
	case *trace.MultiTracer:
		t.ring = r.Ring()
	}
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))
	return t, nil
}

// close flushes the tracer. When the run failed, a ring buffer is dumped
// to stderr so the events leading to the failure are not lost.
func (t *tracing) close(cmd *cobra.Command, failed bool) {
	if t == nil || t.tracer == nil {
		return
	}
	if failed && t.ring != nil {
		if err := t.ring.Dump(cmd.ErrOrStderr(), trace.FormatText); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: dump error: %v\n", err)
		}
	}
	if err := t.tracer.Flush(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
	}
	if err := t.tracer.Close(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
	}
}
