package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tolkfmt/internal/driver"
	"tolkfmt/internal/ui"
)

type formatOutcome struct {
	results []driver.Result
	err     error
}

// runWithUI formats in the background while a Bubble Tea program renders progress.
func runWithUI(cmd *cobra.Command, paths []string, opts driver.Options) ([]driver.Result, error) {
	ctx := cmd.Context()
	files, _, err := driver.CollectFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return driver.FormatPaths(ctx, paths, opts)
	}

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, paths, optsCopy)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	title := "Formatting"
	if !opts.Write {
		title = "Checking"
	}
	model := ui.NewProgressModel(fmt.Sprintf("%s %d files", title, len(files)), files, events)
	program := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// UI мог закрыться раньше: дочитываем события, чтобы воркеры не зависли
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil && outcome.err == nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
