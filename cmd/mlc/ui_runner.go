package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"mlc/internal/driver"
	"mlc/internal/source"
	"mlc/internal/ui"
)

type checkOutcome struct {
	fileSet *source.FileSet
	results []driver.FileResult
	err     error
}

// runCheckWithUI runs LintPaths in the background and draws progress on out
// until every file is finished.
func runCheckWithUI(ctx context.Context, paths []string, opts driver.Options, out io.Writer) (*source.FileSet, []driver.FileResult, error) {
	files, err := driver.DiscoverFiles(ctx, paths, opts.Config)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 256)
	opts.Progress = driver.ChannelSink{Ch: events}

	outcomeCh := make(chan checkOutcome, 1)
	go func() {
		fileSet, results, runErr := driver.LintPaths(ctx, paths, opts)
		close(events)
		outcomeCh <- checkOutcome{fileSet: fileSet, results: results, err: runErr}
	}()

	model := ui.NewProgressModel("checking", files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()

	// модель могла выйти раньше (ctrl-c): дочитываем события, чтобы воркеры не встали
	for range events {
	}
	outcome := <-outcomeCh
	if outcome.err != nil {
		return outcome.fileSet, outcome.results, outcome.err
	}
	if uiErr != nil && ctx.Err() == nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, nil
}
