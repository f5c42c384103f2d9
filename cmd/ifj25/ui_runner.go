package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"ifj25/internal/driver"
	"ifj25/internal/source"
	"ifj25/internal/ui"
)

type tokenizeOutcome struct {
	fileSet *source.FileSet
	results []*driver.TokenizeResult
	err     error
}

// runTokenizeWithUI runs driver.TokenizeFiles while a progress view follows
// its events on stderr. When the view exits early (interrupt or terminal
// error) the run is cancelled and pending events are dropped.
func runTokenizeWithUI(ctx context.Context, title string, files []string, opts driver.Options, jobs int) (*source.FileSet, []*driver.TokenizeResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan driver.Event, 256)
	outcomeCh := make(chan tokenizeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events, Done: ctx.Done()}
		fileSet, results, err := driver.TokenizeFiles(ctx, files, optsCopy, jobs)
		outcomeCh <- tokenizeOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil), tea.WithContext(ctx))
	_, uiErr := program.Run()
	cancel()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
