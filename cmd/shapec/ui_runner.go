package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"shapec/internal/driver"
	"shapec/internal/source"
	"shapec/internal/ui"
)

type buildOutcome struct {
	fileSet *source.FileSet
	results []driver.Result
	err     error
}

// runBuildWithUI compiles the directory while a Bubble Tea program renders
// the per-file progress fed by driver events.
func runBuildWithUI(ctx context.Context, title string, files []string, dir string, opts driver.Options, jobs int) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)

	go func() {
		fileSet, results, err := driver.CompileDir(ctx, dir, opts, jobs, events)
		outcomeCh <- buildOutcome{fileSet: fileSet, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
