package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"hsfront/internal/driver"
	"hsfront/internal/ui"
)

type parseDirOutcome struct {
	result *driver.DirResult
	err    error
}

// runParseDir parses dir, showing the progress UI when withUI is set.
func runParseDir(ctx context.Context, title, dir string, opts driver.Options, withUI bool) (*driver.DirResult, error) {
	if !withUI {
		return driver.ParseDir(ctx, dir, opts)
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan parseDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Events = events
		res, err := driver.ParseDir(ctx, dir, optsCopy)
		outcomeCh <- parseDirOutcome{result: res, err: err}
		close(events)
	}()

	// файлы появляются в модели по мере прихода событий
	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr))
	_, uiErr := program.Run()
	// после Ctrl+C модель больше не читает; дочитываем, чтобы драйвер не встал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
