package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"transplator/internal/buildpipeline"
	"transplator/internal/driver"
	"transplator/internal/ui"
)

type generateOutcome struct {
	result *driver.GenerateResult
	err    error
}

func runGenerateWithUI(ctx context.Context, title string, req driver.GenerateRequest) (*driver.GenerateResult, error) {
	templates, err := req.Manifest.Templates()
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(templates))
	for _, tpl := range templates {
		files = append(files, tpl.Rel)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan buildpipeline.Event, 256)
	outcomeCh := make(chan generateOutcome, 1)

	go func() {
		reqCopy := req
		reqCopy.Progress = buildpipeline.ChannelSink{Ch: events}
		res, err := driver.Generate(ctx, reqCopy)
		outcomeCh <- generateOutcome{result: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	final, uiErr := program.Run()
	if uiErr != nil || ui.Aborted(final) {
		// ctrl+c отменяет генерацию; дочитываем события, иначе воркеры встанут на полном канале
		cancel()
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}
