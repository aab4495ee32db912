// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fontgrab/fontgrab/internal/domain"
)

const timeRounding = 100 * time.Millisecond

// RunFn executes a pipeline, reporting through the progress callback.
// The callback is invoked from multiple goroutines.
type RunFn func(ctx context.Context, progress domain.ProgressFunc) (*domain.Report, error)

// Run drives the pipeline under the progress view and blocks until both
// finish. Cancelling from the view (ctrl+c) stops the pipeline; the
// pipeline's report and error are returned unchanged so the caller can
// render and map exit codes exactly as in plain CLI mode.
func Run(ctx context.Context, runFn RunFn) (*domain.Report, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(NewModel(cancel))

	var (
		report *domain.Report
		runErr error
	)

	done := make(chan struct{})

	go func() {
		defer close(done)

		report, runErr = runFn(runCtx, func(event domain.ProgressEvent) {
			program.Send(eventMsg{event: event})
		})

		program.Send(doneMsg{report: report, err: runErr})
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-done

		return report, err
	}

	<-done

	return report, runErr
}
