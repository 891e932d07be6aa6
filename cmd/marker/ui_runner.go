package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"marker/internal/adapter"
	"marker/internal/buildspace"
	"marker/internal/project"
	"marker/internal/ui"
)

type buildOutcome struct {
	infos []adapter.LintCrateInfo
	err   error
}

// buildLintCrates opens the build space next to the manifest and
// builds every configured crate, rendering progress interactively on a
// terminal and as plain lines otherwise.
func buildLintCrates(ctx context.Context, cfg *project.Config) ([]adapter.LintCrateInfo, error) {
	space, err := buildspace.Open(cfg.Dir)
	if err != nil {
		return nil, err
	}

	events := make(chan buildspace.Event, 256)
	outcomeCh := make(chan buildOutcome, 1)
	go func() {
		infos, err := space.Build(ctx, cfg, events)
		outcomeCh <- buildOutcome{infos: infos, err: err}
		close(events)
	}()

	if isTerminal(os.Stdout) {
		model := ui.NewProgressModel("building lint crates", cfg.Names(), events)
		program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
		if _, uiErr := program.Run(); uiErr != nil {
			outcome := <-outcomeCh
			if outcome.err != nil {
				return nil, outcome.err
			}
			return nil, uiErr
		}
	} else {
		ui.RenderPlain(os.Stdout, events)
	}

	outcome := <-outcomeCh
	return outcome.infos, outcome.err
}
