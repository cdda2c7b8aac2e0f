package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/psx/internal/shared"
	"github.com/desertthunder/psx/internal/tasks"
	"github.com/desertthunder/psx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for station migration.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.pandora == nil {
		return fmt.Errorf("%w: Pandora service not initialized", shared.ErrServiceUnavailable)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.configureConsent(false); err != nil {
		return err
	}

	engine := tasks.NewMigrationEngine(r.pandora, r.spotify, r.stationFilter(cmd))

	// Authenticate before the terminal is taken over, the consent flow
	// may need to print a URL or read from stdin
	if err := engine.Authenticate(ctx); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/psx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	model := ui.NewModel(ctx, r.pandora, engine)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
