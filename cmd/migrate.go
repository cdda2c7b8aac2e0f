package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/psx/internal/shared"
	"github.com/desertthunder/psx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// MigrateRun runs the full Pandora → Spotify migration.
func (r *Runner) MigrateRun(ctx context.Context, cmd *cli.Command) error {
	if r.pandora == nil {
		return fmt.Errorf("%w: Pandora service not initialized", shared.ErrServiceUnavailable)
	}
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.configureConsent(cmd.Bool("manual")); err != nil {
		return err
	}

	stationID := r.stationFilter(cmd)
	engine := tasks.NewMigrationEngine(r.pandora, r.spotify, stationID)

	r.logger.Info("starting migration", "station", stationID)
	r.writePlain("Starting liked-song migration...\n\n")

	// Create progress channel and goroutine to handle updates
	progressCh := make(chan tasks.ProgressUpdate, 50)
	go func() {
		for update := range progressCh {
			switch update.Phase {
			case tasks.FetchStations:
				r.writePlain("📥 %s\n", update.Message)
			case tasks.FetchSongs:
				r.writePlain("\n🔍 %s\n", update.Message)
			case tasks.ImportSongs:
				r.writePlain("📝 %s\n", update.Message)
			case tasks.SkipStation, tasks.StationDone:
				r.writePlain("   %s\n", update.Message)
			}
		}
	}()

	// Run the engine operation
	result, err := engine.Run(ctx, progressCh)
	close(progressCh)

	if err != nil {
		return err
	}

	// Output summary
	r.writePlain("\n")
	r.writePlainHeader("Migration Complete!")
	r.writePlain("Playlists created: %d\n", result.ImportedCount)
	r.writePlain("Stations skipped: %d\n", result.SkippedCount)

	for _, station := range result.Stations {
		if station.Skipped {
			r.writePlain("  - %s: skipped (%s)\n", station.Station.Name, station.Reason)
		} else {
			r.writePlain("  - %s → %s (%d songs)\n", station.Station.Name, station.Playlist.Name, station.SongCount)
		}
	}

	return nil
}

// MigrateUI launches the interactive TUI.
func (r *Runner) MigrateUI(ctx context.Context, cmd *cli.Command) error {
	return r.TUI(ctx, cmd)
}

// stationFilter resolves the station restriction: the --station flag
// wins, then the configured debug station when debug mode is on.
func (r *Runner) stationFilter(cmd *cli.Command) string {
	if stationID := cmd.String("station"); stationID != "" {
		return stationID
	}
	if r.config.App.Debug {
		return r.config.App.StationID
	}
	return ""
}
