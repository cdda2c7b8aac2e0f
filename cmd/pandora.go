package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/psx/internal/formatter"
	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PandoraStations lists the account's stations with an optional limit.
func (r *Runner) PandoraStations(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.pandora == nil {
		return fmt.Errorf("%w: Pandora service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.pandora.Login(ctx); err != nil {
		return fmt.Errorf("pandora login failed: %w", err)
	}

	r.logger.Infof("listing pandora stations with limit %v", limit)

	stations, err := r.pandora.GetStations(ctx, int(limit))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(stations, pretty)
	}

	r.writePlain("Found %d stations:\n\n", len(stations))
	for i, station := range stations {
		r.writePlain("%d. %s\n", i+1, station.Name)
		r.writePlain("   ID: %s\n", station.ID)
	}

	return nil
}

// PandoraLiked lists the liked songs of a single station.
func (r *Runner) PandoraLiked(ctx context.Context, cmd *cli.Command) error {
	stationID := cmd.String("station")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.pandora == nil {
		return fmt.Errorf("%w: Pandora service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.pandora.Login(ctx); err != nil {
		return fmt.Errorf("pandora login failed: %w", err)
	}

	r.logger.Infof("fetching liked songs for station %v", stationID)

	songs, err := r.pandora.LikedSongs(ctx, stationID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	if len(songs) == 0 {
		r.writePlain("No liked songs on station %s\n", stationID)
		return nil
	}

	r.writePlain("Liked songs on station %s (%d):\n\n", stationID, len(songs))
	for i, song := range songs {
		r.writePlain("%d. %s - %s\n", i+1, song.Artist, song.Name)
		if song.Album != "" {
			r.writePlain("   Album: %s\n", song.Album)
		}
	}

	return nil
}

// PandoraExport writes a station's liked songs to a CSV, Markdown or text file.
func (r *Runner) PandoraExport(ctx context.Context, cmd *cli.Command) error {
	stationID := cmd.String("station")
	format := strings.ToLower(cmd.String("format"))
	outputFile := cmd.String("output")

	if stationID == "" {
		return fmt.Errorf("%w: --station flag is required", shared.ErrMissingArgument)
	}

	if r.pandora == nil {
		return fmt.Errorf("%w: Pandora service not initialized", shared.ErrServiceUnavailable)
	}

	if err := r.pandora.Login(ctx); err != nil {
		return fmt.Errorf("pandora login failed: %w", err)
	}

	stations, err := r.pandora.GetStations(ctx, 250)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	var station *models.Station
	for i := range stations {
		if stations[i].ID == stationID {
			station = &stations[i]
			break
		}
	}
	if station == nil {
		return fmt.Errorf("%w: no station with ID %q", shared.ErrStationNotFound, stationID)
	}

	songs, err := r.pandora.LikedSongs(ctx, stationID)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	station.Songs = songs
	group := station.Group()

	var written string
	switch format {
	case "csv":
		written, err = formatter.WriteCSVExport(group, outputFile)
	case "md", "markdown":
		written, err = formatter.WriteMarkdownExport(group, outputFile)
	case "txt", "text":
		written, err = formatter.WriteTextExport(group, outputFile)
	default:
		return fmt.Errorf("%w: unknown format %q (expected csv, md or txt)", shared.ErrInvalidArgument, format)
	}

	if err != nil {
		return err
	}

	r.logger.Infof("station exported to %v with %v songs", written, len(songs))

	r.writePlain("✓ Station exported to %s\n", written)
	r.writePlain("  Station: %s\n", station.Name)
	r.writePlain("  Songs: %d\n", len(songs))

	return nil
}
