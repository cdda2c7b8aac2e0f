// package tasks implements the liked-song migration between a source and a target music service.
//
// The core abstraction is MigrationEngine, which orchestrates authentication, station
// discovery, feedback retrieval, and playlist imports. Operations emit progress updates
// via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/services"
	"github.com/desertthunder/psx/internal/shared"
)

const stationFetchLimit = 250

// StationResult records the outcome of a single station.
type StationResult struct {
	Station   models.Station   // Station the songs came from
	Playlist  *models.Playlist // Created playlist (nil when skipped)
	SongCount int              // Number of songs imported
	Skipped   bool             // True when the station produced no playlist
	Reason    string           // Why the station was skipped
}

// MigrationResult contains all data from a full migration run.
type MigrationResult struct {
	Stations      []StationResult // Per-station outcomes in processing order
	ImportedCount int             // Stations that produced a playlist
	SkippedCount  int             // Stations skipped (no liked songs)
}

// MigrationEngine orchestrates a full source → target migration.
//
// The engine only talks to the [services.SourceService] and
// [services.TargetService] interfaces; provider specifics stay in
// internal/services.
type MigrationEngine struct {
	source    services.SourceService
	target    services.TargetService
	stationID string
}

// NewMigrationEngine creates an engine for the given provider pair.
//
// A non-empty stationID restricts the run to that single station.
func NewMigrationEngine(source services.SourceService, target services.TargetService, stationID string) *MigrationEngine {
	return &MigrationEngine{
		source:    source,
		target:    target,
		stationID: stationID,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *MigrationEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// Authenticate logs in to the source and authorizes the target.
func (e *MigrationEngine) Authenticate(ctx context.Context) error {
	if e.source == nil {
		return fmt.Errorf("%w: source service not initialized", shared.ErrServiceUnavailable)
	}
	if e.target == nil {
		return fmt.Errorf("%w: target service not initialized", shared.ErrServiceUnavailable)
	}

	if err := e.source.Login(ctx); err != nil {
		return fmt.Errorf("%s login failed: %w", e.source.Name(), err)
	}

	if err := e.target.Authorize(ctx); err != nil {
		return fmt.Errorf("%s authorization failed: %w", e.target.Name(), err)
	}

	return nil
}

// Stations fetches the station list, narrowed to the configured
// station when a filter is set.
func (e *MigrationEngine) Stations(ctx context.Context) ([]models.Station, error) {
	stations, err := e.source.GetStations(ctx, stationFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch stations: %w", err)
	}

	if e.stationID == "" {
		return stations, nil
	}

	for _, station := range stations {
		if station.ID == e.stationID {
			return []models.Station{station}, nil
		}
	}

	return nil, fmt.Errorf("%w: no station with ID %q", shared.ErrStationNotFound, e.stationID)
}

// Run performs the full migration: every station's liked songs become a
// private playlist on the target, one playlist per station.
//
// Stations without liked songs are skipped and recorded as such. A
// failed import aborts the run; the partial result is returned
// alongside the error so the caller can report what did land.
func (e *MigrationEngine) Run(ctx context.Context, progress chan<- ProgressUpdate) (*MigrationResult, error) {
	if err := e.Authenticate(ctx); err != nil {
		return nil, err
	}

	e.sendProgress(progress, fetchStationsUpdate())

	stations, err := e.Stations(ctx)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, foundStationsUpdate(stations))

	result := &MigrationResult{Stations: make([]StationResult, 0, len(stations))}
	total := len(stations)

	for i, station := range stations {
		step := i + 1

		e.sendProgress(progress, fetchSongsUpdate(step, total, station))

		stationResult, err := e.RunStation(ctx, station, step, total, progress)
		if err != nil {
			e.sendProgress(progress, stationFailedUpdate(step, total, station, err))
			return result, fmt.Errorf("station %q: %w", station.Name, err)
		}

		result.Stations = append(result.Stations, stationResult)

		if stationResult.Skipped {
			result.SkippedCount++
			e.sendProgress(progress, skipStationUpdate(step, total, station, stationResult.Reason))
			continue
		}

		result.ImportedCount++
		e.sendProgress(progress, stationDoneUpdate(step, total, stationResult))
	}

	e.sendProgress(progress, completeUpdate(result))
	return result, nil
}

// RunStation migrates a single station and returns its outcome.
//
// Assumes both services are already authenticated. A station with no
// liked songs yields a skipped result rather than an empty playlist.
func (e *MigrationEngine) RunStation(ctx context.Context, station models.Station, step, total int, progress chan<- ProgressUpdate) (StationResult, error) {
	result := StationResult{Station: station}

	songs, err := e.source.LikedSongs(ctx, station.ID)
	if err != nil {
		return result, fmt.Errorf("failed to fetch liked songs: %w", err)
	}

	if len(songs) == 0 {
		result.Skipped = true
		result.Reason = "no liked songs"
		return result, nil
	}

	station.Songs = songs
	result.Station = station
	group := station.Group()

	e.sendProgress(progress, importSongsUpdate(step, total, group))

	playlist, err := e.target.ImportGroup(ctx, group)
	if err != nil {
		return result, err
	}

	result.Playlist = playlist
	result.SongCount = len(songs)
	return result, nil
}
