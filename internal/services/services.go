package services

import (
	"context"

	"github.com/desertthunder/psx/internal/models"
)

// SourceService is the read side of a migration (Pandora).
//
// Implementations are unusable for data operations until Login has
// completed successfully.
type SourceService interface {
	// Login performs the provider's authentication sequence. Fatal on
	// failure; there is no retry.
	Login(ctx context.Context) error

	// GetStations retrieves the account's stations. A limit <= 0 uses
	// the provider default.
	GetStations(ctx context.Context, limit int) ([]models.Station, error)

	// LikedSongs returns every positively rated song on a station.
	LikedSongs(ctx context.Context, stationID string) ([]models.Song, error)

	// Name returns the provider name (e.g. "Pandora")
	Name() string
}

// TargetService is the write side of a migration (Spotify).
//
// Implementations are unusable for data operations until Authorize has
// completed successfully.
type TargetService interface {
	// Authorize obtains an access token, preferring a cached refresh
	// token and falling back to interactive consent.
	Authorize(ctx context.Context) error

	// CreatePlaylist creates a new private playlist and returns its reference.
	CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error)

	// FindTrackURI resolves a song to a provider track URI using the
	// two-tier search fallback.
	FindTrackURI(ctx context.Context, song models.Song) (string, error)

	// AddTrack appends a track URI to an existing playlist.
	AddTrack(ctx context.Context, uri, playlistID string) error

	// ImportGroup creates one playlist named after the group and imports
	// each song into it sequentially.
	ImportGroup(ctx context.Context, group models.SongGroup) (*models.Playlist, error)

	// Name returns the provider name (e.g. "Spotify")
	Name() string
}
