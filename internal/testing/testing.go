// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/desertthunder/psx/internal/models"
)

// MockSource is a configurable test double for [services.SourceService]
type MockSource struct {
	LoginFunc       func(ctx context.Context) error
	GetStationsFunc func(ctx context.Context, limit int) ([]models.Station, error)
	LikedSongsFunc  func(ctx context.Context, stationID string) ([]models.Song, error)
}

func (m *MockSource) Login(ctx context.Context) error {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx)
	}
	return nil
}

func (m *MockSource) GetStations(ctx context.Context, limit int) ([]models.Station, error) {
	if m.GetStationsFunc != nil {
		return m.GetStationsFunc(ctx, limit)
	}
	return []models.Station{}, nil
}

func (m *MockSource) LikedSongs(ctx context.Context, stationID string) ([]models.Song, error) {
	if m.LikedSongsFunc != nil {
		return m.LikedSongsFunc(ctx, stationID)
	}
	return []models.Song{}, nil
}

func (m *MockSource) Name() string { return "mock-source" }

// MockTarget is a configurable test double for [services.TargetService]
type MockTarget struct {
	AuthorizeFunc      func(ctx context.Context) error
	CreatePlaylistFunc func(ctx context.Context, name string) (*models.Playlist, error)
	FindTrackURIFunc   func(ctx context.Context, song models.Song) (string, error)
	AddTrackFunc       func(ctx context.Context, uri, playlistID string) error
	ImportGroupFunc    func(ctx context.Context, group models.SongGroup) (*models.Playlist, error)
}

func (m *MockTarget) Authorize(ctx context.Context) error {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx)
	}
	return nil
}

func (m *MockTarget) CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	if m.CreatePlaylistFunc != nil {
		return m.CreatePlaylistFunc(ctx, name)
	}
	return &models.Playlist{ID: "mock-playlist", Name: name}, nil
}

func (m *MockTarget) FindTrackURI(ctx context.Context, song models.Song) (string, error) {
	if m.FindTrackURIFunc != nil {
		return m.FindTrackURIFunc(ctx, song)
	}
	return "spotify:track:mock", nil
}

func (m *MockTarget) AddTrack(ctx context.Context, uri, playlistID string) error {
	if m.AddTrackFunc != nil {
		return m.AddTrackFunc(ctx, uri, playlistID)
	}
	return nil
}

func (m *MockTarget) ImportGroup(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
	if m.ImportGroupFunc != nil {
		return m.ImportGroupFunc(ctx, group)
	}
	return &models.Playlist{ID: "mock-playlist", Name: group.Name}, nil
}

func (m *MockTarget) Name() string { return "mock-target" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}
