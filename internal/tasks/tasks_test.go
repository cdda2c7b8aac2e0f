package tasks

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/shared"
	tu "github.com/desertthunder/psx/internal/testing"
)

func TestMigrationEngine(t *testing.T) {
	ctx := context.Background()

	stations := []models.Station{
		{ID: "st-1", Name: "Jazz Radio"},
		{ID: "st-2", Name: "Empty Radio"},
		{ID: "st-3", Name: "Indie Radio"},
	}

	songsByStation := map[string][]models.Song{
		"st-1": {{Name: "Song A", Artist: "Artist A"}},
		"st-2": {},
		"st-3": {{Name: "Song B", Artist: "Artist B"}, {Name: "Song C", Artist: "Artist C"}},
	}

	newSource := func() *tu.MockSource {
		return &tu.MockSource{
			GetStationsFunc: func(ctx context.Context, limit int) ([]models.Station, error) {
				return stations, nil
			},
			LikedSongsFunc: func(ctx context.Context, stationID string) ([]models.Song, error) {
				return songsByStation[stationID], nil
			},
		}
	}

	t.Run("Authenticate", func(t *testing.T) {
		t.Run("Missing Services", func(t *testing.T) {
			engine := NewMigrationEngine(nil, &tu.MockTarget{}, "")
			if err := engine.Authenticate(ctx); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}

			engine = NewMigrationEngine(&tu.MockSource{}, nil, "")
			if err := engine.Authenticate(ctx); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})

		t.Run("Login Failure Propagates", func(t *testing.T) {
			source := &tu.MockSource{
				LoginFunc: func(ctx context.Context) error {
					return fmt.Errorf("%w: bad credentials", shared.ErrAuthFailed)
				},
			}

			engine := NewMigrationEngine(source, &tu.MockTarget{}, "")
			if err := engine.Authenticate(ctx); !errors.Is(err, shared.ErrAuthFailed) {
				t.Errorf("expected ErrAuthFailed, got %v", err)
			}
		})
	})

	t.Run("Stations", func(t *testing.T) {
		t.Run("No Filter", func(t *testing.T) {
			engine := NewMigrationEngine(newSource(), &tu.MockTarget{}, "")

			got, err := engine.Stations(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 3 {
				t.Errorf("expected all 3 stations, got %d", len(got))
			}
		})

		t.Run("Filter Match", func(t *testing.T) {
			engine := NewMigrationEngine(newSource(), &tu.MockTarget{}, "st-3")

			got, err := engine.Stations(ctx)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(got) != 1 || got[0].ID != "st-3" {
				t.Errorf("expected only st-3, got %+v", got)
			}
		})

		t.Run("Filter Miss", func(t *testing.T) {
			engine := NewMigrationEngine(newSource(), &tu.MockTarget{}, "st-404")

			_, err := engine.Stations(ctx)
			if !errors.Is(err, shared.ErrStationNotFound) {
				t.Errorf("expected ErrStationNotFound, got %v", err)
			}
		})
	})

	t.Run("Run", func(t *testing.T) {
		t.Run("Imports Non-Empty Stations Only", func(t *testing.T) {
			var imported []string
			target := &tu.MockTarget{
				ImportGroupFunc: func(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
					imported = append(imported, group.Name)
					return &models.Playlist{ID: "pl-" + group.Name, Name: group.Name}, nil
				},
			}

			engine := NewMigrationEngine(newSource(), target, "")

			result, err := engine.Run(ctx, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if result.ImportedCount != 2 {
				t.Errorf("expected 2 imported stations, got %d", result.ImportedCount)
			}
			if result.SkippedCount != 1 {
				t.Errorf("expected 1 skipped station, got %d", result.SkippedCount)
			}

			// the empty station never reaches the target
			for _, name := range imported {
				if name == "Empty Radio" {
					t.Error("expected no playlist for the empty station")
				}
			}

			for _, station := range result.Stations {
				if station.Station.ID == "st-2" {
					if !station.Skipped {
						t.Error("expected st-2 to be marked skipped")
					}
					if station.Playlist != nil {
						t.Error("expected no playlist for the skipped station")
					}
				}
			}
		})

		t.Run("Import Failure Aborts", func(t *testing.T) {
			target := &tu.MockTarget{
				ImportGroupFunc: func(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
					if group.Name == "Indie Radio" {
						return nil, fmt.Errorf("%w: no match", shared.ErrTrackNotFound)
					}
					return &models.Playlist{ID: "pl-1", Name: group.Name}, nil
				},
			}

			engine := NewMigrationEngine(newSource(), target, "")

			result, err := engine.Run(ctx, nil)
			if !errors.Is(err, shared.ErrTrackNotFound) {
				t.Fatalf("expected ErrTrackNotFound, got %v", err)
			}

			// partial progress survives for reporting
			if result == nil || result.ImportedCount != 1 {
				t.Errorf("expected one station imported before the abort, got %+v", result)
			}
		})

		t.Run("Emits Progress Updates", func(t *testing.T) {
			engine := NewMigrationEngine(newSource(), &tu.MockTarget{}, "")

			progress := make(chan ProgressUpdate, 100)
			if _, err := engine.Run(ctx, progress); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			close(progress)

			phases := map[Phase]int{}
			for update := range progress {
				phases[update.Phase]++
			}

			if phases[FetchStations] == 0 {
				t.Error("expected fetch stations updates")
			}
			if phases[SkipStation] != 1 {
				t.Errorf("expected one skip update, got %d", phases[SkipStation])
			}
			if phases[StationDone] != 2 {
				t.Errorf("expected two station done updates, got %d", phases[StationDone])
			}
			if phases[Complete] != 1 {
				t.Errorf("expected one complete update, got %d", phases[Complete])
			}
		})

		t.Run("Nil Progress Channel", func(t *testing.T) {
			engine := NewMigrationEngine(newSource(), &tu.MockTarget{}, "")

			if _, err := engine.Run(ctx, nil); err != nil {
				t.Fatalf("expected run to tolerate nil progress channel, got %v", err)
			}
		})
	})

	t.Run("RunStation", func(t *testing.T) {
		t.Run("Empty Station Skipped", func(t *testing.T) {
			created := false
			target := &tu.MockTarget{
				ImportGroupFunc: func(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
					created = true
					return &models.Playlist{ID: "pl-1", Name: group.Name}, nil
				},
			}

			engine := NewMigrationEngine(newSource(), target, "")

			result, err := engine.RunStation(ctx, stations[1], 1, 1, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !result.Skipped {
				t.Error("expected station to be skipped")
			}
			if created {
				t.Error("expected no playlist creation for empty station")
			}
		})

		t.Run("Songs Attached To Group", func(t *testing.T) {
			var got models.SongGroup
			target := &tu.MockTarget{
				ImportGroupFunc: func(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
					got = group
					return &models.Playlist{ID: "pl-1", Name: group.Name}, nil
				},
			}

			engine := NewMigrationEngine(newSource(), target, "")

			result, err := engine.RunStation(ctx, stations[2], 1, 1, nil)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if got.Name != "Indie Radio" || len(got.Songs) != 2 {
				t.Errorf("unexpected group passed to target: %+v", got)
			}
			if result.SongCount != 2 {
				t.Errorf("expected song count 2, got %d", result.SongCount)
			}
		})
	})
}
