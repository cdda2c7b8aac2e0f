package tasks

import (
	"fmt"

	"github.com/desertthunder/psx/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchStations Phase = iota
	FetchSongs
	ImportSongs
	SkipStation
	StationDone
	Complete
)

func (p Phase) String() string {
	switch p {
	case FetchStations:
		return "fetch_stations"
	case FetchSongs:
		return "fetch_songs"
	case ImportSongs:
		return "import_songs"
	case SkipStation:
		return "skip_station"
	case StationDone:
		return "station_done"
	case Complete:
		return "complete"
	default:
		return ""
	}
}

func fetchStationsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStations,
		Step:    1,
		Total:   1,
		Message: "Fetching stations from Pandora...",
	}
}

func foundStationsUpdate(stations []models.Station) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchStations,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d stations", len(stations)),
		Data:    stations,
	}
}

func fetchSongsUpdate(step, total int, station models.Station) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Fetching liked songs: %s...", step, total, station.Name),
	}
}

func skipStationUpdate(step, total int, station models.Station, reason string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SkipStation,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Skipping %s: %s", step, total, station.Name, reason),
	}
}

func importSongsUpdate(step, total int, group models.SongGroup) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ImportSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Importing %d songs into %q...", step, total, len(group.Songs), group.Name),
	}
}

func stationDoneUpdate(step, total int, result StationResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StationDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%d songs)", step, total, result.Station.Name, result.SongCount),
		Data:    result,
	}
}

func stationFailedUpdate(step, total int, station models.Station, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   StationDone,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, station.Name, err),
	}
}

func completeUpdate(result *MigrationResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Complete,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Migration complete: %d playlists created, %d stations skipped", result.ImportedCount, result.SkippedCount),
		Data:    result,
	}
}
