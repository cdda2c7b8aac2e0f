package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/psx/internal/models"
)

var (
	_ list.Item = stationItem{}
	_ list.Item = songItem{}
)

// stationItem wraps [models.Station] to implement [list.Item].
type stationItem struct {
	station models.Station
}

func (i stationItem) FilterValue() string { return i.station.Name }
func (i stationItem) Title() string       { return i.station.Name }
func (i stationItem) Description() string {
	return fmt.Sprintf("station %s", i.station.ID)
}

// songItem wraps [models.Song] to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Name }
func (i songItem) Title() string       { return i.song.Name }
func (i songItem) Description() string {
	desc := i.song.Artist
	if i.song.Album != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.song.Album)
	}
	return desc
}
