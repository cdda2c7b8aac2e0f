// package models defines the data model for the song migration service
package models

// Station represents a named collection of feedback-bearing tracks in
// Pandora. Songs is populated by the orchestrator, not by the Pandora
// client itself.
type Station struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs,omitempty"`
}

// Group converts a station with its fetched songs into an importable [SongGroup].
func (s Station) Group() SongGroup {
	return SongGroup{Name: s.Name, Songs: s.Songs}
}

// Song is a liked song lifted out of a Pandora feedback record.
//
// Name is always present. Album and Artist may be empty and must not
// block matching or insertion.
type Song struct {
	Name   string `json:"name"`
	Album  string `json:"album,omitempty"`
	Artist string `json:"artist,omitempty"`
}

// SongGroup is a named set of songs imported as one playlist.
type SongGroup struct {
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Playlist is a created Spotify playlist. ID is the opaque reference
// used for all subsequent track additions; no local model of playlist
// contents is kept.
type Playlist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

// Track is a normalized Spotify search hit.
type Track struct {
	ID     string `json:"id"`
	URI    string `json:"uri"`
	Name   string `json:"name"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
}
