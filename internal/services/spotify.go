// Spotify implementation of [TargetService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/shared"
	"golang.org/x/oauth2"
)

const (
	spotifyAuthURL  = "https://accounts.spotify.com/authorize"
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"

	// Creating private playlists and adding tracks needs exactly this scope.
	spotifyScope = "playlist-modify-private"

	defaultRedirectURI = "http://127.0.0.1:3000/callback"
)

// SpotifyUser represents the subset of a Spotify user profile we read.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

// Model converts a search hit to the provider-neutral track model.
func (t SpotifyTrack) Model() models.Track {
	track := models.Track{
		ID:    t.ID,
		URI:   t.URI,
		Name:  t.Name,
		Album: t.Album.Name,
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
	}
	return track
}

type searchTracks struct {
	Total int            `json:"total"`
	Items []SpotifyTrack `json:"items"`
}

type searchResponse struct {
	Tracks searchTracks `json:"tracks"`
}

// SpotifyPlaylist represents a Spotify playlist.
type SpotifyPlaylist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Public bool   `json:"public"`
}

// ConsentFunc obtains user consent for the authorization-code flow.
//
// It presents authURL to the user by whatever means it likes and
// returns the redirect URL the provider sent the user to. The default
// implementation opens a browser and reads the pasted URL from stdin;
// the CLI swaps in a localhost callback server.
type ConsentFunc func(ctx context.Context, authURL string) (string, error)

// SpotifyService implements [TargetService] for the Spotify Web API.
//
// Uses [oauth2] for the authorization-code and refresh-token grants.
// The refresh token is the sole durable state, persisted as a
// plaintext file via [shared.TokenCache].
type SpotifyService struct {
	config     *oauth2.Config
	token      *oauth2.Token
	httpClient *http.Client
	cache      *shared.TokenCache
	consent    ConsentFunc
	baseURL    string
	userID     string
}

// NewSpotifyService creates a new Spotify service with the given OAuth2 credentials.
func NewSpotifyService(credentials map[string]string) (*SpotifyService, error) {
	clientID, ok := credentials["client_id"]
	if !ok || clientID == "" {
		return nil, fmt.Errorf("%w: missing client_id", shared.ErrMissingCredentials)
	}

	clientSecret, ok := credentials["client_secret"]
	if !ok || clientSecret == "" {
		return nil, fmt.Errorf("%w: missing client_secret", shared.ErrMissingCredentials)
	}

	redirectURI, ok := credentials["redirect_uri"]
	if !ok || redirectURI == "" {
		redirectURI = defaultRedirectURI
	}

	cachePath := credentials["token_cache"]
	if cachePath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve token cache path: %w", err)
		}
		cachePath = filepath.Join(homeDir, ".psx", "refresh_token")
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{spotifyScope},
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyAuthURL,
			TokenURL: spotifyTokenURL,
		},
	}

	return &SpotifyService{
		config:     config,
		httpClient: http.DefaultClient,
		cache:      shared.NewTokenCache(cachePath),
		consent:    PromptConsent(os.Stdin, os.Stdout),
		baseURL:    spotifyBaseURL,
	}, nil
}

// Name returns the provider name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// SetConsent replaces the consent collaborator used by the
// authorization fallback path.
func (s *SpotifyService) SetConsent(fn ConsentFunc) {
	s.consent = fn
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (s *SpotifyService) GetAuthURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// Authorize obtains an access token, ending either with an installed
// bearer token or an [shared.ErrAuthFailed]; there is no further
// fallback.
//
// The refresh path is preferred: a cached refresh token is exchanged
// at the token endpoint. A missing cache file or a rejected refresh
// token falls through to the interactive consent path without
// surfacing an error.
func (s *SpotifyService) Authorize(ctx context.Context) error {
	if err := s.refreshAuth(ctx); err == nil {
		return nil
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}

	redirect, err := s.consent(ctx, s.GetAuthURL(state))
	if err != nil {
		return fmt.Errorf("%w: consent step failed: %v", shared.ErrAuthFailed, err)
	}

	code, err := ParseRedirect(redirect)
	if err != nil {
		return err
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("%w: code exchange rejected: %v", shared.ErrAuthFailed, err)
	}

	s.token = token

	if token.RefreshToken != "" {
		if err := s.cache.Write(token.RefreshToken); err != nil {
			return fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}

	return nil
}

// refreshAuth exchanges the cached refresh token for an access token.
//
// The cache file is trusted unconditionally until the provider rejects
// it; no expiry check happens locally.
func (s *SpotifyService) refreshAuth(ctx context.Context) error {
	refreshToken, err := s.cache.Read()
	if err != nil {
		return err
	}

	source := s.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return fmt.Errorf("%w: refresh token rejected: %v", shared.ErrAuthFailed, err)
	}

	s.token = token
	return nil
}

// ParseRedirect extracts the authorization code from the redirect URL
// the user landed on after the consent screen.
//
// Three outcomes: a code query parameter (success), an
// error=access_denied marker (the user declined consent), or anything
// else (malformed input). The latter two fail with [shared.ErrAuthFailed].
func ParseRedirect(redirect string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(redirect))
	if err != nil {
		return "", fmt.Errorf("%w: could not parse redirect URL, make sure you copy it verbatim", shared.ErrAuthFailed)
	}

	query := parsed.Query()
	if query.Get("error") == "access_denied" {
		return "", fmt.Errorf("%w: consent was declined, make sure you click 'Agree'", shared.ErrAuthFailed)
	}

	code := query.Get("code")
	if code == "" {
		return "", fmt.Errorf("%w: redirect URL carries no authorization code", shared.ErrAuthFailed)
	}

	return code, nil
}

// PromptConsent returns the default consent collaborator: open the
// authorization URL in a browser and read the redirect URL the user
// pastes back.
func PromptConsent(in io.Reader, out io.Writer) ConsentFunc {
	return func(ctx context.Context, authURL string) (string, error) {
		if err := shared.OpenBrowser(authURL); err != nil {
			fmt.Fprintf(out, "Could not open browser automatically. Open this URL:\n%s\n\n", authURL)
		}

		fmt.Fprint(out, "enter the URL you were redirected to: ")

		scanner := bufio.NewScanner(in)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("failed to read redirect URL: %w", err)
			}
			return "", fmt.Errorf("no redirect URL provided")
		}

		return scanner.Text(), nil
	}
}

// doRequest performs an authenticated HTTP request to the Spotify API.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	if s.token == nil {
		return fmt.Errorf("%w: call Authorize first", shared.ErrNotAuthenticated)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	apiURL := s.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+s.token.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API returned status %d for %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// CurrentUser resolves the authorized user's Spotify ID, cached for
// the lifetime of the client instance.
func (s *SpotifyService) CurrentUser(ctx context.Context) (string, error) {
	if s.userID != "" {
		return s.userID, nil
	}

	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return "", err
	}

	if user.ID == "" {
		return "", fmt.Errorf("%w: /me response missing user id", shared.ErrAPIRequest)
	}

	s.userID = user.ID
	return s.userID, nil
}

// Search queries the track index with space-separated field:value
// clauses. Zero hits fail with [shared.ErrTrackNotFound]; otherwise
// the provider's relevance ordering is preserved.
func (s *SpotifyService) Search(ctx context.Context, name, artist, album string) ([]models.Track, error) {
	query := "track:" + name
	if artist != "" {
		query += " artist:" + artist
	}
	if album != "" {
		query += " album:" + album
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")

	var response searchResponse
	if err := s.doRequest(ctx, http.MethodGet, "/search?"+params.Encode(), nil, &response); err != nil {
		return nil, err
	}

	if response.Tracks.Total == 0 || len(response.Tracks.Items) == 0 {
		return nil, fmt.Errorf("%w: name=%s artist=%s album=%s", shared.ErrTrackNotFound, name, artist, album)
	}

	tracks := make([]models.Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		tracks = append(tracks, item.Model())
	}

	return tracks, nil
}

// FindTrackURI resolves a song to a track URI.
//
// The name+artist query runs first; only when it yields zero hits is
// the album-qualified query tried, since album metadata often
// mismatches between providers. The first result of whichever attempt
// succeeds wins.
func (s *SpotifyService) FindTrackURI(ctx context.Context, song models.Song) (string, error) {
	tracks, err := s.Search(ctx, song.Name, song.Artist, "")
	if errors.Is(err, shared.ErrTrackNotFound) {
		tracks, err = s.Search(ctx, song.Name, song.Artist, song.Album)
	}
	if err != nil {
		return "", err
	}

	return tracks[0].URI, nil
}

// CreatePlaylist creates a new private playlist owned by the current user.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, name string) (*models.Playlist, error) {
	userID, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}

	payload := map[string]any{"name": name, "public": false}

	var playlist SpotifyPlaylist
	endpoint := fmt.Sprintf("/users/%s/playlists", userID)
	if err := s.doRequest(ctx, http.MethodPost, endpoint, payload, &playlist); err != nil {
		return nil, err
	}

	if playlist.ID == "" {
		return nil, fmt.Errorf("%w: playlist creation response missing id", shared.ErrAPIRequest)
	}

	return &models.Playlist{ID: playlist.ID, Name: playlist.Name, Public: playlist.Public}, nil
}

// AddTrack appends a track URI to a playlist.
func (s *SpotifyService) AddTrack(ctx context.Context, uri, playlistID string) error {
	params := url.Values{}
	params.Set("uris", uri)

	endpoint := fmt.Sprintf("/playlists/%s/tracks?%s", playlistID, params.Encode())
	return s.doRequest(ctx, http.MethodPost, endpoint, nil, nil)
}

// ImportGroup creates one playlist named after the group and imports
// each song sequentially. A song that cannot be matched aborts the
// whole group with [shared.ErrTrackNotFound]; there is no
// skip-and-continue policy.
func (s *SpotifyService) ImportGroup(ctx context.Context, group models.SongGroup) (*models.Playlist, error) {
	playlist, err := s.CreatePlaylist(ctx, group.Name)
	if err != nil {
		return nil, err
	}

	for _, song := range group.Songs {
		uri, err := s.FindTrackURI(ctx, song)
		if err != nil {
			return nil, fmt.Errorf("importing %q into %q: %w", song.Name, group.Name, err)
		}

		if err := s.AddTrack(ctx, uri, playlist.ID); err != nil {
			return nil, fmt.Errorf("importing %q into %q: %w", song.Name, group.Name, err)
		}
	}

	return playlist, nil
}
