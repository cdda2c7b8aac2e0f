// Pandora implementation of [SourceService]
//
// Pandora REST API semantics based on https://6xq.net/pandora-apidoc/rest/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/shared"
)

const (
	pandoraBaseURL = "https://www.pandora.com"
	pandoraAPIPath = "/api/v1"

	csrfTokenHeader = "X-CsrfToken"
	authTokenHeader = "X-AuthToken"
	csrfCookieName  = "csrftoken"

	// Stations default page size for getStations.
	defaultStationLimit = 250

	// Fixed page size for the feedback paging loop.
	feedbackPageSize = 10
)

// PandoraFeedback is a single entry of the getStationFeedback response.
//
// albumTitle and artistName may come back as JSON null, which decodes
// to the empty string.
type PandoraFeedback struct {
	SongTitle  string `json:"songTitle"`
	AlbumTitle string `json:"albumTitle"`
	ArtistName string `json:"artistName"`
}

// Song converts a feedback record to the provider-neutral model. Every
// feedback record is convertible; missing album/artist never block it.
func (f PandoraFeedback) Song() models.Song {
	return models.Song{
		Name:   f.SongTitle,
		Album:  f.AlbumTitle,
		Artist: f.ArtistName,
	}
}

// PandoraStation is a station entry of the getStations response.
type PandoraStation struct {
	StationID string `json:"stationId"`
	Name      string `json:"name"`
}

type stationsResponse struct {
	Stations []PandoraStation `json:"stations"`
}

type feedbackResponse struct {
	Total    int               `json:"total"`
	Feedback []PandoraFeedback `json:"feedback"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

// PandoraService implements [SourceService] against the Pandora REST API.
//
// Session state (CSRF token, auth token, cookies) is owned by the
// instance and mutated only by Login. Methods must not be called
// concurrently.
type PandoraService struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	headers    map[string]string
	cookies    []*http.Cookie
}

// NewPandoraService creates a Pandora client for the given account credentials.
//
// The client performs no network traffic until Login is called.
func NewPandoraService(credentials map[string]string, client *http.Client) (*PandoraService, error) {
	username, ok := credentials["username"]
	if !ok || username == "" {
		return nil, fmt.Errorf("%w: missing username", shared.ErrMissingCredentials)
	}

	password, ok := credentials["password"]
	if !ok || password == "" {
		return nil, fmt.Errorf("%w: missing password", shared.ErrMissingCredentials)
	}

	if client == nil {
		client = http.DefaultClient
	}

	return &PandoraService{
		baseURL:    pandoraBaseURL,
		username:   username,
		password:   password,
		httpClient: client,
		headers:    map[string]string{},
	}, nil
}

// Name returns the provider name.
func (p *PandoraService) Name() string {
	return "Pandora"
}

// Login performs the two-step authentication sequence: CSRF cookie
// capture followed by credential login. Each step is idempotent and
// skipped when its header is already installed.
func (p *PandoraService) Login(ctx context.Context) error {
	if err := p.getCSRF(ctx); err != nil {
		return err
	}
	return p.login(ctx)
}

// getCSRF issues a HEAD request to the site root, captures the CSRF
// cookie, and mirrors it into the request headers.
func (p *PandoraService) getCSRF(ctx context.Context) error {
	if _, ok := p.headers[csrfTokenHeader]; ok {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.baseURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	var csrfToken string
	for _, cookie := range resp.Cookies() {
		p.cookies = append(p.cookies, cookie)
		if cookie.Name == csrfCookieName {
			csrfToken = cookie.Value
		}
	}

	if csrfToken == "" {
		return fmt.Errorf("%w: no %s cookie in response", shared.ErrAuthFailed, csrfCookieName)
	}

	p.headers[csrfTokenHeader] = csrfToken
	return nil
}

// login exchanges the account credentials for an auth token header.
func (p *PandoraService) login(ctx context.Context) error {
	if _, ok := p.headers[authTokenHeader]; ok {
		return nil
	}

	var login loginResponse
	err := p.send(ctx, http.MethodPost, "/auth/login", map[string]string{
		"username": p.username,
		"password": p.password,
	}, &login)
	if err != nil {
		return fmt.Errorf("%w: login request: %v", shared.ErrAuthFailed, err)
	}

	if login.AuthToken == "" {
		return fmt.Errorf("%w: login response missing authToken", shared.ErrAuthFailed)
	}

	p.headers[authTokenHeader] = login.AuthToken
	return nil
}

// ensureAuth guards data operations against use before Login.
func (p *PandoraService) ensureAuth() error {
	if _, ok := p.headers[authTokenHeader]; !ok {
		return fmt.Errorf("%w: call Login first", shared.ErrNotAuthenticated)
	}
	return nil
}

// send issues a JSON request to an API endpoint with the session
// headers and cookies installed at login time.
//
// POST is the only supported method; anything else is a programmer error.
func (p *PandoraService) send(ctx context.Context, method, endpoint string, payload, result any) error {
	if method != http.MethodPost {
		return fmt.Errorf("%w: supported methods are POST but given %s", shared.ErrInvalidArgument, method)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request body: %w", err)
	}

	apiURL := p.baseURL + pandoraAPIPath + endpoint
	req, err := http.NewRequestWithContext(ctx, method, apiURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range p.headers {
		req.Header.Set(key, value)
	}
	for _, cookie := range p.cookies {
		req.AddCookie(cookie)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: pandora API returned status %d for %s", shared.ErrAPIRequest, resp.StatusCode, endpoint)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// GetStations retrieves the account's stations via /station/getStations.
func (p *PandoraService) GetStations(ctx context.Context, limit int) ([]models.Station, error) {
	if err := p.ensureAuth(); err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultStationLimit
	}

	var response stationsResponse
	err := p.send(ctx, http.MethodPost, "/station/getStations", map[string]int{"pageSize": limit}, &response)
	if err != nil {
		return nil, err
	}

	stations := make([]models.Station, 0, len(response.Stations))
	for _, st := range response.Stations {
		stations = append(stations, models.Station{ID: st.StationID, Name: st.Name})
	}

	return stations, nil
}

// StationFeedback returns the complete feedback list for a station.
//
// The total is only reported embedded in a paged response, so the
// method probes with page size 1 to learn it, then issues
// ceil(total/10) requests with explicit start offsets, concatenating
// the pages in order. A total of zero yields no page requests.
func (p *PandoraService) StationFeedback(ctx context.Context, stationID string, positive bool) ([]PandoraFeedback, error) {
	if err := p.ensureAuth(); err != nil {
		return nil, err
	}

	probe := map[string]any{
		"stationId": stationID,
		"positive":  positive,
		"pageSize":  1,
	}

	var sizing feedbackResponse
	if err := p.send(ctx, http.MethodPost, "/station/getStationFeedback", probe, &sizing); err != nil {
		return nil, err
	}

	pages := (sizing.Total + feedbackPageSize - 1) / feedbackPageSize
	feedback := make([]PandoraFeedback, 0, sizing.Total)

	for page := 0; page < pages; page++ {
		request := map[string]any{
			"stationId":  stationID,
			"positive":   positive,
			"pageSize":   feedbackPageSize,
			"startIndex": page * feedbackPageSize,
		}

		var response feedbackResponse
		if err := p.send(ctx, http.MethodPost, "/station/getStationFeedback", request, &response); err != nil {
			return nil, err
		}

		feedback = append(feedback, response.Feedback...)
	}

	return feedback, nil
}

// LikedSongs returns the positively rated songs of a station.
func (p *PandoraService) LikedSongs(ctx context.Context, stationID string) ([]models.Song, error) {
	feedback, err := p.StationFeedback(ctx, stationID, true)
	if err != nil {
		return nil, err
	}

	songs := make([]models.Song, 0, len(feedback))
	for _, fb := range feedback {
		songs = append(songs, fb.Song())
	}

	return songs, nil
}
