package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/psx/internal/models"
	"github.com/desertthunder/psx/internal/services"
	"github.com/desertthunder/psx/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	StationListView ViewState = iota
	SongListView
	ConfirmView
	MigrateView
	ResultView
)

type stationsFetchedMsg struct {
	stations []models.Station
	err      error
}

type songsFetchedMsg struct {
	station models.Station
	songs   []models.Song
	err     error
}

type progressUpdateMsg tasks.ProgressUpdate

type migrateCompleteMsg struct {
	result tasks.StationResult
	err    error
}

// Model represents the TUI application state.
type Model struct {
	ctx             context.Context
	view            ViewState
	source          services.SourceService
	engine          *tasks.MigrationEngine
	width           int
	height          int
	stationList     list.Model
	stations        []models.Station
	songList        list.Model
	selectedStation *models.Station
	progressChan    chan tasks.ProgressUpdate
	progress        tasks.ProgressUpdate
	result          *tasks.StationResult
	resultErr       error
	err             error
	help            help.Model
	keys            keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// Both services are expected to be authenticated before the program starts.
func NewModel(ctx context.Context, source services.SourceService, engine *tasks.MigrationEngine) *Model {
	return &Model{
		ctx:    ctx,
		view:   StationListView,
		source: source,
		engine: engine,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init initializes the TUI by fetching stations from Pandora.
func (m *Model) Init() tea.Cmd {
	return m.fetchStations()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.stationList.Width() == 0 {
			m.stationList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() == 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case StationListView:
			return m.handleStationListKeys(msg)
		case SongListView:
			return m.handleSongListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case stationsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.stations = msg.stations
		items := make([]list.Item, len(msg.stations))
		for i, station := range msg.stations {
			items[i] = stationItem{station: station}
		}
		m.stationList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.stationList.Title = "Pandora Stations"
		m.stationList.SetSize(m.width-4, m.height-8)
		return m, nil

	case songsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = StationListView
			return m, nil
		}
		station := msg.station
		station.Songs = msg.songs
		m.selectedStation = &station
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = songItem{song: song}
		}
		m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.songList.Title = fmt.Sprintf("Liked songs on '%s'", station.Name)
		m.songList.SetSize(m.width-4, m.height-8)
		m.view = SongListView
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case migrateCompleteMsg:
		result := msg.result
		m.result = &result
		m.resultErr = msg.err
		m.view = ResultView
		m.progressChan = nil
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case StationListView:
		return m.renderStationList()
	case SongListView:
		return m.renderSongList()
	case ConfirmView:
		return m.renderConfirm()
	case MigrateView:
		return m.renderMigrate()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleStationListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.stationList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(stationItem); ok {
				return m, m.fetchSongs(item.station)
			}
		}
	}

	var cmd tea.Cmd
	m.stationList, cmd = m.stationList.Update(msg)
	return m, cmd
}

func (m *Model) handleSongListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = StationListView
		return m, nil
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n":
		m.view = SongListView
		return m, nil
	case "y":
		m.view = MigrateView
		return m, m.startMigration()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = StationListView
		m.selectedStation = nil
		m.result = nil
		m.resultErr = nil
		m.err = nil
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case StationListView:
		m.stationList, cmd = m.stationList.Update(msg)
	case SongListView:
		m.songList, cmd = m.songList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchStations() tea.Cmd {
	return func() tea.Msg {
		stations, err := m.engine.Stations(m.ctx)
		return stationsFetchedMsg{stations: stations, err: err}
	}
}

func (m *Model) fetchSongs(station models.Station) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.source.LikedSongs(m.ctx, station.ID)
		return songsFetchedMsg{station: station, songs: songs, err: err}
	}
}

func (m *Model) startMigration() tea.Cmd {
	progressChan := make(chan tasks.ProgressUpdate, 50)
	m.progressChan = progressChan
	station := *m.selectedStation
	done := make(chan migrateCompleteMsg, 1)

	go func() {
		result, err := m.engine.RunStation(m.ctx, station, 1, 1, progressChan)
		done <- migrateCompleteMsg{result: result, err: err}
		close(progressChan)
	}()

	return tea.Batch(m.waitForProgress(), func() tea.Msg { return <-done })
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		update, ok := <-progressChan
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderStationList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.stationList.View(), helpView)
}

func (m *Model) renderSongList() string {
	migrateKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "migrate"),
	)
	helpKeys := []key.Binding{migrateKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.songList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Migrate '%s' to Spotify?", m.selectedStation.Name))
	info := fmt.Sprintf("\nStation: %s\nSongs: %d\n", m.selectedStation.Name, len(m.selectedStation.Songs))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderMigrate() string {
	title := styles.title.Render("Migrating Station")

	var phase string
	switch m.progress.Phase {
	case tasks.FetchSongs:
		phase = "Fetching liked songs..."
	case tasks.ImportSongs:
		phase = fmt.Sprintf("Importing songs (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.resultErr != nil {
		return styles.err.Render(fmt.Sprintf("Migration failed: %v\n\nPress r to retry, q to quit", m.resultErr))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to retry, q to quit")
	}

	var body string
	if m.result.Skipped {
		title := styles.warn.Render("Station skipped")
		body = fmt.Sprintf("%s\n\nStation: %s\nReason: %s", title, m.result.Station.Name, m.result.Reason)
	} else {
		title := styles.ok.Render("✓ Migration Complete!")
		body = fmt.Sprintf(
			"%s\n\nStation: %s\nPlaylist: %s\nSongs imported: %d",
			title,
			m.result.Station.Name,
			m.result.Playlist.Name,
			m.result.SongCount,
		)
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n\n%s", body, helpView)
}
