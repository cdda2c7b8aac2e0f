// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for station migration:
//  1. [StationListView] : Browse and select Pandora stations
//  2. [SongListView] : Preview liked songs before migrating
//  3. [ConfirmView] : Confirm the migration
//  4. [MigrateView] : Monitor real-time progress updates
//  5. [ResultView] : Display the created playlist or failure
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Progress updates flow through a channel from the MigrationEngine, providing non-blocking status reporting during imports.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
