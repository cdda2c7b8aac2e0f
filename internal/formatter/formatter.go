// package formatter provides functions to export station song lists to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/psx/internal/models"
)

// ExportToCSV converts a SongGroup to CSV format with columns: Name, Artist, Album
func ExportToCSV(group models.SongGroup) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Artist", "Album"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range group.Songs {
		record := []string{
			song.Name,
			song.Artist,
			song.Album,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a SongGroup to Markdown format
func ExportToMarkdown(group models.SongGroup) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", group.Name))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n\n", len(group.Songs)))

	buf.WriteString("## Songs\n\n")
	for i, song := range group.Songs {
		albumPart := ""
		if song.Album != "" {
			albumPart = fmt.Sprintf(" (%s)", song.Album)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s\n", i+1, song.Artist, song.Name, albumPart))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a SongGroup to plain text format
func ExportToText(group models.SongGroup) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Station: %s\n", group.Name))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(group.Songs)))

	for i, song := range group.Songs {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, song.Artist, song.Name))
	}

	return buf.Bytes(), nil
}

// WriteCSVExport writes a station's liked songs to a CSV file.
//
// Defaults to {group.Name}_songs.csv as the filename.
func WriteCSVExport(group models.SongGroup, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_songs.csv", group.Name)
	}

	csvData, err := ExportToCSV(group)
	if err != nil {
		return "", fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	return filepath, nil
}

// WriteMarkdownExport writes a station's liked songs to a Markdown file.
//
// Defaults to {group.Name}.md as the filename.
func WriteMarkdownExport(group models.SongGroup, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s.md", group.Name)
	}

	mdData, err := ExportToMarkdown(group)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport writes a station's liked songs to a plain text file.
//
// Defaults to {group.Name}_songs.txt as the filename.
func WriteTextExport(group models.SongGroup, filepath string) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s_songs.txt", group.Name)
	}

	textData, err := ExportToText(group)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
