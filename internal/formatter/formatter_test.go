package formatter

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/psx/internal/models"
)

var testGroup = models.SongGroup{
	Name: "Jazz Radio",
	Songs: []models.Song{
		{Name: "So What", Artist: "Miles Davis", Album: "Kind of Blue"},
		{Name: "Naima", Artist: "John Coltrane"},
	},
}

func TestExportToCSV(t *testing.T) {
	data, err := ExportToCSV(testGroup)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output should be valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}

	header := records[0]
	if header[0] != "Name" || header[1] != "Artist" || header[2] != "Album" {
		t.Errorf("unexpected header: %v", header)
	}

	if records[1][0] != "So What" || records[1][1] != "Miles Davis" || records[1][2] != "Kind of Blue" {
		t.Errorf("unexpected first row: %v", records[1])
	}
	if records[2][2] != "" {
		t.Errorf("expected empty album cell, got %q", records[2][2])
	}
}

func TestExportToMarkdown(t *testing.T) {
	data, err := ExportToMarkdown(testGroup)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "# Jazz Radio") {
		t.Error("expected station heading")
	}
	if !strings.Contains(output, "**Songs**: 2") {
		t.Error("expected song count")
	}
	if !strings.Contains(output, "1. Miles Davis - So What (Kind of Blue)") {
		t.Errorf("expected numbered entry with album, got:\n%s", output)
	}
	if !strings.Contains(output, "2. John Coltrane - Naima\n") {
		t.Errorf("expected entry without album parenthetical, got:\n%s", output)
	}
}

func TestExportToText(t *testing.T) {
	data, err := ExportToText(testGroup)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	output := string(data)
	if !strings.Contains(output, "Station: Jazz Radio") {
		t.Error("expected station line")
	}
	if !strings.Contains(output, "Songs: 2") {
		t.Error("expected song count line")
	}
	if !strings.Contains(output, "1. Miles Davis - So What") {
		t.Error("expected numbered song entry")
	}
}

func TestWriteExports(t *testing.T) {
	t.Run("CSV", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.csv")

		written, err := WriteCSVExport(testGroup, path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != path {
			t.Errorf("expected path %s, got %s", path, written)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected file to exist: %v", err)
		}
	})

	t.Run("Markdown Default Filename", func(t *testing.T) {
		dir := t.TempDir()
		cwd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to change directory: %v", err)
		}
		defer os.Chdir(cwd)

		written, err := WriteMarkdownExport(testGroup, "")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if written != "Jazz Radio.md" {
			t.Errorf("expected default filename, got %s", written)
		}
	})

	t.Run("Text", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "songs.txt")

		if _, err := WriteTextExport(testGroup, path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("expected file to exist: %v", err)
		}
		if !strings.Contains(string(data), "Jazz Radio") {
			t.Error("expected station name in file")
		}
	})
}
