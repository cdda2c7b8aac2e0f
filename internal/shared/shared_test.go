package shared

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestGenerateID(t *testing.T) {
	t.Run("Returns Valid UUID", func(t *testing.T) {
		id := GenerateID()
		if len(id) != 36 {
			t.Errorf("expected 36-char UUID, got %d chars: %s", len(id), id)
		}
		if strings.Count(id, "-") != 4 {
			t.Errorf("expected 4 hyphens in UUID, got %s", id)
		}
	})

	t.Run("Unique Across Calls", func(t *testing.T) {
		seen := map[string]bool{}
		for range 100 {
			id := GenerateID()
			if seen[id] {
				t.Fatalf("duplicate ID generated: %s", id)
			}
			seen[id] = true
		}
	})
}

func TestGenerateState(t *testing.T) {
	state, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state == "" {
		t.Error("expected non-empty state token")
	}

	other, err := GenerateState()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if state == other {
		t.Error("expected distinct state tokens across calls")
	}
}

func TestMarshalJSON(t *testing.T) {
	payload := map[string]string{"name": "Test Station"}

	t.Run("Compact", func(t *testing.T) {
		data, err := MarshalJSON(payload, false)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if bytes.Contains(data, []byte("\n")) {
			t.Error("compact output should not contain newlines")
		}
	})

	t.Run("Pretty", func(t *testing.T) {
		data, err := MarshalJSON(payload, true)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !bytes.Contains(data, []byte("  ")) {
			t.Error("pretty output should be indented")
		}

		var decoded map[string]string
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("pretty output should still be valid JSON: %v", err)
		}
		if decoded["name"] != "Test Station" {
			t.Errorf("expected round-trip name 'Test Station', got %s", decoded["name"])
		}
	})
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	if logger == nil {
		t.Fatal("expected logger to be created")
	}

	logger.Info("hello")
	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}
}

func TestNewFileLogger(t *testing.T) {
	path := t.TempDir() + "/logs/app.log"

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	logger.Info("file message")
}
