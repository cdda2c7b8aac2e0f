package shared

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected default host 127.0.0.1, got %s", config.Server.Host)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected default port 3000, got %d", config.Server.Port)
		}
		if config.App.Debug {
			t.Error("expected debug to default to false")
		}
		if !strings.Contains(config.Credentials.Spotify.RedirectURI, "/callback") {
			t.Errorf("expected redirect URI to end in /callback, got %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("Valid File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[app]
debug = true
station_id = "st-123"

[credentials.pandora]
username = "listener"
password = "secret"

[credentials.spotify]
client_id = "cid"
client_secret = "csecret"

[server]
host = "localhost"
port = 8080
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if !config.App.Debug {
				t.Error("expected debug to be true")
			}
			if config.App.StationID != "st-123" {
				t.Errorf("expected station_id st-123, got %s", config.App.StationID)
			}
			if config.Credentials.Pandora.Username != "listener" {
				t.Errorf("expected pandora username, got %s", config.Credentials.Pandora.Username)
			}
			if config.Credentials.Spotify.ClientID != "cid" {
				t.Errorf("expected spotify client_id, got %s", config.Credentials.Spotify.ClientID)
			}
			if config.Server.Port != 8080 {
				t.Errorf("expected port 8080, got %d", config.Server.Port)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
				t.Error("expected error for missing file")
			}
		})

		t.Run("Malformed File", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			if _, err := LoadConfig(path); err == nil {
				t.Error("expected error for malformed file")
			}
		})
	})

	t.Run("SaveConfig Round Trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		config := DefaultConfig()
		config.Credentials.Pandora.Username = "saved-user"
		config.App.StationID = "st-9"

		if err := SaveConfig(path, config); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if loaded.Credentials.Pandora.Username != "saved-user" {
			t.Errorf("expected username to survive round trip, got %s", loaded.Credentials.Pandora.Username)
		}
		if loaded.App.StationID != "st-9" {
			t.Errorf("expected station_id to survive round trip, got %s", loaded.App.StationID)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("template config should parse: %v", err)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected template port 3000, got %d", config.Server.Port)
		}
	})

	t.Run("Credential Maps", func(t *testing.T) {
		pandora := PandoraConfig{Username: "u", Password: "p"}
		m := pandora.Map()
		if m["username"] != "u" || m["password"] != "p" {
			t.Errorf("unexpected pandora map: %v", m)
		}

		spotify := SpotifyConfig{ClientID: "a", ClientSecret: "b", RedirectURI: "c", TokenCache: "d"}
		sm := spotify.Map()
		if sm["client_id"] != "a" || sm["client_secret"] != "b" || sm["redirect_uri"] != "c" || sm["token_cache"] != "d" {
			t.Errorf("unexpected spotify map: %v", sm)
		}
	})

	t.Run("CachePath", func(t *testing.T) {
		t.Run("Explicit", func(t *testing.T) {
			spotify := SpotifyConfig{TokenCache: "/tmp/cache"}
			path, err := spotify.CachePath()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if path != "/tmp/cache" {
				t.Errorf("expected explicit path, got %s", path)
			}
		})

		t.Run("Default", func(t *testing.T) {
			spotify := SpotifyConfig{}
			path, err := spotify.CachePath()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.HasSuffix(path, filepath.Join(".psx", "refresh_token")) {
				t.Errorf("expected default path under ~/.psx, got %s", path)
			}
		})
	})
}
