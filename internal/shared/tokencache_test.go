package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestTokenCache(t *testing.T) {
	t.Run("Read Missing File", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "refresh_token"))

		_, err := cache.Read()
		if !errors.Is(err, ErrNoRefreshToken) {
			t.Errorf("expected ErrNoRefreshToken, got %v", err)
		}
	})

	t.Run("Read Empty File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "refresh_token")
		if err := os.WriteFile(path, []byte("  \n"), 0600); err != nil {
			t.Fatalf("failed to write cache file: %v", err)
		}

		cache := NewTokenCache(path)
		_, err := cache.Read()
		if !errors.Is(err, ErrNoRefreshToken) {
			t.Errorf("expected ErrNoRefreshToken for empty file, got %v", err)
		}
	})

	t.Run("Write Then Read", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "nested", "dir", "refresh_token"))

		if err := cache.Write("AQDtoken123"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		token, err := cache.Read()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "AQDtoken123" {
			t.Errorf("expected token to round trip, got %q", token)
		}
	})

	t.Run("Write Overwrites", func(t *testing.T) {
		cache := NewTokenCache(filepath.Join(t.TempDir(), "refresh_token"))

		if err := cache.Write("first"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if err := cache.Write("second"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		token, err := cache.Read()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "second" {
			t.Errorf("expected latest token, got %q", token)
		}
	})

	t.Run("File Permissions", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "refresh_token")
		cache := NewTokenCache(path)

		if err := cache.Write("perms"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("expected cache file to exist: %v", err)
		}
		if info.Mode().Perm() != 0600 {
			t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
		}
	})
}
