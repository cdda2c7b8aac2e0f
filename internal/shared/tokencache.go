package shared

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenCache persists a single refresh token as a plaintext file.
//
// The file is the only durable state the application keeps. Its content
// is trusted until the provider rejects it; no expiry check happens
// locally.
type TokenCache struct {
	Path string
}

// NewTokenCache creates a TokenCache backed by the file at path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{Path: path}
}

// Read returns the cached refresh token.
//
// A missing file surfaces as [ErrNoRefreshToken] so callers can fall
// through to interactive authorization.
func (c *TokenCache) Read() (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNoRefreshToken, c.Path)
		}
		return "", fmt.Errorf("failed to read token cache: %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: cache file is empty", ErrNoRefreshToken)
	}

	return token, nil
}

// Write stores the refresh token, overwriting any previous value.
func (c *TokenCache) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.Path), 0700); err != nil {
		return fmt.Errorf("failed to create token cache directory: %w", err)
	}

	if err := os.WriteFile(c.Path, []byte(token), 0600); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	return nil
}
