package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultRetention mirrors the server-side token TTL. The server remains
// the authority on validity; the cache only decides how long it bothers
// keeping a copy around.
const DefaultRetention = 7 * 24 * time.Hour

// TokenCache persists the session token across process restarts.
type TokenCache interface {
	// Load returns the cached token, or ok=false when none is stored or
	// the retention period has passed.
	Load() (value string, ok bool, err error)
	// Save stores a token with the given retention period.
	Save(value string, retention time.Duration) error
	// Clear removes the cached token. Clearing an empty cache is a no-op.
	Clear() error
}

type cachedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// FileTokenCache stores the token as a small JSON file, the CLI equivalent
// of a browser cookie.
type FileTokenCache struct {
	path string
}

// NewFileTokenCache builds a cache at the given path.
func NewFileTokenCache(path string) *FileTokenCache {
	return &FileTokenCache{path: path}
}

// DefaultCachePath places the token file under the user config directory.
func DefaultCachePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "openshelf", "token.json"), nil
}

// Load reads and validates the cached token.
func (c *FileTokenCache) Load() (string, bool, error) {
	raw, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}

	var cached cachedToken
	if err := json.Unmarshal(raw, &cached); err != nil {
		// A corrupt cache behaves like an empty one.
		return "", false, nil
	}
	if cached.Token == "" || time.Now().After(cached.ExpiresAt) {
		return "", false, nil
	}
	return cached.Token, true, nil
}

// Save writes the token atomically with its retention deadline.
func (c *FileTokenCache) Save(value string, retention time.Duration) error {
	if retention <= 0 {
		retention = DefaultRetention
	}
	raw, err := json.Marshal(cachedToken{Token: value, ExpiresAt: time.Now().Add(retention)})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return err
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, c.path)
}

// Clear deletes the token file.
func (c *FileTokenCache) Clear() error {
	if err := os.Remove(c.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
