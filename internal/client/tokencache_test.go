package client

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newCache(t *testing.T) *FileTokenCache {
	t.Helper()
	return NewFileTokenCache(filepath.Join(t.TempDir(), "token.json"))
}

func TestSaveAndLoad(t *testing.T) {
	cache := newCache(t)

	if err := cache.Save("tok-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	value, ok, err := cache.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok || value != "tok-1" {
		t.Fatalf("expected cached tok-1, got %q ok=%v", value, ok)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cache := newCache(t)

	_, ok, err := cache.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expected no token from empty cache")
	}
}

func TestRetentionExpiry(t *testing.T) {
	cache := newCache(t)

	raw := []byte(`{"token":"tok-1","expires_at":"2000-01-01T00:00:00Z"}`)
	if err := os.WriteFile(cache.path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, ok, err := cache.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expected expired token to be discarded")
	}
}

func TestCorruptCacheDiscarded(t *testing.T) {
	cache := newCache(t)

	if err := os.WriteFile(cache.path, []byte("not-json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, ok, err := cache.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expected corrupt cache to behave as empty")
	}
}

func TestClear(t *testing.T) {
	cache := newCache(t)

	if err := cache.Save("tok-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := cache.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := cache.Load(); ok {
		t.Fatal("expected cleared cache to be empty")
	}

	// Clearing twice is fine.
	if err := cache.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}
