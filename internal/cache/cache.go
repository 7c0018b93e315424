// Package cache stores raw engine responses keyed by (engine, model,
// prompt). Only the response text is cached; scores are always recomputed
// from it, so a rubric change invalidates nothing.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache provides response caching for prompt executions
type Cache struct {
	dir string
	mu  sync.Mutex
}

// Entry is one cached response.
type Entry struct {
	EngineType   string    `json:"engine_type"`
	ModelID      string    `json:"model_id"`
	PromptText   string    `json:"prompt_text"`
	ResponseText string    `json:"response_text"`
	CachedAt     time.Time `json:"cached_at"`
}

// New creates a new cache instance with the specified directory
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key generates the cache key for one prompt execution. The same prompt
// against a different engine or model is a different entry.
func Key(engineType, modelID, promptText string) string {
	h := sha256.New()
	writeString(h, engineType)
	writeString(h, modelID)
	writeString(h, promptText)
	return hex.EncodeToString(h.Sum(nil))
}

// Get retrieves a cached response if it exists
func (c *Cache) Get(key string) (*Entry, bool) {
	if c.dir == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.cachePath(key))
	if err != nil {
		// Cache miss
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		// Invalid cache entry, treat as miss
		return nil, false
	}

	return &entry, true
}

// Put stores a response in the cache
func (c *Cache) Put(key string, entry *Entry) error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling cache entry: %w", err)
	}

	if err := os.WriteFile(c.cachePath(key), data, 0644); err != nil {
		return fmt.Errorf("writing cache file: %w", err)
	}

	return nil
}

// Clear removes all cached responses
func (c *Cache) Clear() error {
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		return nil
	}

	// Only delete a directory that actually looks like a response cache.
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("reading cache directory: %w", err)
	}

	if len(entries) > 0 {
		hasValidCache := false
		for _, entry := range entries {
			if entry.IsDir() {
				return fmt.Errorf("cache directory contains subdirectories - refusing to delete for safety")
			}
			if filepath.Ext(entry.Name()) == ".json" {
				hasValidCache = true
			} else {
				return fmt.Errorf("cache directory contains non-cache files - refusing to delete for safety")
			}
		}
		if !hasValidCache {
			return fmt.Errorf("no valid cache files found in directory - refusing to delete for safety")
		}
	}

	return os.RemoveAll(c.dir)
}

// cachePath returns the file path for a cache key
func (c *Cache) cachePath(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func writeString(w io.Writer, s string) {
	// Null byte delimiter prevents hash collisions between adjacent fields
	_, _ = w.Write([]byte(s + "\x00"))
}
