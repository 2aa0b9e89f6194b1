// Package cache provides a content-addressed file cache for extracted
// change signals. Refs resolve to immutable states, so entries never
// expire; the key already encodes everything the result depends on.
package cache

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/zeebo/blake3"
)

// Cache stores signal records keyed by the analysis inputs.
type Cache struct {
	dir     string
	enabled bool
}

// New creates a cache rooted at dir. A disabled cache is a no-op on every
// operation.
func New(dir string, enabled bool) (*Cache, error) {
	if !enabled {
		return &Cache{enabled: false}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, enabled: true}, nil
}

// Key derives a cache key from the analysis inputs: resolved base and
// target hashes plus a fingerprint of the configuration.
func Key(parts ...string) string {
	hash := blake3.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Get retrieves a cached entry.
func (c *Cache) Get(key string) ([]byte, bool) {
	if !c.enabled {
		return nil, false
	}
	data, err := os.ReadFile(c.keyPath(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data under key.
func (c *Cache) Set(key string, data []byte) error {
	if !c.enabled {
		return nil
	}
	return os.WriteFile(c.keyPath(key), data, 0o600)
}

// Clear removes all cache entries.
func (c *Cache) Clear() error {
	if !c.enabled {
		return nil
	}
	return os.RemoveAll(c.dir)
}

func (c *Cache) keyPath(key string) string {
	return filepath.Join(c.dir, key+".json")
}
