// Package cache is a small disk-backed JSON response cache. Entries live in
// one directory, one file per key, with the write time recorded inside the
// payload. Anything unreadable, unparsable or past its TTL is a miss, never
// an error: the cache only ever saves work.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Cache struct {
	dir string
}

type envelope struct {
	CachedAt int64           `json:"_cached_at"`
	Data     json.RawMessage `json:"data"`
}

func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Read returns the cached payload for key if it exists and is younger than
// ttl.
func (c *Cache) Read(key string, ttl time.Duration) (json.RawMessage, bool) {
	raw, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if time.Since(time.Unix(env.CachedAt, 0)) > ttl {
		return nil, false
	}
	return env.Data, true
}

func (c *Cache) Write(key string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal cache data: %w", err)
	}
	env := envelope{CachedAt: time.Now().Unix(), Data: payload}
	out, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cache envelope: %w", err)
	}
	if err := os.WriteFile(c.path(key), out, 0o644); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}
	return nil
}

// path maps a key to a file name, keeping only [a-z0-9] and replacing the
// rest with underscores so keys cannot escape the cache dir.
func (c *Cache) path(key string) string {
	var b strings.Builder
	for _, ch := range strings.ToLower(key) {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return filepath.Join(c.dir, b.String()+".json")
}
