package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestReadWriteRoundTrip(t *testing.T) {
	c := newTestCache(t)
	in := []string{"alpha", "beta"}
	if err := c.Write("yt::Sam Rayburn fishing::12", in); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, ok := c.Read("yt::Sam Rayburn fishing::12", time.Hour)
	if !ok {
		t.Fatal("expected cache hit")
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal cached data: %v", err)
	}
	if len(out) != 2 || out[0] != "alpha" || out[1] != "beta" {
		t.Fatalf("roundtrip mismatch: %v", out)
	}
}

func TestMissingKeyIsMiss(t *testing.T) {
	c := newTestCache(t)
	if _, ok := c.Read("never written", time.Hour); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestExpiredEntryIsMiss(t *testing.T) {
	c := newTestCache(t)
	if err := c.Write("stale", "payload"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, ok := c.Read("stale", 0); ok {
		t.Fatal("expected zero TTL to expire the entry")
	}
	if _, ok := c.Read("stale", time.Hour); !ok {
		t.Fatal("entry should still be fresh under a longer TTL")
	}
}

func TestCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	if _, ok := c.Read("bad", time.Hour); ok {
		t.Fatal("expected corrupt entry to read as a miss")
	}
}

func TestKeySanitization(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := c.Write("yt::../escape/Attempt::5", "data"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one cache file, got %d", len(entries))
	}
	name := entries[0].Name()
	if strings.ContainsAny(strings.TrimSuffix(name, ".json"), "./:") {
		t.Fatalf("cache file name not sanitized: %q", name)
	}
	if _, ok := c.Read("yt::../escape/Attempt::5", time.Hour); !ok {
		t.Fatal("sanitized key should still read back")
	}
}
