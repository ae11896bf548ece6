package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCacheAlwaysMisses(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok || data != nil {
		t.Errorf("Get() = %q, %v, want miss", data, ok)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("diagram"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !ok {
		t.Fatal("Get() reported a miss after Set()")
	}
	if string(data) != "diagram" {
		t.Errorf("Get() = %q, want %q", data, "diagram")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() reported a hit for an unknown key")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("stale"), time.Nanosecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() returned an expired entry")
	}
}

func TestFileCacheCorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("ok"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Overwrite the entry file with junk.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key"), []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	_, ok, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if ok {
		t.Error("Get() returned a corrupt entry")
	}
	if _, err := os.Stat(fc.path("key")); !os.IsNotExist(err) {
		t.Error("corrupt entry file was not removed")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key"); ok {
		t.Error("Get() reported a hit after Delete()")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() of a missing key should be a no-op, got %v", err)
	}
}

func TestFileCacheShardsEntries(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if err := c.Set(context.Background(), "key", []byte("x"), 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	path := c.(*FileCache).path("key")
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		t.Fatalf("Rel() error = %v", err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 || len(parts[0]) != 2 {
		t.Errorf("entry path %q should sit in a two-character shard directory", rel)
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("doc"))
	if len(h) != 64 {
		t.Errorf("Hash() length = %d, want 64", len(h))
	}
	if h != Hash([]byte("doc")) {
		t.Error("Hash() is not deterministic")
	}
	if h == Hash([]byte("other")) {
		t.Error("distinct inputs should not collide")
	}
}

func TestRenderKey(t *testing.T) {
	base := RenderKey("abc", "unicode", 5, "auto", true)
	if !strings.HasPrefix(base, "render:") {
		t.Errorf("RenderKey() = %q, want render: prefix", base)
	}
	if base != RenderKey("abc", "unicode", 5, "auto", true) {
		t.Error("RenderKey() is not deterministic")
	}

	variants := []string{
		RenderKey("def", "unicode", 5, "auto", true),
		RenderKey("abc", "ascii", 5, "auto", true),
		RenderKey("abc", "unicode", 3, "auto", true),
		RenderKey("abc", "unicode", 5, "on", true),
		RenderKey("abc", "unicode", 5, "auto", false),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d produced the same key as the base options", i)
		}
	}
}
