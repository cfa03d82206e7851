package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	want := []byte("<svg>render</svg>")
	if err := c.Set(ctx, "render:abc", want, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := c.Get(ctx, "render:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("Get returned miss after Set")
	}
	if string(got) != string(want) {
		t.Errorf("Get = %q, want %q", got, want)
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "short", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, ok, err := c.Get(ctx, "short"); err != nil || ok {
		t.Errorf("Get(expired) = ok=%v err=%v, want miss", ok, err)
	}
}

func TestFileCacheNoTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "forever"); !ok {
		t.Error("entry with no TTL expired")
	}
}

func TestFileCacheDelete(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "gone", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "gone"); ok {
		t.Error("Get returned hit after Delete")
	}
	if err := c.Delete(ctx, "gone"); err != nil {
		t.Errorf("Delete(missing) = %v, want nil", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "bad", []byte("x"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}

	// Corrupt the entry on disk. It should read as a miss, not an error.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("bad"), []byte("not json"), 0644); err != nil {
		t.Fatalf("corrupt entry: %v", err)
	}

	if _, ok, err := c.Get(ctx, "bad"); err != nil || ok {
		t.Errorf("Get(corrupt) = ok=%v err=%v, want miss", ok, err)
	}
}

func TestFileCacheSharding(t *testing.T) {
	c, err := NewFileCache("/tmp/canvas-cache")
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	path := c.(*FileCache).path("some-key")
	rel, err := filepath.Rel("/tmp/canvas-cache", path)
	if err != nil {
		t.Fatalf("Rel: %v", err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 {
		t.Fatalf("path %q not sharded into subdirectory", rel)
	}
	if len(parts[0]) != 2 {
		t.Errorf("shard dir %q, want two characters", parts[0])
	}
	if !strings.HasSuffix(parts[1], ".json") {
		t.Errorf("entry file %q missing .json suffix", parts[1])
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, err := c.Get(ctx, "k"); err != nil || ok {
		t.Errorf("Get = ok=%v err=%v, want permanent miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestRenderKey(t *testing.T) {
	a := RenderKey("hash1", "svg")
	b := RenderKey("hash1", "svg")
	if a != b {
		t.Errorf("same inputs produced different keys: %q vs %q", a, b)
	}
	if !strings.HasPrefix(a, "render:") {
		t.Errorf("key %q missing render prefix", a)
	}
	if c := RenderKey("hash1", "png"); c == a {
		t.Error("different formats produced the same key")
	}
	if c := RenderKey("hash2", "svg"); c == a {
		t.Error("different documents produced the same key")
	}
	if c := RenderKey("hash1", "svg", "theme=dark"); c == a {
		t.Error("different options produced the same key")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("canvas"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("canvas")) {
		t.Error("Hash not deterministic")
	}
	if h == Hash([]byte("other")) {
		t.Error("distinct inputs collided")
	}
}
