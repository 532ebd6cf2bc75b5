package cache

import (
	"context"
	"testing"
	"time"
)

func TestKey_StableAndSensitive(t *testing.T) {
	a := Key("MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)))", 1, 2, "greedy+prune")
	b := Key("MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)))", 1, 2, "greedy+prune")
	if a != b {
		t.Error("identical inputs must produce identical keys")
	}
	if a == Key("MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)))", 1, 2, "greedy") {
		t.Error("different chains must produce different keys")
	}
	if a == Key("MULTIPOLYGON (((0 0, 1 0, 1 1, 0 1, 0 0)))", 2, 1, "greedy+prune") {
		t.Error("different costs must produce different keys")
	}
}

func TestFileCache_SetGet(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, ok, _ := c.Get(ctx, "cover:missing"); ok {
		t.Error("unexpected hit on empty cache")
	}
	if err := c.Set(ctx, "cover:abc", []byte("payload"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "cover:abc")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want payload", data)
	}
}

func TestFileCache_Expiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if err := c.Set(ctx, "cover:ttl", []byte("x"), time.Nanosecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, ok, _ := c.Get(ctx, "cover:ttl"); ok {
		t.Error("expired entry should be a miss")
	}
}

func TestFileCache_Clear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	fc := c.(*FileCache)

	_ = c.Set(ctx, "cover:a", []byte("1"), 0)
	_ = c.Set(ctx, "cover:b", []byte("2"), 0)

	count, _, err := fc.Size()
	if err != nil || count != 2 {
		t.Fatalf("Size = %d err=%v, want 2 entries", count, err)
	}
	if err := fc.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	count, _, _ = fc.Size()
	if count != 0 {
		t.Errorf("Size after Clear = %d, want 0", count)
	}
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("null cache must never hit")
	}
}
