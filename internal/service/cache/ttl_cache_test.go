package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache(4)
	c.Set("a", 1, time.Minute)

	v, ok := c.Get("a")
	if !ok {
		t.Fatalf("expected hit")
	}
	if v.(int) != 1 {
		t.Fatalf("got %v, want 1", v)
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache(4)
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected expired entry to miss")
	}
}

func TestTTLCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache(4)
	c.Set("a", 1, 0)
	time.Sleep(2 * time.Millisecond)

	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected zero-ttl entry to persist")
	}
}

func TestTTLCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := NewTTLCache(2)
	c.Set("old", 1, time.Minute)
	time.Sleep(time.Millisecond)
	c.Set("new", 2, time.Minute)
	time.Sleep(time.Millisecond)

	// Touch "old" so "new" becomes the eviction candidate.
	if _, ok := c.Get("old"); !ok {
		t.Fatalf("expected hit on old")
	}
	time.Sleep(time.Millisecond)
	c.Set("third", 3, time.Minute)

	if _, ok := c.Get("new"); ok {
		t.Fatalf("expected new to be evicted")
	}
	if _, ok := c.Get("old"); !ok {
		t.Fatalf("expected old to survive")
	}
	if _, ok := c.Get("third"); !ok {
		t.Fatalf("expected third to be present")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache(4)
	c.Set("a", 1, time.Minute)
	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected delete to remove entry")
	}
}
