package cache

import (
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache should miss")
	}

	c.Set("a", 1)
	got, found := c.Get("a")
	if !found || got != 1 {
		t.Errorf("Get(a) = %d, %v; want 1, true", got, found)
	}

	c.Set("a", 2)
	if got, _ := c.Get("a"); got != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", got)
	}
}

func TestTTLExpiry(t *testing.T) {
	c := NewLRUCache[string](4, 10*time.Millisecond)

	c.Set("k", "v")
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("k"); found {
		t.Error("expired entry should miss")
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d after expiry read, want 0", c.Size())
	}
}

func TestSizeEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3) // evicts a

	if _, found := c.Get("a"); found {
		t.Error("oldest entry should have been evicted")
	}
	if _, found := c.Get("c"); !found {
		t.Error("newest entry should remain")
	}
	if c.Size() != 2 {
		t.Errorf("Size = %d, want 2", c.Size())
	}
}

func TestRecentUseBlocksEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a")    // a becomes most recent
	c.Set("c", 3) // evicts b, not a

	if _, found := c.Get("a"); !found {
		t.Error("recently used entry should remain")
	}
	if _, found := c.Get("b"); found {
		t.Error("least recently used entry should be gone")
	}
}

func TestPurge(t *testing.T) {
	c := NewLRUCache[int](4, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	c.Purge()
	if c.Size() != 0 {
		t.Errorf("Size = %d after Purge, want 0", c.Size())
	}
}

func TestCleanExpired(t *testing.T) {
	c := NewLRUCache[int](4, 10*time.Millisecond)
	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)

	if removed := c.CleanExpired(); removed != 2 {
		t.Errorf("CleanExpired = %d, want 2", removed)
	}
	if c.Size() != 0 {
		t.Errorf("Size = %d after cleanup, want 0", c.Size())
	}
}
