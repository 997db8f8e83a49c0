package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Minute)

	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("expected (1, true), got (%d, %v)", got, ok)
	}
}

func TestExpiry(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry removed on read, len=%d", c.Len())
	}
}

func TestZeroTTLNeverExpires(t *testing.T) {
	c := NewTTLCache[string, struct{}]()
	c.Set("key", struct{}{}, 0)
	time.Sleep(time.Millisecond)

	if _, ok := c.Get("key"); !ok {
		t.Fatal("expected zero-TTL entry to persist")
	}
}

func TestLenAndClear(t *testing.T) {
	c := NewTTLCache[string, int]()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Clear, got %d", c.Len())
	}
}
