package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute)

	c.Set("k", 42)
	v, ok := c.Get("k")
	if !ok || v.(int) != 42 {
		t.Errorf("Get(k) = %v/%v", v, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("missing key must not be found")
	}
}

func TestGetString(t *testing.T) {
	c := New(time.Minute)
	c.Set("s", "bandar utama")
	c.Set("n", 7)

	if v, ok := c.GetString("s"); !ok || v != "bandar utama" {
		t.Errorf("GetString(s) = %q/%v", v, ok)
	}
	if _, ok := c.GetString("n"); ok {
		t.Error("non-string value must not be returned by GetString")
	}
}

func TestExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("k", "v")

	if _, ok := c.Get("k"); !ok {
		t.Fatal("entry should be present before the TTL")
	}

	time.Sleep(40 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("entry should expire after the TTL")
	}
}

func TestFlush(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)

	if n := c.ItemCount(); n != 2 {
		t.Fatalf("ItemCount = %d, want 2", n)
	}
	c.Flush()
	if n := c.ItemCount(); n != 0 {
		t.Errorf("ItemCount after Flush = %d, want 0", n)
	}
}
