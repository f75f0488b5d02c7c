package cache

import (
	"testing"
	"time"
)

func TestKeyStable(t *testing.T) {
	a := Key("https://example.com/east/ny.html")
	b := Key("https://example.com/east/ny.html")
	if a != b {
		t.Errorf("same URL must produce the same key: %q vs %q", a, b)
	}
	if a == Key("https://example.com/east/nj.html") {
		t.Error("different URLs must not collide")
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	key := Key("https://example.com/a")

	if _, found := c.Get(key); found {
		t.Fatal("unexpected hit on empty cache")
	}
	if err := c.Set(key, []byte("<html>page</html>"), time.Minute); err != nil {
		t.Fatal(err)
	}
	val, found := c.Get(key)
	if !found || string(val) != "<html>page</html>" {
		t.Errorf("got %q found=%v", val, found)
	}

	c.Delete(key)
	if _, found := c.Get(key); found {
		t.Error("hit after delete")
	}
}

func TestDiskCacheExpiry(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Minute)
	key := Key("https://example.com/b")

	if err := c.Set(key, []byte("body"), -time.Second); err != nil {
		t.Fatal(err)
	}
	if _, found := c.Get(key); found {
		t.Error("expired entry must miss")
	}
}

func TestDiskCachePersists(t *testing.T) {
	dir := t.TempDir()
	key := Key("https://example.com/c")

	c1 := NewDiskCache(dir, time.Hour)
	if err := c1.Set(key, []byte("persisted"), 0); err != nil {
		t.Fatal(err)
	}

	// A fresh instance over the same directory sees the entry.
	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get(key)
	if !found || string(val) != "persisted" {
		t.Errorf("got %q found=%v", val, found)
	}
}

func TestLayeredCachePromotion(t *testing.T) {
	dir := t.TempDir()
	key := Key("https://example.com/d")

	seed := NewDiskCache(dir, time.Hour)
	if err := seed.Set(key, []byte("from-disk"), 0); err != nil {
		t.Fatal(err)
	}

	layered := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := layered.Get(key)
	if !found || string(val) != "from-disk" {
		t.Fatalf("disk layer miss: %q found=%v", val, found)
	}

	// After promotion a memory hit works even if the disk copy is gone.
	seed.Delete(key)
	val, found = layered.Get(key)
	if !found || string(val) != "from-disk" {
		t.Errorf("promoted entry missing: %q found=%v", val, found)
	}
}
