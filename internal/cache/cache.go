package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a small TTL cache wrapper used for search responses and
// abbreviation expansions. Entries are best-effort; staleness within
// the TTL is acceptable.
type Cache struct {
	store *gocache.Cache
	ttl   time.Duration
}

// New creates a cache with the given default TTL. Expired entries are
// pruned opportunistically at twice the TTL.
func New(ttl time.Duration) *Cache {
	return &Cache{
		store: gocache.New(ttl, 2*ttl),
		ttl:   ttl,
	}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a value under key with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// GetString returns a cached string value.
func (c *Cache) GetString(key string) (string, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Flush drops all entries. Used in tests.
func (c *Cache) Flush() {
	c.store.Flush()
}

// ItemCount returns the number of entries, including not-yet-pruned expired ones.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
