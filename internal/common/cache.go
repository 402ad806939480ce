package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	*cache.Cache
}

func NewCache(expirationTime, cleanupTime time.Duration) *Cache {
	return &Cache{cache.New(expirationTime, cleanupTime)}
}

func (c *Cache) Set(key string, value interface{}, expiration ...time.Duration) {
	if len(expiration) > 0 {
		c.Cache.Set(key, value, expiration[0])
		return
	}
	c.Cache.Set(key, value, cache.DefaultExpiration)
}

func (c *Cache) Get(key string) (interface{}, bool) {
	return c.Cache.Get(key)
}

func (c *Cache) Flush() {
	c.Cache.Flush()
}

func CacheKeyThread(slug string) string {
	return "thread:" + slug
}

func CacheKeyCounters(slug string) string {
	return "counters:" + slug
}

func CacheKeyLikeStatus(slug, session string) string {
	return "like_status:" + slug + ":" + session
}

// CacheKeyPage keys the rendered page output. Counter and comment writes
// delete it so the next render picks up fresh numbers.
func CacheKeyPage(locale, slug string) string {
	return "page:" + locale + ":" + slug
}

// InvalidateSlug drops every cache entry derived from a slug's state.
// Like-status entries carry a session suffix and expire on their own.
func (c *Cache) InvalidateSlug(locale, slug string) {
	c.Delete(CacheKeyThread(slug))
	c.Delete(CacheKeyCounters(slug))
	c.Delete(CacheKeyPage(locale, slug))
}
