package summary

import "sync"

type CacheKey struct {
	Text     string
	Language string
}

// Кэш переводов. Передается переводчику явно.
type Cache interface {
	Get(key CacheKey) (string, bool)
	Set(key CacheKey, value string)
}

// Кэш в памяти без вытеснения, живет пока живет процесс
type MemoryCache struct {
	mu    sync.RWMutex
	items map[CacheKey]string
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[CacheKey]string)}
}

func (c *MemoryCache) Get(key CacheKey) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	v, ok := c.items[key]
	return v, ok
}

func (c *MemoryCache) Set(key CacheKey, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = value
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.items)
}
