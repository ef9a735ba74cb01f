package utils

import (
	"os"
	"sync"
	"time"
)

// CacheItem represents a cached item with the stamp of the file it depends on
type CacheItem[T any] struct {
	Value   T
	ModTime time.Time
	Size    int64
	Stamped bool
}

// Cache provides a generic, thread-safe cache with optional file-based invalidation
type Cache[K comparable, V any] struct {
	items  map[K]*CacheItem[V]
	mutex  sync.RWMutex
	hits   int
	misses int
}

// NewCache creates a new generic cache
func NewCache[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		items: make(map[K]*CacheItem[V]),
	}
}

// GetFresh retrieves an item stored with SetStamped. The item is dropped when
// the file it was stamped with changed size or modification time since.
func (c *Cache[K, V]) GetFresh(key K, filePath string) (V, bool) {
	var zero V

	c.mutex.Lock()
	defer c.mutex.Unlock()

	item, exists := c.items[key]
	if !exists {
		c.misses++
		return zero, false
	}

	if item.Stamped {
		stat, err := os.Stat(filePath)
		if err != nil || !stat.ModTime().Equal(item.ModTime) || stat.Size() != item.Size {
			delete(c.items, key)
			c.misses++
			return zero, false
		}
	}

	c.hits++
	return item.Value, true
}

// Set stores an item in the cache
func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{Value: value}
}

// SetStamped stores an item together with the current stamp of filePath
func (c *Cache[K, V]) SetStamped(key K, value V, filePath string) error {
	stat, err := os.Stat(filePath)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.items[key] = &CacheItem[V]{
		Value:   value,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Stamped: true,
	}
	return nil
}

// GetStats returns cache statistics
func (c *Cache[K, V]) GetStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return CacheStats{
		Size:   len(c.items),
		Hits:   c.hits,
		Misses: c.misses,
	}
}

// CacheStats provides cache statistics
type CacheStats struct {
	Size   int
	Hits   int
	Misses int
}
