package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultExpiration = time.Hour

type CacheEntry struct {
	Value      interface{}
	Expiration time.Time
}

// Cache keeps values until their entry expires. Concurrent misses on the
// same key share a single call of the create function.
type Cache struct {
	data      sync.Map
	group     singleflight.Group
	itemCount int32
}

// GetOrCreate returns the live value stored under key or stores the one
// createFn builds. createFn may move entry.Expiration, which defaults to
// an hour from now.
func (c *Cache) GetOrCreate(key string, createFn func(entry *CacheEntry) (interface{}, error)) (interface{}, error) {
	if value, ok := c.data.Load(key); ok {
		cacheEntry := value.(CacheEntry)
		if cacheEntry.Expiration.After(time.Now()) {
			return cacheEntry.Value, nil
		} else {
			c.CleanUp()
		}
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.data.Load(key); ok {
			cacheEntry := value.(CacheEntry)
			if cacheEntry.Expiration.After(time.Now()) {
				return cacheEntry.Value, nil
			}
		}

		entry := &CacheEntry{
			Expiration: time.Now().Add(defaultExpiration),
		}

		v, err := createFn(entry)
		if err != nil {
			return nil, err
		}

		entry.Value = v
		if _, loaded := c.data.Swap(key, *entry); !loaded {
			atomic.AddInt32(&c.itemCount, 1)
		}
		return v, nil
	})

	return value, err
}

func (c *Cache) Delete(key string) {
	if _, loaded := c.data.LoadAndDelete(key); loaded {
		atomic.AddInt32(&c.itemCount, -1)
	}
}

func (c *Cache) Len() int {
	return int(atomic.LoadInt32(&c.itemCount))
}

func (c *Cache) CleanUp() {
	if atomic.LoadInt32(&c.itemCount) == 0 {
		return
	}

	c.data.Range(func(key, value interface{}) bool {
		entry := value.(CacheEntry)
		if !entry.Expiration.After(time.Now()) {
			if _, loaded := c.data.LoadAndDelete(key); loaded {
				atomic.AddInt32(&c.itemCount, -1)
			}
		}
		return true
	})
}
