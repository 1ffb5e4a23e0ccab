package cache

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"
)

// memoryItem is a single stored entry
type memoryItem struct {
	value      []byte
	expiration time.Time
}

// MemoryCache implements Cache using in-process storage. It is intended for
// tests and single-instance deployments; rate limit counters kept here do not
// survive a restart.
type MemoryCache struct {
	items  map[string]*memoryItem
	mutex  sync.RWMutex
	hits   int64
	misses int64
	config *Config
	done   chan struct{}
	closed bool
}

// NewMemoryCache creates a new in-process cache
func NewMemoryCache(config *Config) *MemoryCache {
	if config == nil {
		config = DefaultConfig()
	}

	c := &MemoryCache{
		items:  make(map[string]*memoryItem),
		config: config,
		done:   make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Get retrieves a value by key
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mutex.RLock()
	item, exists := c.items[key]
	closed := c.closed
	c.mutex.RUnlock()

	if closed {
		return nil, ErrCacheClosed
	}
	if !exists || time.Now().After(item.expiration) {
		atomic.AddInt64(&c.misses, 1)
		return nil, ErrKeyNotFound
	}

	atomic.AddInt64(&c.hits, 1)
	result := make([]byte, len(item.value))
	copy(result, item.value)
	return result, nil
}

// Set stores a value with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return ErrCacheClosed
	}
	if ttl <= 0 {
		ttl = c.config.TTL
	}

	valueCopy := make([]byte, len(value))
	copy(valueCopy, value)

	c.items[key] = &memoryItem{
		value:      valueCopy,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a value by key
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.items, key)
	return nil
}

// Exists checks if a key exists and has not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.items[key]
	if !exists || time.Now().After(item.expiration) {
		return false, nil
	}
	return true, nil
}

// Increment atomically increments a numeric value
func (c *MemoryCache) Increment(ctx context.Context, key string, delta int64) (int64, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return 0, ErrCacheClosed
	}

	var current int64
	if item, exists := c.items[key]; exists && !time.Now().After(item.expiration) {
		if parsed, err := strconv.ParseInt(string(item.value), 10, 64); err == nil {
			current = parsed
		}
	}

	next := current + delta
	c.items[key] = &memoryItem{
		value:      []byte(strconv.FormatInt(next, 10)),
		expiration: time.Now().Add(c.config.TTL),
	}
	return next, nil
}

// Close stops the janitor and clears all entries
func (c *MemoryCache) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.closed {
		return nil
	}

	close(c.done)
	c.items = make(map[string]*memoryItem)
	c.closed = true
	return nil
}

// Stats returns store statistics
func (c *MemoryCache) Stats() Stats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	now := time.Now()
	var active int64
	for _, item := range c.items {
		if !now.After(item.expiration) {
			active++
		}
	}

	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Keys:   active,
	}
}

// janitor periodically removes expired entries
func (c *MemoryCache) janitor() {
	ticker := time.NewTicker(c.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

// removeExpired sweeps entries past their expiration
func (c *MemoryCache) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiration) {
			delete(c.items, key)
		}
	}
}
