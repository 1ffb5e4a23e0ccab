package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is the TTL'd key-value store backing the abuse-window subsystem.
// Entries expire on their own; callers never sweep.
type Cache interface {
	// Get retrieves a value by key
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value by key
	Delete(ctx context.Context, key string) error

	// Exists checks if a key exists and has not expired
	Exists(ctx context.Context, key string) (bool, error)

	// Increment atomically increments a numeric value
	Increment(ctx context.Context, key string, delta int64) (int64, error)

	// Close closes the store connection
	Close() error

	// Stats returns store statistics
	Stats() Stats
}

// Config holds configuration for cache instances
type Config struct {
	// Backend specifies the store backend (memory, redis)
	Backend BackendType `json:"backend"`

	// TTL is the default time-to-live for entries written without one
	TTL time.Duration `json:"ttl"`

	// CleanupInterval for expired item cleanup (memory backend only)
	CleanupInterval time.Duration `json:"cleanupInterval"`

	// Redis configuration
	Redis RedisOptions `json:"redis"`
}

// RedisOptions holds Redis-specific configuration
type RedisOptions struct {
	Address      string `json:"address"`
	Password     string `json:"password"`
	Database     int    `json:"database"`
	PoolSize     int    `json:"poolSize"`
	MinIdleConns int    `json:"minIdleConns"`
}

// Stats provides store statistics
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Keys   int64 `json:"keys"`
}

// Common cache errors
var (
	// ErrKeyNotFound is returned when a key is not found
	ErrKeyNotFound = errors.New("key not found")

	// ErrCacheUnavailable is returned when the backend is unavailable
	ErrCacheUnavailable = errors.New("cache unavailable")

	// ErrCacheClosed is returned when the store has been closed
	ErrCacheClosed = errors.New("cache closed")

	// ErrInvalidBackend is returned when the backend type is unknown
	ErrInvalidBackend = errors.New("invalid cache backend")
)

// DefaultConfig returns default cache configuration
func DefaultConfig() *Config {
	return &Config{
		Backend:         BackendMemory,
		TTL:             time.Hour,
		CleanupInterval: 5 * time.Minute,
		Redis: RedisOptions{
			Address:      "localhost:6379",
			Database:     0,
			PoolSize:     10,
			MinIdleConns: 2,
		},
	}
}

// BackendType represents the store backend
type BackendType string

const (
	// BackendMemory is the in-process backend
	BackendMemory BackendType = "memory"

	// BackendRedis is the Redis backend
	BackendRedis BackendType = "redis"
)

// IsValid checks if the backend type is known
func (bt BackendType) IsValid() bool {
	switch bt {
	case BackendMemory, BackendRedis:
		return true
	default:
		return false
	}
}
