package cache

import (
	"fmt"
)

// NewCache creates a cache instance based on the provided configuration
func NewCache(config *Config) (Cache, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Backend {
	case BackendMemory:
		return NewMemoryCache(config), nil
	case BackendRedis:
		return NewRedisCache(config)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidBackend, config.Backend)
	}
}

// MustNewCache creates a cache or panics if configuration is invalid
func MustNewCache(config *Config) Cache {
	c, err := NewCache(config)
	if err != nil {
		panic(fmt.Sprintf("failed to create cache: %v", err))
	}
	return c
}
