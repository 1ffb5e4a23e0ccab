package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `json:"server"`
	Database   DatabaseConfig   `json:"database"`
	Cache      CacheConfig      `json:"cache"`
	RateLimits RateLimitsConfig `json:"rateLimits"`
	Views      ViewsConfig      `json:"views"`
	App        AppConfig        `json:"app"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	BaseRoute string `json:"baseRoute"`
	Debug     bool   `json:"debug"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Postgres PostgreSQLConfig `json:"postgres"`
}

// PostgreSQLConfig holds PostgreSQL-specific configuration
type PostgreSQLConfig struct {
	Host            string        `json:"host"`
	Port            int           `json:"port"`
	Username        string        `json:"username"`
	Password        string        `json:"password"`
	Database        string        `json:"database"`
	SSLMode         string        `json:"sslMode"`
	MaxOpenConns    int           `json:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime"`
	ConnectTimeout  int           `json:"connectTimeout"`
}

// CacheConfig holds durable counter store configuration
type CacheConfig struct {
	// Backend selects the cache implementation (memory, redis)
	Backend string        `json:"backend"`
	TTL     time.Duration `json:"ttl"`
	Redis   RedisConfig   `json:"redis"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address      string `json:"address"`
	Password     string `json:"password"`
	Database     int    `json:"database"`
	PoolSize     int    `json:"poolSize"`
	MinIdleConns int    `json:"minIdleConns"`
}

// RateLimitsConfig holds the ceilings for sensitive endpoints. The password
// reset flow carries two simultaneous ceilings: a coarser per-IP limit and a
// tighter per-email limit.
type RateLimitsConfig struct {
	PasswordResetIPMax       int           `json:"passwordResetIpMax"`
	PasswordResetIPWindow    time.Duration `json:"passwordResetIpWindow"`
	PasswordResetEmailMax    int           `json:"passwordResetEmailMax"`
	PasswordResetEmailWindow time.Duration `json:"passwordResetEmailWindow"`
}

// ViewsConfig holds view-dedup configuration
type ViewsConfig struct {
	DedupTTL time.Duration `json:"dedupTtl"`
}

// AppConfig holds application-related configuration
type AppConfig struct {
	Name      string `json:"name"`
	WebDomain string `json:"webDomain"`
}

// LoadFromEnv loads configuration from environment variables, reading an
// optional .env file first
func LoadFromEnv() (*Config, error) {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:      getEnv("SERVER_HOST", "0.0.0.0"),
			Port:      getEnvInt("SERVER_PORT", 8080),
			BaseRoute: getEnv("SERVER_BASE_ROUTE", "/api"),
			Debug:     getEnvBool("SERVER_DEBUG", false),
		},
		Database: DatabaseConfig{
			Postgres: PostgreSQLConfig{
				Host:            getEnv("POSTGRES_HOST", "localhost"),
				Port:            getEnvInt("POSTGRES_PORT", 5432),
				Username:        getEnv("POSTGRES_USER", "beta"),
				Password:        getEnv("POSTGRES_PASSWORD", ""),
				Database:        getEnv("POSTGRES_DB", "beta"),
				SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
				MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
				MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
				ConnMaxLifetime: getEnvDuration("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
				ConnectTimeout:  getEnvInt("POSTGRES_CONNECT_TIMEOUT", 10),
			},
		},
		Cache: CacheConfig{
			Backend: getEnv("CACHE_BACKEND", "redis"),
			TTL:     getEnvDuration("CACHE_TTL", time.Hour),
			Redis: RedisConfig{
				Address:      getEnv("REDIS_ADDRESS", "localhost:6379"),
				Password:     getEnv("REDIS_PASSWORD", ""),
				Database:     getEnvInt("REDIS_DATABASE", 0),
				PoolSize:     getEnvInt("REDIS_POOL_SIZE", 10),
				MinIdleConns: getEnvInt("REDIS_MIN_IDLE_CONNS", 2),
			},
		},
		RateLimits: RateLimitsConfig{
			PasswordResetIPMax:       getEnvInt("RATE_LIMIT_PWD_RESET_IP_MAX", 5),
			PasswordResetIPWindow:    getEnvDuration("RATE_LIMIT_PWD_RESET_IP_WINDOW", time.Hour),
			PasswordResetEmailMax:    getEnvInt("RATE_LIMIT_PWD_RESET_EMAIL_MAX", 3),
			PasswordResetEmailWindow: getEnvDuration("RATE_LIMIT_PWD_RESET_EMAIL_WINDOW", time.Hour),
		},
		Views: ViewsConfig{
			DedupTTL: getEnvDuration("VIEW_DEDUP_TTL", 24*time.Hour),
		},
		App: AppConfig{
			Name:      getEnv("APP_NAME", "beta-api"),
			WebDomain: getEnv("APP_WEB_DOMAIN", "http://localhost:3000"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.RateLimits.PasswordResetIPMax <= 0 || c.RateLimits.PasswordResetEmailMax <= 0 {
		return fmt.Errorf("rate limit ceilings must be positive")
	}
	if c.Views.DedupTTL <= 0 {
		return fmt.Errorf("view dedup TTL must be positive")
	}
	return nil
}

// getEnv retrieves a string environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback
func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvBool retrieves a boolean environment variable with a fallback
func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvDuration retrieves a duration environment variable with a fallback
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
