package session

import (
	"fmt"
	"time"
)

// Store backends selectable through Config.Store.
const (
	BackendMemory   = "memory"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// DefaultCookieName is the cookie that carries the session identifier.
const DefaultCookieName = "session"

// Config provides environment-based session configuration.
type Config struct {
	Store           string        `env:"SESSION_STORE" envDefault:"memory"`
	IDLength        int           `env:"SESSION_ID_LENGTH" envDefault:"32"`
	TTL             time.Duration `env:"SESSION_TTL" envDefault:"0"`
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
	CookieName      string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
	KeyPrefix       string        `env:"SESSION_KEY_PREFIX" envDefault:"session:"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Store:           BackendMemory,
		IDLength:        DefaultIDLength,
		CleanupInterval: 5 * time.Minute,
		CookieName:      DefaultCookieName,
		KeyPrefix:       "session:",
	}
}

// Validate checks that the configured backend is known.
func (c Config) Validate() error {
	switch c.Store {
	case BackendMemory, BackendRedis, BackendPostgres:
		return nil
	default:
		return fmt.Errorf("unknown session store %q", c.Store)
	}
}

// NewMemoryStoreFromConfig creates a MemoryStore from configuration.
// Additional options override config values.
func NewMemoryStoreFromConfig(cfg Config, opts ...MemoryStoreOption) *MemoryStore {
	configOpts := []MemoryStoreOption{
		WithIDLength(cfg.IDLength),
		WithTTL(cfg.TTL),
	}
	if cfg.CleanupInterval > 0 {
		configOpts = append(configOpts, WithCleanupInterval(cfg.CleanupInterval))
	}
	return NewMemoryStore(append(configOpts, opts...)...)
}
