// Package cache remembers keys for a while. The service uses it to drop gateway
// callbacks it has already applied.
package cache

import (
	"fmt"
	"io"

	"mekina/internal/core/ports"
)

// Store is an idempotency store that must be closed on shutdown.
type Store interface {
	ports.IdempotencyStore
	io.Closer
}

type Config struct {
	Provider string
	RedisURL string
}

// NewStore picks the backing store. "memory" (the default) is per process; use
// "redis" when more than one instance receives callbacks.
func NewStore(cfg Config) (Store, error) {
	switch cfg.Provider {
	case "memory", "":
		return NewMemoryStore()
	case "redis":
		return NewRedisStore(cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unsupported cache provider: %s", cfg.Provider)
	}
}
