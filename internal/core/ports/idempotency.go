package ports

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already processed.
type IdempotencyStore interface {
	// Remember stores key for ttl. It returns true the first time a key is seen
	// and false for every repeat within ttl.
	Remember(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Forget drops key so that the next Remember reports it as new again.
	Forget(ctx context.Context, key string) error
}
