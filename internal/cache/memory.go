package cache

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultMemoryCacheSize = 10_000

// MemoryStore keeps keys in a bounded LRU. When the LRU is full the oldest keys
// are forgotten early, which only weakens deduplication for very old events.
type MemoryStore struct {
	mu    sync.Mutex
	cache *lru.Cache[string, time.Time]
	now   func() time.Time
}

func NewMemoryStore() (*MemoryStore, error) {
	return newMemoryStore(defaultMemoryCacheSize, time.Now)
}

func newMemoryStore(size int, now func() time.Time) (*MemoryStore, error) {
	c, err := lru.New[string, time.Time](size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: c, now: now}, nil
}

// Remember reports true the first time key is seen within ttl.
func (m *MemoryStore) Remember(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if expiresAt, ok := m.cache.Get(key); ok && now.Before(expiresAt) {
		return false, nil
	}

	m.cache.Add(key, now.Add(ttl))
	return true, nil
}

func (m *MemoryStore) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache.Remove(key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
