package cache

import (
	"context"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryTokenStore implements interfaces.TokenStore using ttlcache. It is
// safe for concurrent use; there is deliberately no locking around the
// caller's read-then-set sequence, so concurrent cold-cache callers may each
// store a token and the last write wins.
type MemoryTokenStore struct {
	cache *ttlcache.Cache[string, string]
}

// NewMemoryTokenStore creates an in-memory token store with automatic
// expiry cleanup.
func NewMemoryTokenStore() *MemoryTokenStore {
	cache := ttlcache.New(
		ttlcache.WithDisableTouchOnHit[string, string](),
	)

	go cache.Start()

	return &MemoryTokenStore{cache: cache}
}

// Get implements interfaces.TokenStore.
func (s *MemoryTokenStore) Get(_ context.Context, key string) (string, bool) {
	item := s.cache.Get(key)
	if item == nil || item.IsExpired() {
		return "", false
	}

	return item.Value(), true
}

// Set implements interfaces.TokenStore.
func (s *MemoryTokenStore) Set(_ context.Context, key, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	s.cache.Set(key, token, ttl)
}

// Stop halts the background cleanup goroutine.
func (s *MemoryTokenStore) Stop() {
	s.cache.Stop()
}
