package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()

	_, ok := store.Get(ctx, "nuvende_token")
	assert.False(t, ok, "empty store should miss")

	store.Set(ctx, "nuvende_token", "tok-A", time.Minute)

	token, ok := store.Get(ctx, "nuvende_token")
	assert.True(t, ok)
	assert.Equal(t, "tok-A", token)
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()
	store.Set(ctx, "nuvende_token", "tok-A", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := store.Get(ctx, "nuvende_token")
	assert.False(t, ok, "expired token should miss")
}

func TestMemoryTokenStoreOverwrite(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()
	store.Set(ctx, "nuvende_token", "tok-A", time.Minute)
	store.Set(ctx, "nuvende_token", "tok-B", time.Minute)

	token, ok := store.Get(ctx, "nuvende_token")
	assert.True(t, ok)
	assert.Equal(t, "tok-B", token, "last writer wins")
}

func TestMemoryTokenStoreIgnoresNonPositiveTTL(t *testing.T) {
	store := NewMemoryTokenStore()
	defer store.Stop()

	ctx := context.Background()
	store.Set(ctx, "nuvende_token", "tok-A", 0)

	_, ok := store.Get(ctx, "nuvende_token")
	assert.False(t, ok)
}
