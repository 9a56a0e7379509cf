package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Gustavo-Pacheco-Gonzaga/API-Nuvende/pkg/config"
)

// RedisTokenStore implements interfaces.TokenStore on Redis so that
// multiple processes share one provider token instead of each holding
// their own.
type RedisTokenStore struct {
	client *redis.Client
	logger zerolog.Logger
}

func NewRedisTokenStore(cfg config.RedisConfig, logger zerolog.Logger) *RedisTokenStore {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &RedisTokenStore{
		client: client,
		logger: logger.With().Str("component", "redis_token_store").Logger(),
	}
}

// Get returns the cached token, treating any Redis failure as a miss: the
// caller falls back to a fresh authentication round-trip.
func (s *RedisTokenStore) Get(ctx context.Context, key string) (string, bool) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn().Err(err).Str("key", key).Msg("Token lookup failed, treating as cache miss")
		}
		return "", false
	}

	return value, true
}

// Set stores the token with the given ttl. Failures are logged and
// otherwise ignored; losing a cache write only costs an extra
// authentication later.
func (s *RedisTokenStore) Set(ctx context.Context, key, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	if err := s.client.Set(ctx, key, token, ttl).Err(); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("Failed to cache token")
	}
}

// Close releases the underlying Redis connection.
func (s *RedisTokenStore) Close() error {
	return s.client.Close()
}
