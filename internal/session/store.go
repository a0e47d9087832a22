package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/showboard/showboard/pkg/config"
	"github.com/showboard/showboard/pkg/logging"
)

// Store holds server-side sessions keyed by an opaque token.
type Store interface {
	// Set binds a token to a username for ttl.
	Set(ctx context.Context, token, username string, ttl time.Duration) error
	// Get returns the username bound to a token, or "" when the token is
	// unknown or expired.
	Get(ctx context.Context, token string) (string, error)
	// Delete removes a single session. Unknown tokens are not an error.
	Delete(ctx context.Context, token string) error
	// Clear removes every session server-wide.
	Clear(ctx context.Context) error
	// Close releases any backing resources.
	Close() error
}

const keyPrefix = "showboard:session:"

// RedisStore keeps sessions in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store
func NewRedisStore(cfg *config.RedisConfig) (*RedisStore, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logging.GetLogger().Info("Redis connection established")

	return &RedisStore{client: client}, nil
}

// Set binds a token to a username for ttl
func (s *RedisStore) Set(ctx context.Context, token, username string, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+token, username, ttl).Err()
}

// Get returns the username bound to a token, or "" when absent
func (s *RedisStore) Get(ctx context.Context, token string) (string, error) {
	val, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete removes a single session
func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, keyPrefix+token).Err()
}

// Clear removes every session server-wide
func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Health checks Redis health
func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
