package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/monaco/tienda/internal/domain/cart"
	"github.com/redis/go-redis/v9"
)

const defaultCartKeyPrefix = "tienda:carrito:"

// RedisCartStorage keeps cart slots in Redis. Every write refreshes the
// slot TTL so active carts never expire.
type RedisCartStorage struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisCartStorage dials Redis and verifies the connection
func NewRedisCartStorage(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisCartStorage, error) {
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return NewRedisCartStorageWithClient(client, "", ttl), nil
}

// NewRedisCartStorageWithClient wraps an existing client
func NewRedisCartStorageWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisCartStorage {
	if keyPrefix == "" {
		keyPrefix = defaultCartKeyPrefix
	}
	return &RedisCartStorage{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Load implements cart.Storage. A missing key is an empty slot.
func (s *RedisCartStorage) Load(ctx context.Context, key string) ([]byte, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart slot: %w", err)
	}
	return raw, nil
}

// Save implements cart.Storage
func (s *RedisCartStorage) Save(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart slot: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisCartStorage) Close() error {
	return s.client.Close()
}

var _ cart.Storage = (*RedisCartStorage)(nil)
