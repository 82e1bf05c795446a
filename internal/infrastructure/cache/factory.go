package cache

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/monaco/tienda/internal/domain/cart"
	"github.com/monaco/tienda/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CartStorage is a slot store the server must close on shutdown
type CartStorage interface {
	cart.Storage
	io.Closer
}

// CartStorageFactory picks Redis or process memory for cart slots
type CartStorageFactory struct {
	redis         config.RedisConfig
	ttl           time.Duration
	logger        *zap.Logger
	allowFallback bool
}

// CartStorageFactoryOption configures the factory
type CartStorageFactoryOption func(*CartStorageFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) CartStorageFactoryOption {
	return func(f *CartStorageFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable Redis degrades to
// memory instead of failing. Default true.
func WithInMemoryFallback(allow bool) CartStorageFactoryOption {
	return func(f *CartStorageFactory) {
		f.allowFallback = allow
	}
}

// NewCartStorageFactory creates a new factory
func NewCartStorageFactory(redisCfg config.RedisConfig, ttl time.Duration, opts ...CartStorageFactoryOption) *CartStorageFactory {
	f := &CartStorageFactory{
		redis:         redisCfg,
		ttl:           ttl,
		logger:        zap.NewNop(),
		allowFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns Redis storage when a host is configured and reachable,
// memory storage otherwise
func (f *CartStorageFactory) Create(ctx context.Context) (CartStorage, error) {
	if !f.redis.Enabled() {
		f.logger.Info("Redis not configured, keeping carts in memory")
		return f.memory(), nil
	}

	store, err := NewRedisCartStorage(ctx, &redis.Options{
		Addr:     f.redis.Addr(),
		Password: f.redis.Password,
		DB:       f.redis.DB,
	}, f.ttl)
	if err == nil {
		f.logger.Info("Using Redis cart storage", zap.String("addr", f.redis.Addr()))
		return store, nil
	}

	if !f.allowFallback {
		return nil, fmt.Errorf("redis cart storage unavailable: %w", err)
	}
	f.logger.Warn("Redis unavailable, keeping carts in memory; carts are lost on restart",
		zap.Error(err),
	)
	return f.memory(), nil
}

func (f *CartStorageFactory) memory() *InMemoryCartStorage {
	return NewInMemoryCartStorage(f.ttl, 5*time.Minute)
}
