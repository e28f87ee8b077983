// Package cache implementa el caché de respuestas sobre Redis.
package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/danilalessandra/Petstock-Backend/internal/application/reportes"
	"github.com/danilalessandra/Petstock-Backend/pkg/config"
	"github.com/danilalessandra/Petstock-Backend/pkg/logger"
)

var _ reportes.Cache = (*RedisCache)(nil)

// RedisCache implementa reportes.Cache sobre un cliente Redis.
// Un fallo de Redis nunca es fatal: se loguea y se responde como cache miss.
type RedisCache struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedisCache conecta con Redis y verifica la conexión con un ping.
func NewRedisCache(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{client: client, log: log}, nil
}

// Get devuelve el valor cacheado y si existía.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: get")
		return nil, false
	}
	return raw, true
}

// Set guarda el valor con el TTL indicado.
func (c *RedisCache) Set(ctx context.Context, key string, val []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("cache: set")
	}
}

// Close cierra la conexión con Redis.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
