package kvstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps blobs in a Redis instance. Useful when the storefront
// runs alongside a local Redis rather than writing a file.
type RedisStore struct {
	client    *redis.Client
	namespace string
}

// OpenRedis connects to Redis and verifies connectivity.
func OpenRedis(ctx context.Context, cfg config.StorageConfig, redisCfg config.RedisConfig, logg *logger.Logger) (*RedisStore, error) {
	if redisCfg.Address == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:         redisCfg.Address,
		Password:     redisCfg.Password,
		DB:           redisCfg.DB,
		DialTimeout:  redisCfg.DialTimeout,
		ReadTimeout:  redisCfg.ReadTimeout,
		WriteTimeout: redisCfg.WriteTimeout,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	if logg != nil {
		logg.Info(logg.WithField(ctx, "addr", redisCfg.Address), "redis store connected")
	}

	return &RedisStore{client: client, namespace: cfg.Namespace}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, namespacedKey(s.namespace, key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore get %q: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, namespacedKey(s.namespace, key), value, 0).Err(); err != nil {
		return fmt.Errorf("kvstore set %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, namespacedKey(s.namespace, key)).Err(); err != nil {
		return fmt.Errorf("kvstore delete %q: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
