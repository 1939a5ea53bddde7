package kvstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvaldesoto/storefront-backend/pkg/config"
	"github.com/mvaldesoto/storefront-backend/pkg/logger"
)

// Store is the device-local persistence boundary: named string blobs under a
// namespace. Callers own serialization; the store never inspects values.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New selects a backend from configuration.
func New(ctx context.Context, cfg config.StorageConfig, redisCfg config.RedisConfig, logg *logger.Logger) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Backend)) {
	case config.StorageBackendSQLite:
		return OpenSQLite(ctx, cfg, logg)
	case config.StorageBackendRedis:
		return OpenRedis(ctx, cfg, redisCfg, logg)
	case config.StorageBackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

func namespacedKey(namespace, key string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return key
	}
	return namespace + ":" + key
}
