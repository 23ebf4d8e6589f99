package tenancy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/geocoder89/eventclone/internal/cache"
	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewRedisClient(cfg RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
}

// StringGetter is the part of the redis client the store needs.
type StringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisStore looks tenant connection strings up under "<prefix><tenantKey>" and
// memoizes hits. Misses fall through to next.
type RedisStore struct {
	rdb    StringGetter
	prefix string
	memo   *cache.Cache[string]
	next   ConnStringStore
}

func NewRedisStore(rdb StringGetter, prefix string, ttl time.Duration, next ConnStringStore) *RedisStore {
	if prefix == "" {
		prefix = "tenant:dsn:"
	}
	return &RedisStore{
		rdb:    rdb,
		prefix: prefix,
		memo:   cache.New[string](ttl),
		next:   next,
	}
}

func (s *RedisStore) ConnString(ctx context.Context, tenantKey string) (string, error) {
	if v, ok := s.memo.Get(tenantKey); ok {
		return v, nil
	}

	dsn, err := s.rdb.Get(ctx, s.prefix+tenantKey).Result()
	switch {
	case err == nil && dsn != "":
		s.memo.Set(tenantKey, dsn)
		return dsn, nil
	case err != nil && !errors.Is(err, redis.Nil):
		return "", fmt.Errorf("lookup tenant %q: %w", tenantKey, err)
	}

	if s.next != nil {
		return s.next.ConnString(ctx, tenantKey)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTenant, tenantKey)
}

// Forget drops a memoized connection string, e.g. after a tenant database moved.
func (s *RedisStore) Forget(tenantKey string) {
	s.memo.Delete(tenantKey)
}
