package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"scribe/internal/observability"

	"github.com/dgraph-io/ristretto"
	gocache "github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettostore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/redis/go-redis/v9"
)

// PageCache stores rendered pages by key for a bounded time.
type PageCache interface {
	// Get returns the cached bytes and true on a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Clear drops every entry.
	Clear(ctx context.Context) error
}

func recordLookup(cacheName, result string) {
	observability.PageCacheRequests.WithLabelValues(cacheName, result).Inc()
}

// RedisPageCache keeps pages in Redis under PagePrefix.
type RedisPageCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisPageCache returns a PageCache backed by rdb.
func NewRedisPageCache(rdb *redis.Client) *RedisPageCache {
	return &RedisPageCache{rdb: rdb, prefix: PagePrefix}
}

func (c *RedisPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		recordLookup("redis", "miss")
		return nil, false, nil
	}
	if err != nil {
		recordLookup("redis", "error")
		return nil, false, fmt.Errorf("page cache get %q: %w", key, err)
	}
	recordLookup("redis", "hit")
	return val, true, nil
}

func (c *RedisPageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("page cache set %q: %w", key, err)
	}
	return nil
}

// Clear removes every key under the page prefix, leaving other Redis data alone.
func (c *RedisPageCache) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, c.prefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("page cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("page cache clear: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// LocalPageCache keeps pages in process memory.
type LocalPageCache struct {
	rc      *ristretto.Cache
	manager *gocache.Cache[[]byte]
}

// NewLocalPageCache builds an in-process cache holding up to maxBytes of pages.
func NewLocalPageCache(maxBytes int64) (*LocalPageCache, error) {
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}
	rc, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     maxBytes,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create local page cache: %w", err)
	}
	return &LocalPageCache{
		rc:      rc,
		manager: gocache.New[[]byte](ristrettostore.NewRistretto(rc)),
	}, nil
}

// Get treats every store error as a miss; the ristretto store reports misses as errors.
func (c *LocalPageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := c.manager.Get(ctx, key)
	if err != nil || val == nil {
		recordLookup("local", "miss")
		return nil, false, nil
	}
	recordLookup("local", "hit")
	return val, true, nil
}

func (c *LocalPageCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.manager.Set(ctx, key, value,
		store.WithExpiration(ttl),
		store.WithCost(int64(len(value))),
	); err != nil {
		return fmt.Errorf("page cache set %q: %w", key, err)
	}
	// Ristretto applies writes asynchronously.
	c.rc.Wait()
	return nil
}

func (c *LocalPageCache) Clear(ctx context.Context) error {
	return c.manager.Clear(ctx)
}
