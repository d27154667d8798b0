package bootstrap

import (
	"testing"

	"scribe/internal/cache"
	"scribe/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPageCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	tests := []struct {
		name    string
		backend string
		client  *redis.Client
		isRedis bool
	}{
		{name: "redis available", backend: "redis", client: rdb, isRedis: true},
		{name: "redis missing", backend: "redis", client: nil},
		{name: "memory forced", backend: "memory", client: rdb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pages, err := NewPageCache(&config.Config{CacheBackend: tt.backend}, tt.client)
			require.NoError(t, err)

			_, isRedis := pages.(*cache.RedisPageCache)
			assert.Equal(t, tt.isRedis, isRedis)
		})
	}
}
