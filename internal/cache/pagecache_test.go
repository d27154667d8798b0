package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisPageCache(t *testing.T) (*RedisPageCache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := NewRedisClient(mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisPageCache(rdb), mr, rdb
}

func TestRedisPageCache_GetSet(t *testing.T) {
	ctx := context.Background()
	pc, mr, _ := newRedisPageCache(t)

	_, ok, err := pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, pc.Set(ctx, IndexPageKey(1), []byte(`{"page":1}`), 20*time.Second))
	assert.True(t, mr.Exists("page:index:1"))

	got, ok, err := pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"page":1}`, string(got))

	mr.FastForward(21 * time.Second)
	_, ok, err = pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPageCache_ClearKeepsOtherKeys(t *testing.T) {
	ctx := context.Background()
	pc, mr, _ := newRedisPageCache(t)

	for page := 1; page <= 3; page++ {
		require.NoError(t, pc.Set(ctx, IndexPageKey(page), []byte("x"), time.Minute))
	}
	require.NoError(t, mr.Set("rl:post_create:1", "2"))

	require.NoError(t, pc.Clear(ctx))

	for page := 1; page <= 3; page++ {
		_, ok, err := pc.Get(ctx, IndexPageKey(page))
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.True(t, mr.Exists("rl:post_create:1"))
}

func TestRedisPageCache_GetError(t *testing.T) {
	pc, mr, _ := newRedisPageCache(t)
	mr.Close()

	_, ok, err := pc.Get(context.Background(), IndexPageKey(1))
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestLocalPageCache(t *testing.T) {
	ctx := context.Background()
	pc, err := NewLocalPageCache(1 << 20)
	require.NoError(t, err)

	_, ok, err := pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, pc.Set(ctx, IndexPageKey(1), []byte("first page"), time.Minute))
	got, ok, err := pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first page", string(got))

	require.NoError(t, pc.Clear(ctx))
	_, ok, err = pc.Get(ctx, IndexPageKey(1))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewRedisClient(t *testing.T) {
	c, err := NewRedisClient("redis://localhost:6380/2")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", c.Options().Addr)
	assert.Equal(t, 2, c.Options().DB)

	_, err = NewRedisClient("redis://%zz")
	assert.Error(t, err)
}

func TestInitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	c := InitRedis(addr)
	require.NotNil(t, c)
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(context.Background()).Err())

	mr.Close()
	assert.Nil(t, InitRedis(addr))
}
