package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryCache 测试内存缓存的基本功能
func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	config := Config{
		Type:            "memory",
		Namespace:       EvaluationPrefix,
		DefaultTTL:      time.Second * 2,
		CleanupInterval: time.Second,
	}
	cache, err := NewMemoryCache(config)
	require.NoError(t, err)
	defer cache.Close()

	// 测试Set和Get
	key := EvaluationKey("some text", "seo")
	err = cache.Set(ctx, key, `{"keyword":"seo"}`, 0) // 使用默认TTL
	assert.NoError(t, err)

	val, found, err := cache.Get(ctx, key)
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"keyword":"seo"}`, val)

	// 测试不存在的键
	val, found, err = cache.Get(ctx, "seo:non-existent")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试过期
	err = cache.Set(ctx, "seo:expire-soon", "temp-value", time.Millisecond*200)
	assert.NoError(t, err)
	time.Sleep(time.Millisecond * 400)

	_, found, err = cache.Get(ctx, "seo:expire-soon")
	assert.NoError(t, err)
	assert.False(t, found)

	// 测试删除
	require.NoError(t, cache.Set(ctx, "seo:to-delete", "delete-me", 0))
	require.NoError(t, cache.Delete(ctx, "seo:to-delete"))
	_, found, err = cache.Get(ctx, "seo:to-delete")
	assert.NoError(t, err)
	assert.False(t, found)

	// 清空只影响命名空间内的键
	require.NoError(t, cache.Set(ctx, "seo:key2", "value2", 0))
	require.NoError(t, cache.Set(ctx, "other:key", "kept", 0))
	require.NoError(t, cache.Clear(ctx))

	_, found, _ = cache.Get(ctx, "seo:key2")
	assert.False(t, found)
	val, found, _ = cache.Get(ctx, "other:key")
	assert.True(t, found)
	assert.Equal(t, "kept", val)
	assert.Equal(t, 1, cache.(*MemoryCache).Len())
}

// TestRedisCache 使用miniredis测试Redis缓存
func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(Config{
		Type:       "redis",
		Namespace:  EvaluationPrefix,
		RedisAddr:  mr.Addr(),
		DefaultTTL: time.Minute,
	})
	require.NoError(t, err)
	defer cache.Close()

	// 测试Set和Get
	require.NoError(t, cache.Set(ctx, "seo:redis-key1", "redis-value1", 0))
	val, found, err := cache.Get(ctx, "seo:redis-key1")
	assert.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "redis-value1", val)

	// 默认TTL生效
	assert.Equal(t, time.Minute, mr.TTL("seo:redis-key1"))

	// 测试不存在的键
	val, found, err = cache.Get(ctx, "seo:redis-non-existent")
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	// 测试过期
	require.NoError(t, cache.Set(ctx, "seo:redis-expire-soon", "temp", time.Second))
	mr.FastForward(2 * time.Second)
	_, found, err = cache.Get(ctx, "seo:redis-expire-soon")
	assert.NoError(t, err)
	assert.False(t, found)

	// 测试删除
	require.NoError(t, cache.Set(ctx, "seo:redis-to-delete", "x", 0))
	require.NoError(t, cache.Delete(ctx, "seo:redis-to-delete"))
	assert.False(t, mr.Exists("seo:redis-to-delete"))

	// 清空只删除命名空间内的键
	for i := 0; i < scanBatch+5; i++ {
		require.NoError(t, cache.Set(ctx, GenerateCacheKey(EvaluationPrefix, fmt.Sprintf("bulk-%d", i)), "v", 0))
	}
	require.NoError(t, mr.Set("other:key", "kept"))
	require.NoError(t, cache.Clear(ctx))

	assert.Equal(t, []string{"other:key"}, mr.Keys())
}

// TestRedisCacheClearManyBatches 键数跨越多个扫描批次时全部被删除
func TestRedisCacheClearManyBatches(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	cache, err := NewRedisCache(Config{
		Type:      "redis",
		Namespace: EvaluationPrefix,
		RedisAddr: mr.Addr(),
	})
	require.NoError(t, err)
	defer cache.Close()

	total := 3*scanBatch + 7
	for i := 0; i < total; i++ {
		require.NoError(t, mr.Set(GenerateCacheKey(EvaluationPrefix, fmt.Sprintf("k-%d", i)), "v"))
	}
	require.NoError(t, mr.Set("other:a", "kept"))
	require.NoError(t, mr.Set("other:b", "kept"))
	require.Len(t, mr.Keys(), total+2)

	require.NoError(t, cache.Clear(ctx))
	assert.Equal(t, []string{"other:a", "other:b"}, mr.Keys())

	// 空命名空间再次清空不报错
	require.NoError(t, cache.Clear(ctx))
	assert.Len(t, mr.Keys(), 2)
}

// TestRedisCacheUnavailable 连接失败时返回错误
func TestRedisCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(Config{Type: "redis", RedisAddr: addr})
	assert.Error(t, err)
}

// TestCacheFactory 测试缓存工厂函数
func TestCacheFactory(t *testing.T) {
	memCache, err := NewCache(DefaultConfig())
	assert.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, memCache)

	// Type为空时使用内存缓存
	emptyCache, err := NewCache(Config{})
	assert.NoError(t, err)
	assert.IsType(t, &MemoryCache{}, emptyCache)

	mr := miniredis.RunT(t)
	redisCache, err := NewCache(Config{Type: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisCache{}, redisCache)
	require.NoError(t, redisCache.Close())

	// 未知缓存类型返回错误
	_, err = NewCache(Config{Type: "unknown-type"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

// TestGenerateCacheKey 测试缓存键生成
func TestGenerateCacheKey(t *testing.T) {
	assert.Equal(t, "prefix", GenerateCacheKey("prefix"))
	assert.Equal(t, "prefix:part1", GenerateCacheKey("prefix", "part1"))
	assert.Equal(t, "prefix:part1:part2:part3", GenerateCacheKey("prefix", "part1", "part2", "part3"))
}

// TestEvaluationKey 相同输入得到相同的键，关键词和正文的边界不会混淆
func TestEvaluationKey(t *testing.T) {
	a := EvaluationKey("text", "seo")
	assert.Equal(t, a, EvaluationKey("text", "seo"))
	assert.NotEqual(t, a, EvaluationKey("text", "SEO"))
	assert.NotEqual(t, EvaluationKey("bc", "a"), EvaluationKey("c", "ab"))
	assert.Regexp(t, `^seo:[0-9a-f]{64}$`, a)
}
