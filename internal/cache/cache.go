package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownType 未注册的缓存类型
var ErrUnknownType = errors.New("unknown cache type")

// Cache 评估结果缓存接口
// 值为序列化后的评估报告，键由EvaluationKey生成
type Cache interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Clear 只清除Namespace下的键
	Clear(ctx context.Context) error
	Close() error
}

// Factory 缓存工厂函数类型
type Factory func(config Config) (Cache, error)

// 注册的缓存实现
var registry = make(map[string]Factory)

// RegisterCache 注册缓存实现
func RegisterCache(name string, factory Factory) {
	registry[name] = factory
}

// NewCache 创建缓存实例
// Type为空时使用内存缓存，未注册的类型返回ErrUnknownType
func NewCache(config Config) (Cache, error) {
	if config.Type == "" {
		config.Type = "memory"
	}
	factory, ok := registry[config.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, config.Type)
	}
	return factory(config)
}

// Config 缓存配置
type Config struct {
	// 缓存类型: "memory", "redis"
	Type string
	// 键前缀，Clear只作用于该前缀下的键
	Namespace string
	// Redis连接地址 (仅Redis缓存使用)
	RedisAddr string
	// Redis密码 (仅Redis缓存使用)
	RedisPassword string
	// Redis数据库编号 (仅Redis缓存使用)
	RedisDB int
	// 默认缓存过期时间
	DefaultTTL time.Duration
	// 自动清理间隔时间 (仅内存缓存使用)
	CleanupInterval time.Duration
}

// DefaultConfig 返回默认缓存配置
func DefaultConfig() Config {
	return Config{
		Type:            "memory",
		Namespace:       EvaluationPrefix,
		DefaultTTL:      time.Hour,
		CleanupInterval: time.Minute * 10,
	}
}

// EvaluationPrefix 评估结果缓存键前缀
const EvaluationPrefix = "seo"

// GenerateCacheKey 生成标准化的缓存键
func GenerateCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

// EvaluationKey 根据关键词和正文生成评估结果缓存键
// 相同输入的评估结果相同，因此可以直接复用
func EvaluationKey(text, keyword string) string {
	h := sha256.New()
	h.Write([]byte(keyword))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return GenerateCacheKey(EvaluationPrefix, hex.EncodeToString(h.Sum(nil)))
}

// namespaced 判断键是否属于命名空间
func namespaced(namespace, key string) bool {
	return namespace == "" || strings.HasPrefix(key, namespace+":")
}
