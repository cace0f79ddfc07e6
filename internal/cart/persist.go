package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/boutique-next/internal/cache"
)

// Persister 购物车持久化层：一个 Store 独占一个键
type Persister interface {
	Load() (payload string, found bool, err error)
	Save(payload string) error
}

// NoopPersister 空实现，Redis 不可用时购物车只活在内存里
type NoopPersister struct{}

// Load 永远返回未找到
func (NoopPersister) Load() (string, bool, error) {
	return "", false, nil
}

// Save 丢弃数据
func (NoopPersister) Save(string) error {
	return nil
}

// RedisPersister 基于 Redis 的购物车持久化
type RedisPersister struct {
	key string
	ttl time.Duration
}

// NewRedisPersister 创建 Redis 持久化；键形如 <prefix>:<sessionID>
func NewRedisPersister(keyPrefix, sessionID string, ttl time.Duration) *RedisPersister {
	return &RedisPersister{
		key: fmt.Sprintf("%s:%s", keyPrefix, sessionID),
		ttl: ttl,
	}
}

// Load 读取序列化的购物车行
func (p *RedisPersister) Load() (string, bool, error) {
	return cache.GetString(context.Background(), p.key)
}

// Save 写入序列化的购物车行并刷新有效期
func (p *RedisPersister) Save(payload string) error {
	return cache.SetString(context.Background(), p.key, payload, p.ttl)
}
