package cache

import (
	"context"
	"errors"
)

// ErrRedisDisabled Redis 未启用
var ErrRedisDisabled = errors.New("redis disabled")

// CartStore 基于 Redis 的购物车持久化存储。
// 购物车键由本组件独占写入，其他组件不得写同名键。
type CartStore struct{}

// NewCartStore 创建购物车存储。
// Redis 未启用时返回 nil，引擎会退化为纯内存模式。
func NewCartStore() *CartStore {
	if !Enabled() {
		return nil
	}
	return &CartStore{}
}

// Get 读取购物车快照
func (s *CartStore) Get(ctx context.Context, key string) (string, bool, error) {
	if !Enabled() {
		return "", false, ErrRedisDisabled
	}
	return GetString(ctx, key)
}

// Set 写入购物车快照（last-write-wins）
func (s *CartStore) Set(ctx context.Context, key, payload string) error {
	if !Enabled() {
		return ErrRedisDisabled
	}
	return SetString(ctx, key, payload)
}

// Remove 删除购物车快照
func (s *CartStore) Remove(ctx context.Context, key string) error {
	if !Enabled() {
		return ErrRedisDisabled
	}
	return Del(ctx, key)
}
