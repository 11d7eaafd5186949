package storage

import (
	"context"
)

// MemoryStore 定义了内存缓存接口
//
// 条目存活时间由缓存实例统一配置，过期条目对 Get 不可见。
type MemoryStore interface {
	// Get 获取缓存值，exists 为 false 表示未命中
	Get(ctx context.Context, key string) (value []byte, exists bool, err error)

	// Set 写入缓存
	Set(ctx context.Context, key string, value []byte) error

	// Delete 删除缓存，键不存在时不返回错误
	Delete(ctx context.Context, key string) error

	// Close 释放缓存资源
	Close() error
}
