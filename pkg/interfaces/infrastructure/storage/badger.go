// Package storage 提供键值存储接口定义
//
// 💾 **存储接口**
// - BadgerStore：持久化键值存储（BadgerDB），用于难度记录
// - MemoryStore：带过期时间的内存缓存（BigCache），用于难度查询缓存
package storage

import (
	"context"
)

// BadgerStore 定义了持久化键值存储接口
type BadgerStore interface {
	// Get 获取指定键的值
	// 如果键不存在，返回nil值和nil错误
	Get(ctx context.Context, key []byte) ([]byte, error)

	// Set 设置键值对，已存在时覆盖
	Set(ctx context.Context, key, value []byte) error

	// Delete 删除指定键的值
	// 如果键不存在，不会返回错误
	Delete(ctx context.Context, key []byte) error

	// Exists 检查键是否存在
	Exists(ctx context.Context, key []byte) (bool, error)

	// PrefixScan 按前缀扫描键值对
	// 返回map的键为键的字符串表示
	PrefixScan(ctx context.Context, prefix []byte) (map[string][]byte, error)

	// Close 关闭数据库连接
	// 应用关闭时必须调用此方法以避免数据损坏
	Close() error
}
