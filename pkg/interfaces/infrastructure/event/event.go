// Package event 提供事件总线接口定义
//
// 事件总线用于共识组件向外广播状态变化（封印挖出、区块被拒绝），
// 发布方不依赖任何订阅方。
package event

import (
	"github.com/weisyn/sha3pow/pkg/types"
)

// 兼容别名
type EventType = types.EventType

// EventBus 事件总线接口
type EventBus interface {
	// Subscribe 订阅事件，处理函数在发布方 goroutine 中同步执行
	Subscribe(eventType EventType, handler interface{}) error
	// SubscribeAsync 异步订阅事件
	SubscribeAsync(eventType EventType, handler interface{}, transactional bool) error
	// Publish 发布事件
	Publish(eventType EventType, args ...interface{})
	// Unsubscribe 取消订阅
	Unsubscribe(eventType EventType, handler interface{}) error
	// WaitAsync 等待所有异步处理完成
	WaitAsync()
	// HasCallback 检查是否有回调函数
	HasCallback(eventType EventType) bool

	// EnableEventHistory 启用事件历史记录，最多保留 maxSize 条
	EnableEventHistory(eventType EventType, maxSize int) error
	// GetEventHistory 获取指定事件类型的历史记录
	// 如果历史功能未启用或没有历史记录，返回nil
	GetEventHistory(eventType EventType) []interface{}
}
