// 基于asaskevich/EventBus的事件总线实现

package event

import (
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// 确保EventBus实现了event.EventBus接口
var _ event.EventBus = (*EventBus)(nil)

// EventBus 是基于asaskevich/EventBus的实现
//
// 在底层总线之上增加了按事件类型的历史记录，供 CLI 和测试回看最近的共识事件。
type EventBus struct {
	bus    evbus.Bus // 底层事件总线
	logger log.Logger

	historyMu    sync.RWMutex
	historyLimit map[event.EventType]int
	eventHistory map[event.EventType][]interface{}
}

// New 创建事件总线实例
func New(logger log.Logger) *EventBus {
	return &EventBus{
		bus:          evbus.New(),
		logger:       logger,
		historyLimit: make(map[event.EventType]int),
		eventHistory: make(map[event.EventType][]interface{}),
	}
}

// Subscribe 实现订阅
func (eb *EventBus) Subscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Subscribe(string(eventType), handler)
}

// SubscribeAsync 实现异步订阅
func (eb *EventBus) SubscribeAsync(eventType event.EventType, handler interface{}, transactional bool) error {
	return eb.bus.SubscribeAsync(string(eventType), handler, transactional)
}

// Publish 实现发布
//
// 只有单个参数的事件会进入历史记录。
func (eb *EventBus) Publish(eventType event.EventType, args ...interface{}) {
	if len(args) == 1 {
		eb.saveEventToHistory(eventType, args[0])
	}
	if eb.logger != nil {
		eb.logger.Debugf("发布事件: %s", eventType)
	}
	eb.bus.Publish(string(eventType), args...)
}

// Unsubscribe 取消订阅
func (eb *EventBus) Unsubscribe(eventType event.EventType, handler interface{}) error {
	return eb.bus.Unsubscribe(string(eventType), handler)
}

// WaitAsync 等待异步处理完成
func (eb *EventBus) WaitAsync() {
	eb.bus.WaitAsync()
}

// HasCallback 检查是否有回调函数
func (eb *EventBus) HasCallback(eventType event.EventType) bool {
	return eb.bus.HasCallback(string(eventType))
}

// EnableEventHistory 启用事件历史记录
func (eb *EventBus) EnableEventHistory(eventType event.EventType, maxSize int) error {
	if maxSize <= 0 {
		return fmt.Errorf("历史记录容量必须大于0: %d", maxSize)
	}

	eb.historyMu.Lock()
	defer eb.historyMu.Unlock()

	eb.historyLimit[eventType] = maxSize
	if h := eb.eventHistory[eventType]; len(h) > maxSize {
		eb.eventHistory[eventType] = append([]interface{}(nil), h[len(h)-maxSize:]...)
	}
	return nil
}

// GetEventHistory 获取指定类型的事件历史（按发布顺序）
func (eb *EventBus) GetEventHistory(eventType event.EventType) []interface{} {
	eb.historyMu.RLock()
	defer eb.historyMu.RUnlock()

	h := eb.eventHistory[eventType]
	if len(h) == 0 {
		return nil
	}
	return append([]interface{}(nil), h...)
}

// saveEventToHistory 保存事件到历史记录，超过容量时丢弃最早的记录
func (eb *EventBus) saveEventToHistory(eventType event.EventType, data interface{}) {
	eb.historyMu.Lock()
	defer eb.historyMu.Unlock()

	limit, ok := eb.historyLimit[eventType]
	if !ok {
		return
	}

	h := append(eb.eventHistory[eventType], data)
	if len(h) > limit {
		h = h[len(h)-limit:]
	}
	eb.eventHistory[eventType] = h
}
