// Package event 提供事件管理功能
package event

import (
	"go.uber.org/fx"

	eventInterface "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/types"
)

// defaultHistorySize 共识事件默认保留的历史条数
const defaultHistorySize = 64

// ModuleInput 事件模块输入依赖
type ModuleInput struct {
	fx.In

	Logger log.Logger `optional:"true"` // 日志记录器（可选）
}

// ModuleOutput 事件模块输出服务
type ModuleOutput struct {
	fx.Out

	EventBus eventInterface.EventBus // 基础事件总线
}

// Module 返回事件模块
func Module() fx.Option {
	return fx.Module("event",
		fx.Provide(ProvideEventBus),
	)
}

// ProvideEventBus 创建事件总线并为共识事件启用历史记录
func ProvideEventBus(input ModuleInput) (ModuleOutput, error) {
	var logger log.Logger
	if input.Logger != nil {
		logger = input.Logger.With("module", "event")
	}

	bus := New(logger)
	for _, topic := range []types.EventType{types.EventTypeSealFound, types.EventTypeBlockRejected} {
		if err := bus.EnableEventHistory(topic, defaultHistorySize); err != nil {
			return ModuleOutput{}, err
		}
	}

	return ModuleOutput{EventBus: bus}, nil
}
