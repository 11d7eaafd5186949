// Package consensus 装配SHA3-256工作量证明共识组件
//
// 📋 **共识核心模块 (Consensus Core Module)**
//
// 📦 **子模块组织**：
// - difficulty/ - 难度预言机（static | store，可选缓存）
// - importer/   - 区块导入前的封印校验门
// - miner/      - 挖矿驱动器
//
// PoW算法本身由 infrastructure/crypto 模块提供，本模块只负责
// 为它提供难度来源，并在其之上组织挖矿与导入流程。
package consensus

import (
	"go.uber.org/fx"

	"github.com/weisyn/sha3pow/internal/core/consensus/difficulty"
	"github.com/weisyn/sha3pow/internal/core/consensus/importer"
	"github.com/weisyn/sha3pow/internal/core/consensus/miner"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/types"
)

// EventInput 共识事件订阅依赖
type EventInput struct {
	fx.In

	EventBus event.EventBus `optional:"true"`
	Logger   log.Logger     `optional:"true"`
}

// Module 返回共识模块
func Module() fx.Option {
	return fx.Module("consensus",
		difficulty.Module(),
		importer.Module(),
		miner.Module(),

		fx.Invoke(subscribeConsensusEvents),
	)
}

// subscribeConsensusEvents 把共识事件写入日志
func subscribeConsensusEvents(input EventInput) error {
	if input.EventBus == nil || input.Logger == nil {
		return nil
	}
	logger := input.Logger.With("module", "consensus")

	if err := input.EventBus.Subscribe(types.EventTypeSealFound, func(ev *types.SealFoundEvent) {
		logger.Debugf("事件 %s: height=%d pre_hash=%s", types.EventTypeSealFound, ev.Height, ev.PreHash.Hex())
	}); err != nil {
		return err
	}
	if err := input.EventBus.Subscribe(types.EventTypeBlockRejected, func(ev *types.BlockRejectedEvent) {
		logger.Warnf("事件 %s: height=%d reason=%s", types.EventTypeBlockRejected, ev.Height, ev.Reason)
	}); err != nil {
		return err
	}

	logger.Info("🚀 共识核心模块初始化完成")
	return nil
}
