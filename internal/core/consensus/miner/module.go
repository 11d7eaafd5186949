package miner

import (
	"context"

	"go.uber.org/fx"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ModuleParams 挖矿模块依赖
type ModuleParams struct {
	fx.In

	Options      *consensusconfig.POWOptions
	PowAlgorithm crypto.PowAlgorithm
	WorkProvider WorkProvider
	Submitter    Submitter
	EventBus     event.EventBus `optional:"true"`
	Logger       log.Logger     `optional:"true"`
}

// Module 返回挖矿模块
//
// 驱动器总是被创建；只有 MinerEnabled 为 true 时才随应用启动。
func Module() fx.Option {
	return fx.Module("miner",
		fx.Provide(ProvideDriver),
		fx.Invoke(registerLifecycle),
	)
}

// ProvideDriver 创建挖矿驱动器
func ProvideDriver(params ModuleParams) (*Driver, error) {
	return NewDriver(
		params.PowAlgorithm,
		params.WorkProvider,
		params.Submitter,
		params.Options,
		logimpl.NewModuleLogger(params.Logger, "miner"),
		WithEventBus(params.EventBus),
	)
}

func registerLifecycle(lc fx.Lifecycle, driver *Driver, options *consensusconfig.POWOptions) {
	if !options.MinerEnabled {
		driver.logger.Info("挖矿未启用，驱动器保持空闲")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return driver.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return driver.Stop(ctx)
		},
	})
}
