package log

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	logconfig "github.com/weisyn/sha3pow/internal/config/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	logInterface "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ModuleParams 定义日志模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider // 配置提供者
}

// ModuleOutput 定义日志模块的输出结构
type ModuleOutput struct {
	fx.Out

	Logger    logInterface.Logger // 日志记录器接口
	ZapLogger *zap.Logger         // zap.Logger 具体类型
}

// Module 返回日志模块
func Module() fx.Option {
	return fx.Module("log",
		fx.Provide(ProvideServices),
		fx.Invoke(func(lc fx.Lifecycle, logger logInterface.Logger) {
			lc.Append(fx.StopHook(func() {
				// 标准流在部分平台上 Sync 会返回 EINVAL，忽略即可
				_ = logger.Sync()
			}))
		}),
	)
}

// ProvideServices 根据配置初始化日志记录器
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	logger, err := New(logconfig.FromOptions(params.Provider.GetLog()))
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		Logger:    logger,
		ZapLogger: logger.GetZapLogger(),
	}, nil
}

// NewModuleLogger 创建带 module 字段的 logger
func NewModuleLogger(baseLogger logInterface.Logger, module string) logInterface.Logger {
	if baseLogger == nil {
		return NewNop().With("module", module)
	}
	return baseLogger.With("module", module)
}
