package metrics

import (
	"go.uber.org/fx"

	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ModuleParams 指标模块依赖
type ModuleParams struct {
	fx.In

	Provider config.Provider
	Logger   log.Logger `optional:"true"`
}

// Module 返回指标模块
func Module() fx.Option {
	return fx.Module("metrics",
		fx.Provide(func(params ModuleParams) *Server {
			return NewServer(params.Provider.GetMetrics(), nil, logimpl.NewModuleLogger(params.Logger, "metrics"))
		}),
		fx.Invoke(func(lc fx.Lifecycle, server *Server) {
			lc.Append(fx.Hook{
				OnStart: server.Start,
				OnStop:  server.Stop,
			})
		}),
	)
}
