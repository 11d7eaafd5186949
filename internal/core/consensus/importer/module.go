package importer

import (
	"go.uber.org/fx"

	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ModuleParams 导入门依赖
type ModuleParams struct {
	fx.In

	PowAlgorithm crypto.PowAlgorithm
	EventBus     event.EventBus `optional:"true"`
	Logger       log.Logger     `optional:"true"`
}

// Module 返回导入门模块
func Module() fx.Option {
	return fx.Module("importer",
		fx.Provide(func(params ModuleParams) (*Gate, error) {
			return NewGate(params.PowAlgorithm, params.EventBus, logimpl.NewModuleLogger(params.Logger, "importer"))
		}),
	)
}
