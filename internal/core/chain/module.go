package chain

import (
	"go.uber.org/fx"

	"github.com/weisyn/sha3pow/internal/core/consensus/difficulty"
	"github.com/weisyn/sha3pow/internal/core/consensus/importer"
	"github.com/weisyn/sha3pow/internal/core/consensus/miner"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ModuleParams 内存链依赖
type ModuleParams struct {
	fx.In

	Gate               *importer.Gate
	DifficultyRecorder difficulty.Recorder `optional:"true"`
	Logger             log.Logger          `optional:"true"`
}

// ModuleOutput 内存链输出
type ModuleOutput struct {
	fx.Out

	Chain        *Chain
	WorkProvider miner.WorkProvider
	Submitter    miner.Submitter
}

// Module 返回内存链模块
func Module() fx.Option {
	return fx.Module("chain",
		fx.Provide(ProvideChain),
	)
}

// ProvideChain 创建内存链，store 后端下同时记录每个新区块之上的难度
func ProvideChain(params ModuleParams) (ModuleOutput, error) {
	var opts []Option
	if params.DifficultyRecorder != nil {
		opts = append(opts, WithDifficultyRecorder(params.DifficultyRecorder))
	}

	c, err := New(params.Gate, logimpl.NewModuleLogger(params.Logger, "chain"), opts...)
	if err != nil {
		return ModuleOutput{}, err
	}
	return ModuleOutput{Chain: c, WorkProvider: c, Submitter: c}, nil
}
