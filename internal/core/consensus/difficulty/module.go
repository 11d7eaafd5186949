package difficulty

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 难度模块依赖
type ModuleParams struct {
	fx.In

	Options     *consensusconfig.POWOptions
	BadgerStore storage.BadgerStore `optional:"true"`
	MemoryStore storage.MemoryStore `optional:"true"`
	Logger      log.Logger          `optional:"true"`
}

// ModuleOutput 难度模块输出
//
// Recorder 与 Store 仅在 store 后端下非空。出块方通过 Recorder 记录下一块的难度，
// 启用缓存时 Recorder 是缓存层，写入后同步失效对应条目。
type ModuleOutput struct {
	fx.Out

	Oracle   crypto.DifficultyOracle
	Recorder Recorder
	Store    *StoreOracle
}

// Module 返回难度预言机模块
func Module() fx.Option {
	return fx.Module("difficulty",
		fx.Provide(ProvideOracle),
		fx.Invoke(registerRecordSummary),
	)
}

type summaryParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Store     *StoreOracle `optional:"true"`
	Logger    log.Logger   `optional:"true"`
}

// registerRecordSummary 启动时报告已持久化的难度记录数
func registerRecordSummary(params summaryParams) {
	store := params.Store
	if store == nil {
		return
	}
	logger := logimpl.NewModuleLogger(params.Logger, "difficulty")
	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			records, err := store.Records(ctx)
			if err != nil {
				return fmt.Errorf("读取难度记录失败: %w", err)
			}
			logger.Infof("已加载难度记录: count=%d", len(records))
			return nil
		},
	})
}

// ProvideOracle 按配置选择预言机后端
//
// 🔧 **装配规则**：
//   - static: 固定为 InitialDifficulty
//   - store:  BadgerDB 记录，OracleCacheTTL > 0 且有内存缓存时外加缓存层
func ProvideOracle(params ModuleParams) (ModuleOutput, error) {
	if params.Options == nil {
		return ModuleOutput{}, fmt.Errorf("缺少共识配置")
	}
	logger := logimpl.NewModuleLogger(params.Logger, "difficulty")
	opts := params.Options

	switch opts.OracleBackend {
	case consensusconfig.OracleBackendStatic:
		oracle, err := NewStaticOracle(opts.InitialDifficulty)
		if err != nil {
			return ModuleOutput{}, err
		}
		logger.Infof("使用固定难度预言机: difficulty=%s", opts.InitialDifficulty.Dec())
		return ModuleOutput{Oracle: oracle}, nil

	case consensusconfig.OracleBackendStore:
		store, err := NewStoreOracle(params.BadgerStore, opts.InitialDifficulty, logger)
		if err != nil {
			return ModuleOutput{}, fmt.Errorf("创建存储难度预言机失败: %w", err)
		}
		out := ModuleOutput{Oracle: store, Recorder: store, Store: store}
		if opts.OracleCacheTTL > 0 && params.MemoryStore != nil {
			cached, err := NewCachedOracle(store, params.MemoryStore, logger)
			if err != nil {
				return ModuleOutput{}, err
			}
			out.Oracle, out.Recorder = cached, cached
			logger.Infof("难度预言机缓存已启用: ttl=%s", opts.OracleCacheTTL)
		}
		return out, nil

	default:
		return ModuleOutput{}, fmt.Errorf("未知的难度预言机后端: %q", opts.OracleBackend)
	}
}
