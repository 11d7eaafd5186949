package config

import (
	"fmt"

	"github.com/weisyn/sha3pow/internal/config/consensus"
	"github.com/weisyn/sha3pow/internal/config/log"
	"github.com/weisyn/sha3pow/internal/config/metrics"
	"github.com/weisyn/sha3pow/internal/config/storage/badger"
	"github.com/weisyn/sha3pow/internal/config/storage/memory"
	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	"github.com/weisyn/sha3pow/pkg/types"
)

// defaultAppName 未配置时的应用名称
const defaultAppName = "sha3pow"

// Provider 实现配置提供者接口
//
// 共识配置在构造时解析并校验，其余配置按需由各子包的 New 生成。
type Provider struct {
	appConfig *types.AppConfig
	consensus *consensus.POWOptions
}

var _ config.Provider = (*Provider)(nil)

// NewProvider 创建配置提供者
func NewProvider(appConfig *types.AppConfig) (*Provider, error) {
	if appConfig == nil {
		appConfig = &types.AppConfig{}
	}

	if err := ValidateAppConfig(appConfig); err != nil {
		return nil, err
	}

	consensusConfig, err := consensus.New(appConfig.Consensus)
	if err != nil {
		return nil, fmt.Errorf("解析共识配置失败: %w", err)
	}

	return &Provider{
		appConfig: appConfig,
		consensus: consensusConfig.GetOptions(),
	}, nil
}

// GetAppName 获取应用名称
func (p *Provider) GetAppName() string {
	if p.appConfig.AppName != nil && *p.appConfig.AppName != "" {
		return *p.appConfig.AppName
	}
	return defaultAppName
}

// GetConsensus 获取PoW共识配置
func (p *Provider) GetConsensus() *consensus.POWOptions {
	return p.consensus
}

// GetLog 获取日志配置
func (p *Provider) GetLog() *log.LogOptions {
	return log.New(p.appConfig.Log).GetOptions()
}

// GetBadger 获取BadgerDB存储配置
//
// storage.data_root 优先；未配置时回退到顶层 data_dir。
func (p *Provider) GetBadger() *badger.BadgerOptions {
	storage := p.appConfig.Storage
	if (storage == nil || storage.DataRoot == nil) && p.appConfig.DataDir != nil {
		merged := types.UserStorageConfig{DataRoot: p.appConfig.DataDir}
		if storage != nil {
			merged.InMemory = storage.InMemory
		}
		storage = &merged
	}
	return badger.New(storage).GetOptions()
}

// GetMemory 获取难度缓存配置，存活时间取自 consensus.oracle_cache_ttl
func (p *Provider) GetMemory() *memory.MemoryOptions {
	return memory.New(p.consensus.OracleCacheTTL).GetOptions()
}

// GetMetrics 获取指标服务配置
func (p *Provider) GetMetrics() *metrics.MetricsOptions {
	return metrics.New(p.appConfig.Metrics).GetOptions()
}
