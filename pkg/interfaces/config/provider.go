// Package config provides configuration provider interfaces.
package config

import (
	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	logconfig "github.com/weisyn/sha3pow/internal/config/log"
	metricsconfig "github.com/weisyn/sha3pow/internal/config/metrics"
	badgerconfig "github.com/weisyn/sha3pow/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/sha3pow/internal/config/storage/memory"
)

// Provider 配置提供者接口
type Provider interface {
	// GetAppName 获取应用名称
	GetAppName() string

	// GetConsensus 获取PoW共识配置
	GetConsensus() *consensusconfig.POWOptions

	// GetLog 获取日志配置
	GetLog() *logconfig.LogOptions

	// GetBadger 获取BadgerDB存储配置
	GetBadger() *badgerconfig.BadgerOptions

	// GetMemory 获取难度缓存配置
	GetMemory() *memoryconfig.MemoryOptions

	// GetMetrics 获取指标服务配置
	GetMetrics() *metricsconfig.MetricsOptions
}
