package badger

import (
	"path/filepath"

	configtypes "github.com/weisyn/sha3pow/pkg/types"
)

// BadgerOptions BadgerDB存储配置选项
type BadgerOptions struct {
	// === 基础配置 ===
	Path       string `json:"path"`        // 数据库存储路径
	InMemory   bool   `json:"in_memory"`   // 内存模式（不落盘，Path 被忽略）
	SyncWrites bool   `json:"sync_writes"` // 是否同步写入

	// === 基础性能配置 ===
	MemTableSize   int64 `json:"mem_table_size"`  // 内存表大小
	ValueThreshold int64 `json:"value_threshold"` // 超过该大小的值写入value log，0 表示使用默认值

	// === 维护配置 ===
	EnableAutoCompaction bool `json:"enable_auto_compaction"` // 是否启用自动压缩
}

// Config BadgerDB配置实现
type Config struct {
	options *BadgerOptions
}

// New 创建BadgerDB配置实现
func New(userConfig *configtypes.UserStorageConfig) *Config {
	options := createDefaultBadgerOptions()

	if userConfig != nil {
		applyUserConfig(options, userConfig)
	}

	return &Config{
		options: options,
	}
}

// NewFromOptions 从BadgerOptions创建配置实现
func NewFromOptions(options *BadgerOptions) *Config {
	if options == nil {
		return New(nil)
	}
	return &Config{
		options: options,
	}
}

// createDefaultBadgerOptions 创建默认BadgerDB配置
func createDefaultBadgerOptions() *BadgerOptions {
	return &BadgerOptions{
		Path:                 resolvePath(defaultPath),
		InMemory:             defaultInMemory,
		SyncWrites:           defaultSyncWrites,
		MemTableSize:         defaultMemTableSize,
		ValueThreshold:       defaultValueThreshold,
		EnableAutoCompaction: defaultEnableAutoCompaction,
	}
}

// applyUserConfig 应用用户配置覆盖默认值
//
// 路径规则：配置了 storage.data_root 时使用 {data_root}/badger/
func applyUserConfig(options *BadgerOptions, storageConfig *configtypes.UserStorageConfig) {
	if storageConfig.DataRoot != nil && *storageConfig.DataRoot != "" {
		options.Path = resolvePath(filepath.Join(*storageConfig.DataRoot, "badger"))
	}
	if storageConfig.InMemory != nil {
		options.InMemory = *storageConfig.InMemory
	}
	if storageConfig.MemTableSize != nil {
		options.MemTableSize = *storageConfig.MemTableSize
	}
}

// resolvePath 将相对路径解析为绝对路径，失败时原样返回
func resolvePath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

// GetOptions 获取完整的BadgerDB配置选项
func (c *Config) GetOptions() *BadgerOptions {
	return c.options
}

// GetPath 获取数据库路径
func (c *Config) GetPath() string {
	return c.options.Path
}

// IsInMemory 是否为内存模式
func (c *Config) IsInMemory() bool {
	return c.options.InMemory
}

// IsSyncWritesEnabled 是否启用同步写入
func (c *Config) IsSyncWritesEnabled() bool {
	return c.options.SyncWrites
}

// GetMemTableSize 获取内存表大小
func (c *Config) GetMemTableSize() int64 {
	if c.options.MemTableSize <= 0 {
		return defaultMemTableSize
	}
	return c.options.MemTableSize
}

// GetValueThreshold 获取值分离阈值
//
// BadgerDB 要求阈值不超过单批次上限（内存表的15%），超出时按上限截断。
func (c *Config) GetValueThreshold() int64 {
	threshold := c.options.ValueThreshold
	if threshold <= 0 {
		threshold = defaultValueThreshold
	}
	if limit := MaxBatchSize(c.GetMemTableSize()); threshold > limit {
		threshold = limit
	}
	return threshold
}

// MaxBatchSize BadgerDB 单批次写入上限
func MaxBatchSize(memTableSize int64) int64 {
	return memTableSize * 15 / 100
}

// IsAutoCompactionEnabled 是否启用自动压缩
func (c *Config) IsAutoCompactionEnabled() bool {
	return c.options.EnableAutoCompaction
}
