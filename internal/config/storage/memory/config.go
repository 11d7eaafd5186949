package memory

import "time"

// MemoryOptions 内存缓存（BigCache）配置选项
type MemoryOptions struct {
	LifeWindow         time.Duration `json:"life_window"`           // 条目存活时间
	CleanWindow        time.Duration `json:"clean_window"`          // 清理间隔
	MaxEntriesInWindow int           `json:"max_entries_in_window"` // 窗口内预估条目数
	MaxEntrySize       int           `json:"max_entry_size"`        // 单条目预估大小（字节）
	HardMaxCacheSizeMB int           `json:"hard_max_cache_size"`   // 内存上限（MB）
}

// Config 内存缓存配置实现
type Config struct {
	options *MemoryOptions
}

// New 创建内存缓存配置，ttl > 0 时覆盖默认存活时间
func New(ttl time.Duration) *Config {
	options := createDefaultMemoryOptions()
	if ttl > 0 {
		options.LifeWindow = ttl
		if ttl < options.CleanWindow {
			options.CleanWindow = ttl
		}
	}
	return &Config{
		options: options,
	}
}

// createDefaultMemoryOptions 创建默认内存缓存配置
func createDefaultMemoryOptions() *MemoryOptions {
	return &MemoryOptions{
		LifeWindow:         defaultLifeWindow,
		CleanWindow:        defaultCleanWindow,
		MaxEntriesInWindow: defaultMaxEntriesInWindow,
		MaxEntrySize:       defaultMaxEntrySize,
		HardMaxCacheSizeMB: defaultHardMaxCacheSizeMB,
	}
}

// GetOptions 获取完整的内存缓存配置选项
func (c *Config) GetOptions() *MemoryOptions {
	return c.options
}

// NewFromOptions 从MemoryOptions创建配置实现
func NewFromOptions(options *MemoryOptions) *Config {
	if options == nil {
		return New(0)
	}
	return &Config{options: options}
}
