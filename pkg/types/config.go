// Package types provides configuration type definitions.
package types

// AppConfig 应用程序根配置
// 只包含JSON配置文件解析所需的结构，不包含任何内部字段
// 默认值和完整配置结构在 internal/config/*/defaults.go 和 internal/config/*/config.go 中定义
type AppConfig struct {
	// 应用程序基本信息
	AppName *string `json:"app_name,omitempty"` // 应用名称
	DataDir *string `json:"data_dir,omitempty"` // 数据目录路径

	// 共识配置
	Consensus *UserConsensusConfig `json:"consensus,omitempty"`

	// 存储配置
	Storage *UserStorageConfig `json:"storage,omitempty"`

	// 日志配置
	Log *UserLogConfig `json:"log,omitempty"`

	// 指标配置
	Metrics *UserMetricsConfig `json:"metrics,omitempty"`
}

// UserConsensusConfig 用户共识配置
// 只包含JSON配置文件中实际出现的字段
type UserConsensusConfig struct {
	// 挖矿驱动参数
	RoundBudget   *uint32 `json:"round_budget,omitempty"`   // 每次 Mine 调用的尝试次数
	BuildTime     *string `json:"build_time,omitempty"`     // 重新获取挖矿任务的间隔，如 "2s"
	RetryInterval *string `json:"retry_interval,omitempty"` // 环境错误后的退避间隔
	MinerEnabled  *bool   `json:"miner_enabled,omitempty"`  // 是否启动挖矿驱动

	// 难度预言机
	InitialDifficulty *string `json:"initial_difficulty,omitempty"` // 十进制或0x十六进制
	OracleBackend     *string `json:"oracle_backend,omitempty"`     // static | store
	OracleCacheTTL    *string `json:"oracle_cache_ttl,omitempty"`   // 预言机缓存有效期，"0s" 表示禁用缓存
}

// UserStorageConfig 用户存储配置
// 只包含JSON配置文件中实际出现的字段
type UserStorageConfig struct {
	DataRoot *string `json:"data_root,omitempty"` // 数据根目录（data_root）
	InMemory *bool   `json:"in_memory,omitempty"` // 使用内存BadgerDB（数据不持久化）

	MemTableSize *int64 `json:"mem_table_size,omitempty"` // BadgerDB 内存表大小（字节）
}

// UserLogConfig 用户日志配置
// 只包含JSON配置文件中实际出现的字段
type UserLogConfig struct {
	Level    *string `json:"level,omitempty"`     // 日志级别：debug, info, warn, error
	FilePath *string `json:"file_path,omitempty"` // 日志文件路径
}

// UserMetricsConfig 用户指标配置
// 只包含JSON配置文件中实际出现的字段
type UserMetricsConfig struct {
	ListenAddr *string `json:"listen_addr,omitempty"` // Prometheus 指标监听地址，为空时不启动
}
