package consensus

import "time"

// 共识配置默认值
const (
	// defaultRoundBudget 每次 Mine 调用的尝试次数
	// 单次调用应在毫秒级返回，驱动器才能及时响应新区块和关闭信号
	defaultRoundBudget uint32 = 500

	// defaultBuildTime 重新获取挖矿任务的间隔
	defaultBuildTime = 2 * time.Second

	// defaultRetryInterval 难度获取等环境错误后的退避间隔
	defaultRetryInterval = time.Second

	// defaultMinerEnabled 默认启动挖矿驱动
	defaultMinerEnabled = true

	// defaultInitialDifficulty 创世难度（十进制）
	defaultInitialDifficulty = "1000"

	// defaultOracleBackend 难度预言机后端
	defaultOracleBackend = OracleBackendStatic

	// defaultOracleCacheTTL 预言机缓存有效期
	defaultOracleCacheTTL = 10 * time.Minute
)

// 难度预言机后端
const (
	OracleBackendStatic = "static" // 固定难度
	OracleBackendStore  = "store"  // BadgerDB 按父区块记录的难度
)
