package consensus

import (
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/pkg/types"
)

// POWOptions PoW共识配置选项
type POWOptions struct {
	// === 挖矿驱动 ===
	RoundBudget   uint32        `json:"round_budget"`   // 每次 Mine 调用的尝试次数
	BuildTime     time.Duration `json:"build_time"`     // 重新获取挖矿任务的间隔
	RetryInterval time.Duration `json:"retry_interval"` // 环境错误后的退避间隔
	MinerEnabled  bool          `json:"miner_enabled"`  // 是否启动挖矿驱动

	// === 难度预言机 ===
	InitialDifficulty *uint256.Int  `json:"-"`                // 创世难度
	OracleBackend     string        `json:"oracle_backend"`   // static | store
	OracleCacheTTL    time.Duration `json:"oracle_cache_ttl"` // 0 表示禁用缓存
}

// Config 共识配置实现
type Config struct {
	options *POWOptions
}

// New 创建共识配置实现
func New(userConfig *types.UserConsensusConfig) (*Config, error) {
	options := createDefaultPOWOptions()

	if userConfig != nil {
		if err := applyUserConsensusConfig(options, userConfig); err != nil {
			return nil, err
		}
	}

	return &Config{options: options}, nil
}

// createDefaultPOWOptions 创建默认共识配置
func createDefaultPOWOptions() *POWOptions {
	initial, err := ParseDifficulty(defaultInitialDifficulty)
	if err != nil {
		panic(fmt.Sprintf("consensus: 默认难度无效: %v", err))
	}
	return &POWOptions{
		RoundBudget:       defaultRoundBudget,
		BuildTime:         defaultBuildTime,
		RetryInterval:     defaultRetryInterval,
		MinerEnabled:      defaultMinerEnabled,
		InitialDifficulty: initial,
		OracleBackend:     defaultOracleBackend,
		OracleCacheTTL:    defaultOracleCacheTTL,
	}
}

// applyUserConsensusConfig 应用用户配置覆盖默认值
func applyUserConsensusConfig(options *POWOptions, user *types.UserConsensusConfig) error {
	if user.RoundBudget != nil {
		if *user.RoundBudget == 0 {
			return fmt.Errorf("round_budget 必须大于0")
		}
		options.RoundBudget = *user.RoundBudget
	}
	if user.BuildTime != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*user.BuildTime))
		if err != nil || d <= 0 {
			return fmt.Errorf("build_time 无效: %q", *user.BuildTime)
		}
		options.BuildTime = d
	}
	if user.RetryInterval != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*user.RetryInterval))
		if err != nil || d < 0 {
			return fmt.Errorf("retry_interval 无效: %q", *user.RetryInterval)
		}
		options.RetryInterval = d
	}
	if user.MinerEnabled != nil {
		options.MinerEnabled = *user.MinerEnabled
	}
	if user.InitialDifficulty != nil {
		d, err := ParseDifficulty(*user.InitialDifficulty)
		if err != nil {
			return fmt.Errorf("initial_difficulty 无效: %w", err)
		}
		options.InitialDifficulty = d
	}
	if user.OracleBackend != nil {
		backend := strings.ToLower(strings.TrimSpace(*user.OracleBackend))
		switch backend {
		case OracleBackendStatic, OracleBackendStore:
			options.OracleBackend = backend
		default:
			return fmt.Errorf("oracle_backend 无效: %q（可选 static | store）", *user.OracleBackend)
		}
	}
	if user.OracleCacheTTL != nil {
		d, err := time.ParseDuration(strings.TrimSpace(*user.OracleCacheTTL))
		if err != nil || d < 0 {
			return fmt.Errorf("oracle_cache_ttl 无效: %q", *user.OracleCacheTTL)
		}
		options.OracleCacheTTL = d
	}
	return nil
}

// ParseDifficulty 解析十进制或 0x 前缀十六进制的256位难度
func ParseDifficulty(s string) (*uint256.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("难度不能为空")
	}
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return uint256.FromHex(s)
	}
	return uint256.FromDecimal(s)
}

// GetOptions 获取完整的共识配置选项
func (c *Config) GetOptions() *POWOptions {
	return c.options
}
