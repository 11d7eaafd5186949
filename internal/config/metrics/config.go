// Package metrics 提供指标服务配置
package metrics

import (
	"strings"
	"time"

	"github.com/weisyn/sha3pow/pkg/types"
)

// MetricsOptions 指标服务配置选项
type MetricsOptions struct {
	ListenAddr   string        `json:"listen_addr"` // 为空表示禁用
	Path         string        `json:"path"`
	ReadTimeout  time.Duration `json:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout"`
}

// Config 指标配置实现
type Config struct {
	options *MetricsOptions
}

// New 创建指标配置
func New(userConfig *types.UserMetricsConfig) *Config {
	options := &MetricsOptions{
		ListenAddr:   defaultListenAddr,
		Path:         defaultPath,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}
	if userConfig != nil && userConfig.ListenAddr != nil {
		options.ListenAddr = strings.TrimSpace(*userConfig.ListenAddr)
	}
	return &Config{options: options}
}

// GetOptions 获取配置选项
func (c *Config) GetOptions() *MetricsOptions {
	return c.options
}

// IsEnabled 是否启用指标服务
func (c *Config) IsEnabled() bool {
	return c.options.ListenAddr != ""
}
