package metrics

import "time"

// 指标服务默认配置值
const (
	// defaultListenAddr 默认不启动指标服务
	defaultListenAddr = ""

	// defaultPath 指标端点路径
	defaultPath = "/metrics"

	defaultReadTimeout  = 5 * time.Second
	defaultWriteTimeout = 10 * time.Second
)
