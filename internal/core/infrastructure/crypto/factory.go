// Package crypto 提供加密服务工厂实现
package crypto

import (
	"fmt"

	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// ServiceInput 定义加密服务工厂的输入参数
type ServiceInput struct {
	Oracle      crypto.DifficultyOracle
	Logger      log.Logger
	NonceSource crypto.NonceSourceFactory // 为 nil 时使用会话随机源
}

// ServiceOutput 定义加密服务工厂的输出结果
type ServiceOutput struct {
	PowAlgorithm crypto.PowAlgorithm
}

// CreateCryptoServices 创建加密服务
//
// 🏭 **加密服务工厂**：
// 将服务创建逻辑从 module.go 中分离出来，保持 module.go 的薄实现，
// CLI 等不经过 fx 装配的调用方也可直接使用。
func CreateCryptoServices(input ServiceInput) (ServiceOutput, error) {
	logger := logimpl.NewModuleLogger(input.Logger, "crypto")

	var opts []pow.Option
	if input.NonceSource != nil {
		opts = append(opts, pow.WithNonceSourceFactory(input.NonceSource))
	}

	engine, err := pow.NewEngine(input.Oracle, logger, opts...)
	if err != nil {
		return ServiceOutput{}, fmt.Errorf("创建PoW引擎失败: %w", err)
	}
	logger.Info("SHA3-256 PoW 引擎已初始化")

	return ServiceOutput{
		PowAlgorithm: engine,
	}, nil
}
