// Package crypto 提供加密相关功能
package crypto

import (
	"go.uber.org/fx"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	log "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// CryptoParams 定义加密模块的依赖参数
type CryptoParams struct {
	fx.In

	Oracle crypto.DifficultyOracle // 难度预言机
	Logger log.Logger              `optional:"true"` // 日志记录器
}

// CryptoOutput 定义加密模块的输出结构
type CryptoOutput struct {
	fx.Out

	PowAlgorithm crypto.PowAlgorithm
}

// Module 返回加密模块
func Module() fx.Option {
	return fx.Module("crypto",
		fx.Provide(ProvideCryptoServices),
	)
}

// ProvideCryptoServices 提供加密服务
func ProvideCryptoServices(params CryptoParams) (CryptoOutput, error) {
	serviceOutput, err := CreateCryptoServices(ServiceInput{
		Oracle: params.Oracle,
		Logger: params.Logger,
	})
	if err != nil {
		return CryptoOutput{}, err
	}

	return CryptoOutput{
		PowAlgorithm: serviceOutput.PowAlgorithm,
	}, nil
}
