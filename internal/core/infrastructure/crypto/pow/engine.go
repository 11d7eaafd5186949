// Package pow 提供SHA3-256工作量证明算法的实现
//
// 🔧 **核心引擎组件 (Core Engine Component)**
//
// 本包实现 crypto.PowAlgorithm：
// - difficulty.go：难度判定（乘法溢出规则）
// - compute.go：规范编码与SHA3-256摘要
// - seal_codec.go：96字节封印的编解码
// - validation.go：三步封印验证
// - mining.go：有界随机搜索
//
// 🎯 **职责边界**：
// - 引擎除只读的难度预言机句柄外不持有任何可变状态
// - 不负责挖矿节奏、重试、取消，这些由外部驱动器处理
// - 封印内容问题一律以 false 返回，只有基础设施故障才返回错误
package pow

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/types"
)

// 确保Engine实现了crypto.PowAlgorithm接口
var _ crypto.PowAlgorithm = (*Engine)(nil)

// Engine SHA3-256 PoW 算法
//
// 📝 **字段说明**：
// - oracle: 难度预言机（只读共享，自身负责并发安全）
// - logger: 日志记录器
// - nonceSources: 每次 Mine 调用创建新随机源的工厂
type Engine struct {
	oracle       crypto.DifficultyOracle
	logger       log.Logger
	nonceSources crypto.NonceSourceFactory
}

// Option 引擎构造选项
type Option func(*Engine)

// WithNonceSourceFactory 替换随机源工厂（测试中用于确定性挖矿）
func WithNonceSourceFactory(factory crypto.NonceSourceFactory) Option {
	return func(e *Engine) {
		if factory != nil {
			e.nonceSources = factory
		}
	}
}

// NewEngine 创建PoW引擎实例
//
// 📋 **参数说明**：
//   - oracle: 难度预言机（不能为nil）
//   - logger: 日志记录器（nil 时使用空日志）
//   - opts: 可选配置
func NewEngine(oracle crypto.DifficultyOracle, logger log.Logger, opts ...Option) (*Engine, error) {
	if oracle == nil {
		return nil, errors.New("难度预言机不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}

	e := &Engine{
		oracle:       oracle,
		logger:       logger.With("component", "sha3_pow"),
		nonceSources: NewSessionNonceSource,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Difficulty 从难度预言机获取 parent 之上的难度
func (e *Engine) Difficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	difficulty, err := e.oracle.GetDifficulty(ctx, parent)
	if err != nil {
		return nil, types.NewEnvironmentError("fetching difficulty from oracle failed", err)
	}
	if difficulty == nil {
		return nil, types.NewEnvironmentError("fetching difficulty from oracle failed",
			fmt.Errorf("oracle returned nil difficulty for parent %s", parent.Hex()))
	}
	return difficulty, nil
}

// warnZeroDifficulty 难度为零时任何哈希都满足，记录一次警告
func (e *Engine) warnZeroDifficulty(op string, difficulty *uint256.Int) {
	if difficulty.IsZero() {
		e.logger.Warnf("%s: 难度为0，任何哈希都满足要求", op)
	}
}
