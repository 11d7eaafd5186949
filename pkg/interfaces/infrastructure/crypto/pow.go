// Package crypto 提供PoW（工作量证明）接口定义
//
// ⚡ **PoW算法接口 (Proof of Work Algorithm)**
//
// 本文件定义了SHA3-256工作量证明共识的对外接口：
// - PowAlgorithm：难度获取、封印验证、封印挖掘三项能力
// - DifficultyOracle：按父区块提供难度目标
// - NonceSource：挖矿会话使用的随机源
//
// 🎯 **设计原则**
// - 接口简洁：算法只暴露三个方法，不绑定任何宿主运行时
// - 依赖注入：难度预言机由构造函数注入，只读共享
// - 可测试：随机源显式传入，测试可替换为确定性实现
package crypto

import (
	"context"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// SealLength 封印的固定编码长度：difficulty(32) ‖ work(32) ‖ nonce(32)
const SealLength = 96

// PowAlgorithm 定义PoW共识算法接口
//
// 实现必须是无状态的（除只读的预言机句柄外），
// Difficulty 与 Verify 可被多个 goroutine 并发调用。
type PowAlgorithm interface {
	// Difficulty 获取在 parent 之上出块所需的难度
	//
	// 预言机的任何失败都以环境错误返回，绝不使用默认值代替。
	Difficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error)

	// Verify 验证原始封印字节是否为 preHash 在给定难度下的有效解
	//
	// 🔄 **返回值**：
	//   - (true, nil): 封印有效
	//   - (false, nil): 封印无效（解码失败、工作量不足、重算不一致）
	//   - (false, err): 环境错误，调用方应中止该候选区块的导入
	Verify(parent, preHash common.Hash, seal []byte, difficulty *uint256.Int) (bool, error)

	// Mine 在 rounds 次尝试内搜索有效封印
	//
	// 找到则返回编码后的封印；预算耗尽返回 (nil, nil)。
	// 方法内部没有休眠和超时，取消由外部驱动器在两次调用之间完成。
	Mine(parent, preHash common.Hash, difficulty *uint256.Int, rounds uint32) ([]byte, error)
}

// DifficultyOracle 难度预言机
//
// 必须支持并发查询。
type DifficultyOracle interface {
	// GetDifficulty 返回在 parent 之上出块所需的难度
	GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error)
}

// NonceSource 挖矿会话随机源
//
// 每次 Mine 调用都会获取一个新的 NonceSource，状态不跨调用保留。
type NonceSource interface {
	io.Reader
}

// NonceSourceFactory 为每次挖矿调用创建新的随机源
type NonceSourceFactory func() (NonceSource, error)
