package pow

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/pkg/types"
)

// Mine 在 rounds 次尝试内搜索满足难度的封印
//
// ⛏️ **挖矿流程**：
// 1. 为本次调用创建新的随机源（状态不跨调用保留）
// 2. 每轮抽取一个均匀随机的256位 nonce
// 3. 计算封印并做难度判定，首次命中立即返回编码后的封印
// 4. 预算耗尽返回 (nil, nil)
//
// 方法内部不休眠、不重试、不检查取消信号；
// 驱动器通过限制 rounds 让每次调用快速返回，从而在调用之间完成取消。
func (e *Engine) Mine(parent, preHash common.Hash, difficulty *uint256.Int, rounds uint32) ([]byte, error) {
	if difficulty == nil {
		return nil, types.NewEnvironmentError("mine seal", errNilDifficulty)
	}
	e.warnZeroDifficulty("mine", difficulty)

	source, err := e.nonceSources()
	if err != nil {
		return nil, types.NewEnvironmentError("initialize rng failed for mining", err)
	}

	MineRoundsTotal.Inc()

	compute := Compute{PreHash: preHash}
	compute.Difficulty.Set(difficulty)

	var attempts uint32
	defer func() {
		MineAttemptsTotal.Add(float64(attempts))
	}()

	for attempts < rounds {
		if _, err := io.ReadFull(source, compute.Nonce[:]); err != nil {
			return nil, types.NewEnvironmentError("initialize rng failed for mining",
				fmt.Errorf("读取随机nonce失败: %w", err))
		}
		attempts++

		seal := compute.Seal()
		if HashMeetsDifficulty(seal.Work, difficulty) {
			SealsFoundTotal.Inc()
			e.logger.Debugf("挖矿成功: parent=%s attempts=%d work=%s", parent.Hex(), attempts, seal.Work.Hex())
			return EncodeSeal(seal), nil
		}
	}

	return nil, nil
}
