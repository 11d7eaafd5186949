package pow

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/pkg/types"
)

// errNilDifficulty 调用方未提供难度
var errNilDifficulty = errors.New("difficulty is nil")

// Verify 验证原始封印字节
//
// ✅ **验证流程**（任一步失败立即返回 false）：
// 1. 解码封印
// 2. 用难度判定检查封印中的 work
// 3. 以 (difficulty, preHash, seal.Nonce) 重算封印，要求三个字段与解码结果完全一致
//
// 第2步单独使用会允许攻击者提交一个恰好满足难度的任意 work，
// 第3步通过重算摘要堵住这一缺口。
func (e *Engine) Verify(parent, preHash common.Hash, raw []byte, difficulty *uint256.Int) (bool, error) {
	if difficulty == nil {
		VerifyTotal.WithLabelValues(verifyResultError).Inc()
		return false, types.NewEnvironmentError("verify seal", errNilDifficulty)
	}
	e.warnZeroDifficulty("verify", difficulty)

	seal, err := DecodeSeal(raw)
	if err != nil {
		e.logger.Debugf("封印解码失败: parent=%s err=%v", parent.Hex(), err)
		VerifyTotal.WithLabelValues(verifyResultDecodeFailed).Inc()
		return false, nil
	}

	if !HashMeetsDifficulty(seal.Work, difficulty) {
		e.logger.Debugf("工作量不足: parent=%s work=%s", parent.Hex(), seal.Work.Hex())
		VerifyTotal.WithLabelValues(verifyResultInsufficient).Inc()
		return false, nil
	}

	compute := Compute{PreHash: preHash, Nonce: seal.Nonce}
	compute.Difficulty.Set(difficulty)
	if !compute.Seal().Equal(seal) {
		e.logger.Debugf("封印重算不一致: parent=%s pre_hash=%s", parent.Hex(), preHash.Hex())
		VerifyTotal.WithLabelValues(verifyResultMismatch).Inc()
		return false, nil
	}

	VerifyTotal.WithLabelValues(verifyResultValid).Inc()
	return true, nil
}
