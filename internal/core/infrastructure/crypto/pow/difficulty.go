package pow

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// HashMeetsDifficulty 判断哈希是否满足难度要求
//
// 🔍 **难度判定算法**：
// 把 hash 按大端序解释为256位无符号整数 H，计算乘积 H * difficulty，
// 乘积没有溢出256位即满足要求。难度越大，越容易溢出，可通过的哈希越少。
//
// ⚠️ **边界情况**：
// - difficulty = 0：乘积恒为0，任何哈希都满足
// - difficulty = 2^256-1：只有 H = 0 或 H = 1 满足
func HashMeetsDifficulty(hash common.Hash, difficulty *uint256.Int) bool {
	h := new(uint256.Int).SetBytes32(hash[:])
	_, overflow := new(uint256.Int).MulOverflow(h, difficulty)
	return !overflow
}
