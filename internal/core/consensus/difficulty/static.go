// Package difficulty 提供难度预言机实现
//
// 📐 **难度来源**：
// - StaticOracle：固定难度，用于开发链与测试
// - StoreOracle：从 BadgerDB 读取按父区块记录的难度
// - CachedOracle：在任意预言机之前加一层 BigCache 缓存
//
// 所有实现均可被多个 goroutine 并发查询。
package difficulty

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
)

var _ crypto.DifficultyOracle = (*StaticOracle)(nil)

// StaticOracle 对任意父区块返回同一难度
type StaticOracle struct {
	difficulty uint256.Int
}

// NewStaticOracle 创建固定难度预言机
func NewStaticOracle(difficulty *uint256.Int) (*StaticOracle, error) {
	if difficulty == nil {
		return nil, errors.New("固定难度不能为空")
	}
	o := &StaticOracle{}
	o.difficulty.Set(difficulty)
	return o, nil
}

// GetDifficulty 返回固定难度的副本
func (o *StaticOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return new(uint256.Int).Set(&o.difficulty), nil
}
