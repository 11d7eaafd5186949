// Package importer 实现区块导入前的封印校验门
//
// 🚪 **导入门 (Import Gate)**
//
// 候选区块进入链之前必须通过 Gate.Check：
//   - 封印有效：返回 nil
//   - 封印无效：返回 *RejectedError（包装 ErrInvalidSeal），区块应被丢弃
//   - 环境错误：原样返回，该候选区块的导入中止，但区块本身不被判定为无效
package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/types"
)

// ErrInvalidSeal 封印未通过校验
var ErrInvalidSeal = errors.New("invalid seal")

// RejectedError 区块因封印无效被拒绝
type RejectedError struct {
	Height  uint64
	PreHash common.Hash
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("block %d (pre_hash=%s) rejected: %v", e.Height, e.PreHash.Hex(), ErrInvalidSeal)
}

func (e *RejectedError) Unwrap() error {
	return ErrInvalidSeal
}

// Header 待导入的区块头
type Header struct {
	Parent  common.Hash `json:"parent"`
	PreHash common.Hash `json:"pre_hash"`
	Height  uint64      `json:"height"`
	Seal    []byte      `json:"seal"`
}

// 导入结果标签
const (
	importResultAccepted = "accepted"
	importResultRejected = "rejected"
	importResultError    = "error"
)

// ImportTotal 导入校验次数（按结果分类）
var ImportTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "sha3pow_import_total",
		Help: "区块导入封印校验总次数（accepted/rejected/error）",
	},
	[]string{"result"},
)

func init() {
	prometheus.MustRegister(ImportTotal)
}

// Gate 区块导入校验门
type Gate struct {
	algo     crypto.PowAlgorithm
	eventBus event.EventBus
	logger   log.Logger
}

// NewGate 创建导入门，eventBus 可为 nil
func NewGate(algo crypto.PowAlgorithm, eventBus event.EventBus, logger log.Logger) (*Gate, error) {
	if algo == nil {
		return nil, errors.New("PoW算法不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}
	return &Gate{algo: algo, eventBus: eventBus, logger: logger}, nil
}

// Check 校验区块头携带的封印
//
// 难度总是从预言机按父区块查询，封印中自带的难度不被信任。
func (g *Gate) Check(ctx context.Context, header *Header) error {
	if header == nil {
		return errors.New("区块头不能为空")
	}

	difficulty, err := g.algo.Difficulty(ctx, header.Parent)
	if err != nil {
		ImportTotal.WithLabelValues(importResultError).Inc()
		return fmt.Errorf("查询难度失败: height=%d: %w", header.Height, err)
	}

	ok, err := g.algo.Verify(header.Parent, header.PreHash, header.Seal, difficulty)
	if err != nil {
		ImportTotal.WithLabelValues(importResultError).Inc()
		return fmt.Errorf("封印校验失败: height=%d: %w", header.Height, err)
	}

	if !ok {
		ImportTotal.WithLabelValues(importResultRejected).Inc()
		g.logger.Warnf("拒绝区块: height=%d parent=%s pre_hash=%s",
			header.Height, header.Parent.Hex(), header.PreHash.Hex())
		if g.eventBus != nil {
			g.eventBus.Publish(types.EventTypeBlockRejected, &types.BlockRejectedEvent{
				Parent:  header.Parent,
				PreHash: header.PreHash,
				Height:  header.Height,
				Reason:  ErrInvalidSeal.Error(),
			})
		}
		return &RejectedError{Height: header.Height, PreHash: header.PreHash}
	}

	ImportTotal.WithLabelValues(importResultAccepted).Inc()
	return nil
}
