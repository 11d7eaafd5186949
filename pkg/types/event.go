// Package types provides event type definitions.
package types

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// EventType 事件类型
type EventType string

// 共识事件主题
const (
	// EventTypeSealFound 挖矿驱动找到有效封印并提交成功
	EventTypeSealFound EventType = "consensus.seal_found"

	// EventTypeBlockRejected 导入门因封印无效拒绝候选区块
	EventTypeBlockRejected EventType = "consensus.block_rejected"
)

// SealFoundEvent 封印挖出事件数据
type SealFoundEvent struct {
	Parent  common.Hash `json:"parent"`
	PreHash common.Hash `json:"pre_hash"`
	Height  uint64      `json:"height"`
	Seal    []byte      `json:"seal"`
	FoundAt time.Time   `json:"found_at"`
}

// BlockRejectedEvent 区块拒绝事件数据
type BlockRejectedEvent struct {
	Parent  common.Hash `json:"parent"`
	PreHash common.Hash `json:"pre_hash"`
	Height  uint64      `json:"height"`
	Reason  string      `json:"reason"`
}
