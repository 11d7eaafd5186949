// Package chain 提供开发节点使用的内存链
//
// 🔗 **开发链 (Dev Chain)**
//
// 内存链为挖矿驱动提供任务，并把挖出的封印经导入门校验后追加到链上：
//   - BestWork：在当前链头之上生成候选区块头（pre_hash）
//   - SubmitSeal：组装区块头 → 导入门校验 → 记录下一块难度 → 追加
//
// 链头由读写锁保护，可被多个 goroutine 并发访问。
package chain

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"

	"github.com/weisyn/sha3pow/internal/core/consensus/importer"
	"github.com/weisyn/sha3pow/internal/core/consensus/miner"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
)

// maxPendingWork 同时保留的候选任务上限
const maxPendingWork = 64

var (
	// ErrUnknownWork 提交的任务不是本链生成的
	ErrUnknownWork = errors.New("unknown work")

	// ErrStaleWork 任务的父区块已不是链头
	ErrStaleWork = errors.New("stale work")
)

var (
	_ miner.WorkProvider = (*Chain)(nil)
	_ miner.Submitter    = (*Chain)(nil)
)

// DifficultyRecorder 记录在某区块之上出块所需的难度
type DifficultyRecorder interface {
	Record(ctx context.Context, block common.Hash, difficulty *uint256.Int) error
}

// Block 已上链的区块
type Block struct {
	Hash      common.Hash     `json:"hash"`
	Header    importer.Header `json:"header"`
	Timestamp int64           `json:"timestamp"` // 毫秒
}

// template 候选区块头，等待封印
type template struct {
	parent    common.Hash
	height    uint64
	timestamp int64
}

// Chain 内存链
type Chain struct {
	gate     *importer.Gate
	recorder DifficultyRecorder
	clock    clock.Clock
	logger   log.Logger

	mu      sync.RWMutex
	head    *Block
	blocks  map[common.Hash]*Block
	pending map[common.Hash]template
}

// Option 内存链构造选项
type Option func(*Chain)

// WithClock 替换时间来源
func WithClock(c clock.Clock) Option {
	return func(ch *Chain) {
		if c != nil {
			ch.clock = c
		}
	}
}

// WithDifficultyRecorder 设置难度记录器
func WithDifficultyRecorder(r DifficultyRecorder) Option {
	return func(ch *Chain) {
		ch.recorder = r
	}
}

// New 创建只包含创世块的内存链
//
// 创世块哈希为零哈希，高度为0。
func New(gate *importer.Gate, logger log.Logger, opts ...Option) (*Chain, error) {
	if gate == nil {
		return nil, errors.New("导入门不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}

	genesis := &Block{}
	c := &Chain{
		gate:    gate,
		clock:   clock.New(),
		logger:  logger,
		head:    genesis,
		blocks:  map[common.Hash]*Block{genesis.Hash: genesis},
		pending: make(map[common.Hash]template),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// PreHash 计算候选区块头哈希：SHA3-256(parent ‖ height_be ‖ timestamp_be)
func PreHash(parent common.Hash, height uint64, timestamp int64) common.Hash {
	var buf [common.HashLength + 16]byte
	copy(buf[:], parent[:])
	binary.BigEndian.PutUint64(buf[common.HashLength:], height)
	binary.BigEndian.PutUint64(buf[common.HashLength+8:], uint64(timestamp))
	return common.Hash(sha3.Sum256(buf[:]))
}

// BlockHash 计算区块哈希：SHA3-256(pre_hash ‖ seal)
func BlockHash(preHash common.Hash, seal []byte) common.Hash {
	h := sha3.New256()
	h.Write(preHash[:])
	h.Write(seal)
	return common.BytesToHash(h.Sum(nil))
}

// BestWork 在当前链头之上生成挖矿任务
func (c *Chain) BestWork(ctx context.Context) (*miner.Work, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	tpl := template{
		parent:    c.head.Hash,
		height:    c.head.Header.Height + 1,
		timestamp: c.clock.Now().UnixMilli(),
	}
	preHash := PreHash(tpl.parent, tpl.height, tpl.timestamp)

	if len(c.pending) >= maxPendingWork {
		c.pending = make(map[common.Hash]template)
	}
	c.pending[preHash] = tpl

	return &miner.Work{Parent: tpl.parent, PreHash: preHash, Height: tpl.height}, nil
}

// SubmitSeal 校验封印并把区块追加到链上
//
// 🔄 **提交流程**：
// 1. 按 pre_hash 找回候选区块头，确认父区块仍是链头
// 2. 经导入门校验封印（难度由预言机给出）
// 3. 记录在新区块之上出块的难度（沿用当前难度），失败则区块不上链
// 4. 追加区块并清空旧任务
func (c *Chain) SubmitSeal(ctx context.Context, work *miner.Work, seal []byte) error {
	if work == nil {
		return errors.New("任务不能为空")
	}

	c.mu.RLock()
	tpl, ok := c.pending[work.PreHash]
	headHash := c.head.Hash
	c.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: pre_hash=%s", ErrUnknownWork, work.PreHash.Hex())
	}
	if tpl.parent != headHash {
		return fmt.Errorf("%w: parent=%s head=%s", ErrStaleWork, tpl.parent.Hex(), headHash.Hex())
	}

	header := importer.Header{
		Parent:  tpl.parent,
		PreHash: work.PreHash,
		Height:  tpl.height,
		Seal:    append([]byte(nil), seal...),
	}
	if err := c.gate.Check(ctx, &header); err != nil {
		return err
	}

	decoded, err := pow.DecodeSeal(header.Seal)
	if err != nil {
		return fmt.Errorf("解码已接受的封印失败: %w", err)
	}
	header.Seal = pow.EncodeSeal(decoded)

	block := &Block{
		Hash:      BlockHash(header.PreHash, header.Seal),
		Header:    header,
		Timestamp: tpl.timestamp,
	}

	// 链头切换前写入难度记录，新链头总能查到下一块的难度
	if c.recorder != nil {
		if err := c.recorder.Record(ctx, block.Hash, &decoded.Difficulty); err != nil {
			return fmt.Errorf("记录下一块难度失败: %w", err)
		}
	}

	c.mu.Lock()
	if c.head.Hash != tpl.parent {
		c.mu.Unlock()
		return fmt.Errorf("%w: 校验期间链头已变化", ErrStaleWork)
	}
	c.blocks[block.Hash] = block
	c.head = block
	c.pending = make(map[common.Hash]template)
	c.mu.Unlock()

	c.logger.Infof("区块已上链: height=%d hash=%s", header.Height, block.Hash.Hex())
	return nil
}

// Head 返回当前链头
func (c *Chain) Head() Block {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return *c.head
}

// Block 按哈希查找区块
func (c *Chain) Block(hash common.Hash) (Block, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	b, ok := c.blocks[hash]
	if !ok {
		return Block{}, false
	}
	return *b, true
}
