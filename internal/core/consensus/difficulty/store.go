package difficulty

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// keyPrefix 难度记录键前缀，完整键为 prefix + 父区块哈希十六进制
const keyPrefix = "pow/difficulty/"

var (
	// ErrDifficultyNotFound 父区块没有难度记录
	ErrDifficultyNotFound = errors.New("difficulty record not found")

	// ErrMalformedDifficulty 难度记录不是32字节小端序
	ErrMalformedDifficulty = errors.New("malformed difficulty record")
)

// Recorder 记录在某区块之上出块所需的难度
type Recorder interface {
	Record(ctx context.Context, block common.Hash, difficulty *uint256.Int) error
}

var (
	_ crypto.DifficultyOracle = (*StoreOracle)(nil)
	_ Recorder                = (*StoreOracle)(nil)
)

// StoreOracle 基于持久化存储的难度预言机
//
// 📝 **存储格式**：
//   - 键: "pow/difficulty/" + parent.Hex()
//   - 值: difficulty_le(32)
//
// 零哈希父区块（创世）没有记录时回退到创世难度；
// 其他父区块缺少记录一律报错，不使用任何默认值。
type StoreOracle struct {
	store   storage.BadgerStore
	genesis uint256.Int
	logger  log.Logger
}

// NewStoreOracle 创建存储预言机
func NewStoreOracle(store storage.BadgerStore, genesis *uint256.Int, logger log.Logger) (*StoreOracle, error) {
	if store == nil {
		return nil, errors.New("难度存储不能为空")
	}
	if genesis == nil {
		return nil, errors.New("创世难度不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}
	o := &StoreOracle{store: store, logger: logger}
	o.genesis.Set(genesis)
	return o, nil
}

// GetDifficulty 读取在 parent 之上出块所需的难度
func (o *StoreOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	raw, err := o.store.Get(ctx, recordKey(parent))
	if err != nil {
		return nil, fmt.Errorf("读取难度记录失败: %w", err)
	}
	if raw == nil {
		if parent == (common.Hash{}) {
			return new(uint256.Int).Set(&o.genesis), nil
		}
		return nil, fmt.Errorf("%w: parent=%s", ErrDifficultyNotFound, parent.Hex())
	}

	difficulty, err := pow.DecodeDifficulty(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: parent=%s: %v", ErrMalformedDifficulty, parent.Hex(), err)
	}
	return difficulty, nil
}

// Record 记录在 block 之上出块所需的难度，已有记录被覆盖
func (o *StoreOracle) Record(ctx context.Context, block common.Hash, difficulty *uint256.Int) error {
	if difficulty == nil {
		return errors.New("难度不能为空")
	}
	if err := o.store.Set(ctx, recordKey(block), pow.EncodeDifficulty(difficulty)); err != nil {
		return fmt.Errorf("写入难度记录失败: %w", err)
	}
	o.logger.Debugf("难度已记录: block=%s difficulty=%s", block.Hex(), difficulty.Dec())
	return nil
}

// Records 返回全部难度记录（键为区块哈希十六进制）
func (o *StoreOracle) Records(ctx context.Context) (map[string]*uint256.Int, error) {
	raw, err := o.store.PrefixScan(ctx, []byte(keyPrefix))
	if err != nil {
		return nil, fmt.Errorf("扫描难度记录失败: %w", err)
	}
	out := make(map[string]*uint256.Int, len(raw))
	for key, value := range raw {
		difficulty, err := pow.DecodeDifficulty(value)
		if err != nil {
			return nil, fmt.Errorf("%w: key=%s", ErrMalformedDifficulty, key)
		}
		out[key[len(keyPrefix):]] = difficulty
	}
	return out, nil
}

func recordKey(block common.Hash) []byte {
	return []byte(keyPrefix + block.Hex())
}
