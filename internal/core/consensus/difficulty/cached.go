package difficulty

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto/pow"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// cacheKeyPrefix 缓存键前缀
const cacheKeyPrefix = "difficulty:"

var (
	_ crypto.DifficultyOracle = (*CachedOracle)(nil)
	_ Recorder                = (*CachedOracle)(nil)
)

// CachedOracle 带缓存的难度预言机装饰器
//
// 只缓存成功结果；底层预言机报错时直接透传，下一次查询重新访问底层。
// 缓存读写失败只记录日志，不影响查询结果。
type CachedOracle struct {
	next   crypto.DifficultyOracle
	cache  storage.MemoryStore
	logger log.Logger
}

// NewCachedOracle 用 cache 包装 next
func NewCachedOracle(next crypto.DifficultyOracle, cache storage.MemoryStore, logger log.Logger) (*CachedOracle, error) {
	if next == nil || cache == nil {
		return nil, errors.New("底层预言机与缓存均不能为空")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}
	return &CachedOracle{next: next, cache: cache, logger: logger}, nil
}

// GetDifficulty 先查缓存，未命中再查底层预言机
func (o *CachedOracle) GetDifficulty(ctx context.Context, parent common.Hash) (*uint256.Int, error) {
	key := cacheKeyPrefix + parent.Hex()

	raw, hit, err := o.cache.Get(ctx, key)
	if err != nil {
		o.logger.Warnf("读取难度缓存失败: %v", err)
	} else if hit {
		if difficulty, decodeErr := pow.DecodeDifficulty(raw); decodeErr == nil {
			return difficulty, nil
		}
		_ = o.cache.Delete(ctx, key)
	}

	difficulty, err := o.next.GetDifficulty(ctx, parent)
	if err != nil {
		return nil, err
	}
	if difficulty == nil {
		return nil, nil
	}

	if err := o.cache.Set(ctx, key, pow.EncodeDifficulty(difficulty)); err != nil {
		o.logger.Warnf("写入难度缓存失败: %v", err)
	}
	return difficulty, nil
}

// Record 写入底层预言机并删除 block 的旧缓存条目
//
// 底层预言机必须实现 Recorder。
func (o *CachedOracle) Record(ctx context.Context, block common.Hash, difficulty *uint256.Int) error {
	recorder, ok := o.next.(Recorder)
	if !ok {
		return errors.New("底层预言机不支持记录难度")
	}
	if err := recorder.Record(ctx, block, difficulty); err != nil {
		return err
	}
	if err := o.Invalidate(ctx, block); err != nil {
		o.logger.Warnf("删除难度缓存失败: block=%s err=%v", block.Hex(), err)
	}
	return nil
}

// Invalidate 删除 parent 的缓存条目
func (o *CachedOracle) Invalidate(ctx context.Context, parent common.Hash) error {
	return o.cache.Delete(ctx, cacheKeyPrefix+parent.Hex())
}
