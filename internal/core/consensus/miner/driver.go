package miner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/holiman/uint256"

	consensusconfig "github.com/weisyn/sha3pow/internal/config/consensus"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/crypto"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/event"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/types"
)

// Driver 挖矿驱动器
//
// 📝 **字段说明**：
// - algo: PoW算法（难度查询与封印搜索）
// - work/submitter: 任务来源与封印去向
// - eventBus: 可选，封印挖出后发布 consensus.seal_found
// - clock: 时间来源，测试中替换为 clock.Mock
type Driver struct {
	algo      crypto.PowAlgorithm
	work      WorkProvider
	submitter Submitter
	eventBus  event.EventBus
	clock     clock.Clock
	logger    log.Logger

	roundBudget   uint32
	buildTime     time.Duration
	retryInterval time.Duration

	statsMu sync.Mutex
	stats   MiningStats

	mu        sync.Mutex
	isRunning atomic.Bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// Option 驱动器构造选项
type Option func(*Driver)

// WithClock 替换时间来源
func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithEventBus 设置事件总线
func WithEventBus(bus event.EventBus) Option {
	return func(d *Driver) {
		d.eventBus = bus
	}
}

// NewDriver 创建挖矿驱动器
func NewDriver(
	algo crypto.PowAlgorithm,
	work WorkProvider,
	submitter Submitter,
	options *consensusconfig.POWOptions,
	logger log.Logger,
	opts ...Option,
) (*Driver, error) {
	if algo == nil || work == nil || submitter == nil {
		return nil, errors.New("PoW算法、任务来源和提交方都不能为空")
	}
	if options == nil {
		return nil, errors.New("缺少共识配置")
	}
	if options.RoundBudget == 0 {
		return nil, fmt.Errorf("round_budget 必须大于0")
	}
	if options.BuildTime <= 0 {
		return nil, fmt.Errorf("build_time 必须大于0")
	}
	if logger == nil {
		logger = logimpl.NewNop()
	}

	d := &Driver{
		algo:          algo,
		work:          work,
		submitter:     submitter,
		clock:         clock.New(),
		logger:        logger,
		roundBudget:   options.RoundBudget,
		buildTime:     options.BuildTime,
		retryInterval: options.RetryInterval,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Run 在当前 goroutine 中执行挖矿循环，直到 ctx 被取消
//
// 🔄 **循环步骤**：
// 1. 没有任务或距上次获取已超过 BuildTime 时，重新获取任务与难度
// 2. 调用 Mine(parent, preHash, difficulty, RoundBudget)
// 3. 挖出封印则提交、发布事件，并强制下一轮重新获取任务
// 4. 环境错误记录日志并按 RetryInterval 退避
//
// ctx 取消时返回 nil。
func (d *Driver) Run(ctx context.Context) error {
	var (
		current    *Work
		difficulty *uint256.Int
		fetchedAt  time.Time
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		if current == nil || d.clock.Since(fetchedAt) >= d.buildTime {
			w, diff, err := d.refresh(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				d.logger.Warnf("获取挖矿任务失败，%s 后重试: %v", d.retryInterval, err)
				current = nil
				if !d.sleep(ctx, d.retryInterval) {
					return nil
				}
				continue
			}
			current, difficulty, fetchedAt = w, diff, d.clock.Now()
		}

		seal, err := d.algo.Mine(current.Parent, current.PreHash, difficulty, d.roundBudget)
		d.recordRound(seal != nil)
		if err != nil {
			d.logger.Errorf("挖矿失败，%s 后重试: %v", d.retryInterval, err)
			current = nil
			if !d.sleep(ctx, d.retryInterval) {
				return nil
			}
			continue
		}
		if seal == nil {
			continue
		}

		d.handleSeal(ctx, current, seal)
		current = nil
	}
}

// refresh 获取最新任务及其难度
func (d *Driver) refresh(ctx context.Context) (*Work, *uint256.Int, error) {
	w, err := d.work.BestWork(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("获取最优任务失败: %w", err)
	}
	if w == nil {
		return nil, nil, errors.New("任务来源返回空任务")
	}

	difficulty, err := d.algo.Difficulty(ctx, w.Parent)
	if err != nil {
		return nil, nil, err
	}

	d.logger.Debugf("挖矿任务已更新: height=%d parent=%s difficulty=%s",
		w.Height, w.Parent.Hex(), difficulty.Dec())
	return w, difficulty, nil
}

// handleSeal 提交封印并发布事件
func (d *Driver) handleSeal(ctx context.Context, w *Work, seal []byte) {
	if err := d.submitter.SubmitSeal(ctx, w, seal); err != nil {
		if _, ok := types.IsEnvironmentError(err); ok {
			d.logger.Errorf("封印提交遇到环境错误: height=%d err=%v", w.Height, err)
		} else {
			d.logger.Warnf("封印未被接受: height=%d err=%v", w.Height, err)
		}
		return
	}

	foundAt := d.clock.Now()
	d.statsMu.Lock()
	d.stats.Seals++
	d.stats.LastSealAt = foundAt
	d.statsMu.Unlock()

	d.logger.Infof("⛏️ 挖出新区块: height=%d parent=%s", w.Height, w.Parent.Hex())

	if d.eventBus != nil {
		d.eventBus.Publish(types.EventTypeSealFound, &types.SealFoundEvent{
			Parent:  w.Parent,
			PreHash: w.PreHash,
			Height:  w.Height,
			Seal:    append([]byte(nil), seal...),
			FoundAt: foundAt,
		})
	}
}

// recordRound 记录一次 Mine 调用
//
// 未命中的轮次消耗完整预算；命中轮次的实际尝试数不可见，同样按完整预算计入。
func (d *Driver) recordRound(found bool) {
	d.statsMu.Lock()
	defer d.statsMu.Unlock()
	d.stats.Rounds++
	d.stats.Attempts += uint64(d.roundBudget)
	if found {
		d.stats.Hits++
	}
}

// sleep 等待 dur，ctx 取消时返回 false
func (d *Driver) sleep(ctx context.Context, dur time.Duration) bool {
	if dur <= 0 {
		return ctx.Err() == nil
	}
	timer := d.clock.Timer(dur)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
