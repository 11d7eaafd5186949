package miner

import (
	"context"
	"errors"
	"time"
)

// MiningStats 挖矿统计
//
// Hits 为找到封印的轮次，Seals 为其中被提交方接受的数量。
type MiningStats struct {
	Running    bool      `json:"running"`
	Rounds     uint64    `json:"rounds"`
	Attempts   uint64    `json:"attempts"`
	Hits       uint64    `json:"hits"`
	Seals      uint64    `json:"seals"`
	LastSealAt time.Time `json:"last_seal_at"`
}

// ErrAlreadyRunning 驱动器已在运行
var ErrAlreadyRunning = errors.New("mining driver is already running")

// Start 在后台 goroutine 中启动挖矿循环
//
// 循环使用独立于 ctx 截止时间的上下文，只由 Stop 或 ctx 取消结束。
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.isRunning.Load() {
		return ErrAlreadyRunning
	}

	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel
	d.isRunning.Store(true)

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		defer d.isRunning.Store(false)
		if err := d.Run(loopCtx); err != nil {
			d.logger.Errorf("挖矿循环异常退出: %v", err)
		}
	}()

	d.logger.Infof("挖矿驱动已启动: round_budget=%d build_time=%s", d.roundBudget, d.buildTime)
	return nil
}

// Stop 停止挖矿循环并等待其退出
//
// 幂等；ctx 到期时返回 ctx 错误，循环仍会在当前 Mine 调用结束后退出。
func (d *Driver) Stop(ctx context.Context) error {
	d.mu.Lock()
	cancel := d.cancel
	d.cancel = nil
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("挖矿驱动已停止")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsRunning 挖矿循环是否在运行
func (d *Driver) IsRunning() bool {
	return d.isRunning.Load()
}

// Stats 返回统计快照
func (d *Driver) Stats() MiningStats {
	d.statsMu.Lock()
	defer d.statsMu.Unlock()
	stats := d.stats
	stats.Running = d.isRunning.Load()
	return stats
}
