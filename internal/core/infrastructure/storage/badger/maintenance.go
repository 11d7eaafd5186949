// maintenance.go - 数据库维护相关功能

package badger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	badgerdb "github.com/dgraph-io/badger/v3"
)

// RunValueLogGC 执行值日志垃圾回收
// 清理已删除或过期的值，降低磁盘占用
func (s *Store) RunValueLogGC(ctx context.Context, discardRatio float64) error {
	resultCh := make(chan error, 1)

	// 在goroutine中执行垃圾回收，避免阻塞
	go func() {
		resultCh <- s.db.RunValueLogGC(discardRatio)
	}()

	select {
	case err := <-resultCh:
		if err != nil && !errors.Is(err, badgerdb.ErrNoRewrite) {
			// 关闭过程中 GC 会被拒绝，属于正常情况
			if !strings.Contains(err.Error(), "GC request rejected") {
				return fmt.Errorf("值日志垃圾回收失败: %w", err)
			}
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("值日志垃圾回收被取消: %w", ctx.Err())
	}
}

// StartMaintenanceRoutines 启动定期值日志垃圾回收
func (s *Store) StartMaintenanceRoutines(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.RunValueLogGC(ctx, 0.5); err != nil {
					s.logger.Warnf("定期值日志垃圾回收失败: %v", err)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}
