// Package memory 提供基于BigCache的内存缓存实现
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/allegro/bigcache/v3"

	memoryconfig "github.com/weisyn/sha3pow/internal/config/storage/memory"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	storage "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// ErrStoreClosed 缓存已关闭
var ErrStoreClosed = errors.New("memory store is closed")

// 确保Store实现了MemoryStore接口
var _ storage.MemoryStore = (*Store)(nil)

// Store 实现了MemoryStore接口，基于BigCache提供内存缓存功能
type Store struct {
	cache  *bigcache.BigCache
	logger log.Logger
	mutex  sync.RWMutex
	closed bool
}

// New 创建一个新的BigCache内存存储实例
func New(config *memoryconfig.Config, logger log.Logger) (*Store, error) {
	if logger == nil {
		logger = logimpl.NewNop()
	}
	options := config.GetOptions()

	bigCacheConfig := bigcache.DefaultConfig(options.LifeWindow)
	bigCacheConfig.Shards = 64
	bigCacheConfig.CleanWindow = options.CleanWindow
	bigCacheConfig.MaxEntriesInWindow = options.MaxEntriesInWindow
	bigCacheConfig.MaxEntrySize = options.MaxEntrySize
	bigCacheConfig.HardMaxCacheSize = options.HardMaxCacheSizeMB
	bigCacheConfig.Verbose = false

	cache, err := bigcache.New(context.Background(), bigCacheConfig)
	if err != nil {
		return nil, fmt.Errorf("创建BigCache实例失败: %w", err)
	}

	logger.Debugf("内存缓存已创建: life_window=%s clean_window=%s", options.LifeWindow, options.CleanWindow)
	return &Store{
		cache:  cache,
		logger: logger,
	}, nil
}

// Close 关闭缓存并释放资源
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.cache.Close()
}

// Get 获取缓存值
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return nil, false, ErrStoreClosed
	}

	value, err := s.cache.Get(key)
	if err != nil {
		if errors.Is(err, bigcache.ErrEntryNotFound) {
			return nil, false, nil
		}
		s.logger.Warnf("获取缓存键[%s]失败: %v", key, err)
		return nil, false, err
	}

	return value, true, nil
}

// Set 设置缓存值
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.cache.Set(key, value); err != nil {
		s.logger.Warnf("设置缓存键[%s]失败: %v", key, err)
		return err
	}
	return nil
}

// Delete 删除缓存值
func (s *Store) Delete(ctx context.Context, key string) error {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.closed {
		return ErrStoreClosed
	}

	if err := s.cache.Delete(key); err != nil && !errors.Is(err, bigcache.ErrEntryNotFound) {
		return err
	}
	return nil
}
