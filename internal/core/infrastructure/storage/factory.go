// Package storage 提供存储服务工厂实现
package storage

import (
	"fmt"

	badgerconfig "github.com/weisyn/sha3pow/internal/config/storage/badger"
	memoryconfig "github.com/weisyn/sha3pow/internal/config/storage/memory"
	logimpl "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/storage/badger"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/storage/memory"
	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// ServiceInput 定义存储服务工厂的输入参数
type ServiceInput struct {
	Provider config.Provider // 配置提供者
	Logger   log.Logger      // 日志记录器
}

// ServiceOutput 定义存储服务工厂的输出结果
type ServiceOutput struct {
	BadgerStore storageInterface.BadgerStore
	MemoryStore storageInterface.MemoryStore
}

// CreateStorageServices 创建存储服务
//
// BadgerDB 失败即错误；内存缓存失败时先关闭已打开的 BadgerDB 再返回。
func CreateStorageServices(input ServiceInput) (ServiceOutput, error) {
	logger := logimpl.NewModuleLogger(input.Logger, "storage")

	badgerStore, err := badger.New(badgerconfig.NewFromOptions(input.Provider.GetBadger()), logger)
	if err != nil {
		return ServiceOutput{}, fmt.Errorf("初始化BadgerDB存储失败: %w", err)
	}

	memoryStore, err := memory.New(memoryconfig.NewFromOptions(input.Provider.GetMemory()), logger)
	if err != nil {
		_ = badgerStore.Close()
		return ServiceOutput{}, fmt.Errorf("初始化内存缓存失败: %w", err)
	}

	return ServiceOutput{
		BadgerStore: badgerStore,
		MemoryStore: memoryStore,
	}, nil
}
