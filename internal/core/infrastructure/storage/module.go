// Package storage 提供存储管理功能
package storage

import (
	"context"

	"go.uber.org/fx"

	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	"github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/log"
	storageInterface "github.com/weisyn/sha3pow/pkg/interfaces/infrastructure/storage"
)

// ModuleParams 定义存储模块的依赖参数
type ModuleParams struct {
	fx.In

	Provider config.Provider // 配置提供者
	Logger   log.Logger      // 日志记录器
}

// ModuleOutput 定义存储模块的输出结构
type ModuleOutput struct {
	fx.Out

	BadgerStore storageInterface.BadgerStore // BadgerDB存储（必需，失败即错误）
	MemoryStore storageInterface.MemoryStore // 内存缓存
}

// Module 返回存储模块
func Module() fx.Option {
	return fx.Module("storage",
		fx.Provide(ProvideServices),

		// 应用停止时关闭数据库
		fx.Invoke(func(lc fx.Lifecycle, badgerStore storageInterface.BadgerStore, memoryStore storageInterface.MemoryStore, logger log.Logger) {
			lc.Append(fx.Hook{
				OnStop: func(ctx context.Context) error {
					if err := memoryStore.Close(); err != nil {
						logger.Warnf("关闭内存缓存失败: %v", err)
					}
					if err := badgerStore.Close(); err != nil {
						logger.Errorf("关闭BadgerDB存储失败: %v", err)
						return err
					}
					logger.Info("存储服务已安全关闭")
					return nil
				},
			})
		}),
	)
}

// ProvideServices 提供存储服务
func ProvideServices(params ModuleParams) (ModuleOutput, error) {
	serviceOutput, err := CreateStorageServices(ServiceInput{
		Provider: params.Provider,
		Logger:   params.Logger,
	})
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{
		BadgerStore: serviceOutput.BadgerStore,
		MemoryStore: serviceOutput.MemoryStore,
	}, nil
}
