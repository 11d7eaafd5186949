package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/fx"

	config "github.com/weisyn/sha3pow/internal/config"
	"github.com/weisyn/sha3pow/internal/core/chain"
	"github.com/weisyn/sha3pow/internal/core/consensus"
	"github.com/weisyn/sha3pow/internal/core/consensus/miner"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/crypto"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/event"
	log "github.com/weisyn/sha3pow/internal/core/infrastructure/log"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/metrics"
	"github.com/weisyn/sha3pow/internal/core/infrastructure/storage"
)

// startTimeout 启动超时
const startTimeout = 30 * time.Second

// Bootstrap 负责按层组织fx模块并管理应用生命周期
type Bootstrap struct {
	opts  *options
	fxApp *fx.App

	chain  *chain.Chain
	driver *miner.Driver
}

// NewBootstrap 创建引导器
func NewBootstrap(opts *options) *Bootstrap {
	return &Bootstrap{opts: opts}
}

// SetupInfrastructureLayer 基础设施层：配置、日志、事件、存储、指标
func (b *Bootstrap) SetupInfrastructureLayer() []fx.Option {
	return []fx.Option{
		config.Module(),  // 1. 配置(不依赖其他)
		log.Module(),     // 2. 日志(依赖配置)
		event.Module(),   // 3. 事件(依赖日志)
		storage.Module(), // 4. 存储(依赖配置和日志)
		metrics.Module(), // 5. 指标端点(依赖配置和日志)
	}
}

// SetupBusinessLayer 业务层：PoW算法、共识、开发链
func (b *Bootstrap) SetupBusinessLayer() []fx.Option {
	return []fx.Option{
		consensus.Module(), // 难度预言机、导入门、挖矿驱动
		crypto.Module(),    // PoW算法(依赖难度预言机)
		chain.Module(),     // 开发链(依赖导入门)
	}
}

// SetupModules 设置所有模块
func (b *Bootstrap) SetupModules() []fx.Option {
	var modules []fx.Option
	modules = append(modules, AppModule(b.opts))
	modules = append(modules, b.SetupInfrastructureLayer()...)
	modules = append(modules, b.SetupBusinessLayer()...)
	modules = append(modules, fx.Populate(&b.chain, &b.driver))
	modules = append(modules, b.opts.extra...)
	return modules
}

// CreateFxApp 创建fx应用
func (b *Bootstrap) CreateFxApp() error {
	b.fxApp = fx.New(
		fx.Options(b.SetupModules()...),
		fx.NopLogger,
	)
	if err := b.fxApp.Err(); err != nil {
		return fmt.Errorf("依赖注入失败: %w", err)
	}
	return nil
}

// StartApp 启动应用
func (b *Bootstrap) StartApp(ctx context.Context) error {
	if err := b.fxApp.Start(ctx); err != nil {
		return fmt.Errorf("启动应用失败: %w", err)
	}
	return nil
}

// StopApp 停止应用
func (b *Bootstrap) StopApp(ctx context.Context) error {
	if err := b.fxApp.Stop(ctx); err != nil {
		return fmt.Errorf("停止应用失败: %w", err)
	}
	return nil
}

// BootstrapApp 引导并启动应用
func BootstrapApp(options ...Option) (App, error) {
	opts := newOptions(options...)

	if err := resolveConfig(opts); err != nil {
		return nil, err
	}
	if err := createDataDirectories(opts.appConfig); err != nil {
		fmt.Printf("⚠️  创建数据目录失败: %v\n", err)
	}

	bootstrap := NewBootstrap(opts)
	if err := bootstrap.CreateFxApp(); err != nil {
		return nil, fmt.Errorf("创建应用失败: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := bootstrap.StartApp(ctx); err != nil {
		return nil, err
	}

	return &internalApp{
		bootstrap: bootstrap,
		chain:     bootstrap.chain,
		driver:    bootstrap.driver,
	}, nil
}
