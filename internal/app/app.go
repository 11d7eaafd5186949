// Package app 组装并运行 sha3pow 开发节点
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/fx"

	"github.com/weisyn/sha3pow/internal/core/chain"
	"github.com/weisyn/sha3pow/internal/core/consensus/miner"
	"github.com/weisyn/sha3pow/pkg/interfaces/config"
	"github.com/weisyn/sha3pow/pkg/types"
)

// configPathEnv 配置文件路径环境变量，优先级高于命令行参数
const configPathEnv = "SHA3POW_CONFIG_PATH"

// stopTimeout 停止应用的超时时间，留给BadgerDB完成同步
const stopTimeout = 60 * time.Second

// AppModule 应用模块定义
func AppModule(opts *options) fx.Option {
	return fx.Options(
		// 提供应用配置选项，供config模块使用
		fx.Provide(func() config.AppOptions { return opts }),
	)
}

// LoadConfig 从JSON文件加载配置
//
// 🔧 零值陷阱处理：
// 配置结构全部使用指针字段，nil 表示用户未设置（使用默认值），
// 非 nil 即使为零值（0、false、""）也会被采用。
//
// 文件不存在时返回空配置；读取或解析失败返回错误。
func LoadConfig(path string) (*types.AppConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Printf("配置文件 %s 不存在，使用默认配置\n", path)
		return &types.AppConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig 解析JSON配置内容
func ParseConfig(data []byte) (*types.AppConfig, error) {
	var appConfig types.AppConfig
	if err := json.Unmarshal(data, &appConfig); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	return &appConfig, nil
}

// resolveConfig 按 显式配置 > 嵌入内容 > 环境变量路径 > 配置文件路径 的顺序确定配置
func resolveConfig(o *options) error {
	if o.appConfig != nil {
		return nil
	}

	if len(o.embeddedConfig) > 0 {
		appConfig, err := ParseConfig(o.embeddedConfig)
		if err != nil {
			return err
		}
		o.appConfig = appConfig
		return nil
	}

	path := o.configFilePath
	if envPath := os.Getenv(configPathEnv); envPath != "" {
		path = envPath
	}
	if path == "" {
		o.appConfig = &types.AppConfig{}
		return nil
	}

	appConfig, err := LoadConfig(path)
	if err != nil {
		return err
	}
	fmt.Printf("已成功加载配置文件: %s\n", path)
	o.appConfig = appConfig
	return nil
}

// createDataDirectories 根据配置自动创建数据目录
func createDataDirectories(appConfig *types.AppConfig) error {
	var directories []string

	if appConfig.Storage != nil && appConfig.Storage.DataRoot != nil {
		directories = append(directories, *appConfig.Storage.DataRoot)
	} else if appConfig.DataDir != nil {
		directories = append(directories, *appConfig.DataDir)
	}

	if appConfig.Log != nil && appConfig.Log.FilePath != nil {
		switch *appConfig.Log.FilePath {
		case "", "stdout", "stderr":
		default:
			directories = append(directories, filepath.Dir(*appConfig.Log.FilePath))
		}
	}

	for _, dir := range directories {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("创建目录 %s 失败: %w", dir, err)
		}
	}
	return nil
}

// App 是节点应用的对外接口
type App interface {
	// Stop 停止应用
	Stop() error

	// Wait 等待退出信号后停止应用
	Wait()

	// Head 当前链头
	Head() chain.Block

	// MiningStats 挖矿统计
	MiningStats() miner.MiningStats
}

// internalApp 节点应用的内部实现
type internalApp struct {
	bootstrap *Bootstrap
	chain     *chain.Chain
	driver    *miner.Driver
}

// Stop 停止应用
func (a *internalApp) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return a.bootstrap.StopApp(ctx)
}

// Wait 等待应用收到退出信号
func (a *internalApp) Wait() {
	fmt.Println("🔄 节点正在运行，按 Ctrl+C 停止...")

	sig := WaitForSignal()
	fmt.Printf("\n🛑 收到信号 %v，正在优雅退出...\n", sig)

	if err := a.Stop(); err != nil {
		fmt.Printf("⚠️ 停止应用时出错: %v\n", err)
	}
}

// Head 当前链头
func (a *internalApp) Head() chain.Block {
	return a.chain.Head()
}

// MiningStats 挖矿统计
func (a *internalApp) MiningStats() miner.MiningStats {
	return a.driver.Stats()
}

// Start 加载配置、装配模块并启动节点
func Start(appOptions ...Option) (App, error) {
	return BootstrapApp(appOptions...)
}

// WaitForSignal 阻塞直到收到 SIGINT 或 SIGTERM
func WaitForSignal() os.Signal {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)
	return <-signals
}
